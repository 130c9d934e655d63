package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/training-service/internal/events"
	"github.com/spec-kit/training-service/internal/service"
)

// ActivityWorker wires the activity recorder into the event dispatcher
// so domain events become notification feed entries.
type ActivityWorker struct {
	recorder   *service.ActivityRecorder
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityWorker constructs the worker.
func NewActivityWorker(recorder *service.ActivityRecorder, dispatcher events.Dispatcher, logger *zap.Logger) *ActivityWorker {
	return &ActivityWorker{recorder: recorder, dispatcher: dispatcher, logger: logger}
}

// Start registers event subscriptions. Dispatch is synchronous, so no
// goroutines are spawned here.
func (w *ActivityWorker) Start() {
	w.recorder.Register(w.dispatcher)
	w.logger.Info("activity worker subscribed to domain events")
}
