package mailer

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/training-service/internal/config"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer is any service that can deliver email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New selects the backend from configuration. Unknown backends fall back
// to the console mailer.
func New(cfg config.MailConfig, logger *zap.Logger) Mailer {
	switch cfg.Backend {
	case "sendgrid":
		return NewSendgridMailer(cfg, logger)
	default:
		return NewConsoleMailer(cfg, logger)
	}
}
