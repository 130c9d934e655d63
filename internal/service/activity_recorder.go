package service

import (
	"context"

	"github.com/spec-kit/training-service/internal/activity"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/events"
	"github.com/spec-kit/training-service/internal/repository"
)

// ActivityRecorder turns domain events into activity entries. It is the
// single event subscriber, so services publish without knowing who gets
// notified.
type ActivityRecorder struct {
	accounts   repository.AccountRepository
	activities *activity.Logger
}

// NewActivityRecorder builds the recorder.
func NewActivityRecorder(accounts repository.AccountRepository, activities *activity.Logger) *ActivityRecorder {
	return &ActivityRecorder{accounts: accounts, activities: activities}
}

// Register subscribes the recorder to every published event.
func (r *ActivityRecorder) Register(dispatcher events.Dispatcher) {
	dispatcher.SubscribeAll(r.Handle)
}

// Handle records one event. Super-admin mutations fan out to every
// member of the affected company; login and logout keep the default
// actor-only target.
func (r *ActivityRecorder) Handle(ctx context.Context, event events.Event) error {
	entry := activity.Entry{
		Actor:        event.Actor,
		ActorCompany: event.ActorCompany,
		Action:       event.Action,
		Description:  event.Description,
		CompanyID:    event.CompanyID,
		Details:      event.Details,
	}

	if event.Actor != nil && event.Actor.IsSuperAdmin && mutationAction(event.Action) {
		entry.TargetUserIDs = r.companyMemberIDs(ctx, event.CompanyID)
	}

	r.activities.Log(ctx, entry)
	return nil
}

func mutationAction(action domain.ActivityAction) bool {
	switch action {
	case domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete,
		domain.ActionImport, domain.ActionExport:
		return true
	}
	return false
}

// companyMemberIDs lists non-super-admin accounts as the broadcast
// audience, scoped to a company when one is known.
func (r *ActivityRecorder) companyMemberIDs(ctx context.Context, companyID *string) []string {
	accounts, err := r.accounts.List(ctx, repository.AccountFilter{CompanyID: companyID})
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(accounts))
	for _, account := range accounts {
		if account.IsSuperAdmin {
			continue
		}
		ids = append(ids, account.ID)
	}
	return ids
}
