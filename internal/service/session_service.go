package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/events"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// SessionService manages training session topics.
type SessionService struct {
	sessions   repository.SessionRepository
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
}

// SessionDependencies bundles requirements for the session service.
type SessionDependencies struct {
	SessionRepo repository.SessionRepository
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
}

// SessionInput describes a session create or update request.
type SessionInput struct {
	Topic           string
	ConductedBy     string
	CompanyID       string
	ScheduledAt     time.Time
	Status          domain.SessionStatus
	Place           domain.SessionPlace
	CancelledReason *string
}

// DashboardStats summarizes sessions for the dashboard view.
type DashboardStats struct {
	Total     int
	Pending   int
	Completed int
	Cancelled int
	Upcoming  []domain.SessionTopic
}

// NewSessionService builds the service.
func NewSessionService(deps SessionDependencies) *SessionService {
	return &SessionService{
		sessions:   deps.SessionRepo,
		accounts:   deps.AccountRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create schedules a new session and announces it.
func (s *SessionService) Create(ctx context.Context, actor *auth.Principal, input SessionInput) (*domain.SessionTopic, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	session := &domain.SessionTopic{
		Topic:           input.Topic,
		ConductedBy:     input.ConductedBy,
		CompanyID:       input.CompanyID,
		ScheduledAt:     input.ScheduledAt,
		Status:          input.Status,
		Place:           input.Place,
		CancelledReason: input.CancelledReason,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	s.announce(ctx, actor, events.EventSessionCreated, domain.ActionCreate,
		"Created training session '"+session.Topic+"'.", session)
	return session, nil
}

// Update edits a session and announces the change.
func (s *SessionService) Update(ctx context.Context, actor *auth.Principal, id string, input SessionInput) (*domain.SessionTopic, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Sessions never change company, so the conductor invariant is checked
	// against the stored company rather than whatever the request claims.
	if input.CompanyID != "" && input.CompanyID != session.CompanyID {
		return nil, errorutil.NewValidationError("sessions cannot move between companies", nil)
	}
	input.CompanyID = session.CompanyID
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	session.Topic = input.Topic
	session.ConductedBy = input.ConductedBy
	session.ScheduledAt = input.ScheduledAt
	session.Status = input.Status
	session.Place = input.Place
	session.CancelledReason = input.CancelledReason
	if session.Status != domain.SessionStatusCancelled {
		session.CancelledReason = nil
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	s.announce(ctx, actor, events.EventSessionUpdated, domain.ActionUpdate,
		"Updated training session '"+session.Topic+"'.", session)
	return session, nil
}

// Delete removes a session and announces the removal.
func (s *SessionService) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, actor, events.EventSessionDeleted, domain.ActionDelete,
		"Deleted training session '"+session.Topic+"'.", session)
	return nil
}

// Get returns one session.
func (s *SessionService) Get(ctx context.Context, id string) (*domain.SessionTopic, error) {
	return s.sessions.GetByID(ctx, id)
}

// List returns sessions with the total count for pagination.
func (s *SessionService) List(ctx context.Context, filter repository.SessionFilter) ([]domain.SessionTopic, int, error) {
	items, err := s.sessions.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	countFilter := filter
	countFilter.Limit = 0
	countFilter.Offset = 0
	total, err := s.sessions.Count(ctx, countFilter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Dashboard computes per-status counts and the next pending sessions,
// scoped to a company for members and global for super admins.
func (s *SessionService) Dashboard(ctx context.Context, companyID *string) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error
	if stats.Total, err = s.sessions.Count(ctx, repository.SessionFilter{CompanyID: companyID}); err != nil {
		return nil, err
	}
	byStatus := []struct {
		status domain.SessionStatus
		out    *int
	}{
		{domain.SessionStatusPending, &stats.Pending},
		{domain.SessionStatusCompleted, &stats.Completed},
		{domain.SessionStatusCancelled, &stats.Cancelled},
	}
	for _, entry := range byStatus {
		count, err := s.sessions.Count(ctx, repository.SessionFilter{
			CompanyID: companyID,
			Statuses:  []domain.SessionStatus{entry.status},
		})
		if err != nil {
			return nil, err
		}
		*entry.out = count
	}

	now := time.Now()
	stats.Upcoming, err = s.sessions.ListWithFilter(ctx, repository.SessionFilter{
		CompanyID:     companyID,
		Statuses:      []domain.SessionStatus{domain.SessionStatusPending},
		ScheduledFrom: &now,
		SortByDate:    true,
		Limit:         5,
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// validate enforces enum membership and the conductor-company invariant.
func (s *SessionService) validate(ctx context.Context, input SessionInput) error {
	if !domain.ValidSessionStatus(input.Status) {
		return errorutil.NewValidationError("unknown session status", map[string]any{"status": string(input.Status)})
	}
	if !domain.ValidSessionPlace(input.Place) {
		return errorutil.NewValidationError("unknown session place", map[string]any{"place": string(input.Place)})
	}
	if input.Status == domain.SessionStatusCancelled &&
		(input.CancelledReason == nil || *input.CancelledReason == "") {
		return errorutil.NewValidationError("cancelled sessions require a reason", nil)
	}

	if _, err := s.accounts.GetByID(ctx, input.ConductedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewValidationError("conductor account does not exist", nil)
		}
		return err
	}
	profile, err := s.accounts.GetProfile(ctx, input.ConductedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewValidationError("conductor has no company assignment", nil)
		}
		return err
	}
	if profile.CompanyID == nil || *profile.CompanyID != input.CompanyID {
		return errorutil.NewValidationError("conductor must belong to the session's company", nil)
	}
	return nil
}

func (s *SessionService) announce(ctx context.Context, actor *auth.Principal, eventType events.EventType, action domain.ActivityAction, description string, session *domain.SessionTopic) {
	companyID := session.CompanyID
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		Actor:        actor.Account,
		ActorCompany: actor.CompanyID(),
		CompanyID:    &companyID,
		Action:       action,
		Description:  description,
		Details: map[string]any{
			"session_id": session.ID,
			"topic":      session.Topic,
		},
		Timestamp: time.Now(),
	})
}
