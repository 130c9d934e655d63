package events

import (
	"time"

	"github.com/spec-kit/training-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionCreated EventType = "session_created"
	EventSessionUpdated EventType = "session_updated"
	EventSessionDeleted EventType = "session_deleted"

	EventTopicCreated EventType = "topic_created"
	EventTopicUpdated EventType = "topic_updated"
	EventTopicDeleted EventType = "topic_deleted"

	EventDepartmentCreated EventType = "department_created"
	EventDepartmentUpdated EventType = "department_updated"
	EventDepartmentDeleted EventType = "department_deleted"

	EventUserLoggedIn  EventType = "user_logged_in"
	EventUserLoggedOut EventType = "user_logged_out"

	EventSessionsImported EventType = "sessions_imported"
	EventSessionsExported EventType = "sessions_exported"
)

// Event represents a domain event emitted by services. Actor is nil for
// system-originated events.
type Event struct {
	ID           string
	Type         EventType
	Actor        *domain.Account
	ActorCompany *string
	CompanyID    *string
	Action       domain.ActivityAction
	Description  string
	Details      map[string]any
	Timestamp    time.Time
}
