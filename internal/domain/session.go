package domain

import "time"

// SessionStatus enumerates lifecycle states for training sessions.
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "Pending"
	SessionStatusCompleted SessionStatus = "Completed"
	SessionStatusCancelled SessionStatus = "Cancelled"
)

// ValidSessionStatus reports whether s is a known status.
func ValidSessionStatus(s SessionStatus) bool {
	switch s {
	case SessionStatusPending, SessionStatusCompleted, SessionStatusCancelled:
		return true
	}
	return false
}

// SessionPlace enumerates where a session can be held. The unset value is
// a literal carried over from the legacy data.
type SessionPlace string

const (
	PlaceUnset          SessionPlace = "--- Select Place ---"
	PlaceCustomerLounge SessionPlace = "Customer Lounge"
	PlaceAuditorium     SessionPlace = "Auditorium"
)

// ValidSessionPlace reports whether p is a known place.
func ValidSessionPlace(p SessionPlace) bool {
	switch p {
	case PlaceUnset, PlaceCustomerLounge, PlaceAuditorium:
		return true
	}
	return false
}

// SessionTopic is a scheduled training event conducted by an account
// within a company.
type SessionTopic struct {
	ID              string
	Topic           string
	ConductedBy     string
	CompanyID       string
	ScheduledAt     time.Time
	Status          SessionStatus
	Place           SessionPlace
	CancelledReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
