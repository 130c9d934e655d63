package dto

import (
	"time"

	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/service"
)

// SessionRequest payload for creating or updating a session.
type SessionRequest struct {
	Topic           string    `json:"topic" validate:"required,max=255"`
	ConductedBy     string    `json:"conducted_by" validate:"required,uuid"`
	CompanyID       string    `json:"company_id" validate:"required,uuid"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	Status          string    `json:"status" validate:"required,oneof=Pending Completed Cancelled"`
	Place           string    `json:"place"`
	CancelledReason *string   `json:"cancelled_reason"`
}

// ToInput converts the request to the service input shape. An empty
// place falls back to the unset placeholder.
func (r SessionRequest) ToInput() service.SessionInput {
	place := domain.SessionPlace(r.Place)
	if r.Place == "" {
		place = domain.PlaceUnset
	}
	return service.SessionInput{
		Topic:           r.Topic,
		ConductedBy:     r.ConductedBy,
		CompanyID:       r.CompanyID,
		ScheduledAt:     r.ScheduledAt,
		Status:          domain.SessionStatus(r.Status),
		Place:           place,
		CancelledReason: r.CancelledReason,
	}
}

// SessionResponse is one session.
type SessionResponse struct {
	ID              string    `json:"id"`
	Topic           string    `json:"topic"`
	ConductedBy     string    `json:"conducted_by"`
	CompanyID       string    `json:"company_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	Status          string    `json:"status"`
	Place           string    `json:"place"`
	CancelledReason *string   `json:"cancelled_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewSessionResponse maps a domain session.
func NewSessionResponse(s domain.SessionTopic) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		Topic:           s.Topic,
		ConductedBy:     s.ConductedBy,
		CompanyID:       s.CompanyID,
		ScheduledAt:     s.ScheduledAt,
		Status:          string(s.Status),
		Place:           string(s.Place),
		CancelledReason: s.CancelledReason,
		CreatedAt:       s.CreatedAt,
	}
}

// NewSessionListResponse maps a slice of sessions.
func NewSessionListResponse(items []domain.SessionTopic) []SessionResponse {
	out := make([]SessionResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewSessionResponse(item))
	}
	return out
}

// DashboardResponse summarizes sessions for the dashboard.
type DashboardResponse struct {
	Total     int               `json:"total"`
	Pending   int               `json:"pending"`
	Completed int               `json:"completed"`
	Cancelled int               `json:"cancelled"`
	Upcoming  []SessionResponse `json:"upcoming"`
}

// NewDashboardResponse maps dashboard stats.
func NewDashboardResponse(stats service.DashboardStats) DashboardResponse {
	return DashboardResponse{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Completed: stats.Completed,
		Cancelled: stats.Cancelled,
		Upcoming:  NewSessionListResponse(stats.Upcoming),
	}
}
