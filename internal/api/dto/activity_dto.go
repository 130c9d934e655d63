package dto

import (
	"time"

	"github.com/spec-kit/training-service/internal/domain"
)

// ActivityResponse is one entry in the notification feed.
type ActivityResponse struct {
	ID          string         `json:"id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details,omitempty"`
	Read        bool           `json:"read"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewActivityListResponse maps a feed slice.
func NewActivityListResponse(items []domain.RecentActivity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ActivityResponse{
			ID:          item.ID,
			Action:      string(item.Action),
			Description: item.Description,
			Details:     item.Details,
			Read:        item.Read,
			CreatedAt:   item.CreatedAt,
		})
	}
	return out
}
