package dto

import (
	"time"

	"github.com/spec-kit/training-service/internal/domain"
)

// TopicRequest payload for external learning topics.
type TopicRequest struct {
	Title     *string `json:"title" validate:"omitempty,max=255"`
	URL       *string `json:"url" validate:"omitempty,max=2000"`
	CompanyID string  `json:"company_id" validate:"omitempty,uuid"`
	IsActive  bool    `json:"is_active"`
}

// TopicResponse is one external topic.
type TopicResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Title     string    `json:"title"`
	URL       *string   `json:"url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTopicResponse maps a domain topic, applying the placeholder title.
func NewTopicResponse(t domain.ExternalTopic) TopicResponse {
	return TopicResponse{
		ID:        t.ID,
		CompanyID: t.CompanyID,
		Title:     t.DisplayTitle(),
		URL:       t.URL,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
	}
}

// NewTopicListResponse maps a slice of topics.
func NewTopicListResponse(items []domain.ExternalTopic) []TopicResponse {
	out := make([]TopicResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewTopicResponse(item))
	}
	return out
}
