package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/events"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// TopicService manages external learning topics.
type TopicService struct {
	topics     repository.ExternalTopicRepository
	dispatcher events.Dispatcher
}

// NewTopicService builds the service.
func NewTopicService(topics repository.ExternalTopicRepository, dispatcher events.Dispatcher) *TopicService {
	return &TopicService{topics: topics, dispatcher: dispatcher}
}

// TopicInput describes a create or update request. Title and URL are
// both optional; an empty topic still renders with a placeholder title.
type TopicInput struct {
	Title     *string
	URL       *string
	CompanyID string
	IsActive  bool
}

// Create adds an external topic.
func (s *TopicService) Create(ctx context.Context, actor *auth.Principal, input TopicInput) (*domain.ExternalTopic, error) {
	if err := validateTopicURL(input.URL); err != nil {
		return nil, err
	}
	topic := &domain.ExternalTopic{
		CompanyID: input.CompanyID,
		Title:     trimmed(input.Title),
		URL:       trimmed(input.URL),
		IsActive:  input.IsActive,
	}
	if err := s.topics.Create(ctx, topic); err != nil {
		return nil, err
	}
	s.announce(ctx, actor, events.EventTopicCreated, domain.ActionCreate,
		"Added learning topic '"+topic.DisplayTitle()+"'.", topic)
	return topic, nil
}

// Update edits an external topic.
func (s *TopicService) Update(ctx context.Context, actor *auth.Principal, id string, input TopicInput) (*domain.ExternalTopic, error) {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateTopicURL(input.URL); err != nil {
		return nil, err
	}
	topic.Title = trimmed(input.Title)
	topic.URL = trimmed(input.URL)
	topic.IsActive = input.IsActive
	if err := s.topics.Update(ctx, topic); err != nil {
		return nil, err
	}
	s.announce(ctx, actor, events.EventTopicUpdated, domain.ActionUpdate,
		"Updated learning topic '"+topic.DisplayTitle()+"'.", topic)
	return topic, nil
}

// Delete removes an external topic.
func (s *TopicService) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.topics.Delete(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, actor, events.EventTopicDeleted, domain.ActionDelete,
		"Removed learning topic '"+topic.DisplayTitle()+"'.", topic)
	return nil
}

// Get returns one topic.
func (s *TopicService) Get(ctx context.Context, id string) (*domain.ExternalTopic, error) {
	return s.topics.GetByID(ctx, id)
}

// List returns topics, company-scoped when companyID is set.
func (s *TopicService) List(ctx context.Context, companyID *string, limit, offset int) ([]domain.ExternalTopic, error) {
	return s.topics.List(ctx, companyID, limit, offset)
}

func (s *TopicService) announce(ctx context.Context, actor *auth.Principal, eventType events.EventType, action domain.ActivityAction, description string, topic *domain.ExternalTopic) {
	companyID := topic.CompanyID
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		Actor:        actor.Account,
		ActorCompany: actor.CompanyID(),
		CompanyID:    &companyID,
		Action:       action,
		Description:  description,
		Details: map[string]any{
			"topic_id": topic.ID,
			"title":    topic.DisplayTitle(),
		},
		Timestamp: time.Now(),
	})
}

func validateTopicURL(raw *string) error {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	parsed, err := url.Parse(strings.TrimSpace(*raw))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errorutil.NewValidationError("topic URL must be an absolute http(s) URL", map[string]any{"url": *raw})
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	out := strings.TrimSpace(*s)
	if out == "" {
		return nil
	}
	return &out
}
