package service

import (
	"context"

	"github.com/spec-kit/training-service/internal/activity"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/repository"
)

// ActivityService exposes the per-user notification feed.
type ActivityService struct {
	entries repository.ActivityRepository
	logger  *activity.Logger
}

// NewActivityService builds the service.
func NewActivityService(entries repository.ActivityRepository, logger *activity.Logger) *ActivityService {
	return &ActivityService{entries: entries, logger: logger}
}

// List returns an account's activity feed, newest first, and marks the
// whole feed read. Reading the list is what clears the unread badge.
func (s *ActivityService) List(ctx context.Context, accountID string, limit, offset int) ([]domain.RecentActivity, error) {
	// Mark before fetching so the returned page reflects the read state it
	// just caused.
	if err := s.entries.MarkAllRead(ctx, accountID); err != nil {
		return nil, err
	}
	s.logger.InvalidateUnread(ctx, accountID)
	items, err := s.entries.ListByRecipient(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UnreadToday returns the unread-today badge count.
func (s *ActivityService) UnreadToday(ctx context.Context, accountID string) (int, error) {
	return s.logger.UnreadToday(ctx, accountID)
}
