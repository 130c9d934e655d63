package activity

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	unreadKeyPrefix = "notif:unread_today:"
	unreadTTL       = time.Minute
)

// UnreadCache caches per-account unread-today notification counts in
// Redis so the badge count does not hit Postgres on every request.
type UnreadCache struct {
	client *redis.Client
}

// NewUnreadCache wraps the Redis client. A nil client disables caching.
func NewUnreadCache(client *redis.Client) *UnreadCache {
	return &UnreadCache{client: client}
}

// Get returns the cached count, or ok=false on miss or disabled cache.
func (c *UnreadCache) Get(ctx context.Context, accountID string) (int, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, unreadKeyPrefix+accountID).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

// Set stores the count with a short TTL.
func (c *UnreadCache) Set(ctx context.Context, accountID string, count int) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, unreadKeyPrefix+accountID, count, unreadTTL).Err()
}

// Invalidate drops the cached count after a write that changes it.
func (c *UnreadCache) Invalidate(ctx context.Context, accountIDs ...string) {
	if c == nil || c.client == nil || len(accountIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		keys = append(keys, unreadKeyPrefix+id)
	}
	_ = c.client.Del(ctx, keys...).Err()
}
