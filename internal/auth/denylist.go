package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "auth:denylist:"

// Denylist invalidates issued tokens on logout by keeping their jti in
// Redis until the token would have expired anyway.
type Denylist struct {
	client *redis.Client
}

// NewDenylist wraps the Redis client. A nil client disables revocation,
// falling back to stateless JWT expiry.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke records the token id until expiry.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if d == nil || d.client == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistPrefix+tokenID, 1, ttl).Err()
}

// Revoked reports whether the token id has been revoked.
func (d *Denylist) Revoked(ctx context.Context, tokenID string) bool {
	if d == nil || d.client == nil || tokenID == "" {
		return false
	}
	n, err := d.client.Exists(ctx, denylistPrefix+tokenID).Result()
	return err == nil && n > 0
}
