package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklist:"

// TokenBlacklist stores revoked access tokens in Redis. Entries expire with
// the token itself, so the set never needs explicit cleanup.
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Revoke marks the token as invalid until its own expiry.
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to store.
		return nil
	}
	if err := b.client.Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %v", err)
	}
	return nil
}

// IsRevoked reports whether the token has been revoked.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %v", err)
	}
	return n > 0, nil
}
