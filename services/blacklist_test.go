package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBlacklist(t *testing.T) (*TokenBlacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewTokenBlacklist(client), mr
}

func TestTokenBlacklistRevoke(t *testing.T) {
	blacklist, _ := newTestBlacklist(t)
	ctx := context.Background()

	revoked, err := blacklist.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.Revoke(ctx, "some-token", time.Hour))

	revoked, err = blacklist.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestTokenBlacklistEntryExpires(t *testing.T) {
	blacklist, mr := newTestBlacklist(t)
	ctx := context.Background()

	require.NoError(t, blacklist.Revoke(ctx, "short-lived", time.Minute))
	mr.FastForward(2 * time.Minute)

	revoked, err := blacklist.IsRevoked(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, revoked, "entry should expire with the token")
}

func TestTokenBlacklistExpiredTokenNotStored(t *testing.T) {
	blacklist, mr := newTestBlacklist(t)
	ctx := context.Background()

	require.NoError(t, blacklist.Revoke(ctx, "already-expired", -time.Minute))
	assert.Empty(t, mr.Keys())
}
