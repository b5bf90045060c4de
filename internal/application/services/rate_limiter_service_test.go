package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/storefront/internal/application/services"
	"github.com/avatarctic/storefront/test/mocks"
)

func TestRateLimiter_DeniesAfterLimit(t *testing.T) {
	count := 0
	var gotKey, gotPrefix string
	repo := &mocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, key string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
		count++
		gotKey, gotPrefix = key, keyPrefix
		return count, time.Unix(0, 0), nil
	}}
	svc := impl.NewRateLimiterService(repo, &impl.RateLimiterConfig{RequestsPerWindow: 2, Window: time.Minute, KeyPrefix: "rl"}, nil)
	ctx := context.Background()

	allowed, remaining, limit, reset, err := svc.Allow(ctx, "login:203.0.113.9")
	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, 1, remaining)
	require.Equal(t, 2, limit)
	require.Equal(t, time.Unix(60, 0), reset)
	require.Equal(t, "login:203.0.113.9", gotKey)
	require.Equal(t, "rl", gotPrefix)

	allowed, _, _, _, _ = svc.Allow(ctx, "login:203.0.113.9")
	require.True(t, allowed)
	allowed, remaining, _, _, _ = svc.Allow(ctx, "login:203.0.113.9")
	require.False(t, allowed)
	require.Equal(t, 0, remaining)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	repo := &mocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, key string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
		return 0, time.Now(), errors.New("redis down")
	}}
	svc := impl.NewRateLimiterService(repo, nil, nil)
	allowed, _, _, _, err := svc.Allow(context.Background(), "k")
	require.Error(t, err)
	require.True(t, allowed)
}
