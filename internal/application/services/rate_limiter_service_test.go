package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRateLimitRepo struct {
	incrementFn func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *mockRateLimitRepo) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	return m.incrementFn(ctx, clientKey, window, keyPrefix, ttl)
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	windowStart := time.Now().Truncate(time.Minute)
	repo := &mockRateLimitRepo{
		incrementFn: func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
			assert.Equal(t, "203.0.113.7", clientKey)
			return 5, windowStart, nil
		},
	}

	svc := NewRateLimiterService(repo, &RateLimiterConfig{DefaultRequestsPerMinute: 10, BurstMultiplier: 2}, nil)
	allowed, remaining, limit, reset, err := svc.Allow(context.Background(), "203.0.113.7")

	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 15, remaining) // burst of 20 minus 5 used
	assert.Equal(t, 10, limit)
	assert.Equal(t, windowStart.Add(time.Minute), reset)
}

func TestRateLimiter_DeniesAboveBurst(t *testing.T) {
	repo := &mockRateLimitRepo{
		incrementFn: func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
			return 21, time.Now(), nil
		},
	}

	svc := NewRateLimiterService(repo, &RateLimiterConfig{DefaultRequestsPerMinute: 10, BurstMultiplier: 2}, nil)
	allowed, remaining, _, _, err := svc.Allow(context.Background(), "203.0.113.7")

	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
}

func TestRateLimiter_FailsOpenOnStoreError(t *testing.T) {
	repo := &mockRateLimitRepo{
		incrementFn: func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
			return 0, time.Time{}, errors.New("connection refused")
		},
	}

	svc := NewRateLimiterService(repo, nil, nil)
	allowed, _, _, _, err := svc.Allow(context.Background(), "203.0.113.7")

	require.Error(t, err)
	assert.True(t, allowed, "a broken counter store must not block traffic")
}
