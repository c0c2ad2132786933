package ratelimiter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRedis struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{counts: make(map[string]int)}
}

func (m *memoryRedis) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.counts, key)
	return nil
}

func (m *memoryRedis) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (m *memoryRedis) Get(_ context.Context, _ string) (string, error) {
	return "", errors.New("not found")
}

func (m *memoryRedis) IncrementWithTTL(_ context.Context, key string, _ time.Duration) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func TestApplyResourceLimiter(t *testing.T) {
	logger := zap.NewNop()
	windowStart := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	input := func(resource string, now time.Time) *ApplyResourceLimiterInput {
		return &ApplyResourceLimiterInput{
			ResourceName:      resource,
			LimiterGroupName:  "consommation-create",
			WindowDurationSec: 60,
			MaxQuota:          2,
			NowUTC:            now,
		}
	}

	t.Run("Allows Until Quota Then Denies", func(t *testing.T) {
		limiter := NewResourceLimiter(newMemoryRedis(), logger)

		for i := 0; i < 2; i++ {
			out, err := limiter.ApplyResourceLimiter(context.Background(), input("9", windowStart))
			require.NoError(t, err)
			assert.True(t, out.Allowed)
		}

		out, err := limiter.ApplyResourceLimiter(context.Background(), input("9", windowStart))
		require.NoError(t, err)
		assert.False(t, out.Allowed)
		assert.Greater(t, out.RetryAfterSecs, 0)
		assert.LessOrEqual(t, out.RetryAfterSecs, 61)
	})

	t.Run("Window Rollover Resets Quota", func(t *testing.T) {
		limiter := NewResourceLimiter(newMemoryRedis(), logger)

		for i := 0; i < 3; i++ {
			limiter.ApplyResourceLimiter(context.Background(), input("9", windowStart))
		}

		out, err := limiter.ApplyResourceLimiter(context.Background(), input("9", windowStart.Add(61*time.Second)))
		require.NoError(t, err)
		assert.True(t, out.Allowed)
	})

	t.Run("Resources Limited Independently", func(t *testing.T) {
		limiter := NewResourceLimiter(newMemoryRedis(), logger)

		for i := 0; i < 3; i++ {
			limiter.ApplyResourceLimiter(context.Background(), input("9", windowStart))
		}

		out, err := limiter.ApplyResourceLimiter(context.Background(), input("10", windowStart))
		require.NoError(t, err)
		assert.True(t, out.Allowed)
	})

	t.Run("Zero Quota Disables Limiting", func(t *testing.T) {
		limiter := NewResourceLimiter(newMemoryRedis(), logger)

		out, err := limiter.ApplyResourceLimiter(context.Background(), &ApplyResourceLimiterInput{
			ResourceName:     "9",
			LimiterGroupName: "consommation-create",
			MaxQuota:         0,
		})
		require.NoError(t, err)
		assert.True(t, out.Allowed)
	})

	t.Run("Store Failure Surfaces Error", func(t *testing.T) {
		store := newMemoryRedis()
		store.err = errors.New("connection refused")
		limiter := NewResourceLimiter(store, logger)

		out, err := limiter.ApplyResourceLimiter(context.Background(), input("9", windowStart))
		assert.Error(t, err)
		assert.False(t, out.Allowed)
	})
}
