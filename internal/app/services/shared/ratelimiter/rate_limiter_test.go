package ratelimiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRedisRepository struct {
	counts  map[string]int64
	failing bool
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{counts: make(map[string]int64)}
}

func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) { return "", nil }

func (f *fakeRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if f.failing {
		return 0, errors.New("redis down")
	}
	f.counts[key]++
	return f.counts[key], nil
}

func TestApplyResourceLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 10, 0, time.UTC)

	input := func() *ApplyResourceLimiterInput {
		return &ApplyResourceLimiterInput{
			ResourceName:      "p-1",
			LimiterGroupName:  "predict",
			WindowDurationSec: 60,
			MaxQuota:          3,
			NowUTC:            now,
		}
	}

	t.Run("allows requests under the quota", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeRedisRepository(), zap.NewNop())

		for i := 0; i < 3; i++ {
			result, err := limiter.ApplyResourceLimiter(ctx, input())
			assert.NoError(t, err)
			assert.True(t, result.Allowed)
		}
	})

	t.Run("denies once the quota is exhausted", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeRedisRepository(), zap.NewNop())

		for i := 0; i < 3; i++ {
			_, err := limiter.ApplyResourceLimiter(ctx, input())
			assert.NoError(t, err)
		}
		result, err := limiter.ApplyResourceLimiter(ctx, input())

		assert.NoError(t, err)
		assert.False(t, result.Allowed)
		// 10 seconds into the minute window leaves 50 until it resets.
		assert.Equal(t, 50, result.RetryAfterSecs)
	})

	t.Run("separate resources have separate quotas", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeRedisRepository(), zap.NewNop())

		for i := 0; i < 3; i++ {
			_, err := limiter.ApplyResourceLimiter(ctx, input())
			assert.NoError(t, err)
		}
		other := input()
		other.ResourceName = "p-2"
		result, err := limiter.ApplyResourceLimiter(ctx, other)

		assert.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("a new window resets the counter", func(t *testing.T) {
		fake := newFakeRedisRepository()
		limiter := NewResourceLimiter(fake, zap.NewNop())

		for i := 0; i < 4; i++ {
			_, err := limiter.ApplyResourceLimiter(ctx, input())
			assert.NoError(t, err)
		}
		next := input()
		next.NowUTC = now.Add(60 * time.Second)
		result, err := limiter.ApplyResourceLimiter(ctx, next)

		assert.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("zero quota disables the limiter", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeRedisRepository(), zap.NewNop())
		in := input()
		in.MaxQuota = 0

		result, err := limiter.ApplyResourceLimiter(ctx, in)

		assert.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("fails open when the backend is down", func(t *testing.T) {
		fake := newFakeRedisRepository()
		fake.failing = true
		limiter := NewResourceLimiter(fake, zap.NewNop())

		result, err := limiter.ApplyResourceLimiter(ctx, input())

		assert.NoError(t, err)
		assert.True(t, result.Allowed)
	})
}
