package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	counts   map[string]int64
	expires  map[string]time.Duration
	incrErr  error
	expireOK bool
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}, expireOK: true}
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, d time.Duration) *redis.BoolCmd {
	f.expires[key] = d
	return redis.NewBoolResult(f.expireOK, nil)
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	fc := newFakeCounter()
	l := &RedisLimiter{rdb: fc, window: time.Minute, maxReqs: 2}
	ctx := context.Background()

	ok, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "1.2.3.4")
	assert.False(t, ok)

	assert.Equal(t, time.Minute, fc.expires["ratelimit:1.2.3.4"])
	assert.Len(t, fc.expires, 1, "expiry is set once per window")
}

func TestRedisLimiter_Error(t *testing.T) {
	fc := newFakeCounter()
	fc.incrErr = errors.New("conn refused")
	l := &RedisLimiter{rdb: fc, window: time.Minute, maxReqs: 2}

	ok, err := l.Allow(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, ok)
}
