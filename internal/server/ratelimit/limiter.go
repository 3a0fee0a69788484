// Package ratelimit throttles repeated attempts per key, such as login
// attempts per client address.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether one more attempt for key is allowed now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter is a sliding-window limiter kept in process memory.
type MemoryLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	window   time.Duration
	maxReqs  int
	now      func() time.Time
}

func NewMemoryLimiter(maxReqs int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		requests: make(map[string][]time.Time),
		window:   window,
		maxReqs:  maxReqs,
		now:      time.Now,
	}
}

// Allow records an attempt for key unless maxReqs attempts already happened
// within the window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	valid := l.requests[key][:0]
	for _, t := range l.requests[key] {
		if now.Sub(t) < l.window {
			valid = append(valid, t)
		}
	}

	if len(valid) >= l.maxReqs {
		l.requests[key] = valid
		return false, nil
	}

	l.requests[key] = append(valid, now)
	return true, nil
}

// Sweep drops keys with no attempts inside the window.
func (l *MemoryLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, reqs := range l.requests {
		if len(reqs) == 0 || now.Sub(reqs[len(reqs)-1]) >= l.window {
			delete(l.requests, key)
		}
	}
}

// Disabled allows everything.
type Disabled struct{}

func (Disabled) Allow(context.Context, string) (bool, error) { return true, nil }
