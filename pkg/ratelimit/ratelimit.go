package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter caps token consumption per minute. Wait blocks until the
// requested amount fits in the current window or the context is cancelled.
type TokenLimiter struct {
	mu          sync.Mutex
	maxPerMin   int
	remaining   int
	windowStart time.Time
}

// NewTokenLimiter creates a limiter allowing maxPerMinute tokens per minute.
func NewTokenLimiter(maxPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxPerMin:   maxPerMinute,
		remaining:   maxPerMinute,
		windowStart: time.Now(),
	}
}

// Wait blocks until n tokens are available and consumes them. Requests
// larger than the per-minute cap are served a full window.
func (l *TokenLimiter) Wait(ctx context.Context, n int) error {
	if n > l.maxPerMin {
		n = l.maxPerMin
	}
	for {
		l.mu.Lock()
		l.refillLocked()
		if l.remaining >= n {
			l.remaining -= n
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.windowStart.Add(time.Minute))
		l.mu.Unlock()

		if wait <= 0 {
			wait = time.Millisecond
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// GetRemaining reports how many tokens are left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refillLocked()
	return l.remaining
}

func (l *TokenLimiter) refillLocked() {
	if time.Since(l.windowStart) >= time.Minute {
		l.windowStart = time.Now()
		l.remaining = l.maxPerMin
	}
}
