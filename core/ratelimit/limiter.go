package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrCancelled is returned when the caller's context ends while waiting for a slot.
var ErrCancelled = errors.New("ratelimit: wait cancelled")

// Limiter enforces a minimum interval between granted request slots.
// The first slot is granted immediately.
type Limiter struct {
	interval time.Duration
	limiter  *rate.Limiter

	mu        sync.Mutex
	lastGrant time.Time
}

// New creates a limiter spacing slots at least interval apart.
// A non-positive interval disables throttling.
func New(interval time.Duration) *Limiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Limiter{
		interval: interval,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Interval returns the configured minimum spacing.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// AwaitSlot blocks until a slot is available and records the grant time.
func (l *Limiter) AwaitSlot(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	if err := l.limiter.Wait(ctx); err != nil {
		// Wait also fails when the deadline is too close to ever be met.
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	l.mu.Lock()
	l.lastGrant = time.Now()
	l.mu.Unlock()
	return nil
}

// LastGrant returns the time of the most recent granted slot, or the zero time.
func (l *Limiter) LastGrant() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastGrant
}
