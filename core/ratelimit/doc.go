// Package ratelimit throttles outbound requests to the bibliographic index.
//
// The index asks clients not to hammer it, so every lookup first calls
// AwaitSlot, which blocks until the configured interval has passed since the
// previous grant. The limiter is a token bucket of size one built on
// golang.org/x/time/rate, so consecutive grants are never closer than the
// interval. Waiting honours context cancellation.
//
// # Usage
//
//	lim := ratelimit.New(3 * time.Second)
//	if err := lim.AwaitSlot(ctx); err != nil {
//	    return err // wraps ErrCancelled
//	}
package ratelimit
