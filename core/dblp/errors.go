package dblp

import (
	"context"
	"errors"
	"net"
	"os"

	"bibcleaner/core/ratelimit"
)

var (
	// ErrFetch marks a permanent failure to retrieve a document.
	// Callers treat the affected query or locator as unresolvable.
	ErrFetch = errors.New("dblp: fetch failed")

	// ErrTransient marks a failure worth one retry, such as a read timeout.
	ErrTransient = errors.New("dblp: transient failure")

	// ErrCancelled is returned when the caller's context ends during a lookup.
	ErrCancelled = ratelimit.ErrCancelled
)

// IsTransient reports whether err is a read timeout or otherwise marked transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransient) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
