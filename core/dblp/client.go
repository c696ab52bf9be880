package dblp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bibcleaner/core/ratelimit"

	"go.uber.org/zap"
)

// Cache stores raw documents fetched from the index.
// A miss is reported through the bool; storage failures are handled by the
// implementation and never surface to the lookup.
type Cache interface {
	Get(ctx context.Context, url string) ([]byte, bool)
	Put(ctx context.Context, url string, body []byte)
}

// Client performs throttled document retrieval against the index.
// It is shared by the QueryClient and the Fetcher so that every request
// passes through the same limiter.
type Client struct {
	getter  Getter
	limiter *ratelimit.Limiter
	cache   Cache
	backoff time.Duration
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithGetter overrides the HTTP transport.
func WithGetter(g Getter) Option {
	return func(c *Client) {
		if g != nil {
			c.getter = g
		}
	}
}

// WithLimiter overrides the limiter built from the configuration.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

// WithCache enables the document cache.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithBackoff overrides the pause before a retry.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.backoff = d
	}
}

// NewClient creates a Client from configuration.
func NewClient(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		getter:  NewHTTPGetter(cfg.Timeout(), cfg.UserAgent),
		limiter: ratelimit.New(cfg.Interval()),
		backoff: cfg.Backoff(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Document returns the body at url.
// Cached bodies are served without a request. Otherwise the call waits for a
// limiter slot, and a transient failure is retried exactly once after the backoff.
func (c *Client) Document(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, url); ok {
			c.logger.Debug("Serving document from cache", zap.String("url", url))
			return body, nil
		}
	}

	if err := c.limiter.AwaitSlot(ctx); err != nil {
		return nil, err
	}

	body, err := c.getter.Get(ctx, url)
	if err != nil && ctx.Err() == nil && IsTransient(err) {
		c.logger.Warn("URL read timeout, trying again",
			zap.String("url", url),
			zap.Duration("backoff", c.backoff),
			zap.Error(err),
		)
		if serr := sleepWithContext(ctx, c.backoff); serr != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, serr)
		}
		body, err = c.getter.Get(ctx, url)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		if errors.Is(err, ErrFetch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}

	if c.cache != nil {
		c.cache.Put(ctx, url, body)
	}
	return body, nil
}

// sleepWithContext blocks for d, returning early if the context is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
