package dblp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Getter retrieves the body of a document by URL.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// HTTPGetter is a Getter backed by net/http.
type HTTPGetter struct {
	client    *http.Client
	userAgent string
}

var _ Getter = (*HTTPGetter)(nil)

// NewHTTPGetter creates a getter with the given request timeout.
func NewHTTPGetter(timeout time.Duration, userAgent string) *HTTPGetter {
	return &HTTPGetter{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get fetches url. Timeouts are wrapped with ErrTransient.
func (g *HTTPGetter) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		if ctx.Err() == nil && IsTransient(err) {
			return nil, fmt.Errorf("%w: execute request (latency=%v): %v", ErrTransient, latency, err)
		}
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index returned %d (latency=%v)", resp.StatusCode, latency)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() == nil && IsTransient(err) {
			return nil, fmt.Errorf("%w: read body: %v", ErrTransient, err)
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
