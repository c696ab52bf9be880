package dblp

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// QueryClient runs searches against the index and remembers the last result list.
// It is not safe for concurrent use; one owner drives it record by record.
type QueryClient struct {
	client     *Client
	searchURL  string
	maxResults int

	lastQuery string
	locators  []string
	cursor    int
}

// NewQueryClient creates a QueryClient issuing requests through client.
func NewQueryClient(client *Client, cfg Config) *QueryClient {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultConfig().MaxResults
	}
	searchURL := cfg.SearchURL
	if searchURL == "" {
		searchURL = DefaultConfig().SearchURL
	}
	return &QueryClient{
		client:     client,
		searchURL:  searchURL,
		maxResults: maxResults,
	}
}

// Search normalizes text, queries the index and returns the result locators in
// index order. No hits yields an empty slice and a nil error. On failure the
// previous result list is cleared so that ResultCount reports zero.
func (q *QueryClient) Search(ctx context.Context, text string) ([]string, error) {
	q.lastQuery = CleanQuery(text)
	q.locators = nil
	q.cursor = 0

	body, err := q.client.Document(ctx, q.buildURL(q.lastQuery))
	if err != nil {
		return nil, err
	}
	locators, err := extractLocators(body)
	if err != nil {
		return nil, err
	}
	q.locators = locators
	return q.Locators(), nil
}

// ResultCount returns the number of locators from the last search.
func (q *QueryClient) ResultCount() int {
	return len(q.locators)
}

// LastQuery returns the normalized text of the last search.
func (q *QueryClient) LastQuery() string {
	return q.lastQuery
}

// Locators returns a copy of the last result list.
func (q *QueryClient) Locators() []string {
	out := make([]string, len(q.locators))
	copy(out, q.locators)
	return out
}

// Cursor returns the current position in the result list.
func (q *QueryClient) Cursor() int {
	return q.cursor
}

// At moves the cursor to index i and returns that locator.
func (q *QueryClient) At(i int) (string, bool) {
	if i < 0 || i >= len(q.locators) {
		return "", false
	}
	q.cursor = i
	return q.locators[i], true
}

// Advance moves the cursor one step forward and returns the locator there.
func (q *QueryClient) Advance() (string, bool) {
	return q.At(q.cursor + 1)
}

func (q *QueryClient) buildURL(query string) string {
	r := strings.NewReplacer(
		"{query}", url.QueryEscape(query),
		"{max}", strconv.Itoa(q.maxResults),
	)
	return r.Replace(q.searchURL)
}

// CleanQuery replaces every rune outside [A-Za-z0-9 ] with a space.
// The replacement is one-for-one, so the rune count is preserved.
func CleanQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isQueryRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func isQueryRune(r rune) bool {
	return r == ' ' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
