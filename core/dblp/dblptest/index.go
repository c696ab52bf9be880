// Package dblptest provides an in-memory stand-in for the bibliographic index.
package dblptest

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"sync"
	"time"

	"bibcleaner/core/dblp"
	"bibcleaner/core/ratelimit"

	"go.uber.org/zap"
)

const (
	// BaseURL is the host the fake index answers for.
	BaseURL = "http://dblp.test"
	// DetailSuffix is appended to locators to reach a detail page.
	DetailSuffix = ".bib"
)

// Index implements dblp.Getter from scripted searches and detail pages.
// Queries are matched after collapsing runs of whitespace.
type Index struct {
	mu       sync.Mutex
	searches map[string][]string
	pages    map[string]string
	failures map[string]error
	calls    []string
}

// NewIndex returns an empty index. Every search misses until scripted.
func NewIndex() *Index {
	return &Index{
		searches: map[string][]string{},
		pages:    map[string]string{},
		failures: map[string]error{},
	}
}

// Locator returns the absolute locator of a record path such as "conf/bpm/Aalst11".
func Locator(path string) string {
	return BaseURL + "/rec/" + path
}

// AddSearch scripts the locators returned for query.
func (ix *Index) AddSearch(query string, locators ...string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.searches[normalize(query)] = locators
}

// AddRecord scripts the detail page of locator. Each block becomes one <pre> element.
func (ix *Index) AddRecord(locator string, blocks ...string) {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	for _, block := range blocks {
		b.WriteString("<pre>")
		b.WriteString(html.EscapeString(block))
		b.WriteString("</pre>\n")
	}
	b.WriteString("</body></html>")

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.pages[locator] = b.String()
}

// Fail makes requests for locator, or for a search of that query, return err.
func (ix *Index) Fail(target string, err error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.failures[target] = err
	ix.failures[normalize(target)] = err
}

// Calls returns the URLs requested so far.
func (ix *Index) Calls() []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	out := make([]string, len(ix.calls))
	copy(out, ix.calls)
	return out
}

// Get serves a search response or a detail page.
func (ix *Index) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.calls = append(ix.calls, rawURL)

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Path == "/search" {
		query := normalize(u.Query().Get("q"))
		if err := ix.failures[query]; err != nil {
			return nil, err
		}
		return []byte(searchResponse(ix.searches[query])), nil
	}

	locator := strings.TrimSuffix(rawURL, DetailSuffix)
	if err := ix.failures[locator]; err != nil {
		return nil, err
	}
	page, ok := ix.pages[locator]
	if !ok {
		return nil, fmt.Errorf("index returned 404")
	}
	return []byte(page), nil
}

// Config returns a client configuration pointing at the fake index.
func Config() dblp.Config {
	cfg := dblp.DefaultConfig()
	cfg.SearchURL = BaseURL + "/search?q={query}&h={max}&format=xml"
	cfg.DetailSuffix = DetailSuffix
	cfg.IntervalSeconds = 0
	cfg.RetryBackoffMillis = 1
	return cfg
}

// NewClient returns a client that talks to ix without throttling.
func NewClient(ix *Index, opts ...dblp.Option) *dblp.Client {
	opts = append([]dblp.Option{
		dblp.WithGetter(ix),
		dblp.WithLimiter(ratelimit.New(0)),
		dblp.WithBackoff(time.Millisecond),
	}, opts...)
	return dblp.NewClient(Config(), zap.NewNop(), opts...)
}

func searchResponse(locators []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<result>\n<hits total=\"%d\">\n", len(locators))
	for i, l := range locators {
		fmt.Fprintf(&b, "<hit id=\"%d\"><info><url>%s</url></info></hit>\n", i+1, html.EscapeString(l))
	}
	b.WriteString("</hits>\n</result>")
	return b.String()
}

func normalize(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
