package dblp

import "time"

// Config holds configuration for the bibliographic index client.
type Config struct {
	// SearchURL is the search endpoint template. {query} and {max} are substituted.
	SearchURL string `mapstructure:"search_url" default:"https://dblp.org/search/publ/api?q={query}&h={max}&format=xml"`
	// DetailSuffix is appended to a result locator to reach its BibTeX detail page.
	DetailSuffix string `mapstructure:"detail_suffix" default:".html?view=bibtex"`
	// MaxResults bounds the number of hits requested per search.
	MaxResults int `mapstructure:"max_results" default:"1000"`
	// IntervalSeconds is the minimum spacing between two requests to the index.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"3"`
	// RetryBackoffMillis is the pause before retrying a timed out read.
	RetryBackoffMillis int `mapstructure:"retry_backoff_ms" default:"1000"`
	// TimeoutSeconds is the HTTP timeout of a single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"bibcleaner/1.0"`
}

// Interval returns the request spacing as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Backoff returns the retry pause as a duration.
func (c Config) Backoff() time.Duration {
	if c.RetryBackoffMillis <= 0 {
		return time.Second
	}
	return time.Duration(c.RetryBackoffMillis) * time.Millisecond
}

// Timeout returns the per-request HTTP timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		SearchURL:          "https://dblp.org/search/publ/api?q={query}&h={max}&format=xml",
		DetailSuffix:       ".html?view=bibtex",
		MaxResults:         1000,
		IntervalSeconds:    3,
		RetryBackoffMillis: 1000,
		TimeoutSeconds:     30,
		UserAgent:          "bibcleaner/1.0",
	}
}
