package dblp

import (
	"context"

	"bibcleaner/core/bibtex"

	"go.uber.org/zap"
)

// Pair is a candidate found in the index: the primary record and,
// when the index lists one, the venue or proceedings record it cross-references.
type Pair struct {
	Primary *bibtex.Record
	Parent  *bibtex.Record
}

// Resolved reports whether the pair carries a primary record.
func (p Pair) Resolved() bool {
	return p.Primary != nil
}

// Fetcher retrieves and parses the record behind a locator.
type Fetcher struct {
	client       *Client
	detailSuffix string
	logger       *zap.Logger
}

// NewFetcher creates a Fetcher issuing requests through client.
func NewFetcher(client *Client, cfg Config, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{client: client, detailSuffix: cfg.DetailSuffix, logger: logger}
}

// Fetch returns the records shown on the locator's detail page.
// The first <pre> block is the primary record, the second the parent.
// A block that does not parse leaves its slot nil; when the primary slot is
// nil the whole pair is empty and the locator counts as unresolvable.
func (f *Fetcher) Fetch(ctx context.Context, locator string) (Pair, error) {
	body, err := f.client.Document(ctx, locator+f.detailSuffix)
	if err != nil {
		return Pair{}, err
	}
	blocks, err := ExtractTag(body, "pre")
	if err != nil {
		return Pair{}, err
	}
	if len(blocks) == 0 {
		f.logger.Debug("No record block on detail page", zap.String("locator", locator))
		return Pair{}, nil
	}

	primary := bibtex.ParseRecord(blocks[0])
	if primary == nil {
		f.logger.Debug("Primary record block did not parse", zap.String("locator", locator))
		return Pair{}, nil
	}
	pair := Pair{Primary: primary}
	if len(blocks) > 1 {
		pair.Parent = bibtex.ParseRecord(blocks[1])
	}
	return pair, nil
}
