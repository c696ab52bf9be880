package reconcile

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"bibcleaner/core/bibtex"
	"bibcleaner/core/dblp"

	"go.uber.org/zap"
)

// PairFetcher resolves a locator into the records behind it.
type PairFetcher interface {
	Fetch(ctx context.Context, locator string) (dblp.Pair, error)
}

// Resolver turns one record into a Resolution using the staged search policy:
// title search, author refinement, title fallback, then auto-accept, choice or give up.
type Resolver struct {
	query   *dblp.QueryClient
	fetcher PairFetcher
	chooser Chooser
	cfg     Config
	logger  *zap.Logger
}

// NewResolver creates a Resolver. The QueryClient is owned by the Resolver from here on.
func NewResolver(query *dblp.QueryClient, fetcher PairFetcher, chooser Chooser, cfg Config, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if chooser == nil {
		chooser = AlwaysOriginal()
	}
	return &Resolver{query: query, fetcher: fetcher, chooser: chooser, cfg: cfg, logger: logger}
}

// Resolve looks rec up in the index and decides its outcome.
func (r *Resolver) Resolve(ctx context.Context, rec *bibtex.Record) Resolution {
	log := r.logger.With(zap.String("key", rec.Key))

	title := strings.TrimSpace(rec.Text("title"))
	if title == "" {
		log.Debug("Record has no title")
		return Resolution{Outcome: OutcomeNone}
	}

	n, err := r.search(ctx, title)
	if err != nil {
		return r.failed(ctx, log, err)
	}
	log.Info("Found results on DBLP", zap.Int("count", n))

	if n > 1 {
		tokens := AuthorTokens(rec.Text("author"), r.cfg.MaxAuthorTokens)
		if len(tokens) > 0 {
			refined := title + " " + strings.Join(tokens, " ")
			if n, err = r.search(ctx, refined); err != nil {
				return r.failed(ctx, log, err)
			}
			log.Info("Refined search with author names", zap.Int("count", n))
			if n > r.cfg.TooManyThreshold {
				return Resolution{Outcome: OutcomeTooMany, Results: n}
			}
			if n == 0 {
				if n, err = r.search(ctx, title); err != nil {
					return r.failed(ctx, log, err)
				}
				log.Info("Refined search had no results, back to title", zap.Int("count", n))
			}
		}
		if n > r.cfg.TooManyThreshold {
			return Resolution{Outcome: OutcomeTooMany, Results: n}
		}
	}

	switch {
	case n == 0:
		return Resolution{Outcome: OutcomeNone}
	case n == 1:
		return r.acceptAt(ctx, log, 0)
	default:
		return r.choose(ctx, log, rec, n)
	}
}

func (r *Resolver) search(ctx context.Context, text string) (int, error) {
	if _, err := r.query.Search(ctx, text); err != nil {
		return 0, err
	}
	return r.query.ResultCount(), nil
}

func (r *Resolver) acceptAt(ctx context.Context, log *zap.Logger, i int) Resolution {
	locator, ok := r.query.At(i)
	if !ok {
		return Resolution{Outcome: OutcomeNone}
	}
	pair, err := r.fetcher.Fetch(ctx, locator)
	if err != nil {
		return r.failed(ctx, log, err)
	}
	if !pair.Resolved() {
		log.Warn("Index result could not be parsed", zap.String("locator", locator))
		return Resolution{Outcome: OutcomeNone, Results: 1}
	}
	return Resolution{Outcome: OutcomeAccepted, Pair: pair, Results: 1}
}

func (r *Resolver) choose(ctx context.Context, log *zap.Logger, rec *bibtex.Record, n int) Resolution {
	candidates := make([]dblp.Pair, 0, n)
	for i := 0; i < n; i++ {
		locator, _ := r.query.At(i)
		pair, err := r.fetcher.Fetch(ctx, locator)
		if err != nil {
			if isCancelled(ctx, err) {
				return Resolution{Outcome: OutcomeCancelled, Results: n, Err: err}
			}
			log.Warn("Failed to fetch candidate", zap.String("locator", locator), zap.Error(err))
		}
		candidates = append(candidates, pair)
	}

	choice, err := r.chooser.Choose(ctx, rec, candidates)
	if err != nil {
		if isCancelled(ctx, err) {
			return Resolution{Outcome: OutcomeCancelled, Results: n, Err: err}
		}
		log.Warn("Chooser failed, keeping original", zap.Error(err))
		return Resolution{Outcome: OutcomeUserDeferred, Results: n}
	}
	if choice.UseOriginal {
		return Resolution{Outcome: OutcomeUserDeferred, Results: n}
	}
	if choice.Index < 0 || choice.Index >= len(candidates) {
		log.Warn("Chooser picked a candidate out of range, keeping original", zap.Int("index", choice.Index))
		return Resolution{Outcome: OutcomeUserDeferred, Results: n}
	}
	picked := candidates[choice.Index]
	if !picked.Resolved() {
		return Resolution{Outcome: OutcomeNone, Results: n}
	}
	return Resolution{Outcome: OutcomeAccepted, Pair: picked, Results: n}
}

func (r *Resolver) failed(ctx context.Context, log *zap.Logger, err error) Resolution {
	if isCancelled(ctx, err) {
		return Resolution{Outcome: OutcomeCancelled, Err: err}
	}
	log.Warn("Lookup failed", zap.Error(err))
	return Resolution{Outcome: OutcomeNone, Err: err}
}

func isCancelled(ctx context.Context, err error) bool {
	return errors.Is(err, dblp.ErrCancelled) || errors.Is(err, context.Canceled) || ctx.Err() != nil
}

// AuthorTokens splits an author field on spaces and commas and keeps the
// chunks longer than two characters that are not the connective "and".
// At most limit chunks are examined, kept or not.
func AuthorTokens(author string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	var tokens []string
	examined := 0
	for _, chunk := range splitAuthor(author) {
		if utf8.RuneCountInString(chunk) > 2 && chunk != "and" {
			tokens = append(tokens, chunk)
		}
		examined++
		if examined >= limit {
			break
		}
	}
	return tokens
}

// splitAuthor splits on every single separator. Adjacent separators yield
// empty chunks, which count against the budget; trailing ones are dropped.
func splitAuthor(author string) []string {
	normalized := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, author)
	chunks := strings.Split(normalized, " ")
	for len(chunks) > 0 && chunks[len(chunks)-1] == "" {
		chunks = chunks[:len(chunks)-1]
	}
	return chunks
}
