// Package dblp is the client for the external bibliographic index.
//
// Three pieces cooperate:
//
//   - Client retrieves raw documents. Every request waits on a shared
//     ratelimit.Limiter, a read timeout is retried once after a short
//     backoff, and an optional Cache serves repeated URLs without a request.
//   - QueryClient turns free text into a search request and keeps the
//     resulting locator list with a cursor (At, Advance) so callers can walk
//     candidates without searching again.
//   - Fetcher loads a locator's detail page and parses its preformatted
//     blocks into a Pair of primary and parent records.
//
// # Errors
//
// ErrFetch marks permanent failures (second timeout, bad status), which the
// reconciliation layer treats as "unresolvable". ErrCancelled is returned when
// the caller's context ends while waiting or fetching.
//
// # Usage
//
//	client := dblp.NewClient(cfg, logger)
//	qc := dblp.NewQueryClient(client, cfg)
//	locators, err := qc.Search(ctx, "Process Mining")
//	pair, err := dblp.NewFetcher(client, cfg, logger).Fetch(ctx, locators[0])
package dblp
