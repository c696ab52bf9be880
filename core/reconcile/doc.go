// Package reconcile cleans a parsed BibTeX file against the bibliographic index.
//
// The Resolver decides, for one record, whether the index holds a trustworthy
// replacement. It searches by title, narrows an ambiguous result with author
// names, falls back to the title when the narrowed search finds nothing, and
// finally accepts a single hit, asks a Chooser to settle a handful, or gives
// up when there are too many.
//
// The Engine walks the file in order, merges accepted candidates into the
// original records, splits the output into regular and cross-referenced
// (proceedings and collection) records, and keeps every record it could not
// clean behind a marker comment. Keys are emitted at most once per run.
//
// # Usage
//
//	client := dblp.NewClient(cfg.DBLP, logger)
//	resolver := reconcile.NewResolver(
//	    dblp.NewQueryClient(client, cfg.DBLP),
//	    dblp.NewFetcher(client, cfg.DBLP, logger),
//	    reconcile.FirstCandidate(),
//	    cfg.Clean, logger,
//	)
//	result := reconcile.NewEngine(resolver, cfg.Clean, logger).Run(ctx, file.Entries)
//	regular, crossref := result.Files(path, time.Now())
package reconcile
