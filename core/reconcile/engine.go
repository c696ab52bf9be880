package reconcile

import (
	"context"

	"bibcleaner/core/bibtex"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the outcome of one run over a parsed file.
type Result struct {
	RunID     string
	Partition Partition
	Summary   Summary
}

// Engine drives a Resolver over the entries of a file and assembles the
// regular and cross-referenced outputs.
type Engine struct {
	resolver *Resolver
	cfg      Config
	logger   *zap.Logger
}

// NewEngine creates an Engine.
func NewEngine(resolver *Resolver, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{resolver: resolver, cfg: cfg, logger: logger}
}

// Run processes entries in order. It always returns a complete result: once
// the record limit is reached or ctx ends, the remaining records are passed
// through with a marker instead of being looked up.
func (e *Engine) Run(ctx context.Context, entries []bibtex.Entry) *Result {
	r := &run{
		cfg:     e.cfg,
		known:   KnownKeys{},
		emitted: map[string]*bibtex.Record{},
		result:  &Result{RunID: uuid.NewString()},
	}
	log := e.logger.With(zap.String("run_id", r.result.RunID))
	r.logger = log
	log.Info("Starting cleaning run", zap.Int("entries", len(entries)))

	stop := OutcomeAccepted
	for _, entry := range entries {
		if !entry.IsRecord() {
			r.result.Partition.AddPassThrough(entry)
			continue
		}
		rec := entry.Record
		r.result.Summary.Records++

		// A key already in the output is never looked up again.
		if r.known.Has(rec.Key) {
			r.duplicate(rec)
			continue
		}

		if stop == OutcomeAccepted && r.limitReached() {
			log.Info("Record limit reached", zap.Int("max_records", e.cfg.MaxRecords))
			stop = OutcomeSkipped
		}
		if stop != OutcomeAccepted {
			r.passThrough(rec, stop)
			continue
		}

		log.Info("Cleaning entry", zap.String("key", rec.Key))
		res := e.resolver.Resolve(ctx, rec)
		switch res.Outcome {
		case OutcomeAccepted:
			r.accept(rec, res)
		case OutcomeCancelled:
			log.Warn("Run cancelled, passing remaining records through", zap.String("key", rec.Key))
			stop = OutcomeCancelled
			r.passThrough(rec, OutcomeCancelled)
		default:
			r.passThrough(rec, res.Outcome)
		}
	}

	s := r.result.Summary
	log.Info("Cleaning run finished",
		zap.Int("records", s.Records),
		zap.Int("cleaned", s.Cleaned),
		zap.Int("too_many", s.TooMany),
		zap.Int("no_results", s.NoResults),
		zap.Int("user_deferred", s.UserDeferred),
		zap.Int("skipped", s.Skipped+s.Cancelled),
		zap.Int("duplicates", s.Duplicates),
	)
	return r.result
}

// run is the state of a single Engine.Run.
type run struct {
	cfg    Config
	known  KnownKeys
	result *Result
	logger *zap.Logger

	// emitted maps every key in the output to the record written for it.
	emitted map[string]*bibtex.Record
}

func (r *run) limitReached() bool {
	return r.cfg.MaxRecords >= 0 && r.result.Summary.Cleaned >= r.cfg.MaxRecords
}

func (r *run) accept(original *bibtex.Record, res Resolution) {
	r.result.Summary.Cleaned++
	merged := Merge(original, res.Pair.Primary, r.cfg.ExternalKeyField)
	if r.known.Has(merged.Key) {
		r.duplicate(merged)
		return
	}
	r.result.Partition.AddRecord(merged)
	r.emit(merged)

	parent := res.Pair.Parent
	if parent == nil {
		return
	}
	if r.cfg.DedupeParents {
		if r.known.Has(parent.Key) {
			return
		}
		r.emit(parent)
	}
	r.result.Partition.AddCrossref(parent)
	r.result.Summary.Parents++
}

func (r *run) passThrough(rec *bibtex.Record, outcome Outcome) {
	switch outcome {
	case OutcomeTooMany:
		r.result.Summary.TooMany++
	case OutcomeUserDeferred:
		r.result.Summary.UserDeferred++
	case OutcomeCancelled:
		r.result.Summary.Cancelled++
	case OutcomeSkipped:
		r.result.Summary.Skipped++
	default:
		r.result.Summary.NoResults++
	}
	if r.known.Has(rec.Key) {
		r.duplicate(rec)
		return
	}
	r.result.Partition.AddRecord(rec, bibtex.Comment(outcome.Marker()))
	r.emit(rec)
}

func (r *run) emit(rec *bibtex.Record) {
	r.known.Add(rec.Key)
	r.emitted[rec.Key] = rec
}

// duplicate folds rec into the record already written under its key.
// Fields the written record has keep their value; the others are copied over.
func (r *run) duplicate(rec *bibtex.Record) {
	r.result.Summary.Duplicates++
	target, ok := r.emitted[rec.Key]
	if !ok {
		return
	}
	var added []string
	for _, f := range rec.Fields() {
		if !target.Has(f.Name) {
			target.Set(f.Name, f.Value)
			added = append(added, f.Name)
		}
	}
	r.logger.Info("Merged duplicate key into emitted record",
		zap.String("key", rec.Key),
		zap.String("emitted_kind", target.Kind),
		zap.Strings("added_fields", added),
	)
}
