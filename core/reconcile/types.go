package reconcile

import (
	"strings"

	"bibcleaner/core/bibtex"
	"bibcleaner/core/dblp"
)

// Config controls the matching policy and the shape of the output.
type Config struct {
	// MaxRecords bounds how many records are cleaned per run. Negative means unlimited.
	MaxRecords int `mapstructure:"max_records" default:"-1"`
	// MaxAuthorTokens is the author-chunk budget of a refined query.
	MaxAuthorTokens int `mapstructure:"max_author_tokens" default:"10"`
	// TooManyThreshold is the result count above which a record is left as is.
	TooManyThreshold int `mapstructure:"too_many_threshold" default:"10"`
	// ExternalKeyField receives the index's own key on merged records.
	ExternalKeyField string `mapstructure:"external_key_field" default:"dblpkey"`
	// DedupeParents drops venue records whose key was already emitted.
	DedupeParents bool `mapstructure:"dedupe_parents" default:"true"`
	// ChoicePolicy selects how ambiguous matches are settled: interactive, original or first.
	ChoicePolicy string `mapstructure:"choice_policy" default:"interactive"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		MaxRecords:       -1,
		MaxAuthorTokens:  10,
		TooManyThreshold: 10,
		ExternalKeyField: "dblpkey",
		DedupeParents:    true,
		ChoicePolicy:     PolicyInteractive,
	}
}

// Outcome is the terminal state of resolving one record.
type Outcome int

const (
	// OutcomeAccepted means a candidate replaces the record.
	OutcomeAccepted Outcome = iota
	// OutcomeNone means the index had nothing usable.
	OutcomeNone
	// OutcomeTooMany means the query stayed too ambiguous.
	OutcomeTooMany
	// OutcomeUserDeferred means the chooser kept the original.
	OutcomeUserDeferred
	// OutcomeCancelled means the run's context ended during the lookup.
	OutcomeCancelled
	// OutcomeSkipped means no lookup happened because the run stopped early.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeNone:
		return "none"
	case OutcomeTooMany:
		return "too_many"
	case OutcomeUserDeferred:
		return "user_deferred"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Marker returns the comment placed before a record passed through with this outcome.
func (o Outcome) Marker() string {
	switch o {
	case OutcomeTooMany:
		return "NOT CLEANED ENTRY (too many results):"
	case OutcomeUserDeferred:
		return "NOT CLEANED ENTRY (by user choice):"
	case OutcomeCancelled:
		return "NOT CLEANED ENTRY (cancelled):"
	case OutcomeSkipped:
		return "NOT CLEANED ENTRY (record limit reached):"
	default:
		return "NOT CLEANED ENTRY (no results):"
	}
}

// Resolution is what the Resolver decided for one record.
type Resolution struct {
	Outcome Outcome
	// Pair is set only for OutcomeAccepted.
	Pair dblp.Pair
	// Results is the result count the decision was based on.
	Results int
	// Err holds the lookup error behind an OutcomeNone or OutcomeCancelled, if any.
	Err error
}

// Summary counts what a run did.
type Summary struct {
	Records      int `json:"records"`
	Cleaned      int `json:"cleaned"`
	TooMany      int `json:"too_many"`
	NoResults    int `json:"no_results"`
	UserDeferred int `json:"user_deferred"`
	Cancelled    int `json:"cancelled"`
	Skipped      int `json:"skipped"`
	Duplicates   int `json:"duplicates"`
	Parents      int `json:"parents"`
}

// KnownKeys is the set of keys already emitted during a run.
type KnownKeys map[string]struct{}

// Has reports whether key was emitted.
func (k KnownKeys) Has(key string) bool {
	_, ok := k[key]
	return ok
}

// Add marks key as emitted.
func (k KnownKeys) Add(key string) {
	k[key] = struct{}{}
}

// Partition holds the two output sequences of a run.
type Partition struct {
	Regular  []bibtex.Entry
	Crossref []bibtex.Entry
}

// AddRecord appends r to the sequence its kind belongs to, preceded by any extra entries.
func (p *Partition) AddRecord(r *bibtex.Record, before ...bibtex.Entry) {
	entries := append(before, bibtex.RecordEntry(r))
	if IsCrossrefKind(r.Kind) {
		p.Crossref = append(p.Crossref, entries...)
		return
	}
	p.Regular = append(p.Regular, entries...)
}

// AddCrossref appends r to the cross-referenced sequence regardless of its kind.
func (p *Partition) AddCrossref(r *bibtex.Record) {
	p.Crossref = append(p.Crossref, bibtex.RecordEntry(r))
}

// AddPassThrough appends a non-record entry to the regular sequence.
func (p *Partition) AddPassThrough(e bibtex.Entry) {
	p.Regular = append(p.Regular, e)
}

// IsCrossrefKind reports whether records of this kind are venues that others cross-reference.
func IsCrossrefKind(kind string) bool {
	return strings.EqualFold(kind, "proceedings") || strings.EqualFold(kind, "collection")
}
