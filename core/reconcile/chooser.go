package reconcile

import (
	"context"
	"fmt"

	"bibcleaner/core/bibtex"
	"bibcleaner/core/dblp"
)

// Choice policies selectable from configuration.
const (
	PolicyInteractive = "interactive"
	PolicyOriginal    = "original"
	PolicyFirst       = "first"
)

// Choice is a chooser's answer: keep the original or take candidate Index.
type Choice struct {
	UseOriginal bool
	Index       int
}

// KeepOriginal is the choice that leaves the record as it is.
func KeepOriginal() Choice {
	return Choice{UseOriginal: true}
}

// Pick selects candidate i.
func Pick(i int) Choice {
	return Choice{Index: i}
}

// Chooser settles an ambiguous match. Candidates are in index order; a
// candidate whose Primary is nil could not be fetched or parsed.
type Chooser interface {
	Choose(ctx context.Context, original *bibtex.Record, candidates []dblp.Pair) (Choice, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, original *bibtex.Record, candidates []dblp.Pair) (Choice, error)

// Choose calls f.
func (f ChooserFunc) Choose(ctx context.Context, original *bibtex.Record, candidates []dblp.Pair) (Choice, error) {
	return f(ctx, original, candidates)
}

// AlwaysOriginal keeps every ambiguous record as it is.
func AlwaysOriginal() Chooser {
	return ChooserFunc(func(context.Context, *bibtex.Record, []dblp.Pair) (Choice, error) {
		return KeepOriginal(), nil
	})
}

// FirstCandidate takes the highest ranked candidate that resolved.
func FirstCandidate() Chooser {
	return ChooserFunc(func(_ context.Context, _ *bibtex.Record, candidates []dblp.Pair) (Choice, error) {
		for i, c := range candidates {
			if c.Resolved() {
				return Pick(i), nil
			}
		}
		return KeepOriginal(), nil
	})
}

// PolicyChooser returns the non-interactive chooser for a policy name.
func PolicyChooser(policy string) (Chooser, error) {
	switch policy {
	case PolicyOriginal, "":
		return AlwaysOriginal(), nil
	case PolicyFirst:
		return FirstCandidate(), nil
	default:
		return nil, fmt.Errorf("unknown choice policy %q", policy)
	}
}
