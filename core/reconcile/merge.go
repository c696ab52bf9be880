package reconcile

import "bibcleaner/core/bibtex"

// Merge builds the record that replaces original. It starts from the
// candidate, stores the candidate's key in externalKeyField, takes the
// original's key and then adds every original field the candidate lacks.
// Fields present on both sides keep the candidate's value.
func Merge(original, candidate *bibtex.Record, externalKeyField string) *bibtex.Record {
	merged := candidate.Clone()
	if externalKeyField != "" {
		merged.Set(externalKeyField, bibtex.Braced(candidate.Key))
	}
	merged.Key = original.Key
	for _, f := range original.Fields() {
		if !merged.Has(f.Name) {
			merged.Set(f.Name, f.Value)
		}
	}
	return merged
}
