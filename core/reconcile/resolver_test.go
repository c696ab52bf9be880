package reconcile

import (
	"context"
	"testing"

	"bibcleaner/core/bibtex"
	"bibcleaner/core/dblp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorTokens(t *testing.T) {
	tests := []struct {
		name   string
		author string
		limit  int
		want   []string
	}{
		{"drops short chunks and connective", "Wil van der Aalst and Jo Li", 10, []string{"Wil", "van", "der", "Aalst"}},
		{"comma separated", "Aalst, Wil", 10, []string{"Aalst", "Wil"}},
		{"budget counts every chunk", "Wil van der Aalst", 2, []string{"Wil", "van"}},
		{"empty chunks count", "A,  Bob Carl", 3, nil},
		{"newlines split", "Wil\n  Aalst", 10, []string{"Wil", "Aalst"}},
		{"no budget", "Wil Aalst", 0, nil},
		{"empty", "", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AuthorTokens(tt.author, tt.limit))
		})
	}
}

func TestMerge(t *testing.T) {
	original := bibtex.NewRecord("article", "mine")
	original.Set("title", "{my title}")
	original.Set("note", "{keep me}")
	original.Set("dblpkey", "{stale}")

	candidate := bibtex.NewRecord("inproceedings", "DBLP:conf/x/Y20")
	candidate.Set("title", "{Their Title}")
	candidate.Set("year", "{2020}")

	merged := Merge(original, candidate, "dblpkey")
	assert.Equal(t, "mine", merged.Key)
	assert.Equal(t, "inproceedings", merged.Kind)
	assert.Equal(t, "Their Title", merged.Text("title"))
	assert.Equal(t, "keep me", merged.Text("note"))
	assert.Equal(t, "DBLP:conf/x/Y20", merged.Text("dblpkey"))
	assert.Equal(t, "DBLP:conf/x/Y20", candidate.Key, "candidate is left untouched")
	assert.False(t, candidate.Has("note"))

	for _, f := range candidate.Fields() {
		assert.True(t, merged.Has(f.Name))
	}
	for _, f := range original.Fields() {
		assert.True(t, merged.Has(f.Name))
	}
}

func TestPolicyChooser(t *testing.T) {
	candidates := []dblp.Pair{{}, {Primary: bibtex.NewRecord("misc", "b")}}

	first, err := PolicyChooser(PolicyFirst)
	require.NoError(t, err)
	choice, err := first.Choose(context.Background(), nil, candidates)
	require.NoError(t, err)
	assert.Equal(t, Pick(1), choice)

	orig, err := PolicyChooser(PolicyOriginal)
	require.NoError(t, err)
	choice, err = orig.Choose(context.Background(), nil, candidates)
	require.NoError(t, err)
	assert.True(t, choice.UseOriginal)

	choice, err = FirstCandidate().Choose(context.Background(), nil, []dblp.Pair{{}})
	require.NoError(t, err)
	assert.True(t, choice.UseOriginal)

	_, err = PolicyChooser("sometimes")
	assert.Error(t, err)
}

func TestIsCrossrefKind(t *testing.T) {
	assert.True(t, IsCrossrefKind("proceedings"))
	assert.True(t, IsCrossrefKind("Collection"))
	assert.False(t, IsCrossrefKind("inproceedings"))
}

func TestOutcome_Marker(t *testing.T) {
	assert.Equal(t, "NOT CLEANED ENTRY (too many results):", OutcomeTooMany.Marker())
	assert.Equal(t, "NOT CLEANED ENTRY (no results):", OutcomeNone.Marker())
	assert.Equal(t, "too_many", OutcomeTooMany.String())
}
