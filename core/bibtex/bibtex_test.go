package bibtex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `% JabRef generated

@article{Aalst2011,
  author = {Wil M. P. van der Aalst},
  Title = {Process Mining: {D}iscovery, Conformance and Enhancement},
  year = 2011,
  publisher = "Springer",
  month = jan # " 1",
}

@comment{jabref-meta: databaseType:bibtex;}

@Proceedings(bpm2011,
  title = {BPM 2011}
)
`

func TestParse_EntriesAndOrder(t *testing.T) {
	f, err := ParseString(sample)
	require.NoError(t, err)
	require.Len(t, f.Entries, 4)

	assert.Equal(t, EntryPassThrough, f.Entries[0].Kind)
	assert.Equal(t, "% JabRef generated", f.Entries[0].Text)

	rec := f.Entries[1].Record
	require.NotNil(t, rec)
	assert.Equal(t, "article", rec.Kind)
	assert.Equal(t, "Aalst2011", rec.Key)
	assert.Equal(t, 5, rec.Len())

	names := []string{}
	for _, fl := range rec.Fields() {
		names = append(names, fl.Name)
	}
	assert.Equal(t, []string{"author", "title", "year", "publisher", "month"}, names)

	assert.Equal(t, "Process Mining: {D}iscovery, Conformance and Enhancement", rec.Text("TITLE"))
	assert.Equal(t, "2011", rec.Text("year"))
	assert.Equal(t, "Springer", rec.Text("publisher"))
	v, ok := rec.Get("month")
	assert.True(t, ok)
	assert.Equal(t, `jan # " 1"`, v)

	assert.False(t, f.Entries[2].IsRecord())
	assert.Equal(t, "@comment{jabref-meta: databaseType:bibtex;}", f.Entries[2].Text)

	proc := f.Entries[3].Record
	require.NotNil(t, proc)
	assert.True(t, proc.IsKind("proceedings"))
	assert.Equal(t, "bpm2011", proc.Key)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated entry", "@article{k1,\n title = {abc}"},
		{"missing equals", "@article{k1, title {abc}}"},
		{"empty key", "@article{, title = {abc}}"},
		{"unbalanced braces", "@article{k1, title = {abc}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestParse_StrayAtIsText(t *testing.T) {
	f, err := ParseString("contact me at someone@example.org\n@misc{k, note = {x}}")
	require.NoError(t, err)
	require.Len(t, f.Entries, 2)
	assert.Equal(t, "contact me at someone@example.org", f.Entries[0].Text)
	assert.True(t, f.Entries[1].IsRecord())
}

func TestRoundTrip(t *testing.T) {
	f, err := ParseString(sample)
	require.NoError(t, err)

	again, err := ParseString(f.String())
	require.NoError(t, err)
	require.Len(t, again.Entries, len(f.Entries))
	for i := range f.Entries {
		assert.Equal(t, f.Entries[i].Kind, again.Entries[i].Kind)
		if f.Entries[i].IsRecord() {
			assert.Equal(t, f.Entries[i].Record.Fields(), again.Entries[i].Record.Fields())
			assert.Equal(t, f.Entries[i].Record.Key, again.Entries[i].Record.Key)
		}
	}
}

func TestRecord_SetDeleteClone(t *testing.T) {
	r := NewRecord("article", "k")
	r.Set("Title", "{A}")
	r.Set("year", "2020")
	r.Set("TITLE", "{B}")
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "B", r.Text("title"))

	c := r.Clone()
	c.Set("note", "{n}")
	assert.False(t, r.Has("note"))

	r.Delete("year")
	assert.False(t, r.Has("year"))
	assert.True(t, c.Has("year"))
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "abc", Unquote("{abc}"))
	assert.Equal(t, "abc", Unquote(`"abc"`))
	assert.Equal(t, "{a} # {b}", Unquote("{a} # {b}"))
	assert.Equal(t, "jan", Unquote("jan"))
}

func TestParseRecord(t *testing.T) {
	assert.Nil(t, ParseRecord("not bibtex at all"))
	assert.Nil(t, ParseRecord("@article{k, title = "))
	r := ParseRecord("@inproceedings{DBLP:conf/bpm/Aalst11,\n author = {W. Aalst},\n crossref = {DBLP:conf/bpm/2011}\n}")
	require.NotNil(t, r)
	assert.Equal(t, "DBLP:conf/bpm/Aalst11", r.Key)
}

func TestComment(t *testing.T) {
	e := Comment("NOT CLEANED ENTRY:")
	assert.Equal(t, "% NOT CLEANED ENTRY:", e.Text)
	e = Comment("% already\nplain")
	assert.Equal(t, "% already\n% plain", e.Text)

	var b strings.Builder
	require.NoError(t, Write(&b, []Entry{e, RecordEntry(NewRecord("misc", "k"))}))
	assert.Equal(t, "% already\n% plain\n\n@misc{k\n}\n", b.String())
}
