package bibtex

// EntryKind discriminates the variants of Entry.
type EntryKind int

const (
	// EntryRecord is a typed bibliographic record.
	EntryRecord EntryKind = iota
	// EntryPassThrough is text kept verbatim: free-form comments,
	// @comment, @preamble and @string blocks.
	EntryPassThrough
)

// Entry is one top-level element of a BibTeX file.
// Exactly one of Record or Text is meaningful, selected by Kind.
type Entry struct {
	Kind   EntryKind
	Record *Record
	Text   string
}

// RecordEntry wraps a record as an entry.
func RecordEntry(r *Record) Entry {
	return Entry{Kind: EntryRecord, Record: r}
}

// PassThrough wraps verbatim text as an entry.
func PassThrough(text string) Entry {
	return Entry{Kind: EntryPassThrough, Text: text}
}

// Comment builds a pass-through line comment. Every line is prefixed with "% ".
func Comment(text string) Entry {
	return PassThrough(commentLines(text))
}

// IsRecord reports whether the entry is a record.
func (e Entry) IsRecord() bool {
	return e.Kind == EntryRecord && e.Record != nil
}

// File is an ordered sequence of entries.
type File struct {
	Entries []Entry
}

// Records returns the records of the file in order.
func (f *File) Records() []*Record {
	var out []*Record
	for _, e := range f.Entries {
		if e.IsRecord() {
			out = append(out, e.Record)
		}
	}
	return out
}

// Add appends entries to the file.
func (f *File) Add(entries ...Entry) {
	f.Entries = append(f.Entries, entries...)
}
