// Package bibtex is the codec between BibTeX text and structured records.
//
// A parsed File is an ordered list of Entry values. Each entry is either a
// Record (kind, key and ordered fields) or verbatim pass-through text such as
// free-form comments and @comment, @preamble or @string blocks. Field values
// are kept as raw value expressions so that writing a file back reproduces
// the original quoting.
//
// # Usage
//
//	f, err := bibtex.Parse(reader)
//	for _, rec := range f.Records() {
//	    fmt.Println(rec.Key, rec.Text("title"))
//	}
//	err = bibtex.Write(w, f.Entries)
package bibtex
