package reconcile

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"bibcleaner/core/bibtex"
)

const (
	cleanedSuffix  = "_cleaned.bib"
	crossrefSuffix = "_cleaned_crossref.bib"
)

// OutputPaths derives the two output file paths from the source path.
// An empty dir places them next to the source.
func OutputPaths(source, dir string) (regular, crossref string) {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, base+cleanedSuffix), filepath.Join(dir, base+crossrefSuffix)
}

// Header is the comment placed at the top of the regular output.
func Header(source string, at time.Time) string {
	return fmt.Sprintf("This bibtex file was cleaned by bibcleaner using DBLP\nCleaned version of %s\nCleaned on %s",
		filepath.Base(source), at.Format(time.RFC1123))
}

// Files renders the result as the regular and cross-referenced files, each
// starting with a header comment.
func (r *Result) Files(source string, at time.Time) (regular, crossref *bibtex.File) {
	header := Header(source, at)
	regular = &bibtex.File{}
	regular.Add(bibtex.Comment(header))
	regular.Add(r.Partition.Regular...)

	crossref = &bibtex.File{}
	crossref.Add(bibtex.Comment(header + "\nCrossreference bibtex file!"))
	crossref.Add(r.Partition.Crossref...)
	return regular, crossref
}
