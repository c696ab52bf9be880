package bibtex

import (
	"bufio"
	"io"
	"strings"
)

// Format renders a single record.
func Format(r *Record) string {
	if r == nil {
		return "NULL"
	}
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(r.Kind)
	b.WriteString("{")
	b.WriteString(r.Key)
	for _, f := range r.fields {
		b.WriteString(",\n  ")
		b.WriteString(f.Name)
		b.WriteString(" = ")
		b.WriteString(f.Value)
	}
	b.WriteString("\n}\n")
	return b.String()
}

// Write serializes entries, separated by blank lines.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for i, e := range entries {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		var s string
		if e.IsRecord() {
			s = Format(e.Record)
		} else {
			s = strings.TrimRight(e.Text, "\n") + "\n"
		}
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTo serializes the file.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := Write(cw, f.Entries)
	return cw.n, err
}

// String renders the whole file.
func (f *File) String() string {
	var b strings.Builder
	_, _ = f.WriteTo(&b)
	return b.String()
}

func commentLines(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "%") {
			continue
		}
		lines[i] = "% " + l
	}
	return strings.Join(lines, "\n")
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
