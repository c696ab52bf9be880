package bibtex

import "strings"

// Field is a single name/value pair of a record.
// Value holds the raw BibTeX value expression, delimiters included
// (e.g. `{Process Mining}`, `"Springer"`, `2011` or `jan # " 1"`).
type Field struct {
	Name  string
	Value string
}

// Record is a typed bibliographic entry such as @article or @inproceedings.
type Record struct {
	// Kind is the entry type as written in the source (e.g. "inproceedings").
	Kind string
	// Key is the citation key.
	Key string

	fields []Field
}

// NewRecord creates an empty record of the given kind and key.
func NewRecord(kind, key string) *Record {
	return &Record{Kind: kind, Key: key}
}

// Fields returns the fields in insertion order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Get returns the raw value of a field. Names are case-insensitive.
func (r *Record) Get(name string) (string, bool) {
	name = normalizeName(name)
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether the record carries the field.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Text returns the field value with its outer delimiters removed.
func (r *Record) Text(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	return Unquote(v)
}

// Set replaces the value of an existing field or appends a new one.
func (r *Record) Set(name, value string) {
	name = normalizeName(name)
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Delete removes a field if present.
func (r *Record) Delete(name string) {
	name = normalizeName(name)
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields = append(r.fields[:i], r.fields[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := &Record{Kind: r.Kind, Key: r.Key, fields: make([]Field, len(r.fields))}
	copy(c.fields, r.fields)
	return c
}

// IsKind reports whether the record is of the given kind, ignoring case.
func (r *Record) IsKind(kind string) bool {
	return strings.EqualFold(r.Kind, kind)
}

// Braced wraps a plain string as a braced BibTeX value.
func Braced(s string) string {
	return "{" + s + "}"
}

// Unquote strips one level of surrounding braces or quotes from a raw value.
// Concatenations and bare macros are returned unchanged.
func Unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < 2 {
		return v
	}
	switch {
	case v[0] == '{' && v[len(v)-1] == '}' && balancedInner(v[1:len(v)-1]):
		return v[1 : len(v)-1]
	case v[0] == '"' && v[len(v)-1] == '"':
		return v[1 : len(v)-1]
	}
	return v
}

// balancedInner reports whether braces in s never close below depth zero
// and end balanced, so "{a} # {b}" is not mistaken for one braced value.
func balancedInner(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
