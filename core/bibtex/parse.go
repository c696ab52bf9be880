package bibtex

import (
	"fmt"
	"io"
	"strings"
)

// ParseError reports malformed BibTeX input.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bibtex: line %d: %s", e.Line, e.Msg)
}

// Parse reads a complete BibTeX document.
// Text outside entries and the @comment, @preamble and @string blocks are
// kept as pass-through entries so they survive a round trip.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bibtex: read input: %w", err)
	}
	return ParseString(string(data))
}

// ParseString parses BibTeX text.
func ParseString(s string) (*File, error) {
	p := &parser{src: s, line: 1}
	return p.parseFile()
}

// ParseRecord parses text expected to hold at least one record and returns
// the first one. It returns nil when the text holds no parseable record.
func ParseRecord(s string) *Record {
	f, err := ParseString(s)
	if err != nil {
		return nil
	}
	for _, e := range f.Entries {
		if e.IsRecord() {
			return e.Record
		}
	}
	return nil
}

type parser struct {
	src  string
	pos  int
	line int
}

func (p *parser) parseFile() (*File, error) {
	f := &File{}
	textStart := 0
	for p.pos < len(p.src) {
		if p.src[p.pos] != '@' {
			p.advance()
			continue
		}
		save, saveLine := p.pos, p.line
		p.advance()
		kind := p.readIdent()
		p.skipSpace()
		if kind == "" || p.pos >= len(p.src) || (p.src[p.pos] != '{' && p.src[p.pos] != '(') {
			// A stray '@' in free text.
			continue
		}
		if text := strings.TrimSpace(p.src[textStart:save]); text != "" {
			f.Add(PassThrough(text))
		}
		entry, err := p.parseEntry(kind, save, saveLine)
		if err != nil {
			return nil, err
		}
		f.Add(entry)
		textStart = p.pos
	}
	if text := strings.TrimSpace(p.src[textStart:]); text != "" {
		f.Add(PassThrough(text))
	}
	return f, nil
}

// parseEntry parses the body of an entry whose '@kind' has been consumed.
func (p *parser) parseEntry(kind string, start, startLine int) (Entry, error) {
	open := p.src[p.pos]
	closer := byte('}')
	if open == '(' {
		closer = ')'
	}

	switch strings.ToLower(kind) {
	case "comment", "preamble", "string":
		if err := p.skipBalanced(open, closer, startLine); err != nil {
			return Entry{}, err
		}
		return PassThrough(p.src[start:p.pos]), nil
	}

	p.advance()
	p.skipSpace()
	keyStart := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != closer && !isSpace(p.src[p.pos]) {
		p.advance()
	}
	key := p.src[keyStart:p.pos]
	p.skipSpace()
	if p.pos >= len(p.src) {
		return Entry{}, p.errorf("unexpected end of input in @%s entry starting at line %d", kind, startLine)
	}
	if key == "" {
		return Entry{}, p.errorf("empty key in @%s entry", kind)
	}
	if c := p.src[p.pos]; c != ',' && c != closer {
		return Entry{}, p.errorf("malformed key %q in @%s entry starting at line %d", key, kind, startLine)
	}
	rec := NewRecord(kind, key)

	for {
		if p.pos >= len(p.src) {
			return Entry{}, p.errorf("unexpected end of input in entry %q", key)
		}
		c := p.src[p.pos]
		if c == closer {
			p.advance()
			return RecordEntry(rec), nil
		}
		if c != ',' {
			return Entry{}, p.errorf("expected ',' or '%c' in entry %q, found %q", closer, key, c)
		}
		p.advance()
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == closer {
			// Trailing comma.
			continue
		}
		name := p.readIdent()
		if name == "" {
			return Entry{}, p.errorf("expected field name in entry %q", key)
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '=' {
			return Entry{}, p.errorf("expected '=' after field %q in entry %q", name, key)
		}
		p.advance()
		p.skipSpace()
		value, err := p.readValue(closer)
		if err != nil {
			return Entry{}, err
		}
		rec.Set(name, value)
		p.skipSpace()
	}
}

// readValue reads a value expression: parts joined by '#'.
func (p *parser) readValue(closer byte) (string, error) {
	start := p.pos
	for {
		if p.pos >= len(p.src) {
			return "", p.errorf("unexpected end of input in field value")
		}
		switch c := p.src[p.pos]; c {
		case '{':
			if err := p.skipBalanced('{', '}', p.line); err != nil {
				return "", err
			}
		case '"':
			if err := p.skipQuoted(); err != nil {
				return "", err
			}
		default:
			tokStart := p.pos
			for p.pos < len(p.src) {
				c := p.src[p.pos]
				if c == ',' || c == closer || c == '#' || isSpace(c) {
					break
				}
				p.advance()
			}
			if p.pos == tokStart {
				return "", p.errorf("empty field value")
			}
		}
		end := p.pos
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '#' {
			p.advance()
			p.skipSpace()
			continue
		}
		return strings.TrimSpace(p.src[start:end]), nil
	}
}

// skipBalanced consumes from an opening delimiter to its matching closer.
func (p *parser) skipBalanced(open, closer byte, startLine int) error {
	depth := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.advance()
		switch c {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
	return &ParseError{Line: startLine, Msg: "unbalanced delimiters"}
}

// skipQuoted consumes a double-quoted value. Quotes nested in braces do not terminate it.
func (p *parser) skipQuoted() error {
	startLine := p.line
	p.advance()
	depth := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.advance()
		switch c {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				return nil
			}
		}
	}
	return &ParseError{Line: startLine, Msg: "unterminated quoted value"}
}

func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.advance()
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.advance()
	}
}

func (p *parser) advance() {
	if p.src[p.pos] == '\n' {
		p.line++
	}
	p.pos++
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-' || c == ':' || c == '.' || c == '+' || c == '/':
		return true
	}
	return false
}
