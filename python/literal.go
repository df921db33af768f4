package python

import (
	"fmt"
	"strings"

	"github.com/linewrap/linewrap/report"
)

// Prefix is a set of string-literal prefix flags.
//
// The prefix selects the literal's subtype: raw literals perform no escape
// processing, byte literals hold binary content, and formatted literals
// contain replacement fields. The unicode prefix is inert in Python 3 but is
// still legal, so it round-trips through here.
type Prefix uint8

const (
	Raw Prefix = 1 << iota
	Bytes
	Formatted
	Unicode
)

// Has reports whether p contains every flag in flags.
func (p Prefix) Has(flags Prefix) bool {
	return p&flags == flags
}

// parsePrefix interprets s as a literal prefix. Prefix letters are
// case-insensitive and order-insensitive, but only certain combinations are
// legal: r, b, u, f alone, rb in either order and any case, and rf likewise.
func parsePrefix(s string) (Prefix, bool) {
	if len(s) > 2 {
		return 0, false
	}
	var p Prefix
	for _, r := range s {
		var flag Prefix
		switch r {
		case 'r', 'R':
			flag = Raw
		case 'b', 'B':
			flag = Bytes
		case 'f', 'F':
			flag = Formatted
		case 'u', 'U':
			flag = Unicode
		default:
			return 0, false
		}
		if p.Has(flag) {
			return 0, false // Repeated letter.
		}
		p |= flag
	}

	switch {
	case p.Has(Bytes | Formatted),
		p.Has(Unicode) && p != Unicode:
		// b and f cannot combine, and u combines with nothing.
		return 0, false
	}
	return p, true
}

// Literal is a decomposed string literal.
//
// Re-serializing PrefixText + quote run + Body + quote run reproduces the
// original source text of the literal exactly.
type Literal struct {
	// The span of the whole literal, prefix and delimiters included.
	Span report.Span

	// The prefix flags, and their original spelling (case and order
	// preserved).
	Prefix     Prefix
	PrefixText string

	// The quote character, ' or ".
	Quote byte

	// Whether this is a triple-quoted literal.
	Triple bool

	// The raw characters between the opening and closing quote runs,
	// unprocessed. Never includes the delimiters.
	Body string
}

// Parse decomposes the raw text of a string-literal span.
//
// The span must cover a complete, terminated literal; [Scan] only calls this
// for spans it has already delimited.
func Parse(span report.Span) (*Literal, error) {
	text := span.Text()

	quoteAt := strings.IndexAny(text, `'"`)
	if quoteAt < 0 {
		return nil, fmt.Errorf("no quote character in %q", text)
	}

	prefix, ok := parsePrefix(text[:quoteAt])
	if !ok {
		return nil, fmt.Errorf("invalid string prefix %q", text[:quoteAt])
	}

	lit := &Literal{
		Span:       span,
		Prefix:     prefix,
		PrefixText: text[:quoteAt],
		Quote:      text[quoteAt],
	}

	rest := text[quoteAt:]
	quotes := 1
	if strings.HasPrefix(rest, strings.Repeat(string(lit.Quote), 3)) {
		lit.Triple = true
		quotes = 3
	}

	if len(rest) < 2*quotes ||
		rest[len(rest)-quotes:] != rest[:quotes] {
		return nil, fmt.Errorf("literal %q is not terminated by %q", text, rest[:quotes])
	}

	lit.Body = rest[quotes : len(rest)-quotes]
	return lit, nil
}

// Quotes returns the literal's delimiting quote run: one quote character, or
// three for triple-quoted literals.
func (l *Literal) Quotes() string {
	if l.Triple {
		return strings.Repeat(string(l.Quote), 3)
	}
	return string(l.Quote)
}

// Indentation returns the leading whitespace of the line the literal starts
// on.
func (l *Literal) Indentation() string {
	return l.Span.Indentation()
}

// StartColumn returns the zero-based terminal column at which the literal's
// first character sits.
func (l *Literal) StartColumn() int {
	lineStart := l.Span.File.LineStart(l.Span.Start)
	return report.StringWidth(0, l.Span.File.Text()[lineStart:l.Span.Start])
}
