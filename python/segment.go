package python

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SegmentKind classifies a [Segment].
type SegmentKind byte

const (
	// Text is a run of plain characters, safe to split at whitespace run
	// boundaries.
	Text SegmentKind = iota
	// Escape is a single escape sequence. Atomic: never split.
	Escape
	// Expression is a brace-delimited replacement field in a formatted
	// literal. Atomic: never split, and its interior is not re-lexed.
	Expression
)

// String implements [fmt.Stringer].
func (k SegmentKind) String() string {
	switch k {
	case Text:
		return "Text"
	case Escape:
		return "Escape"
	case Expression:
		return "Expression"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// Segment is a typed slice of a literal's body.
//
// The segments of a body cover it exactly, in order, without overlap:
// concatenating their Text reproduces the body.
type Segment struct {
	Kind SegmentKind
	Text string
}

// maxExprDepth bounds replacement-field brace nesting. Beyond it, the rest
// of the body becomes a single atomic segment instead of recursing further.
const maxExprDepth = 32

// Segments decomposes the literal's body into typed segments.
//
// Raw literals produce no Escape segments: their backslashes are ordinary
// text. Expression segments appear only under the formatted prefix. Doubled
// braces in formatted literals are Text (they denote one literal brace).
func (l *Literal) Segments() []Segment {
	body := l.Body
	raw := l.Prefix.Has(Raw)
	formatted := l.Prefix.Has(Formatted)

	var segs []Segment
	textStart := 0
	flush := func(end int) {
		if end > textStart {
			segs = append(segs, Segment{Kind: Text, Text: body[textStart:end]})
		}
	}

	i := 0
	for i < len(body) {
		switch c := body[i]; {
		case c == '\\' && !raw:
			flush(i)
			n := escapeLen(body[i:], l.Prefix)
			segs = append(segs, Segment{Kind: Escape, Text: body[i : i+n]})
			i += n
			textStart = i

		case formatted && c == '{':
			if strings.HasPrefix(body[i:], "{{") {
				// A literal brace; stays in the text run.
				i += 2
				continue
			}
			flush(i)
			n := exprLen(body[i:], raw)
			segs = append(segs, Segment{Kind: Expression, Text: body[i : i+n]})
			i += n
			textStart = i

		case formatted && c == '}':
			// }} is a literal brace; a lone } is invalid in an f-string but
			// harmless to us, so both stay in the text run.
			if strings.HasPrefix(body[i:], "}}") {
				i += 2
			} else {
				i++
			}

		default:
			i++
		}
	}
	flush(len(body))

	return segs
}

// exprLen measures a replacement field starting at the { that opens s,
// counting nested brace depth to its matching }.
//
// An unterminated field, or one nested past maxExprDepth, extends to the end
// of s: the planner treats whatever we return as atomic, so overshooting is
// safe while guessing at a closer is not.
func exprLen(s string, raw bool) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
			if depth > maxExprDepth {
				return len(s)
			}
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		case '\\':
			// Escapes may appear in the format-spec tail, e.g. f"{x:\t}".
			if !raw && i+1 < len(s) {
				i++
			}
		}
	}
	return len(s)
}

// escapeLen measures the escape sequence beginning at the backslash that
// opens s, per Python's escape grammar. Unknown escapes are backslash plus
// one character; byte literals do not recognize \u, \U, or \N.
func escapeLen(s string, prefix Prefix) int {
	if len(s) < 2 {
		return len(s)
	}

	r, n := utf8.DecodeRuneInString(s[1:])
	switch {
	case r >= '0' && r <= '7':
		// Up to three octal digits.
		i := 2
		for i < 4 && i < len(s) && s[i] >= '0' && s[i] <= '7' {
			i++
		}
		return i

	case r == 'x':
		return hexRun(s, 2)

	case r == 'u' && !prefix.Has(Bytes):
		return hexRun(s, 4)

	case r == 'U' && !prefix.Has(Bytes):
		return hexRun(s, 8)

	case r == 'N' && !prefix.Has(Bytes):
		if strings.HasPrefix(s[2:], "{") {
			if end := strings.IndexByte(s, '}'); end >= 0 {
				return end + 1
			}
		}
		return 2

	default:
		return 1 + n
	}
}

// hexRun measures \x, \u, and \U escapes: two marker bytes plus up to
// digits hex digits. Python demands the exact digit count; if the source is
// short of that we still take what is there, since the segment must cover
// the body either way.
func hexRun(s string, digits int) int {
	i := 2
	for i < 2+digits && i < len(s) && isHexDigit(s[i]) {
		i++
	}
	return i
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
