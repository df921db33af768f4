package python

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/linewrap/linewrap/report"
)

// TagMalformedLiteral tags diagnostics for string literals with no valid
// closing delimiter. Such literals are excluded from rewriting.
const TagMalformedLiteral report.Tag = "malformed-literal"

// ErrMalformedLiteral is a diagnostic for a string literal that was never
// terminated.
type ErrMalformedLiteral struct {
	Span report.Span

	// Whether the scan hit end of input, rather than a raw newline inside a
	// single-line literal.
	EOF bool
}

// Error implements error.
func (e ErrMalformedLiteral) Error() string {
	if e.EOF {
		return "string literal not terminated before end of input"
	}
	return "string literal not terminated before end of line"
}

// Diagnose implements [report.Diagnose].
func (e ErrMalformedLiteral) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Tagged(TagMalformedLiteral),
		report.Snippetf(e.Span, "opened here"),
		report.Note("this literal is left unchanged"),
	)
}

// Scan lexes source text into a sequence of classified spans covering the
// whole file: code, comments, and string literals, in order, without
// overlap.
//
// Scanning never fails. A literal with no valid closing delimiter becomes a
// String token with a nil Literal, and a [ErrMalformedLiteral] diagnostic is
// appended to errs; the scan resumes past the offending region.
func Scan(file *report.File, errs *report.Report) []Token {
	l := &lexer{file: file, errs: errs}

	var prevCursor = -1
	for !l.done() {
		if l.cursor == prevCursor {
			panic(fmt.Sprintf("linewrap/python: lexer failed to make progress at offset %d; this is a bug in linewrap", l.cursor))
		}
		prevCursor = l.cursor

		start := l.cursor
		r := l.peek()
		switch {
		case r == '#':
			l.flushCode(start)
			// Seek to past the next newline, or EOF. The newline belongs to
			// the comment token.
			if _, ok := l.seekInclusive("\n"); !ok {
				l.seekEOF()
			}
			l.push(Comment, start, nil)

		case r == '\'' || r == '"':
			l.flushCode(start)
			l.lexString(start)

		case r == '_' || unicode.IsLetter(r):
			// An identifier. It might be a string prefix; if the very next
			// character is a quote and the identifier spells a legal prefix,
			// the identifier belongs to the literal.
			ident := l.takeWhile(isIdentContinue)
			next := l.peek()
			if _, ok := parsePrefix(ident); ok && (next == '\'' || next == '"') {
				l.flushCode(start)
				l.lexString(start)
			}

		case r == '\\':
			// A line continuation (or a stray backslash). Consume the
			// backslash and whatever follows it as a unit so quote parity
			// tracking cannot be fooled.
			l.pop()
			l.pop()

		default:
			l.pop()
		}
	}
	l.flushCode(l.cursor)

	return l.tokens
}

type lexer struct {
	file   *report.File
	errs   *report.Report
	cursor int

	// Start of the pending run of code, flushed before each comment or
	// string token.
	mark   int
	tokens []Token
}

// lexString lexes a string literal starting at start, with the cursor
// positioned at the opening quote. The prefix, if any, occupies
// [start, cursor).
func (l *lexer) lexString(start int) {
	q := l.pop()

	var triple bool
	if l.peek() == q {
		if l.peekAt(1) == q {
			l.pop()
			l.pop()
			triple = true
		} else {
			// An empty single-line literal.
			l.pop()
			l.pushLiteral(start)
			return
		}
	}

	for {
		if l.done() {
			l.malformed(start, true)
			return
		}

		r := l.pop()
		switch {
		case r == '\\':
			// An escaped character. Even in raw literals a backslash
			// prevents the following quote from terminating the literal, so
			// consuming the pair here keeps backslash-run parity correct for
			// every prefix.
			if !l.done() {
				l.pop()
			}

		case r == '\n' && !triple:
			// Back up so the newline stays outside the malformed token.
			l.cursor--
			l.malformed(start, false)
			return

		case r == q:
			if !triple {
				l.pushLiteral(start)
				return
			}
			if l.peek() == q && l.peekAt(1) == q {
				l.pop()
				l.pop()
				l.pushLiteral(start)
				return
			}
		}
	}
}

// pushLiteral parses and records a terminated literal occupying
// [start, cursor).
func (l *lexer) pushLiteral(start int) {
	span := l.file.Span(start, l.cursor)
	lit, err := Parse(span)
	if err != nil {
		// Scan delimited this span itself, so Parse cannot reject it unless
		// there is a bug; surface it as a diagnostic rather than guessing.
		l.errs.Errorf("internal: %v", err).With(report.Snippet(span))
		l.push(String, start, nil)
		return
	}
	l.push(String, start, lit)
}

// malformed records an unterminated literal and its diagnostic.
func (l *lexer) malformed(start int, eof bool) {
	span := l.file.Span(start, l.cursor)
	l.errs.Error(ErrMalformedLiteral{Span: span, EOF: eof})
	l.push(String, start, nil)
}

// flushCode emits the pending code run ending at end, if it is nonempty.
func (l *lexer) flushCode(end int) {
	if end > l.mark {
		l.tokens = append(l.tokens, Token{
			Kind: Code,
			Span: l.file.Span(l.mark, end),
		})
	}
	l.mark = end
}

// push emits a token for [start, cursor) and advances the code mark past it.
func (l *lexer) push(kind Kind, start int, lit *Literal) {
	l.tokens = append(l.tokens, Token{
		Kind:    kind,
		Span:    l.file.Span(start, l.cursor),
		Literal: lit,
	})
	l.mark = l.cursor
}

// done returns whether or not we're done lexing runes.
func (l *lexer) done() bool {
	return l.rest() == ""
}

// rest returns unlexed text.
func (l *lexer) rest() string {
	return l.file.Text()[l.cursor:]
}

// peek peeks the next character.
//
// Returns -1 at end of input.
func (l *lexer) peek() rune {
	return decodeRune(l.rest())
}

// peekAt peeks the character that is runes runes past the next one.
func (l *lexer) peekAt(runes int) rune {
	rest := l.rest()
	for ; runes > 0; runes-- {
		r := decodeRune(rest)
		if r == -1 {
			return -1
		}
		rest = rest[utf8.RuneLen(r):]
	}
	return decodeRune(rest)
}

// pop consumes the next character and returns it.
//
// Returns -1 at end of input.
func (l *lexer) pop() rune {
	r := l.peek()
	if r != -1 {
		l.cursor += utf8.RuneLen(r)
		return r
	}
	return -1
}

// takeWhile consumes characters while they match the given function, and
// returns them.
func (l *lexer) takeWhile(f func(rune) bool) string {
	start := l.cursor
	for !l.done() {
		r := l.peek()
		if r == -1 || !f(r) {
			break
		}
		_ = l.pop()
	}
	return l.file.Text()[start:l.cursor]
}

// seekInclusive seeks until the given needle is found; returns the prefix
// inclusive of that needle, and updates the cursor to point after it.
func (l *lexer) seekInclusive(needle string) (string, bool) {
	if idx := strings.Index(l.rest(), needle); idx != -1 {
		prefix := l.rest()[:idx+len(needle)]
		l.cursor += idx + len(needle)
		return prefix, true
	}
	return "", false
}

// seekEOF seeks the cursor to the end of the input and returns the remaining
// text.
func (l *lexer) seekEOF() string {
	rest := l.rest()
	l.cursor += len(rest)
	return rest
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// decodeRune is a wrapper around utf8.DecodeRuneInString that makes it
// easier to check for failure. Instead of returning RuneError (which is a
// valid rune!), it returns -1 at end of input.
func decodeRune(s string) rune {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && n < 2 {
		return -1
	}
	return r
}
