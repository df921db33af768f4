// Package python provides a minimal lexical model of Python source text:
// just enough to find string literals, classify everything else as code or
// comment, and decompose literal bodies into wrap-safe segments.
//
// It is not a Python parser. Expressions, statements, and scoping are
// invisible to it; the only grammar it knows is the string-literal grammar
// (prefixes, quote styles, escapes, and f-string replacement fields) and the
// comment marker.
package python

import (
	"fmt"

	"github.com/linewrap/linewrap/report"
)

// Kind classifies a [Token].
type Kind byte

const (
	// Code is anything that is not a comment or a string literal.
	Code Kind = iota
	// Comment is a #-comment, including the trailing newline if present.
	Comment
	// String is a string literal, including its prefix and delimiters.
	String
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Code:
		return "Code"
	case Comment:
		return "Comment"
	case String:
		return "String"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a classified span of source text.
//
// The tokens produced by [Scan] cover the scanned text exactly, in order,
// without overlap. Tokens are valid only for the text they were scanned
// from; any edit invalidates them.
type Token struct {
	Kind Kind
	Span report.Span

	// Literal is the parsed literal for well-formed String tokens. It is nil
	// for other kinds, and for String tokens that were diagnosed as
	// malformed.
	Literal *Literal
}
