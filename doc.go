// Package linewrap rewrites over-long Python string literals so that no
// line exceeds a configured column width, without changing what the program
// means. "Rewrite" here is purely lexical: the engine scans for string
// literals, decides where each one may be safely split, and re-emits it as
// an implicit concatenation of adjacent literals (or, for triple-quoted
// literals, with wrapped lines inside the one literal). It never parses
// expressions or statements, and it never touches code, comments, or
// anything else that is not a string literal.
//
// The engine is a pure text-to-text transform. [Rewrap] returns a batch of
// edits plus diagnostics; nothing is modified until the caller applies the
// edits, so a caller that changes its mind simply drops them. Hosts (an
// editor plugin, the bundled CLI) own all I/O and triggering policy.
package linewrap
