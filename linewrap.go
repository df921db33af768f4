package linewrap

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/linewrap/linewrap/internal/interval"
	"github.com/linewrap/linewrap/python"
	"github.com/linewrap/linewrap/report"
	"github.com/linewrap/linewrap/wrap"
)

// DefaultMaxWidth is the column budget used when [Options.MaxWidth] is zero.
const DefaultMaxWidth = 79

// Options configures a single [Rewrap] invocation.
type Options struct {
	// The maximum line width, in terminal columns. Zero means
	// [DefaultMaxWidth].
	MaxWidth int

	// If non-nil, only literals intersecting this span are considered.
	// A literal partially inside the scope is rewritten whole.
	Scope *report.Span
}

// Edit is one replacement to perform on the scanned text.
type Edit struct {
	// The span of original text to replace.
	Span report.Span
	// The text to replace it with.
	Replacement string
}

// Result is the outcome of a successful [Rewrap] invocation.
//
// Diagnostics are not errors: a result may carry malformed-literal or
// unavoidable-overflow diagnostics and still have perfectly good edits.
// Callers are expected to surface them without aborting.
type Result struct {
	// The edits to apply, sorted by descending start offset so that
	// applying them in order never invalidates a later offset.
	Edits []Edit

	// Diagnostics accumulated over the whole pass.
	Report report.Report
}

// ErrInvalidConfiguration is returned when the configuration cannot be
// honored at all, such as a non-positive width or one smaller than a
// literal's fixed overhead. No edits are produced: the invocation fails as
// a whole rather than applying partially.
type ErrInvalidConfiguration struct {
	Err error
}

// Error implements error.
func (e ErrInvalidConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

// Unwrap implements the implicit errors.Unwrap interface.
func (e ErrInvalidConfiguration) Unwrap() error {
	return e.Err
}

// Rewrap scans file for string literals whose lines exceed the width budget
// and computes the edits that wrap them.
//
// The call is atomic: either every literal that requires rewriting has an
// edit in the result, or an error is returned and there are no edits.
// Literals that cannot be rewritten safely (malformed, or containing an
// unsplittable over-wide segment) are reported as diagnostics, never
// guessed at.
func Rewrap(file *report.File, opts Options) (Result, error) {
	maxWidth := opts.MaxWidth
	if maxWidth == 0 {
		maxWidth = DefaultMaxWidth
	}
	if maxWidth < 0 {
		return Result{}, ErrInvalidConfiguration{
			Err: fmt.Errorf("max width must be positive, got %d", maxWidth),
		}
	}

	var res Result
	tokens := python.Scan(file, &res.Report)

	// Index the literals so scope queries don't rescan the token slice.
	var lits interval.Map[int, *python.Literal]
	for _, tok := range tokens {
		if tok.Kind == python.String && tok.Literal != nil && tok.Span.Len() > 0 {
			lits.Insert(tok.Span.Start, tok.Span.End-1, tok.Literal)
		}
	}

	start, end := 0, len(file.Text())
	if opts.Scope != nil {
		start, end = opts.Scope.Start, opts.Scope.End
	}

	for iv := range lits.Overlapping(start, max(start, end-1)) {
		lit := *iv.Value
		if !needsWrap(file, lit, maxWidth) {
			continue
		}

		plan, err := wrap.PlanLiteral(lit, maxWidth, &res.Report)
		if err != nil {
			return Result{Report: res.Report}, ErrInvalidConfiguration{Err: err}
		}
		if text, ok := wrap.Rewrite(plan); ok {
			res.Edits = append(res.Edits, Edit{Span: lit.Span, Replacement: text})
		}
	}

	slices.SortFunc(res.Edits, func(a, b Edit) int {
		return cmp.Compare(b.Span.Start, a.Span.Start)
	})
	return res, nil
}

// Apply applies a batch of edits to the text they were computed from and
// returns the rewritten text.
//
// The spans of distinct edits must not overlap; [Rewrap] guarantees this
// for the batches it produces.
func Apply(text string, edits []Edit) string {
	if len(edits) == 0 {
		return text
	}

	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b Edit) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})

	var buf strings.Builder
	last := 0
	for _, e := range sorted {
		buf.WriteString(text[last:e.Span.Start])
		buf.WriteString(e.Replacement)
		last = e.Span.End
	}
	buf.WriteString(text[last:])
	return buf.String()
}

// needsWrap reports whether any physical line the literal occupies exceeds
// the budget. Short literals produce zero edits no matter what.
func needsWrap(file *report.File, lit *python.Literal, maxWidth int) bool {
	first := file.Location(lit.Span.Start).Line
	last := file.Location(lit.Span.End).Line
	for line := first; line <= last; line++ {
		if report.StringWidth(0, file.Line(line)) > maxWidth {
			return true
		}
	}
	return false
}
