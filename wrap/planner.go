// Package wrap decides where over-long string literals may be split, and
// serializes the replacement text.
//
// The planner consumes the typed segments built by package python and never
// looks inside an Escape or Expression segment: those are atomic. All width
// arithmetic is in terminal columns, the same unit editors draw in.
package wrap

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/linewrap/linewrap/internal/ext/stringsx"
	"github.com/linewrap/linewrap/python"
	"github.com/linewrap/linewrap/report"
)

// TagUnavoidableOverflow tags diagnostics for chunks that had to be emitted
// wider than the configured maximum because no legal break existed.
const TagUnavoidableOverflow report.Tag = "unavoidable-overflow"

// ErrUnavoidableOverflow is a diagnostic for a segment that cannot be split
// and does not fit in the width budget on its own.
type ErrUnavoidableOverflow struct {
	Span report.Span
	Max  int
}

// Error implements error.
func (e ErrUnavoidableOverflow) Error() string {
	return fmt.Sprintf("no legal break fits this within %d columns", e.Max)
}

// Diagnose implements [report.Diagnose].
func (e ErrUnavoidableOverflow) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Tagged(TagUnavoidableOverflow),
		report.Snippetf(e.Span, "cannot be split"),
		report.Note("the line is emitted over-long rather than corrupting the literal"),
	)
}

// ErrBudgetTooSmall reports that the configured maximum width cannot
// accommodate even a literal's fixed overhead (indentation, prefix, and
// quotes), so no chunk of it could ever fit. It aborts the whole invocation.
type ErrBudgetTooSmall struct {
	Literal  *python.Literal
	MaxWidth int
}

// Error implements error.
func (e ErrBudgetTooSmall) Error() string {
	return fmt.Sprintf(
		"max width %d is smaller than the fixed overhead of the literal at %s",
		e.MaxWidth, e.Literal.Span)
}

// Break marks one wrap seam in a literal's body.
//
// For single-line literals, Start == End: nothing is removed, and the
// rewriter closes the left chunk and opens a new adjacent literal at that
// offset. For triple-quoted literals, [Start, End) covers the whitespace
// run the seam replaces with a newline plus Indent.
type Break struct {
	Start, End int

	// Leading whitespace for the continuation line. Only set for
	// triple-quoted literals; single-line continuations reuse the literal's
	// own line indentation.
	Indent string
}

// Plan is an ordered sequence of breaks for one literal.
//
// The zero-break plan means the literal already fits and no rewrite is
// needed.
type Plan struct {
	Literal *python.Literal
	Breaks  []Break
}

// IsEmpty reports whether this plan requires no rewrite.
func (p Plan) IsEmpty() bool {
	return len(p.Breaks) == 0
}

// PlanLiteral computes the breaks needed so that every line the literal
// occupies fits within maxWidth columns, where a legal break exists.
//
// Chunks that cannot be made to fit are emitted oversized with an
// [ErrUnavoidableOverflow] diagnostic appended to errs. A maxWidth too small
// for the literal's fixed overhead returns [ErrBudgetTooSmall].
//
// Planning is idempotent: a literal produced by a previous rewrite yields an
// empty plan.
func PlanLiteral(lit *python.Literal, maxWidth int, errs *report.Report) (Plan, error) {
	if lit.Triple {
		return planTriple(lit, maxWidth, errs)
	}
	return planSingle(lit, maxWidth, errs)
}

func planSingle(lit *python.Literal, maxWidth int, errs *report.Report) (Plan, error) {
	overhead := report.StringWidth(0, lit.PrefixText) + 2
	indent := report.StringWidth(0, lit.Indentation())

	c := &chunker{
		lit:  lit,
		errs: errs,
		max:  maxWidth,

		// The first chunk shares its line with whatever precedes the
		// literal; continuations get the full width minus indentation.
		first:  maxWidth - lit.StartColumn() - overhead,
		budget: maxWidth - indent - overhead,
		lastWS: -1,
	}
	if c.budget <= 0 {
		return Plan{}, ErrBudgetTooSmall{Literal: lit, MaxWidth: maxWidth}
	}
	if c.first < 1 {
		// The literal opens at or beyond the budget already; the first line
		// is over-long no matter what we do, and that is the surrounding
		// code's fault, not the literal's. Give the first chunk one column
		// so planning can proceed.
		c.first = 1
	}

	var off int
	for _, seg := range lit.Segments() {
		switch seg.Kind {
		case python.Text:
			for at, piece := range stringsx.PartitionKey(seg.Text, isSpace) {
				c.piece(off+at, piece, isSpace(rune(piece[0])))
			}
		default:
			c.atomic(off, seg.Text)
		}
		off += len(seg.Text)
	}

	// A forced break after a final oversized segment would open an empty
	// trailing chunk; drop it.
	if n := len(c.breaks); n > 0 && c.breaks[n-1].Start >= len(lit.Body) {
		c.breaks = c.breaks[:n-1]
	}

	return Plan{Literal: lit, Breaks: c.breaks}, nil
}

// chunker greedily packs body content into budget-sized chunks, left to
// right.
type chunker struct {
	lit  *python.Literal
	errs *report.Report
	max  int

	first, budget int

	breaks     []Break
	chunkStart int
	col        int
	// Byte offset just past the last whitespace run wholly inside the
	// current chunk, or -1.
	lastWS int
}

func (c *chunker) limit() int {
	if len(c.breaks) == 0 {
		return c.first
	}
	return c.budget
}

// piece adds one whitespace or word run of a Text segment.
func (c *chunker) piece(pos int, text string, space bool) {
	for text != "" {
		w := report.StringWidth(c.col, text) - c.col
		if c.col+w <= c.limit() {
			c.col += w
			if space {
				c.lastWS = pos + len(text)
			}
			return
		}

		// The piece crosses the budget. Back up to the rightmost whitespace
		// run already inside this chunk, if any.
		if c.lastWS > c.chunkStart {
			c.breakAt(c.lastWS, pos)
			continue
		}

		if c.col > 0 {
			// No whitespace to back up to; break just before the piece
			// rather than splitting a word.
			c.breakAt(pos, pos)
			continue
		}

		// The piece alone exceeds an empty chunk's budget: no legal
		// alternative remains, so hard-break at the budget column, even
		// mid-word.
		cut := c.hardCut(text, c.limit())
		if cut == 0 {
			// Every cut would split a doubled brace or strand a raw
			// backslash; emit the rest oversized and flag it.
			c.errs.Error(ErrUnavoidableOverflow{Span: c.bodySpan(pos, pos+len(text)), Max: c.max})
			c.breakAt(pos+len(text), pos+len(text))
			return
		}
		c.breakAt(pos+cut, pos+cut)
		pos += cut
		text = text[cut:]
	}
}

// hardCut returns the length in bytes of the widest prefix of text that
// fits within budget columns and leaves both sides of the cut lexically
// intact. A cut may not separate the braces of a doubled {{ or }} in a
// formatted literal, and in a raw literal the chunk may not end in an
// unpaired backslash, which would escape its closing quote. Returns 0 when
// no such cut exists.
func (c *chunker) hardCut(text string, budget int) int {
	cut := graphemeCut(text, budget)
	formatted := c.lit.Prefix.Has(python.Formatted)
	raw := c.lit.Prefix.Has(python.Raw)
	for cut > 0 {
		switch {
		case formatted && cut < len(text) && text[cut] == text[cut-1] &&
			(text[cut] == '{' || text[cut] == '}') && oddRun(text, cut, text[cut]):
		case raw && oddRun(text, cut, '\\'):
		default:
			return cut
		}
		// The byte before the cut is ASCII, so backing up one byte keeps
		// the cut on a rune boundary.
		cut--
	}
	return 0
}

// oddRun reports whether the run of b bytes ending just before cut has odd
// length.
func oddRun(text string, cut int, b byte) bool {
	n := 0
	for n < cut && text[cut-1-n] == b {
		n++
	}
	return n%2 == 1
}

// atomic adds a whole Escape or Expression segment, which may never be
// split.
func (c *chunker) atomic(pos int, text string) {
	w := report.StringWidth(c.col, text) - c.col
	if c.col+w <= c.limit() {
		c.col += w
		return
	}

	if c.col > 0 {
		// Break immediately before the segment.
		c.breakAt(pos, pos)
		if w <= c.limit() {
			c.col = w
			return
		}
	}

	// Even alone it does not fit. Emit it oversized, flag it, and force the
	// next content onto a fresh chunk.
	c.errs.Error(ErrUnavoidableOverflow{Span: c.bodySpan(pos, pos+len(text)), Max: c.max})
	c.col += w
	c.breakAt(pos+len(text), pos+len(text))
}

// breakAt records a seam at b. Content in [b, resume) has already been
// measured into the closing chunk and now belongs to the new one.
func (c *chunker) breakAt(b, resume int) {
	c.breaks = append(c.breaks, Break{Start: b, End: b})
	c.chunkStart = b
	c.lastWS = -1
	c.col = report.StringWidth(0, c.lit.Body[b:resume])
}

// bodySpan maps body offsets back to file offsets.
func (c *chunker) bodySpan(start, end int) report.Span {
	base := c.lit.Span.Start + len(c.lit.PrefixText) + len(c.lit.Quotes())
	return c.lit.Span.File.Span(base+start, base+end)
}

// planTriple wraps each over-long physical line of a triple-quoted body at
// its whitespace runs. Lines are never merged, so paragraph structure (and
// in particular blank lines) is preserved as-is, and a line with no
// breakable whitespace is flagged rather than split mid-word: a hard break
// here would insert a newline into the decoded value.
func planTriple(lit *python.Literal, maxWidth int, errs *report.Report) (Plan, error) {
	overhead := report.StringWidth(0, lit.PrefixText) + 2*3
	if maxWidth-overhead <= 0 {
		return Plan{}, ErrBudgetTooSmall{Literal: lit, MaxWidth: maxWidth}
	}

	atomic := atomicRanges(lit)
	plan := Plan{Literal: lit}

	// The first body line shares its physical line with the prefix and
	// opening quotes.
	startCol := lit.StartColumn() + report.StringWidth(0, lit.PrefixText) + 3

	var off int
	for line := range stringsx.Lines(lit.Body) {
		lineStart := off
		off += len(line) + 1

		col := report.StringWidth(0, line)
		if lineStart == 0 {
			col = report.StringWidth(startCol, line)
		}
		if off > len(lit.Body) {
			// The last body line also carries the closing quotes.
			col += 3
		}
		if col <= maxWidth {
			continue
		}

		plan.Breaks = append(plan.Breaks, wrapBodyLine(lit, lineStart, line, maxWidth, atomic, errs)...)
	}

	return plan, nil
}

// wrapBodyLine computes the seams for one over-long physical line.
func wrapBodyLine(lit *python.Literal, lineStart int, line string, maxWidth int, atomic []Break, errs *report.Report) []Break {
	indent := leadingWhitespace(line)
	indentW := report.StringWidth(0, indent)

	var breaks []Break
	col := 0
	if lineStart == 0 {
		col = lit.StartColumn() + report.StringWidth(0, lit.PrefixText) + 3
	}

	// The best seam candidate inside the current output line, and whether
	// the current output line has already been flagged as over-long.
	var lastRun Break
	var haveRun, flagged bool

	for at, piece := range stringsx.PartitionKey(line, isSpace) {
		pos := lineStart + at
		w := report.StringWidth(col, piece) - col

		if isSpace(rune(piece[0])) {
			// Only whitespace wholly outside atomic segments, and beyond
			// the line's own indentation, is a legal seam.
			if at >= len(indent) && !insideAtomic(atomic, pos, pos+len(piece)) {
				lastRun = Break{Start: pos, End: pos + len(piece), Indent: indent}
				haveRun = true
			}
			col += w
			continue
		}

		if col+w > maxWidth {
			if haveRun {
				breaks = append(breaks, lastRun)
				// Re-measure from the seam through the end of this piece.
				col = indentW + report.StringWidth(0, line[lastRun.End-lineStart:at+len(piece)])
				haveRun, flagged = false, false
				continue
			}
			if !flagged {
				// No seam is available; this output line stays over-long.
				errs.Error(ErrUnavoidableOverflow{
					Span: lit.Span.File.Span(bodyBase(lit)+pos, bodyBase(lit)+pos+len(piece)),
					Max:  maxWidth,
				})
				flagged = true
			}
		}

		col += w
	}

	return breaks
}

// atomicRanges collects the body ranges covered by Escape and Expression
// segments, in order.
func atomicRanges(lit *python.Literal) []Break {
	var ranges []Break
	var off int
	for _, seg := range lit.Segments() {
		if seg.Kind != python.Text {
			ranges = append(ranges, Break{Start: off, End: off + len(seg.Text)})
		}
		off += len(seg.Text)
	}
	return ranges
}

func insideAtomic(ranges []Break, start, end int) bool {
	for _, r := range ranges {
		if start < r.End && r.Start < end {
			return true
		}
	}
	return false
}

func bodyBase(lit *python.Literal) int {
	return lit.Span.Start + len(lit.PrefixText) + len(lit.Quotes())
}

func leadingWhitespace(s string) string {
	for i, r := range s {
		if !isSpace(r) {
			return s[:i]
		}
	}
	return s
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// graphemeCut returns the length in bytes of the widest prefix of s, in
// whole grapheme clusters, that fits within budget columns. At least one
// cluster is always taken so the caller makes progress.
func graphemeCut(s string, budget int) int {
	var cut, col int
	for gs := uniseg.NewGraphemes(s); gs.Next(); {
		g := gs.Str()
		w := report.StringWidth(col, g) - col
		if cut > 0 && col+w > budget {
			break
		}
		cut += len(g)
		col += w
	}
	return cut
}
