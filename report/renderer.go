package report

import (
	"fmt"
	"io"
	"strings"
)

// Renderer renders a [Report] into human-readable text.
//
// The zero value is a plain-text renderer.
type Renderer struct {
	// If set, only diagnostics at or above this level are rendered.
	// The zero value renders everything.
	MinLevel Level
}

// Render writes every diagnostic in r to w, in order.
func (rn Renderer) Render(r Report, w io.Writer) error {
	for i := range r {
		d := &r[i]
		if rn.MinLevel != 0 && d.Level > rn.MinLevel {
			continue
		}
		if err := rn.diagnostic(d, w); err != nil {
			return err
		}
	}
	return nil
}

// RenderString is like [Renderer.Render], but renders into a string.
func (rn Renderer) RenderString(r Report) string {
	var buf strings.Builder
	_ = rn.Render(r, &buf)
	return buf.String()
}

func (rn Renderer) diagnostic(d *Diagnostic, w io.Writer) error {
	message := d.Err.Error()
	if d.Tag != "" {
		message += fmt.Sprintf(" [%s]", d.Tag)
	}
	for line := range wordWrap(fmt.Sprintf("%s: %s", d.Level, message), MaxMessageWidth) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for _, annotation := range d.Annotations {
		if annotation.Span.IsZero() {
			continue
		}

		loc := annotation.Span.StartLoc()
		if _, err := fmt.Fprintf(w, "  --> %s:%d:%d\n", annotation.Span.Path(), loc.Line, loc.Column); err != nil {
			return err
		}

		line := annotation.Span.File.Line(loc.Line)
		gutter := fmt.Sprintf("%d", loc.Line)
		pad := strings.Repeat(" ", len(gutter))

		// Underline the annotated columns of the first line of the span.
		start, _ := annotation.Span.File.LineOffsets(loc.Line)
		hiStart := annotation.Span.Start - start
		hiEnd := min(annotation.Span.End-start, len(line))
		prefix := StringWidth(0, line[:hiStart])
		underline := strings.Repeat(" ", prefix) +
			strings.Repeat("^", max(1, StringWidth(prefix, line[hiStart:hiEnd])-prefix))

		if _, err := fmt.Fprintf(w, "%s |\n%s | %s\n%s | %s %s\n", pad, gutter, line, pad, underline, annotation.Message); err != nil {
			return err
		}
	}

	for _, note := range d.Notes {
		for line := range wordWrap("note: "+note, MaxMessageWidth) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	for _, help := range d.Help {
		for line := range wordWrap("help: "+help, MaxMessageWidth) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	return nil
}
