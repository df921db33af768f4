package report

import (
	"fmt"
)

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Red. Indicates the engine could not honor its contract for some span.
	Error Level = 1 + iota
	// Yellow. Indicates something that probably should not be ignored.
	Warning
	// Cyan. This is the diagnostics version of "info".
	Remark
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Tag is a diagnostic tag: a machine-readable identification for a diagnostic.
//
// Tags should be lowercase identifiers separated by dashes, e.g. my-error-tag.
// If a package generates diagnostics with tags, it should expose those tags as
// constants.
type Tag string

// Diagnose is an error that can be rendered as a diagnostic.
type Diagnose interface {
	error

	// Diagnose writes out this error to the given diagnostic.
	//
	// This function should not set Level nor Err; those are set by the
	// diagnostics framework.
	Diagnose(*Diagnostic)
}

// Diagnostic is a type of error that can be rendered as a rich diagnostic.
//
// Not all Diagnostics are "errors", even though Diagnostic does embed error;
// some represent warnings, or perhaps remarks.
type Diagnostic struct {
	// The error that prompted this diagnostic. Its Error() return is used
	// as the diagnostic message.
	Err error

	// The machine-readable tag for this diagnostic, if it has one.
	Tag Tag

	// The kind of diagnostic this is, which affects how and whether it is
	// shown to users.
	Level Level

	// A list of annotated source code spans in the diagnostic.
	Annotations []Annotation

	// Notes and help messages to include at the end of the diagnostic, after
	// the annotations.
	Notes, Help []string
}

// Annotation is an annotated source code snippet within a [Diagnostic].
type Annotation struct {
	// The span this snippet covers.
	Span Span
	// A message to show under this snippet. May be empty.
	Message string
	// Whether this is a "primary" snippet, which is used for deciding whether
	// or not to mark the snippet with the same color as the overall
	// diagnostic.
	Primary bool
}

// Primary returns this diagnostic's primary span, if it has one.
//
// If it doesn't have one, it returns the zero span.
func (d *Diagnostic) Primary() Span {
	for _, annotation := range d.Annotations {
		if annotation.Primary {
			return annotation.Span
		}
	}
	return Span{}
}

// Is checks whether this diagnostic has a particular tag.
func (d *Diagnostic) Is(tag Tag) bool {
	return d.Tag == tag
}

// With applies the given options to this diagnostic.
func (d *Diagnostic) With(options ...DiagnosticOption) {
	for _, option := range options {
		if option != nil {
			option(d)
		}
	}
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
type DiagnosticOption func(*Diagnostic)

// Tagged returns a DiagnosticOption that tags the diagnostic.
func Tagged(tag Tag) DiagnosticOption {
	return func(d *Diagnostic) { d.Tag = tag }
}

// Snippet returns a DiagnosticOption that adds a new snippet to a diagnostic.
//
// The first annotation added is the "primary" annotation, and will be
// rendered differently from the others.
func Snippet(at Spanner) DiagnosticOption {
	return Snippetf(at, "")
}

// Snippetf is like [Snippet], but attaches a message to the snippet.
func Snippetf(at Spanner, format string, args ...any) DiagnosticOption {
	// This is hoisted out so that the annotation blames the invocation of
	// Snippetf, not of the returned closure.
	annotation := Annotation{
		Span:    at.Span(),
		Message: fmt.Sprintf(format, args...),
	}
	return func(d *Diagnostic) {
		annotation.Primary = len(d.Annotations) == 0
		d.Annotations = append(d.Annotations, annotation)
	}
}

// Note returns a DiagnosticOption that provides the user with context about
// the diagnostic, after the annotations.
func Note(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	}
}

// Help returns a DiagnosticOption that provides the user with a helpful prose
// suggestion for resolving the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Help = append(d.Help, fmt.Sprintf(format, args...))
	}
}

// Report is a collection of diagnostics.
type Report []Diagnostic

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) *Diagnostic {
	d := r.push(err, Error)
	err.Diagnose(d)
	return d
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) *Diagnostic {
	d := r.push(err, Warning)
	err.Diagnose(d)
	return d
}

// Errorf creates a new error diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Error)
}

// Warnf creates a new warning diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Warning)
}

// Remarkf creates a new remark diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Remark)
}

// Count returns the number of diagnostics of the given level in this report.
func (r *Report) Count(level Level) int {
	var n int
	for i := range *r {
		if (*r)[i].Level == level {
			n++
		}
	}
	return n
}

// push is the core "make me a diagnostic" function.
func (r *Report) push(err error, level Level) *Diagnostic {
	*r = append(*r, Diagnostic{Err: err, Level: level})
	return &(*r)[len(*r)-1]
}
