package report

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"
)

// Spanner is any type with a [Span].
type Spanner interface {
	// Should return the zero [Span] to indicate that it does not contribute
	// span information.
	Span() Span
}

// Span is a half-open byte range [Start, End) within a [File].
type Span struct {
	// The file this span refers to.
	*File

	// The start and end byte offsets for this span.
	Start, End int
}

// IsZero returns whether or not this is the zero span.
func (s Span) IsZero() bool {
	return s.File == nil
}

// Text returns the text corresponding to this span.
func (s Span) Text() string {
	return s.File.Text()[s.Start:s.End]
}

// Len returns the length of this span, in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Before returns all text before this span.
func (s Span) Before() string {
	return s.File.Text()[:s.Start]
}

// After returns all text after this span.
func (s Span) After() string {
	return s.File.Text()[s.End:]
}

// Indentation calculates the indentation at this span.
//
// Indentation is defined as the substring between the last newline in
// [Span.Before] and the first non-whitespace rune after that newline.
func (s Span) Indentation() string {
	return s.File.Indentation(s.Start)
}

// StartLoc returns the start location for this span.
func (s Span) StartLoc() Location {
	return s.File.Location(s.Start)
}

// EndLoc returns the end location for this span.
func (s Span) EndLoc() Location {
	return s.File.Location(s.End)
}

// Span implements [Spanner].
func (s Span) Span() Span {
	return s
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	start := s.StartLoc()
	return fmt.Sprintf("%q:%d:%d[%d:%d]", s.Path(), start.Line, start.Column, s.Start, s.End)
}

// Location is a user-displayable location within a source code file.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed. The column is measured
	// in terminal columns, the same unit the wrap engine budgets against.
	//
	// Because these are 1-indexed, a zero Line can be used as a sentinel.
	Line, Column int
}

// File is a source code file involved in a diagnostic.
//
// It contains additional book-keeping information for resolving span locations.
//
// A nil *File behaves like an empty file with the path name "".
type File struct {
	path, text string

	once sync.Once
	// A prefix sum of the line lengths of text. Given a byte offset, it is
	// possible to recover which line that offset is on by performing a binary
	// search on this list.
	//
	// Alternatively, this slice can be interpreted as the index after each \n
	// in the original file.
	lineIndex []int
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's filesystem path.
//
// It doesn't need to be a real path; it is only used for labeling diagnostics.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Span is a shorthand for creating a new Span.
func (f *File) Span(start, end int) Span {
	if f == nil {
		return Span{}
	}
	return Span{f, start, end}
}

// Location searches this file's line index to build full [Location]
// information for the given byte offset.
//
// This operation is O(log n).
func (f *File) Location(offset int) Location {
	if f == nil && offset == 0 {
		return Location{Offset: 0, Line: 1, Column: 1}
	}

	lines := f.lines()

	// Find the smallest index in f.lines such that lines[line] <= offset.
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}

	chunk := f.Text()[lines[line]:offset]
	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: StringWidth(0, chunk) + 1,
	}
}

// Indentation calculates the indentation at some offset.
//
// Indentation is defined as the substring between the last newline before the
// offset and the first non-whitespace rune after that newline.
func (f *File) Indentation(offset int) string {
	nl := strings.LastIndexByte(f.Text()[:offset], '\n') + 1
	margin := strings.IndexFunc(f.Text()[nl:], func(r rune) bool {
		return !unicode.In(r, unicode.Pattern_White_Space)
	})
	if margin == -1 {
		margin = len(f.Text()) - nl
	}
	return f.Text()[nl : nl+margin]
}

// LineStart returns the byte offset of the start of the line containing
// offset.
func (f *File) LineStart(offset int) int {
	return strings.LastIndexByte(f.Text()[:offset], '\n') + 1
}

// Line returns the given line, without its trailing newline.
//
// line is expected to be 1-indexed.
func (f *File) Line(line int) string {
	start, end := f.LineOffsets(line)
	return strings.TrimSuffix(f.text[start:end], "\n")
}

// LineOffsets returns the offsets for the given line, including its trailing
// newline.
//
// line is expected to be 1-indexed.
func (f *File) LineOffsets(line int) (start, end int) {
	lines := f.lines()
	start = lines[line-1]
	if line < len(lines) {
		end = lines[line]
	} else {
		end = len(f.text)
	}
	return start, end
}

// LineCount returns the number of lines in this file.
func (f *File) LineCount() int {
	return len(f.lines())
}

func (f *File) lines() []int {
	// Compute the prefix sum on-demand.
	f.once.Do(func() {
		var next int

		// We add 1 to the return value of IndexByte because we want to work
		// with the index immediately *after* the newline byte.
		text := f.Text()
		for {
			newline := strings.IndexByte(text, '\n') + 1
			if newline == 0 {
				break
			}

			text = text[newline:]

			f.lineIndex = append(f.lineIndex, next)
			next += newline
		}

		f.lineIndex = append(f.lineIndex, next)
	})
	return f.lineIndex
}
