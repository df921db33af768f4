package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linewrap/linewrap/report"
)

func TestLocation(t *testing.T) {
	t.Parallel()

	file := report.NewFile(
		"test.py",
		"foo = 1\nbar = 2\n\tcat = 3\n",
	)

	tests := []report.Location{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 4, Line: 1, Column: 5},
		{Offset: 8, Line: 2, Column: 1},
		{Offset: 10, Line: 2, Column: 3},
		// A tabstop counts as four columns, not one.
		{Offset: 17, Line: 3, Column: 5},
		{Offset: 20, Line: 3, Column: 8},
	}

	for _, want := range tests {
		t.Run("", func(t *testing.T) {
			t.Logf("%q | %q", file.Text()[:want.Offset], file.Text()[want.Offset:])
			assert.Equal(t, want, file.Location(want.Offset))
		})
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.py", "foo = 1\nbar = 2\n\tcat = 3\n")

	assert.Equal(t, 4, file.LineCount())
	assert.Equal(t, "foo = 1", file.Line(1))
	assert.Equal(t, "bar = 2", file.Line(2))
	assert.Equal(t, "\tcat = 3", file.Line(3))
	assert.Equal(t, "", file.Line(4))

	start, end := file.LineOffsets(2)
	assert.Equal(t, 8, start)
	assert.Equal(t, 16, end)

	assert.Equal(t, 8, file.LineStart(12))
	assert.Equal(t, 0, file.LineStart(0))
}

func TestIndentation(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.py", "foo = 1\n    bar = 2\n\tcat = 3\n")

	assert.Equal(t, "", file.Indentation(3))
	assert.Equal(t, "    ", file.Indentation(14))
	assert.Equal(t, "\t", file.Indentation(23))
}

func TestSpan(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.py", "x = 'abc'\ny = 2\n")
	span := file.Span(4, 9)

	assert.Equal(t, "'abc'", span.Text())
	assert.Equal(t, 5, span.Len())
	assert.Equal(t, "x = ", span.Before())
	assert.Equal(t, "\ny = 2\n", span.After())
	assert.Equal(t, report.Location{Offset: 4, Line: 1, Column: 5}, span.StartLoc())
	assert.Equal(t, report.Location{Offset: 9, Line: 1, Column: 10}, span.EndLoc())
	assert.Equal(t, `"test.py":1:5[4:9]`, span.String())

	assert.True(t, report.Span{}.IsZero())
	assert.False(t, span.IsZero())
}

func TestNilFile(t *testing.T) {
	t.Parallel()

	var file *report.File
	assert.Equal(t, "", file.Path())
	assert.Equal(t, "", file.Text())
	assert.True(t, file.Span(0, 0).IsZero())
}
