package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linewrap/linewrap/report"
)

func TestRender(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.py", "x = 'abc'\ny = 2\n")

	var r report.Report
	r.Errorf("something is off").With(
		report.Tagged("some-tag"),
		report.Snippetf(file.Span(4, 9), "this literal"),
		report.Note("a note"),
	)

	want := `error: something is off [some-tag]
  --> test.py:1:5
  |
1 | x = 'abc'
  |     ^^^^^ this literal
note: a note
`
	assert.Equal(t, want, report.Renderer{}.RenderString(r))
}

func TestRenderMinLevel(t *testing.T) {
	t.Parallel()

	var r report.Report
	r.Errorf("an error")
	r.Warnf("a warning")
	r.Remarkf("a remark")

	assert.Equal(t, 1, r.Count(report.Error))
	assert.Equal(t, 1, r.Count(report.Warning))
	assert.Equal(t, 1, r.Count(report.Remark))

	got := report.Renderer{MinLevel: report.Warning}.RenderString(r)
	assert.Contains(t, got, "error: an error")
	assert.Contains(t, got, "warning: a warning")
	assert.NotContains(t, got, "remark: a remark")
}
