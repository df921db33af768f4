package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linewrap/linewrap/report"
)

func TestStringWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		column int
		text   string
		want   int
	}{
		{0, "", 0},
		{0, "abc", 3},
		{5, "abc", 8},

		// Tabs snap to the next multiple of the tabstop width, from
		// wherever the text starts.
		{0, "\t", 4},
		{1, "\t", 4},
		{3, "\t", 4},
		{4, "\t", 8},
		{0, "a\tb", 5},
		{0, "\t\t", 8},

		// East Asian wide characters and emoji take two columns.
		{0, "🐈", 2},
		{0, "日本語", 6},
		{2, "x日", 5},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, report.StringWidth(test.column, test.text),
			"StringWidth(%d, %q)", test.column, test.text)
	}
}
