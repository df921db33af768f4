package stringsx_test

import (
	"slices"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"

	"github.com/linewrap/linewrap/internal/ext/stringsx"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(stringsx.Split("a,b,c", ',')))
	assert.Equal(t, []string{"", ""}, slices.Collect(stringsx.Split(",", ',')))
	assert.Equal(t, []string{"abc"}, slices.Collect(stringsx.Split("abc", ',')))
	assert.Equal(t, []string{"a", "b", ""}, slices.Collect(stringsx.Lines("a\nb\n")))
}

func TestPartitionKey(t *testing.T) {
	t.Parallel()

	type part struct {
		At   int
		Text string
	}
	collect := func(s string) []part {
		var parts []part
		for at, text := range stringsx.PartitionKey(s, unicode.IsSpace) {
			parts = append(parts, part{at, text})
		}
		return parts
	}

	assert.Nil(t, collect(""))
	assert.Equal(t, []part{{0, "abc"}}, collect("abc"))
	assert.Equal(t, []part{
		{0, "aa"}, {2, "  "}, {4, "bb"}, {6, " "}, {7, "cc"},
	}, collect("aa  bb cc"))
	assert.Equal(t, []part{
		{0, "\t "}, {2, "xy"}, {4, " "},
	}, collect("\t xy "))
}
