package report

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/linewrap/linewrap/internal/ext/stringsx"
)

const (
	// TabstopWidth is the size we render all tabstops as.
	TabstopWidth int = 4
	// MaxMessageWidth is the maximum width of a diagnostic message before it
	// is word-wrapped, to try to keep everything within the bounds of a
	// terminal.
	MaxMessageWidth int = 80
)

// NonPrint defines whether or not a rune is considered "unprintable for the
// purposes of diagnostics".
func NonPrint(r rune) bool {
	return !strings.ContainsRune(" \r\t\n", r) && !unicode.IsPrint(r)
}

// StringWidth calculates the rendered width of text if placed at the given
// column, accounting for tabstops.
//
// The result is the column after the text, i.e. it includes the starting
// column.
func StringWidth(column int, text string) int {
	// We can't just use uniseg.StringWidth, because that doesn't respect
	// tabstops correctly.
	for text != "" {
		nextTab := strings.IndexByte(text, '\t')
		haveTab := nextTab != -1
		next := text
		if haveTab {
			next, text = text[:nextTab], text[nextTab+1:]
		} else {
			text = ""
		}

		column += uniseg.StringWidth(next)

		if haveTab {
			column += TabstopWidth - (column % TabstopWidth)
		}
	}
	return column
}

// wordWrap returns an iterator over chunks of s that are no wider than width,
// which can be printed as their own lines.
func wordWrap(text string, width int) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		// Split along lines first, since those are hard breaks we don't plan
		// to change.
		for line := range stringsx.Lines(text) {
			var column, cursor int
			done := false

			for start, chunk := range stringsx.PartitionKey(line, unicode.IsSpace) {
				isSpace := strings.IndexFunc(chunk, unicode.IsSpace) == 0

				if isSpace && column == 0 {
					continue
				}

				w := StringWidth(column, chunk) - column
				if column+w <= width {
					column += w
					continue
				}

				if !yield(strings.TrimSpace(line[cursor:start])) {
					done = true
					break
				}

				if isSpace {
					cursor = start + len(chunk)
					column = 0
				} else {
					cursor = start
					column = w
				}
			}
			if done {
				return
			}

			rest := line[cursor:]
			if rest != "" && !yield(rest) {
				return
			}
		}
	}
}
