package python_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linewrap/linewrap/python"
	"github.com/linewrap/linewrap/report"
)

// parseLit parses text, which must consist of exactly one literal.
func parseLit(t *testing.T, text string) *python.Literal {
	t.Helper()

	file := report.NewFile("test.py", text)
	lit, err := python.Parse(file.Span(0, len(text)))
	require.NoError(t, err)
	return lit
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		prefix python.Prefix
		quote  byte
		triple bool
		body   string
	}{
		{text: `'abc'`, quote: '\'', body: "abc"},
		{text: `""`, quote: '"'},
		{text: `''''''`, quote: '\'', triple: true},
		{text: `'''ab'''`, quote: '\'', triple: true, body: "ab"},
		{text: `"""a'b"""`, quote: '"', triple: true, body: "a'b"},
		{text: `r'\n'`, prefix: python.Raw, quote: '\'', body: `\n`},
		{text: `B"\x00"`, prefix: python.Bytes, quote: '"', body: `\x00`},
		{text: `Rb'\d+'`, prefix: python.Raw | python.Bytes, quote: '\'', body: `\d+`},
		{text: `f"{x}"`, prefix: python.Formatted, quote: '"', body: `{x}`},
		{text: `fr'{x}\d'`, prefix: python.Formatted | python.Raw, quote: '\'', body: `{x}\d`},
		{text: `u'legacy'`, prefix: python.Unicode, quote: '\'', body: "legacy"},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			lit := parseLit(t, test.text)
			assert.Equal(t, test.prefix, lit.Prefix)
			assert.Equal(t, test.quote, lit.Quote)
			assert.Equal(t, test.triple, lit.Triple)
			assert.Equal(t, test.body, lit.Body)

			// Re-serializing the parts must reproduce the source exactly.
			assert.Equal(t, test.text, lit.PrefixText+lit.Quotes()+lit.Body+lit.Quotes())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	tests := []string{
		`bf'x'`, // b and f cannot combine.
		`rr'x'`, // Repeated letter.
		`ub'x'`, // u combines with nothing.
		`q'x'`,  // Not a prefix letter at all.
		`'x`,    // Unterminated.
		`abc`,   // No quotes at all.
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			file := report.NewFile("test.py", text)
			_, err := python.Parse(file.Span(0, len(text)))
			assert.Error(t, err)
		})
	}
}

func TestStartColumn(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.py", "\ts = 'a'\n")
	var errs report.Report
	tokens := python.Scan(file, &errs)
	require.Empty(t, errs)

	var lit *python.Literal
	for _, token := range tokens {
		if token.Kind == python.String {
			lit = token.Literal
		}
	}
	require.NotNil(t, lit)

	// The tab before "s" expands to a full tabstop.
	assert.Equal(t, 8, lit.StartColumn())
	assert.Equal(t, "\t", lit.Indentation())
}
