package wrap

import (
	"strings"
)

// Rewrite serializes the replacement text for a planned literal.
//
// Single-line literals become one delimited literal per chunk, each carrying
// the original prefix and quote, separated by a newline plus the statement's
// original indentation; adjacent literals concatenate implicitly, so no
// operator is inserted. Triple-quoted literals stay a single literal whose
// seams become real newlines.
//
// Returns false when the plan is empty and the literal needs no rewrite.
func Rewrite(p Plan) (string, bool) {
	if p.IsEmpty() {
		return "", false
	}
	if p.Literal.Triple {
		return rewriteTriple(p), true
	}
	return rewriteSingle(p), true
}

func rewriteSingle(p Plan) string {
	lit := p.Literal
	q := lit.Quotes()
	sep := "\n" + lit.Indentation()

	var buf strings.Builder
	start := 0
	for i := 0; i <= len(p.Breaks); i++ {
		end := len(lit.Body)
		if i < len(p.Breaks) {
			end = p.Breaks[i].Start
		}

		if i > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(lit.PrefixText)
		buf.WriteString(q)
		buf.WriteString(lit.Body[start:end])
		buf.WriteString(q)

		start = end
	}
	return buf.String()
}

func rewriteTriple(p Plan) string {
	lit := p.Literal

	var buf strings.Builder
	buf.WriteString(lit.PrefixText)
	buf.WriteString(lit.Quotes())

	start := 0
	for _, b := range p.Breaks {
		buf.WriteString(lit.Body[start:b.Start])
		buf.WriteByte('\n')
		buf.WriteString(b.Indent)
		start = b.End
	}
	buf.WriteString(lit.Body[start:])

	buf.WriteString(lit.Quotes())
	return buf.String()
}
