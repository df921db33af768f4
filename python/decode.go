package python

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Decode computes the literal's decoded string value.
//
// Escape sequences decode per Python's rules; raw bodies decode to
// themselves. Replacement fields in formatted literals are kept as their
// source text (the engine never evaluates anything), and doubled braces
// decode to single braces. \N{...} escapes are likewise kept as written:
// resolving Unicode names is not this package's business, and keeping them
// verbatim is still a fixed point, which is all the round-trip law needs.
func (l *Literal) Decode() string {
	if l.Prefix.Has(Raw) && !l.Prefix.Has(Formatted) {
		return l.Body
	}

	var buf strings.Builder
	formatted := l.Prefix.Has(Formatted)
	for _, seg := range l.Segments() {
		switch seg.Kind {
		case Text:
			t := seg.Text
			if formatted {
				t = strings.ReplaceAll(t, "{{", "{")
				t = strings.ReplaceAll(t, "}}", "}")
			}
			buf.WriteString(t)
		case Expression:
			buf.WriteString(seg.Text)
		case Escape:
			buf.WriteString(decodeEscape(seg.Text))
		}
	}
	return buf.String()
}

func decodeEscape(esc string) string {
	if len(esc) < 2 {
		return esc
	}

	r, _ := utf8.DecodeRuneInString(esc[1:])
	switch r {
	case 'a':
		return "\a"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	case 't':
		return "\t"
	case 'v':
		return "\v"
	case '\\', '\'', '"':
		return string(r)
	case '\n':
		// A line continuation inside the literal contributes nothing.
		return ""
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v, err := strconv.ParseUint(esc[1:], 8, 32)
		if err != nil {
			return esc
		}
		return string(rune(v))
	case 'x', 'u', 'U':
		var digits int
		switch r {
		case 'x':
			digits = 2
		case 'u':
			digits = 4
		case 'U':
			digits = 8
		}
		if len(esc) != 2+digits {
			// Python rejects truncated hex escapes; leave them as written.
			return esc
		}
		v, err := strconv.ParseUint(esc[2:], 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return esc
		}
		return string(rune(v))
	default:
		// Unknown escapes keep the backslash, as Python does (with a
		// deprecation warning we have no opinion about). \N{...} lands here
		// too, deliberately.
		return esc
	}
}
