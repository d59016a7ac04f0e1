package bbcode

import (
	"regexp"
	"strings"
)

// ShorthandKey is the attribute key used for the [tag=value] form.
const ShorthandKey = "@value"

// attrPairPattern matches one key=value pair at the start of the remaining
// attribute text. Quoted values are tried before bare ones.
var attrPairPattern = regexp.MustCompile(`^\s*(\w+)=("[^"]*"|'[^']*'|\S+)`)

// Attrs holds the attribute text as typed and the pairs that could be parsed from it.
type Attrs struct {
	Match string            // everything between the tag name and ']', verbatim
	Pairs map[string]string // parsed pairs, possibly incomplete for malformed input
}

// Value returns a parsed attribute value.
func (a Attrs) Value(name string) (string, bool) {
	v, ok := a.Pairs[name]
	return v, ok
}

// HasMatch reports whether the tag carried any attribute text.
func (a Attrs) HasMatch() bool {
	return a.Match != ""
}

// ParseAttrs parses raw attribute text. It never fails: parsing stops at
// the first pair that does not match and the pairs found so far are kept.
func ParseAttrs(match string) Attrs {
	attrs := Attrs{
		Match: match,
		Pairs: make(map[string]string),
	}

	trimmed := strings.TrimSpace(match)
	if trimmed == "" {
		return attrs
	}

	// [tag=value]
	if trimmed[0] == '=' {
		attrs.Pairs[ShorthandKey] = trimmed[1:]
		return attrs
	}

	pos := 0
	for pos < len(trimmed) {
		m := attrPairPattern.FindStringSubmatchIndex(trimmed[pos:])
		if m == nil {
			break
		}
		key := trimmed[pos+m[2] : pos+m[3]]
		value := trimmed[pos+m[4] : pos+m[5]]
		attrs.Pairs[key] = unquote(value)
		pos += m[1]
	}

	return attrs
}

// unquote strips one pair of matching surrounding quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}
