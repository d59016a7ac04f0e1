package bbcode

import (
	"fmt"
	"iter"
	"os"
	"regexp"
	"slices"
	"strings"
)

// DefaultMaxDepth bounds how many rich elements may be nested inside each other.
const DefaultMaxDepth = 64

// openTagPattern matches an opening [code] or [plain] tag at the start of the input.
// Group 1 is the tag name, group 2 the attribute text.
var openTagPattern = regexp.MustCompile(`^\[((?i:code|plain))(=\w+|(?:\s+\w+=(?:"[^"]*"|'[^']*'|[^\s\]]+))*)\]`)

// richCloseTail is what follows the '[' of a rich element's own closing tag.
const richCloseTail = "/code]"

// ParseOptions configures parsing.
type ParseOptions struct {
	// MaxDepth limits rich nesting. A rich element deeper than this is parsed
	// like a plain [code] element with a raw body. Zero means DefaultMaxDepth.
	MaxDepth int
}

func (o ParseOptions) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// ParseText parses text into top-level nodes. The sequence is lazy; each
// range over it parses the text from the start with a fresh cursor.
// Malformed markup never fails: it ends up as text or as a best-effort element.
func ParseText(text string) iter.Seq[Node] {
	return ParseTextWithOptions(text, ParseOptions{})
}

// ParseTextWithOptions parses text with the given options.
func ParseTextWithOptions(text string, opts ParseOptions) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		p := &parser{
			state:    newState(text),
			maxDepth: opts.maxDepth(),
		}
		p.parseNorm(yield)
	}
}

// ParseFile reads the whole file and parses its contents.
// Read errors are returned before any node is produced.
func ParseFile(path string) (iter.Seq[Node], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %s: %w", path, err)
	}
	return ParseText(string(data)), nil
}

// Parse collects all top-level nodes of text.
func Parse(text string) NodeList {
	return NodeList(slices.Collect(ParseText(text)))
}

type parser struct {
	state    *State
	maxDepth int
	depth    int // current rich nesting
}

// parseNorm drives parseNode over the top level, merging consecutive text.
func (p *parser) parseNorm(yield func(Node) bool) {
	s := p.state
	textStart := s.offset

	for s.Valid() {
		start := s.offset
		node := p.parseNode()
		if node.IsText() {
			continue
		}

		if start > textStart {
			if !yield(TextNode(s.input[textStart:start])) {
				return
			}
		}
		if !yield(node) {
			return
		}
		textStart = s.offset
	}

	if s.offset > textStart {
		yield(TextNode(s.input[textStart:s.offset]))
	}
}

// parseRich parses the body of a rich element up to its own closing tag.
// It returns the children and the closing tag as typed, or "" at end of input.
func (p *parser) parseRich() (NodeList, string) {
	s := p.state
	var list NodeList
	textStart := s.offset

	for s.Valid() {
		start := s.offset
		node := p.parseNode()
		if node.IsText() {
			if node.Text == "[" && hasPrefixFold(s.rest(), richCloseTail) {
				if start > textStart {
					list = append(list, TextNode(s.input[textStart:start]))
				}
				s.advance(len(richCloseTail))
				return list, s.input[start:s.offset]
			}
			continue
		}

		if start > textStart {
			list = append(list, TextNode(s.input[textStart:start]))
		}
		list = append(list, node)
		textStart = s.offset
	}

	if s.offset > textStart {
		list = append(list, TextNode(s.input[textStart:s.offset]))
	}
	return list, ""
}

// parseNode consumes one element or one run of text.
func (p *parser) parseNode() Node {
	s := p.state
	rest := s.rest()

	var m []int
	if rest[0] == '[' {
		m = openTagPattern.FindStringSubmatchIndex(rest)
	}
	if m == nil {
		return p.parseTextRun(rest)
	}

	elem := &Element{
		Name:  rest[m[2]:m[3]],
		Attrs: ParseAttrs(rest[m[4]:m[5]]),
	}
	s.advance(m[1])

	if isRichCode(elem) && p.depth < p.maxDepth {
		elem.Rich = true
		p.depth++
		elem.Children, elem.closeTag = p.parseRich()
		p.depth--
		return ElemNode(elem)
	}

	p.parseRawBody(elem)
	return ElemNode(elem)
}

// parseTextRun consumes text up to the next '['. At least one byte is
// consumed so an unrecognized '[' is never retried at the same offset.
func (p *parser) parseTextRun(rest string) Node {
	n := strings.IndexByte(rest, '[')
	switch {
	case n < 0:
		n = len(rest)
	case n == 0:
		n = 1
	}
	p.state.advance(n)
	return TextNode(rest[:n])
}

// parseRawBody takes everything up to the first matching closing tag as the
// body. Nested tags are not parsed. Without a closing tag the body runs to
// end of input and scanning stops.
func (p *parser) parseRawBody(elem *Element) {
	s := p.state
	rest := s.rest()
	closeTag := "[/" + elem.Name + "]"

	i := indexFold(rest, closeTag)
	if i < 0 {
		elem.Body = rest
		s.Finish()
		return
	}

	elem.Body = rest[:i]
	elem.closeTag = rest[i : i+len(closeTag)]
	s.advance(i + len(closeTag))
}
