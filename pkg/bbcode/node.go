// Package bbcode parses bracket-tag markup such as [code=go]...[/code] into
// nodes and renders nodes back to markup. Unchanged nodes export to exactly
// the text they were parsed from.
package bbcode

import "strings"

// NodeKind indicates whether a node is text or an element.
type NodeKind int

const (
	NodeText NodeKind = iota // plain text between elements
	NodeElem                 // [code] or [plain] element
)

// String returns a short name for the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "text"
	case NodeElem:
		return "elem"
	default:
		return "unknown"
	}
}

// Node is either a text run or a parsed element.
type Node struct {
	Kind NodeKind
	Text string   // set when Kind == NodeText
	Elem *Element // set when Kind == NodeElem
}

// NodeList is the ordered body of a rich element.
type NodeList []Node

// TextNode creates a text node.
func TextNode(body string) Node {
	return Node{Kind: NodeText, Text: body}
}

// ElemNode creates an element node.
func ElemNode(e *Element) Node {
	return Node{Kind: NodeElem, Elem: e}
}

// IsText reports whether n is a text node.
func (n Node) IsText() bool {
	return n.Kind == NodeText
}

// IsElem reports whether n is an element node.
func (n Node) IsElem() bool {
	return n.Kind == NodeElem && n.Elem != nil
}

// Element is a bracket tag with its attributes and body.
// Rich elements carry Children and leave Body empty; all other elements
// carry the raw, unparsed Body.
type Element struct {
	Name     string   // tag name as typed, e.g. "code" or "CODE"
	Attrs    Attrs    // raw and parsed attributes
	Body     string   // raw body for non-rich elements
	Children NodeList // parsed body for rich elements
	Rich     bool

	// closeTag is the closing tag exactly as it appeared in the input,
	// empty when the element ran to end of input.
	closeTag string
}

// IsCode reports whether the element is a [code] element.
func (e *Element) IsCode() bool {
	return strings.EqualFold(e.Name, "code")
}

// IsRich reports whether the element is a [code=rich] element.
func (e *Element) IsRich() bool {
	return e.Rich
}

// Closed reports whether a closing tag was found for the element.
func (e *Element) Closed() bool {
	return e.closeTag != ""
}

// Attr returns a single parsed attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.Attrs.Value(name)
}

// Lang returns the language attribute. For code elements the shorthand
// [code=lang] form is used when no lang attribute is present.
func (e *Element) Lang() (string, bool) {
	if lang, ok := e.Attrs.Value("lang"); ok {
		return lang, true
	}
	if e.IsCode() {
		return e.Attrs.Value(ShorthandKey)
	}
	return "", false
}

// isRichCode applies the rich test to a freshly matched tag.
func isRichCode(e *Element) bool {
	if !e.IsCode() {
		return false
	}
	lang, ok := e.Lang()
	return ok && strings.EqualFold(lang, "rich")
}
