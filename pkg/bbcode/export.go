package bbcode

import "strings"

// ExportNode renders a node back to markup. When body is non-nil it replaces
// the node's own body (the text of a text node, the content of an element).
// Without a replacement the output is exactly the input the node was parsed from.
func ExportNode(node Node, body *string) string {
	var sb strings.Builder
	writeNode(&sb, node, body)
	return sb.String()
}

// Export renders a node without replacement.
func Export(node Node) string {
	return ExportNode(node, nil)
}

// ExportList renders every node of the list in order.
func ExportList(list NodeList) string {
	var sb strings.Builder
	for _, node := range list {
		writeNode(&sb, node, nil)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, node Node, body *string) {
	if !node.IsElem() {
		if body != nil {
			sb.WriteString(*body)
		} else {
			sb.WriteString(node.Text)
		}
		return
	}

	elem := node.Elem
	sb.WriteString("[")
	sb.WriteString(elem.Name)
	sb.WriteString(elem.Attrs.Match)
	sb.WriteString("]")

	switch {
	case body != nil:
		sb.WriteString(*body)
	case elem.Rich:
		for _, child := range elem.Children {
			writeNode(sb, child, nil)
		}
	default:
		sb.WriteString(elem.Body)
	}

	sb.WriteString(elem.closeTag)
}

// NewElement builds an element that was not parsed from input.
// It is closed with [/name] when exported.
func NewElement(name string, attrs Attrs, body string) *Element {
	if attrs.Pairs == nil {
		attrs.Pairs = make(map[string]string)
	}
	return &Element{
		Name:     name,
		Attrs:    attrs,
		Body:     body,
		closeTag: "[/" + name + "]",
	}
}
