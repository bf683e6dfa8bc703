// Package tei provides a small TEI P5 node model and serializer.
//
// The model is deliberately minimal: a node is either a text fragment or an
// element with ordered attributes and ordered children. Elements keep mixed
// content (text interleaved with child elements) exactly as appended, which
// is what transcription markup needs and what encoding/xml marshaling cannot
// express directly.
package tei

// Namespace is the TEI P5 namespace, set as xmlns on the document root.
const Namespace = "http://www.tei-c.org/ns/1.0"

// Node is one unit of TEI content: either a Text fragment or an *Element.
type Node interface {
	node()
}

// Text is a plain character-data node.
type Text string

func (Text) node() {}

// Attr is a single element attribute. Attributes keep insertion order so
// serialized output is deterministic.
type Attr struct {
	Name  string
	Value string
}

// Element is a TEI element with ordered attributes and children.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

func (*Element) node() {}

// NewElement creates an empty element with the given name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// SetAttr sets an attribute, overwriting an existing one of the same name
// and otherwise appending it.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// AppendChild appends a node to the element's content.
func (e *Element) AppendChild(n Node) {
	e.Children = append(e.Children, n)
}

// AppendText appends character data, merging with a trailing Text child so
// callers always observe a normalized stream: no empty text nodes and no
// two adjacent text nodes.
func (e *Element) AppendText(s string) {
	if s == "" {
		return
	}
	if n := len(e.Children); n > 0 {
		if t, ok := e.Children[n-1].(Text); ok {
			e.Children[n-1] = t + Text(s)
			return
		}
	}
	e.Children = append(e.Children, Text(s))
}

// AppendElement creates a child element, appends it, and returns it.
func (e *Element) AppendElement(name string) *Element {
	child := NewElement(name)
	e.AppendChild(child)
	return child
}

// AppendTextElement appends a child element holding only the given text.
// Used for the metadata-style leaf elements of the header.
func (e *Element) AppendTextElement(name, text string) *Element {
	child := e.AppendElement(name)
	child.AppendText(text)
	return child
}

// IsEmpty reports whether the element has no content at all.
func (e *Element) IsEmpty() bool {
	return len(e.Children) == 0
}

// TextContent returns the concatenated text of the element's leaves in
// document order.
func (e *Element) TextContent() string {
	var out string
	for _, c := range e.Children {
		switch n := c.(type) {
		case Text:
			out += string(n)
		case *Element:
			out += n.TextContent()
		}
	}
	return out
}
