package tei

import (
	"bytes"
	"strings"
)

// WriteOptions controls serialization behavior.
type WriteOptions struct {
	// Indent is the per-level indentation string. Defaults to two spaces.
	Indent string
}

// Serialize renders root as a standalone TEI document with an XML
// declaration and the TEI namespace on the root element.
func Serialize(root *Element, opts WriteOptions) []byte {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	if root.Attr("xmlns") == "" {
		root.SetAttr("xmlns", Namespace)
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	writeElement(&buf, root, 0, opts.Indent)
	buf.WriteString("\n")
	return buf.Bytes()
}

// hasMixedContent reports whether the element interleaves text with child
// elements. Mixed-content elements are rendered inline so serialization
// never injects whitespace into transcribed text.
func hasMixedContent(e *Element) bool {
	for _, c := range e.Children {
		if _, ok := c.(Text); ok {
			return true
		}
	}
	return false
}

func writeElement(buf *bytes.Buffer, e *Element, depth int, indent string) {
	writeIndent(buf, depth, indent)
	writeOpenTag(buf, e)
	if e.IsEmpty() {
		return
	}

	if hasMixedContent(e) {
		writeInlineChildren(buf, e)
		writeCloseTag(buf, e)
		return
	}

	// Element-only content: one child per line.
	buf.WriteString("\n")
	for _, c := range e.Children {
		child := c.(*Element)
		writeElement(buf, child, depth+1, indent)
		buf.WriteString("\n")
	}
	writeIndent(buf, depth, indent)
	writeCloseTag(buf, e)
}

// writeInline renders an element and all its content without newlines.
func writeInline(buf *bytes.Buffer, e *Element) {
	writeOpenTag(buf, e)
	if e.IsEmpty() {
		return
	}
	writeInlineChildren(buf, e)
	writeCloseTag(buf, e)
}

func writeInlineChildren(buf *bytes.Buffer, e *Element) {
	for _, c := range e.Children {
		switch n := c.(type) {
		case Text:
			buf.WriteString(EscapeText(string(n)))
		case *Element:
			writeInline(buf, n)
		}
	}
}

// writeOpenTag writes the opening tag, self-closing when the element is
// empty.
func writeOpenTag(buf *bytes.Buffer, e *Element) {
	buf.WriteString("<")
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteString(" ")
		buf.WriteString(a.Name)
		buf.WriteString("=\"")
		buf.WriteString(EscapeAttr(a.Value))
		buf.WriteString("\"")
	}
	if e.IsEmpty() {
		buf.WriteString("/>")
		return
	}
	buf.WriteString(">")
}

func writeCloseTag(buf *bytes.Buffer, e *Element) {
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteString(">")
}

func writeIndent(buf *bytes.Buffer, depth int, indent string) {
	buf.WriteString(strings.Repeat(indent, depth))
}
