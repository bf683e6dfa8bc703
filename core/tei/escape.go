package tei

import "strings"

// EscapeText escapes the basic XML entities for character data.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeAttr escapes text for use in attribute values. Includes quote
// escaping in addition to the basic XML entities.
func EscapeAttr(s string) string {
	s = EscapeText(s)
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
