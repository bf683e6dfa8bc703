// Package annotation parses the Transkribus PAGE @custom attribute
// mini-language into typed spans.
//
// The mini-language is a flat run of entries shaped like
//
//	kind {key:value; key:value; ...}
//
// where whitespace around braces, colons, and semicolons is insignificant
// and values are free-form text terminated by a semicolon. Parsing is
// best-effort: malformed integers degrade to zero, junk between entries is
// skipped, and unknown kinds are preserved verbatim. Parsing never fails.
package annotation

import (
	"regexp"
	"strconv"
	"strings"
)

// Well-known span kinds. Any other kind is carried through as a generic
// wrapper and handled by the fallback builder downstream.
const (
	KindAbbrev       = "abbrev"
	KindSic          = "sic"
	KindRegularised  = "regularised"
	KindNum          = "num"
	KindPerson       = "person"
	KindPlace        = "place"
	KindRef          = "ref"
	KindUnclear      = "unclear"
	KindTextStyle    = "textStyle"
	KindReadingOrder = "readingOrder"
)

// StyleKeys are the textStyle boolean attributes, in rendering preference
// order. The order is significant: it fixes how a single span's labels are
// joined into a rend string.
var StyleKeys = [...]string{"bold", "italic", "underline", "superscript", "subscript"}

// Span is one annotation unit: a kind, a half-open code-point range into the
// line text, and free-form attributes. Spans are immutable after parsing.
type Span struct {
	// Kind is the annotation tag (abbrev, sic, textStyle, ...).
	Kind string

	// Offset is the code-point index where the span starts.
	Offset int

	// Length is the span length in code points. Zero-length spans carry no
	// markup and are dropped before overlay building.
	Length int

	// End is Offset + Length.
	End int

	// Attrs holds every key from the entry body except offset and length.
	Attrs map[string]string
}

// IsStyle reports whether the span is a character-style overlay rather than
// a semantic wrapper.
func (s Span) IsStyle() bool {
	return s.Kind == KindTextStyle
}

// Attr returns the named attribute value and whether it was present.
func (s Span) Attr(key string) (string, bool) {
	v, ok := s.Attrs[key]
	return v, ok
}

// Rebased returns a copy of the span shifted left by delta, translating its
// coordinates into a frame local to an enclosing wrapper's witness text.
// The receiver is not modified.
func (s Span) Rebased(delta int) Span {
	out := s
	out.Offset -= delta
	out.End -= delta
	return out
}

var (
	entryPattern = regexp.MustCompile(`(\w+)\s*\{([^}]*)\}`)
	pairPattern  = regexp.MustCompile(`(\w+)\s*:\s*([^;]+);`)
)

// Parse scans custom for annotation entries and returns them in the order
// they occur in the input. The order is the source order, not offset order.
// Parse never fails; malformed pieces degrade per the package policy.
func Parse(custom string) []Span {
	if custom == "" {
		return nil
	}

	var spans []Span
	for _, m := range entryPattern.FindAllStringSubmatch(custom, -1) {
		kind, body := m[1], m[2]

		attrs := make(map[string]string)
		for _, kv := range pairPattern.FindAllStringSubmatch(body, -1) {
			// A repeated key silently overwrites the earlier value.
			attrs[kv[1]] = strings.TrimSpace(kv[2])
		}

		offset := ParseInt(attrs["offset"], 0)
		length := ParseInt(attrs["length"], 0)
		delete(attrs, "offset")
		delete(attrs, "length")

		if kind == KindTextStyle {
			for _, k := range StyleKeys {
				if v, ok := attrs[k]; ok {
					attrs[k] = strconv.FormatBool(ParseBool(v))
				}
			}
		}

		spans = append(spans, Span{
			Kind:   kind,
			Offset: offset,
			Length: length,
			End:    offset + length,
			Attrs:  attrs,
		})
	}
	return spans
}

// ParseInt parses v as an integer, returning def when parsing fails. This is
// the mini-language's degradation rule for offset and length.
func ParseInt(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// ParseBool interprets the mini-language's boolean vocabulary: 1, true, yes,
// and y (case-insensitive, trimmed) are true, everything else is false.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// ReadingOrder extracts the reading-order index from a line's parsed spans.
// Lines without an index sort after all indexed lines.
func ReadingOrder(spans []Span) int {
	for _, s := range spans {
		if s.Kind != KindReadingOrder {
			continue
		}
		if v, ok := s.Attr("index"); ok {
			return ParseInt(v, unordered)
		}
	}
	return unordered
}

// unordered is the reading-order index for lines that carry none.
const unordered = 999999
