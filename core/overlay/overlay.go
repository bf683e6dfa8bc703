// Package overlay turns a line of text plus its parsed annotation spans
// into a flat sequence of TEI nodes covering the text exactly once.
//
// Wrapper spans (every kind except textStyle) become semantic container
// elements; textStyle spans become <hi rend="..."> runs over the plain-text
// stretches and inside wrappers. Overlapping wrappers are resolved
// first-claimed-wins: a span whose start was already consumed by an earlier
// wrapper is dropped entirely. Whatever the spans look like, concatenating
// the leaf text of the output reproduces the input text exactly.
package overlay

import (
	"sort"

	"github.com/FocuswithJustin/PageTEI/core/annotation"
	"github.com/FocuswithJustin/PageTEI/core/tei"
)

// appender is the sink for styled text segmentation: either a TEI element
// (wrapper content) or the top-level node list. Both merge adjacent text.
type appender interface {
	AppendText(s string)
	AppendChild(n tei.Node)
}

// nodeList accumulates a line's top-level output nodes with the same
// normalized-stream contract as tei.Element: no empty text nodes, no two
// adjacent text nodes.
type nodeList struct {
	nodes []tei.Node
}

func (l *nodeList) AppendText(s string) {
	if s == "" {
		return
	}
	if n := len(l.nodes); n > 0 {
		if t, ok := l.nodes[n-1].(tei.Text); ok {
			l.nodes[n-1] = t + tei.Text(s)
			return
		}
	}
	l.nodes = append(l.nodes, tei.Text(s))
}

func (l *nodeList) AppendChild(n tei.Node) {
	l.nodes = append(l.nodes, n)
}

// Build converts one line. Offsets in spans are code-point indices into
// text. Build never fails: out-of-range spans are clamped, zero-length
// spans are ignored, and overlapping wrappers are dropped.
func Build(text string, spans []annotation.Span) []tei.Node {
	runes := []rune(text)

	var wrappers, styles []annotation.Span
	for _, s := range spans {
		if s.Length <= 0 {
			continue
		}
		if s.IsStyle() {
			styles = append(styles, s)
		} else {
			wrappers = append(wrappers, s)
		}
	}

	// Offset ascending; ties favor the span reaching further, so an outer
	// span is attempted before a shorter one starting at the same point.
	sort.SliceStable(wrappers, func(i, j int) bool {
		if wrappers[i].Offset != wrappers[j].Offset {
			return wrappers[i].Offset < wrappers[j].Offset
		}
		return wrappers[i].End > wrappers[j].End
	})

	out := &nodeList{}
	cursor := 0
	for _, w := range wrappers {
		if w.Offset < cursor {
			// Start already consumed by a higher-priority wrapper.
			continue
		}

		appendStyled(out, runes, cursor, w.Offset, containedStyles(styles, cursor, w.Offset))

		witness := sliceRunes(runes, w.Offset, w.End)
		local := rebaseStyles(containedStyles(styles, w.Offset, w.End), w.Offset)
		out.AppendChild(Construct(w.Kind, witness, w.Attrs, local))

		cursor = w.End
	}
	appendStyled(out, runes, cursor, len(runes), containedStyles(styles, cursor, len(runes)))

	return out.nodes
}

// containedStyles selects the style spans fully contained in [lo, hi).
func containedStyles(styles []annotation.Span, lo, hi int) []annotation.Span {
	var out []annotation.Span
	for _, s := range styles {
		if lo <= s.Offset && s.End <= hi {
			out = append(out, s)
		}
	}
	return out
}

// rebaseStyles translates style spans into the local coordinate frame of a
// wrapper starting at delta, producing fresh span records.
func rebaseStyles(styles []annotation.Span, delta int) []annotation.Span {
	if len(styles) == 0 {
		return nil
	}
	out := make([]annotation.Span, len(styles))
	for i, s := range styles {
		out[i] = s.Rebased(delta)
	}
	return out
}

// sliceRunes returns string(runes[lo:hi]) with both bounds clamped.
func sliceRunes(runes []rune, lo, hi int) string {
	lo = clamp(lo, 0, len(runes))
	hi = clamp(hi, lo, len(runes))
	return string(runes[lo:hi])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
