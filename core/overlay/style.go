package overlay

import (
	"sort"
	"strings"

	"github.com/FocuswithJustin/PageTEI/core/annotation"
	"github.com/FocuswithJustin/PageTEI/core/tei"
)

// labeledRange is one style span reduced to its clamped range and its rend
// label string.
type labeledRange struct {
	start, end int
	label      string
}

// styleLabel joins a textStyle span's active labels in the fixed preference
// order. Empty when the span activates nothing.
func styleLabel(s annotation.Span) string {
	var labels []string
	for _, k := range annotation.StyleKeys {
		if s.Attrs[k] == "true" {
			labels = append(labels, k)
		}
	}
	return strings.Join(labels, " ")
}

// appendStyledText styles a wrapper's witness text with style spans already
// rebased into the witness's local coordinate frame.
func appendStyledText(dst appender, text string, styles []annotation.Span) {
	runes := []rune(text)
	appendStyled(dst, runes, 0, len(runes), styles)
}

// appendStyled emits the subrange [lo, hi) of runes into dst, splitting it
// at style boundaries. Each segment fully covered by one or more labeled
// style spans becomes a single <hi> run carrying the union of their labels;
// everything else is appended as plain text through the merging appender.
func appendStyled(dst appender, runes []rune, lo, hi int, styles []annotation.Span) {
	lo = clamp(lo, 0, len(runes))
	hi = clamp(hi, lo, len(runes))
	if lo >= hi {
		return
	}

	var ranges []labeledRange
	for _, s := range styles {
		label := styleLabel(s)
		if label == "" {
			continue
		}
		ranges = append(ranges, labeledRange{
			start: clamp(s.Offset, lo, hi),
			end:   clamp(s.End, lo, hi),
			label: label,
		})
	}
	if len(ranges) == 0 {
		dst.AppendText(string(runes[lo:hi]))
		return
	}

	cuts := cutPoints(lo, hi, ranges)
	for i := 0; i+1 < len(cuts); i++ {
		s, e := cuts[i], cuts[i+1]
		if s >= e {
			continue
		}
		segment := string(runes[s:e])
		labels := segmentLabels(ranges, s, e)
		if len(labels) == 0 {
			dst.AppendText(segment)
			continue
		}
		run := tei.NewElement("hi")
		run.SetAttr("rend", strings.Join(labels, " "))
		run.AppendText(segment)
		dst.AppendChild(run)
	}
}

// cutPoints collects the sorted, deduplicated segment boundaries: the
// subrange's own ends plus every labeled range's ends.
func cutPoints(lo, hi int, ranges []labeledRange) []int {
	seen := map[int]bool{lo: true, hi: true}
	for _, r := range ranges {
		seen[r.start] = true
		seen[r.end] = true
	}
	cuts := make([]int, 0, len(seen))
	for c := range seen {
		cuts = append(cuts, c)
	}
	sort.Ints(cuts)
	return cuts
}

// segmentLabels returns the sorted union of rend labels from every range
// that fully covers [s, e). Duplicate labels collapse; overlapping style
// spans merge into one run instead of nesting.
func segmentLabels(ranges []labeledRange, s, e int) []string {
	seen := map[string]bool{}
	for _, r := range ranges {
		if r.start <= s && e <= r.end && r.start < r.end {
			seen[r.label] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
