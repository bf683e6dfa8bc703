package overlay

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/PageTEI/core/annotation"
	"github.com/FocuswithJustin/PageTEI/core/tei"
)

// leafText concatenates the text of every leaf under the node sequence.
func leafText(nodes []tei.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case tei.Text:
			b.WriteString(string(v))
		case *tei.Element:
			b.WriteString(v.TextContent())
		}
	}
	return b.String()
}

// elementAt returns the i-th element in the node sequence.
func elementAt(t *testing.T, nodes []tei.Node, i int) *tei.Element {
	t.Helper()
	n := 0
	for _, node := range nodes {
		if e, ok := node.(*tei.Element); ok {
			if n == i {
				return e
			}
			n++
		}
	}
	t.Fatalf("node sequence has no element %d", i)
	return nil
}

func TestBuildPlainText(t *testing.T) {
	nodes := Build("hello world", nil)
	if len(nodes) != 1 {
		t.Fatalf("Build returned %d nodes, want 1", len(nodes))
	}
	text, ok := nodes[0].(tei.Text)
	if !ok {
		t.Fatalf("node is %T, want tei.Text", nodes[0])
	}
	if string(text) != "hello world" {
		t.Errorf("text = %q, want %q", text, "hello world")
	}
}

func TestBuildEmptyText(t *testing.T) {
	if nodes := Build("", nil); len(nodes) != 0 {
		t.Errorf("Build(\"\") returned %d nodes, want 0", len(nodes))
	}
}

func TestBuildSingleWrapper(t *testing.T) {
	spans := annotation.Parse("unclear {offset:6; length:5; reason:damage;}")
	nodes := Build("hello world", spans)

	if got := leafText(nodes); got != "hello world" {
		t.Fatalf("leaf text = %q, want input preserved", got)
	}

	unclear := elementAt(t, nodes, 0)
	if unclear.Name != "unclear" {
		t.Errorf("element name = %q, want %q", unclear.Name, "unclear")
	}
	if got := unclear.Attr("reason"); got != "damage" {
		t.Errorf("reason = %q, want %q", got, "damage")
	}
	if got := unclear.TextContent(); got != "world" {
		t.Errorf("witness = %q, want %q", got, "world")
	}
}

func TestBuildRoundTripPreservesText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		custom string
	}{
		{
			"no annotations",
			"plain text line",
			"",
		},
		{
			"wrapper in the middle",
			"the kurios spoke",
			"abbrev {offset:4; length:6; expansion:lord;}",
		},
		{
			"wrapper at start and end",
			"alpha omega",
			"sic {offset:0; length:5; correction:a;} unclear {offset:6; length:5;}",
		},
		{
			"styles across the line",
			"bold and plain",
			"textStyle {offset:0; length:4; bold:1;} textStyle {offset:9; length:5; italic:1;}",
		},
		{
			"style inside wrapper",
			"see the sign here",
			"unclear {offset:4; length:8;} textStyle {offset:8; length:4; bold:1;}",
		},
		{
			"overlapping wrappers",
			"overlap test line",
			"sic {offset:0; length:9; correction:x;} unclear {offset:4; length:8;}",
		},
		{
			"out of range span clamped",
			"short",
			"unclear {offset:3; length:99;}",
		},
		{
			"multi-byte runes",
			"λόγος καὶ σοφία",
			"unclear {offset:6; length:3;} textStyle {offset:10; length:5; bold:1;}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Build(tt.text, annotation.Parse(tt.custom))
			if got := leafText(nodes); got != tt.text {
				t.Errorf("leaf text = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestBuildOverlappingWrapperDropped(t *testing.T) {
	// The second wrapper starts inside the first; first-claimed wins.
	spans := annotation.Parse("sic {offset:0; length:9; correction:x;} unclear {offset:4; length:8;}")
	nodes := Build("overlap test line", spans)

	count := 0
	for _, n := range nodes {
		if _, ok := n.(*tei.Element); ok {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d wrapper elements, want 1", count)
	}
	if e := elementAt(t, nodes, 0); e.Name != "choice" {
		t.Errorf("surviving wrapper = %q, want the sic choice", e.Name)
	}
}

func TestBuildSameOffsetLongerWrapperWins(t *testing.T) {
	spans := annotation.Parse("unclear {offset:0; length:8;} sic {offset:0; length:4; correction:x;}")
	nodes := Build("abcdefgh tail", spans)

	e := elementAt(t, nodes, 0)
	if e.Name != "unclear" {
		t.Errorf("surviving wrapper = %q, want the longer unclear", e.Name)
	}
	if got := e.TextContent(); got != "abcdefgh" {
		t.Errorf("witness = %q, want %q", got, "abcdefgh")
	}
}

func TestBuildDeterministicUnderReordering(t *testing.T) {
	text := "overlap test line"
	a := annotation.Parse("sic {offset:0; length:9; correction:x;} unclear {offset:4; length:8;}")
	b := annotation.Parse("unclear {offset:4; length:8;} sic {offset:0; length:9; correction:x;}")

	na, nb := Build(text, a), Build(text, b)
	if leafText(na) != leafText(nb) {
		t.Error("leaf text differs under span reordering")
	}
	ea, eb := elementAt(t, na, 0), elementAt(t, nb, 0)
	if ea.Name != eb.Name {
		t.Errorf("winner differs under reordering: %q vs %q", ea.Name, eb.Name)
	}
}

func TestBuildZeroLengthSpanIgnored(t *testing.T) {
	spans := annotation.Parse("unclear {offset:3; length:0;} textStyle {offset:0; length:0; bold:1;}")
	nodes := Build("hello", spans)
	if len(nodes) != 1 {
		t.Fatalf("Build returned %d nodes, want 1", len(nodes))
	}
	if _, ok := nodes[0].(tei.Text); !ok {
		t.Errorf("node is %T, want plain text", nodes[0])
	}
}

func TestBuildStyledGap(t *testing.T) {
	spans := annotation.Parse("textStyle {offset:0; length:4; bold:1;}")
	nodes := Build("bold plain", spans)

	hi := elementAt(t, nodes, 0)
	if hi.Name != "hi" {
		t.Fatalf("element name = %q, want %q", hi.Name, "hi")
	}
	if got := hi.Attr("rend"); got != "bold" {
		t.Errorf("rend = %q, want %q", got, "bold")
	}
	if got := hi.TextContent(); got != "bold" {
		t.Errorf("styled run = %q, want %q", got, "bold")
	}
	if got := leafText(nodes); got != "bold plain" {
		t.Errorf("leaf text = %q, want %q", got, "bold plain")
	}
}

func TestBuildOverlappingStylesUnion(t *testing.T) {
	// bold over [0,6), italic over [3,9): the middle segment carries both
	// labels in one run sorted lexicographically.
	spans := annotation.Parse("textStyle {offset:0; length:6; bold:1;} textStyle {offset:3; length:6; italic:1;}")
	nodes := Build("abcdefghi", spans)

	if got := leafText(nodes); got != "abcdefghi" {
		t.Fatalf("leaf text = %q, want input preserved", got)
	}

	var rends []string
	for _, n := range nodes {
		if e, ok := n.(*tei.Element); ok {
			rends = append(rends, e.Attr("rend"))
		}
	}
	want := []string{"bold", "bold italic", "italic"}
	if len(rends) != len(want) {
		t.Fatalf("got %d hi runs %v, want %v", len(rends), rends, want)
	}
	for i := range want {
		if rends[i] != want[i] {
			t.Errorf("rend[%d] = %q, want %q", i, rends[i], want[i])
		}
	}
}

func TestBuildMultiLabelSpan(t *testing.T) {
	spans := annotation.Parse("textStyle {offset:0; length:3; subscript:1; bold:1;}")
	nodes := Build("xyz", spans)

	hi := elementAt(t, nodes, 0)
	// Labels of one span join in the fixed preference order, not sorted.
	if got := hi.Attr("rend"); got != "bold subscript" {
		t.Errorf("rend = %q, want %q", got, "bold subscript")
	}
}

func TestBuildStyleInsideWrapperRebased(t *testing.T) {
	spans := annotation.Parse("unclear {offset:4; length:8;} textStyle {offset:8; length:4; bold:1;}")
	nodes := Build("see the sign here", spans)

	unclear := elementAt(t, nodes, 0)
	if got := unclear.TextContent(); got != "the sign" {
		t.Fatalf("witness = %q, want %q", got, "the sign")
	}

	var hi *tei.Element
	for _, child := range unclear.Children {
		if e, ok := child.(*tei.Element); ok && e.Name == "hi" {
			hi = e
		}
	}
	if hi == nil {
		t.Fatal("no hi run inside the wrapper")
	}
	if got := hi.TextContent(); got != "sign" {
		t.Errorf("styled run = %q, want %q", got, "sign")
	}
}

func TestBuildStyleCrossingWrapperBoundaryNotContained(t *testing.T) {
	// The style starts before the wrapper and ends inside it, so it is
	// contained in neither the gap nor the wrapper and styles nothing.
	spans := annotation.Parse("unclear {offset:4; length:4;} textStyle {offset:2; length:4; bold:1;}")
	nodes := Build("abcdefgh", spans)

	if got := leafText(nodes); got != "abcdefgh" {
		t.Fatalf("leaf text = %q, want input preserved", got)
	}
	for _, n := range nodes {
		if e, ok := n.(*tei.Element); ok && e.Name == "hi" {
			t.Error("boundary-crossing style must not produce a top-level run")
		}
	}
}
