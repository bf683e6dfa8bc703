package metadata

import (
	"bytes"
	"strings"
	"testing"
)

func TestCollectNonInteractive(t *testing.T) {
	c := &Collector{In: strings.NewReader(""), Out: &bytes.Buffer{}}

	meta := c.Collect("pgm13_dip.xml", "", Metadata{})
	if meta.Language != "grc" {
		t.Errorf("Language = %q, want detected diplomatic preset", meta.Language)
	}

	// Undetectable filenames fall back to the translation preset.
	meta = c.Collect("plain.xml", "", Metadata{})
	if meta.Language != "es" {
		t.Errorf("Language = %q, want translation fallback", meta.Language)
	}
}

func TestCollectExplicitKindWinsOverFilename(t *testing.T) {
	c := &Collector{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	meta := c.Collect("pgm13_dip.xml", EditionTranslation, Metadata{})
	if meta.Language != "es" {
		t.Errorf("Language = %q, want the explicit kind's preset", meta.Language)
	}
}

func TestCollectOverrides(t *testing.T) {
	c := &Collector{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	meta := c.Collect("x.xml", EditionDiplomatic, Metadata{
		Title:    "Custom title",
		Language: "la",
	})
	if meta.Title != "Custom title" {
		t.Errorf("Title = %q, want override", meta.Title)
	}
	if meta.Language != "la" {
		t.Errorf("Language = %q, want override", meta.Language)
	}
	// Untouched fields keep their preset.
	if meta.Publisher == "" {
		t.Error("preset Publisher should survive partial overrides")
	}
}

func TestCollectInteractiveAcceptDefaults(t *testing.T) {
	// Confirm the detected type, decline modification.
	in := strings.NewReader("y\nn\n")
	out := &bytes.Buffer{}
	c := &Collector{In: in, Out: out, Interactive: true}

	meta := c.Collect("pgm13_dip.xml", "", Metadata{})
	if meta.Language != "grc" {
		t.Errorf("Language = %q, want the confirmed diplomatic preset", meta.Language)
	}
	if !strings.Contains(out.String(), "Detected edition type: diplomatic") {
		t.Errorf("missing detection confirmation in output:\n%s", out.String())
	}
}

func TestCollectInteractiveRejectDetection(t *testing.T) {
	// Reject the detection, pick diplomatic from the menu, decline
	// modification.
	in := strings.NewReader("n\n1\nn\n")
	out := &bytes.Buffer{}
	c := &Collector{In: in, Out: out, Interactive: true}

	meta := c.Collect("something_trad.xml", "", Metadata{})
	if meta.Language != "grc" {
		t.Errorf("Language = %q, want the menu choice", meta.Language)
	}
	if !strings.Contains(out.String(), "Select edition type:") {
		t.Errorf("menu not shown:\n%s", out.String())
	}
}

func TestCollectInteractiveModifyFields(t *testing.T) {
	// Confirm detection, opt in to modification, replace the title, accept
	// every other default with empty lines.
	answers := "y\ny\nNew Title\n" + strings.Repeat("\n", 14)
	c := &Collector{In: strings.NewReader(answers), Out: &bytes.Buffer{}, Interactive: true}

	meta := c.Collect("pgm13_dip.xml", "", Metadata{})
	if meta.Title != "New Title" {
		t.Errorf("Title = %q, want the typed value", meta.Title)
	}
	if meta.Author != "Anonymous" {
		t.Errorf("Author = %q, want the accepted default", meta.Author)
	}
}

func TestCollectInteractiveEOFKeepsDefaults(t *testing.T) {
	// Input ends immediately; every prompt yields its default.
	c := &Collector{In: strings.NewReader(""), Out: &bytes.Buffer{}, Interactive: true}
	meta := c.Collect("pgm13_dip.xml", "", Metadata{})
	if meta.Language != "grc" {
		t.Errorf("Language = %q, want defaults under EOF", meta.Language)
	}
}

func TestParseYes(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{" YES ", true},
		{"n", false},
		{"no", false},
		{"", false},
		{"yep", false},
	}
	for _, tt := range tests {
		if got := ParseYes(tt.in); got != tt.want {
			t.Errorf("ParseYes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
