package metadata

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Collector gathers edition metadata, interactively when allowed and from
// presets and overrides otherwise. In and Out default to the process
// standard streams only at the CLI layer; tests inject buffers.
type Collector struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool

	reader *bufio.Reader
}

// Collect resolves the edition type and metadata for the given input file.
// Flag-provided values in overrides win over presets; in interactive mode
// the remaining key fields are prompted with the preset as default.
func (c *Collector) Collect(inputFile string, kind EditionType, overrides Metadata) Metadata {
	if kind == "" {
		kind = c.resolveEditionType(inputFile)
	}

	meta := Defaults(kind)
	applyOverrides(&meta, overrides)

	if !c.Interactive {
		return meta
	}

	fmt.Fprintf(c.Out, "Using preset metadata for %s edition:\n", kind)
	fmt.Fprintf(c.Out, "  Title: %s\n", meta.Title)
	fmt.Fprintf(c.Out, "  Language: %s\n", meta.Language)
	fmt.Fprintf(c.Out, "  Edition type: %s\n", meta.EditionType)
	if meta.Translator != "" {
		fmt.Fprintf(c.Out, "  Translator: %s\n", meta.Translator)
	} else {
		fmt.Fprintf(c.Out, "  Editor: %s\n", meta.EditionEditor)
	}

	if !ParseYes(c.prompt("Do you want to modify these defaults? (y/n)", "n")) {
		return meta
	}

	meta.Title = c.prompt("Title", meta.Title)
	meta.Author = c.prompt("Author (original work)", meta.Author)
	if kind == EditionTranslation {
		meta.Translator = c.prompt("Translator", meta.Translator)
	} else {
		meta.EditionEditor = c.prompt("Editor of diplomatic edition", meta.EditionEditor)
	}
	meta.Resp = c.prompt("Your responsibility", meta.Resp)
	meta.RespName = c.prompt("Your name", meta.RespName)
	meta.Publisher = c.prompt("Publisher", meta.Publisher)
	meta.PubDate = c.prompt("Publication date", meta.PubDate)
	meta.Country = c.prompt("Country", meta.Country)
	meta.Settlement = c.prompt("Settlement (city)", meta.Settlement)
	meta.Institution = c.prompt("Institution", meta.Institution)
	meta.Collection = c.prompt("Collection", meta.Collection)
	meta.IdnoSiglum = c.prompt("Siglum", meta.IdnoSiglum)
	meta.OrigPlace = c.prompt("Original place", meta.OrigPlace)
	meta.OrigLabel = c.prompt("Origin date label", meta.OrigLabel)
	return meta
}

// resolveEditionType detects the edition type from the filename, confirming
// interactively when possible and falling back to a menu when detection
// fails or is rejected.
func (c *Collector) resolveEditionType(inputFile string) EditionType {
	detected := DetectEditionType(inputFile)

	if !c.Interactive {
		if detected == "" {
			return EditionTranslation
		}
		return detected
	}

	if detected != "" {
		fmt.Fprintf(c.Out, "Detected edition type: %s\n", detected)
		if ParseYes(c.prompt("Is this correct? (y/n)", "y")) {
			return detected
		}
	}

	fmt.Fprintln(c.Out, "Select edition type:")
	fmt.Fprintln(c.Out, "  1) Diplomatic transcription")
	fmt.Fprintln(c.Out, "  2) Translation")
	if c.prompt("Enter choice (1/2)", "2") == "1" {
		return EditionDiplomatic
	}
	return EditionTranslation
}

// prompt prints a prompt with a default and reads one trimmed line. EOF and
// read errors yield the default, so piped input never aborts collection.
func (c *Collector) prompt(text, def string) string {
	fmt.Fprintf(c.Out, "%s [%s]: ", text, def)
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	line, _ := c.reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// ParseYes reports whether an interactive answer means yes.
func ParseYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// applyOverrides copies every non-empty field of src over dst.
func applyOverrides(dst *Metadata, src Metadata) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.Title, src.Title)
	set(&dst.Author, src.Author)
	set(&dst.EditionEditor, src.EditionEditor)
	set(&dst.Translator, src.Translator)
	set(&dst.Resp, src.Resp)
	set(&dst.RespName, src.RespName)
	set(&dst.Publisher, src.Publisher)
	set(&dst.PubDate, src.PubDate)
	set(&dst.Country, src.Country)
	set(&dst.Region, src.Region)
	set(&dst.Settlement, src.Settlement)
	set(&dst.District, src.District)
	set(&dst.GeogName, src.GeogName)
	set(&dst.Institution, src.Institution)
	set(&dst.Repository, src.Repository)
	set(&dst.Collection, src.Collection)
	set(&dst.IdnoOld, src.IdnoOld)
	set(&dst.IdnoNew, src.IdnoNew)
	set(&dst.IdnoSiglum, src.IdnoSiglum)
	set(&dst.OrigPlace, src.OrigPlace)
	set(&dst.OrigNotBefore, src.OrigNotBefore)
	set(&dst.OrigNotAfter, src.OrigNotAfter)
	set(&dst.OrigLabel, src.OrigLabel)
	set(&dst.PageN, src.PageN)
	set(&dst.PageSide, src.PageSide)
	set(&dst.EditionType, src.EditionType)
	set(&dst.Language, src.Language)
}
