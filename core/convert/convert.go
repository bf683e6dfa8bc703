// Package convert assembles TEI P5 documents from parsed PAGE-XML.
//
// The layout follows the Transkribus conversion convention: one facsimile
// surface per page holding region and line zones, and a single
// transcription div in the body where each text line contributes an
// <lb facs="#zone"/> milestone followed by an <ab> block of inline markup
// produced by the overlay engine.
package convert

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/PageTEI/core/annotation"
	"github.com/FocuswithJustin/PageTEI/core/metadata"
	"github.com/FocuswithJustin/PageTEI/core/overlay"
	"github.com/FocuswithJustin/PageTEI/core/page"
	"github.com/FocuswithJustin/PageTEI/core/tei"
	"github.com/FocuswithJustin/PageTEI/internal/logging"
)

// imagePrefix is the directory convention for facsimile image references.
const imagePrefix = "images/"

// Result carries the converted document and its counters for logging and
// the run journal.
type Result struct {
	Root  *tei.Element
	Pages int
	Lines int
}

// Converter converts one PAGE document per call. The zero value is not
// usable; construct with New.
type Converter struct {
	meta metadata.Metadata
}

// New creates a Converter for one edition's metadata.
func New(meta metadata.Metadata) *Converter {
	return &Converter{meta: meta}
}

// Convert builds the full TEI document for doc. It never fails: malformed
// annotations degrade inside the overlay engine and invalid geometry is
// dropped with a warning.
func (c *Converter) Convert(doc *page.Document) *Result {
	root := tei.NewElement("TEI")
	root.AppendChild(tei.BuildHeader(c.meta))

	facsimile := root.AppendElement("facsimile")
	body := root.AppendElement("text").AppendElement("body")
	div := body.AppendElement("div")
	div.SetAttr("type", "transcription")
	if c.meta.Language != "" {
		div.SetAttr("xml:lang", c.meta.Language)
	}

	result := &Result{Root: root}
	for i, pg := range doc.Pages {
		result.Lines += c.convertPage(facsimile, div, pg, i+1)
		result.Pages++
	}
	return result
}

// convertPage emits one page's surface and text stream, returning the
// number of lines converted.
func (c *Converter) convertPage(facsimile, div *tei.Element, pg *page.Page, pageNum int) int {
	surface := facsimile.AppendElement("surface")
	surface.SetAttr("n", strconv.Itoa(pageNum))
	surface.SetAttr("xml:id", fmt.Sprintf("p%d", pageNum))
	if c.meta.PageSide != "" {
		surface.SetAttr("type", c.meta.PageSide)
	}
	if c.meta.PageN != "" {
		surface.SetAttr("n", c.meta.PageN)
	}

	graphic := surface.AppendElement("graphic")
	if fn := pg.ImageFilename; fn != "" {
		graphic.SetAttr("url", imageURL(fn))
	}
	if pg.ImageWidth != "" {
		graphic.SetAttr("width", pg.ImageWidth)
	}
	if pg.ImageHeight != "" {
		graphic.SetAttr("height", pg.ImageHeight)
	}

	pb := div.AppendElement("pb")
	pb.SetAttr("n", strconv.Itoa(pageNum))
	pb.SetAttr("facs", fmt.Sprintf("#p%d", pageNum))

	for _, region := range pg.Regions {
		c.appendRegionZone(surface, region, pageNum)
	}

	lines := pg.OrderedLines()
	for lineNum, line := range lines {
		c.appendLine(surface, div, line, lineNum+1)
	}
	return len(lines)
}

// appendRegionZone maps one PAGE region to a facsimile zone. Regions
// without usable coordinates contribute nothing.
func (c *Converter) appendRegionZone(surface *tei.Element, region *page.Region, pageNum int) {
	points := normalizePoints(region.Points, "region", region.ID)
	if points == "" {
		return
	}
	id := region.ID
	if id == "" {
		id = fmt.Sprintf("reg_%s_%d_%s", region.Type, pageNum, shortID())
	}
	zone := surface.AppendElement("zone")
	zone.SetAttr("type", region.Type)
	zone.SetAttr("xml:id", "z_"+id)
	zone.SetAttr("points", points)
}

// appendLine emits the line's zone, its lb milestone, and the ab block of
// inline content from the overlay engine.
func (c *Converter) appendLine(surface, div *tei.Element, line *page.Line, lineNum int) {
	id := line.ID
	if id == "" {
		id = "tl_" + shortID()
	}
	zoneID := "z_" + id

	zone := surface.AppendElement("zone")
	zone.SetAttr("type", "line")
	zone.SetAttr("xml:id", zoneID)
	if points := normalizePoints(line.Points, "line", id); points != "" {
		zone.SetAttr("points", points)
	}
	if baseline := normalizePoints(line.Baseline, "baseline", id); baseline != "" {
		zone.SetAttr("baseline", baseline)
	}

	lb := div.AppendElement("lb")
	lb.SetAttr("facs", "#"+zoneID)
	lb.SetAttr("n", strconv.Itoa(lineNum))

	ab := div.AppendElement("ab")
	spans := annotation.Parse(line.Custom)
	for _, node := range overlay.Build(line.Text, spans) {
		switch n := node.(type) {
		case tei.Text:
			ab.AppendText(string(n))
		default:
			ab.AppendChild(n)
		}
	}

	// A line whose overlay produced nothing still carries its raw text.
	if ab.IsEmpty() {
		ab.AppendText(line.Text)
	}
}

// normalizePoints validates a points attribute and returns its canonical
// rendering, or "" when the polygon is absent or malformed.
func normalizePoints(points, what, id string) string {
	if points == "" {
		return ""
	}
	pl, err := page.ParsePoints(points)
	if err != nil {
		logging.Warn("dropping malformed coordinates", "element", what, "id", id, "error", err)
		return ""
	}
	return pl.String()
}

// imageURL applies the images/ directory convention to a page's image
// reference.
func imageURL(filename string) string {
	if len(filename) >= len(imagePrefix) && filename[:len(imagePrefix)] == imagePrefix {
		return filename
	}
	return imagePrefix + filename
}

// shortID is a compact unique suffix for elements the source left
// unidentified.
func shortID() string {
	return uuid.NewString()[:8]
}
