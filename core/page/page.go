// Package page reads Transkribus PAGE-XML documents.
//
// The reader is namespace-tolerant: PAGE files in the wild carry different
// schema revisions in their namespace URI, so all queries match on local
// element names only.
package page

import (
	"bytes"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/PageTEI/core/annotation"
	"github.com/FocuswithJustin/PageTEI/core/errors"
)

// Document is one parsed PAGE-XML file.
type Document struct {
	Pages []*Page
}

// Page is one physical page with its regions.
type Page struct {
	ImageFilename string
	ImageWidth    string
	ImageHeight   string
	Regions       []*Region
}

// Region is any PAGE region element (TextRegion, ImageRegion, ...). Only
// text regions carry lines.
type Region struct {
	ID     string
	Type   string // local element name, e.g. "TextRegion"
	Points string
	Lines  []*Line
}

// Line is one transcribed text line.
type Line struct {
	ID       string
	Custom   string // raw @custom annotation string
	Points   string
	Baseline string
	Text     string

	// ReadingOrder is the index from readingOrder{index:N;} in @custom;
	// lines without one sort after all indexed lines.
	ReadingOrder int
}

// Parse reads a PAGE-XML document from raw bytes.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.ParseError{Format: "PAGE-XML", Message: err.Error(), Err: err}
	}

	doc := &Document{}
	pages, err := xmlquery.QueryAll(root, "//*[local-name()='Page']")
	if err != nil {
		return nil, &errors.ParseError{Format: "PAGE-XML", Message: err.Error(), Err: err}
	}
	for _, p := range pages {
		doc.Pages = append(doc.Pages, parsePage(p))
	}
	if len(doc.Pages) == 0 {
		return nil, errors.NewParse("PAGE-XML", "", "no Page element found")
	}
	return doc, nil
}

func parsePage(node *xmlquery.Node) *Page {
	pg := &Page{
		ImageFilename: node.SelectAttr("imageFilename"),
		ImageWidth:    node.SelectAttr("imageWidth"),
		ImageHeight:   node.SelectAttr("imageHeight"),
	}

	for child := range descendants(node) {
		if !strings.HasSuffix(child.Data, "Region") {
			continue
		}
		region := &Region{
			ID:     child.SelectAttr("id"),
			Type:   child.Data,
			Points: coordsPoints(child),
		}
		if child.Data == "TextRegion" {
			region.Lines = parseLines(child)
		}
		pg.Regions = append(pg.Regions, region)
	}
	return pg
}

func parseLines(region *xmlquery.Node) []*Line {
	nodes, _ := xmlquery.QueryAll(region, "./*[local-name()='TextLine']")
	var lines []*Line
	for _, n := range nodes {
		custom := n.SelectAttr("custom")
		line := &Line{
			ID:           n.SelectAttr("id"),
			Custom:       custom,
			Points:       coordsPoints(n),
			Text:         lineText(n),
			ReadingOrder: annotation.ReadingOrder(annotation.Parse(custom)),
		}
		if bl, err := xmlquery.Query(n, "./*[local-name()='Baseline']"); err == nil && bl != nil {
			line.Baseline = bl.SelectAttr("points")
		}
		lines = append(lines, line)
	}
	return lines
}

// coordsPoints reads the points attribute of an element's Coords child.
func coordsPoints(node *xmlquery.Node) string {
	c, err := xmlquery.Query(node, "./*[local-name()='Coords']")
	if err != nil || c == nil {
		return ""
	}
	return c.SelectAttr("points")
}

// lineText reads the Unicode transcription of a text line.
func lineText(node *xmlquery.Node) string {
	u, err := xmlquery.Query(node, "./*[local-name()='TextEquiv']/*[local-name()='Unicode']")
	if err != nil || u == nil {
		return ""
	}
	return u.InnerText()
}

// descendants walks every descendant element of node in document order.
func descendants(node *xmlquery.Node) func(yield func(*xmlquery.Node) bool) {
	return func(yield func(*xmlquery.Node) bool) {
		var walk func(n *xmlquery.Node) bool
		walk = func(n *xmlquery.Node) bool {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == xmlquery.ElementNode {
					if !yield(c) {
						return false
					}
					if !walk(c) {
						return false
					}
				}
			}
			return true
		}
		walk(node)
	}
}

// OrderedLines gathers the page's text lines across all regions and sorts
// them by reading order, line id breaking ties.
func (p *Page) OrderedLines() []*Line {
	var lines []*Line
	for _, r := range p.Regions {
		lines = append(lines, r.Lines...)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].ReadingOrder != lines[j].ReadingOrder {
			return lines[i].ReadingOrder < lines[j].ReadingOrder
		}
		return lines[i].ID < lines[j].ID
	})
	return lines
}
