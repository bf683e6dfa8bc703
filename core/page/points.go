package page

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/PageTEI/core/errors"
)

// Point is one polygon vertex from a PAGE points attribute.
type Point struct {
	X int
	Y int
}

// PointList is a polygon as parsed from "x1,y1 x2,y2 ...".
type PointList []Point

// String renders the polygon back in canonical PAGE form: single spaces
// between vertices, no surrounding whitespace.
func (pl PointList) String() string {
	var sb strings.Builder
	for i, p := range pl {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d,%d", p.X, p.Y)
	}
	return sb.String()
}

// pointsGrammar is the participle grammar for the points attribute.
//
//nolint:govet // participle grammar tags are not standard struct tags
type pointsGrammar struct {
	Points []*pointPair `@@ @@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type pointPair struct {
	X int `@Int ","`
	Y int `@Int`
}

// pointsLexer tokenizes the points attribute. Coordinates may be negative
// in cropped exports.
var pointsLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var pointsParser = participle.MustBuild[pointsGrammar](
	participle.Lexer(pointsLexer),
	participle.Elide("Whitespace"),
)

// ParsePoints parses a PAGE points attribute. Unlike the annotation
// mini-language, the points grammar is total: anything that is not a
// whitespace-separated run of x,y integer pairs is an error, and callers
// decide whether to drop the polygon.
func ParsePoints(s string) (PointList, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NewParse("points", "", "empty points attribute")
	}

	parsed, err := pointsParser.ParseString("", s)
	if err != nil {
		return nil, &errors.ParseError{Format: "points", Message: fmt.Sprintf("%q: %v", s, err), Err: err}
	}

	pl := make(PointList, len(parsed.Points))
	for i, p := range parsed.Points {
		pl[i] = Point{X: p.X, Y: p.Y}
	}
	return pl, nil
}
