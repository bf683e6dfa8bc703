package overlay

import (
	"sort"

	"github.com/FocuswithJustin/PageTEI/core/annotation"
	"github.com/FocuswithJustin/PageTEI/core/tei"
)

// wikidataBase is the URL prefix for persName @ref values derived from a
// wikiData identifier.
const wikidataBase = "https://www.wikidata.org/wiki/"

// BuilderFunc constructs the TEI element for one wrapper span. witness is
// the literal substring the span covers; styles are the textStyle spans
// contained in the span, rebased into the witness's coordinate frame.
type BuilderFunc func(witness string, attrs map[string]string, styles []annotation.Span) *tei.Element

// builders maps each known wrapper kind to its construction rule. Adding a
// wrapper kind means adding one entry here.
var builders = map[string]BuilderFunc{
	annotation.KindAbbrev:      buildAbbrev,
	annotation.KindSic:         buildSic,
	annotation.KindRegularised: buildRegularised,
	annotation.KindNum:         buildNum,
	annotation.KindPerson:      buildPerson,
	annotation.KindPlace:       buildPlace,
	annotation.KindRef:         buildRef,
	annotation.KindUnclear:     buildUnclear,
}

// Construct builds the element for a wrapper span, falling back to a
// generic tagged <seg> for unknown kinds so no information is lost.
func Construct(kind, witness string, attrs map[string]string, styles []annotation.Span) *tei.Element {
	if build, ok := builders[kind]; ok {
		return build(witness, attrs, styles)
	}
	return buildFallback(kind, witness, attrs, styles)
}

// buildAbbrev emits <choice><abbr>witness</abbr><expan>…</expan></choice>.
// The witness is the shorthand form and carries the styling.
func buildAbbrev(witness string, attrs map[string]string, styles []annotation.Span) *tei.Element {
	choice := tei.NewElement("choice")
	appendStyledText(choice.AppendElement("abbr"), witness, styles)
	choice.AppendElement("expan").AppendText(attrs["expansion"])
	return choice
}

// buildSic emits <choice><sic>witness</sic><corr>…</corr></choice>.
func buildSic(witness string, attrs map[string]string, styles []annotation.Span) *tei.Element {
	choice := tei.NewElement("choice")
	appendStyledText(choice.AppendElement("sic"), witness, styles)
	choice.AppendElement("corr").AppendText(attrs["correction"])
	return choice
}

// buildRegularised emits <choice><orig>…</orig><reg>witness</reg></choice>.
// Unlike abbrev and sic, the alternate form comes first and the styling
// attaches to the second alternative: the witness here is the regularised
// reading, the original attribute holds the source form.
func buildRegularised(witness string, attrs map[string]string, styles []annotation.Span) *tei.Element {
	choice := tei.NewElement("choice")
	choice.AppendElement("orig").AppendText(attrs["original"])
	appendStyledText(choice.AppendElement("reg"), witness, styles)
	return choice
}

func buildNum(witness string, attrs map[string]string, styles []annotation.Span) *tei.Element {
	num := tei.NewElement("num")
	setAttrIfPresent(num, attrs, "type")
	setAttrIfPresent(num, attrs, "value")
	appendStyledText(num, witness, styles)
	return num
}

func buildPerson(witness string, attrs map[string]string, styles []annotation.Span) *tei.Element {
	persName := tei.NewElement("persName")
	setAttrIfPresent(persName, attrs, "type")
	if id, ok := attrs["wikiData"]; ok {
		persName.SetAttr("ref", wikidataBase+id)
	}
	appendStyledText(persName, witness, styles)
	return persName
}

// placeFields are the place attributes nested as child elements, in their
// fixed emission order.
var placeFields = [...]string{"country", "region", "settlement", "district"}

// buildPlace emits nested field elements when any of the place attributes
// is present; only an unannotated place carries the witness text. Nested
// fields and styled text are mutually exclusive.
func buildPlace(witness string, attrs map[string]string, styles []annotation.Span) *tei.Element {
	placeName := tei.NewElement("placeName")
	nested := false
	for _, f := range placeFields {
		if v, ok := attrs[f]; ok {
			placeName.AppendElement(f).AppendText(v)
			nested = true
		}
	}
	if !nested {
		appendStyledText(placeName, witness, styles)
	}
	return placeName
}

func buildRef(witness string, attrs map[string]string, styles []annotation.Span) *tei.Element {
	ref := tei.NewElement("ref")
	setAttrIfPresent(ref, attrs, "type")
	setAttrIfPresent(ref, attrs, "target")
	appendStyledText(ref, witness, styles)
	return ref
}

func buildUnclear(witness string, attrs map[string]string, styles []annotation.Span) *tei.Element {
	unclear := tei.NewElement("unclear")
	setAttrIfPresent(unclear, attrs, "reason")
	appendStyledText(unclear, witness, styles)
	return unclear
}

// buildFallback emits <seg type="kind"> echoing every attribute as a
// data-* attribute, in sorted key order for deterministic output.
func buildFallback(kind, witness string, attrs map[string]string, styles []annotation.Span) *tei.Element {
	seg := tei.NewElement("seg")
	seg.SetAttr("type", kind)

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		seg.SetAttr("data-"+k, attrs[k])
	}

	appendStyledText(seg, witness, styles)
	return seg
}

func setAttrIfPresent(e *tei.Element, attrs map[string]string, key string) {
	if v, ok := attrs[key]; ok {
		e.SetAttr(key, v)
	}
}
