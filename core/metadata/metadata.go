// Package metadata holds edition metadata for the TEI header and the rules
// for detecting and prompting it.
package metadata

import (
	"path/filepath"
	"strings"
)

// EditionType distinguishes the two edition presets.
type EditionType string

// Edition type constants.
const (
	EditionDiplomatic  EditionType = "diplomatic"
	EditionTranslation EditionType = "translation"
)

// Metadata describes one edition: the bibliographic fields of the TEI
// header plus page and language information. All fields are free-form
// strings passed through to the header verbatim.
type Metadata struct {
	Title         string
	Author        string
	EditionEditor string
	Translator    string
	Resp          string
	RespName      string
	Publisher     string
	PubDate       string

	// msIdentifier fields.
	Country     string
	Region      string
	Settlement  string
	District    string
	GeogName    string
	Institution string
	Repository  string
	Collection  string
	IdnoOld     string
	IdnoNew     string
	IdnoSiglum  string

	// Origin of the source object.
	OrigPlace     string
	OrigNotBefore string
	OrigNotAfter  string
	OrigLabel     string

	// Page and edition descriptors.
	PageN       string
	PageSide    string
	EditionType string
	Language    string
}

// DetectEditionType guesses the edition type from a filename pattern.
// Returns "" when nothing matches.
func DetectEditionType(filename string) EditionType {
	base := strings.ToLower(filepath.Base(filename))
	switch {
	case strings.Contains(base, "_dip") || strings.Contains(base, "diplomatic"):
		return EditionDiplomatic
	case strings.Contains(base, "_trad") || strings.Contains(base, "translation") || strings.Contains(base, "trans"):
		return EditionTranslation
	}
	return ""
}

// Defaults returns the preset metadata for the given edition type. Any
// unknown type gets the translation preset.
func Defaults(kind EditionType) Metadata {
	m := Metadata{
		Author:        "Anonymous",
		EditionEditor: "Robert W. Daniel",
		RespName:      "Federico Gaviria Zambrano",
		Publisher:     "Springer Fachmedien Wiesbaden GmbH",
		PubDate:       "1991",
		Country:       "Netherlands",
		Settlement:    "Leiden",
		Institution:   "Rijksmuseum van Oudheden",
		Collection:    "PGM",
		IdnoOld:       "J395",
		IdnoNew:       "AMS76",
		IdnoSiglum:    "PGM XIII",
		OrigPlace:     "Egypt",
		OrigNotBefore: "-0100",
		OrigNotAfter:  "0400",
		OrigLabel:     "1st c. BCE–4th c. CE",
	}

	if kind == EditionDiplomatic {
		m.Title = "PGM XIII — Diplomatic transcription"
		m.Resp = "digital edition preparation and TEI encoding"
		m.EditionType = "Diplomatic transcription"
		m.Language = "grc"
		return m
	}

	m.Title = "PGM XIII — Spanish translation"
	m.Translator = "Federico Gaviria Zambrano"
	m.Resp = "Spanish translation and TEI encoding"
	m.EditionType = "Spanish translation"
	m.Language = "es"
	return m
}

// LanguageName maps a language code used by the presets to its display
// name for profileDesc/langUsage.
func LanguageName(code string) string {
	if code == "grc" {
		return "Ancient Greek"
	}
	return "Spanish"
}
