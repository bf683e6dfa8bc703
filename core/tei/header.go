package tei

import (
	"fmt"

	"github.com/FocuswithJustin/PageTEI/core/metadata"
)

// BuildHeader assembles the teiHeader for one edition. Optional fields that
// are empty in meta produce no element at all.
func BuildHeader(meta metadata.Metadata) *Element {
	header := NewElement("teiHeader")
	fileDesc := header.AppendElement("fileDesc")

	titleStmt := fileDesc.AppendElement("titleStmt")
	titleStmt.AppendTextElement("title", meta.Title)
	titleStmt.AppendTextElement("author", meta.Author)
	if meta.Translator != "" {
		titleStmt.AppendTextElement("editor", meta.Translator).SetAttr("role", "translator")
	}
	if meta.EditionEditor != "" {
		titleStmt.AppendTextElement("editor", meta.EditionEditor)
	}
	respStmt := titleStmt.AppendElement("respStmt")
	respStmt.AppendTextElement("resp", meta.Resp)
	respStmt.AppendTextElement("name", meta.RespName)

	editionStmt := fileDesc.AppendElement("editionStmt")
	edition := meta.EditionType
	if edition == "" {
		edition = "Digital edition"
	}
	editionStmt.AppendTextElement("edition", edition)

	publicationStmt := fileDesc.AppendElement("publicationStmt")
	if meta.Publisher != "" {
		publicationStmt.AppendTextElement("publisher", meta.Publisher)
	}
	if meta.PubDate != "" {
		publicationStmt.AppendTextElement("date", meta.PubDate)
	}
	publicationStmt.AppendTextElement("p", "Digital edition for research and display purposes.")

	sourceDesc := fileDesc.AppendElement("sourceDesc")
	msDesc := sourceDesc.AppendElement("msDesc")
	msDesc.AppendChild(buildMsIdentifier(meta))

	if meta.PageN != "" {
		physDesc := msDesc.AppendElement("physDesc")
		supportDesc := physDesc.AppendElement("objectDesc").AppendElement("supportDesc")
		supportDesc.AppendTextElement("foliation",
			fmt.Sprintf("Numbered as %q in the current collection.", meta.PageN))
	}

	origin := msDesc.AppendElement("history").AppendElement("origin")
	if meta.OrigPlace != "" {
		origin.AppendElement("origPlace").AppendTextElement("placeName", meta.OrigPlace)
	}
	origDate := origin.AppendElement("origDate")
	if meta.OrigNotBefore != "" {
		origDate.SetAttr("notBefore", meta.OrigNotBefore)
	}
	if meta.OrigNotAfter != "" {
		origDate.SetAttr("notAfter", meta.OrigNotAfter)
	}
	origDate.AppendText(meta.OrigLabel)

	encodingDesc := header.AppendElement("encodingDesc")
	encodingDesc.AppendTextElement("p",
		"Converted from PAGE-XML with full semantic markup including "+
			"abbreviations, corrections, regularisations, numbers, person names, place names, "+
			"references, and text styling.")

	profileDesc := header.AppendElement("profileDesc")
	langUsage := profileDesc.AppendElement("langUsage")
	langUsage.AppendTextElement("language", metadata.LanguageName(meta.Language)).
		SetAttr("ident", meta.Language)

	revisionDesc := header.AppendElement("revisionDesc")
	revisionDesc.AppendTextElement("change",
		"Automated conversion from PAGE-XML with preservation of all annotations.")

	return header
}

// buildMsIdentifier emits the msIdentifier block, one child per present
// field, in the canonical TEI order.
func buildMsIdentifier(meta metadata.Metadata) *Element {
	ms := NewElement("msIdentifier")
	fields := []struct {
		name  string
		value string
	}{
		{"country", meta.Country},
		{"region", meta.Region},
		{"settlement", meta.Settlement},
		{"district", meta.District},
		{"geogName", meta.GeogName},
		{"institution", meta.Institution},
		{"repository", meta.Repository},
		{"collection", meta.Collection},
	}
	for _, f := range fields {
		if f.value != "" {
			ms.AppendTextElement(f.name, f.value)
		}
	}
	if meta.IdnoOld != "" {
		ms.AppendTextElement("idno", meta.IdnoOld).SetAttr("type", "oldCatalog")
	}
	if meta.IdnoNew != "" {
		ms.AppendTextElement("idno", meta.IdnoNew).SetAttr("type", "museumNew")
	}
	if meta.IdnoSiglum != "" {
		ms.AppendTextElement("idno", meta.IdnoSiglum).SetAttr("type", "siglum")
	}
	return ms
}
