package metadata

import "testing"

func TestDetectEditionType(t *testing.T) {
	tests := []struct {
		filename string
		want     EditionType
	}{
		{"pgm13_dip.xml", EditionDiplomatic},
		{"diplomatic_edition.xml", EditionDiplomatic},
		{"PGM13_Diplomatic.xml", EditionDiplomatic},
		{"pgm13_trad.xml", EditionTranslation},
		{"my_translation.xml", EditionTranslation},
		{"page_trans_01.xml", EditionTranslation},
		{"/some/dir/pgm13_dip.xml", EditionDiplomatic},
		{"plain.xml", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DetectEditionType(tt.filename); got != tt.want {
			t.Errorf("DetectEditionType(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestDefaultsDiplomatic(t *testing.T) {
	m := Defaults(EditionDiplomatic)
	if m.Language != "grc" {
		t.Errorf("Language = %q, want grc", m.Language)
	}
	if m.Translator != "" {
		t.Errorf("Translator = %q, want empty for diplomatic", m.Translator)
	}
	if m.EditionType != "Diplomatic transcription" {
		t.Errorf("EditionType = %q", m.EditionType)
	}
	if m.IdnoSiglum != "PGM XIII" {
		t.Errorf("IdnoSiglum = %q", m.IdnoSiglum)
	}
}

func TestDefaultsTranslation(t *testing.T) {
	m := Defaults(EditionTranslation)
	if m.Language != "es" {
		t.Errorf("Language = %q, want es", m.Language)
	}
	if m.Translator == "" {
		t.Error("translation preset should set a translator")
	}
}

func TestDefaultsUnknownKindFallsBackToTranslation(t *testing.T) {
	if got := Defaults("").Language; got != "es" {
		t.Errorf("Language = %q, want the translation preset", got)
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName("grc"); got != "Ancient Greek" {
		t.Errorf("LanguageName(grc) = %q", got)
	}
	if got := LanguageName("es"); got != "Spanish" {
		t.Errorf("LanguageName(es) = %q", got)
	}
}
