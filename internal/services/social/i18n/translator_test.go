package i18n

import "testing"

func TestTranslateCategory(t *testing.T) {
	tr := NewTranslator(nil)
	tests := []struct {
		category, raw, lang string
		want                string
		found               bool
	}{
		{"contacts.role", "Fixer", "de-DE", "Schieber", true},
		{"contacts.role", "Fixer", "en-US", "Fixer", true},
		{"contacts.role", "Mr. Johnson", "de-DE", "", false},
		{"metatypes", "Human", "de-DE", "Mensch", true},
		{"critters", "Dragon", "de-DE", "Drache", true},
		{"contacts.role", "", "de-DE", "", false},
	}
	for _, tt := range tests {
		got, found := tr.Translate(tt.category, tt.raw, tt.lang)
		if got != tt.want || found != tt.found {
			t.Fatalf("Translate(%q, %q, %q) = (%q, %v), want (%q, %v)",
				tt.category, tt.raw, tt.lang, got, found, tt.want, tt.found)
		}
	}
}

func TestTranslateExtra(t *testing.T) {
	tr := NewTranslator(nil)
	tests := []struct {
		raw, lang, want string
	}{
		{"Metahuman", "de-DE", "Metamensch"},
		{"Fixer", "de-DE", "Schieber"},
		{"Night One", "de-DE", "Nachtelf"},
		{"Fixer", "en-US", "Fixer"},
		{"Unlisted", "de-DE", "Unlisted"},
		{"Metahuman", "", "Metahuman"},
		{"Warning", "de-DE", "Warning"},
	}
	for _, tt := range tests {
		if got := tr.TranslateExtra(tt.raw, tt.lang); got != tt.want {
			t.Fatalf("TranslateExtra(%q, %q) = %q, want %q", tt.raw, tt.lang, got, tt.want)
		}
	}
}

func TestReverseTranslate(t *testing.T) {
	tr := NewTranslator(nil)
	tests := []struct {
		display, lang, category, want string
	}{
		{"Schieber", "de-DE", "contacts.role", "Fixer"},
		{"Mensch", "de-DE", "metatypes", "Human"},
		{"Metamensch", "de-DE", "metatypes", "Metahuman"},
		{"Schieber", "en-US", "contacts.role", "Schieber"},
		{"Unbekannter Wert", "de-DE", "contacts.role", "Unbekannter Wert"},
		// core.String_Contact reads "Connection" in de-DE.
		{"Connection", "de-DE", "contacts.role", "Connection"},
		{"Mensch", "de-DE", "contacts.role", "Mensch"},
	}
	for _, tt := range tests {
		if got := tr.ReverseTranslate(tt.display, tt.lang, tt.category); got != tt.want {
			t.Fatalf("ReverseTranslate(%q, %q, %q) = %q, want %q", tt.display, tt.lang, tt.category, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tr := NewTranslator(nil)
	if got := tr.String("String_Group", "de-DE"); got != "Gruppe" {
		t.Fatalf("String_Group = %q, want Gruppe", got)
	}
	if got := tr.String("String_Group", "fr-FR"); got != "Group" {
		t.Fatalf("fallback String_Group = %q, want Group", got)
	}
	if got := tr.String("String_Missing", "en-US"); got != "String_Missing" {
		t.Fatalf("missing key = %q, want key", got)
	}
}

func TestPrinterFormatsNumbers(t *testing.T) {
	if got := Printer("de-DE").Sprintf("%d", 12000); got != "12.000" {
		t.Fatalf("de-DE number = %q, want 12.000", got)
	}
	if got := Printer("not a tag").Sprintf("%d", 12000); got != "12,000" {
		t.Fatalf("fallback number = %q, want 12,000", got)
	}
}
