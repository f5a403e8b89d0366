// Package i18n translates game data values (roles, metatypes, sexes) between
// their canonical English form and a display language.
package i18n

import (
	"slices"
	"strings"

	"github.com/louisbranch/dossier/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultLanguage is the language canonical values are stored in.
	DefaultLanguage = catalog.BaseLocale

	extraCategory = "extra"
	coreCategory  = "core"
)

// dataCategories hold game data tables. UI strings and error templates are
// never matched by value.
var dataCategories = []string{"contacts", "metatypes", "critters"}

// Translator looks values up in a catalog bundle.
type Translator struct {
	bundle *catalog.Bundle
}

// NewTranslator returns a translator over bundle, or over the embedded
// catalogs when bundle is nil.
func NewTranslator(bundle *catalog.Bundle) *Translator {
	if bundle == nil {
		bundle = catalog.Default()
	}
	return &Translator{bundle: bundle}
}

// IsDefault reports whether lang is the canonical language.
func IsDefault(lang string) bool {
	lang = strings.TrimSpace(lang)
	return lang == "" || lang == DefaultLanguage
}

// Translate returns the entry for raw in a category table ("contacts.role",
// "metatypes", ...) of lang. It reports false when the table has no entry.
func (t *Translator) Translate(category, raw, lang string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if IsDefault(lang) {
		lang = DefaultLanguage
	}
	return t.bundle.Lookup(lang, category+"."+raw)
}

// TranslateExtra translates a free value that may live in any data table.
// The "extra" table wins; otherwise any data entry whose canonical text is
// raw is used. Unknown values come back unchanged.
func (t *Translator) TranslateExtra(raw, lang string) string {
	if raw == "" || IsDefault(lang) {
		return raw
	}
	if value, ok := t.bundle.Lookup(lang, extraCategory+"."+raw); ok {
		return value
	}
	for _, category := range dataCategories {
		for _, key := range t.bundle.ReverseLookup(DefaultLanguage, category+".", raw) {
			if value, ok := t.bundle.Lookup(lang, key); ok {
				return value
			}
		}
	}
	return raw
}

// ReverseTranslate maps display text in lang back to its canonical value,
// searching the given category tables and then "extra". Text with no entry
// is returned unchanged.
func (t *Translator) ReverseTranslate(display, lang string, categories ...string) string {
	if display == "" || IsDefault(lang) {
		return display
	}
	for _, category := range append(slices.Clone(categories), extraCategory) {
		if category == "" {
			continue
		}
		for _, key := range t.bundle.ReverseLookup(lang, category+".", display) {
			if value, ok := t.bundle.Lookup(DefaultLanguage, key); ok {
				return value
			}
		}
	}
	return display
}

// String returns a UI string ("String_Group") in lang with canonical
// fallback. Unknown keys come back as the key.
func (t *Translator) String(key, lang string) string {
	if IsDefault(lang) {
		lang = DefaultLanguage
	}
	if value, ok := t.bundle.Message(lang, coreCategory+"."+key); ok {
		return value
	}
	return key
}

// Printer returns a number printer for lang, falling back to the canonical
// language when lang does not parse.
func Printer(lang string) *message.Printer {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		tag = language.MustParse(DefaultLanguage)
	}
	return message.NewPrinter(tag)
}
