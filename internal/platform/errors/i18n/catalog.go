// Package i18n renders localized notices for error codes.
//
// Templates live in the "errors" namespace of the shared message catalog.
// A key "<CODE>" holds the message and "<CODE>.title" the title shown above
// it; codes without a title use the "DEFAULT.title" entry.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/dossier/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

const (
	errorsNamespace = "errors"
	titleSuffix     = ".title"
	defaultTitleKey = "DEFAULT"
)

// Notice is the user-facing form of an error.
type Notice struct {
	Title   string
	Message string
}

// Catalog holds the notice templates of one locale.
type Catalog struct {
	locale    string
	messages  map[Code]string
	titles    map[Code]string
	templates sync.Map // Code -> *template.Template, nil when unparseable
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}
)

// GetCatalog returns the catalog for locale, falling back to the base
// locale when the catalog has no error templates for it.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	if c, ok := lookupCatalog(requested); ok {
		return c
	}

	resolved, entries := i18ncatalog.Default().NamespaceMessagesWithFallback(requested, errorsNamespace)
	if c, ok := lookupCatalog(resolved); ok {
		storeCatalog(requested, c)
		return c
	}
	messages, titles := splitEntries(entries)
	built := NewCatalog(resolved, messages, titles)
	built = storeCatalog(resolved, built)
	return storeCatalog(requested, built)
}

// NewCatalog returns a catalog over message and title templates keyed by
// code.
func NewCatalog(locale string, messages, titles map[Code]string) *Catalog {
	return &Catalog{
		locale:   locale,
		messages: clone(messages),
		titles:   clone(titles),
	}
}

// Locale returns the locale the catalog renders.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template of code with metadata. Unknown codes
// render as the code itself and broken templates as their source text.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.messages[code]
	if !ok {
		return code
	}
	return c.render(code, text, metadata)
}

// Title returns the title for code.
func (c *Catalog) Title(code Code) string {
	if title, ok := c.titles[code]; ok {
		return title
	}
	return c.titles[defaultTitleKey]
}

// Notice renders the title and message of code.
func (c *Catalog) Notice(code Code, metadata map[string]string) Notice {
	return Notice{Title: c.Title(code), Message: c.Format(code, metadata)}
}

func (c *Catalog) render(code Code, text string, metadata map[string]string) string {
	cached, ok := c.templates.Load(code)
	if !ok {
		parsed, err := template.New(code).Option("missingkey=zero").Parse(text)
		if err != nil {
			parsed = nil
		}
		cached, _ = c.templates.LoadOrStore(code, parsed)
	}
	tmpl, _ := cached.(*template.Template)
	if tmpl == nil {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return text
	}
	return buf.String()
}

func splitEntries(entries map[string]string) (messages, titles map[Code]string) {
	messages = make(map[Code]string, len(entries))
	titles = map[Code]string{}
	for key, value := range entries {
		if code, ok := strings.CutSuffix(key, titleSuffix); ok {
			titles[code] = value
			continue
		}
		messages[key] = value
	}
	return messages, titles
}

func lookupCatalog(locale string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	c, ok := catalogs[locale]
	return c, ok
}

func storeCatalog(locale string, candidate *Catalog) *Catalog {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if existing, ok := catalogs[locale]; ok {
		return existing
	}
	catalogs[locale] = candidate
	return candidate
}

func clone(in map[Code]string) map[Code]string {
	out := make(map[Code]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
