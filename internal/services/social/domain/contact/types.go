package contact

import (
	"context"

	"github.com/louisbranch/dossier/internal/services/social/domain/mugshot"
)

// EntityType classifies a contact.
type EntityType int

const (
	TypeContact EntityType = iota
	TypeEnemy
	TypePet
)

// String returns the canonical document form of t.
func (t EntityType) String() string {
	switch t {
	case TypeEnemy:
		return "Enemy"
	case TypePet:
		return "Pet"
	default:
		return "Contact"
	}
}

// ParseEntityType classifies stored type text: "Contact" and "Pet" map to
// themselves, empty text is a Contact and anything else is an Enemy. known
// is false when text was neither empty nor one of the three names.
func ParseEntityType(text string) (t EntityType, known bool) {
	switch text {
	case "":
		return TypeContact, true
	case "Contact":
		return TypeContact, true
	case "Pet":
		return TypePet, true
	case "Enemy":
		return TypeEnemy, true
	default:
		return TypeEnemy, false
	}
}

// Property names a contact value observers can watch.
type Property string

const (
	PropertyName              Property = "Name"
	PropertyAge               Property = "Age"
	PropertySex               Property = "Sex"
	PropertyMetatype          Property = "Metatype"
	PropertyNoLinkedCharacter Property = "NoLinkedCharacter"
	PropertyLoyalty           Property = "Loyalty"
	PropertyConnection        Property = "Connection"
)

// Owner is the character profile a contact belongs to.
type Owner interface {
	FilePath() string
	Created() bool
	FriendsInHighPlaces() bool
	PrintNotes() bool
}

// LinkedRecord is a loaded character a contact reads through to.
type LinkedRecord interface {
	FilePath() string
	CharacterName() string
	Age() string
	Sex() string
	Metatype() string
	Metavariant() string
	Mugshots() *mugshot.Gallery
	PrintMugshots(ctx context.Context) (mugshot.Printout, error)
}

// Linker resolves file references to shared records. Relink moves c from
// old (nil when unlinked) to the record named by the paths; Release drops
// c's interest in record.
type Linker interface {
	Relink(ctx context.Context, c *Contact, old LinkedRecord, filePath, relativePath string, notify bool) (LinkedRecord, bool)
	Release(ctx context.Context, c *Contact, record LinkedRecord)
}

// Translator converts stored values to and from a display language.
type Translator interface {
	Translate(category, raw, lang string) (string, bool)
	TranslateExtra(raw, lang string) string
	ReverseTranslate(display, lang string, categories ...string) string
	String(key, lang string) string
}
