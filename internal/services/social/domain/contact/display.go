package contact

import "github.com/louisbranch/dossier/internal/services/social/i18n"

// TextField names a free-text field with a localized display form.
type TextField int

const (
	FieldRole TextField = iota
	FieldMetatype
	FieldSex
	FieldAge
	FieldPreferredPayment
	FieldHobbiesVice
	FieldPersonalLife
	FieldType
)

var fieldCategories = map[TextField]string{
	FieldRole:             "contacts.role",
	FieldSex:              "contacts.sex",
	FieldAge:              "contacts.age",
	FieldPreferredPayment: "contacts.preferredpayment",
	FieldHobbiesVice:      "contacts.hobbyvice",
	FieldPersonalLife:     "contacts.personallife",
	FieldType:             "contacts.type",
}

const (
	metatypeCategory = "metatypes"
	critterCategory  = "critters"
)

// Display returns field in lang. The default language shows the stored
// value; other languages use the field's table and fall back to the stored
// value.
func (c *Contact) Display(field TextField, lang string) string {
	if field == FieldMetatype {
		return c.displayMetatype(lang)
	}
	raw := c.rawField(field)
	if i18n.IsDefault(lang) {
		return raw
	}
	if translated, ok := c.translator.Translate(fieldCategories[field], raw, lang); ok {
		return translated
	}
	return raw
}

// SetDisplay stores value, given in lang, in its canonical form.
func (c *Contact) SetDisplay(field TextField, value, lang string) {
	categories := []string{fieldCategories[field]}
	if field == FieldMetatype {
		categories = []string{metatypeCategory, critterCategory}
	}
	c.setRawField(field, c.translator.ReverseTranslate(value, lang, categories...))
}

func (c *Contact) displayMetatype(lang string) string {
	record, ok := c.linked()
	if !ok {
		return c.translator.TranslateExtra(c.metatype, lang)
	}

	metatype := record.Metatype()
	category := metatypeCategory
	display, found := c.translator.Translate(category, metatype, lang)
	if !found {
		category = critterCategory
		display, found = c.translator.Translate(category, metatype, lang)
	}
	if !found {
		display = c.translator.TranslateExtra(metatype, lang)
	}

	if variant := record.Metavariant(); variant != "" {
		translated, ok := c.translator.Translate(category, metatype+".metavariant."+variant, lang)
		if !ok {
			translated = c.translator.TranslateExtra(variant, lang)
		}
		display += " (" + translated + ")"
	}
	return display
}

func (c *Contact) rawField(field TextField) string {
	switch field {
	case FieldRole:
		return c.role
	case FieldMetatype:
		return c.Metatype()
	case FieldSex:
		return c.Sex()
	case FieldAge:
		return c.Age()
	case FieldPreferredPayment:
		return c.preferredPayment
	case FieldHobbiesVice:
		return c.hobbiesVice
	case FieldPersonalLife:
		return c.personalLife
	case FieldType:
		return c.contactType
	default:
		return ""
	}
}

func (c *Contact) setRawField(field TextField, value string) {
	switch field {
	case FieldRole:
		c.role = value
	case FieldMetatype:
		c.metatype = value
	case FieldSex:
		c.sex = value
	case FieldAge:
		c.age = value
	case FieldPreferredPayment:
		c.preferredPayment = value
	case FieldHobbiesVice:
		c.hobbiesVice = value
	case FieldPersonalLife:
		c.personalLife = value
	case FieldType:
		c.contactType = value
	}
}
