package contact

import (
	"context"
	"strconv"
	"strings"

	"github.com/louisbranch/dossier/internal/platform/errors"
	"github.com/louisbranch/dossier/internal/platform/otel"
	"github.com/louisbranch/dossier/internal/platform/telemetry/metrics"
	"go.uber.org/zap"
)

// Load replaces the contact's fields with those present in doc. Absent
// elements keep their current value and unreadable ones are logged and
// skipped. The file reference is then resolved without notices and the
// portrait gallery decoded.
func (c *Contact) Load(ctx context.Context, doc *Document) {
	if doc == nil {
		return
	}
	ctx, span := otel.StartSpan(ctx, "contact.load")
	defer span.End()
	metrics.DocumentsTotal.WithLabelValues(metrics.OpLoad).Inc()

	loadText(doc.Name, &c.name)
	loadText(doc.Role, &c.role)
	loadText(doc.Location, &c.location)
	c.loadInt("connection", doc.Connection, &c.connection)
	c.loadInt("loyalty", doc.Loyalty, &c.loyalty)
	c.loyalty = max(c.loyalty, 0)
	loadText(doc.Metatype, &c.metatype)
	loadText(doc.Sex, &c.sex)
	loadText(doc.Age, &c.age)
	loadText(doc.ContactType, &c.contactType)
	loadText(doc.PreferredPayment, &c.preferredPayment)
	loadText(doc.HobbiesVice, &c.hobbiesVice)
	loadText(doc.PersonalLife, &c.personalLife)
	c.loadEntityType(doc.Type)
	loadText(doc.File, &c.fileName)
	loadText(doc.Relative, &c.relativeName)
	loadText(doc.Notes, &c.notes)
	loadText(doc.GroupName, &c.groupName)
	c.loadBool("free", doc.Free, &c.free)
	c.loadBool("group", doc.Group, &c.isGroup)
	if doc.GUID != nil && strings.TrimSpace(*doc.GUID) != "" {
		c.guid = strings.TrimSpace(*doc.GUID)
	}
	c.loadBool("family", doc.Family, &c.family)
	c.loadBool("blackmail", doc.Blackmail, &c.blackmail)
	c.loadColour(doc.Colour)
	if doc.ReadOnly != nil {
		c.readOnly = true
	}
	if doc.ForceLoyalty != nil {
		c.loadBool("forceloyalty", doc.ForceLoyalty, &c.forceLoyalty)
	} else if doc.MadeMan != nil {
		c.loadBool("mademan", doc.MadeMan, &c.forceLoyalty)
	}

	c.RefreshLinkedCharacter(ctx, false)

	mainIndex := c.gallery.MainIndex()
	c.loadInt("mainmugshotindex", doc.MainMugshotIndex, &mainIndex)
	if err := c.gallery.Load(ctx, mainIndex, doc.Mugshots); err != nil {
		c.warn(errors.CodeMugshotDecodeFailed, "dropped undecodable mugshots", zap.Error(err))
	}
}

func loadText(value *string, target *string) {
	if value != nil {
		*target = *value
	}
}

func (c *Contact) loadInt(field string, value *string, target *int) {
	if value == nil {
		return
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(*value))
	if err != nil {
		c.malformed(field, *value)
		return
	}
	*target = parsed
}

func (c *Contact) loadBool(field string, value *string, target *bool) {
	if value == nil {
		return
	}
	switch strings.ToLower(strings.TrimSpace(*value)) {
	case "true", "1":
		*target = true
	case "false", "0":
		*target = false
	default:
		c.malformed(field, *value)
	}
}

func (c *Contact) loadColour(value *string) {
	if value == nil {
		return
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(*value), 10, 32)
	if err != nil {
		c.malformed("colour", *value)
		return
	}
	c.colour = int32(parsed)
}

func (c *Contact) loadEntityType(value *string) {
	raw := ""
	if value != nil {
		raw = strings.TrimSpace(*value)
	}
	entityType, known := ParseEntityType(raw)
	if !known {
		c.warn(errors.CodeContactUnknownClassification, "unknown contact type read as enemy", zap.String("value", raw))
	}
	c.entityType = entityType
}

func (c *Contact) malformed(field, value string) {
	c.warn(errors.CodeDocumentMalformedField, "ignored unreadable contact field",
		zap.String("field", field), zap.String("value", value))
}

func (c *Contact) warn(code errors.Code, message string, fields ...zap.Field) {
	metrics.WarningsTotal.WithLabelValues(string(code)).Inc()
	fields = append(fields, zap.String("code", string(code)), zap.String("guid", c.guid))
	c.logger.Warn(message, fields...)
}
