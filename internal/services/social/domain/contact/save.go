package contact

import (
	"strconv"

	"github.com/louisbranch/dossier/internal/platform/telemetry/metrics"
)

// Save returns the stored form of the contact. Local values are written, not
// the values read through from a linked record.
func (c *Contact) Save() *Document {
	metrics.DocumentsTotal.WithLabelValues(metrics.OpSave).Inc()
	doc := &Document{
		Name:             text(c.name),
		Role:             text(c.role),
		Location:         text(c.location),
		Connection:       text(strconv.Itoa(c.connection)),
		Loyalty:          text(strconv.Itoa(c.loyalty)),
		Metatype:         text(c.metatype),
		Sex:              text(c.sex),
		Age:              text(c.age),
		ContactType:      text(c.contactType),
		PreferredPayment: text(c.preferredPayment),
		HobbiesVice:      text(c.hobbiesVice),
		PersonalLife:     text(c.personalLife),
		Type:             text(c.entityType.String()),
		File:             text(c.fileName),
		Relative:         text(c.relativeName),
		Notes:            text(c.notes),
		GroupName:        text(c.groupName),
		Colour:           text(strconv.FormatInt(int64(c.colour), 10)),
		Free:             text(formatBool(c.free)),
		Group:            text(formatBool(c.isGroup)),
		ForceLoyalty:     text(formatBool(c.forceLoyalty)),
		Family:           text(formatBool(c.family)),
		Blackmail:        text(formatBool(c.blackmail)),
		MainMugshotIndex: text(strconv.Itoa(c.gallery.MainIndex())),
		Mugshots:         c.gallery.Payloads(),
	}
	if c.readOnly {
		doc.ReadOnly = &struct{}{}
	}
	if c.guid != "" {
		doc.GUID = text(c.guid)
	}
	// Writing the linked record back is disabled: none of its properties
	// can be changed through a contact.
	return doc
}

func text(value string) *string {
	return &value
}
