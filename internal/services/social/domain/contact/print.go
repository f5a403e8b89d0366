package contact

import (
	"context"

	"github.com/louisbranch/dossier/internal/platform/errors"
	"github.com/louisbranch/dossier/internal/platform/otel"
	"github.com/louisbranch/dossier/internal/platform/telemetry/metrics"
	"github.com/louisbranch/dossier/internal/services/social/i18n"
	"go.uber.org/zap"
)

// Print renders the contact for a print export in lang. Failures writing
// portrait files are logged; the export keeps the inline payloads.
func (c *Contact) Print(ctx context.Context, lang string) *PrintDocument {
	ctx, span := otel.StartSpan(ctx, "contact.print")
	defer span.End()
	metrics.DocumentsTotal.WithLabelValues(metrics.OpPrint).Inc()

	numbers := i18n.Printer(lang)
	connection := numbers.Sprintf("%d", c.connection)
	if c.isGroup {
		connection = c.translator.String("String_Group", lang) + "(" + connection + ")"
	}
	doc := &PrintDocument{
		Name:             c.Name(),
		Role:             c.Display(FieldRole, lang),
		Location:         c.location,
		Connection:       connection,
		Loyalty:          numbers.Sprintf("%d", c.loyalty),
		Metatype:         c.Display(FieldMetatype, lang),
		Sex:              c.Display(FieldSex, lang),
		Age:              c.Display(FieldAge, lang),
		ContactType:      c.Display(FieldType, lang),
		PreferredPayment: c.Display(FieldPreferredPayment, lang),
		HobbiesVice:      c.Display(FieldHobbiesVice, lang),
		PersonalLife:     c.Display(FieldPersonalLife, lang),
		Type:             c.translator.String("String_"+c.entityType.String(), lang),
		ForceLoyalty:     formatBool(c.forceLoyalty),
		Blackmail:        formatBool(c.blackmail),
		Family:           formatBool(c.family),
	}
	if c.owner != nil && c.owner.PrintNotes() {
		doc.Notes = text(c.notes)
	}

	printout, err := c.PrintMugshots(ctx)
	if err != nil {
		c.warn(errors.CodeFilesystemPermission, "printing mugshots inline", zap.Error(err))
	}
	doc.Printout = printout
	return doc
}
