package contact

import (
	"context"

	"github.com/louisbranch/dossier/internal/services/social/domain/mugshot"
)

// linkState is either unlinked or delegated to a record.
type linkState interface {
	isLinkState()
}

type unlinked struct{}

type delegated struct {
	record LinkedRecord
}

func (unlinked) isLinkState()  {}
func (delegated) isLinkState() {}

// linked returns the record the contact reads through to. Every read-through
// accessor goes through here.
func (c *Contact) linked() (LinkedRecord, bool) {
	if d, ok := c.link.(delegated); ok {
		return d.record, true
	}
	return nil, false
}

// LinkedCharacter returns the linked record, or nil.
func (c *Contact) LinkedCharacter() LinkedRecord {
	record, _ := c.linked()
	return record
}

// NoLinkedCharacter reports whether the contact uses its local fields.
func (c *Contact) NoLinkedCharacter() bool {
	_, ok := c.linked()
	return !ok
}

// SetFileName changes the linked file and resolves it again. A missing file
// is reported through the linker's notifier unless name is empty.
func (c *Contact) SetFileName(ctx context.Context, name string) {
	if c.fileName == name {
		return
	}
	c.fileName = name
	c.RefreshLinkedCharacter(ctx, name != "")
}

// SetRelativeFileName changes the relative file reference and resolves it
// again.
func (c *Contact) SetRelativeFileName(ctx context.Context, name string) {
	if c.relativeName == name {
		return
	}
	c.relativeName = name
	c.RefreshLinkedCharacter(ctx, name != "")
}

// RefreshLinkedCharacter resolves the file reference and swaps the linked
// record. When the record changes, empty local identity fields are seeded
// from it. Observers of the identity fields are notified afterwards, whether
// or not anything changed.
func (c *Contact) RefreshLinkedCharacter(ctx context.Context, notify bool) {
	old, _ := c.linked()
	var next LinkedRecord
	if c.linker != nil {
		if record, ok := c.linker.Relink(ctx, c, old, c.fileName, c.relativeName, notify); ok {
			next = record
		}
	}
	if next == nil {
		c.link = unlinked{}
	} else {
		c.link = delegated{record: next}
	}
	if next != nil && next != old {
		c.seedFrom(next)
	}
	c.notify(PropertyName, PropertyAge, PropertySex, PropertyMetatype, PropertyNoLinkedCharacter)
}

// RefreshForControl announces Loyalty and Connection and then resolves the
// link again without notices.
func (c *Contact) RefreshForControl(ctx context.Context) {
	c.notify(PropertyLoyalty, PropertyConnection)
	c.RefreshLinkedCharacter(ctx, false)
}

// Release drops the contact's interest in its linked record. Call it when
// the owning profile discards the contact.
func (c *Contact) Release(ctx context.Context) {
	record, ok := c.linked()
	c.link = unlinked{}
	if ok && c.linker != nil {
		c.linker.Release(ctx, c, record)
	}
}

func (c *Contact) seedFrom(record LinkedRecord) {
	if c.name == "" {
		if name := record.CharacterName(); name != c.translator.String("String_UnnamedCharacter", c.language) {
			c.name = name
		}
	}
	if c.age == "" {
		c.age = record.Age()
	}
	if c.sex == "" {
		c.sex = record.Sex()
	}
	if c.metatype == "" {
		c.metatype = c.Metatype()
	}
}

// Mugshots returns the linked record's gallery when linked, else the
// contact's own.
func (c *Contact) Mugshots() *mugshot.Gallery {
	if record, ok := c.linked(); ok {
		return record.Mugshots()
	}
	return c.gallery
}

func (c *Contact) MainMugshot() *mugshot.Image       { return c.Mugshots().Main() }
func (c *Contact) SetMainMugshot(img *mugshot.Image) { c.Mugshots().SetMain(img) }
func (c *Contact) MainMugshotIndex() int             { return c.Mugshots().MainIndex() }
func (c *Contact) SetMainMugshotIndex(index int)     { c.Mugshots().SetMainIndex(index) }

// PrintMugshots renders the gallery section of a print document, handing
// off to the linked record when there is one.
func (c *Contact) PrintMugshots(ctx context.Context) (mugshot.Printout, error) {
	if record, ok := c.linked(); ok {
		return record.PrintMugshots(ctx)
	}
	return c.gallery.Print(ctx, c.mugshotDir)
}
