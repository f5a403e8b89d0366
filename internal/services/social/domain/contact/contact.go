package contact

import (
	"strconv"
	"strings"

	"github.com/louisbranch/dossier/internal/platform/id"
	"github.com/louisbranch/dossier/internal/platform/logging"
	"github.com/louisbranch/dossier/internal/services/social/domain/mugshot"
	"github.com/louisbranch/dossier/internal/services/social/i18n"
	"go.uber.org/zap"
)

const (
	// DefaultMugshotDir is where printed portraits are written.
	DefaultMugshotDir = "mugshots"

	groupLoyalty   = 1
	madeManLoyalty = 3
)

// Options wires a contact to its collaborators.
type Options struct {
	// Translator defaults to the embedded catalogs.
	Translator Translator
	// Linker resolves file references. Nil stores references without
	// resolving them.
	Linker Linker
	// Language is the interface language used to recognise the unnamed
	// character placeholder.
	Language string
	// MugshotDir receives temporary portrait files when printing.
	MugshotDir string
	Logger     *zap.Logger
}

// Contact is one relationship of a character profile. A Contact is owned by
// a single goroutine; only the linked record it points at is shared.
type Contact struct {
	owner      Owner
	translator Translator
	linker     Linker
	language   string
	mugshotDir string
	logger     *zap.Logger

	guid       string
	entityType EntityType

	name             string
	role             string
	location         string
	metatype         string
	sex              string
	age              string
	contactType      string
	preferredPayment string
	hobbiesVice      string
	personalLife     string
	groupName        string
	notes            string

	connection int
	loyalty    int
	colour     int32

	free         bool
	isGroup      bool
	forceLoyalty bool
	family       bool
	blackmail    bool
	madeMan      bool
	readOnly     bool

	fileName     string
	relativeName string
	link         linkState
	gallery      *mugshot.Gallery

	observers    []observer
	nextObserver int
}

// New returns an empty contact owned by owner.
func New(owner Owner, opts Options) *Contact {
	translator := opts.Translator
	if translator == nil {
		translator = i18n.NewTranslator(nil)
	}
	mugshotDir := strings.TrimSpace(opts.MugshotDir)
	if mugshotDir == "" {
		mugshotDir = DefaultMugshotDir
	}
	return &Contact{
		owner:      owner,
		translator: translator,
		linker:     opts.Linker,
		language:   opts.Language,
		mugshotDir: mugshotDir,
		logger:     logging.OrNop(opts.Logger),
		guid:       id.NewGUID(),
		entityType: TypeContact,
		connection: 1,
		loyalty:    1,
		link:       unlinked{},
		gallery:    mugshot.New(),
	}
}

// GUID returns the contact's stable identifier.
func (c *Contact) GUID() string { return c.guid }

// OwnerPath returns the file of the owning profile.
func (c *Contact) OwnerPath() string {
	if c.owner == nil {
		return ""
	}
	return c.owner.FilePath()
}

func (c *Contact) EntityType() EntityType     { return c.entityType }
func (c *Contact) SetEntityType(t EntityType) { c.entityType = t }

// IsNotEnemy reports whether the contact is a Contact or a Pet.
func (c *Contact) IsNotEnemy() bool { return c.entityType != TypeEnemy }

// Name returns the linked character's name when linked, else the local name.
func (c *Contact) Name() string {
	if record, ok := c.linked(); ok {
		return record.CharacterName()
	}
	return c.name
}

// SetName sets the local name.
func (c *Contact) SetName(name string) { c.name = name }

// Age returns the linked character's age when linked, else the local age.
func (c *Contact) Age() string {
	if record, ok := c.linked(); ok {
		return record.Age()
	}
	return c.age
}

func (c *Contact) SetAge(age string) { c.age = age }

// Sex returns the linked character's sex when linked, else the local sex.
func (c *Contact) Sex() string {
	if record, ok := c.linked(); ok {
		return record.Sex()
	}
	return c.sex
}

func (c *Contact) SetSex(sex string) { c.sex = sex }

// Metatype returns the linked character's metatype, suffixed with
// " (metavariant)" when it has one, else the local metatype.
func (c *Contact) Metatype() string {
	if record, ok := c.linked(); ok {
		metatype := record.Metatype()
		if variant := record.Metavariant(); variant != "" {
			metatype += " (" + variant + ")"
		}
		return metatype
	}
	return c.metatype
}

func (c *Contact) SetMetatype(metatype string) { c.metatype = metatype }

func (c *Contact) Role() string                     { return c.role }
func (c *Contact) SetRole(role string)              { c.role = role }
func (c *Contact) Location() string                 { return c.location }
func (c *Contact) SetLocation(location string)      { c.location = location }
func (c *Contact) Type() string                     { return c.contactType }
func (c *Contact) SetType(contactType string)       { c.contactType = contactType }
func (c *Contact) PreferredPayment() string         { return c.preferredPayment }
func (c *Contact) SetPreferredPayment(value string) { c.preferredPayment = value }
func (c *Contact) HobbiesVice() string              { return c.hobbiesVice }
func (c *Contact) SetHobbiesVice(value string)      { c.hobbiesVice = value }
func (c *Contact) PersonalLife() string             { return c.personalLife }
func (c *Contact) SetPersonalLife(value string)     { c.personalLife = value }
func (c *Contact) GroupName() string                { return c.groupName }
func (c *Contact) SetGroupName(groupName string)    { c.groupName = groupName }
func (c *Contact) Notes() string                    { return c.notes }
func (c *Contact) SetNotes(notes string)            { c.notes = notes }

// Connection returns the connection rating.
func (c *Contact) Connection() int { return c.connection }

// SetConnection sets the connection rating. ConnectionMaximum is reported,
// not enforced.
func (c *Contact) SetConnection(connection int) { c.connection = connection }

// Loyalty returns the loyalty rating (incidence for enemies).
func (c *Contact) Loyalty() int { return c.loyalty }

// SetLoyalty sets the loyalty rating; negative values become 0.
func (c *Contact) SetLoyalty(loyalty int) { c.loyalty = max(loyalty, 0) }

// ConnectionMaximum is 12 for finalized profiles or profiles with Friends in
// High Places, 6 otherwise.
func (c *Contact) ConnectionMaximum() int {
	if c.owner != nil && (c.owner.Created() || c.owner.FriendsInHighPlaces()) {
		return 12
	}
	return 6
}

// ContactPoints returns the build points the contact costs.
func (c *Contact) ContactPoints() int {
	if c.free {
		return 0
	}
	points := c.connection + c.loyalty
	if c.family {
		points++
	}
	if c.blackmail {
		points += 2
	}
	return points
}

// QuickText renders "(connection/loyalty)", with a G after the loyalty of
// group contacts.
func (c *Contact) QuickText() string {
	loyalty := strconv.Itoa(c.loyalty)
	if c.isGroup {
		loyalty += "G"
	}
	return "(" + strconv.Itoa(c.connection) + "/" + loyalty + ")"
}

func (c *Contact) Free() bool             { return c.free }
func (c *Contact) SetFree(free bool)      { c.free = free }
func (c *Contact) Family() bool           { return c.family }
func (c *Contact) SetFamily(family bool)  { c.family = family }
func (c *Contact) Blackmail() bool        { return c.blackmail }
func (c *Contact) SetBlackmail(b bool)    { c.blackmail = b }
func (c *Contact) ReadOnly() bool         { return c.readOnly }
func (c *Contact) SetReadOnly(value bool) { c.readOnly = value }

// ForceLoyalty reports whether loyalty is kept when the contact is a group.
func (c *Contact) ForceLoyalty() bool { return c.forceLoyalty }

func (c *Contact) SetForceLoyalty(force bool) { c.forceLoyalty = force }

// IsGroup reports whether the contact is a group.
func (c *Contact) IsGroup() bool { return c.isGroup }

// SetIsGroup marks the contact as a group. Unless loyalty is forced, a group
// has loyalty 1.
func (c *Contact) SetIsGroup(isGroup bool) {
	c.isGroup = isGroup
	if isGroup && !c.forceLoyalty {
		c.loyalty = groupLoyalty
	}
}

// MadeMan reports whether the contact is a made man.
func (c *Contact) MadeMan() bool { return c.madeMan }

// NotMadeMan is the negation of MadeMan.
func (c *Contact) NotMadeMan() bool { return !c.madeMan }

// SetMadeMan marks the contact as a made man, which has loyalty 3.
func (c *Contact) SetMadeMan(madeMan bool) {
	c.madeMan = madeMan
	if madeMan {
		c.loyalty = madeManLoyalty
	}
}

// IsGroupOrMadeMan reports whether loyalty is fixed by group or made-man
// rules.
func (c *Contact) IsGroupOrMadeMan() bool { return c.isGroup || c.madeMan }

// SetIsGroupOrMadeMan sets IsGroup.
func (c *Contact) SetIsGroupOrMadeMan(value bool) { c.SetIsGroup(value) }

// LoyaltyEnabled reports whether loyalty may be edited.
func (c *Contact) LoyaltyEnabled() bool { return !c.isGroup && !c.forceLoyalty }

// Colour returns the ARGB colour; 0 means unset.
func (c *Contact) Colour() int32 { return c.colour }

// HasColour reports whether a colour is set.
func (c *Contact) HasColour() bool { return c.colour != 0 }

func (c *Contact) SetColour(argb int32) { c.colour = argb }

func (c *Contact) FileName() string         { return c.fileName }
func (c *Contact) RelativeFileName() string { return c.relativeName }
