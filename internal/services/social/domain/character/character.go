package character

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/louisbranch/dossier/internal/platform/logging"
	"github.com/louisbranch/dossier/internal/services/social/domain/contact"
	"github.com/louisbranch/dossier/internal/services/social/domain/mugshot"
	"github.com/louisbranch/dossier/internal/services/social/i18n"
	"github.com/louisbranch/dossier/internal/services/social/linking"
	"go.uber.org/zap"
)

// Options configures profiles and the registry that loads them.
type Options struct {
	// BaseDir anchors relative contact file references.
	BaseDir string
	// Notifier receives link notices; see linking.Options.
	Notifier   linking.Notifier
	Translator contact.Translator
	// Language is the interface language.
	Language   string
	MugshotDir string
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Translator == nil {
		o.Translator = i18n.NewTranslator(nil)
	}
	if strings.TrimSpace(o.MugshotDir) == "" {
		o.MugshotDir = contact.DefaultMugshotDir
	}
	o.Logger = logging.OrNop(o.Logger)
	return o
}

// Character is a loaded character profile. A profile may be shared as the
// linked record of contacts in other profiles, so its identity fields are
// guarded for concurrent readers.
type Character struct {
	path   string
	opts   Options
	linker contact.Linker

	mu                  sync.RWMutex
	name                string
	age                 string
	sex                 string
	metatype            string
	metavariant         string
	created             bool
	friendsInHighPlaces bool
	printNotes          bool
	gallery             *mugshot.Gallery
	contacts            []*contact.Contact
}

// New returns an empty profile at path whose contacts store file
// references without resolving them. Profiles that link use
// Registry.Open.
func New(path string, opts Options) *Character {
	return newCharacter(path, opts.withDefaults(), nil)
}

func newCharacter(path string, opts Options, linker contact.Linker) *Character {
	return &Character{
		path:    path,
		opts:    opts,
		linker:  linker,
		gallery: mugshot.New(),
	}
}

// FilePath returns the file the profile was read from.
func (ch *Character) FilePath() string { return ch.path }

// CharacterName returns the profile's name.
func (ch *Character) CharacterName() string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.name
}

func (ch *Character) SetName(name string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.name = name
}

func (ch *Character) Age() string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.age
}

func (ch *Character) SetAge(age string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.age = age
}

func (ch *Character) Sex() string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.sex
}

func (ch *Character) SetSex(sex string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.sex = sex
}

func (ch *Character) Metatype() string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.metatype
}

func (ch *Character) Metavariant() string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.metavariant
}

// SetMetatype sets the metatype and metavariant; an empty variant clears it.
func (ch *Character) SetMetatype(metatype, metavariant string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.metatype = metatype
	ch.metavariant = metavariant
}

// Created reports whether character creation is finished.
func (ch *Character) Created() bool {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.created
}

func (ch *Character) SetCreated(created bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.created = created
}

// FriendsInHighPlaces reports whether the profile has the quality that
// raises the connection limit.
func (ch *Character) FriendsInHighPlaces() bool {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.friendsInHighPlaces
}

func (ch *Character) SetFriendsInHighPlaces(value bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.friendsInHighPlaces = value
}

// PrintNotes reports whether print exports include notes.
func (ch *Character) PrintNotes() bool {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.printNotes
}

func (ch *Character) SetPrintNotes(value bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.printNotes = value
}

// Mugshots returns the profile's portrait gallery.
func (ch *Character) Mugshots() *mugshot.Gallery {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.gallery
}

// PrintMugshots renders the profile's gallery for a print export.
func (ch *Character) PrintMugshots(ctx context.Context) (mugshot.Printout, error) {
	return ch.Mugshots().Print(ctx, ch.opts.MugshotDir)
}

// Contacts returns the profile's contacts in document order.
func (ch *Character) Contacts() []*contact.Contact {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return slices.Clone(ch.contacts)
}

// NewContact appends an empty contact to the profile.
func (ch *Character) NewContact() *contact.Contact {
	c := ch.newContact()
	ch.mu.Lock()
	ch.contacts = append(ch.contacts, c)
	ch.mu.Unlock()
	return c
}

// RemoveContact drops c from the profile and releases its linked record.
func (ch *Character) RemoveContact(ctx context.Context, c *contact.Contact) bool {
	ch.mu.Lock()
	i := slices.Index(ch.contacts, c)
	if i >= 0 {
		ch.contacts = slices.Delete(ch.contacts, i, i+1)
	}
	ch.mu.Unlock()
	if i < 0 {
		return false
	}
	c.Release(ctx)
	return true
}

func (ch *Character) newContact() *contact.Contact {
	opts := contact.Options{
		Translator: ch.opts.Translator,
		Language:   ch.opts.Language,
		MugshotDir: ch.opts.MugshotDir,
		Logger:     ch.opts.Logger,
	}
	if ch.linker != nil {
		opts.Linker = ch.linker
	}
	return contact.New(ch, opts)
}

// releaseContacts drops every contact's link. Records only this profile
// kept alive are unloaded in turn.
func (ch *Character) releaseContacts(ctx context.Context) {
	for _, c := range ch.Contacts() {
		c.Release(ctx)
	}
}
