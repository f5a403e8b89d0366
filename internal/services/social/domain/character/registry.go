package character

import (
	"context"

	"github.com/louisbranch/dossier/internal/services/social/domain/contact"
	"github.com/louisbranch/dossier/internal/services/social/linking"
)

// Registry shares loaded profiles between the contacts that link them and
// the callers that open them. It resolves contact links for every profile it
// loads.
type Registry struct {
	opts    Options
	records *linking.Registry[*Character]
}

// NewRegistry returns an empty registry.
func NewRegistry(opts Options) *Registry {
	r := &Registry{opts: opts.withDefaults()}
	r.records = linking.New[*Character](loader{registry: r}, linking.Options{
		BaseDir:  r.opts.BaseDir,
		Notifier: r.opts.Notifier,
		Logger:   r.opts.Logger,
	})
	return r
}

// Open reads the profile at path, or returns it when it is already loaded,
// and keeps it loaded until Close.
func (r *Registry) Open(ctx context.Context, path string) (*Character, error) {
	return r.records.Open(ctx, path)
}

// Close releases a profile returned by Open. It stays loaded while contacts
// of other profiles still link it.
func (r *Registry) Close(ctx context.Context, ch *Character) error {
	if ch == nil {
		return nil
	}
	return r.records.Close(ctx, ch)
}

// Lookup returns the loaded profile at path.
func (r *Registry) Lookup(path string) (*Character, bool) {
	return r.records.Lookup(path)
}

// Referrers returns how many contacts link the profile at path.
func (r *Registry) Referrers(path string) int {
	return r.records.Referrers(path)
}

// Len returns how many profiles are loaded.
func (r *Registry) Len() int {
	return r.records.Len()
}

// Relink implements contact.Linker.
func (r *Registry) Relink(ctx context.Context, c *contact.Contact, old contact.LinkedRecord, filePath, relativePath string, notify bool) (contact.LinkedRecord, bool) {
	previous, _ := old.(*Character)
	record, ok := r.records.Relink(ctx, c, previous, filePath, relativePath, notify)
	if !ok || record == nil {
		return nil, false
	}
	return record, true
}

// Release implements contact.Linker.
func (r *Registry) Release(ctx context.Context, c *contact.Contact, record contact.LinkedRecord) {
	if ch, ok := record.(*Character); ok && ch != nil {
		r.records.Release(ctx, c, ch)
	}
}

type loader struct {
	registry *Registry
}

func (l loader) Allocate(path string) *Character {
	return newCharacter(path, l.registry.opts, l.registry)
}

func (l loader) Populate(ctx context.Context, ch *Character) error {
	return ch.Read(ctx)
}

// Unload releases the links of an evicted profile's contacts, which may
// evict the profiles they pointed at in turn.
func (l loader) Unload(ctx context.Context, ch *Character) error {
	ch.releaseContacts(ctx)
	return nil
}

var _ contact.Linker = (*Registry)(nil)
