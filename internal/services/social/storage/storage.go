// Package storage defines persistence contracts for the contact index.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested contact record is missing.
var ErrNotFound = errors.New("record not found")

// IndexedContact is one contact as recorded in the index.
type IndexedContact struct {
	GUID        string
	ProfilePath string
	Name        string
	EntityType  string
	// LinkedFile is the resolved path of the linked profile, empty when the
	// contact is not linked.
	LinkedFile string
	Points     int
	IndexedAt  time.Time
}

// IndexedContactPage stores a page of indexed contacts.
type IndexedContactPage struct {
	Contacts      []IndexedContact
	NextPageToken string
}

// ContactIndex records the contacts of character profiles so links can be
// queried without opening every profile.
type ContactIndex interface {
	// PutContacts replaces every indexed contact of profilePath.
	PutContacts(ctx context.Context, profilePath string, contacts []IndexedContact) error
	GetContact(ctx context.Context, guid string) (IndexedContact, error)
	ListContacts(ctx context.Context, profilePath string, pageSize int, pageToken string) (IndexedContactPage, error)
	// ListReferrers returns the contacts that link linkedFile.
	ListReferrers(ctx context.Context, linkedFile string) ([]IndexedContact, error)
	DeleteProfile(ctx context.Context, profilePath string) error
}
