// Package sqlite provides a SQLite-backed contact index.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/dossier/internal/platform/pagination"
	"github.com/louisbranch/dossier/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/dossier/internal/services/social/storage"
	"github.com/louisbranch/dossier/internal/services/social/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

var contactPageSize = pagination.PageSizeConfig{Default: 50, Max: 500}

// Store persists the contact index in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite contact index and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutContacts replaces the indexed contacts of one profile. A contact GUID
// already indexed under another profile moves to this one.
func (s *Store) PutContacts(ctx context.Context, profilePath string, contacts []storage.IndexedContact) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	profilePath = strings.TrimSpace(profilePath)
	if profilePath == "" {
		return fmt.Errorf("profile path is required")
	}
	for _, contact := range contacts {
		if strings.TrimSpace(contact.GUID) == "" {
			return fmt.Errorf("contact guid is required")
		}
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put contacts: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM indexed_contacts WHERE profile_path = ?`, profilePath); err != nil {
		return fmt.Errorf("put contacts: %w", err)
	}
	for _, contact := range contacts {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO indexed_contacts (guid, profile_path, name, entity_type, linked_file, points, indexed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(guid) DO UPDATE SET
			   profile_path = excluded.profile_path,
			   name = excluded.name,
			   entity_type = excluded.entity_type,
			   linked_file = excluded.linked_file,
			   points = excluded.points,
			   indexed_at = excluded.indexed_at`,
			strings.TrimSpace(contact.GUID),
			profilePath,
			contact.Name,
			contact.EntityType,
			strings.TrimSpace(contact.LinkedFile),
			contact.Points,
			toMillis(contact.IndexedAt),
		)
		if err != nil {
			return fmt.Errorf("put contact %s: %w", contact.GUID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("put contacts: %w", err)
	}
	return nil
}

// GetContact returns one indexed contact by GUID.
func (s *Store) GetContact(ctx context.Context, guid string) (storage.IndexedContact, error) {
	if err := ctx.Err(); err != nil {
		return storage.IndexedContact{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.IndexedContact{}, fmt.Errorf("storage is not configured")
	}
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return storage.IndexedContact{}, fmt.Errorf("contact guid is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT guid, profile_path, name, entity_type, linked_file, points, indexed_at
		 FROM indexed_contacts
		 WHERE guid = ?`,
		guid,
	)
	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.IndexedContact{}, storage.ErrNotFound
		}
		return storage.IndexedContact{}, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}

// ListContacts returns one page of a profile's indexed contacts ordered by
// GUID. Page sizes outside 1..500 are clamped; zero means 50.
func (s *Store) ListContacts(ctx context.Context, profilePath string, pageSize int, pageToken string) (storage.IndexedContactPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.IndexedContactPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.IndexedContactPage{}, fmt.Errorf("storage is not configured")
	}
	profilePath = strings.TrimSpace(profilePath)
	if profilePath == "" {
		return storage.IndexedContactPage{}, fmt.Errorf("profile path is required")
	}
	pageSize = pagination.ClampPageSize(pageSize, contactPageSize)

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT guid, profile_path, name, entity_type, linked_file, points, indexed_at
		 FROM indexed_contacts
		 WHERE profile_path = ? AND guid > ?
		 ORDER BY guid ASC
		 LIMIT ?`,
		profilePath,
		strings.TrimSpace(pageToken),
		pageSize+1,
	)
	if err != nil {
		return storage.IndexedContactPage{}, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts, err := scanContacts(rows)
	if err != nil {
		return storage.IndexedContactPage{}, fmt.Errorf("list contacts: %w", err)
	}
	page := storage.IndexedContactPage{Contacts: contacts}
	if len(page.Contacts) > pageSize {
		page.NextPageToken = page.Contacts[pageSize-1].GUID
		page.Contacts = page.Contacts[:pageSize]
	}
	return page, nil
}

// ListReferrers returns every indexed contact linking linkedFile, ordered by
// profile.
func (s *Store) ListReferrers(ctx context.Context, linkedFile string) ([]storage.IndexedContact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	linkedFile = strings.TrimSpace(linkedFile)
	if linkedFile == "" {
		return nil, fmt.Errorf("linked file is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT guid, profile_path, name, entity_type, linked_file, points, indexed_at
		 FROM indexed_contacts
		 WHERE linked_file = ?
		 ORDER BY profile_path ASC, guid ASC`,
		linkedFile,
	)
	if err != nil {
		return nil, fmt.Errorf("list referrers: %w", err)
	}
	defer rows.Close()

	contacts, err := scanContacts(rows)
	if err != nil {
		return nil, fmt.Errorf("list referrers: %w", err)
	}
	return contacts, nil
}

// DeleteProfile removes every indexed contact of one profile.
func (s *Store) DeleteProfile(ctx context.Context, profilePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	profilePath = strings.TrimSpace(profilePath)
	if profilePath == "" {
		return fmt.Errorf("profile path is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM indexed_contacts WHERE profile_path = ?`, profilePath); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (storage.IndexedContact, error) {
	var (
		contact   storage.IndexedContact
		indexedAt int64
	)
	if err := row.Scan(
		&contact.GUID,
		&contact.ProfilePath,
		&contact.Name,
		&contact.EntityType,
		&contact.LinkedFile,
		&contact.Points,
		&indexedAt,
	); err != nil {
		return storage.IndexedContact{}, err
	}
	contact.IndexedAt = fromMillis(indexedAt)
	return contact, nil
}

func scanContacts(rows *sql.Rows) ([]storage.IndexedContact, error) {
	var contacts []storage.IndexedContact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

var _ storage.ContactIndex = (*Store)(nil)
