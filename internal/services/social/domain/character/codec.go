package character

import (
	"context"
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/louisbranch/dossier/internal/platform/errors"
	"github.com/louisbranch/dossier/internal/platform/otel"
	"github.com/louisbranch/dossier/internal/platform/telemetry/metrics"
	"github.com/louisbranch/dossier/internal/services/social/domain/mugshot"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Read loads the profile from its file. Contacts are created through the
// profile's linker, so their links resolve while the profile is read.
func (ch *Character) Read(ctx context.Context) error {
	ctx, span := otel.StartSpan(ctx, "character.read", attribute.String("path", ch.path))
	defer span.End()

	data, err := os.ReadFile(ch.path)
	if err != nil {
		return unreadable(ch.path, err)
	}
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return unreadable(ch.path, err)
	}
	ch.Load(ctx, &doc)
	return nil
}

// Load replaces the profile with doc. Existing contacts are released first.
func (ch *Character) Load(ctx context.Context, doc *Document) {
	if doc == nil {
		return
	}
	ch.releaseContacts(ctx)
	metrics.DocumentsTotal.WithLabelValues(metrics.OpLoad).Inc()

	ch.mu.Lock()
	ch.name = doc.Name
	ch.age = doc.Age
	ch.sex = doc.Sex
	ch.metatype = doc.Metatype
	ch.metavariant = doc.Metavariant
	ch.created = ch.parseBool("created", doc.Created)
	ch.friendsInHighPlaces = ch.parseBool("friendsinhighplaces", doc.FriendsInHighPlaces)
	ch.printNotes = ch.parseBool("printnotes", doc.PrintNotes)
	ch.contacts = nil
	ch.mu.Unlock()

	mainIndex := mugshot.NoMain
	if raw := strings.TrimSpace(doc.MainMugshotIndex); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			ch.malformed("mainmugshotindex", raw)
		} else {
			mainIndex = parsed
		}
	}
	gallery := mugshot.New()
	if err := gallery.Load(ctx, mainIndex, doc.Mugshots); err != nil {
		ch.opts.Logger.Warn("dropped undecodable mugshots",
			zap.String("code", string(errors.CodeMugshotDecodeFailed)),
			zap.String("path", ch.path), zap.Error(err))
	}
	ch.mu.Lock()
	ch.gallery = gallery
	ch.mu.Unlock()

	// Contacts join the profile before they load so a link back to this
	// profile sees them.
	for _, stored := range doc.Contacts {
		c := ch.newContact()
		ch.mu.Lock()
		ch.contacts = append(ch.contacts, c)
		ch.mu.Unlock()
		c.Load(ctx, stored)
	}
	ch.opts.Logger.Debug("character loaded", zap.String("path", ch.path), zap.Int("contacts", len(doc.Contacts)))
}

// Document returns the stored form of the profile.
func (ch *Character) Document() *Document {
	metrics.DocumentsTotal.WithLabelValues(metrics.OpSave).Inc()
	ch.mu.RLock()
	doc := &Document{
		Name:                ch.name,
		Age:                 ch.age,
		Sex:                 ch.sex,
		Metatype:            ch.metatype,
		Metavariant:         ch.metavariant,
		Created:             formatBool(ch.created),
		FriendsInHighPlaces: formatBool(ch.friendsInHighPlaces),
		PrintNotes:          formatBool(ch.printNotes),
		MainMugshotIndex:    strconv.Itoa(ch.gallery.MainIndex()),
		Mugshots:            ch.gallery.Payloads(),
	}
	contacts := slices.Clone(ch.contacts)
	ch.mu.RUnlock()

	for _, c := range contacts {
		doc.Contacts = append(doc.Contacts, c.Save())
	}
	return doc
}

// Save writes the profile to path, or to its own file when path is empty.
// The file is replaced atomically.
func (ch *Character) Save(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		path = ch.path
	}
	data, err := xml.MarshalIndent(ch.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode character: %w", err)
	}
	data = append([]byte(xml.Header), data...)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dossier-*")
	if err != nil {
		return unwritable(path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return unwritable(path, err)
	}
	if err := tmp.Close(); err != nil {
		return unwritable(path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return unwritable(path, err)
	}
	return nil
}

// Print renders the profile and its contacts for a print export in lang.
func (ch *Character) Print(ctx context.Context, lang string) *PrintDocument {
	ctx, span := otel.StartSpan(ctx, "character.print", attribute.String("path", ch.path))
	defer span.End()

	doc := &PrintDocument{
		Name:     ch.CharacterName(),
		Metatype: ch.opts.Translator.TranslateExtra(ch.Metatype(), lang),
		Sex:      ch.Sex(),
		Age:      ch.Age(),
	}
	printout, err := ch.PrintMugshots(ctx)
	if err != nil {
		ch.opts.Logger.Warn("printing mugshots inline",
			zap.String("code", string(errors.CodeFilesystemPermission)), zap.Error(err))
	}
	doc.Printout = printout
	for _, c := range ch.Contacts() {
		doc.Contacts = append(doc.Contacts, c.Print(ctx, lang))
	}
	return doc
}

func (ch *Character) parseBool(field, raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		return true
	case "", "false", "0":
		return false
	default:
		ch.malformed(field, raw)
		return false
	}
}

func (ch *Character) malformed(field, value string) {
	metrics.WarningsTotal.WithLabelValues(string(errors.CodeDocumentMalformedField)).Inc()
	ch.opts.Logger.Warn("ignored unreadable character field",
		zap.String("code", string(errors.CodeDocumentMalformedField)),
		zap.String("path", ch.path), zap.String("field", field), zap.String("value", value))
}

func unreadable(path string, err error) error {
	return errors.WrapWithMetadata(errors.CodeDocumentUnreadable, "read character",
		map[string]string{"Path": path}, err)
}

func unwritable(path string, err error) error {
	code := errors.CodeUnknown
	if stderrors.Is(err, fs.ErrPermission) {
		code = errors.CodeFilesystemPermission
	}
	return errors.WrapWithMetadata(code, "write character", map[string]string{"Path": path}, err)
}

func formatBool(value bool) string {
	if value {
		return "True"
	}
	return "False"
}
