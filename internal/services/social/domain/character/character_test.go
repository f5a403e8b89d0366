package character

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/dossier/internal/platform/errors"
	"github.com/louisbranch/dossier/internal/services/social/domain/contact"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeProfile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	doc := `<?xml version="1.0" encoding="UTF-8"?>` + "\n<character>" + body + "</character>"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "runner.chum5", `
		<name>Kazuma</name><age>31</age><sex>Male</sex>
		<metatype>Elf</metatype><metavariant>Night One</metavariant>
		<created>True</created><friendsinhighplaces>False</friendsinhighplaces>
		<printnotes>True</printnotes>
		<contacts>
			<contact><name>Mama Grande</name><connection>4</connection><loyalty>2</loyalty></contact>
			<contact><name>Lone Star</name><type>Enemy</type></contact>
		</contacts>`)

	ch := New(path, Options{})
	if err := ch.Read(context.Background()); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ch.CharacterName() != "Kazuma" || ch.Metatype() != "Elf" || ch.Metavariant() != "Night One" {
		t.Fatalf("identity = %q/%q/%q", ch.CharacterName(), ch.Metatype(), ch.Metavariant())
	}
	if !ch.Created() || ch.FriendsInHighPlaces() || !ch.PrintNotes() {
		t.Fatal("flags not read")
	}
	contacts := ch.Contacts()
	if len(contacts) != 2 {
		t.Fatalf("contacts = %d, want 2", len(contacts))
	}
	if contacts[0].Name() != "Mama Grande" || contacts[0].Connection() != 4 {
		t.Fatalf("first contact = %q/%d", contacts[0].Name(), contacts[0].Connection())
	}
	if contacts[1].EntityType() != contact.TypeEnemy {
		t.Fatalf("second contact type = %v, want Enemy", contacts[1].EntityType())
	}
	if contacts[0].ConnectionMaximum() != 12 {
		t.Fatalf("connection maximum = %d, want 12 for a created profile", contacts[0].ConnectionMaximum())
	}
	if contacts[0].OwnerPath() != path {
		t.Fatalf("owner path = %q, want %q", contacts[0].OwnerPath(), path)
	}
}

func TestReadUnreadableProfile(t *testing.T) {
	dir := t.TempDir()
	missing := New(filepath.Join(dir, "missing.chum5"), Options{})
	if err := missing.Read(context.Background()); errors.GetCode(err) != errors.CodeDocumentUnreadable {
		t.Fatalf("missing file error = %v, want %s", err, errors.CodeDocumentUnreadable)
	}

	broken := filepath.Join(dir, "broken.chum5")
	if err := os.WriteFile(broken, []byte("<character><name>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := New(broken, Options{}).Read(context.Background()); errors.GetCode(err) != errors.CodeDocumentUnreadable {
		t.Fatalf("broken file error = %v, want %s", err, errors.CodeDocumentUnreadable)
	}
}

func TestReadLogsMalformedFlag(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	path := writeProfile(t, t.TempDir(), "runner.chum5", `<name>Kazuma</name><created>soon</created>`)
	ch := New(path, Options{Logger: zap.New(core)})
	if err := ch.Read(context.Background()); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ch.Created() {
		t.Fatal("malformed flag should read as false")
	}
	if logs.FilterField(zap.String("field", "created")).Len() != 1 {
		t.Fatal("expected malformed flag logged")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ch := New(filepath.Join(dir, "runner.chum5"), Options{})
	ch.SetName("Kazuma")
	ch.SetMetatype("Dwarf", "")
	ch.SetFriendsInHighPlaces(true)
	fixer := ch.NewContact()
	fixer.SetName("Mama Grande")
	fixer.SetRole("Fixer")
	fixer.SetLoyalty(4)

	if err := ch.Save(context.Background(), ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(ch.FilePath())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Fatalf("missing xml header: %.40s", data)
	}

	loaded := New(ch.FilePath(), Options{})
	if err := loaded.Read(context.Background()); err != nil {
		t.Fatalf("read: %v", err)
	}
	if loaded.CharacterName() != "Kazuma" || !loaded.FriendsInHighPlaces() {
		t.Fatalf("profile = %q/%v", loaded.CharacterName(), loaded.FriendsInHighPlaces())
	}
	contacts := loaded.Contacts()
	if len(contacts) != 1 || contacts[0].GUID() != fixer.GUID() || contacts[0].Loyalty() != 4 {
		t.Fatal("contact did not survive the round trip")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir entries = %d, want only the profile", len(entries))
	}
}

func TestRemoveContact(t *testing.T) {
	ch := New("/runs/runner.chum5", Options{})
	c := ch.NewContact()
	if !ch.RemoveContact(context.Background(), c) {
		t.Fatal("expected contact removed")
	}
	if ch.RemoveContact(context.Background(), c) {
		t.Fatal("second removal should report false")
	}
	if len(ch.Contacts()) != 0 {
		t.Fatal("expected no contacts")
	}
}

func TestPrintProfile(t *testing.T) {
	ch := New("/runs/runner.chum5", Options{})
	ch.SetName("Kazuma")
	ch.SetMetatype("Human", "")
	c := ch.NewContact()
	c.SetName("Mama Grande")
	c.SetNotes("secret")

	doc := ch.Print(context.Background(), "de-DE")
	if doc.Metatype != "Mensch" {
		t.Fatalf("metatype = %q, want Mensch", doc.Metatype)
	}
	if len(doc.Contacts) != 1 || doc.Contacts[0].Name != "Mama Grande" {
		t.Fatal("expected the contact in the print export")
	}
	if doc.Contacts[0].Notes != nil {
		t.Fatal("notes printed without printnotes")
	}
	if _, err := xml.Marshal(doc); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}
