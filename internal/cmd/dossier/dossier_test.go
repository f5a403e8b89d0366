package dossier

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/dossier/internal/services/social/domain/character"
)

func writeProfile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("<character>"+body+"</character>"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(flag.NewFlagSet("dossier", flag.ContinueOnError), []string{"print", "runner.chum5"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Language != "en-US" || cfg.MugshotDir != "mugshots" || cfg.IndexPath != "dossier.db" {
		t.Fatalf("defaults = %q/%q/%q", cfg.Language, cfg.MugshotDir, cfg.IndexPath)
	}
	if cfg.Command != commandPrint || len(cfg.Args) != 1 || cfg.Args[0] != "runner.chum5" {
		t.Fatalf("command = %q %v", cfg.Command, cfg.Args)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("log level = %q, want info", cfg.Log.Level)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("DOSSIER_LANGUAGE", "de-DE")
	t.Setenv("DOSSIER_INDEX_PATH", "/tmp/env.db")
	cfg, err := ParseConfig(flag.NewFlagSet("dossier", flag.ContinueOnError),
		[]string{"-index", "/tmp/flag.db", "-notes", "index", "a.chum5", "b.chum5"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Language != "de-DE" {
		t.Fatalf("language = %q, want de-DE from env", cfg.Language)
	}
	if cfg.IndexPath != "/tmp/flag.db" {
		t.Fatalf("index = %q, flag should override env", cfg.IndexPath)
	}
	if !cfg.PrintNotes || len(cfg.Args) != 2 {
		t.Fatalf("notes/args = %v/%v", cfg.PrintNotes, cfg.Args)
	}
}

func TestParseConfigRejectsBadCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing command", nil},
		{"unknown command", []string{"export", "a.chum5"}},
		{"print without file", []string{"print"}},
		{"links with two files", []string{"links", "a.chum5", "b.chum5"}},
		{"index without profiles", []string{"index"}},
		{"list without profile", []string{"list"}},
		{"show with two guids", []string{"show", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig(flag.NewFlagSet("dossier", flag.ContinueOnError), tt.args); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func testConfig(t *testing.T, command string, args ...string) Config {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{
		Language:   "en-US",
		MugshotDir: filepath.Join(dir, "mugshots"),
		IndexPath:  filepath.Join(dir, "index.db"),
		Workers:    2,
		Command:    command,
		Args:       args,
	}
	cfg.Log.Level = "error"
	return cfg
}

func TestRunPrint(t *testing.T) {
	dir := t.TempDir()
	fixer := writeProfile(t, dir, "fixer.chum5", `<name>Dodger</name><metatype>Elf</metatype>`)
	runner := writeProfile(t, dir, "runner.chum5", `<name>Runner</name><contacts>
		<contact><file>`+fixer+`</file><connection>3</connection><group>True</group><notes>hidden</notes></contact>
	</contacts>`)

	cfg := testConfig(t, commandPrint, runner)
	cfg.Language = "de-DE"
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"<name>Runner</name>", "<name>Dodger</name>", "<connection>Gruppe(3)</connection>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %s:\n%s", want, got)
		}
	}
	if strings.Contains(got, "hidden") {
		t.Fatalf("notes printed without -notes:\n%s", got)
	}
}

func TestRunIndexAndLinks(t *testing.T) {
	dir := t.TempDir()
	fixer := writeProfile(t, dir, "fixer.chum5", `<name>Dodger</name>`)
	first := writeProfile(t, dir, "first.chum5", `<contacts><contact><file>`+fixer+`</file></contact></contacts>`)
	second := writeProfile(t, dir, "second.chum5", `<contacts>
		<contact><relative>fixer.chum5</relative></contact>
		<contact><name>Lone Star</name><type>Enemy</type></contact>
	</contacts>`)

	cfg := testConfig(t, commandIndex, first, second)
	cfg.BaseDir = dir
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(out.String(), second+"\t2 contacts") {
		t.Fatalf("index output = %q", out.String())
	}

	cfg.Command = commandLinks
	cfg.Args = []string{fixer}
	out.Reset()
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("links: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("links output = %q, want header and two referrers", out.String())
	}
	if !strings.Contains(lines[1], first) || !strings.Contains(lines[2], second) {
		t.Fatalf("links output = %q", out.String())
	}
}

func TestRunIndexMissingProfile(t *testing.T) {
	cfg := testConfig(t, commandIndex, filepath.Join(t.TempDir(), "gone.chum5"))
	if err := Run(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for a missing profile")
	}
}

const (
	guidAlpha = "00000000-0000-0000-0000-00000000000a"
	guidBravo = "00000000-0000-0000-0000-00000000000b"
	guidDelta = "00000000-0000-0000-0000-00000000000d"
)

func writeCrew(t *testing.T, dir string) string {
	t.Helper()
	return writeProfile(t, dir, "crew.chum5", `<contacts>
		<contact><guid>`+guidDelta+`</guid><name>Delta</name><connection>2</connection><loyalty>1</loyalty></contact>
		<contact><guid>`+guidAlpha+`</guid><name>Alpha</name><type>Enemy</type></contact>
		<contact><guid>`+guidBravo+`</guid><name>Bravo</name></contact>
	</contacts>`)
}

func TestRunListPages(t *testing.T) {
	dir := t.TempDir()
	crew := writeCrew(t, dir)
	cfg := testConfig(t, commandIndex, crew)
	if err := Run(context.Background(), cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("index: %v", err)
	}

	cfg.Command = commandList
	cfg.PageSize = 2
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("list: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Alpha") || !strings.Contains(got, "Bravo") || strings.Contains(got, "Delta") {
		t.Fatalf("first page = %q, want Alpha and Bravo", got)
	}
	if !strings.Contains(got, "next page: -page-token "+guidBravo) {
		t.Fatalf("first page = %q, want a token after Bravo", got)
	}

	cfg.PageToken = guidBravo
	out.Reset()
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("list page two: %v", err)
	}
	got = out.String()
	if !strings.Contains(got, "Delta") || strings.Contains(got, "Alpha") || strings.Contains(got, "next page") {
		t.Fatalf("second page = %q, want only Delta", got)
	}
}

func TestRunShow(t *testing.T) {
	dir := t.TempDir()
	crew := writeCrew(t, dir)
	cfg := testConfig(t, commandIndex, crew)
	if err := Run(context.Background(), cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("index: %v", err)
	}

	cfg.Command = commandShow
	cfg.Args = []string{guidDelta}
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Delta", crew, "POINTS"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("show output missing %q:\n%s", want, out.String())
		}
	}

	cfg.Args = []string{"00000000-0000-0000-0000-0000000000ff"}
	if err := Run(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for an unindexed contact")
	}
}

func TestRunIndexDropsProfileThatNoLongerOpens(t *testing.T) {
	dir := t.TempDir()
	crew := writeCrew(t, dir)
	solo := writeProfile(t, dir, "solo.chum5", `<contacts><contact><name>Lone Star</name></contact></contacts>`)
	cfg := testConfig(t, commandIndex, crew, solo)
	if err := Run(context.Background(), cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("index: %v", err)
	}

	if err := os.Remove(crew); err != nil {
		t.Fatalf("remove: %v", err)
	}
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err == nil {
		t.Fatal("expected error for the removed profile")
	}
	if !strings.Contains(out.String(), solo+"\t1 contacts") {
		t.Fatalf("index output = %q, want the remaining profile indexed", out.String())
	}

	cfg.Command = commandList
	cfg.Args = []string{crew}
	out.Reset()
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("list: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(out.String()), "\n"); len(lines) != 1 {
		t.Fatalf("list output = %q, want only the header", out.String())
	}
}

func TestRunWritesMetricsFile(t *testing.T) {
	dir := t.TempDir()
	runner := writeProfile(t, dir, "runner.chum5", `<name>Runner</name>`)
	cfg := testConfig(t, commandPrint, runner)
	cfg.MetricsFile = filepath.Join(dir, "dossier.prom")
	if err := Run(context.Background(), cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(cfg.MetricsFile)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), "dossier_contacts_documents_total") {
		t.Fatalf("metrics file missing document counter:\n%s", data)
	}
}

func TestIndexEntries(t *testing.T) {
	ch := character.New("/runs/runner.chum5", character.Options{})
	c := ch.NewContact()
	c.SetName("Mama Grande")
	c.SetConnection(4)
	c.SetLoyalty(2)

	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	entries := IndexEntries(ch, now)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.GUID != c.GUID() || entry.Points != 6 || entry.EntityType != "Contact" || entry.LinkedFile != "" {
		t.Fatalf("entry = %+v", entry)
	}
	if !entry.IndexedAt.Equal(now) {
		t.Fatalf("indexed_at = %v, want %v", entry.IndexedAt, now)
	}
}
