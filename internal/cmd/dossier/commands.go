package dossier

import (
	"context"
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/louisbranch/dossier/internal/platform/timeouts"
	"github.com/louisbranch/dossier/internal/services/social/domain/character"
	"github.com/louisbranch/dossier/internal/services/social/linking"
	"github.com/louisbranch/dossier/internal/services/social/storage"
	"github.com/louisbranch/dossier/internal/services/social/storage/sqlite"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newRegistry(cfg Config, logger *zap.Logger) *character.Registry {
	return character.NewRegistry(character.Options{
		BaseDir:    cfg.BaseDir,
		Notifier:   linking.LogNotifier{Logger: logger, Locale: cfg.Language},
		Language:   cfg.Language,
		MugshotDir: cfg.MugshotDir,
		Logger:     logger,
	})
}

func runPrint(ctx context.Context, cfg Config, logger *zap.Logger, out io.Writer) error {
	registry := newRegistry(cfg, logger)
	ch, err := registry.Open(ctx, cfg.Args[0])
	if err != nil {
		return fmt.Errorf("open profile: %w", err)
	}
	defer func() {
		if err := registry.Close(ctx, ch); err != nil {
			logger.Warn("close profile", zap.String("path", ch.FilePath()), zap.Error(err))
		}
	}()
	if cfg.PrintNotes {
		ch.SetPrintNotes(true)
	}

	data, err := xml.MarshalIndent(ch.Print(ctx, cfg.Language), "", "  ")
	if err != nil {
		return fmt.Errorf("encode print export: %w", err)
	}
	if _, err := io.WriteString(out, xml.Header); err != nil {
		return err
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

func runIndex(ctx context.Context, cfg Config, logger *zap.Logger, out io.Writer) error {
	store, err := sqlite.Open(ctx, cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer store.Close()

	registry := newRegistry(cfg, logger)
	counts := make([]int, len(cfg.Args))
	failures := make([]error, len(cfg.Args))
	var group errgroup.Group
	group.SetLimit(max(cfg.Workers, 1))
	for i, path := range cfg.Args {
		group.Go(func() error {
			n, err := indexProfile(ctx, registry, store, path, time.Now().UTC())
			if err != nil {
				logger.Warn("index profile", zap.String("path", path), zap.Error(err))
				failures[i] = fmt.Errorf("index %s: %w", path, err)
				return nil
			}
			counts[i] = n
			return nil
		})
	}
	_ = group.Wait()
	for i, path := range cfg.Args {
		if failures[i] != nil {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s\t%d contacts\n", path, counts[i]); err != nil {
			return err
		}
	}
	return stderrors.Join(failures...)
}

// indexProfile records the contacts of the profile at path. A profile that
// can no longer be opened has its earlier entries removed.
func indexProfile(ctx context.Context, registry *character.Registry, index storage.ContactIndex, path string, now time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.IndexProfile)
	defer cancel()
	ch, err := registry.Open(ctx, path)
	if err != nil {
		if abs, absErr := filepath.Abs(path); absErr == nil {
			if dropErr := index.DeleteProfile(context.WithoutCancel(ctx), abs); dropErr != nil {
				err = stderrors.Join(err, dropErr)
			}
		}
		return 0, err
	}
	defer func() { _ = registry.Close(ctx, ch) }()

	entries := IndexEntries(ch, now)
	if err := index.PutContacts(ctx, ch.FilePath(), entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// IndexEntries converts a profile's contacts into index records. The linked
// file is the resolved record path, so referrer queries match regardless of
// how the link was written.
func IndexEntries(ch *character.Character, now time.Time) []storage.IndexedContact {
	contacts := ch.Contacts()
	entries := make([]storage.IndexedContact, 0, len(contacts))
	for _, c := range contacts {
		entry := storage.IndexedContact{
			GUID:        c.GUID(),
			ProfilePath: ch.FilePath(),
			Name:        c.Name(),
			EntityType:  c.EntityType().String(),
			Points:      c.ContactPoints(),
			IndexedAt:   now,
		}
		if linked := c.LinkedCharacter(); linked != nil {
			entry.LinkedFile = linked.FilePath()
		}
		entries = append(entries, entry)
	}
	return entries
}

func runLinks(ctx context.Context, cfg Config, out io.Writer) error {
	store, err := sqlite.Open(ctx, cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer store.Close()

	file, err := filepath.Abs(cfg.Args[0])
	if err != nil {
		return fmt.Errorf("resolve %s: %w", cfg.Args[0], err)
	}
	referrers, err := store.ListReferrers(ctx, file)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROFILE\tCONTACT\tTYPE\tGUID")
	for _, referrer := range referrers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", referrer.ProfilePath, referrer.Name, referrer.EntityType, referrer.GUID)
	}
	return w.Flush()
}

func runList(ctx context.Context, cfg Config, out io.Writer) error {
	store, err := sqlite.Open(ctx, cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer store.Close()

	profile, err := filepath.Abs(cfg.Args[0])
	if err != nil {
		return fmt.Errorf("resolve %s: %w", cfg.Args[0], err)
	}
	page, err := store.ListContacts(ctx, profile, cfg.PageSize, cfg.PageToken)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GUID\tCONTACT\tTYPE\tPOINTS\tLINKED")
	for _, c := range page.Contacts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", c.GUID, c.Name, c.EntityType, c.Points, c.LinkedFile)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if page.NextPageToken != "" {
		_, err = fmt.Fprintf(out, "next page: -page-token %s\n", page.NextPageToken)
	}
	return err
}

func runShow(ctx context.Context, cfg Config, out io.Writer) error {
	store, err := sqlite.Open(ctx, cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer store.Close()

	guid := strings.TrimSpace(cfg.Args[0])
	c, err := store.GetContact(ctx, guid)
	if stderrors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("contact %s is not indexed", guid)
	}
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "GUID\t%s\n", c.GUID)
	fmt.Fprintf(w, "NAME\t%s\n", c.Name)
	fmt.Fprintf(w, "TYPE\t%s\n", c.EntityType)
	fmt.Fprintf(w, "POINTS\t%d\n", c.Points)
	fmt.Fprintf(w, "PROFILE\t%s\n", c.ProfilePath)
	fmt.Fprintf(w, "LINKED\t%s\n", c.LinkedFile)
	fmt.Fprintf(w, "INDEXED\t%s\n", c.IndexedAt.Format(time.RFC3339))
	return w.Flush()
}
