// file: internal/organizer/organizer.go
// version: 2.0.0
// guid: e5f6a7b8-c9d0-e1f2-a3b4-c5d6e7f8a9b0

// Package organizer drives the full pipeline for a recording folder: infer
// metadata, evaluate the naming schemes, move the folder into the archive,
// write tags, and record the outcome.
package organizer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jdfalk/tagforge/internal/assets"
	"github.com/jdfalk/tagforge/internal/config"
	"github.com/jdfalk/tagforge/internal/fileops"
	"github.com/jdfalk/tagforge/internal/history"
	"github.com/jdfalk/tagforge/internal/metadata"
	"github.com/jdfalk/tagforge/internal/scheme"
	"github.com/jdfalk/tagforge/internal/tagger"
)

// Processor wires together the metadata, scheme, fileops, tagger and history
// layers around one configuration.
type Processor struct {
	cfg   *config.Config
	store history.Store
	lists *assets.Lists
}

// NewProcessor creates a Processor. The history store may be nil, in which
// case outcomes are not persisted (used by preview-only paths).
func NewProcessor(cfg *config.Config, store history.Store, lists *assets.Lists) *Processor {
	return &Processor{cfg: cfg, store: store, lists: lists}
}

// Preview holds the dry-run result for a folder.
type Preview struct {
	FolderPath string
	Record     *metadata.Record
	DestName   string // folder scheme result after cleanup
	DestPath   string // relative archive path from both schemes
}

// known builds the recognition lists from assets plus configured sets.
func (p *Processor) known() metadata.Known {
	k := metadata.Known{
		Formats: p.cfg.KnownFormats,
		Sources: p.cfg.KnownSources,
	}
	if p.lists != nil {
		k.Artists = p.lists.Artists
		k.Venues = p.lists.Venues
		k.Cities = p.lists.Cities
	}
	return k
}

// PreviewFolder infers metadata for folderPath, applies overrides, and
// evaluates the naming schemes without touching the filesystem.
func (p *Processor) PreviewFolder(folderPath string, overrides map[string]string) (*Preview, error) {
	folderName := filepath.Base(filepath.Clean(folderPath))
	rec := metadata.Merge(folderName, folderPath, p.known())
	rec.Set(metadata.FieldCurrentFolder, filepath.ToSlash(folderPath))

	for field, value := range overrides {
		if strings.TrimSpace(value) != "" {
			rec.Set(field, value)
		}
	}

	destName, destPath, err := scheme.ComposePath(p.cfg.FolderScheme, p.cfg.SavingScheme, rec)
	if err != nil {
		return nil, fmt.Errorf("scheme evaluation for %q: %w", folderName, err)
	}

	return &Preview{
		FolderPath: folderPath,
		Record:     rec,
		DestName:   destName,
		DestPath:   sanitizeRelPath(destPath),
	}, nil
}

// Outcome describes one processed folder, successful or not.
type Outcome struct {
	OpID       string
	SourcePath string
	DestPath   string
	Record     *metadata.Record
	Err        error
}

// ProcessFolder runs the full pipeline for a single folder.
func (p *Processor) ProcessFolder(folderPath string, overrides map[string]string) *Outcome {
	out := &Outcome{SourcePath: folderPath}

	opID, err := history.NewEntryID()
	if err == nil {
		out.OpID = opID
	}

	pv, err := p.PreviewFolder(folderPath, overrides)
	if err != nil {
		out.Err = err
		return out
	}
	out.Record = pv.Record

	dest := filepath.Join(p.cfg.ArchiveRoot, filepath.FromSlash(pv.DestPath))
	finalDest, err := fileops.SafeMoveDir(folderPath, dest)
	if err != nil {
		out.Err = fmt.Errorf("move failed: %w", err)
		return out
	}
	out.DestPath = finalDest
	log.Printf("[INFO] organizer: %s -> %s", folderPath, finalDest)

	p.writeTags(finalDest, pv.Record)
	p.recordOutcome(out)
	p.rememberEntities(pv.Record)

	// Clean up whatever empty shell the move left behind in the inbox.
	fileops.PruneEmptyDirs(filepath.Dir(folderPath), p.cfg.InboxDir)

	return out
}

// writeTags pushes the inferred fields into the audio files. Tagging failures
// are logged, never fatal: the files are already in place.
func (p *Processor) writeTags(folderPath string, rec *metadata.Record) {
	tags := tagger.Tags{
		Artist: rec.Get(metadata.FieldArtist),
		Album:  albumTitle(rec),
		Date:   rec.Get(metadata.FieldDate),
		Venue:  rec.Get(metadata.FieldVenue),
		City:   rec.Get(metadata.FieldCity),
		Genres: rec.GetList(metadata.FieldGenre),
		Source: rec.Get(metadata.FieldSource),
		Format: rec.Get(metadata.FieldFormat),
	}
	if _, err := tagger.TagFolder(folderPath, tags); err != nil {
		log.Printf("[WARN] organizer: tagging %s: %v", folderPath, err)
	}
}

// albumTitle builds the album tag: "date - venue - city" from whatever is set.
func albumTitle(rec *metadata.Record) string {
	var parts []string
	for _, f := range []string{metadata.FieldDate, metadata.FieldVenue, metadata.FieldCity} {
		if v := rec.Get(f); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " - ")
}

// recordOutcome persists the move and refreshes the value histories.
func (p *Processor) recordOutcome(out *Outcome) {
	if p.store == nil {
		return
	}
	rec := out.Record
	entry := &history.Entry{
		ID:         out.OpID,
		SourcePath: out.SourcePath,
		DestPath:   out.DestPath,
		Fields:     rec.Snapshot(),
	}
	if err := p.store.RecordMove(entry); err != nil {
		log.Printf("[WARN] organizer: history write failed: %v", err)
		return
	}

	for field, histField := range map[string]string{
		metadata.FieldSource: history.FieldSource,
		metadata.FieldFormat: history.FieldFormat,
		metadata.FieldGenre:  history.FieldGenre,
	} {
		if v := rec.Get(field); v != "" {
			_ = p.store.AddFieldValue(histField, v)
			_ = p.store.SetLastUsed(histField, v)
		}
	}
	if artist, genre := rec.Get(metadata.FieldArtist), rec.Get(metadata.FieldGenre); artist != "" && genre != "" {
		_ = p.store.SetArtistGenre(artist, genre)
	}
}

// rememberEntities feeds confirmed values back into the known-entity lists.
func (p *Processor) rememberEntities(rec *metadata.Record) {
	if p.lists == nil {
		return
	}
	p.lists.RememberArtist(rec.Get(metadata.FieldArtist))
	p.lists.RememberVenue(rec.Get(metadata.FieldVenue))
	p.lists.RememberCity(rec.Get(metadata.FieldCity))
}

var reInvalidPathChars = regexp.MustCompile(`[<>:"|?*]`)

// sanitizeRelPath makes every segment of a slash-separated relative path safe
// for the filesystem.
func sanitizeRelPath(rel string) string {
	parts := strings.Split(rel, "/")
	out := parts[:0]
	for _, part := range parts {
		part = reInvalidPathChars.ReplaceAllString(part, "_")
		part = strings.TrimSpace(part)
		if part == "" || part == "." || part == ".." {
			continue
		}
		if len(part) > 200 {
			part = part[:200]
		}
		out = append(out, part)
	}
	return strings.Join(out, "/")
}

// EnsureDirs creates the inbox, archive and state directories if missing.
func (p *Processor) EnsureDirs() error {
	for _, dir := range []string{p.cfg.InboxDir, p.cfg.ArchiveRoot, p.cfg.StateDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
