// file: internal/history/store.go
// version: 1.0.0
// guid: 1e2f3a4b-5c6d-7e8f-90a1-b2c3d4e5f6a7

// Package history persists processed-recording records and the value
// histories used to pre-fill suggestions (last-used source/format/genre,
// artist-to-genre associations).
package history

import "time"

// Entry records a single processed recording move.
type Entry struct {
	ID         string            `json:"id"`
	SourcePath string            `json:"source_path"`
	DestPath   string            `json:"dest_path"`
	Fields     map[string]string `json:"fields"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Fields tracked as last-used values and value histories.
const (
	FieldSource = "source"
	FieldFormat = "format"
	FieldGenre  = "genre"
)

// Store is the persistence interface for processing history.
type Store interface {
	// Move records
	RecordMove(e *Entry) error
	GetEntry(id string) (*Entry, error)
	GetEntryByDest(path string) (*Entry, error)
	RecentEntries(limit int) ([]Entry, error)
	CountEntries() (int, error)

	// Value histories (per-field distinct sets, case-insensitive)
	AddFieldValue(field, value string) error
	GetFieldValues(field string) ([]string, error)

	// Last-used values
	SetLastUsed(field, value string) error
	GetLastUsed(field string) (string, error)

	// Artist-to-genre association
	SetArtistGenre(artist, genre string) error
	GetArtistGenre(artist string) (string, error)

	Close() error
}
