// file: internal/history/pebble_store.go
// version: 1.1.0
// guid: 2f3a4b5c-6d7e-8f90-a1b2-c3d4e5f6a7b8

package history

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/pebble/v2"
	ulid "github.com/oklog/ulid/v2"
)

// PebbleStore implements the Store interface using PebbleDB (LSM key-value store)
//
// Key Schema:
// - entry:<ulid>              -> Entry JSON (ULIDs sort chronologically)
// - entry:dest:<path>         -> entry ULID (for destination lookups)
// - fieldval:<field>:<lower>  -> original-cased value (distinct set)
// - lastused:<field>          -> value
// - genre:<lower artist>      -> genre

type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore opens (or creates) the history database at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

// Close closes the database
func (p *PebbleStore) Close() error {
	return p.db.Close()
}

// NewEntryID returns a fresh ULID string for a processing operation.
func NewEntryID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Move records

func (p *PebbleStore) RecordMove(e *Entry) error {
	if e.ID == "" {
		id, err := NewEntryID()
		if err != nil {
			return err
		}
		e.ID = id
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	batch := p.db.NewBatch()
	key := []byte(fmt.Sprintf("entry:%s", e.ID))
	if err := batch.Set(key, data, nil); err != nil {
		batch.Close()
		return err
	}
	if e.DestPath != "" {
		destKey := []byte(fmt.Sprintf("entry:dest:%s", e.DestPath))
		if err := batch.Set(destKey, []byte(e.ID), nil); err != nil {
			batch.Close()
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

func (p *PebbleStore) GetEntry(id string) (*Entry, error) {
	key := []byte(fmt.Sprintf("entry:%s", id))
	value, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var e Entry
	if err := json.Unmarshal(value, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (p *PebbleStore) GetEntryByDest(path string) (*Entry, error) {
	indexKey := []byte(fmt.Sprintf("entry:dest:%s", path))
	value, closer, err := p.db.Get(indexKey)
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return p.GetEntry(string(value))
}

func (p *PebbleStore) RecentEntries(limit int) ([]Entry, error) {
	var entries []Entry
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("entry:0"),
		UpperBound: []byte("entry:;"),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	// ULID keys iterate oldest-first; walk backwards for most recent.
	for valid := iter.Last(); valid; valid = iter.Prev() {
		if strings.Contains(string(iter.Key()), ":dest:") {
			continue
		}
		var e Entry
		if err := json.Unmarshal(iter.Value(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

func (p *PebbleStore) CountEntries() (int, error) {
	count := 0
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("entry:0"),
		UpperBound: []byte("entry:;"),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if strings.Contains(string(iter.Key()), ":dest:") {
			continue
		}
		count++
	}
	return count, nil
}

// Value histories

func (p *PebbleStore) AddFieldValue(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	key := []byte(fmt.Sprintf("fieldval:%s:%s", field, strings.ToLower(value)))
	return p.db.Set(key, []byte(value), pebble.Sync)
}

func (p *PebbleStore) GetFieldValues(field string) ([]string, error) {
	prefix := []byte(fmt.Sprintf("fieldval:%s:", field))
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: append(prefix, 0xFF),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var values []string
	for iter.First(); iter.Valid(); iter.Next() {
		values = append(values, string(iter.Value()))
	}
	sort.Strings(values)
	return values, nil
}

// Last-used values

func (p *PebbleStore) SetLastUsed(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	key := []byte(fmt.Sprintf("lastused:%s", field))
	return p.db.Set(key, []byte(value), pebble.Sync)
}

func (p *PebbleStore) GetLastUsed(field string) (string, error) {
	key := []byte(fmt.Sprintf("lastused:%s", field))
	value, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer closer.Close()
	return string(value), nil
}

// Artist-to-genre association

func (p *PebbleStore) SetArtistGenre(artist, genre string) error {
	artist = strings.TrimSpace(artist)
	genre = strings.TrimSpace(genre)
	if artist == "" || genre == "" {
		return nil
	}
	key := []byte(fmt.Sprintf("genre:%s", strings.ToLower(artist)))
	return p.db.Set(key, []byte(genre), pebble.Sync)
}

func (p *PebbleStore) GetArtistGenre(artist string) (string, error) {
	key := []byte(fmt.Sprintf("genre:%s", strings.ToLower(artist)))
	value, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer closer.Close()
	return string(value), nil
}
