// file: internal/history/mock.go
// version: 1.0.0
// guid: 3a4b5c6d-7e8f-90a1-b2c3-d4e5f6a7b8c9

package history

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// MockStore is an in-memory Store for tests.
type MockStore struct {
	mu       sync.RWMutex
	entries  []Entry
	byID     map[string]*Entry
	byDest   map[string]string
	values   map[string]map[string]string // field -> lower(value) -> value
	lastUsed map[string]string
	genres   map[string]string
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		byID:     make(map[string]*Entry),
		byDest:   make(map[string]string),
		values:   make(map[string]map[string]string),
		lastUsed: make(map[string]string),
		genres:   make(map[string]string),
	}
}

func (m *MockStore) RecordMove(e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	cp := *e
	m.entries = append(m.entries, cp)
	m.byID[e.ID] = &m.entries[len(m.entries)-1]
	if e.DestPath != "" {
		m.byDest[e.DestPath] = e.ID
	}
	return nil
}

func (m *MockStore) GetEntry(id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (m *MockStore) GetEntryByDest(path string) (*Entry, error) {
	m.mu.RLock()
	id, ok := m.byDest[path]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return m.GetEntry(id)
}

func (m *MockStore) RecentEntries(limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		out = append(out, m.entries[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MockStore) CountEntries() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

func (m *MockStore) AddFieldValue(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[field] == nil {
		m.values[field] = make(map[string]string)
	}
	m.values[field][strings.ToLower(value)] = value
	return nil
}

func (m *MockStore) GetFieldValues(field string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, v := range m.values[field] {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MockStore) SetLastUsed(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUsed[field] = value
	return nil
}

func (m *MockStore) GetLastUsed(field string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastUsed[field], nil
}

func (m *MockStore) SetArtistGenre(artist, genre string) error {
	artist = strings.TrimSpace(artist)
	genre = strings.TrimSpace(genre)
	if artist == "" || genre == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.genres[strings.ToLower(artist)] = genre
	return nil
}

func (m *MockStore) GetArtistGenre(artist string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.genres[strings.ToLower(artist)], nil
}

func (m *MockStore) Close() error { return nil }
