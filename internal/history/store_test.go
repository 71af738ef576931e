// file: internal/history/store_test.go
// version: 1.0.0
// guid: bf97a122-3312-4362-9d73-c2dc4c3abdc1

package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreTests exercises a Store implementation through the interface so the
// mock and the pebble store stay behaviorally identical.
func runStoreTests(t *testing.T, open func(t *testing.T) Store) {
	t.Run("RecordAndGet", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		e := &Entry{
			SourcePath: "/inbox/show",
			DestPath:   "/archive/Phish/1995/show",
			Fields:     map[string]string{"artist": "Phish", "date": "1995-12-31"},
		}
		require.NoError(t, s.RecordMove(e))
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())

		got, err := s.GetEntry(e.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "/archive/Phish/1995/show", got.DestPath)
		assert.Equal(t, "Phish", got.Fields["artist"])

		byDest, err := s.GetEntryByDest("/archive/Phish/1995/show")
		require.NoError(t, err)
		require.NotNil(t, byDest)
		assert.Equal(t, e.ID, byDest.ID)

		missing, err := s.GetEntry("01ARZ3NDEKTSV4RRFFQ69G5FAV")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("RecentEntriesNewestFirst", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		for _, dest := range []string{"/a/first", "/a/second", "/a/third"} {
			require.NoError(t, s.RecordMove(&Entry{SourcePath: "/inbox/x", DestPath: dest}))
			time.Sleep(2 * time.Millisecond)
		}

		recent, err := s.RecentEntries(2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "/a/third", recent[0].DestPath)
		assert.Equal(t, "/a/second", recent[1].DestPath)

		count, err := s.CountEntries()
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("FieldValuesDistinctCaseInsensitive", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		require.NoError(t, s.AddFieldValue(FieldSource, "SBD"))
		require.NoError(t, s.AddFieldValue(FieldSource, "sbd"))
		require.NoError(t, s.AddFieldValue(FieldSource, "AUD"))
		require.NoError(t, s.AddFieldValue(FieldSource, "  "))

		values, err := s.GetFieldValues(FieldSource)
		require.NoError(t, err)
		assert.Len(t, values, 2)
		// Later writes replace the stored casing of the same value.
		assert.Contains(t, values, "AUD")
		assert.Contains(t, values, "sbd")
	})

	t.Run("LastUsed", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		require.NoError(t, s.SetLastUsed(FieldFormat, "FLAC16"))
		require.NoError(t, s.SetLastUsed(FieldFormat, "FLAC24"))
		got, err := s.GetLastUsed(FieldFormat)
		require.NoError(t, err)
		assert.Equal(t, "FLAC24", got)

		// Empty values never overwrite the stored one.
		require.NoError(t, s.SetLastUsed(FieldFormat, " "))
		got, err = s.GetLastUsed(FieldFormat)
		require.NoError(t, err)
		assert.Equal(t, "FLAC24", got)

		none, err := s.GetLastUsed(FieldGenre)
		require.NoError(t, err)
		assert.Equal(t, "", none)
	})

	t.Run("ArtistGenre", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		require.NoError(t, s.SetArtistGenre("Phish", "Rock"))
		got, err := s.GetArtistGenre("phish")
		require.NoError(t, err)
		assert.Equal(t, "Rock", got)

		none, err := s.GetArtistGenre("Unknown Band")
		require.NoError(t, err)
		assert.Equal(t, "", none)
	})
}

func TestPebbleStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		s, err := NewPebbleStore(filepath.Join(t.TempDir(), "history"))
		require.NoError(t, err)
		return s
	})
}

func TestMockStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		return NewMockStore()
	})
}

func TestNewEntryIDMonotonicWithinProcess(t *testing.T) {
	a, err := NewEntryID()
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	b, err := NewEntryID()
	require.NoError(t, err)
	assert.Less(t, a, b)
}
