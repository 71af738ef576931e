// file: internal/scheme/compose_test.go
// version: 1.0.0
// guid: 4c5d6e7f-8a9b-0c1d-2e3f-4a5b6c7d8e9f

package scheme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/tagforge/internal/metadata"
)

func TestCleanupResultDropsEmptyBrackets(t *testing.T) {
	rec := metadata.NewRecord()
	rec.Set(metadata.FieldArtist, "ArtistName")
	rec.Set(metadata.FieldAdditional, "Remastered")
	// format left empty: its bracket group must vanish entirely.

	got := CleanupResult(Evaluate("%artist% [%format%] [%additional%]", rec))
	assert.Equal(t, "ArtistName [Remastered]", got)
}

func TestCleanupResultNestedAndWhitespace(t *testing.T) {
	assert.Equal(t, "a", CleanupResult("a [ ] ( ) { }"))
	assert.Equal(t, "a b", CleanupResult("a    b "))
	// Outer group emptied only after inner removal; fixed point handles it.
	assert.Equal(t, "x", CleanupResult("x [()]"))
	// Non-empty groups survive.
	assert.Equal(t, "x [keep]", CleanupResult("x [keep]"))
}

func TestComposePathJoinsSchemes(t *testing.T) {
	rec := metadata.NewRecord()
	rec.Set(metadata.FieldArtist, "Phish")
	rec.Set(metadata.FieldDate, "1995-12-31")
	rec.Set(metadata.FieldVenue, "Madison Square Garden")
	rec.Set(metadata.FieldCity, "New York, NY")
	rec.Set(metadata.FieldFormat, "FLAC16")

	name, full, err := ComposePath(
		"%date% - %venue% - %city% [%format%] [%additional%]",
		"%artist%/$year(%date%)",
		rec,
	)
	require.NoError(t, err)
	assert.Equal(t, "1995-12-31 - Madison Square Garden - New York, NY [FLAC16]", name)
	assert.Equal(t, "Phish/1995/1995-12-31 - Madison Square Garden - New York, NY [FLAC16]", full)
}

func TestComposePathRootMarker(t *testing.T) {
	rec := metadata.NewRecord()
	rec.Set(metadata.FieldArtist, "Phish")

	name, full, err := ComposePath("%artist%", "(root)", rec)
	require.NoError(t, err)
	assert.Equal(t, "Phish", name)
	assert.Equal(t, "Phish", full)
}

func TestComposePathEmptySavingScheme(t *testing.T) {
	rec := metadata.NewRecord()
	rec.Set(metadata.FieldArtist, "Phish")

	_, full, err := ComposePath("%artist%", "", rec)
	require.NoError(t, err)
	assert.Equal(t, "Phish", full)
}

func TestComposePathEmptyFolderName(t *testing.T) {
	rec := metadata.NewRecord()
	_, _, err := ComposePath("%venue%", "%artist%", rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyFolderName))
}

func TestComposePathFolderNameTokenInSaving(t *testing.T) {
	rec := metadata.NewRecord()
	rec.Set(metadata.FieldArtist, "Phish")
	rec.Set(metadata.FieldDate, "1995-12-31")

	// The saving scheme can reference the folder scheme's result.
	_, full, err := ComposePath("%date%", "$year(%foldername%)", rec)
	require.NoError(t, err)
	assert.Equal(t, "1995/1995-12-31", full)
}

func TestComposeThenParseRoundTrip(t *testing.T) {
	rec := metadata.NewRecord()
	rec.Set(metadata.FieldArtist, "Phish")
	rec.Set(metadata.FieldDate, "1995-12-31")
	rec.Set(metadata.FieldVenue, "Madison Square Garden")
	rec.Set(metadata.FieldCity, "New York, NY")
	rec.Set(metadata.FieldSource, "SBD")
	rec.Set(metadata.FieldFormat, "FLAC16")

	name, _, err := ComposePath(
		"%date% - %venue% - %city% [%source%] [%format%]",
		"%artist%/$year(%date%)",
		rec,
	)
	require.NoError(t, err)

	parsed := metadata.ParseFolderName(name, metadata.Known{
		Artists: []string{"Phish"},
		Venues:  []string{"Madison Square Garden"},
		Cities:  []string{"New York, NY"},
	})
	require.NotNil(t, parsed)
	assert.Equal(t, "1995-12-31", parsed.Get(metadata.FieldDate))
	assert.Equal(t, "Madison Square Garden", parsed.Get(metadata.FieldVenue))
	assert.Equal(t, "New York, NY", parsed.Get(metadata.FieldCity))
	assert.Equal(t, "SBD", parsed.Get(metadata.FieldSource))
	assert.Equal(t, "FLAC16", parsed.Get(metadata.FieldFormat))
}
