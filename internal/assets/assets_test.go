// file: internal/assets/assets_test.go
// version: 1.0.0
// guid: 1e2f3a4b-5c6d-7e8f-90a1-b2c3d4e5f607

package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedsMissingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")

	l, err := Load(dir)
	require.NoError(t, err)
	assert.Contains(t, l.Artists, "Phish")
	assert.Contains(t, l.Venues, "Red Rocks")
	assert.Contains(t, l.Cities, "Boulder, CO")

	for _, f := range []string{ArtistsFile, VenuesFile, CitiesFile} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "seed file %s", f)
	}
}

func TestLoadKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ArtistsFile), []byte("My Band\n\n  Spaced Out  \n"), 0o644))

	l, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"My Band", "Spaced Out"}, l.Artists)
}

func TestRememberPrependsAndPersists(t *testing.T) {
	dir := t.TempDir()
	l, err := Load(dir)
	require.NoError(t, err)

	l.RememberArtist("String Cheese Incident")
	assert.Equal(t, "String Cheese Incident", l.Artists[0])

	reloaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "String Cheese Incident", reloaded.Artists[0])
}

func TestRememberDeduplicatesCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	l, err := Load(dir)
	require.NoError(t, err)

	before := len(l.Venues)
	l.RememberVenue("red rocks")
	assert.Len(t, l.Venues, before, "case-insensitive duplicate must not be added")

	l.RememberVenue("")
	l.RememberVenue("   ")
	assert.Len(t, l.Venues, before)
}
