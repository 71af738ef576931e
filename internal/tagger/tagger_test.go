// file: internal/tagger/tagger_test.go
// version: 1.0.0
// guid: fa5e6fe9-e4ba-4f3b-b524-2169f7ba1acf

package tagger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsGenre(t *testing.T) {
	tags := Tags{Genres: []string{"Rock", "rock", " Jam ", "", "Jam"}}
	assert.Equal(t, "Jam; Rock", tags.Genre())

	assert.Equal(t, "", Tags{}.Genre())
}

func TestTagsComment(t *testing.T) {
	assert.Equal(t, "SBD / FLAC16", Tags{Source: "SBD", Format: "FLAC16"}.Comment())
	assert.Equal(t, "SBD", Tags{Source: "SBD"}.Comment())
	assert.Equal(t, "FLAC16", Tags{Format: "FLAC16"}.Comment())
	assert.Equal(t, "", Tags{}.Comment())
}

func TestTagFolderSkipsWhatItCannotWrite(t *testing.T) {
	if taglibAvailable {
		t.Skip("default-build behavior only")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "d1t01.flac"), []byte("not audio"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "d1t02.wav"), []byte("ignored"), 0o644))

	res, err := TagFolder(dir, Tags{Artist: "Phish"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Tagged)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Errors)
}

func TestTagFolderReportsBadMP3(t *testing.T) {
	if taglibAvailable {
		t.Skip("default-build behavior only")
	}
	dir := t.TempDir()
	// An unreadable MP3 is an error, not a skip: the build can write MP3s.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.mp3"), []byte{0x00, 0x01}, 0o644))

	res, err := TagFolder(dir, Tags{Artist: "Phish"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Tagged)
	assert.NotEmpty(t, res.Errors)
}
