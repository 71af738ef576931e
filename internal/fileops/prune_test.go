// file: internal/fileops/prune_test.go
// version: 1.0.0
// guid: 0ce9ce4f-b1d2-4228-819a-b60e9d56a9f7

package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneEmptyDirsWalksUpToStop(t *testing.T) {
	inbox := t.TempDir()
	leaf := filepath.Join(inbox, "artist", "1995", "show")
	require.NoError(t, os.MkdirAll(leaf, 0o755))

	PruneEmptyDirs(leaf, inbox)

	_, err := os.Stat(filepath.Join(inbox, "artist"))
	assert.True(t, os.IsNotExist(err), "empty chain should be pruned")
	_, err = os.Stat(inbox)
	assert.NoError(t, err, "stop directory must survive")
}

func TestPruneEmptyDirsJunkOnly(t *testing.T) {
	inbox := t.TempDir()
	dir := filepath.Join(inbox, "show")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte{0}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Thumbs.db"), []byte{0}, 0o644))

	PruneEmptyDirs(dir, inbox)
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "junk-only directory should be pruned")
}

func TestPruneEmptyDirsStopsAtRealContent(t *testing.T) {
	inbox := t.TempDir()
	mid := filepath.Join(inbox, "artist")
	leaf := filepath.Join(mid, "show")
	require.NoError(t, os.MkdirAll(leaf, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mid, "keep.txt"), []byte("x"), 0o644))

	PruneEmptyDirs(leaf, inbox)

	_, err := os.Stat(leaf)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(mid, "keep.txt"))
	assert.NoError(t, err, "directory with real content must survive")
}

func TestPruneEmptyDirsOutsideStopIsNoop(t *testing.T) {
	inbox := t.TempDir()
	other := t.TempDir()

	PruneEmptyDirs(other, inbox)
	_, err := os.Stat(other)
	assert.NoError(t, err)
}
