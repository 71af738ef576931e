// file: internal/scheme/presets_test.go
// version: 1.0.0
// guid: 5d6e7f8a-9b0c-1d2e-3f4a-5b6c7d8e9f0a

package scheme

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *PresetStore {
	t.Helper()
	store, err := NewPresetStore(filepath.Join(t.TempDir(), "presets.yaml"))
	require.NoError(t, err)
	return store
}

func TestPresetStoreSeedsDefault(t *testing.T) {
	store := newTestStore(t)

	p, ok, err := store.Get(DefaultPresetName)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, defaultPreset.FolderScheme, p.FolderScheme)
	assert.Equal(t, defaultPreset.SavingScheme, p.SavingScheme)
}

func TestPresetStoreSaveGetDelete(t *testing.T) {
	store := newTestStore(t)

	custom := Preset{FolderScheme: "%artist% %date%", SavingScheme: "(root)"}
	require.NoError(t, store.Save("Flat", custom))

	p, ok, err := store.Get("Flat")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, custom, p)

	names, err := store.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultPresetName, "Flat"}, names)

	require.NoError(t, store.Delete("Flat"))
	_, ok, err = store.Get("Flat")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete("Flat"))
}

func TestPresetStoreFindMatching(t *testing.T) {
	store := newTestStore(t)

	name, ok, err := store.FindMatching(defaultPreset.FolderScheme, defaultPreset.SavingScheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, DefaultPresetName, name)

	_, ok, err = store.FindMatching("%artist% edited", defaultPreset.SavingScheme)
	require.NoError(t, err)
	assert.False(t, ok, "edited schemes are custom, not a preset")
}

func TestPresetStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")

	store, err := NewPresetStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("Keep", Preset{FolderScheme: "%date%", SavingScheme: "%artist%"}))

	reopened, err := NewPresetStore(path)
	require.NoError(t, err)
	p, ok, err := reopened.Get("Keep")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "%date%", p.FolderScheme)
}
