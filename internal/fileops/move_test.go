// file: internal/fileops/move_test.go
// version: 1.0.0
// guid: 74df84d2-b21a-4878-b8f8-f41b4c3fb7c2

package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSafeMoveDir(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "inbox", "show")
	writeFile(t, filepath.Join(src, "d1t01.flac"), "audio one")
	writeFile(t, filepath.Join(src, "info", "show.txt"), "liner notes")

	dst := filepath.Join(base, "archive", "Phish", "1995", "show")
	final, err := SafeMoveDir(src, dst)
	require.NoError(t, err)
	assert.Equal(t, dst, final)

	data, err := os.ReadFile(filepath.Join(final, "d1t01.flac"))
	require.NoError(t, err)
	assert.Equal(t, "audio one", string(data))
	data, err = os.ReadFile(filepath.Join(final, "info", "show.txt"))
	require.NoError(t, err)
	assert.Equal(t, "liner notes", string(data))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should be gone")
}

func TestSafeMoveDirCollision(t *testing.T) {
	base := t.TempDir()
	dst := filepath.Join(base, "archive", "show")
	writeFile(t, filepath.Join(dst, "existing.txt"), "old")

	src := filepath.Join(base, "inbox", "show")
	writeFile(t, filepath.Join(src, "new.txt"), "new")

	final, err := SafeMoveDir(src, dst)
	require.NoError(t, err)
	assert.Equal(t, dst+"(1)", final)

	// Neither existing data nor the moved data was lost.
	_, err = os.Stat(filepath.Join(dst, "existing.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(final, "new.txt"))
	assert.NoError(t, err)
}

func TestSafeMoveFile(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "a.txt")
	writeFile(t, src, "payload")

	final, err := SafeMoveFile(src, filepath.Join(base, "sub", "a.txt"))
	require.NoError(t, err)

	data, err := os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestResolveCollisionPreservesExtension(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "track.flac")

	assert.Equal(t, target, ResolveCollision(target))

	writeFile(t, target, "x")
	assert.Equal(t, filepath.Join(base, "track(1).flac"), ResolveCollision(target))

	writeFile(t, filepath.Join(base, "track(1).flac"), "x")
	assert.Equal(t, filepath.Join(base, "track(2).flac"), ResolveCollision(target))
}

func TestCopyVerified(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src.bin")
	writeFile(t, src, "verify me")

	dst := filepath.Join(base, "dst.bin")
	require.NoError(t, copyVerified(src, dst))

	srcHash, err := ComputeFileHash(src)
	require.NoError(t, err)
	dstHash, err := ComputeFileHash(dst)
	require.NoError(t, err)
	assert.Equal(t, srcHash, dstHash)
}

func TestComputeFileHash(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "f.txt")
	writeFile(t, path, "hello")

	// SHA256("hello")
	hash, err := ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", hash)

	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}
