// file: internal/fileops/move.go
// version: 1.1.0
// guid: 5c6d7e8f-90a1-b2c3-d4e5-f6a7b8c9d0e1

// Package fileops provides verified file moves and archive housekeeping.
package fileops

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// SafeMoveDir moves a recording folder into the archive. A same-filesystem
// rename is attempted first; across filesystems each file is copied with
// SHA256 verification before the source is removed. Name collisions at the
// destination are resolved with a numeric suffix ("name(1)").
func SafeMoveDir(src, dst string) (string, error) {
	dst = ResolveCollision(dst)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("failed to create destination parent: %w", err)
	}

	if err := os.Rename(src, dst); err == nil {
		log.Printf("[DEBUG] fileops: renamed %s -> %s", src, dst)
		return dst, nil
	}

	// Cross-device fallback: copy then delete.
	log.Printf("[DEBUG] fileops: rename failed, copying %s -> %s", src, dst)
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyVerified(path, target)
	})
	if err != nil {
		return "", fmt.Errorf("failed to copy folder: %w", err)
	}

	if err := os.RemoveAll(src); err != nil {
		log.Printf("[WARN] fileops: copied but failed to remove source %s: %v", src, err)
	}
	return dst, nil
}

// SafeMoveFile moves a single file with checksum verification and collision
// suffixing, returning the final destination path.
func SafeMoveFile(src, dst string) (string, error) {
	dst = ResolveCollision(dst)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	if err := os.Rename(src, dst); err == nil {
		return dst, nil
	}
	if err := copyVerified(src, dst); err != nil {
		return "", err
	}
	if err := os.Remove(src); err != nil {
		log.Printf("[WARN] fileops: copied but failed to remove source %s: %v", src, err)
	}
	return dst, nil
}

// ResolveCollision returns path unchanged if it does not exist, otherwise the
// first available "name(N)" variant. The extension is preserved for files.
func ResolveCollision(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s(%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			log.Printf("[DEBUG] fileops: collision at %s, using %s", path, candidate)
			return candidate
		}
	}
}

// copyVerified copies src to dst and verifies the result by SHA256.
func copyVerified(src, dst string) error {
	srcHash, err := ComputeFileHash(src)
	if err != nil {
		return fmt.Errorf("failed to hash source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	dstHash, err := ComputeFileHash(dst)
	if err != nil {
		return fmt.Errorf("failed to hash destination: %w", err)
	}
	if srcHash != dstHash {
		os.Remove(dst)
		return fmt.Errorf("checksum mismatch copying %s", src)
	}

	if info, err := os.Stat(src); err == nil {
		_ = os.Chmod(dst, info.Mode())
	}
	return nil
}
