// file: internal/fileops/prune.go
// version: 1.0.0
// guid: 6d7e8f90-a1b2-c3d4-e5f6-a7b8c9d0e1f2

package fileops

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Junk files that do not block a directory from being considered empty.
var junkNames = map[string]bool{
	".ds_store":   true,
	"thumbs.db":   true,
	"desktop.ini": true,
	".directory":  true,
	".localized":  true,
}

// PruneEmptyDirs removes dir and its empty ancestors up to (but never
// including) stop. Directories containing only junk files are treated as
// empty; the junk is deleted with the directory.
func PruneEmptyDirs(dir, stop string) {
	dir = filepath.Clean(dir)
	stop = filepath.Clean(stop)

	for dir != stop && strings.HasPrefix(dir, stop) {
		if !isPrunable(dir) {
			return
		}
		if err := os.RemoveAll(dir); err != nil {
			log.Printf("[WARN] fileops: failed to prune %s: %v", dir, err)
			return
		}
		log.Printf("[DEBUG] fileops: pruned empty directory %s", dir)
		dir = filepath.Dir(dir)
	}
}

// isPrunable reports whether dir contains nothing but junk files.
func isPrunable(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			return false
		}
		if !junkNames[strings.ToLower(e.Name())] {
			return false
		}
	}
	return true
}
