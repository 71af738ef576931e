// file: internal/tagger/tagger.go
// version: 1.2.0
// guid: 7e8f90a1-b2c3-d4e5-f6a7-b8c9d0e1f2a3

// Package tagger writes inferred recording metadata back into audio files.
// MP3 files are tagged natively; FLAC and other formats require the optional
// TagLib writer (build tag 'taglib').
package tagger

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
)

// ErrTaglibUnavailable is returned for non-MP3 files when the native TagLib
// writer was not compiled in.
var ErrTaglibUnavailable = errors.New("taglib writer not available in this build")

// Tags holds the fields written into audio files after processing.
type Tags struct {
	Artist string
	Album  string
	Date   string
	Venue  string
	City   string
	Genres []string
	Source string
	Format string
}

// Genre returns the combined genre value: sorted, deduplicated, joined by "; ".
func (t Tags) Genre() string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range t.Genres {
		g = strings.TrimSpace(g)
		if g == "" || seen[strings.ToLower(g)] {
			continue
		}
		seen[strings.ToLower(g)] = true
		out = append(out, g)
	}
	sort.Strings(out)
	return strings.Join(out, "; ")
}

// Comment returns the free-text comment combining source and format.
func (t Tags) Comment() string {
	var parts []string
	if t.Source != "" {
		parts = append(parts, t.Source)
	}
	if t.Format != "" {
		parts = append(parts, t.Format)
	}
	return strings.Join(parts, " / ")
}

// Result summarizes a folder tagging pass.
type Result struct {
	Tagged  int
	Skipped int
	Errors  []error
}

// Audio extensions considered for tagging.
var audioExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".wav":  false, // no standard tag container
	".shn":  false,
}

// TagFolder writes tags into every supported audio file under folderPath.
// Files the current build cannot write are counted as skipped, not failed.
func TagFolder(folderPath string, tags Tags) (*Result, error) {
	res := &Result{}
	err := filepath.WalkDir(folderPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !audioExts[ext] {
			return nil
		}
		if werr := TagFile(path, tags); werr != nil {
			if errors.Is(werr, ErrTaglibUnavailable) {
				log.Printf("[DEBUG] tagger: skipping %s (%v)", path, werr)
				res.Skipped++
				return nil
			}
			log.Printf("[WARN] tagger: failed to tag %s: %v", path, werr)
			res.Errors = append(res.Errors, werr)
			return nil
		}
		res.Tagged++
		return nil
	})
	if err != nil {
		return res, err
	}
	log.Printf("[INFO] tagger: tagged %d files in %s (%d skipped, %d errors)",
		res.Tagged, folderPath, res.Skipped, len(res.Errors))
	return res, nil
}

// TagFile writes tags into a single audio file, dispatching on extension.
func TagFile(path string, tags Tags) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".mp3" && !taglibAvailable {
		return writeMP3Tags(path, tags)
	}
	return writeTagsWithTaglib(path, tags)
}
