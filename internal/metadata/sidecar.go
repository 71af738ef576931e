// file: internal/metadata/sidecar.go
// version: 1.0.0
// guid: 1f2e3d4c-5b6a-7980-91a2-b3c4d5e6f708

package metadata

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	reLabelArtist = regexp.MustCompile(`(?i)^artist:\s*(.*)`)
	reLabelVenue  = regexp.MustCompile(`(?i)^venue:\s*(.*)`)
	reLabelCity   = regexp.MustCompile(`(?i)^(?:city|location):\s*(.*)`)
	reLabelDate   = regexp.MustCompile(`(?i)^(?:date|release date):\s*(.*)`)
)

// sidecarSourceGuesses is the order in which source tokens are probed in the
// folder basename when no labeled line supplies one.
var sidecarSourceGuesses = []string{"AUD", "SBD", "FM", "DAT", "MTX"}

// ParseSidecar scans the .txt files in folderPath for recording metadata.
// Longer files are tried first; the first file that yields anything wins.
// Missing or unreadable files are soft misses, never errors.
func ParseSidecar(folderPath string, known Known) *Record {
	rec := NewRecord()

	entries, err := os.ReadDir(folderPath)
	if err != nil {
		log.Printf("[DEBUG] sidecar: cannot list %s: %v", folderPath, err)
		return rec
	}

	var txtFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			txtFiles = append(txtFiles, e.Name())
		}
	}
	if len(txtFiles) == 0 {
		return rec
	}

	// Longer files usually carry the full show info; try those first.
	lineCounts := make(map[string]int, len(txtFiles))
	for _, f := range txtFiles {
		lineCounts[f] = countLines(filepath.Join(folderPath, f))
	}
	sort.SliceStable(txtFiles, func(i, j int) bool {
		return lineCounts[txtFiles[i]] > lineCounts[txtFiles[j]]
	})

	basename := filepath.Base(filepath.Clean(folderPath))

	for _, f := range txtFiles {
		lines, err := readLines(filepath.Join(folderPath, f))
		if err != nil {
			log.Printf("[DEBUG] sidecar: skipping %s: %v", f, err)
			continue
		}
		found := parseSidecarLines(lines, basename, known)
		if len(found.NonEmptyFields()) > 0 {
			log.Printf("[DEBUG] sidecar: extracted metadata from %s", f)
			return found
		}
	}
	return rec
}

// parseSidecarLines extracts fields from one file's lines.
func parseSidecarLines(lines []string, basename string, known Known) *Record {
	rec := NewRecord()

	// Labeled lines take priority.
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := reLabelArtist.FindStringSubmatch(line); m != nil && !rec.Has(FieldArtist) {
			rec.Set(FieldArtist, strings.TrimSpace(m[1]))
		} else if m := reLabelVenue.FindStringSubmatch(line); m != nil && !rec.Has(FieldVenue) {
			rec.Set(FieldVenue, strings.TrimSpace(m[1]))
		} else if m := reLabelCity.FindStringSubmatch(line); m != nil && !rec.Has(FieldCity) {
			rec.Set(FieldCity, strings.TrimSpace(m[1]))
		} else if m := reLabelDate.FindStringSubmatch(line); m != nil && !rec.Has(FieldDate) {
			rec.Set(FieldDate, strings.TrimSpace(m[1]))
		}
	}

	// Known-list fallbacks, scanning line by line.
	if !rec.Has(FieldArtist) {
		rec.Set(FieldArtist, firstListHit(lines, known.Artists))
	}
	if !rec.Has(FieldVenue) {
		rec.Set(FieldVenue, firstListHit(lines, known.Venues))
	}
	if !rec.Has(FieldCity) {
		rec.Set(FieldCity, firstListHit(lines, known.Cities))
	}

	// Source and format guesses from the folder basename.
	if !rec.Has(FieldSource) {
		upper := strings.ToUpper(basename)
		for _, src := range sidecarSourceGuesses {
			if strings.Contains(upper, src) {
				rec.Set(FieldSource, src)
				break
			}
		}
	}
	if !rec.Has(FieldFormat) {
		lower := strings.ToLower(basename)
		switch {
		case strings.Contains(lower, "flac16"):
			rec.Set(FieldFormat, "FLAC16")
		case strings.Contains(lower, "flac24"):
			rec.Set(FieldFormat, "FLAC24")
		case strings.Contains(lower, "mp3"):
			rec.Set(FieldFormat, "MP3")
		}
	}

	return rec
}

func firstListHit(lines []string, list []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, candidate := range list {
			if candidate != "" && strings.Contains(lower, strings.ToLower(candidate)) {
				return candidate
			}
		}
	}
	return ""
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func countLines(path string) int {
	lines, err := readLines(path)
	if err != nil {
		return 0
	}
	return len(lines)
}
