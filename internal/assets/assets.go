// file: internal/assets/assets.go
// version: 1.0.0
// guid: 0d1e2f3a-4b5c-6d7e-8f90-a1b2c3d4e5f6

// Package assets loads and maintains the known-entity lists (artists, venues,
// cities) used for substring recognition inside folder names.
package assets

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// File names inside the assets directory.
const (
	ArtistsFile = "artists.txt"
	VenuesFile  = "venues.txt"
	CitiesFile  = "cities.txt"
)

// Seed content written when an asset file is missing.
var seedLists = map[string][]string{
	ArtistsFile: {"Phish", "Grateful Dead", "Widespread Panic", "Leftover Salmon"},
	VenuesFile:  {"Red Rocks", "Madison Square Garden", "The Fillmore"},
	CitiesFile:  {"Boulder, CO", "New York, NY", "San Francisco, CA"},
}

// Lists holds the loaded known-entity lists. Order matters: new values are
// prepended, so recently confirmed entities win length ties in matching.
type Lists struct {
	Dir     string
	Artists []string
	Venues  []string
	Cities  []string
}

// Load ensures the asset files exist and reads all three lists.
func Load(dir string) (*Lists, error) {
	if err := ensureFiles(dir); err != nil {
		return nil, err
	}
	l := &Lists{Dir: dir}
	l.Artists = loadList(filepath.Join(dir, ArtistsFile))
	l.Venues = loadList(filepath.Join(dir, VenuesFile))
	l.Cities = loadList(filepath.Join(dir, CitiesFile))
	log.Printf("[INFO] assets: loaded %d artists, %d venues, %d cities",
		len(l.Artists), len(l.Venues), len(l.Cities))
	return l, nil
}

// RememberArtist records a confirmed artist for future matching.
func (l *Lists) RememberArtist(v string) { l.Artists = l.remember(ArtistsFile, l.Artists, v) }

// RememberVenue records a confirmed venue.
func (l *Lists) RememberVenue(v string) { l.Venues = l.remember(VenuesFile, l.Venues, v) }

// RememberCity records a confirmed city.
func (l *Lists) RememberCity(v string) { l.Cities = l.remember(CitiesFile, l.Cities, v) }

// remember prepends value to the list and its backing file, deduplicating
// case-insensitively. Empty values are ignored.
func (l *Lists) remember(file string, list []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return list
	}
	for _, existing := range list {
		if strings.EqualFold(existing, value) {
			return list
		}
	}
	updated := append([]string{value}, list...)
	path := filepath.Join(l.Dir, file)
	if err := writeList(path, updated); err != nil {
		log.Printf("[WARN] assets: failed updating %s: %v", file, err)
		return list
	}
	log.Printf("[DEBUG] assets: remembered %q in %s", value, file)
	return updated
}

func ensureFiles(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create assets directory: %w", err)
	}
	for fname, lines := range seedLists {
		path := filepath.Join(dir, fname)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := writeList(path, lines); err != nil {
			return fmt.Errorf("failed to seed %s: %w", fname, err)
		}
		log.Printf("[INFO] assets: created default %s with %d entries", fname, len(lines))
	}
	return nil
}

func loadList(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func writeList(path string, lines []string) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}
