// file: internal/metadata/filetags.go
// version: 1.0.0
// guid: 7c8d9e0f-1a2b-3c4d-5e6f-7a8b9c0d1e2f

package metadata

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// audioExtensions are the container types we read embedded tags from.
var audioExtensions = map[string]bool{
	".flac": true,
	".mp3":  true,
	".m4a":  true,
	".ogg":  true,
	".wav":  true,
}

// FileTags holds the raw tag fields read from an audio file.
type FileTags struct {
	Artist      string
	AlbumArtist string
	Album       string
	Date        string
	Genre       string
}

// ReadFolderTags walks folderPath and returns the tags of the first readable
// audio file. Unreadable files are skipped; an empty result is not an error.
func ReadFolderTags(folderPath string) FileTags {
	var tags FileTags
	_ = filepath.WalkDir(folderPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !audioExtensions[strings.ToLower(filepath.Ext(p))] {
			return nil
		}
		f, err := os.Open(p)
		if err != nil {
			return nil
		}
		defer f.Close()
		m, err := tag.ReadFrom(f)
		if err != nil {
			log.Printf("[DEBUG] filetags: unreadable tags in %s: %v", filepath.Base(p), err)
			return nil
		}
		tags.Artist = strings.TrimSpace(m.Artist())
		tags.AlbumArtist = strings.TrimSpace(m.AlbumArtist())
		tags.Album = strings.TrimSpace(m.Album())
		tags.Genre = strings.TrimSpace(m.Genre())
		if y := m.Year(); y > 0 {
			tags.Date = fmt.Sprintf("%d", y)
		}
		return fs.SkipAll
	})
	return tags
}
