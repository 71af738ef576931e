// file: internal/tagger/taglib_support.go
// version: 1.1.0
// guid: 90a1b2c3-d4e5-f6a7-b8c9-d0e1f2a3b4c5

//go:build taglib
// +build taglib

// TagLib native writer support (optional via build tag 'taglib'). Default build without tag excludes this file.

package tagger

import (
	"fmt"
	"path/filepath"

	taglib "go.senan.xyz/taglib"
)

// taglibAvailable indicates native taglib path compiled in
var taglibAvailable = true

// writeTagsWithTaglib performs native metadata writing using TagLib. Handles
// all container formats TagLib supports, including FLAC vorbis comments.
func writeTagsWithTaglib(path string, tags Tags) error {
	abs, _ := filepath.Abs(path)

	fields := make(map[string][]string)
	if tags.Artist != "" {
		fields[taglib.Artist] = []string{tags.Artist}
		fields[taglib.AlbumArtist] = []string{tags.Artist}
	}
	if tags.Album != "" {
		fields[taglib.Album] = []string{tags.Album}
	}
	if tags.Date != "" {
		fields[taglib.Date] = []string{tags.Date}
	}
	if g := tags.Genre(); g != "" {
		fields[taglib.Genre] = []string{g}
	}
	if tags.Venue != "" {
		fields["VENUE"] = []string{tags.Venue}
	}
	if tags.City != "" {
		fields["LOCATION"] = []string{tags.City}
	}
	if c := tags.Comment(); c != "" {
		fields[taglib.Comment] = []string{c}
	}

	if len(fields) == 0 {
		return nil
	}

	if err := taglib.WriteTags(abs, fields, 0); err != nil {
		return fmt.Errorf("taglib write failed: %w", err)
	}
	return nil
}
