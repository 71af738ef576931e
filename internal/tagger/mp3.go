// file: internal/tagger/mp3.go
// version: 1.0.0
// guid: 8f90a1b2-c3d4-e5f6-a7b8-c9d0e1f2a3b4

package tagger

import (
	"fmt"

	"github.com/bogem/id3v2"
)

// writeMP3Tags writes ID3v2 frames directly. Used in default builds where the
// TagLib writer is not compiled in.
func writeMP3Tags(path string, tags Tags) error {
	f, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open mp3 for tagging: %w", err)
	}
	defer f.Close()

	f.SetDefaultEncoding(id3v2.EncodingUTF8)

	if tags.Artist != "" {
		f.SetArtist(tags.Artist)
	}
	if tags.Album != "" {
		f.SetAlbum(tags.Album)
	}
	if tags.Date != "" {
		f.SetYear(tags.Date)
	}
	if g := tags.Genre(); g != "" {
		f.SetGenre(g)
	}
	if tags.Venue != "" {
		f.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: "VENUE",
			Value:       tags.Venue,
		})
	}
	if tags.City != "" {
		f.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: "LOCATION",
			Value:       tags.City,
		})
	}
	if c := tags.Comment(); c != "" {
		f.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "",
			Text:        c,
		})
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save mp3 tags: %w", err)
	}
	return nil
}
