// file: internal/metadata/merge.go
// version: 1.0.0
// guid: 5b6c7d8e-9f0a-1b2c-3d4e-5f6a7b8c9d0e

package metadata

import (
	"log"
	"regexp"
	"strings"
	"time"
)

var reAlbumDate = regexp.MustCompile(`\b(\d{4}[-/]?\d{2}[-/]?\d{2})\b`)

// dateLayouts are tried in order when normalizing free-form date strings.
// The bare-year layout is last and marks the result as a year-only fallback.
var dateLayouts = []string{
	"2006-01-02", "20060102", "01/02/2006", "2 Jan 2006",
	"Jan 2, 2006", "January 2, 2006",
}

// Merge combines folder-name inference, audio-file tags, and sidecar text
// metadata for one folder into a single record. Precedence, highest first:
// sidecar text, folder-name parse, album-string parse, raw file tags.
// Source and format are only accepted from sources whose value belongs to the
// configured known sets.
func Merge(folderName, folderPath string, known Known) *Record {
	fileTags := ReadFolderTags(folderPath)
	log.Printf("[DEBUG] merge: file tags %+v", fileTags)

	albumParsed := parseAlbumFlexible(fileTags.Album, known)

	formatSet := upperSet(knownOrDefault(known.Formats, DefaultFormats))
	sourceSet := upperSet(knownOrDefault(known.Sources, DefaultSources))

	md := NewRecord()
	if fileTags.Artist != "" {
		md.Set(FieldArtist, fileTags.Artist)
	} else {
		md.Set(FieldArtist, fileTags.AlbumArtist)
	}
	md.Set(FieldVenue, albumParsed.Get(FieldVenue))
	md.Set(FieldCity, albumParsed.Get(FieldCity))
	if albumParsed.Has(FieldDate) {
		md.Set(FieldDate, albumParsed.Get(FieldDate))
	} else {
		md.Set(FieldDate, fileTags.Date)
	}
	md.Set(FieldSource, albumParsed.Get(FieldSource))
	md.Set(FieldFormat, albumParsed.Get(FieldFormat))
	md.Set(FieldGenre, fileTags.Genre)

	folderMD := ParseFolderName(folderName, known)

	for _, key := range canonicalFields {
		switch key {
		case FieldSource, FieldFormat:
			set := sourceSet
			if key == FieldFormat {
				set = formatSet
			}
			// Replace a missing or unrecognized value with a recognized one
			// from the folder name.
			if !set[strings.ToUpper(md.Get(key))] &&
				folderMD.Has(key) && set[strings.ToUpper(folderMD.Get(key))] {
				md.Set(key, folderMD.Get(key))
			}
		default:
			if !md.Has(key) && folderMD.Has(key) {
				md.Set(key, folderMD.Get(key))
			}
		}
	}

	txtMD := ParseSidecar(folderPath, known)
	for _, key := range []string{FieldArtist, FieldVenue, FieldCity, FieldDate, FieldSource, FieldFormat} {
		switch key {
		case FieldSource, FieldFormat:
			set := sourceSet
			if key == FieldFormat {
				set = formatSet
			}
			if txtMD.Has(key) && set[strings.ToUpper(txtMD.Get(key))] {
				md.Set(key, txtMD.Get(key))
			}
		default:
			if txtMD.Has(key) {
				md.Set(key, txtMD.Get(key))
			}
		}
	}

	// Date selection: prefer the first candidate, in precedence order, whose
	// normalized form is not a bare-year fallback.
	candidates := []string{
		txtMD.Get(FieldDate),
		folderMD.Get(FieldDate),
		albumParsed.Get(FieldDate),
		fileTags.Date,
	}
	selected := ""
	for _, cd := range candidates {
		if cd == "" {
			continue
		}
		if nd := NormalizeDate(cd); nd != "" && !strings.HasSuffix(nd, "-01-01") {
			selected = nd
			break
		}
	}
	if selected == "" {
		for _, cd := range candidates {
			if cd == "" {
				continue
			}
			if nd := NormalizeDate(cd); nd != "" {
				selected = nd
				break
			}
		}
	}
	if selected != "" {
		md.Set(FieldDate, selected)
	}

	// Last chance for source: word-bounded short token in the folder name.
	if !md.Has(FieldSource) {
		if m := reSourceShort.FindStringSubmatch(folderName); m != nil {
			candidate := strings.ToUpper(m[1])
			if sourceSet[candidate] {
				md.Set(FieldSource, candidate)
				log.Printf("[DEBUG] merge: source from folder token %s", candidate)
			}
		}
	}

	return md
}

// parseAlbumFlexible pulls date, venue, city, source, and format hints out of
// an album tag string.
func parseAlbumFlexible(album string, known Known) *Record {
	rec := NewRecord()
	if album == "" {
		return rec
	}

	// Dots are a common date separator in album tags.
	norm := strings.ReplaceAll(album, ".", "-")
	if m := reAlbumDate.FindStringSubmatch(norm); m != nil {
		candidate := strings.ReplaceAll(m[1], "/", "-")
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				rec.Set(FieldDate, t.Format("2006-01-02"))
				break
			}
		}
	}

	albumLower := strings.ToLower(album)
	for _, city := range known.Cities {
		if city != "" && strings.Contains(albumLower, strings.ToLower(city)) {
			rec.Set(FieldCity, city)
			break
		}
	}
	for _, venue := range known.Venues {
		if venue == "" || !strings.Contains(albumLower, strings.ToLower(venue)) {
			continue
		}
		if rec.Has(FieldCity) && strings.EqualFold(venue, rec.Get(FieldCity)) {
			continue
		}
		rec.Set(FieldVenue, venue)
		break
	}

	for _, src := range knownOrDefault(known.Sources, DefaultSources) {
		if strings.Contains(albumLower, strings.ToLower(src)) {
			rec.Set(FieldSource, src)
			break
		}
	}
	for _, fmtName := range knownOrDefault(known.Formats, DefaultFormats) {
		if strings.Contains(albumLower, strings.ToLower(fmtName)) {
			rec.Set(FieldFormat, fmtName)
			break
		}
	}

	return rec
}

// NormalizeDate coerces a free-form date string to YYYY-MM-DD. A bare year
// normalizes to YYYY-01-01. Returns "" when nothing parses.
func NormalizeDate(d string) string {
	d = strings.TrimSpace(d)
	if d == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, d); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if t, err := time.Parse("2006", d); err == nil {
		return t.Format("2006") + "-01-01"
	}
	return ""
}

func knownOrDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}
