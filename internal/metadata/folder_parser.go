// file: internal/metadata/folder_parser.go
// version: 1.0.0
// guid: 9a8b7c6d-5e4f-3a2b-1c0d-9e8f7a6b5c4d

package metadata

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Known carries the caller-supplied recognition lists and classification sets.
// All of them are read-only to the parser. Empty Formats/Sources fall back to
// the package defaults.
type Known struct {
	Artists []string
	Venues  []string
	Cities  []string
	Formats []string
	Sources []string
}

// Default classification sets for bracket tokens and fallback scans.
var (
	DefaultFormats = []string{"FLAC24", "FLAC16", "FLAC", "MP3", "MP4", "WAV", "MKV", "MOV"}
	DefaultSources = []string{"SBD", "AUD", "FM", "SOFT", "MTX", "DAT"}
)

// formatAliases maps shorthand bracket tokens to their canonical format.
// A bare FLAC rip is assumed 16-bit; FLACHD is the common 24-bit shorthand.
// Checked before literal known-format matching.
var formatAliases = map[string]string{
	"FLAC":   "FLAC16",
	"FLACHD": "FLAC24",
	"FLAC24": "FLAC24",
}

// patternRule pairs a structural regex with the fields its named groups can
// populate. Rules are tried in order; the first match wins and stops the scan.
type patternRule struct {
	re     *regexp.Regexp
	fields []string
}

// Structural patterns, anchored over the whole folder name. Ordered from most
// to least specific; earlier rules take precedence.
var folderPatterns = []patternRule{
	{
		re: regexp.MustCompile(`(?i)^(?P<date>\d{4}-\d{2}-\d{2})\s+` +
			`(?P<venue>[^,]+),\s+` +
			`(?P<city>[A-Za-z\s]+,\s*[A-Za-z]{2}).*$`),
		fields: []string{FieldDate, FieldVenue, FieldCity},
	},
	{
		re: regexp.MustCompile(`(?i)^(?P<date>\d{4}-\d{2}-\d{2})\s*-\s*` +
			`(?P<venue>.+?)\s*-\s*` +
			`(?P<city>[A-Za-z\s]+,\s*[A-Za-z]{2})\s*` +
			`(?:\[(?P<id>.+?)\])?.*$`),
		fields: []string{FieldDate, FieldVenue, FieldCity, FieldID},
	},
	{
		re: regexp.MustCompile(`(?i)^(?P<artist>.+?)\s*-\s*` +
			`(?P<date>\d{4}-\d{2}-\d{2})\s+` +
			`(?P<venue>[^,]+),\s+` +
			`(?P<city>[A-Za-z\s]+,\s*[A-Za-z]{2})\s*` +
			`(?:\[(?P<id>.+?)\])?$`),
		fields: []string{FieldArtist, FieldDate, FieldVenue, FieldCity, FieldID},
	},
	{
		re: regexp.MustCompile(`(?i)^(?P<artist>.+?)\s+` +
			`(?P<date>\d{4}-\d{2}-\d{2})\s+` +
			`(?P<venue>.+?),\s+` +
			`(?P<city>[A-Za-z\s]+,\s*[A-Za-z]{2})\s*` +
			`(?:\[(?P<id>.+?)\])?$`),
		fields: []string{FieldArtist, FieldDate, FieldVenue, FieldCity, FieldID},
	},
	{
		re: regexp.MustCompile(`(?i)^(?P<artist>.+?)\s+` +
			`(?P<date>\d{4}-\d{2}-\d{2})\s+` +
			`(?P<venue>.+?),\s+` +
			`(?P<city>[A-Za-z\s]+,\s*[A-Za-z]{2})` +
			`(?:\.(?P<format>\w+))?$`),
		fields: []string{FieldArtist, FieldDate, FieldVenue, FieldCity, FieldFormat},
	},
}

// Precompiled helper patterns — package-level to avoid per-call recompilation.
var (
	reCommaNoSpace = regexp.MustCompile(`,(\S)`)
	reDateToken    = regexp.MustCompile(`(\d{2,4})-(\d{2})-(\d{2})`)
	reBracketToken = regexp.MustCompile(`\[([^\]]+)\]`)
	reTrailingID   = regexp.MustCompile(`\[([^\]]+)\]$`)
	reWordToken    = regexp.MustCompile(`\w+`)
	reSourceShort  = regexp.MustCompile(`(?i)\b(aud|sbd|fm|dsbd|mtx|matrix)\b`)
)

// ParseFolderName extracts a metadata record from a free-form folder name.
// It is a pure function of its inputs and never fails: any field it cannot
// determine stays the empty string.
func ParseFolderName(name string, known Known) *Record {
	log.Printf("[DEBUG] folder_parser: parsing %q", name)

	// "City,ST" → "City, ST" so the city patterns can see the comma space.
	name = reCommaNoSpace.ReplaceAllString(name, ", $1")

	rec := NewRecord()

	formats := known.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	sources := known.Sources
	if len(sources) == 0 {
		sources = DefaultSources
	}
	formatSet := upperSet(formats)
	sourceSet := upperSet(sources)

	// Structural pass: first matching rule wins, later rules are not tried.
	for _, rule := range folderPatterns {
		m := rule.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		log.Printf("[DEBUG] folder_parser: matched pattern %s", rule.re.String())
		for i, g := range rule.re.SubexpNames() {
			if g == "" || i >= len(m) {
				continue
			}
			for _, f := range rule.fields {
				if f == g {
					rec.Set(f, strings.TrimSpace(m[i]))
				}
			}
		}
		break
	}

	if !rec.Has(FieldDate) {
		rec.Set(FieldDate, extractDate(name))
	}

	// Entity resolution against the known lists. A confirmed city is stripped
	// before venue matching so venue names containing the city text do not
	// collide with it.
	if v := longestMatch(name, known.Artists); v != "" {
		rec.Set(FieldArtist, v)
	}
	if v := longestMatch(name, known.Cities); v != "" {
		rec.Set(FieldCity, v)
	}
	nameWithoutCity := name
	if city := rec.Get(FieldCity); city != "" {
		if re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(city)); err == nil {
			nameWithoutCity = strings.TrimSpace(re.ReplaceAllString(name, ""))
		}
	}
	if v := longestMatch(nameWithoutCity, known.Venues); v != "" {
		rec.Set(FieldVenue, v)
	}

	// Bracket-token classification.
	tokens := bracketTokens(name)
	formatToken := findFormatToken(tokens, formatSet)
	if formatToken != "" && !rec.Has(FieldFormat) {
		if canonical, ok := formatAliases[strings.ToUpper(formatToken)]; ok {
			rec.Set(FieldFormat, canonical)
		} else {
			rec.Set(FieldFormat, formatToken)
		}
	}
	sourceToken := ""
	for _, t := range tokens {
		if sourceSet[strings.ToUpper(t)] {
			sourceToken = t
			break
		}
	}
	if sourceToken != "" && !rec.Has(FieldSource) {
		rec.Set(FieldSource, sourceToken)
	}

	if !rec.Has(FieldID) {
		rec.Set(FieldID, extractTrailingID(name, formatSet, sourceSet))
	}

	// Format fallback without brackets: longest known format whose uppercase
	// form prefixes some word token of the name.
	if !rec.Has(FieldFormat) {
		nameTokens := reWordToken.FindAllString(strings.ToUpper(name), -1)
		sorted := make([]string, len(formats))
		copy(sorted, formats)
		sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	scan:
		for _, f := range sorted {
			fu := strings.ToUpper(f)
			for _, tok := range nameTokens {
				if strings.HasPrefix(tok, fu) {
					rec.Set(FieldFormat, f)
					log.Printf("[DEBUG] folder_parser: format fallback matched %s", f)
					break scan
				}
			}
		}
	}

	// Source fallback: short source token anywhere in the name, accepted only
	// when the configured source set knows it.
	if !rec.Has(FieldSource) {
		if m := reSourceShort.FindStringSubmatch(name); m != nil {
			candidate := strings.ToUpper(m[1])
			if sourceSet[candidate] {
				rec.Set(FieldSource, candidate)
				log.Printf("[DEBUG] folder_parser: source fallback matched %s", candidate)
			}
		}
	}

	// Unclaimed bracket tokens become the additional field. Tokens that look
	// like literal %token% placeholders are skipped.
	var extra []string
	for _, t := range tokens {
		if t == formatToken || t == sourceToken {
			continue
		}
		trimmed := strings.TrimSpace(t)
		if strings.HasPrefix(trimmed, "%") && strings.HasSuffix(trimmed, "%") {
			continue
		}
		extra = append(extra, t)
	}
	rec.Set(FieldAdditional, strings.TrimSpace(strings.Join(extra, " ")))

	log.Printf("[DEBUG] folder_parser: result artist=%q date=%q venue=%q city=%q source=%q format=%q id=%q additional=%q",
		rec.Get(FieldArtist), rec.Get(FieldDate), rec.Get(FieldVenue), rec.Get(FieldCity),
		rec.Get(FieldSource), rec.Get(FieldFormat), rec.Get(FieldID), rec.Get(FieldAdditional))
	return rec
}

// extractDate scans text for a YYYY-MM-DD shaped token, disambiguates 2-digit
// years with a >50 pivot, and returns the normalized date only when it is a
// real calendar date.
func extractDate(text string) string {
	m := reDateToken.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	year, month, day := m[1], m[2], m[3]
	if len(year) == 2 {
		if n, err := strconv.Atoi(year); err == nil {
			if n > 50 {
				year = "19" + year
			} else {
				year = "20" + year
			}
		}
	}
	y, err1 := strconv.Atoi(year)
	mo, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	candidate := fmt.Sprintf("%04d-%02d-%02d", y, mo, d)
	if _, err := time.Parse("2006-01-02", candidate); err != nil {
		return ""
	}
	return candidate
}

// longestMatch returns the longest list entry that appears (case-insensitive)
// anywhere in name. Ties resolve to the earliest list entry of that length.
func longestMatch(name string, list []string) string {
	if name == "" || len(list) == 0 {
		return ""
	}
	nameLower := strings.ToLower(name)
	best := ""
	for _, candidate := range list {
		if candidate == "" {
			continue
		}
		if strings.Contains(nameLower, strings.ToLower(candidate)) && len(candidate) > len(best) {
			best = candidate
		}
	}
	return best
}

// bracketTokens returns the contents of every [...] group in name, in order.
func bracketTokens(name string) []string {
	var out []string
	for _, m := range reBracketToken.FindAllStringSubmatch(name, -1) {
		out = append(out, m[1])
	}
	return out
}

// findFormatToken returns the first bracket token recognized as a format,
// preferring alias-table hits over literal set membership.
func findFormatToken(tokens []string, formatSet map[string]bool) string {
	for _, t := range tokens {
		if _, ok := formatAliases[strings.ToUpper(t)]; ok {
			return t
		}
	}
	for _, t := range tokens {
		if formatSet[strings.ToUpper(t)] {
			return t
		}
	}
	return ""
}

// extractTrailingID treats a trailing [...] group as an opaque identifier when
// its content is neither a known format nor a known source.
func extractTrailingID(name string, formatSet, sourceSet map[string]bool) string {
	m := reTrailingID.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	upper := strings.ToUpper(m[1])
	if formatSet[upper] || sourceSet[upper] {
		return ""
	}
	return m[1]
}

func upperSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[strings.ToUpper(v)] = true
		}
	}
	return set
}
