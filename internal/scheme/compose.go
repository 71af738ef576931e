// file: internal/scheme/compose.go
// version: 1.0.0
// guid: 6e7f8091-a2b3-c4d5-e6f7-0819a2b3c4d5

package scheme

import (
	"errors"
	"log"
	"path"
	"regexp"
	"strings"

	"github.com/jdfalk/tagforge/internal/metadata"
)

// ErrEmptyFolderName reports that the folder scheme produced nothing usable.
// The caller must refuse to process the folder.
var ErrEmptyFolderName = errors.New("cannot derive destination name")

// RootMarker in a saving scheme result places the folder directly under the
// archive root.
const RootMarker = "(root)"

var (
	reEmptyBracket = regexp.MustCompile(`[\[\(\{][^\[\]\(\)\{\}]*[\]\)\}]`)
	reMultiSpace   = regexp.MustCompile(`\s{2,}`)
)

// ComposePath evaluates the folder scheme, injects its result as the
// foldername field, evaluates the saving scheme, and joins the two into a
// forward-slash relative path. It returns the cleaned folder name alongside
// the full relative path.
func ComposePath(folderScheme, savingScheme string, md *metadata.Record) (string, string, error) {
	folderName := CleanupResult(Evaluate(folderScheme, md))
	if folderName == "" {
		log.Printf("[WARN] scheme: folder scheme %q evaluated to empty", folderScheme)
		return "", "", ErrEmptyFolderName
	}

	extended := md.Clone()
	extended.Set(metadata.FieldFolderName, folderName)

	saving := CleanupResult(Evaluate(savingScheme, extended))
	log.Printf("[DEBUG] scheme: folder=%q saving=%q", folderName, saving)

	if saving == "" || strings.EqualFold(saving, RootMarker) {
		return folderName, folderName, nil
	}
	full := path.Join(strings.ReplaceAll(saving, "\\", "/"), folderName)
	return folderName, strings.TrimSuffix(strings.TrimSpace(full), "/"), nil
}

// CleanupResult strips bracket groups left empty by substitution and
// normalizes whitespace. Bracket removal runs to a fixed point so nested
// emptied groups collapse too.
func CleanupResult(text string) string {
	for {
		next := reEmptyBracket.ReplaceAllStringFunc(text, func(m string) string {
			if strings.TrimSpace(m[1:len(m)-1]) == "" {
				return ""
			}
			return m
		})
		if next == text {
			break
		}
		text = next
	}
	text = reMultiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
