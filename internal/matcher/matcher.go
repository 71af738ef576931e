// file: internal/matcher/matcher.go
// version: 1.2.0
// guid: b2c3d4e5-f6a7-b8c9-d0e1-f2a3b4c5d6e7

// Package matcher ranks known entities against partial or misspelled input,
// used to suggest artists, venues and cities when folder parsing comes up
// short.
package matcher

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggestion is one scored candidate.
type Suggestion struct {
	Value string
	Score int // 0-100, higher is better
}

// Suggest ranks candidates against query and returns the best matches,
// highest score first, at most limit entries (0 = no limit).
func Suggest(query string, candidates []string, limit int) []Suggestion {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var results []Suggestion
	for _, c := range candidates {
		s := score(query, c)
		if s > 0 {
			results = append(results, Suggestion{Value: c, Score: s})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// score combines exact/prefix/substring checks with fuzzy matching.
func score(query, target string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(strings.TrimSpace(target))
	if q == "" || t == "" {
		return 0
	}
	if q == t {
		return 100
	}
	if strings.HasPrefix(t, q) {
		return 90
	}
	for _, w := range strings.Fields(t) {
		if strings.HasPrefix(w, q) {
			return 80
		}
	}
	if strings.Contains(t, q) {
		ratio := float64(len(q)) / float64(len(t))
		return 60 + int(ratio*15)
	}

	// Subsequence match with normalized Levenshtein distance as tie-break.
	if !fuzzy.MatchNormalizedFold(q, t) {
		// Allow pure edit-distance matches for typos ("Phsh" -> "Phish").
		dist := fuzzy.LevenshteinDistance(q, t)
		maxLen := len(q)
		if len(t) > maxLen {
			maxLen = len(t)
		}
		sim := 1.0 - float64(dist)/float64(maxLen)
		if sim < 0.5 {
			return 0
		}
		return int(sim * 55)
	}
	rank := fuzzy.RankMatchNormalizedFold(q, t)
	if rank < 0 {
		return 0
	}
	s := 55 - rank
	if s < 1 {
		s = 1
	}
	return s
}

// BestMatch returns the single best suggestion, or "" when nothing scores.
func BestMatch(query string, candidates []string) string {
	res := Suggest(query, candidates, 1)
	if len(res) == 0 {
		return ""
	}
	return res[0].Value
}
