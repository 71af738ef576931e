// file: internal/matcher/matcher_test.go
// version: 1.0.0
// guid: ed9d8bf8-9f53-4adb-ab7b-c4a6de844720

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var venues = []string{
	"Madison Square Garden",
	"Red Rocks Amphitheatre",
	"The Fillmore",
	"Great American Music Hall",
}

func TestSuggestExactMatch(t *testing.T) {
	res := Suggest("madison square garden", venues, 0)
	require.NotEmpty(t, res)
	assert.Equal(t, "Madison Square Garden", res[0].Value)
	assert.Equal(t, 100, res[0].Score)
}

func TestSuggestPrefixBeatsSubstring(t *testing.T) {
	candidates := []string{"Garden State Arts Center", "Madison Square Garden"}
	res := Suggest("garden", candidates, 0)
	require.Len(t, res, 2)
	assert.Equal(t, "Garden State Arts Center", res[0].Value)
	assert.Equal(t, 90, res[0].Score)
	// "garden" starts a word inside the other candidate.
	assert.Equal(t, "Madison Square Garden", res[1].Value)
	assert.Equal(t, 80, res[1].Score)
}

func TestSuggestSubstring(t *testing.T) {
	res := Suggest("merican", []string{"Great American Music Hall"}, 0)
	require.Len(t, res, 1)
	assert.GreaterOrEqual(t, res[0].Score, 60)
	assert.Less(t, res[0].Score, 80)
}

func TestSuggestTypo(t *testing.T) {
	res := Suggest("Phsh", []string{"Phish", "Widespread Panic"}, 0)
	require.NotEmpty(t, res)
	assert.Equal(t, "Phish", res[0].Value)
	assert.Greater(t, res[0].Score, 0)
}

func TestSuggestNoMatch(t *testing.T) {
	assert.Empty(t, Suggest("zzzzqqq", venues, 0))
	assert.Empty(t, Suggest("   ", venues, 0))
}

func TestSuggestLimit(t *testing.T) {
	res := Suggest("r", venues, 1)
	assert.LessOrEqual(t, len(res), 1)
}

func TestBestMatch(t *testing.T) {
	assert.Equal(t, "Red Rocks Amphitheatre", BestMatch("red rocks", venues))
	assert.Equal(t, "", BestMatch("no such venue at all", []string{"unrelated"}))
	assert.Equal(t, "", BestMatch("anything", nil))
}
