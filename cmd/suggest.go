// file: cmd/suggest.go
// version: 1.0.0
// guid: 0e1f2a3b-4c5d-6e7f-8a9b-0c1d2e3f4a5b

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdfalk/tagforge/internal/assets"
	"github.com/jdfalk/tagforge/internal/config"
	"github.com/jdfalk/tagforge/internal/history"
	"github.com/jdfalk/tagforge/internal/matcher"
)

// suggestCmd ranks known entities against a partial or misspelled value.
var suggestCmd = &cobra.Command{
	Use:   "suggest <field> <query>",
	Short: "Suggest known values for a field",
	Long: `Suggest ranks the known-entity lists (and value history for source,
format and genre) against the query. Fields: artist, venue, city, source,
format, genre.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field := strings.ToLower(args[0])
		query := args[1]
		limit, _ := cmd.Flags().GetInt("limit")

		candidates, err := suggestCandidates(field)
		if err != nil {
			return err
		}

		results := matcher.Suggest(query, candidates, limit)
		if len(results) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%3d  %s\n", r.Score, r.Value)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().Int("limit", 10, "maximum number of suggestions")
	rootCmd.AddCommand(suggestCmd)
}

func suggestCandidates(field string) ([]string, error) {
	switch field {
	case "artist", "venue", "city":
		lists, err := assets.Load(config.AppConfig.AssetsDir)
		if err != nil {
			return nil, err
		}
		switch field {
		case "artist":
			return lists.Artists, nil
		case "venue":
			return lists.Venues, nil
		default:
			return lists.Cities, nil
		}
	case "source", "format", "genre":
		store, err := history.NewPebbleStore(config.AppConfig.HistoryPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()
		values, err := store.GetFieldValues(field)
		if err != nil {
			return nil, err
		}
		// Seed with the configured sets so suggestions work on a fresh install.
		if field == "source" {
			values = append(values, config.AppConfig.KnownSources...)
		}
		if field == "format" {
			values = append(values, config.AppConfig.KnownFormats...)
		}
		return dedupFold(values), nil
	default:
		return nil, fmt.Errorf("unknown field %q", field)
	}
}

func dedupFold(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		out = append(out, v)
	}
	return out
}
