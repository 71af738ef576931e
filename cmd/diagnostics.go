// file: cmd/diagnostics.go
// version: 2.0.0
// guid: 2a3b4c5d-6e7f-8a9b-0c1d-2e3f4a5b6c7d

package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/cockroachdb/pebble/v2"
	"github.com/spf13/cobra"

	"github.com/jdfalk/tagforge/internal/config"
	"github.com/jdfalk/tagforge/internal/history"
)

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging and cleanup helpers",
		Long:  "Diagnostic utilities for inspecting the history store and configuration.",
	}

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show recent processing history",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			raw, _ := cmd.Flags().GetBool("raw")
			prefix, _ := cmd.Flags().GetString("prefix")
			if raw {
				return runRawHistoryQuery(limit, prefix)
			}
			return runHistoryQuery(limit)
		},
	}

	envCmd = &cobra.Command{
		Use:   "env",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvDump()
		},
	}
)

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of entries to display")
	historyCmd.Flags().Bool("raw", false, "Show raw Pebble key/value data")
	historyCmd.Flags().String("prefix", "entry:", "Key prefix to inspect when --raw is set")

	diagnosticsCmd.AddCommand(historyCmd)
	diagnosticsCmd.AddCommand(envCmd)
	rootCmd.AddCommand(diagnosticsCmd)
}

func runHistoryQuery(limit int) error {
	if limit <= 0 {
		return errors.New("limit must be positive")
	}

	store, err := history.NewPebbleStore(config.AppConfig.HistoryPath())
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	total, err := store.CountEntries()
	if err != nil {
		return err
	}
	entries, err := store.RecentEntries(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No history entries.")
		return nil
	}

	fmt.Printf("Showing %d of %d entries:\n", len(entries), total)
	for i, e := range entries {
		fmt.Printf("%2d. %s  (%s)\n", i+1, e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("    From: %s\n", e.SourcePath)
		fmt.Printf("    To:   %s\n", e.DestPath)
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("    %-12s %s\n", name+":", e.Fields[name])
		}
		fmt.Println("---")
	}
	return nil
}

func runRawHistoryQuery(limit int, prefix string) error {
	db, err := pebble.Open(config.AppConfig.HistoryPath(), &pebble.Options{
		FormatMajorVersion: pebble.FormatNewest,
	})
	if err != nil {
		return fmt.Errorf("failed to open Pebble database: %w", err)
	}
	defer db.Close()

	iterOpts := &pebble.IterOptions{}
	if prefix != "" {
		iterOpts.LowerBound = []byte(prefix)
		iterOpts.UpperBound = append([]byte(prefix), 0xFF)
	}

	iter, err := db.NewIter(iterOpts)
	if err != nil {
		return fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	count := 0
	for ok := iter.First(); ok && iter.Valid(); ok = iter.Next() {
		fmt.Printf("Key: %s\n", string(iter.Key()))
		val := iter.Value()
		preview := string(val)
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("Value (%d bytes): %s\n", len(val), preview)
		fmt.Println("---")

		count++
		if count >= limit {
			break
		}
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("iterator error: %w", err)
	}
	if count == 0 {
		fmt.Println("No keys matched the requested prefix.")
	}
	return nil
}

func runEnvDump() error {
	cfg := config.AppConfig
	fmt.Printf("inbox_dir:      %s\n", cfg.InboxDir)
	fmt.Printf("archive_root:   %s\n", cfg.ArchiveRoot)
	fmt.Printf("assets_dir:     %s\n", cfg.AssetsDir)
	fmt.Printf("state_dir:      %s\n", cfg.StateDir)
	fmt.Printf("folder_scheme:  %s\n", cfg.FolderScheme)
	fmt.Printf("saving_scheme:  %s\n", cfg.SavingScheme)
	fmt.Printf("known_formats:  %v\n", cfg.KnownFormats)
	fmt.Printf("known_sources:  %v\n", cfg.KnownSources)
	fmt.Printf("history_path:   %s\n", cfg.HistoryPath())
	fmt.Printf("preset_path:    %s\n", cfg.PresetPath())
	if _, err := os.Stat(cfg.HistoryPath()); err == nil {
		fmt.Println("history store:  present")
	} else {
		fmt.Println("history store:  not created yet")
	}
	return nil
}
