// file: cmd/process.go
// version: 1.0.0
// guid: 8c9d0e1f-2a3b-4c5d-6e7f-8a9b0c1d2e3f

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jdfalk/tagforge/internal/config"
	"github.com/jdfalk/tagforge/internal/organizer"
)

// inspectCmd shows what metadata would be inferred, without evaluating schemes.
var inspectCmd = &cobra.Command{
	Use:   "inspect [folder...]",
	Short: "Show inferred metadata for recording folders",
	Long: `Inspect parses each folder name, sidecar text files and audio tags and
prints the merged metadata. With no arguments, every folder in the inbox is
inspected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		proc, cleanup, err := newProcessor()
		if err != nil {
			return err
		}
		defer cleanup()

		folders, err := resolveFolders(args)
		if err != nil {
			return err
		}

		for _, folder := range folders {
			pv, err := proc.PreviewFolder(folder, nil)
			if err != nil {
				fmt.Printf("%s:\n  error: %v\n", filepath.Base(folder), err)
				continue
			}
			fmt.Printf("%s:\n", filepath.Base(folder))
			printRecord(pv.Record)
		}
		return nil
	},
}

// previewCmd is a dry run of the full pipeline.
var previewCmd = &cobra.Command{
	Use:   "preview [folder...]",
	Short: "Show destination paths without moving anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, _ := cmd.Flags().GetStringArray("set")
		overrides, err := parseOverrides(sets)
		if err != nil {
			return err
		}

		proc, cleanup, err := newProcessor()
		if err != nil {
			return err
		}
		defer cleanup()

		folders, err := resolveFolders(args)
		if err != nil {
			return err
		}

		for _, folder := range folders {
			pv, err := proc.PreviewFolder(folder, overrides)
			if err != nil {
				fmt.Printf("%-50s  ERROR: %v\n", filepath.Base(folder), err)
				continue
			}
			fmt.Printf("%-50s  ->  %s\n", filepath.Base(folder), pv.DestPath)
		}
		return nil
	},
}

// processCmd runs the pipeline for real.
var processCmd = &cobra.Command{
	Use:   "process [folder...]",
	Short: "Archive recording folders",
	Long: `Process infers metadata for each folder, moves it into the archive under
the scheme-derived path, writes tags into the audio files, and records the
outcome in history. Failed folders are reported and skipped; the rest of the
batch still runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, _ := cmd.Flags().GetStringArray("set")
		overrides, err := parseOverrides(sets)
		if err != nil {
			return err
		}

		proc, cleanup, err := newProcessor()
		if err != nil {
			return err
		}
		defer cleanup()

		folders, err := resolveFolders(args)
		if err != nil {
			return err
		}
		if len(folders) == 0 {
			fmt.Println("Nothing to process.")
			return nil
		}

		requests := make([]organizer.Request, 0, len(folders))
		for _, folder := range folders {
			requests = append(requests, organizer.Request{FolderPath: folder, Overrides: overrides})
		}

		outcomes := proc.ProcessBatch(cmd.Context(), requests, true)

		ok, failed := 0, 0
		for _, out := range outcomes {
			if out.Err != nil {
				failed++
				fmt.Printf("FAILED  %s: %v\n", out.SourcePath, out.Err)
				continue
			}
			ok++
			fmt.Printf("moved   %s -> %s\n", filepath.Base(out.SourcePath), out.DestPath)
		}
		fmt.Printf("\nProcessed %d folders: %d moved, %d failed\n", len(outcomes), ok, failed)
		if failed > 0 {
			return fmt.Errorf("%d folders failed", failed)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().StringArray("set", nil, "override a field, e.g. --set artist=Phish (repeatable)")
	processCmd.Flags().StringArray("set", nil, "override a field, e.g. --set venue=\"Red Rocks\" (repeatable)")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(processCmd)
}

// resolveFolders turns command arguments into absolute folder paths. With no
// arguments every inbox subfolder is used.
func resolveFolders(args []string) ([]string, error) {
	if len(args) > 0 {
		out := make([]string, 0, len(args))
		for _, a := range args {
			abs, err := filepath.Abs(a)
			if err != nil {
				return nil, err
			}
			out = append(out, abs)
		}
		return out, nil
	}
	if config.AppConfig.InboxDir == "" {
		return nil, fmt.Errorf("no folders given and no inbox configured")
	}
	names, err := inboxFolders()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(config.AppConfig.InboxDir, name))
	}
	return out, nil
}
