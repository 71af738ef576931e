// file: cmd/watch.go
// version: 1.0.0
// guid: 1f2a3b4c-5d6e-7f8a-9b0c-1d2e3f4a5b6c

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jdfalk/tagforge/internal/cache"
	"github.com/jdfalk/tagforge/internal/config"
	"github.com/jdfalk/tagforge/internal/metadata"
	"github.com/jdfalk/tagforge/internal/organizer"
	"github.com/jdfalk/tagforge/internal/watcher"
)

// watchCmd runs the inbox watcher until interrupted.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox and archive folders as they settle",
	Long: `Watch monitors the inbox directory. When a recording folder stops
changing for the settle period, it is processed exactly like 'process':
metadata inferred, folder moved into the archive, tags written, history
recorded. Folders the schemes cannot name are left in place and reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.AppConfig.InboxDir == "" {
			return fmt.Errorf("no inbox configured")
		}
		settle, _ := cmd.Flags().GetDuration("settle")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		proc, cleanup, err := newProcessor()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		queue := organizer.NewQueue(proc, 0)
		previews := cache.New[*metadata.Record](10 * time.Minute)

		cb := func(folder string) {
			if dryRun {
				// Cache per folder so repeated settle events don't spam output.
				_, err := previews.GetOrCompute(folder, func() (*metadata.Record, error) {
					pv, err := proc.PreviewFolder(folder, nil)
					if err != nil {
						return nil, err
					}
					fmt.Printf("would move %s -> %s\n", folder, pv.DestPath)
					return pv.Record, nil
				})
				if err != nil {
					fmt.Printf("cannot process %s: %v\n", folder, err)
				}
				return
			}
			queue.Enqueue(organizer.Request{FolderPath: folder})
		}

		w := watcher.New(cb, settle)
		if err := w.Start(config.AppConfig.InboxDir); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}

		fmt.Printf("Watching %s (settle %s). Ctrl-C to stop.\n", config.AppConfig.InboxDir, settle)

		go queue.Run(ctx)
		<-ctx.Done()

		w.Stop()
		queue.Wait()
		fmt.Println("Watcher stopped.")
		return nil
	},
}

func init() {
	watchCmd.Flags().Duration("settle", watcher.DefaultSettle, "quiet period before a folder is processed")
	watchCmd.Flags().Bool("dry-run", false, "report destinations without moving folders")
	rootCmd.AddCommand(watchCmd)
}
