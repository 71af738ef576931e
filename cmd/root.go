// file: cmd/root.go
// version: 2.0.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdfalk/tagforge/internal/assets"
	"github.com/jdfalk/tagforge/internal/config"
	"github.com/jdfalk/tagforge/internal/history"
	"github.com/jdfalk/tagforge/internal/metadata"
	"github.com/jdfalk/tagforge/internal/organizer"
)

var cfgFile string
var inboxDir string
var archiveRoot string
var stateDir string
var folderScheme string
var savingScheme string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tagforge",
	Short: "Infer metadata and archive live recording folders",
	Long: `TagForge inspects live-recording folders dropped into an inbox,
infers artist, date, venue, city, source and format from the folder name,
sidecar text files and audio tags, then renames and files each folder into
the archive according to configurable naming schemes.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <state-dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&inboxDir, "inbox", "", "directory where unprocessed recording folders land")
	rootCmd.PersistentFlags().StringVar(&archiveRoot, "archive", "", "destination root for organized folders")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", ".tagforge", "directory for history, presets and assets")
	rootCmd.PersistentFlags().StringVar(&folderScheme, "folder-scheme", "", "naming scheme for the destination folder name")
	rootCmd.PersistentFlags().StringVar(&savingScheme, "saving-scheme", "", "naming scheme for the path under the archive root")

	viper.BindPFlag("inbox_dir", rootCmd.PersistentFlags().Lookup("inbox"))
	viper.BindPFlag("archive_root", rootCmd.PersistentFlags().Lookup("archive"))
	viper.BindPFlag("state_dir", rootCmd.PersistentFlags().Lookup("state-dir"))
	viper.BindPFlag("folder_scheme", rootCmd.PersistentFlags().Lookup("folder-scheme"))
	viper.BindPFlag("saving_scheme", rootCmd.PersistentFlags().Lookup("saving-scheme"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}

	viper.SetEnvPrefix("TAGFORGE")
	viper.AutomaticEnv()

	config.InitConfig()
	if err := config.LoadConfigFromFile(); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
}

// newProcessor builds the full pipeline: assets, history store, processor.
// The returned cleanup closes the history store.
func newProcessor() (*organizer.Processor, func(), error) {
	lists, err := assets.Load(config.AppConfig.AssetsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load assets: %w", err)
	}

	store, err := history.NewPebbleStore(config.AppConfig.HistoryPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history store: %w", err)
	}

	proc := organizer.NewProcessor(&config.AppConfig, store, lists)
	if err := proc.EnsureDirs(); err != nil {
		store.Close()
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: closing history store: %v\n", err)
		}
	}
	return proc, cleanup, nil
}

// parseOverrides turns repeated --set field=value flags into a map.
func parseOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("invalid override %q, expected field=value", pair)
		}
		overrides[strings.ToLower(strings.TrimSpace(field))] = strings.TrimSpace(value)
	}
	return overrides, nil
}

// printRecord dumps the non-empty fields of a record, sorted by field name.
func printRecord(rec *metadata.Record) {
	fields := rec.Snapshot()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-12s %s\n", name+":", fields[name])
	}
}

// inboxFolders lists the immediate subdirectories of the inbox.
func inboxFolders() ([]string, error) {
	entries, err := os.ReadDir(config.AppConfig.InboxDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read inbox: %w", err)
	}
	var folders []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			folders = append(folders, e.Name())
		}
	}
	sort.Strings(folders)
	return folders, nil
}
