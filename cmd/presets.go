// file: cmd/presets.go
// version: 1.0.0
// guid: 9d0e1f2a-3b4c-5d6e-7f8a-9b0c1d2e3f4a

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdfalk/tagforge/internal/config"
	"github.com/jdfalk/tagforge/internal/scheme"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage naming scheme presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := scheme.NewPresetStore(config.AppConfig.PresetPath())
		if err != nil {
			return err
		}
		names, err := store.Names()
		if err != nil {
			return err
		}
		active, isPreset, err := store.FindMatching(config.AppConfig.FolderScheme, config.AppConfig.SavingScheme)
		if err != nil {
			return err
		}
		for _, name := range names {
			marker := "  "
			if isPreset && name == active {
				marker = "* "
			}
			p, _, _ := store.Get(name)
			fmt.Printf("%s%-20s folder=%q saving=%q\n", marker, name, p.FolderScheme, p.SavingScheme)
		}
		if !isPreset {
			fmt.Printf("\nCurrent schemes are custom:\n  folder=%q\n  saving=%q\n",
				config.AppConfig.FolderScheme, config.AppConfig.SavingScheme)
		}
		return nil
	},
}

var presetsSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current schemes as a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := scheme.NewPresetStore(config.AppConfig.PresetPath())
		if err != nil {
			return err
		}
		p := scheme.Preset{
			FolderScheme: config.AppConfig.FolderScheme,
			SavingScheme: config.AppConfig.SavingScheme,
		}
		if err := store.Save(args[0], p); err != nil {
			return err
		}
		fmt.Printf("Saved preset %q\n", args[0])
		return nil
	},
}

var presetsUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Activate a preset's schemes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := scheme.NewPresetStore(config.AppConfig.PresetPath())
		if err != nil {
			return err
		}
		p, ok, err := store.Get(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no preset named %q", args[0])
		}
		if err := config.SaveSchemes(p.FolderScheme, p.SavingScheme); err != nil {
			return err
		}
		fmt.Printf("Using preset %q:\n  folder=%q\n  saving=%q\n",
			args[0], p.FolderScheme, p.SavingScheme)
		return nil
	},
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := scheme.NewPresetStore(config.AppConfig.PresetPath())
		if err != nil {
			return err
		}
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted preset %q\n", args[0])
		return nil
	},
}

func init() {
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsSaveCmd)
	presetsCmd.AddCommand(presetsUseCmd)
	presetsCmd.AddCommand(presetsDeleteCmd)
	rootCmd.AddCommand(presetsCmd)
}
