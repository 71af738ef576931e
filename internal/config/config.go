// file: internal/config/config.go
// version: 1.0.0
// guid: 4a5b6c7d-8e9f-0a1b-2c3d-4e5f6a7b8c9d

package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	InboxDir    string // where unprocessed recording folders land
	ArchiveRoot string // destination root for organized folders
	AssetsDir   string // artists.txt / venues.txt / cities.txt
	StateDir    string // history store, presets, config file

	FolderScheme string
	SavingScheme string

	KnownFormats    []string
	KnownSources    []string
	KnownAdditional []string

	SupportedExtensions []string
}

var AppConfig Config

// InitConfig initializes the application configuration from viper.
func InitConfig() {
	viper.SetDefault("state_dir", ".tagforge")
	viper.SetDefault("folder_scheme", "%date% - %venue% - %city% [%format%] [%additional%]")
	viper.SetDefault("saving_scheme", "%artist%/$year(%date%)")
	viper.SetDefault("known_formats", []string{
		"FLAC24", "FLAC16", "FLAC", "MP3", "MP4", "WAV", "MKV", "MOV",
	})
	viper.SetDefault("known_sources", []string{"SBD", "AUD", "FM", "SOFT", "MTX", "DAT"})
	viper.SetDefault("known_additional", []string{"Remastered", "Bootleg", "5.1"})

	AppConfig = Config{
		InboxDir:        viper.GetString("inbox_dir"),
		ArchiveRoot:     viper.GetString("archive_root"),
		AssetsDir:       viper.GetString("assets_dir"),
		StateDir:        viper.GetString("state_dir"),
		FolderScheme:    viper.GetString("folder_scheme"),
		SavingScheme:    viper.GetString("saving_scheme"),
		KnownFormats:    viper.GetStringSlice("known_formats"),
		KnownSources:    viper.GetStringSlice("known_sources"),
		KnownAdditional: viper.GetStringSlice("known_additional"),
		SupportedExtensions: []string{
			".flac", ".mp3", ".m4a", ".ogg", ".wav",
		},
	}

	if AppConfig.AssetsDir == "" {
		AppConfig.AssetsDir = filepath.Join(AppConfig.StateDir, "assets")
	}
}

// HistoryPath is where the pebble session-state store lives.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.StateDir, "history")
}

// PresetPath is the scheme preset YAML file.
func (c *Config) PresetPath() string {
	return filepath.Join(c.StateDir, "presets.yaml")
}
