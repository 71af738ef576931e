// file: internal/config/persistence.go
// version: 1.0.0
// guid: 6b7c8d9e-0f1a-2b3c-4d5e-6f7a8b9c0d1e

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFilePath returns the path to the YAML config file inside the state
// directory.
func ConfigFilePath() string {
	if AppConfig.StateDir == "" {
		return ""
	}
	return filepath.Join(AppConfig.StateDir, "config.yaml")
}

// LoadConfigFromFile fills in config values from the YAML file. File values
// only apply where flags and environment left gaps.
func LoadConfigFromFile() error {
	path := ConfigFilePath()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig map[string]any
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		log.Printf("[WARN] config: failed to parse %s: %v", path, err)
		return nil
	}

	stringFallbacks := map[string]*string{
		"inbox_dir":     &AppConfig.InboxDir,
		"archive_root":  &AppConfig.ArchiveRoot,
		"assets_dir":    &AppConfig.AssetsDir,
		"folder_scheme": &AppConfig.FolderScheme,
		"saving_scheme": &AppConfig.SavingScheme,
	}
	for key, ptr := range stringFallbacks {
		if *ptr == "" {
			if val, ok := fileConfig[key].(string); ok && val != "" {
				*ptr = val
				log.Printf("[INFO] config: loaded %s from config file", key)
			}
		}
	}

	listFallbacks := map[string]*[]string{
		"known_formats":    &AppConfig.KnownFormats,
		"known_sources":    &AppConfig.KnownSources,
		"known_additional": &AppConfig.KnownAdditional,
	}
	for key, ptr := range listFallbacks {
		raw, ok := fileConfig[key].([]any)
		if !ok || len(raw) == 0 {
			continue
		}
		var vals []string
		for _, v := range raw {
			if s, ok := v.(string); ok && s != "" {
				vals = append(vals, s)
			}
		}
		if len(vals) > 0 {
			*ptr = vals
		}
	}

	return nil
}

// SaveSchemes persists the current scheme pair to the config file, preserving
// any other keys already present.
func SaveSchemes(folderScheme, savingScheme string) error {
	path := ConfigFilePath()
	if path == "" {
		return fmt.Errorf("no state directory configured")
	}

	fileConfig := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, &fileConfig)
	}
	fileConfig["folder_scheme"] = folderScheme
	fileConfig["saving_scheme"] = savingScheme

	data, err := yaml.Marshal(fileConfig)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	AppConfig.FolderScheme = folderScheme
	AppConfig.SavingScheme = savingScheme
	return nil
}
