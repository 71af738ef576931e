// file: internal/scheme/presets.go
// version: 1.0.0
// guid: 8f90a1b2-c3d4-e5f6-0718-293a4b5c6d7e

package scheme

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset is a named pair of scheme strings.
type Preset struct {
	FolderScheme string `yaml:"folder_scheme"`
	SavingScheme string `yaml:"saving_scheme"`
}

// DefaultPresetName is created on first use so a fresh install always has a
// working pair.
const DefaultPresetName = "Default"

var defaultPreset = Preset{
	FolderScheme: "%date% - %venue% - %city% [%format%] [%additional%]",
	SavingScheme: "%artist%/$year(%date%)",
}

// PresetStore persists presets to a single YAML file.
type PresetStore struct {
	path string
}

// NewPresetStore opens (and seeds, if missing) the preset file at path.
func NewPresetStore(path string) (*PresetStore, error) {
	s := &PresetStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.saveAll(map[string]Preset{DefaultPresetName: defaultPreset}); err != nil {
			return nil, fmt.Errorf("failed to seed preset file: %w", err)
		}
		log.Printf("[INFO] presets: created %s with default preset", path)
	}
	return s, nil
}

// Load returns all stored presets.
func (s *PresetStore) Load() (map[string]Preset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Preset{}, nil
		}
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	presets := map[string]Preset{}
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse preset file: %w", err)
	}
	return presets, nil
}

// Names returns the stored preset names, sorted.
func (s *PresetStore) Names() ([]string, error) {
	presets, err := s.Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Get returns one preset by name.
func (s *PresetStore) Get(name string) (Preset, bool, error) {
	presets, err := s.Load()
	if err != nil {
		return Preset{}, false, err
	}
	p, ok := presets[name]
	return p, ok, nil
}

// Save adds or replaces a named preset.
func (s *PresetStore) Save(name string, p Preset) error {
	presets, err := s.Load()
	if err != nil {
		return err
	}
	presets[name] = p
	return s.saveAll(presets)
}

// Delete removes a named preset. Deleting a missing preset is a no-op.
func (s *PresetStore) Delete(name string) error {
	presets, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := presets[name]; !ok {
		return nil
	}
	delete(presets, name)
	return s.saveAll(presets)
}

// FindMatching returns the name of the preset whose pair equals the given
// schemes. A live pair with no match is "custom": the user has edited the
// text away from every stored preset.
func (s *PresetStore) FindMatching(folderScheme, savingScheme string) (string, bool, error) {
	presets, err := s.Load()
	if err != nil {
		return "", false, err
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := presets[name]
		if p.FolderScheme == folderScheme && p.SavingScheme == savingScheme {
			return name, true, nil
		}
	}
	return "", false, nil
}

func (s *PresetStore) saveAll(presets map[string]Preset) error {
	data, err := yaml.Marshal(presets)
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}
	return nil
}
