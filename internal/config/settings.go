package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	OutputDir        string `json:"output_dir" toml:"output_dir"`
	PlaylistsDirName string `json:"playlists_dir_name" toml:"playlists_dir_name"`

	// Playlist settings
	M3UExtended bool `json:"m3u_extended" toml:"m3u_extended"`
	ReadTags    bool `json:"read_tags" toml:"read_tags"`

	// Song lookup settings
	UseIndex                 bool `json:"use_index" toml:"use_index"`
	MaxConcurrentConversions int  `json:"max_concurrent_conversions" toml:"max_concurrent_conversions"`
	MaxConcurrentIndexing    int  `json:"max_concurrent_indexing" toml:"max_concurrent_indexing"`

	// Interaction settings
	AssumeYes bool `json:"assume_yes" toml:"assume_yes"`
	Verbose   bool `json:"verbose" toml:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:        "",
		PlaylistsDirName: "Playlists",

		M3UExtended: false,
		ReadTags:    false,

		UseIndex:                 true,
		MaxConcurrentConversions: 2,
		MaxConcurrentIndexing:    4,

		AssumeYes: false,
		Verbose:   false,
	}
}

// Load reads settings from a JSON or TOML file.
//
// Files ending in ".toml" are decoded as TOML, anything else as JSON.
// Keys missing from the file keep their default values. A missing file
// yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON or TOML file, depending on its extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(s)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
