// Package config provides configuration management for aimp2m3u.
//
// This package handles:
//   - Loading and saving settings from JSON or TOML files
//   - Default configuration values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Playlists go to <common song folder>/Playlists
//	// Plain M3U, no tag reading
//	// Song lookups use a per-folder index
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// A TOML file looks like:
//
//	output_dir = "D:\\Playlists"
//	m3u_extended = true
//	read_tags = true
//
// # Saving Settings
//
//	settings.OutputDir = "/music/Playlists"
//	err := settings.Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Output directory and playlists folder name
//   - Extended M3U and ID3 tag reading
//   - Song lookup indexing and concurrency limits
//   - Confirmation prompt and verbose output
package config
