// Package ioutils provides file system utilities for aimp2m3u.
//
// This package contains functions for:
//   - Playlist writing
//   - Directory creation
//   - Output location defaults
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPlaylistsDir is the folder created next to the songs when no output
// directory is given.
const DefaultPlaylistsDir = "Playlists"

// ErrWriteFailure is returned when a playlist cannot be written.
// The underlying error is kept and can be inspected with errors.Is/As.
var ErrWriteFailure = errors.New("couldn't write playlist")

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. Nothing is written when ctx is already
// cancelled.
//
// Returns an error matching ErrWriteFailure that also wraps the cause.
//
// Example:
//
//	err := WriteFile(ctx, "/music/Playlists/MyMix.m3u", []byte("Sub/track.mp3"))
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w to %s: %w", ErrWriteFailure, path, err)
	}
	return nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned. Failures match
// ErrWriteFailure.
//
// Example:
//
//	err := EnsureDir("/music/Playlists")
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrWriteFailure, path, err)
	}
	return nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// OutputDir returns the directory a playlist is written to.
//
// An explicit outputDir wins. Otherwise the playlists folder (dirName, or
// DefaultPlaylistsDir when empty) inside the songs' common path is used.
//
// Example:
//
//	OutputDir("", "/music/", "")        // "/music/Playlists"
//	OutputDir("/tmp/out", "/music/", "") // "/tmp/out"
func OutputDir(outputDir, commonPath, dirName string) string {
	if outputDir != "" {
		return outputDir
	}
	if dirName == "" {
		dirName = DefaultPlaylistsDir
	}
	return filepath.Join(commonPath, dirName)
}
