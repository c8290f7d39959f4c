package model

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyPlaylist is returned when a common path is requested for a
	// playlist without songs.
	ErrEmptyPlaylist = errors.New("playlist has no songs")

	// ErrEmptySongPath is returned when a song has no path components.
	ErrEmptySongPath = errors.New("song has an empty path")
)

// FindCommonPrefix returns the longest directory prefix shared by all song
// paths, with a trailing separator.
//
// Paths are split on sep. The scan stops at the first component where the
// songs disagree, and the last component of each path (the file name) is
// never included, so a single song yields its own directory. If no component
// is shared, the empty string is returned.
//
// Example:
//
//	// C:\Music\Sub\a.mp3 and C:\Music\Other\b.mp3
//	prefix, _ := FindCommonPrefix(songs, '\\') // `C:\Music\`
func FindCommonPrefix(songs []*Song, sep byte) (string, error) {
	if len(songs) == 0 {
		return "", ErrEmptyPlaylist
	}

	separator := string(sep)
	parts := make([][]string, len(songs))
	minParts := -1
	for i, song := range songs {
		if song.Path == "" {
			return "", ErrEmptySongPath
		}
		parts[i] = strings.Split(song.Path, separator)
		if minParts < 0 || len(parts[i]) < minParts {
			minParts = len(parts[i])
		}
	}

	var common []string
	for i := 0; i < minParts-1; i++ {
		part := parts[0][i]
		for _, other := range parts[1:] {
			if other[i] != part {
				return joinPrefix(common, separator), nil
			}
		}
		common = append(common, part)
	}

	return joinPrefix(common, separator), nil
}

func joinPrefix(parts []string, sep string) string {
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, sep) + sep
}

// Normalize rewrites every song path relative to the playlist's common path
// using forward slashes.
//
// Steps:
//  1. Compute and store the common path (see FindCommonPrefix)
//  2. Remove every ".." + separator token, then the first occurrence of the
//     common path
//  3. Replace the remaining separators with "/"
//
// Removals are plain substring removals: a file name that happens to
// contain the common path text is rewritten as well.
//
// Only the first call does any work, so Normalize is idempotent.
func (p *M3UPlaylist) Normalize() error {
	if p.commonPath != nil {
		return nil
	}

	sep := p.Separator
	if sep == 0 {
		sep = filepath.Separator
	}

	common, err := FindCommonPrefix(p.Songs, sep)
	if err != nil {
		return err
	}
	p.commonPath = &common

	separator := string(sep)
	escape := ".." + separator
	for _, song := range p.Songs {
		path := strings.ReplaceAll(song.Path, escape, "")
		if common != "" {
			path = strings.Replace(path, common, "", 1)
		}
		song.Path = strings.ReplaceAll(path, separator, "/")
	}

	return nil
}
