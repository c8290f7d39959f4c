package model

import (
	"errors"
	"fmt"
	"path/filepath"
)

// M3UExtension is the file extension of generated playlists, including the dot.
const M3UExtension = ".m3u"

// SummaryNameKey is the summary key holding the playlist name.
const SummaryNameKey = "Name"

var (
	// ErrMalformedPlaylist is returned when a source playlist does not follow
	// the expected layout.
	ErrMalformedPlaylist = errors.New("malformed playlist")

	// ErrMissingName is returned when the summary has no Name entry.
	// It wraps ErrMalformedPlaylist.
	ErrMissingName = fmt.Errorf("%w: summary has no %s entry", ErrMalformedPlaylist, SummaryNameKey)
)

// Summary holds the key/value metadata found in the SUMMARY section of an
// AIMP playlist.
//
// Only Name is required; it is used to derive the output file name. Every
// other key is kept verbatim in Extra.
type Summary struct {
	// Name is the playlist name ("Name=" entry).
	Name string

	// Extra contains all other summary entries.
	Extra map[string]string
}

// Set stores a summary entry. Later entries overwrite earlier ones.
func (s *Summary) Set(key, value string) {
	if key == SummaryNameKey {
		s.Name = value
		return
	}
	if s.Extra == nil {
		s.Extra = make(map[string]string)
	}
	s.Extra[key] = value
}

// Get returns the value stored for key, including Name.
func (s *Summary) Get(key string) (string, bool) {
	if key == SummaryNameKey {
		return s.Name, s.Name != ""
	}
	v, ok := s.Extra[key]
	return v, ok
}

// SourcePlaylist is a parsed AIMP playlist.
//
// It is built once by the parser and not modified afterwards.
type SourcePlaylist struct {
	Summary Summary
	Songs   []*Song
}

// ToM3U creates the M3U playlist for this source playlist.
//
// The songs are shared with the returned playlist, which rewrites their
// paths during normalization. Returns ErrMissingName if the summary has no
// name.
func (p *SourcePlaylist) ToM3U() (*M3UPlaylist, error) {
	if p.Summary.Name == "" {
		return nil, ErrMissingName
	}
	return NewM3UPlaylist(p.Summary.Name, p.Songs), nil
}

// M3UPlaylist is the playlist that gets written to disk.
//
// Filename is fixed at construction. The common path is computed by the
// first call to Normalize and then used to rewrite every song path.
//
// Example:
//
//	playlist := NewM3UPlaylist("MyMix", songs)
//	if err := playlist.Normalize(); err != nil {
//	    return err
//	}
//	// playlist.Filename = "MyMix.m3u"
//	// playlist.Songs[0].Path = "Sub/track.mp3"
type M3UPlaylist struct {
	// Name is the playlist name taken from the source summary.
	Name string

	// Filename is Name with the .m3u extension.
	Filename string

	// Songs contains all songs of the playlist, in source order.
	Songs []*Song

	// Separator is the path separator used by the song paths before
	// normalization. Defaults to the host separator.
	Separator byte

	commonPath *string
}

// NewM3UPlaylist creates a new M3UPlaylist using the host path separator.
func NewM3UPlaylist(name string, songs []*Song) *M3UPlaylist {
	return &M3UPlaylist{
		Name:      name,
		Filename:  name + M3UExtension,
		Songs:     songs,
		Separator: filepath.Separator,
	}
}

// CommonPath returns the common path computed by Normalize.
// The second result is false if Normalize has not run yet.
func (p *M3UPlaylist) CommonPath() (string, bool) {
	if p.commonPath == nil {
		return "", false
	}
	return *p.commonPath, true
}

// Paths returns the current path of every song, in order.
func (p *M3UPlaylist) Paths() []string {
	paths := make([]string, len(p.Songs))
	for i, song := range p.Songs {
		paths[i] = song.Path
	}
	return paths
}
