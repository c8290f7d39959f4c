package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/aimp2m3u/internal/model"
)

// UnknownDuration is written in #EXTINF lines when a song's length is not known.
const UnknownDuration = -1

// PlaylistCreator renders M3U playlists.
//
// The plain format is just the song paths, one per line, without a trailing
// newline. The extended format adds a #EXTM3U header and an #EXTINF line
// before every path.
//
// Example:
//
//	creator := NewPlaylistCreator(false)
//	content := creator.CreatePlaylist(playlist)
//
//	// Result:
//	// Sub/track.mp3
//	// Other/song.mp3
type PlaylistCreator struct {
	extended  bool // include #EXTM3U/#EXTINF lines
	durations map[*model.Song]int
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - extended: whether to write the extended M3U header and #EXTINF lines
func NewPlaylistCreator(extended bool) *PlaylistCreator {
	return &PlaylistCreator{extended: extended}
}

// Extended reports whether the creator writes extended M3U.
func (p *PlaylistCreator) Extended() bool {
	return p.extended
}

// SetDuration records the length in seconds of a song for #EXTINF lines.
func (p *PlaylistCreator) SetDuration(song *model.Song, seconds int) {
	if p.durations == nil {
		p.durations = make(map[*model.Song]int)
	}
	p.durations[song] = seconds
}

// CreatePlaylist renders the playlist.
//
// Song paths are written as they are, so the playlist should be normalized
// first.
func (p *PlaylistCreator) CreatePlaylist(playlist *model.M3UPlaylist) string {
	if p.extended {
		return p.createExtendedM3U(playlist)
	}
	return strings.Join(playlist.Paths(), "\n")
}

// createExtendedM3U generates an extended M3U playlist:
//
//	#EXTM3U
//	#EXTINF:180,Artist - Title
//	Sub/track.mp3
func (p *PlaylistCreator) createExtendedM3U(playlist *model.M3UPlaylist) string {
	lines := make([]string, 0, 1+2*len(playlist.Songs))
	lines = append(lines, "#EXTM3U")

	for _, song := range playlist.Songs {
		duration, ok := p.durations[song]
		if !ok {
			duration = UnknownDuration
		}
		lines = append(lines, fmt.Sprintf("#EXTINF:%d,%s", duration, song.DisplayName()))
		lines = append(lines, song.Path)
	}

	return strings.Join(lines, "\n")
}
