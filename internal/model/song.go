package model

// Song represents a single entry of a playlist.
//
// Song is created by the AIMP parser once the referenced file has been
// located on disk, then handed to an M3UPlaylist which rewrites Path in
// place during normalization.
//
// Example:
//
//	song := NewSong(`C:\Music\Sub\track.mp3`, "Title", "Artist", "Album")
//	// song.Path     = `C:\Music\Sub\track.mp3`
//	// song.Location = `C:\Music\Sub\track.mp3`
type Song struct {
	// Path is the song path as it will be written to the playlist.
	// It starts as the resolved absolute path and becomes relative to the
	// playlist's common path after normalization.
	Path string

	// Title is the track title stored in the source playlist.
	Title string

	// Artist is the track artist stored in the source playlist.
	Artist string

	// Album is the album title stored in the source playlist.
	Album string

	// Location is the resolved absolute path of the file.
	// Unlike Path, it is never rewritten.
	Location string
}

// NewSong creates a Song whose Path and Location both point to the
// resolved file.
func NewSong(path, title, artist, album string) *Song {
	return &Song{
		Path:     path,
		Title:    title,
		Artist:   artist,
		Album:    album,
		Location: path,
	}
}

// DisplayName returns "Artist - Title", falling back to whichever part is
// set, or the base name of the song's location when both are empty.
func (s *Song) DisplayName() string {
	switch {
	case s.Artist != "" && s.Title != "":
		return s.Artist + " - " + s.Title
	case s.Title != "":
		return s.Title
	case s.Artist != "":
		return s.Artist
	default:
		return BaseName(s.Location)
	}
}

// BaseName returns the last element of a path using either separator,
// so Windows paths read on other hosts behave the same.
//
//	BaseName(`C:\Music\track.mp3`) // "track.mp3"
//	BaseName("/music/track.mp3")     // "track.mp3"
func BaseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '\\' || path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
