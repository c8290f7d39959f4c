// Package model defines the core data structures used throughout
// aimp2m3u.
//
// # Song
//
// Song is a single playlist entry with the resolved file path and the
// title/artist/album stored by AIMP:
//
//	song := model.NewSong(`C:\Music\Sub\track.mp3`, "Title", "Artist", "Album")
//
// # Source Playlist
//
// SourcePlaylist is what the AIMP parser produces: a typed Summary (the
// required Name plus every other key in Extra) and the ordered songs.
//
//	m3u, err := source.ToM3U() // fails with ErrMissingName without a name
//
// # M3U Playlist
//
// M3UPlaylist holds the output file name and the songs. Normalize computes
// the common path of all songs once, strips it from every path and switches
// to forward slashes:
//
//	playlist.Separator = '\\'
//	_ = playlist.Normalize()
//	common, _ := playlist.CommonPath() // `C:\Music\`
//	// `C:\Music\Sub\track.mp3` -> "Sub/track.mp3"
package model
