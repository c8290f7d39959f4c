// Package audio renders M3U playlists and reads ID3 tags from song files.
//
// # Playlist Rendering
//
// PlaylistCreator turns a normalized M3UPlaylist into file content:
//
//	creator := audio.NewPlaylistCreator(false)
//	content := creator.CreatePlaylist(playlist)
//	os.WriteFile("MyMix.m3u", []byte(content), 0644)
//
// The plain format lists one path per line with no header and no trailing
// newline. The extended format (NewPlaylistCreator(true)) starts with
// #EXTM3U and writes an #EXTINF line with length and "Artist - Title"
// before every path.
//
// # ID3 Tags
//
// TagReader reads title, artist, album and length (TLEN) from a song file:
//
//	info, err := audio.NewTagReader().ReadTags(song.Location)
//	audio.FillSong(song, info) // only fills empty fields
package audio
