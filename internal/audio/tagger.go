package audio

import (
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/aimp2m3u/internal/model"
)

// lengthFrameID is the ID3v2 frame holding the track length in milliseconds.
const lengthFrameID = "TLEN"

// TagInfo holds the ID3 metadata read from a song file.
type TagInfo struct {
	Title  string
	Artist string
	Album  string

	// Duration is the track length in seconds, or UnknownDuration.
	Duration int
}

// TagReader reads ID3v2 tags from song files.
//
// AIMP stores title, artist and album in the playlist, but some entries
// are empty (files added before tagging) and the length is not stored at
// all. TagReader fills those gaps from the file itself.
//
// Example:
//
//	reader := NewTagReader()
//	info, err := reader.ReadTags(song.Location)
//	if err != nil {
//	    log.Printf("Failed to read tags of %s: %v", song.Location, err)
//	}
type TagReader struct{}

// NewTagReader creates a new TagReader.
func NewTagReader() *TagReader {
	return &TagReader{}
}

// ReadTags reads title, artist, album and length from the file at path.
//
// Files without an ID3v2 tag return empty fields and UnknownDuration.
// Returns an error if the file cannot be opened or its tag is corrupt.
func (r *TagReader) ReadTags(path string) (TagInfo, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return TagInfo{Duration: UnknownDuration}, err
	}
	defer tag.Close()

	info := TagInfo{
		Title:    strings.TrimSpace(tag.Title()),
		Artist:   strings.TrimSpace(tag.Artist()),
		Album:    strings.TrimSpace(tag.Album()),
		Duration: UnknownDuration,
	}

	if length := tag.GetTextFrame(lengthFrameID).Text; length != "" {
		if ms, err := strconv.Atoi(strings.TrimSpace(length)); err == nil && ms > 0 {
			info.Duration = ms / 1000
		}
	}

	return info, nil
}

// FillSong sets the empty title, artist and album of song from info.
// Fields already present in the playlist are kept.
func FillSong(song *model.Song, info TagInfo) {
	if song.Title == "" {
		song.Title = info.Title
	}
	if song.Artist == "" {
		song.Artist = info.Artist
	}
	if song.Album == "" {
		song.Album = info.Album
	}
}
