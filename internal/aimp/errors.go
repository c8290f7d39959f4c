package aimp

import (
	"errors"

	"github.com/handiism/aimp2m3u/internal/library"
	"github.com/handiism/aimp2m3u/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for files without the .aimppl4 extension.
	ErrUnsupportedFormat = errors.New("not a supported playlist file (must be a aimppl4 file)")

	// ErrSourceFileMissing is returned when the playlist file cannot be opened.
	ErrSourceFileMissing = errors.New("playlist file doesn't exist")

	// ErrMalformedPlaylist is returned when the playlist content cannot be
	// parsed. It is the same error as model.ErrMalformedPlaylist.
	ErrMalformedPlaylist = model.ErrMalformedPlaylist

	// ErrSongNotFound is returned when a referenced song cannot be located.
	// It is the same error as library.ErrSongNotFound.
	ErrSongNotFound = library.ErrSongNotFound
)
