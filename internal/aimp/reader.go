package aimp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/handiism/aimp2m3u/internal/model"
)

// Extension is the file extension of AIMP4 playlists, including the dot.
const Extension = ".aimppl4"

// CheckExtension returns ErrUnsupportedFormat unless path ends with
// ".aimppl4". The comparison is case-sensitive.
func CheckExtension(path string) error {
	if !strings.HasSuffix(path, Extension) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// ReadLines reads a UTF-16 playlist file and returns its lines.
//
// Returns an error matching ErrSourceFileMissing if the file cannot be
// opened.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceFileMissing, err)
	}
	defer f.Close()

	return DecodeLines(f)
}

// DecodeLines decodes UTF-16 text and splits it into lines.
//
// A byte order mark selects the endianness; without one, little-endian is
// assumed as written by AIMP on Windows. "\r\n", "\n" and "\r" all end a
// line, and a trailing line break does not produce an empty last line.
//
// Input that is not valid UTF-16 (an odd number of bytes or an unpaired
// surrogate) returns an error matching ErrMalformedPlaylist.
func DecodeLines(r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading: %w", ErrMalformedPlaylist, err)
	}

	if err := validateUTF16(raw); err != nil {
		return nil, fmt.Errorf("%w: decoding UTF-16: %w", ErrMalformedPlaylist, err)
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	data, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding UTF-16: %w", ErrMalformedPlaylist, err)
	}

	return splitLines(string(data)), nil
}

// validateUTF16 checks raw for an even length and paired surrogates. The
// x/text decoder replaces both with U+FFFD instead of failing.
func validateUTF16(raw []byte) error {
	bigEndian := false
	switch {
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		bigEndian = true
		raw = raw[2:]
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		raw = raw[2:]
	}

	if len(raw)%2 != 0 {
		return fmt.Errorf("truncated data: odd byte count %d", len(raw))
	}

	unit := func(i int) rune {
		if bigEndian {
			return rune(raw[i])<<8 | rune(raw[i+1])
		}
		return rune(raw[i+1])<<8 | rune(raw[i])
	}

	for i := 0; i < len(raw); i += 2 {
		u := unit(i)
		if !utf16.IsSurrogate(u) {
			continue
		}
		if i+2 >= len(raw) || utf16.DecodeRune(u, unit(i+2)) == utf8.RuneError {
			return fmt.Errorf("unpaired surrogate 0x%04X at byte %d", u, i)
		}
		i += 2
	}

	return nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// ParseFile checks the extension of path, reads it and parses it.
func (p *Parser) ParseFile(ctx context.Context, path string) (*model.SourcePlaylist, error) {
	if err := CheckExtension(path); err != nil {
		return nil, err
	}

	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}

	return p.Parse(ctx, lines)
}
