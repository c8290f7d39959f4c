package aimp

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/handiism/aimp2m3u/internal/library"
	"github.com/handiism/aimp2m3u/internal/model"
)

// musicLibrary creates a small library below a temporary directory.
func musicLibrary(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	for _, f := range []string{"Sub/track.mp3", "Other/song.mp3", "Other/Live/live.flac"} {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	}
	return root
}

func encodeUTF16(t *testing.T, text string, order unicode.Endianness) []byte {
	t.Helper()

	encoded, err := unicode.UTF16(order, unicode.UseBOM).NewEncoder().String(text)
	require.NoError(t, err)
	return []byte(encoded)
}

func playlistLines(root string) []string {
	return []string{
		"#-----SUMMARY-----#",
		"ID={C3F0DB5F-6D7F-4B36-BE1B-25C7A7C8B1B1}",
		"Name=MyMix",
		"",
		"#-----SETTINGS-----#",
		"Flags=2047",
		"#-----CONTENT-----#",
		"-" + root,
		`C:\Old\Place\track.mp3|Title|Artist|Album|1|2|3`,
		`song.mp3|Song|Someone|Record`,
		"",
	}
}

type recordingResolver struct {
	calls [][2]string
	err   error
}

func (r *recordingResolver) Resolve(_ context.Context, root, name string) (string, error) {
	r.calls = append(r.calls, [2]string{root, name})
	if r.err != nil {
		return "", r.err
	}
	return root + "/" + name, nil
}

func TestParser_Parse(t *testing.T) {
	root := musicLibrary(t)
	parser := NewParser(library.NewWalker())

	playlist, err := parser.Parse(context.Background(), playlistLines(root))
	require.NoError(t, err)

	assert.Equal(t, "MyMix", playlist.Summary.Name)
	assert.Equal(t, "{C3F0DB5F-6D7F-4B36-BE1B-25C7A7C8B1B1}", playlist.Summary.Extra["ID"])
	assert.Equal(t, "2047", playlist.Summary.Extra["Flags"])

	require.Len(t, playlist.Songs, 2)

	first := playlist.Songs[0]
	assert.Equal(t, filepath.Join(root, "Sub", "track.mp3"), first.Path)
	assert.Equal(t, first.Path, first.Location)
	assert.Equal(t, "Title", first.Title)
	assert.Equal(t, "Artist", first.Artist)
	assert.Equal(t, "Album", first.Album)

	second := playlist.Songs[1]
	assert.Equal(t, filepath.Join(root, "Other", "song.mp3"), second.Path)
	assert.Equal(t, "Record", second.Album)
}

func TestParser_SummaryRules(t *testing.T) {
	parser := NewParser(&recordingResolver{})

	playlist, err := parser.Parse(context.Background(), []string{
		"Name=Ignored before any section",
		"#-----SUMMARY-----#",
		"Name=First",
		"no separator here",
		"Formula=a=b",
		"=empty key",
		"Name=Second",
	})
	require.NoError(t, err)

	assert.Equal(t, "Second", playlist.Summary.Name)
	assert.NotContains(t, playlist.Summary.Extra, "Formula")
	assert.Equal(t, "empty key", playlist.Summary.Extra[""])
	assert.Empty(t, playlist.Songs)
}

func TestParser_RootPathContext(t *testing.T) {
	resolver := &recordingResolver{}
	parser := NewParser(resolver)

	_, err := parser.Parse(context.Background(), []string{
		"#-----CONTENT-----#",
		`-C:\Music\`,
		`a.mp3|A|B|C`,
		`-D:\Podcasts\`,
		`D:\x\b.mp3|A|B|C`,
		`other/c.mp3|A|B|C`,
	})
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{`C:\Music\`, "a.mp3"},
		{`D:\Podcasts\`, "b.mp3"},
		{`D:\Podcasts\`, "c.mp3"},
	}, resolver.calls)
}

func TestParser_MalformedContent(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{
			name:  "song before root path",
			lines: []string{"#-----CONTENT-----#", "a.mp3|Title|Artist|Album"},
		},
		{
			name:  "too few fields",
			lines: []string{"#-----CONTENT-----#", "-/music", "a.mp3|Title|Artist"},
		},
		{
			name:  "no file name",
			lines: []string{"#-----CONTENT-----#", "-/music", `C:\Music\|Title|Artist|Album`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &recordingResolver{}
			playlist, err := NewParser(resolver).Parse(context.Background(), tt.lines)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedPlaylist))
			assert.Nil(t, playlist)
			assert.Empty(t, resolver.calls)
		})
	}
}

func TestParser_SongNotFoundAbortsParse(t *testing.T) {
	root := musicLibrary(t)
	lines := []string{
		"#-----SUMMARY-----#",
		"Name=Broken",
		"#-----CONTENT-----#",
		"-" + root,
		"track.mp3|A|B|C",
		"missing.mp3|A|B|C",
		"song.mp3|A|B|C",
	}

	var resolved int
	parser := NewParser(library.NewWalker())
	parser.SetOnSong(func(*model.Song) { resolved++ })

	playlist, err := parser.Parse(context.Background(), lines)
	require.Error(t, err)
	assert.Nil(t, playlist)
	assert.True(t, errors.Is(err, ErrSongNotFound))
	assert.Contains(t, err.Error(), "line 6")
	assert.Equal(t, 1, resolved)

	var nf *library.SongNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing.mp3", nf.Name)
	assert.Equal(t, root, nf.Root)
}

func TestParser_OnSong(t *testing.T) {
	root := musicLibrary(t)
	parser := NewParser(library.NewIndex())

	var names []string
	parser.SetOnSong(func(song *model.Song) {
		names = append(names, filepath.Base(song.Path))
	})

	_, err := parser.Parse(context.Background(), playlistLines(root))
	require.NoError(t, err)
	assert.Equal(t, []string{"track.mp3", "song.mp3"}, names)
}

func TestScan(t *testing.T) {
	roots, songs := Scan([]string{
		"#-----SUMMARY-----#",
		"-not a root",
		"#-----CONTENT-----#",
		`-C:\Music\`,
		"a.mp3|A|B|C",
		"",
		`-D:\Other\`,
		"b.mp3|A|B|C",
		`-C:\Music\`,
		"c.mp3|A|B|C",
	})

	assert.Equal(t, []string{`C:\Music\`, `D:\Other\`}, roots)
	assert.Equal(t, 3, songs)
}

func TestCheckExtension(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"MyMix.aimppl4", false},
		{"/playlists/My Mix.aimppl4", false},
		{"MyMix.m3u", true},
		{"MyMix.AIMPPL4", true},
		{"MyMix.aimppl4.bak", true},
		{"MyMix.aimppl", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := CheckExtension(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeLines(t *testing.T) {
	text := "#-----SUMMARY-----#\r\nName=Mix – Ünïcödé\r\n#-----CONTENT-----#\r\n"

	for name, order := range map[string]unicode.Endianness{
		"little endian": unicode.LittleEndian,
		"big endian":    unicode.BigEndian,
	} {
		t.Run(name, func(t *testing.T) {
			lines, err := DecodeLines(bytes.NewReader(encodeUTF16(t, text, order)))
			require.NoError(t, err)
			assert.Equal(t, []string{
				"#-----SUMMARY-----#",
				"Name=Mix – Ünïcödé",
				"#-----CONTENT-----#",
			}, lines)
		})
	}
}

func TestDecodeLines_InvalidUTF16(t *testing.T) {
	bom := []byte{0xFF, 0xFE}
	le := func(units ...uint16) []byte {
		var b []byte
		for _, u := range units {
			b = append(b, byte(u), byte(u>>8))
		}
		return b
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated after text", append(append(bom, le('N', 'a', 'm', 'e', '=', 'X')...), 0x41)},
		{"truncated without BOM", []byte{0x41, 0x00, 0x42}},
		{"lone high surrogate", append(bom, le('A', 0xD800, 'B')...)},
		{"high surrogate at end", append(bom, le('A', 0xD800)...)},
		{"lone low surrogate", append(bom, le('A', 0xDC00, 'B')...)},
		{"big endian lone surrogate", []byte{0xFE, 0xFF, 0x00, 'A', 0xD8, 0x00, 0x00, 'B'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := DecodeLines(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, ErrMalformedPlaylist)
			assert.Nil(t, lines)
		})
	}
}

func TestDecodeLines_SurrogatePair(t *testing.T) {
	lines, err := DecodeLines(bytes.NewReader(encodeUTF16(t, "Name=Mix 🎵\r\n", unicode.LittleEndian)))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name=Mix 🎵"}, lines)
}

func TestParser_ParseFile_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Broken.aimppl4")
	data := encodeUTF16(t, "#-----SUMMARY-----#\r\nName=X", unicode.LittleEndian)
	require.NoError(t, os.WriteFile(path, append(data, 0x41), 0o644))

	_, err := NewParser(&recordingResolver{}).ParseFile(context.Background(), path)
	assert.ErrorIs(t, err, ErrMalformedPlaylist)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb\n"))
	assert.Equal(t, []string{"a", "b", "c"}, splitLines("a\r\nb\rc"))
}

func TestParser_ParseFile(t *testing.T) {
	root := musicLibrary(t)
	dir := t.TempDir()
	parser := NewParser(library.NewIndex())

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "MyMix.aimppl4")
		text := strings.Join(playlistLines(root), "\r\n")
		require.NoError(t, os.WriteFile(path, encodeUTF16(t, text, unicode.LittleEndian), 0o644))

		playlist, err := parser.ParseFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "MyMix", playlist.Summary.Name)
		assert.Len(t, playlist.Songs, 2)
	})

	t.Run("wrong extension is rejected before reading", func(t *testing.T) {
		path := filepath.Join(dir, "does-not-exist.m3u")

		_, err := parser.ParseFile(context.Background(), path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.NotErrorIs(t, err, ErrSourceFileMissing)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "missing.aimppl4")

		_, err := parser.ParseFile(context.Background(), path)
		assert.ErrorIs(t, err, ErrSourceFileMissing)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
