package model

import (
	"errors"
	"strings"
	"testing"
)

func windowsSongs(paths ...string) []*Song {
	songs := make([]*Song, len(paths))
	for i, p := range paths {
		songs[i] = NewSong(p, "Title", "Artist", "Album")
	}
	return songs
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`C:\Music\Sub\track.mp3`, "track.mp3"},
		{"/music/sub/track.mp3", "track.mp3"},
		{`..\Music/track.mp3`, "track.mp3"},
		{"track.mp3", "track.mp3"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := BaseName(tt.input); got != tt.want {
				t.Errorf("BaseName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSong_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		song *Song
		want string
	}{
		{"artist and title", NewSong("/m/a.mp3", "Title", "Artist", ""), "Artist - Title"},
		{"title only", NewSong("/m/a.mp3", "Title", "", ""), "Title"},
		{"artist only", NewSong("/m/a.mp3", "", "Artist", ""), "Artist"},
		{"file name fallback", NewSong(`C:\m\a.mp3`, "", "", ""), "a.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.song.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummary_SetGet(t *testing.T) {
	var s Summary
	s.Set("ID", "{1234}")
	s.Set("Name", "First")
	s.Set("Name", "MyMix")
	s.Set("ID", "{5678}")

	if s.Name != "MyMix" {
		t.Errorf("Name = %q, want %q", s.Name, "MyMix")
	}
	if got, _ := s.Get("ID"); got != "{5678}" {
		t.Errorf("Get(ID) = %q, want %q", got, "{5678}")
	}
	if _, ok := s.Extra["Name"]; ok {
		t.Error("Name should not be stored in Extra")
	}
	if _, ok := s.Get("Missing"); ok {
		t.Error("Get(Missing) should report false")
	}
}

func TestSourcePlaylist_ToM3U(t *testing.T) {
	source := &SourcePlaylist{Songs: windowsSongs(`C:\Music\a.mp3`)}

	if _, err := source.ToM3U(); !errors.Is(err, ErrMissingName) {
		t.Fatalf("ToM3U() error = %v, want ErrMissingName", err)
	}
	if _, err := source.ToM3U(); !errors.Is(err, ErrMalformedPlaylist) {
		t.Fatalf("ToM3U() error should wrap ErrMalformedPlaylist, got %v", err)
	}

	source.Summary.Set("Name", "MyMix")
	playlist, err := source.ToM3U()
	if err != nil {
		t.Fatalf("ToM3U() error = %v", err)
	}
	if playlist.Filename != "MyMix.m3u" {
		t.Errorf("Filename = %q, want %q", playlist.Filename, "MyMix.m3u")
	}
	if len(playlist.Songs) != 1 {
		t.Errorf("len(Songs) = %d, want 1", len(playlist.Songs))
	}
}

func TestFindCommonPrefix(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{
			name:  "shared music folder",
			paths: []string{`C:\Music\Sub\track.mp3`, `C:\Music\Other\song.mp3`},
			want:  `C:\Music\`,
		},
		{
			name:  "stops at first divergence",
			paths: []string{`a\b\c\d\x.mp3`, `a\b\c\e\x.mp3`, `a\b\c\d\y.mp3`},
			want:  `a\b\c\`,
		},
		{
			name:  "divergence before a later match",
			paths: []string{`C:\One\Same\a.mp3`, `C:\Two\Same\b.mp3`},
			want:  `C:\`,
		},
		{
			name:  "single song is its directory",
			paths: []string{`C:\Music\Sub\track.mp3`},
			want:  `C:\Music\Sub\`,
		},
		{
			name:  "identical songs keep the file name",
			paths: []string{`C:\Music\a.mp3`, `C:\Music\a.mp3`},
			want:  `C:\Music\`,
		},
		{
			name:  "nothing shared",
			paths: []string{`C:\Music\a.mp3`, `D:\Music\b.mp3`},
			want:  "",
		},
		{
			name:  "bare file names",
			paths: []string{"a.mp3", "b.mp3"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindCommonPrefix(windowsSongs(tt.paths...), '\\')
			if err != nil {
				t.Fatalf("FindCommonPrefix() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindCommonPrefix() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindCommonPrefix_POSIX(t *testing.T) {
	songs := windowsSongs("/home/user/Music/a/x.mp3", "/home/user/Music/b/y.mp3")

	got, err := FindCommonPrefix(songs, '/')
	if err != nil {
		t.Fatalf("FindCommonPrefix() error = %v", err)
	}
	if got != "/home/user/Music/" {
		t.Errorf("FindCommonPrefix() = %q, want %q", got, "/home/user/Music/")
	}
}

func TestFindCommonPrefix_Preconditions(t *testing.T) {
	if _, err := FindCommonPrefix(nil, '\\'); !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("empty playlist error = %v, want ErrEmptyPlaylist", err)
	}

	songs := windowsSongs(`C:\Music\a.mp3`, "")
	if _, err := FindCommonPrefix(songs, '\\'); !errors.Is(err, ErrEmptySongPath) {
		t.Errorf("empty path error = %v, want ErrEmptySongPath", err)
	}
}

func TestM3UPlaylist_Normalize(t *testing.T) {
	playlist := NewM3UPlaylist("MyMix", windowsSongs(
		`C:\Music\Sub\track.mp3`,
		`C:\Music\Other\song.mp3`,
	))
	playlist.Separator = '\\'

	if _, ok := playlist.CommonPath(); ok {
		t.Fatal("CommonPath() should not be set before Normalize")
	}

	if err := playlist.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	common, ok := playlist.CommonPath()
	if !ok || common != `C:\Music\` {
		t.Errorf("CommonPath() = %q, %v, want %q", common, ok, `C:\Music\`)
	}

	want := []string{"Sub/track.mp3", "Other/song.mp3"}
	for i, got := range playlist.Paths() {
		if got != want[i] {
			t.Errorf("Songs[%d].Path = %q, want %q", i, got, want[i])
		}
	}

	if playlist.Songs[0].Location != `C:\Music\Sub\track.mp3` {
		t.Errorf("Location should not change, got %q", playlist.Songs[0].Location)
	}
}

func TestM3UPlaylist_NormalizeEscapes(t *testing.T) {
	playlist := NewM3UPlaylist("Mix", windowsSongs(
		`..\..\Music\Sub\a.mp3`,
		`..\..\Music\Other\b.mp3`,
	))
	playlist.Separator = '\\'

	if err := playlist.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	for _, path := range playlist.Paths() {
		if strings.Contains(path, "..") {
			t.Errorf("path %q still contains an escape token", path)
		}
		if strings.Contains(path, `\`) {
			t.Errorf("path %q still contains a backslash", path)
		}
	}
}

func TestM3UPlaylist_NormalizeIdempotent(t *testing.T) {
	playlist := NewM3UPlaylist("Mix", windowsSongs(
		"/music/rock/a/x.mp3",
		"/music/rock/a/y.mp3",
		"/music/rock/b/z.mp3",
	))
	playlist.Separator = '/'

	if err := playlist.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	first := playlist.Paths()

	if err := playlist.Normalize(); err != nil {
		t.Fatalf("second Normalize() error = %v", err)
	}
	second := playlist.Paths()

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Songs[%d].Path changed from %q to %q", i, first[i], second[i])
		}
	}
	if first[0] != "a/x.mp3" {
		t.Errorf("Songs[0].Path = %q, want %q", first[0], "a/x.mp3")
	}
}

func TestM3UPlaylist_NormalizeEmpty(t *testing.T) {
	playlist := NewM3UPlaylist("Empty", nil)
	if err := playlist.Normalize(); !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("Normalize() error = %v, want ErrEmptyPlaylist", err)
	}
}
