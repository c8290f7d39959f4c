package aimp

import (
	"context"
	"fmt"
	"strings"

	"github.com/handiism/aimp2m3u/internal/library"
	"github.com/handiism/aimp2m3u/internal/model"
)

const (
	summaryMarker = "SUMMARY"
	contentMarker = "CONTENT"

	// rootPrefix starts a content line that sets the search root.
	rootPrefix = "-"

	fieldSeparator = "|"
	minSongFields  = 4
)

// section is the playlist section the parser is currently in.
type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionContent
)

// Parser turns the lines of an AIMP4 playlist into a SourcePlaylist.
//
// Every song record is resolved to a real file through the Resolver. The
// same Parser can be reused for several playlists; with a library.Index the
// directory walks are shared between them.
//
// Example:
//
//	parser := NewParser(library.NewWalker())
//	playlist, err := parser.Parse(ctx, lines)
type Parser struct {
	resolver library.Resolver
	onSong   func(song *model.Song)
}

// NewParser creates a new Parser using the given resolver.
func NewParser(resolver library.Resolver) *Parser {
	return &Parser{resolver: resolver}
}

// SetOnSong sets a callback invoked after each song has been resolved.
func (p *Parser) SetOnSong(callback func(song *model.Song)) {
	p.onSong = callback
}

// parseState is the context threaded through the line parser.
type parseState struct {
	section  section
	root     string
	hasRoot  bool
	lineNo   int
	playlist *model.SourcePlaylist
}

// Parse parses the playlist lines.
//
// Lines containing "SUMMARY" or "CONTENT" switch sections. In the summary,
// lines with exactly one "=" become entries and anything else is skipped.
// In the content, "-<path>" sets the search root and every other non-blank
// line is a song record "path|title|artist|album|...".
//
// Returns an error matching ErrMalformedPlaylist for a song record before
// any search root or with fewer than four fields, and an error matching
// ErrSongNotFound when a song cannot be located. No playlist is returned
// on error.
func (p *Parser) Parse(ctx context.Context, lines []string) (*model.SourcePlaylist, error) {
	state := &parseState{playlist: &model.SourcePlaylist{}}

	for i, line := range lines {
		state.lineNo = i + 1
		if err := p.parseLine(ctx, state, line); err != nil {
			return nil, err
		}
	}

	return state.playlist, nil
}

func (p *Parser) parseLine(ctx context.Context, state *parseState, line string) error {
	if s, ok := sectionMarker(line); ok {
		state.section = s
		return nil
	}

	switch state.section {
	case sectionSummary:
		parseSummaryLine(&state.playlist.Summary, line)
	case sectionContent:
		return p.parseContentLine(ctx, state, line)
	}

	return nil
}

// sectionMarker reports whether line starts a new section.
func sectionMarker(line string) (section, bool) {
	switch {
	case strings.Contains(line, summaryMarker):
		return sectionSummary, true
	case strings.Contains(line, contentMarker):
		return sectionContent, true
	}
	return sectionNone, false
}

func parseSummaryLine(summary *model.Summary, line string) {
	if strings.Count(line, "=") != 1 {
		return
	}
	key, value, _ := strings.Cut(line, "=")
	summary.Set(key, value)
}

func (p *Parser) parseContentLine(ctx context.Context, state *parseState, line string) error {
	if root, ok := strings.CutPrefix(line, rootPrefix); ok {
		state.root = root
		state.hasRoot = true
		return nil
	}

	if strings.TrimSpace(line) == "" {
		return nil
	}

	if !state.hasRoot {
		return fmt.Errorf("%w: line %d: song listed before any root path", ErrMalformedPlaylist, state.lineNo)
	}

	fields := strings.Split(line, fieldSeparator)
	if len(fields) < minSongFields {
		return fmt.Errorf("%w: line %d: expected at least %d fields, got %d",
			ErrMalformedPlaylist, state.lineNo, minSongFields, len(fields))
	}

	name := model.BaseName(fields[0])
	if name == "" {
		return fmt.Errorf("%w: line %d: song has no file name", ErrMalformedPlaylist, state.lineNo)
	}

	path, err := p.resolver.Resolve(ctx, state.root, name)
	if err != nil {
		return fmt.Errorf("line %d: %w", state.lineNo, err)
	}

	song := model.NewSong(path, fields[1], fields[2], fields[3])
	state.playlist.Songs = append(state.playlist.Songs, song)

	if p.onSong != nil {
		p.onSong(song)
	}

	return nil
}

// Scan reports the search roots (in order of first appearance) and the
// number of song records of a playlist without resolving anything.
//
// It is used to prebuild indexes and to size progress reporting before the
// actual parse.
func Scan(lines []string) (roots []string, songs int) {
	current := sectionNone
	seen := make(map[string]bool)

	for _, line := range lines {
		if s, ok := sectionMarker(line); ok {
			current = s
			continue
		}
		if current != sectionContent {
			continue
		}
		if root, ok := strings.CutPrefix(line, rootPrefix); ok {
			if !seen[root] {
				seen[root] = true
				roots = append(roots, root)
			}
			continue
		}
		if strings.TrimSpace(line) != "" {
			songs++
		}
	}

	return roots, songs
}
