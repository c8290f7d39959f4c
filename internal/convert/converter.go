package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/aimp2m3u/internal/aimp"
	"github.com/handiism/aimp2m3u/internal/audio"
	"github.com/handiism/aimp2m3u/internal/config"
	ioutils "github.com/handiism/aimp2m3u/internal/io"
	"github.com/handiism/aimp2m3u/internal/library"
	"github.com/handiism/aimp2m3u/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a conversion progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Result is a converted playlist that has not been written yet.
type Result struct {
	// Source is the path of the AIMP playlist.
	Source string

	// Playlist is the normalized M3U playlist.
	Playlist *model.M3UPlaylist

	// Content is the rendered playlist file content.
	Content string

	// OutputDir is the directory the playlist is written to.
	OutputDir string

	// Destination is the full path of the playlist file.
	Destination string
}

// Converter converts AIMP playlists to M3U.
type Converter struct {
	settings *config.Settings
	resolver library.Resolver
	index    *library.Index
	tags     *audio.TagReader

	songsTotal    int64
	songsResolved int64

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewConverter creates a new Converter.
//
// With settings.UseIndex, song lookups share a library.Index; otherwise every
// lookup walks its folder again.
func NewConverter(settings *config.Settings, onProgress func(ProgressEvent)) *Converter {
	c := &Converter{
		settings:   settings,
		tags:       audio.NewTagReader(),
		onProgress: onProgress,
	}

	if settings.UseIndex {
		c.index = library.NewIndex()
		c.resolver = c.index
	} else {
		c.resolver = library.NewWalker()
	}

	return c
}

// Convert reads, parses, normalizes and renders one playlist.
//
// Nothing is written to disk; see Write. Any failure aborts the conversion
// and no Result is returned.
func (c *Converter) Convert(ctx context.Context, source string) (*Result, error) {
	result, err := c.convert(ctx, source)
	if err != nil && ctx.Err() == nil {
		c.progress(ProgressEvent{Message: fmt.Sprintf("Error converting %s: %v", filepath.Base(source), err), Level: LevelError})
	}
	return result, err
}

func (c *Converter) convert(ctx context.Context, source string) (*Result, error) {
	if err := aimp.CheckExtension(source); err != nil {
		return nil, err
	}

	lines, err := aimp.ReadLines(source)
	if err != nil {
		return nil, err
	}

	roots, songs := aimp.Scan(lines)
	atomic.AddInt64(&c.songsTotal, int64(songs))
	c.progress(ProgressEvent{Message: fmt.Sprintf("Reading %s (%d songs in %d folders)", filepath.Base(source), songs, len(roots)), Level: LevelInfo})

	if c.index != nil && len(roots) > 0 {
		if err := c.index.Prebuild(ctx, roots, c.settings.MaxConcurrentIndexing); err != nil {
			return nil, err
		}
		for _, root := range roots {
			c.progress(ProgressEvent{Message: fmt.Sprintf("Indexed %d files in %s", c.index.Len(root), root), Level: LevelVerbose})
		}
	}

	parser := aimp.NewParser(c.resolver)
	parser.SetOnSong(func(song *model.Song) {
		atomic.AddInt64(&c.songsResolved, 1)
		c.progress(ProgressEvent{Message: fmt.Sprintf("Found: %s", song.Path), Level: LevelVerbose})
	})

	aimpPlaylist, err := parser.Parse(ctx, lines)
	if err != nil {
		return nil, err
	}

	playlist, err := aimpPlaylist.ToM3U()
	if err != nil {
		return nil, err
	}

	return c.render(ctx, source, playlist)
}

// render normalizes the playlist and builds the Result.
func (c *Converter) render(ctx context.Context, source string, playlist *model.M3UPlaylist) (*Result, error) {
	if err := playlist.Normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(source), err)
	}

	creator := audio.NewPlaylistCreator(c.settings.M3UExtended)
	if c.settings.ReadTags || c.settings.M3UExtended {
		c.readTags(ctx, playlist, creator)
	}

	commonPath, _ := playlist.CommonPath()
	outputDir := ioutils.OutputDir(c.settings.OutputDir, commonPath, c.settings.PlaylistsDirName)

	result := &Result{
		Source:      source,
		Playlist:    playlist,
		Content:     creator.CreatePlaylist(playlist),
		OutputDir:   outputDir,
		Destination: filepath.Join(outputDir, playlist.Filename),
	}

	c.progress(ProgressEvent{Message: fmt.Sprintf("Converted %s: %d songs, common path %q", playlist.Name, len(playlist.Songs), commonPath), Level: LevelSuccess})

	return result, nil
}

// readTags reads ID3 tags of every song. Tag errors are reported as
// warnings and never fail the conversion.
func (c *Converter) readTags(ctx context.Context, playlist *model.M3UPlaylist, creator *audio.PlaylistCreator) {
	for _, song := range playlist.Songs {
		if ctx.Err() != nil {
			return
		}

		info, err := c.tags.ReadTags(song.Location)
		if err != nil {
			c.progress(ProgressEvent{Message: fmt.Sprintf("Error reading tags of %s: %v", song.Location, err), Level: LevelWarning})
			continue
		}

		if c.settings.ReadTags {
			audio.FillSong(song, info)
		}
		if info.Duration != audio.UnknownDuration {
			creator.SetDuration(song, info.Duration)
		}
	}
}

// ConvertAll converts several playlists, at most
// settings.MaxConcurrentConversions at a time.
//
// Results are returned in the order of sources. The first failure cancels
// the remaining conversions and is returned.
func (c *Converter) ConvertAll(ctx context.Context, sources []string) ([]*Result, error) {
	results := make([]*Result, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	if c.settings.MaxConcurrentConversions > 0 {
		g.SetLimit(c.settings.MaxConcurrentConversions)
	}

	for i, source := range sources {
		g.Go(func() error {
			result, err := c.Convert(ctx, source)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Write creates the output directory if needed and writes the playlist.
//
// Errors match ioutils.ErrWriteFailure.
func (c *Converter) Write(ctx context.Context, result *Result) error {
	if !ioutils.DirExists(result.OutputDir) {
		c.progress(ProgressEvent{Message: fmt.Sprintf("Output dir '%s' does not exist, creating", result.OutputDir), Level: LevelInfo})
		if err := ioutils.EnsureDir(result.OutputDir); err != nil {
			c.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory: %v", err), Level: LevelError})
			return err
		}
	}

	if err := ioutils.WriteFile(ctx, result.Destination, []byte(result.Content)); err != nil {
		c.progress(ProgressEvent{Message: fmt.Sprintf("Error writing %s: %v", result.Destination, err), Level: LevelError})
		return err
	}

	c.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %s", result.Destination), Level: LevelSuccess})
	return nil
}

// GetProgress returns how many songs have been located and how many were
// found in the playlists read so far.
func (c *Converter) GetProgress() (resolved, total int64) {
	return atomic.LoadInt64(&c.songsResolved), atomic.LoadInt64(&c.songsTotal)
}

func (c *Converter) progress(event ProgressEvent) {
	if c.onProgress == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onProgress(event)
}
