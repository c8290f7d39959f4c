package library

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Index resolves songs from a per-root file name index.
//
// The first lookup for a root walks the whole tree once and records the
// first path seen for every file name. Later lookups for the same root are
// answered from memory. Index is safe for concurrent use.
//
// Example:
//
//	idx := NewIndex()
//	path, err := idx.Resolve(ctx, "/music", "track.mp3")
type Index struct {
	mu    sync.Mutex
	roots map[string]*rootIndex
}

type rootIndex struct {
	once  sync.Once
	files map[string]string
	count int // guarded by Index.mu
	err   error
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{roots: make(map[string]*rootIndex)}
}

// Resolve returns the indexed path of name below root, building the index
// for root on first use.
func (idx *Index) Resolve(ctx context.Context, root, name string) (string, error) {
	ri, err := idx.build(ctx, root)
	if err != nil {
		var nf *SongNotFoundError
		if errors.As(err, &nf) {
			return "", &SongNotFoundError{Name: name, Root: root, Err: nf.Err}
		}
		return "", err
	}

	path, ok := ri.files[name]
	if !ok {
		return "", &SongNotFoundError{Name: name, Root: root}
	}
	return path, nil
}

// Prebuild indexes the given roots concurrently, at most limit at a time.
// A limit below 1 means no limit.
//
// Roots that cannot be read are not an error here; lookups against them
// fail later with a SongNotFoundError.
func (idx *Index) Prebuild(ctx context.Context, roots []string, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, root := range roots {
		g.Go(func() error {
			_, err := idx.build(ctx, root)
			if errors.Is(err, ErrSongNotFound) {
				return nil
			}
			return err
		})
	}

	return g.Wait()
}

// Len returns the number of files indexed below root, or 0 if root has not
// been indexed.
func (idx *Index) Len(root string) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if ri, ok := idx.roots[root]; ok {
		return ri.count
	}
	return 0
}

func (idx *Index) build(ctx context.Context, root string) (*rootIndex, error) {
	idx.mu.Lock()
	ri, ok := idx.roots[root]
	if !ok {
		ri = &rootIndex{}
		idx.roots[root] = ri
	}
	idx.mu.Unlock()

	ri.once.Do(func() {
		files := make(map[string]string)
		ri.err = walk(ctx, root, func(path string, d fs.DirEntry) error {
			if _, seen := files[d.Name()]; !seen {
				files[d.Name()] = path
			}
			return nil
		})
		if ri.err == nil {
			ri.files = files
			idx.mu.Lock()
			ri.count = len(files)
			idx.mu.Unlock()
		}
	})

	if ri.err != nil && !errors.Is(ri.err, ErrSongNotFound) {
		// Cancelled builds are retried on the next lookup.
		idx.mu.Lock()
		if idx.roots[root] == ri {
			delete(idx.roots, root)
		}
		idx.mu.Unlock()
	}

	return ri, ri.err
}
