package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// ErrSongNotFound is returned when no file with the requested name exists
// below the search root.
var ErrSongNotFound = errors.New("song not found")

// SongNotFoundError describes a failed lookup.
//
// It matches ErrSongNotFound with errors.Is. Err holds the underlying
// filesystem error when the root itself could not be read.
type SongNotFoundError struct {
	Name string
	Root string
	Err  error
}

func (e *SongNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("song %q not found in %q: %v", e.Name, e.Root, e.Err)
	}
	return fmt.Sprintf("song %q not found in %q", e.Name, e.Root)
}

// Is reports whether target is ErrSongNotFound.
func (e *SongNotFoundError) Is(target error) bool {
	return target == ErrSongNotFound
}

func (e *SongNotFoundError) Unwrap() error {
	return e.Err
}

// Resolver finds the file named name below root and returns its path.
type Resolver interface {
	Resolve(ctx context.Context, root, name string) (string, error)
}

// Walker resolves songs by walking the search root on every call.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Resolve walks root and returns the first regular file whose base name
// equals name exactly.
//
// Unreadable subdirectories are skipped. If root cannot be read, the
// returned SongNotFoundError wraps the filesystem error.
func (w *Walker) Resolve(ctx context.Context, root, name string) (string, error) {
	var found string
	err := walk(ctx, root, func(path string, d fs.DirEntry) error {
		if d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		var nf *SongNotFoundError
		if errors.As(err, &nf) {
			nf.Name = name
		}
		return "", err
	}
	if found == "" {
		return "", &SongNotFoundError{Name: name, Root: root}
	}
	return found, nil
}

// walk calls fn for every non-directory entry below root in lexical order.
//
// Context cancellation stops the walk and is returned as is. Errors on the
// root are reported as a SongNotFoundError with an empty Name; callers fill
// it in.
func walk(ctx context.Context, root string, fn func(path string, d fs.DirEntry) error) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return &rootError{err: err}
			}
			// Skip unreadable entries below the root
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		return fn(path, d)
	})

	var re *rootError
	if errors.As(err, &re) {
		return &SongNotFoundError{Root: root, Err: re.err}
	}
	return err
}

type rootError struct {
	err error
}

func (e *rootError) Error() string {
	return e.err.Error()
}
