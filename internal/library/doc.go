// Package library locates song files below a search root.
//
// AIMP playlists store only a song's file name and the folder the songs were
// added from. A Resolver finds the actual file by walking that folder:
//
//	var r library.Resolver = library.NewWalker()
//	path, err := r.Resolve(ctx, `C:\Music\`, "track.mp3")
//	if errors.Is(err, library.ErrSongNotFound) {
//	    // nothing named track.mp3 below C:\Music\
//	}
//
// # Walker and Index
//
// Walker walks the tree on every lookup and stops at the first match.
// Index walks each distinct root once and answers later lookups from memory,
// which matters for large libraries where every song shares the same root:
//
//	idx := library.NewIndex()
//	_ = idx.Prebuild(ctx, []string{`C:\Music\`, `D:\Podcasts\`}, 2)
//
// Both return the first match in filepath.WalkDir order (lexical, depth
// first), so lookups are deterministic when several files share a name.
package library
