// Package ioutils provides file system utilities used when writing
// converted playlists.
//
// # Writing Playlists
//
//	dir := ioutils.OutputDir(settings.OutputDir, commonPath, settings.PlaylistsDirName)
//	if err := ioutils.EnsureDir(dir); err != nil {
//	    return err
//	}
//	err := ioutils.WriteFile(ctx, filepath.Join(dir, "MyMix.m3u"), content)
//	if errors.Is(err, ioutils.ErrWriteFailure) {
//	    // the cause is wrapped as well
//	}
package ioutils
