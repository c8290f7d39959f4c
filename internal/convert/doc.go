// Package convert provides the conversion pipeline that turns AIMP4
// playlists into M3U playlists.
//
// # Converter
//
// The Converter coordinates the whole process:
//
//  1. Check the extension and read the UTF-16 playlist
//  2. Parse it, locating every song on disk
//  3. Build the M3U playlist and normalize its paths
//  4. Optionally read ID3 tags for extended M3U
//  5. Render the content and compute the destination
//  6. Write the file (a separate step, so callers can confirm first)
//
// # Basic Usage
//
//	converter := convert.NewConverter(settings, func(event convert.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result, err := converter.Convert(ctx, "MyMix.aimppl4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Writing", result.Destination)
//	err = converter.Write(ctx, result)
//
// # Several Playlists
//
// ConvertAll converts several playlists concurrently, limited by
// settings.MaxConcurrentConversions. Songs of different playlists that
// share a folder are looked up in the same index.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress returns the number of songs located so far.
package convert
