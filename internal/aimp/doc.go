// Package aimp reads AIMP4 playlist exports (.aimppl4 files).
//
// An AIMP4 playlist is a UTF-16 text file made of sections. The SUMMARY
// section holds key=value metadata, the CONTENT section lists the songs:
//
//	#-----SUMMARY-----#
//	Name=MyMix
//	#-----CONTENT-----#
//	-C:\Music\
//	C:\Music\Sub\track.mp3|Title|Artist|Album|...
//
// A content line starting with "-" sets the folder the following songs are
// searched in. Only the file name of each song is trusted; the parser finds
// the real file below that folder through a library.Resolver.
//
// # Parsing
//
//	parser := aimp.NewParser(library.NewIndex())
//	playlist, err := parser.ParseFile(ctx, "MyMix.aimppl4")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(playlist.Summary.Name, len(playlist.Songs))
//
// Parsing is all-or-nothing: a song that cannot be found aborts the whole
// parse with an error matching ErrSongNotFound.
package aimp
