package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/handiism/aimp2m3u/internal/aimp"
	"github.com/handiism/aimp2m3u/internal/config"
	"github.com/handiism/aimp2m3u/internal/convert"
)

func main() {
	// Command line flags
	var (
		outputFlag   = flag.String("output", "", "Output directory (default: <common song folder>/Playlists)")
		configFlag   = flag.String("config", "", "Path to config file (.json or .toml)")
		extendedFlag = flag.Bool("extended", false, "Write extended M3U (#EXTINF lines)")
		tagsFlag     = flag.Bool("tags", false, "Fill missing title/artist/album from ID3 tags")
		yesFlag      = flag.Bool("yes", false, "Write without asking for confirmation")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "Convert and print the playlist without writing it")
	)

	flag.StringVar(outputFlag, "o", "", "Shorthand for -output")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("aimp2m3u - Convert AIMP4 playlists to M3U")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  aimp2m3u [options] <playlist.aimppl4> [more.aimppl4 ...]")
		fmt.Println()
		fmt.Println("For interactive mode, use: aimp2m3u-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Reject unsupported files before doing any work
	sources := flag.Args()
	for _, source := range sources {
		if err := aimp.CheckExtension(source); err != nil {
			fmt.Println("Not a supported playlist file (must be a aimppl4 file):", source)
			return
		}
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *extendedFlag {
		settings.M3UExtended = true
	}
	if *tagsFlag {
		settings.ReadTags = true
	}
	if *yesFlag {
		settings.AssumeYes = true
	}
	if *verboseFlag {
		settings.Verbose = true
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	converter := convert.NewConverter(settings, func(event convert.ProgressEvent) {
		if event.Level == convert.LevelVerbose && !settings.Verbose {
			return
		}
		fmt.Println(levelPrefix(event.Level) + event.Message)
	})

	results, err := converter.ConvertAll(ctx, sources)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nConversion cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error converting: %v\n", err)
		os.Exit(1)
	}

	if *dryRunFlag {
		for _, result := range results {
			fmt.Printf("\n[Dry run - %s]\n%s\n", result.Destination, result.Content)
		}
		return
	}

	in := bufio.NewReader(os.Stdin)
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	for _, result := range results {
		if !settings.AssumeYes {
			if !interactive {
				fmt.Fprintln(os.Stderr, "Refusing to write without confirmation: stdin is not a terminal (use -yes)")
				os.Exit(1)
			}
			ok, err := confirm(in, os.Stdout, result.Destination)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading answer: %v\n", err)
				os.Exit(1)
			}
			if !ok {
				fmt.Println("Bailing...")
				continue
			}
			fmt.Println("Proceeding with creation...")
		}

		if err := converter.Write(ctx, result); err != nil {
			fmt.Fprintf(os.Stderr, "Couldn't write to %s: %v\n", result.Destination, err)
			os.Exit(1)
		}
	}

	fmt.Println("Done conversion!")
}

// confirm asks whether the playlist should be written to destination.
// An empty answer or "y" (any case) means yes.
func confirm(in *bufio.Reader, out io.Writer, destination string) (bool, error) {
	fmt.Fprintf(out, "Proceed with playlist creation at %s? (Y/n) ", destination)

	answer, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y":
		return true, nil
	default:
		return false, nil
	}
}

func levelPrefix(level convert.ProgressLevel) string {
	switch level {
	case convert.LevelError:
		return "❌ "
	case convert.LevelWarning:
		return "⚠️  "
	case convert.LevelSuccess:
		return "✅ "
	case convert.LevelInfo:
		return "ℹ️  "
	default:
		return "   "
	}
}
