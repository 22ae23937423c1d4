package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/config"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/prompt"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/resolver"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/service"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/spotify"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/tracklist"
)

func main() {
	playlistName := flag.String("playlist", "", "destination playlist name (required)")
	dir := flag.String("dir", "", "scan a directory tree for audio files instead of reading stdin")
	m3u := flag.String("m3u", "", "read filenames from an .m3u playlist file instead of stdin")
	dryRun := flag.Bool("dry-run", false, "resolve tracks but do not create or modify the playlist")
	maxRounds := flag.Int("max-rounds", 0, "bound the interactive search rounds per track (0 = unbounded)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *playlistName == "" {
		fmt.Fprintln(os.Stderr, "missing required -playlist flag")
		flag.Usage()
		os.Exit(2)
	}
	if *dir != "" && *m3u != "" {
		fmt.Fprintln(os.Stderr, "-dir and -m3u are mutually exclusive")
		os.Exit(2)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting playlist-importer", zap.String("playlist", *playlistName))

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	filenames, err := readFilenames(*dir, *m3u, cfg.AudioPatterns)
	if err != nil {
		logger.Fatal("Failed to read track list", zap.Error(err))
	}
	logger.Info("Read track list", zap.Int("count", len(filenames)))

	ctx := context.Background()

	client, err := spotify.NewClient(ctx, spotify.AuthOptions{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		RedirectURL:  cfg.RedirectURL,
		TokenFile:    cfg.TokenFile,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to authenticate with Spotify", zap.Error(err))
	}

	spotifyService, err := spotify.NewService(ctx, client, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Spotify service", zap.Error(err))
	}

	// The prompter reads from the terminal, never from the piped filename
	// list. Without a terminal, unmatched tracks are skipped.
	var prompter resolver.Prompter
	if terminal, err := prompt.NewTerminal(); err != nil {
		logger.Warn("No interactive terminal, unmatched tracks will be skipped", zap.Error(err))
	} else {
		defer terminal.Close()
		prompter = terminal
	}

	trackResolver := resolver.NewResolver(
		spotifyService,
		prompter,
		resolver.ConsoleObserver{Out: os.Stdout},
		resolver.Options{MaxRounds: *maxRounds},
		logger,
	)

	svc := service.NewService(spotifyService, trackResolver, *dryRun, logger)

	report, err := svc.Run(ctx, *playlistName, filenames)
	if err != nil {
		logger.Fatal("Import failed", zap.Error(err))
	}

	printReport(os.Stdout, report)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func readFilenames(dir, m3u string, patterns []string) ([]string, error) {
	switch {
	case dir != "":
		return tracklist.FromDirectory(dir, patterns)
	case m3u != "":
		return tracklist.FromM3U(m3u)
	default:
		return tracklist.FromReader(os.Stdin)
	}
}

func printReport(out *os.File, report *service.Report) {
	verb := "updated"
	if report.Created {
		verb = "created"
	}

	if report.DryRun {
		fmt.Fprintf(out, "Dry run: playlist would be %s: %s (%d tracks)\n", verb, report.PlaylistName, report.Added)
	} else {
		fmt.Fprintf(out, "Playlist %s: %s (%d tracks added)\n", verb, report.PlaylistName, report.Added)
	}

	if len(report.Unparsed) > 0 {
		fmt.Fprintln(out, "\nCould not parse filenames:")
		for _, name := range report.Unparsed {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}

	if len(report.Unresolved) > 0 {
		fmt.Fprintln(out, "\nSongs not found on Spotify:")
		for _, name := range report.Unresolved {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}
}
