package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/resolver"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/spotify"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/utils"
)

// addChunkSize is the catalog's per-call limit for playlist appends.
const addChunkSize = 50

// PlaylistCatalog is the slice of the Spotify service the importer needs for
// playlist lookup, creation and appends.
type PlaylistCatalog interface {
	FindPlaylistByName(ctx context.Context, name string) (*spotify.Playlist, error)
	CreatePlaylist(ctx context.Context, name string) (*spotify.Playlist, error)
	AddTracksToPlaylist(ctx context.Context, playlistID string, uris []string) error
}

type TrackResolver interface {
	ResolveAll(ctx context.Context, items []resolver.Item) ([]resolver.Outcome, error)
}

// Report summarizes one import run. Unparsed and Unresolved hold original
// filenames in input order; Unresolved contains only items the operator
// actually skipped, never items recovered through disambiguation.
type Report struct {
	PlaylistID   string
	PlaylistName string
	Created      bool
	Added        int
	Unparsed     []string
	Unresolved   []string
	DryRun       bool
}

type Service struct {
	catalog  PlaylistCatalog
	resolver TrackResolver
	dryRun   bool
	log      *zap.Logger
}

func NewService(catalog PlaylistCatalog, trackResolver TrackResolver, dryRun bool, log *zap.Logger) *Service {
	return &Service{
		catalog:  catalog,
		resolver: trackResolver,
		dryRun:   dryRun,
		log:      log,
	}
}

// Run imports filenames into the named playlist: resolve the playlist, parse
// and resolve every filename, then append the resolved tracks in input order.
func (s *Service) Run(ctx context.Context, playlistName string, filenames []string) (*Report, error) {
	playlist, created, err := s.ensurePlaylist(ctx, playlistName)
	if err != nil {
		return nil, err
	}

	items := resolver.ParseItems(filenames)

	outcomes, err := s.resolver.ResolveAll(ctx, items)
	if err != nil {
		return nil, err
	}

	uris := resolver.Assemble(outcomes)

	if !s.dryRun {
		if err := s.publish(ctx, playlist.ID, uris); err != nil {
			return nil, err
		}
	}

	report := &Report{
		PlaylistID:   playlist.ID,
		PlaylistName: playlist.Name,
		Created:      created,
		Added:        len(uris),
		DryRun:       s.dryRun,
	}
	for _, item := range items {
		switch outcomes[item.Position].Status {
		case resolver.StatusUnparsed:
			report.Unparsed = append(report.Unparsed, item.Filename)
		case resolver.StatusSkipped:
			report.Unresolved = append(report.Unresolved, item.Filename)
		}
	}

	s.log.Info("Import finished",
		zap.String("playlist", playlist.Name),
		zap.Int("added", report.Added),
		zap.Int("unparsed", len(report.Unparsed)),
		zap.Int("unresolved", len(report.Unresolved)),
		zap.Bool("dry_run", s.dryRun))

	return report, nil
}

// ensurePlaylist reuses the first playlist whose name matches exactly, and
// creates a private one otherwise. In dry-run mode the lookup still runs
// (read-only) but nothing is created.
func (s *Service) ensurePlaylist(ctx context.Context, name string) (*spotify.Playlist, bool, error) {
	playlist, err := s.catalog.FindPlaylistByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up playlist %q: %w", name, err)
	}

	if playlist != nil {
		s.log.Info("Reusing existing playlist", zap.String("name", playlist.Name), zap.String("id", playlist.ID))
		return playlist, false, nil
	}

	if s.dryRun {
		s.log.Info("Dry run - would create playlist", zap.String("name", name))
		return &spotify.Playlist{Name: name}, true, nil
	}

	playlist, err = s.catalog.CreatePlaylist(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create playlist %q: %w", name, err)
	}

	return playlist, true, nil
}

// publish appends uris in order, 50 per call. A failed chunk is not retried.
func (s *Service) publish(ctx context.Context, playlistID string, uris []string) error {
	for _, chunk := range utils.ChunkStrings(uris, addChunkSize) {
		if err := s.catalog.AddTracksToPlaylist(ctx, playlistID, chunk); err != nil {
			return fmt.Errorf("failed to add tracks to playlist: %w", err)
		}
	}

	return nil
}
