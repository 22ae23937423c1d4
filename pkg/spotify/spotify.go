package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	spotifyapi "github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

// TrackMatch is one catalog search hit. URI is opaque to callers; only this
// package knows how to turn it back into a track ID.
type TrackMatch struct {
	URI    string
	Title  string
	Artist string
}

// Playlist is a playlist owned by the current user.
type Playlist struct {
	ID   string
	Name string
}

type SpotifyService interface {
	CurrentUserID(ctx context.Context) (string, error)
	SearchTrack(ctx context.Context, artist, title string) (*TrackMatch, error)
	SearchTracks(ctx context.Context, query string, limit int) ([]TrackMatch, error)
	FindPlaylistByName(ctx context.Context, name string) (*Playlist, error)
	CreatePlaylist(ctx context.Context, name string) (*Playlist, error)
	AddTracksToPlaylist(ctx context.Context, playlistID string, uris []string) error
}

const (
	playlistPageSize = 50
	trackURIPrefix   = "spotify:track:"
)

type service struct {
	client *spotifyapi.Client
	userID string
	log    *zap.Logger
}

// NewService wraps an authenticated client. The current user is resolved
// once; playlist lookup and creation reuse it.
func NewService(ctx context.Context, client *spotifyapi.Client, log *zap.Logger) (SpotifyService, error) {
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	log.Info("Authenticated with Spotify", zap.String("user_id", user.ID))

	return &service{
		client: client,
		userID: user.ID,
		log:    log,
	}, nil
}

func (s *service) CurrentUserID(ctx context.Context) (string, error) {
	return s.userID, nil
}

// SearchTrack runs the structured artist/track query expecting the single top
// result. A miss is nil, not an error.
func (s *service) SearchTrack(ctx context.Context, artist, title string) (*TrackMatch, error) {
	query := fmt.Sprintf("artist:%s track:%s", artist, title)

	result, err := s.client.Search(ctx, query, spotifyapi.SearchTypeTrack, spotifyapi.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("failed to search track %q: %w", query, err)
	}

	if result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		return nil, nil
	}

	match := newTrackMatch(result.Tracks.Tracks[0])
	return &match, nil
}

// SearchTracks runs a free-text query and returns up to limit candidates in
// catalog rank order.
func (s *service) SearchTracks(ctx context.Context, query string, limit int) ([]TrackMatch, error) {
	result, err := s.client.Search(ctx, query, spotifyapi.SearchTypeTrack, spotifyapi.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to search tracks %q: %w", query, err)
	}

	if result.Tracks == nil {
		return nil, nil
	}

	matches := make([]TrackMatch, 0, len(result.Tracks.Tracks))
	for _, track := range result.Tracks.Tracks {
		matches = append(matches, newTrackMatch(track))
	}

	return matches, nil
}

// FindPlaylistByName pages through the current user's playlists and returns
// the first whose name matches exactly, or nil when there is none.
func (s *service) FindPlaylistByName(ctx context.Context, name string) (*Playlist, error) {
	page, err := s.client.CurrentUsersPlaylists(ctx, spotifyapi.Limit(playlistPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	for {
		for _, playlist := range page.Playlists {
			if playlist.Name == name {
				return &Playlist{ID: string(playlist.ID), Name: playlist.Name}, nil
			}
		}

		err = s.client.NextPage(ctx, page)
		if errors.Is(err, spotifyapi.ErrNoMorePages) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to page playlists: %w", err)
		}
	}
}

// CreatePlaylist creates a new private, non-collaborative playlist.
func (s *service) CreatePlaylist(ctx context.Context, name string) (*Playlist, error) {
	playlist, err := s.client.CreatePlaylistForUser(ctx, s.userID, name, "", false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist %q: %w", name, err)
	}

	s.log.Info("Created playlist", zap.String("name", playlist.Name), zap.String("id", string(playlist.ID)))

	return &Playlist{ID: string(playlist.ID), Name: playlist.Name}, nil
}

// AddTracksToPlaylist appends uris to the playlist in the given order. The
// caller keeps each call at 50 uris or fewer.
func (s *service) AddTracksToPlaylist(ctx context.Context, playlistID string, uris []string) error {
	ids := make([]spotifyapi.ID, 0, len(uris))
	for _, uri := range uris {
		ids = append(ids, spotifyapi.ID(strings.TrimPrefix(uri, trackURIPrefix)))
	}

	if _, err := s.client.AddTracksToPlaylist(ctx, spotifyapi.ID(playlistID), ids...); err != nil {
		return fmt.Errorf("failed to add tracks to playlist: %w", err)
	}

	return nil
}

func newTrackMatch(track spotifyapi.FullTrack) TrackMatch {
	artists := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		artists = append(artists, artist.Name)
	}

	return TrackMatch{
		URI:    string(track.URI),
		Title:  track.Name,
		Artist: strings.Join(artists, ", "),
	}
}
