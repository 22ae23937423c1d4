package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "env-secret")
	t.Setenv("SPOTIFY_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "missing"))

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}

	if cfg.SpotifyClientID != "env-id" || cfg.SpotifyClientSecret != "env-secret" {
		t.Errorf("credentials = (%q, %q), want environment values", cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}
	if cfg.RedirectURL != "http://localhost:8888/callback" {
		t.Errorf("RedirectURL = %q, want default", cfg.RedirectURL)
	}
	if len(cfg.AudioPatterns) == 0 || cfg.AudioPatterns[0] != "**/*.mp3" {
		t.Errorf("AudioPatterns = %v, want default patterns", cfg.AudioPatterns)
	}
}

func TestNewConfigFallsBackToCredentialsFile(t *testing.T) {
	path := writeCredentials(t, "SPOTIFY_CLIENT_ID=file-id\nSPOTIFY_CLIENT_SECRET=file-secret\n")

	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")
	t.Setenv("SPOTIFY_CREDENTIALS_FILE", path)

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}

	if cfg.SpotifyClientID != "file-id" || cfg.SpotifyClientSecret != "file-secret" {
		t.Errorf("credentials = (%q, %q), want file values", cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}
}

func TestNewConfigAcceptsLegacyKeys(t *testing.T) {
	path := writeCredentials(t, "SPOTIPY_CLIENT_ID=legacy-id\nSPOTIPY_CLIENT_SECRET=legacy-secret\n")

	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")
	t.Setenv("SPOTIFY_CREDENTIALS_FILE", path)

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}

	if cfg.SpotifyClientID != "legacy-id" || cfg.SpotifyClientSecret != "legacy-secret" {
		t.Errorf("credentials = (%q, %q), want legacy file values", cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}
}

func TestNewConfigEnvironmentWinsOverFile(t *testing.T) {
	path := writeCredentials(t, "SPOTIFY_CLIENT_ID=file-id\nSPOTIFY_CLIENT_SECRET=file-secret\n")

	t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")
	t.Setenv("SPOTIFY_CREDENTIALS_FILE", path)

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}

	if cfg.SpotifyClientID != "env-id" {
		t.Errorf("SpotifyClientID = %q, want env-id", cfg.SpotifyClientID)
	}
	if cfg.SpotifyClientSecret != "file-secret" {
		t.Errorf("SpotifyClientSecret = %q, want file-secret", cfg.SpotifyClientSecret)
	}
}

func TestNewConfigMissingCredentials(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")
	t.Setenv("SPOTIFY_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "missing"))

	_, err := NewConfig()
	if err == nil {
		t.Fatal("NewConfig succeeded without credentials")
	}
	if !strings.Contains(err.Error(), "missing spotify credentials") {
		t.Errorf("error = %v, want missing credentials message", err)
	}
}
