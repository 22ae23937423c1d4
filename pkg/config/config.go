package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/utils"
)

type Config struct {
	SpotifyClientID     string `envconfig:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `envconfig:"SPOTIFY_CLIENT_SECRET"`

	RedirectURL     string `envconfig:"SPOTIFY_REDIRECT_URL" default:"http://localhost:8888/callback"`
	CredentialsFile string `envconfig:"SPOTIFY_CREDENTIALS_FILE" default:"~/.spotify_credentials"`
	TokenFile       string `envconfig:"SPOTIFY_TOKEN_FILE" default:"~/.spotify_token.json"`

	AudioPatterns []string `envconfig:"AUDIO_PATTERNS" default:"**/*.mp3,**/*.flac,**/*.m4a,**/*.ogg,**/*.opus,**/*.wav"`
}

// NewConfig reads the environment, then fills missing client credentials from
// the credentials file. Credentials absent from both places are an error.
func NewConfig() (*Config, error) {
	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, err
	}

	cfg.CredentialsFile = utils.ExpandHome(cfg.CredentialsFile)
	cfg.TokenFile = utils.ExpandHome(cfg.TokenFile)

	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		if err := cfg.loadCredentialsFile(); err != nil {
			return nil, err
		}
	}

	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		return nil, fmt.Errorf("missing spotify credentials: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET or add them to %s", cfg.CredentialsFile)
	}

	return cfg, nil
}

// loadCredentialsFile reads KEY=VALUE pairs from the credentials file. Both
// SPOTIFY_* and the legacy SPOTIPY_* key spellings are accepted. A missing
// file is not an error here; the caller decides whether credentials from the
// environment were enough.
func (c *Config) loadCredentialsFile() error {
	values, err := godotenv.Read(c.CredentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read credentials file %s: %w", c.CredentialsFile, err)
	}

	if c.SpotifyClientID == "" {
		c.SpotifyClientID = firstNonEmpty(values["SPOTIFY_CLIENT_ID"], values["SPOTIPY_CLIENT_ID"])
	}
	if c.SpotifyClientSecret == "" {
		c.SpotifyClientSecret = firstNonEmpty(values["SPOTIFY_CLIENT_SECRET"], values["SPOTIPY_CLIENT_SECRET"])
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
