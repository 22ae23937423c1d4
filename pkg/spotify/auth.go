package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"

	"github.com/gofrs/uuid"
	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type AuthOptions struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	TokenFile    string
}

// NewClient returns an authenticated Spotify client. A cached token is reused
// when present (the oauth2 transport refreshes expired access tokens with the
// stored refresh token); otherwise a one-shot local callback server runs the
// authorization-code flow and the exchanged token is cached for the next run.
func NewClient(ctx context.Context, opts AuthOptions, log *zap.Logger) (*spotifyapi.Client, error) {
	authenticator := spotifyauth.New(
		spotifyauth.WithClientID(opts.ClientID),
		spotifyauth.WithClientSecret(opts.ClientSecret),
		spotifyauth.WithRedirectURL(opts.RedirectURL),
		spotifyauth.WithScopes(
			spotifyauth.ScopePlaylistModifyPrivate,
			spotifyauth.ScopePlaylistReadPrivate,
		),
	)

	token, err := readTokenFile(opts.TokenFile)
	if err != nil {
		return nil, err
	}

	if token == nil {
		log.Info("No cached token, starting authorization flow", zap.String("redirect_url", opts.RedirectURL))

		token, err = authorize(ctx, authenticator, opts.RedirectURL)
		if err != nil {
			return nil, err
		}

		if err := writeTokenFile(opts.TokenFile, token); err != nil {
			log.Warn("Failed to cache token, continuing without cache", zap.Error(err), zap.String("file", opts.TokenFile))
		}
	}

	return spotifyapi.New(authenticator.Client(ctx, token), spotifyapi.WithRetry(true)), nil
}

// authorize runs the authorization-code flow: it listens on the redirect
// URL's host, prints the authorization URL for the operator, and waits for
// the callback carrying the code.
func authorize(ctx context.Context, authenticator *spotifyauth.Authenticator, redirectURL string) (*oauth2.Token, error) {
	state, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth state: %w", err)
	}

	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect url %q: %w", redirectURL, err)
	}

	tokens := make(chan *oauth2.Token, 1)
	errs := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(parsed.Path, func(w http.ResponseWriter, r *http.Request) {
		token, err := authenticator.Token(r.Context(), state.String(), r)
		if err != nil {
			http.Error(w, "authorization failed", http.StatusForbidden)
			errs <- fmt.Errorf("failed to exchange token: %w", err)
			return
		}
		fmt.Fprintln(w, "Authorized. You can close this tab and return to the terminal.")
		tokens <- token
	})

	listener, err := net.Listen("tcp", parsed.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", parsed.Host, err)
	}

	server := &http.Server{Handler: mux}
	defer server.Close()
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	fmt.Fprintf(os.Stderr, "Open this URL in your browser to authorize:\n%s\n", authenticator.AuthURL(state.String()))

	select {
	case token := <-tokens:
		return token, nil
	case err := <-errs:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func readTokenFile(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
	}

	token := new(oauth2.Token)
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", path, err)
	}

	return token, nil
}

func writeTokenFile(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to serialize token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", path, err)
	}

	return nil
}
