package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/filename"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/spotify"
)

// Status is the terminal fate of one input filename. The zero value is
// invalid, so an outcome that was never written is detectable.
type Status string

const (
	StatusResolved Status = "resolved"
	StatusUnparsed Status = "unparsed"
	StatusSkipped  Status = "skipped"
)

// Item is one input filename with its parse result. Position is the input
// index and the sole ordering key; items are never reordered.
type Item struct {
	Position int
	Filename string
	Artist   string
	Title    string
	Parsed   bool
}

// Outcome is the resolution result for one item.
type Outcome struct {
	Status Status
	URI    string
}

// Prompter supplies one line of operator input per question. io.EOF means
// the interactive channel is gone and is treated as a skip.
type Prompter interface {
	Ask(label string) (string, error)
}

// Catalog is the slice of the Spotify service the resolver needs.
type Catalog interface {
	SearchTrack(ctx context.Context, artist, title string) (*spotify.TrackMatch, error)
	SearchTracks(ctx context.Context, query string, limit int) ([]spotify.TrackMatch, error)
}

// candidateLimit bounds each fuzzy search during disambiguation.
const candidateLimit = 5

type Options struct {
	// MaxRounds bounds the requery loop per item; 0 means unbounded.
	// An exhausted bound skips the item.
	MaxRounds int
}

type Resolver struct {
	catalog  Catalog
	prompter Prompter
	observer Observer
	opts     Options
	log      *zap.Logger
}

// NewResolver builds a resolver. A nil prompter disables disambiguation:
// every exact miss is skipped without prompting.
func NewResolver(catalog Catalog, prompter Prompter, observer Observer, opts Options, log *zap.Logger) *Resolver {
	if observer == nil {
		observer = NopObserver{}
	}

	return &Resolver{
		catalog:  catalog,
		prompter: prompter,
		observer: observer,
		opts:     opts,
		log:      log,
	}
}

// ParseItems turns raw filenames into items, preserving input order.
func ParseItems(raws []string) []Item {
	items := make([]Item, 0, len(raws))
	for i, raw := range raws {
		item := Item{Position: i, Filename: raw}
		if track, ok := filename.Parse(raw); ok {
			item.Artist = track.Artist
			item.Title = track.Title
			item.Parsed = true
		}
		items = append(items, item)
	}

	return items
}

// ResolveAll runs the exact pass over every item in input order, then the
// interactive disambiguation pass over the exact misses, also in input
// order. It returns exactly one outcome per item, indexed by position. A
// catalog error aborts the run; per-item misses never do.
func (r *Resolver) ResolveAll(ctx context.Context, items []Item) ([]Outcome, error) {
	outcomes := make([]Outcome, len(items))
	misses := make([]Item, 0)

	for _, item := range items {
		if !item.Parsed {
			r.observer.Unparsable(item)
			outcomes[item.Position] = Outcome{Status: StatusUnparsed}
			continue
		}

		uri, found, err := r.resolveExact(ctx, item)
		if err != nil {
			return nil, err
		}
		if !found {
			misses = append(misses, item)
			continue
		}
		outcomes[item.Position] = Outcome{Status: StatusResolved, URI: uri}
	}

	r.log.Info("Exact pass finished",
		zap.Int("items", len(items)),
		zap.Int("misses", len(misses)))

	for _, item := range misses {
		outcome, err := r.disambiguate(ctx, item)
		if err != nil {
			return nil, err
		}
		outcomes[item.Position] = outcome
	}

	return outcomes, nil
}

func (r *Resolver) resolveExact(ctx context.Context, item Item) (string, bool, error) {
	match, err := r.catalog.SearchTrack(ctx, item.Artist, item.Title)
	if err != nil {
		return "", false, fmt.Errorf("failed to search for %s: %w", item.Filename, err)
	}

	if match == nil {
		r.observer.ExactMiss(item)
		return "", false, nil
	}

	r.observer.ExactMatch(item, *match)
	return match.URI, true, nil
}

// disambiguate runs the interactive loop for one exact miss. Each round runs
// a fuzzy search, presents the numbered candidates, and classifies the
// operator's answer: an in-range number selects that candidate, empty input
// skips the item, and anything else becomes the next query.
func (r *Resolver) disambiguate(ctx context.Context, item Item) (Outcome, error) {
	if r.prompter == nil {
		r.observer.Skipped(item)
		return Outcome{Status: StatusSkipped}, nil
	}

	query := item.Artist + " " + item.Title

	for round := 0; r.opts.MaxRounds == 0 || round < r.opts.MaxRounds; round++ {
		candidates, err := r.catalog.SearchTracks(ctx, query, candidateLimit)
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to search for %q: %w", query, err)
		}

		r.observer.Candidates(item, query, candidates)

		answer, err := r.prompter.Ask("Pick a number, type a new search, or press enter to skip: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.observer.Skipped(item)
				return Outcome{Status: StatusSkipped}, nil
			}
			return Outcome{}, fmt.Errorf("failed to read answer: %w", err)
		}

		answer = strings.TrimSpace(answer)
		if answer == "" {
			r.observer.Skipped(item)
			return Outcome{Status: StatusSkipped}, nil
		}

		// An out-of-range number is not a selection, it is a new query.
		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(candidates) {
			match := candidates[n-1]
			r.observer.Resolved(item, match)
			return Outcome{Status: StatusResolved, URI: match.URI}, nil
		}

		query = answer
	}

	r.log.Debug("Disambiguation rounds exhausted",
		zap.String("filename", item.Filename),
		zap.Int("max_rounds", r.opts.MaxRounds))

	r.observer.Skipped(item)
	return Outcome{Status: StatusSkipped}, nil
}

// Assemble returns the resolved URIs in input order, dropping every item
// whose outcome is not StatusResolved.
func Assemble(outcomes []Outcome) []string {
	uris := make([]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Status == StatusResolved {
			uris = append(uris, outcome.URI)
		}
	}

	return uris
}
