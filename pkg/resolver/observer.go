package resolver

import (
	"fmt"
	"io"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-importer/pkg/spotify"
)

// Observer receives resolution events for rendering. Implementations must
// not influence resolution decisions.
type Observer interface {
	Unparsable(item Item)
	ExactMatch(item Item, match spotify.TrackMatch)
	ExactMiss(item Item)
	Candidates(item Item, query string, candidates []spotify.TrackMatch)
	Resolved(item Item, match spotify.TrackMatch)
	Skipped(item Item)
}

// ConsoleObserver renders resolution events as plain text for the operator.
type ConsoleObserver struct {
	Out io.Writer
}

func (o ConsoleObserver) Unparsable(item Item) {
	fmt.Fprintf(o.Out, "Could not parse %q\n", item.Filename)
}

func (o ConsoleObserver) ExactMatch(item Item, match spotify.TrackMatch) {
	fmt.Fprintf(o.Out, "Found %s – %s\n", match.Artist, match.Title)
}

func (o ConsoleObserver) ExactMiss(item Item) {
	fmt.Fprintf(o.Out, "No exact match for %s – %s\n", item.Artist, item.Title)
}

func (o ConsoleObserver) Candidates(item Item, query string, candidates []spotify.TrackMatch) {
	if len(candidates) == 0 {
		fmt.Fprintf(o.Out, "No candidates for %q\n", query)
		return
	}

	fmt.Fprintf(o.Out, "Candidates for %q:\n", query)
	for i, candidate := range candidates {
		fmt.Fprintf(o.Out, "%d. %s – %s\n", i+1, candidate.Artist, candidate.Title)
	}
}

func (o ConsoleObserver) Resolved(item Item, match spotify.TrackMatch) {
	fmt.Fprintf(o.Out, "Selected %s – %s\n", match.Artist, match.Title)
}

func (o ConsoleObserver) Skipped(item Item) {
	fmt.Fprintf(o.Out, "Skipped %q\n", item.Filename)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) Unparsable(Item) {}

func (NopObserver) ExactMatch(Item, spotify.TrackMatch) {}

func (NopObserver) ExactMiss(Item) {}

func (NopObserver) Candidates(Item, string, []spotify.TrackMatch) {}

func (NopObserver) Resolved(Item, spotify.TrackMatch) {}

func (NopObserver) Skipped(Item) {}
