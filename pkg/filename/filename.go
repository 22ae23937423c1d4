package filename

import (
	"path/filepath"
	"strings"
)

// Track is the artist/title pair carried by a parseable audio filename.
type Track struct {
	Artist string
	Title  string
}

// Parse extracts the artist and title from an audio filename. Two naming
// conventions are recognized: "Artist_-_Title.mp3", and "Artist - Title.mp3"
// optionally prefixed with a numeric track number ("01 - Artist - Title.mp3")
// which is discarded. Underscores inside fields become spaces. The second
// return value is false when the name fits neither convention.
func Parse(raw string) (Track, bool) {
	base := strings.TrimSpace(raw)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	// Artist_-_Title
	if parts := strings.Split(base, "_-_"); len(parts) == 2 {
		return makeTrack(parts[0], parts[1])
	}

	// Artist - Title, or NN - Artist - Title. Underscores double as spaces
	// here, so names like 01_-_Artist_-_Title land in this convention too.
	parts := strings.Split(strings.ReplaceAll(base, "_", " "), " - ")
	switch len(parts) {
	case 2:
		return makeTrack(parts[0], parts[1])
	case 3:
		if !isTrackNumber(parts[0]) {
			return Track{}, false
		}
		return makeTrack(parts[1], parts[2])
	default:
		return Track{}, false
	}
}

func makeTrack(artist, title string) (Track, bool) {
	artist = strings.TrimSpace(strings.ReplaceAll(artist, "_", " "))
	title = strings.TrimSpace(strings.ReplaceAll(title, "_", " "))
	if artist == "" || title == "" {
		return Track{}, false
	}

	return Track{Artist: artist, Title: title}, true
}

func isTrackNumber(field string) bool {
	field = strings.TrimSpace(field)
	if field == "" {
		return false
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
