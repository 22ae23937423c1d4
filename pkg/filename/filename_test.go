package filename

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantArtist string
		wantTitle  string
		wantOK     bool
	}{
		{
			name:       "underscore convention",
			raw:        "Queen_-_Bohemian_Rhapsody.mp3",
			wantArtist: "Queen",
			wantTitle:  "Bohemian Rhapsody",
			wantOK:     true,
		},
		{
			name:       "underscore convention with track number",
			raw:        "01_-_Queen_-_BohemianRhapsody.mp3",
			wantArtist: "Queen",
			wantTitle:  "BohemianRhapsody",
			wantOK:     true,
		},
		{
			name:       "space convention",
			raw:        "Daft Punk - One More Time.mp3",
			wantArtist: "Daft Punk",
			wantTitle:  "One More Time",
			wantOK:     true,
		},
		{
			name:       "space convention with track number",
			raw:        "03 - Daft Punk - Harder Better Faster Stronger.mp3",
			wantArtist: "Daft Punk",
			wantTitle:  "Harder Better Faster Stronger",
			wantOK:     true,
		},
		{
			name:       "underscores inside space convention fields",
			raw:        "Pink_Floyd - Comfortably_Numb.flac",
			wantArtist: "Pink Floyd",
			wantTitle:  "Comfortably Numb",
			wantOK:     true,
		},
		{
			name:       "no extension",
			raw:        "Queen_-_Innuendo",
			wantArtist: "Queen",
			wantTitle:  "Innuendo",
			wantOK:     true,
		},
		{
			name:       "surrounding whitespace",
			raw:        "  Queen_-_One Vision.mp3  ",
			wantArtist: "Queen",
			wantTitle:  "One Vision",
			wantOK:     true,
		},
		{
			name:   "no delimiter",
			raw:    "unknown_format.mp3",
			wantOK: false,
		},
		{
			name:   "three fields with non-numeric lead",
			raw:    "Queen - Bohemian - Rhapsody.mp3",
			wantOK: false,
		},
		{
			name:   "too many fields",
			raw:    "a - b - c - d.mp3",
			wantOK: false,
		},
		{
			name:   "empty artist",
			raw:    " - Title.mp3",
			wantOK: false,
		},
		{
			name:   "empty title",
			raw:    "Artist - .mp3",
			wantOK: false,
		},
		{
			name:   "empty string",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "extension only",
			raw:    "track.mp3",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, ok := Parse(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if track.Artist != tt.wantArtist || track.Title != tt.wantTitle {
				t.Errorf("Parse(%q) = (%q, %q), want (%q, %q)",
					tt.raw, track.Artist, track.Title, tt.wantArtist, tt.wantTitle)
			}
		})
	}
}

// Re-parsing a successful parse's fields, re-joined with either recognized
// delimiter, must return the same pair.
func TestParseIdempotence(t *testing.T) {
	raws := []string{
		"Queen_-_Bohemian_Rhapsody.mp3",
		"01_-_Queen_-_BohemianRhapsody.mp3",
		"Daft Punk - One More Time.mp3",
		"Pink_Floyd - Comfortably_Numb.flac",
	}

	for _, raw := range raws {
		track, ok := Parse(raw)
		if !ok {
			t.Fatalf("Parse(%q) unexpectedly failed", raw)
		}

		for _, delim := range []string{" - ", "_-_"} {
			rejoined := track.Artist + delim + track.Title + ".mp3"
			again, ok := Parse(rejoined)
			if !ok {
				t.Errorf("Parse(%q) failed on re-parse", rejoined)
				continue
			}
			if again != track {
				t.Errorf("Parse(%q) = (%q, %q), want (%q, %q)",
					rejoined, again.Artist, again.Title, track.Artist, track.Title)
			}
		}
	}
}
