package extract

import (
	"reflect"
	"testing"
)

func TestParseInfoText(t *testing.T) {
	tests := []struct {
		name     string
		info     string
		director string
		year     string
		runtime  int
		format   string
	}{
		{
			name:     "full info",
			info:     "Agnès Varda, 1985, 90M, DCP",
			director: "Agnès Varda",
			year:     "1985",
			runtime:  90,
			format:   "DCP",
		},
		{
			name:     "reordered tokens",
			info:     "DCP, 90M, 1985, Agnès Varda",
			director: "Agnès Varda",
			year:     "1985",
			runtime:  90,
			format:   "DCP",
		},
		{
			name:     "lowercase markers",
			info:     "Agnès Varda, 1985, 90m, dcp",
			director: "Agnès Varda",
			year:     "1985",
			runtime:  90,
			format:   "DCP",
		},
		{
			name:     "surrounding whitespace",
			info:     "  Chantal Akerman ,  1975 ,  201M ,  35MM ",
			director: "Chantal Akerman",
			year:     "1975",
			runtime:  201,
			format:   "35MM",
		},
		{
			name:     "quoted director",
			info:     "“William Greaves”, 1968, 75M",
			director: "William Greaves",
			year:     "1968",
			runtime:  75,
		},
		{
			name:     "director only",
			info:     "Kelly Reichardt",
			director: "Kelly Reichardt",
		},
		{
			name: "year only",
			info: "1999",
			year: "1999",
		},
		{
			name: "empty info",
			info: "",
		},
		{
			name:     "html escaped",
			info:     "Wong Kar-wai &amp; Christopher Doyle, 2000, 98M, 35MM",
			director: "Wong Kar-wai & Christopher Doyle",
			year:     "2000",
			runtime:  98,
			format:   "35MM",
		},
		{
			name:     "wrapped in tags",
			info:     "<span>Claire Denis</span>, <em>1999</em>, 92M, 35MM",
			director: "Claire Denis",
			year:     "1999",
			runtime:  92,
			format:   "35MM",
		},
		{
			name:     "format 16MM not mistaken for runtime",
			info:     "Maya Deren, 1943, 16MM",
			director: "Maya Deren",
			year:     "1943",
			format:   "16MM",
		},
		{
			name:     "first-seen director kept",
			info:     "Joel Coen, Ethan Coen, 1996, 98M",
			director: "Joel Coen",
			year:     "1996",
			runtime:  98,
		},
		{
			name:     "4-digit token outside 19/20 is not a year",
			info:     "2525, 90M",
			director: "2525",
			runtime:  90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Parse("", tt.info, "")
			if d.Director != tt.director {
				t.Errorf("director = %q, want %q", d.Director, tt.director)
			}
			if d.Year != tt.year {
				t.Errorf("year = %q, want %q", d.Year, tt.year)
			}
			if d.RuntimeMinutes != tt.runtime {
				t.Errorf("runtime = %d, want %d", d.RuntimeMinutes, tt.runtime)
			}
			if d.Format != tt.format {
				t.Errorf("format = %q, want %q", d.Format, tt.format)
			}
		})
	}
}

func TestSplitTitleVenue(t *testing.T) {
	tests := []struct {
		title     string
		wantTitle string
		wantVenue string
	}{
		{"Jeanne Dielman at Film Forum", "Jeanne Dielman", "Film Forum"},
		{"In the Mood for Love at Metrograph", "In the Mood for Love", "Metrograph"},
		{"Eraserhead at IFC Center", "Eraserhead", "IFC Center"},
		{"Flaming Creatures at Anthology Film Archives", "Flaming Creatures", "Anthology Film Archives"},
		// Suffix match is case-insensitive.
		{"Stalker AT FILM FORUM", "Stalker", "Film Forum"},
		// No suffix: title passes through, no candidate.
		{"My Dinner with Andre", "My Dinner with Andre", ""},
		// "at" mid-title is not a suffix.
		{"The Man Who Fell to Earth", "The Man Who Fell to Earth", ""},
		// Escaped entities in the title are decoded.
		{"Smiles of a Summer Night &amp; Others at Metrograph", "Smiles of a Summer Night & Others", "Metrograph"},
	}

	for _, tt := range tests {
		d := Parse(tt.title, "", "")
		if d.Title != tt.wantTitle || d.VenueCandidate != tt.wantVenue {
			t.Errorf("Parse(%q) = (%q, %q), want (%q, %q)",
				tt.title, d.Title, d.VenueCandidate, tt.wantTitle, tt.wantVenue)
		}
	}
}

func TestParseSeries(t *testing.T) {
	tests := []struct {
		series string
		want   string
	}{
		{`<a href="/series/varda">Varda by Agnès</a>`, "Varda by Agnès"},
		{"Essential Cinema", "Essential Cinema"},
		{"<em></em>", ""},
		{"", ""},
		{"Queer &amp; Now &amp; Then", "Queer & Now & Then"},
	}

	for _, tt := range tests {
		d := Parse("", "", tt.series)
		if d.Series != tt.want {
			t.Errorf("series %q = %q, want %q", tt.series, d.Series, tt.want)
		}
	}
}

// Running the extractor twice on the same input must yield identical output.
func TestParseIdempotent(t *testing.T) {
	title := "Jeanne Dielman at Film Forum"
	info := "Chantal Akerman, 1975, 201M, 35MM"
	series := "<a href=\"/series/akerman\">Akerman x 2</a>"

	first := Parse(title, info, series)
	second := Parse(title, info, series)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extractor is not idempotent: %+v vs %+v", first, second)
	}
}

// For any info blob containing exactly one 4-digit token beginning with 19 or
// 20, the extracted year equals that token regardless of position.
func TestYearPositionIndependent(t *testing.T) {
	blobs := []string{
		"1985, Agnès Varda, 90M, DCP",
		"Agnès Varda, 1985, 90M, DCP",
		"Agnès Varda, 90M, DCP, 1985",
		"   1985   ",
	}
	for _, blob := range blobs {
		d := Parse("", blob, "")
		if d.Year != "1985" {
			t.Errorf("Parse(%q).Year = %q, want %q", blob, d.Year, "1985")
		}
	}
}
