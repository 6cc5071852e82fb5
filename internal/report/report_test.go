package report

import (
	"strings"
	"testing"
	"time"

	"screenslate-calendar/internal/model"
)

func TestRenderGroupsByDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	screenings := []model.Screening{
		{
			Title:          "Vagabond",
			Director:       "Agnès Varda",
			Year:           "1985",
			RuntimeMinutes: 105,
			Format:         "DCP",
			Series:         "Varda by Agnès",
			Venue:          "Film Forum",
			StartTime:      time.Date(2026, 9, 1, 19, 0, 0, 0, ny),
			URL:            "https://example.org/vagabond",
		},
		{
			Title:     "Eraserhead",
			Venue:     "IFC Center",
			StartTime: time.Date(2026, 9, 1, 23, 59, 0, 0, ny),
			Note:      "Midnight movie",
		},
		{
			Title:     "News from Home",
			Venue:     "Anthology Film Archives",
			StartTime: time.Date(2026, 9, 2, 18, 30, 0, 0, ny),
		},
	}

	var b strings.Builder
	if err := Render(&b, screenings); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"Tuesday, September 1",
		"Wednesday, September 2",
		"Vagabond",
		"Agnès Varda",
		"7:00 PM",
		"Film Forum",
		"Midnight movie",
		"News from Home",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Two day headers, not three: the first two screenings share a day.
	if got := strings.Count(out, "<h2>"); got != 2 {
		t.Errorf("got %d day headers, want 2", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	var b strings.Builder
	if err := Render(&b, nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(b.String(), "NYC Repertory Screenings") {
		t.Error("empty report missing page title")
	}
}
