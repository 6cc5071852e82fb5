// Package event converts normalized Screenings into calendar-ready events.
// The transform is pure: no I/O, deterministic output.
package event

import (
	"fmt"
	"strings"

	"screenslate-calendar/internal/model"
)

// DefaultDurationMinutes is used when a screening's runtime is unknown.
// An unknown runtime stays unknown on the Screening itself; only here does
// it become a concrete duration.
const DefaultDurationMinutes = 120

// Synthesize derives the CalendarEvent for one Screening.
func Synthesize(s model.Screening) model.CalendarEvent {
	duration := s.RuntimeMinutes
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}

	return model.CalendarEvent{
		Summary:         summary(s),
		Description:     description(s),
		Start:           s.StartTime,
		DurationMinutes: duration,
		Location:        s.Venue,
		URL:             s.URL,
	}
}

// SynthesizeAll derives events for all screenings, preserving order.
func SynthesizeAll(screenings []model.Screening) []model.CalendarEvent {
	events := make([]model.CalendarEvent, 0, len(screenings))
	for _, s := range screenings {
		events = append(events, Synthesize(s))
	}
	return events
}

// summary builds "Title (year) [format] at Venue", omitting absent parts.
func summary(s model.Screening) string {
	var b strings.Builder
	b.WriteString(s.Title)
	if s.Year != "" {
		fmt.Fprintf(&b, " (%s)", s.Year)
	}
	if s.Format != "" {
		fmt.Fprintf(&b, " [%s]", s.Format)
	}
	b.WriteString(" at ")
	b.WriteString(s.Venue)
	return b.String()
}

// description emits the fixed-order lines, skipping empty fields.
func description(s model.Screening) string {
	var lines []string
	if s.Director != "" {
		lines = append(lines, "Director: "+s.Director)
	}
	if s.RuntimeMinutes > 0 {
		lines = append(lines, fmt.Sprintf("Runtime: %d minutes", s.RuntimeMinutes))
	}
	if s.Series != "" {
		lines = append(lines, "Series: "+s.Series)
	}
	if s.Note != "" {
		lines = append(lines, s.Note)
	}
	if s.URL != "" {
		lines = append(lines, "More info: "+s.URL)
	}
	return strings.Join(lines, "\n")
}
