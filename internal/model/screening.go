package model

import "time"

// Screening represents a single normalized screening: one film, one venue,
// one showtime. It is built once by the pipeline and never mutated.
type Screening struct {
	Title string `json:"title"`

	// Director may be empty when the upstream info text omits it.
	Director string `json:"director,omitempty"`

	// Year is a 4-digit string, or empty when unknown.
	Year string `json:"year,omitempty"`

	// RuntimeMinutes is 0 when the upstream listing does not state a runtime.
	// Defaulting happens at event-synthesis time, not here.
	RuntimeMinutes int `json:"runtime_minutes,omitempty"`

	// Format is one of DCP, 35MM, 16MM, 70MM, or empty.
	Format string `json:"format,omitempty"`

	Series string `json:"series,omitempty"`

	// Venue is always one of the canonical venue whitelist; a Screening with
	// no recognized venue is never constructed.
	Venue string `json:"venue"`

	// StartTime carries the slot's local showtime in the source timezone.
	StartTime time.Time `json:"start_time"`

	Note string `json:"note,omitempty"`
	URL  string `json:"url,omitempty"`
}

// CalendarEvent is the calendar-ready shape derived 1:1 from a Screening.
// It is consumed by the iCalendar writer and has no behavior of its own.
type CalendarEvent struct {
	Summary         string    `json:"summary"`
	Description     string    `json:"description,omitempty"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location"`
	URL             string    `json:"url,omitempty"`
}
