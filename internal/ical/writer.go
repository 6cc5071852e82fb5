// Package ical serializes calendar events to an iCalendar file. It is the
// final consumer of the pipeline's output and owns nothing else.
package ical

import (
	"fmt"
	"io"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"screenslate-calendar/internal/model"
)

const (
	productID    = "-//screenslate-calendar//EN"
	calendarName = "NYC Repertory Screenings"
)

// uidNamespace makes event UIDs deterministic: the same screening always gets
// the same UID, so re-importing a regenerated calendar updates events instead
// of duplicating them.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://www.screenslate.com"))

// Calendar builds an iCalendar from the ordered event list.
func Calendar(events []model.CalendarEvent) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(calendarName)

	now := time.Now()
	for _, ev := range events {
		e := cal.AddEvent(EventUID(ev))
		e.SetDtStampTime(now)
		e.SetStartAt(ev.Start)
		e.SetEndAt(ev.Start.Add(time.Duration(ev.DurationMinutes) * time.Minute))
		e.SetSummary(ev.Summary)
		e.SetLocation(ev.Location)
		if ev.Description != "" {
			e.SetDescription(ev.Description)
		}
		if ev.URL != "" {
			e.SetURL(ev.URL)
		}
	}
	return cal
}

// EventUID derives the deterministic UID for one event.
func EventUID(ev model.CalendarEvent) string {
	key := ev.Location + "|" + ev.Start.UTC().Format(time.RFC3339) + "|" + ev.Summary
	return uuid.NewSHA1(uidNamespace, []byte(key)).String()
}

// Write serializes the events to w.
func Write(w io.Writer, events []model.CalendarEvent) error {
	if _, err := io.WriteString(w, Calendar(events).Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// WriteFile serializes the events to the given path.
func WriteFile(path string, events []model.CalendarEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating calendar file: %w", err)
	}
	if err := Write(f, events); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
