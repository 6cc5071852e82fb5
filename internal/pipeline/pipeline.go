// Package pipeline drives the aggregation run: for each date in the forward
// window it resolves the day's index into full screening records, extracts
// and canonicalizes fields, and merges everything into normalized Screenings.
// Per-date and per-batch failures are absorbed here; only an empty result
// across the whole window surfaces as an error.
package pipeline

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"screenslate-calendar/internal/extract"
	"screenslate-calendar/internal/model"
	"screenslate-calendar/internal/screenslate"
	"screenslate-calendar/internal/venue"
)

const (
	// WindowDays is the fixed forward-looking date window, starting today.
	WindowDays = 7

	sourceTimezone = "America/New_York"
	slotTimeLayout = "2006-01-02T15:04:05"
	dayLayout      = "2006-01-02"
)

// ErrNoScreenings reports that the entire window yielded nothing. A fully
// empty window almost always means the upstream contract changed, so it is
// surfaced instead of silently writing an empty calendar.
var ErrNoScreenings = errors.New("no screenings found in the date window")

// sourceTZ is both the timezone slot timestamps are expressed in and the
// target timezone of the generated calendar.
var sourceTZ *time.Location

func init() {
	var err error
	sourceTZ, err = time.LoadLocation(sourceTimezone)
	if err != nil {
		sourceTZ = time.UTC
	}
}

// Fetcher is the subset of the listing client the pipeline needs.
type Fetcher interface {
	FetchIndex(ctx context.Context, date time.Time) ([]screenslate.SlotIndexEntry, error)
	FetchDetails(ctx context.Context, ids []string) map[string]screenslate.RawDetail
	FetchListings(ctx context.Context, date time.Time) ([]screenslate.SlotIndexEntry, map[string]screenslate.RawDetail, error)
}

// Aggregator runs the sequential aggregation over the date window.
type Aggregator struct {
	client Fetcher
	days   int
	loc    *time.Location
	now    func() time.Time
}

// Option applies configuration to an Aggregator.
type Option func(*Aggregator)

// WithDays overrides the window length; tests use short windows.
func WithDays(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.days = n
		}
	}
}

// WithNow overrides the clock used to anchor the window.
func WithNow(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an Aggregator over the given client.
func New(client Fetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		client: client,
		days:   WindowDays,
		loc:    sourceTZ,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run aggregates screenings for every date in the window, in date order, and
// returns them sorted by start time. Dates that fail upstream contribute zero
// screenings without affecting the rest of the window.
func (a *Aggregator) Run(ctx context.Context) ([]model.Screening, error) {
	start := a.now().In(a.loc)

	var all []model.Screening
	for i := 0; i < a.days; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		date := start.AddDate(0, 0, i)
		screenings := a.aggregateDate(ctx, date)
		log.Printf("pipeline: %s: %d screenings", date.Format(dayLayout), len(screenings))
		all = append(all, screenings...)
	}

	if len(all) == 0 {
		return nil, ErrNoScreenings
	}

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].StartTime.Equal(all[j].StartTime) {
			return all[i].StartTime.Before(all[j].StartTime)
		}
		if all[i].Venue != all[j].Venue {
			return all[i].Venue < all[j].Venue
		}
		return all[i].Title < all[j].Title
	})
	return all, nil
}

// aggregateDate resolves one date. Index failures fall back to the legacy
// listings page; if that fails too, the date yields zero screenings.
func (a *Aggregator) aggregateDate(ctx context.Context, date time.Time) []model.Screening {
	day := date.Format(dayLayout)

	slots, err := a.client.FetchIndex(ctx, date)
	if err != nil {
		log.Printf("pipeline: index for %s failed, trying listings page: %v", day, err)
		htmlSlots, htmlDetails, hErr := a.client.FetchListings(ctx, date)
		if hErr != nil {
			log.Printf("pipeline: listings page for %s failed: %v", day, hErr)
			return nil
		}
		return Merge(htmlSlots, htmlDetails)
	}
	if len(slots) == 0 {
		return nil
	}

	ids := make([]string, 0, len(slots))
	seen := make(map[string]bool, len(slots))
	for _, s := range slots {
		if s.NID != "" && !seen[s.NID] {
			seen[s.NID] = true
			ids = append(ids, s.NID)
		}
	}

	details := a.client.FetchDetails(ctx, ids)
	return Merge(slots, details)
}

// Merge joins index slots with their resolved details by id, extracts typed
// fields, and keeps only screenings at canonical venues. Slots whose id is
// unresolved or whose venue is outside the whitelist are dropped; that is the
// expected outcome for incomplete batches and out-of-scope venues, not an
// error. One slot produces at most one Screening, and the slot's timestamp is
// carried over unchanged.
func Merge(slots []screenslate.SlotIndexEntry, details map[string]screenslate.RawDetail) []model.Screening {
	var out []model.Screening
	for _, slot := range slots {
		d, ok := details[slot.NID]
		if !ok {
			continue
		}

		f := extract.Parse(d.Title, d.InfoText, d.SeriesText)

		v, ok := venue.Canonical(d.VenueText)
		if !ok {
			v, ok = venue.Canonical(f.VenueCandidate)
		}
		if !ok {
			continue
		}

		start, err := time.ParseInLocation(slotTimeLayout, slot.Timestamp, sourceTZ)
		if err != nil {
			log.Printf("pipeline: slot %s has unparseable timestamp %q", slot.NID, slot.Timestamp)
			continue
		}

		out = append(out, model.Screening{
			Title:          f.Title,
			Director:       f.Director,
			Year:           f.Year,
			RuntimeMinutes: f.RuntimeMinutes,
			Format:         f.Format,
			Series:         f.Series,
			Venue:          v,
			StartTime:      start,
			Note:           slot.Note,
			URL:            d.URLText,
		})
	}
	return out
}
