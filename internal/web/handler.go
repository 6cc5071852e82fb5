package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"screenslate-calendar/internal/cache"
	"screenslate-calendar/internal/event"
	"screenslate-calendar/internal/ical"
	"screenslate-calendar/internal/model"
	"screenslate-calendar/internal/pipeline"
	"screenslate-calendar/internal/report"
)

// windowCacheKey is the single cache entry for the whole upcoming window.
const windowCacheKey = "window"

// requestTimeout bounds a full re-aggregation triggered by a request.
const requestTimeout = 3 * time.Minute

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	agg   *pipeline.Aggregator
	cache *cache.Cache
}

// New creates a new Handler with the given aggregator and cache.
func New(agg *pipeline.Aggregator, c *cache.Cache) *Handler {
	return &Handler{
		agg:   agg,
		cache: c,
	}
}

// RegisterRoutes registers all HTTP routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.noCache(h.handleIndex))
	mux.HandleFunc("/screenings", h.noCache(h.handleScreenings))
	mux.HandleFunc("/calendar.ics", h.noCache(h.handleCalendar))
	mux.HandleFunc("/health", h.handleHealth)
}

func (h *Handler) noCache(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next(w, r)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Render(w, h.screenings(ctx)); err != nil {
		log.Printf("web: rendering report: %v", err)
	}
}

func (h *Handler) handleScreenings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(h.screenings(ctx))
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	events := event.SynthesizeAll(h.screenings(ctx))

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="screenings.ics"`)
	if err := ical.Write(w, events); err != nil {
		log.Printf("web: writing calendar: %v", err)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// screenings returns the current window's screenings, from cache when fresh.
// Aggregation failures are logged and yield an empty result so requests
// still get a page.
func (h *Handler) screenings(ctx context.Context) []model.Screening {
	if cached, ok := h.cache.Get(windowCacheKey); ok {
		return cached
	}

	result, err := h.agg.Run(ctx)
	if err != nil {
		log.Printf("web: aggregation failed: %v", err)
		return nil
	}

	if err := h.cache.Set(windowCacheKey, result); err != nil {
		log.Printf("web: caching screenings: %v", err)
	}
	return result
}

// Refresh re-runs the aggregation and replaces the cached window. The serve
// mode's cron schedule calls this so requests rarely pay for a full scrape.
func (h *Handler) Refresh(ctx context.Context) error {
	result, err := h.agg.Run(ctx)
	if err != nil {
		return err
	}
	if err := h.cache.Set(windowCacheKey, result); err != nil {
		return err
	}
	log.Printf("web: refreshed %d screenings", len(result))
	return nil
}
