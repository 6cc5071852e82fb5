package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"screenslate-calendar/internal/cache"
	"screenslate-calendar/internal/config"
	"screenslate-calendar/internal/pipeline"
	"screenslate-calendar/internal/screenslate"
	"screenslate-calendar/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Environment overrides for container deployments.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Listen = ":" + port
	}
	if cacheDir := os.Getenv("CACHE_DIR"); cacheDir != "" {
		cfg.CacheDir = cacheDir
	}

	c, err := cache.New(cfg.CacheDir, time.Duration(cfg.CacheTTLHours)*time.Hour)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	agg := pipeline.New(screenslate.NewClient())
	handler := web.New(agg, c)

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := handler.Refresh(ctx); err != nil {
			log.Printf("Scheduled refresh failed: %v", err)
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RefreshCron, refresh); err != nil {
		log.Fatalf("Invalid refresh schedule %q: %v", cfg.RefreshCron, err)
	}
	scheduler.Start()

	// Warm the cache so the first request does not pay for a full scrape.
	go refresh()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	log.Printf("Server starting on %s", cfg.Listen)
	log.Printf("Cache directory: %s", cfg.CacheDir)
	log.Printf("Refresh schedule: %s", cfg.RefreshCron)

	if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
		log.Fatal(err)
	}
}
