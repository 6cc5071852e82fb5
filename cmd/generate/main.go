package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"

	"screenslate-calendar/internal/config"
	"screenslate-calendar/internal/event"
	"screenslate-calendar/internal/ical"
	"screenslate-calendar/internal/pipeline"
	"screenslate-calendar/internal/report"
	"screenslate-calendar/internal/screenslate"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	outDir := flag.String("out", "", "output directory (overrides the config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	agg := pipeline.New(screenslate.NewClient())

	screenings, err := agg.Run(context.Background())
	if err != nil {
		if errors.Is(err, pipeline.ErrNoScreenings) {
			log.Fatalf("No screenings found for the upcoming week")
		}
		log.Fatalf("Aggregation failed: %v", err)
	}
	log.Printf("Aggregated %d screenings", len(screenings))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	icsPath := filepath.Join(cfg.OutputDir, "calendar.ics")
	if err := ical.WriteFile(icsPath, event.SynthesizeAll(screenings)); err != nil {
		log.Fatalf("Failed to write calendar: %v", err)
	}
	log.Printf("Wrote %s", icsPath)

	htmlPath := filepath.Join(cfg.OutputDir, "index.html")
	if err := report.RenderFile(htmlPath, screenings); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	log.Printf("Wrote %s", htmlPath)
}
