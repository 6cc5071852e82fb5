// Package report renders the screenings overview as a standalone HTML page.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"screenslate-calendar/internal/model"
)

//go:embed templates/report.html
var templates embed.FS

var reportTemplate = template.Must(template.ParseFS(templates, "templates/report.html"))

type reportDay struct {
	Label      string
	Screenings []model.Screening
}

type reportData struct {
	GeneratedAt string
	Days        []reportDay
}

// Render writes the HTML report for the given screenings, grouped by day.
// The input is expected in start-time order, as produced by the pipeline.
func Render(w io.Writer, screenings []model.Screening) error {
	data := reportData{
		GeneratedAt: time.Now().Format("January 2, 2006 3:04 PM"),
	}

	for _, s := range screenings {
		label := s.StartTime.Format("Monday, January 2")
		if len(data.Days) == 0 || data.Days[len(data.Days)-1].Label != label {
			data.Days = append(data.Days, reportDay{Label: label})
		}
		last := &data.Days[len(data.Days)-1]
		last.Screenings = append(last.Screenings, s)
	}

	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// RenderFile writes the HTML report to the given path.
func RenderFile(path string, screenings []model.Screening) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := Render(f, screenings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
