// Package extract parses the loosely structured composite text that the
// listing service embeds in its detail records: a title that may carry an
// " at <Venue>" suffix, a comma-joined director/year/runtime/format blob,
// and an HTML-wrapped series name.
package extract

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Detail holds the typed fields extracted from one raw detail record.
// Any field the classifier could not resolve is left empty (or 0 for
// RuntimeMinutes); that is the documented default, not an error.
type Detail struct {
	Title          string
	VenueCandidate string
	Director       string
	Year           string
	RuntimeMinutes int
	Format         string
	Series         string
}

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	spacePattern   = regexp.MustCompile(`\s+`)
	yearPattern    = regexp.MustCompile(`^(19|20)\d{2}$`)
	runtimePattern = regexp.MustCompile(`(?i)(\d+)M$`)
)

// formats is the closed set of recognized projection formats.
var formats = []string{"DCP", "35MM", "16MM", "70MM"}

// venueSuffixes is the ordered list of known " at <Venue>" title suffixes.
// The first matching suffix wins. A suffix match only yields a candidate:
// whether the candidate survives is decided by venue canonicalization, since
// venue naming differs between the two upstream data sources.
var venueSuffixes = []string{
	" at Film Forum",
	" at Metrograph",
	" at IFC Center",
	" at Anthology Film Archives",
}

type tokenClass int

const (
	classDirector tokenClass = iota
	classYear
	classRuntime
	classFormat
)

// infoClassifiers is the ordered token classification table for the info
// blob. The first predicate that matches a token wins; tokens matching no
// predicate fall through to classDirector. Upstream format drift is the
// dominant source of parsing bugs, so this list is kept in one place.
var infoClassifiers = []struct {
	class tokenClass
	match func(string) bool
}{
	{classYear, yearPattern.MatchString},
	{classRuntime, isRuntime},
	{classFormat, isFormat},
}

// Parse extracts typed fields from the composite title, info and series text
// of one raw detail record. It is a pure function: calling it twice on the
// same input yields identical output.
func Parse(title, infoText, seriesText string) Detail {
	var d Detail
	d.Title, d.VenueCandidate = splitTitleVenue(cleanText(title))
	d.Director, d.Year, d.RuntimeMinutes, d.Format = parseInfo(infoText)
	d.Series = cleanText(seriesText)
	return d
}

// parseInfo splits the info blob on commas and classifies each token with the
// ordered classifier table. For every class only the first-seen token is
// kept; tokens matching nothing after a director has been found are dropped.
func parseInfo(infoText string) (director, year string, runtime int, format string) {
	for _, tok := range strings.Split(cleanText(infoText), ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		switch classify(tok) {
		case classYear:
			if year == "" {
				year = tok
			}
		case classRuntime:
			if runtime == 0 {
				runtime = runtimeMinutes(tok)
			}
		case classFormat:
			if format == "" {
				format = strings.ToUpper(tok)
			}
		default:
			if director == "" {
				director = trimQuotes(tok)
			}
		}
	}
	return director, year, runtime, format
}

func classify(tok string) tokenClass {
	for _, c := range infoClassifiers {
		if c.match(tok) {
			return c.class
		}
	}
	return classDirector
}

func isRuntime(tok string) bool {
	return runtimePattern.MatchString(tok)
}

// isFormat reports whether the whole token is a member of the closed format
// set. The runtime pattern requires a digit directly before the trailing M,
// so "35MM" never classifies as a runtime.
func isFormat(tok string) bool {
	upper := strings.ToUpper(tok)
	for _, f := range formats {
		if upper == f {
			return true
		}
	}
	return false
}

func runtimeMinutes(tok string) int {
	m := runtimePattern.FindStringSubmatch(tok)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// splitTitleVenue strips a known " at <Venue>" suffix from the title and
// returns the remaining title plus the venue candidate, if any.
func splitTitleVenue(title string) (string, string) {
	lower := strings.ToLower(title)
	for _, suffix := range venueSuffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			stripped := strings.TrimSpace(title[:len(title)-len(suffix)])
			return stripped, strings.TrimPrefix(suffix, " at ")
		}
	}
	return title, ""
}

// cleanText strips HTML tags, decodes entities and collapses whitespace.
func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

func trimQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\"'“”‘’"))
}
