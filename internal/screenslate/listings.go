package screenslate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// FetchListings scrapes the date's server-rendered listings page. Older
// revisions of the service exposed listings only as HTML; the page is still
// served and acts as the fallback shape when the JSON index misbehaves. The
// result mirrors the index+detail pair so the merger handles both sources
// identically; slot ids are synthesized and stable within the page.
func (c *Client) FetchListings(ctx context.Context, date time.Time) ([]SlotIndexEntry, map[string]RawDetail, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	u := c.baseURL + "/listings?date=" + date.Format(dateFormat)
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching listings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing listings HTML: %w", err)
	}

	slots, details := parseListings(doc, date)
	return slots, details, nil
}

// parseListings walks the listings page venue by venue. Each showtime becomes
// its own slot so that downstream, one slot still produces at most one
// screening.
func parseListings(doc *goquery.Document, date time.Time) ([]SlotIndexEntry, map[string]RawDetail) {
	var slots []SlotIndexEntry
	details := make(map[string]RawDetail)
	n := 0

	doc.Find("div.venue").Each(func(_ int, venueSel *goquery.Selection) {
		venueName := strings.TrimSpace(venueSel.Find("h3.venue-title").First().Text())

		venueSel.Find("div.listing").Each(func(_ int, listing *goquery.Selection) {
			title := strings.TrimSpace(listing.Find(".media-title h4").First().Text())
			if title == "" {
				return
			}

			info := strings.TrimSpace(listing.Find(".media-title-info").First().Text())
			series, _ := listing.Find(".series").First().Html()
			href, _ := listing.Find("a").First().Attr("href")

			listing.Find(".showtimes span").Each(func(_ int, st *goquery.Selection) {
				ts, ok := parseShowtime(date, st.Text())
				if !ok {
					return
				}
				nid := fmt.Sprintf("html-%s-%d", date.Format(dateFormat), n)
				n++

				slots = append(slots, SlotIndexEntry{
					NID:       nid,
					Timestamp: ts,
				})
				details[nid] = RawDetail{
					NID:        nid,
					Title:      title,
					InfoText:   info,
					SeriesText: series,
					VenueText:  venueName,
					URLText:    href,
				}
			})
		})
	})

	return slots, details
}

// showtimeFormats covers the clock shapes seen on the listings page.
var showtimeFormats = []string{"3:04pm", "3:04 pm", "15:04"}

// parseShowtime combines the page date with a showtime label like "7:00pm"
// into the index endpoint's timestamp format.
func parseShowtime(date time.Time, label string) (string, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return "", false
	}
	for _, layout := range showtimeFormats {
		clock, err := time.Parse(layout, label)
		if err != nil {
			continue
		}
		ts := fmt.Sprintf("%sT%s", date.Format("2006-01-02"), clock.Format("15:04:05"))
		return ts, true
	}
	return "", false
}
