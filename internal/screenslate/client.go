// Package screenslate is the client for the cinema-listing service: the JSON
// date index, the JSON detail batch endpoint, and the legacy server-rendered
// listings page. All requests share one rate limiter and bounded timeouts.
package screenslate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://www.screenslate.com"

	// nycCityID is the service's target-location identifier for New York City.
	nycCityID = "10969"

	// dateFormat is the date-string format the service expects.
	dateFormat = "20060102"

	// batchSize bounds the number of ids per detail request, keeping the URL
	// short and the backend load predictable.
	batchSize = 20

	defaultMinInterval = 500 * time.Millisecond
	defaultTimeout     = 15 * time.Second
)

// Client talks to the listing service. Construct it with NewClient; the zero
// value is not usable.
type Client struct {
	baseURL string
	cityID  string
	httpc   *http.Client
	limiter *RateLimiter
}

// Option applies configuration to a Client.
type Option func(*Client)

// WithBaseURL overrides the service base URL (e.g. httptest.Server.URL in tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for all requests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithMinInterval overrides the minimum interval between outbound requests.
// Zero disables rate limiting; tests use this.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) {
		c.limiter = NewRateLimiter(d)
	}
}

// NewClient creates a client with production defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		cityID:  nycCityID,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.limiter == nil {
		c.limiter = NewRateLimiter(defaultMinInterval)
	}
	return c
}

// FetchIndex retrieves the ordered list of screening slots for one calendar
// date. Transport and decode errors are returned to the caller; the pipeline
// treats them as "zero slots for this date".
func (c *Client) FetchIndex(ctx context.Context, date time.Time) ([]SlotIndexEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("_format", "json")
	q.Set("date", date.Format(dateFormat))
	q.Set("field_city_target_id", c.cityID)

	body, err := c.get(ctx, c.baseURL+"/api/screenings/date?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetching index: %w", err)
	}

	var slots []SlotIndexEntry
	if err := json.Unmarshal(body, &slots); err != nil {
		return nil, fmt.Errorf("decoding index: %w", err)
	}
	return slots, nil
}

// FetchDetails resolves movie metadata for the given ids in batches of 20.
// Per-batch failure is isolated: a failed batch's ids are simply absent from
// the result and later batches still resolve. The returned map may therefore
// be a strict subset of the requested ids.
func (c *Client) FetchDetails(ctx context.Context, ids []string) map[string]RawDetail {
	details := make(map[string]RawDetail)
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		resolved, err := c.fetchDetailBatch(ctx, batch)
		if err != nil {
			log.Printf("screenslate: detail batch of %d ids failed: %v", len(batch), err)
			if ctx.Err() != nil {
				return details
			}
			continue
		}
		for id, d := range resolved {
			details[id] = d
		}
	}
	return details
}

func (c *Client) fetchDetailBatch(ctx context.Context, ids []string) (map[string]RawDetail, error) {
	if len(ids) == 0 {
		return map[string]RawDetail{}, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	// Ids are +-joined in the path, per the service's batch URL convention.
	u := c.baseURL + "/api/screenings/" + strings.Join(ids, "+") + "?_format=json"
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return decodeDetailBatch(body)
}

// get fetches a URL and returns the response body, rejecting non-2xx statuses.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}
