package screenslate

import (
	"encoding/json"
	"fmt"
)

// SlotIndexEntry is one showtime as listed by the date index endpoint.
type SlotIndexEntry struct {
	// NID is an opaque identifier, stable within a day. It keys the detail
	// batch responses.
	NID string `json:"nid"`

	// Timestamp is the naive local datetime string, e.g. "2026-09-01T19:00:00".
	Timestamp string `json:"field_timestamp"`

	// Note is optional free text attached to the slot (intro, Q&A, etc).
	Note string `json:"field_note"`
}

// RawDetail is the unparsed movie metadata for one screening id. Field names
// follow the upstream service's Drupal field naming.
type RawDetail struct {
	NID string `json:"nid"`

	// Title may embed an " at <Venue>" suffix.
	Title string `json:"title"`

	// InfoText is the comma-joined, possibly HTML-encoded
	// director/year/runtime/format blob.
	InfoText string `json:"media_title_info"`

	// SeriesText is HTML-wrapped or plain.
	SeriesText string `json:"field_series"`

	VenueText string `json:"venue_title"`
	URLText   string `json:"field_url"`
}

// decodeDetailBatch normalizes the two response shapes the detail endpoint
// has used across API revisions: an object keyed by id, or a list of objects
// each carrying its own nid. Normalizing here keeps the duck typing out of
// the rest of the pipeline.
func decodeDetailBatch(data []byte) (map[string]RawDetail, error) {
	var keyed map[string]RawDetail
	if err := json.Unmarshal(data, &keyed); err == nil {
		for id, d := range keyed {
			if d.NID == "" {
				d.NID = id
				keyed[id] = d
			}
		}
		return keyed, nil
	}

	var list []RawDetail
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decoding detail batch: %w", err)
	}
	out := make(map[string]RawDetail, len(list))
	for _, d := range list {
		if d.NID != "" {
			out[d.NID] = d
		}
	}
	return out, nil
}
