package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"screenslate-calendar/internal/model"
)

// Entry represents a cached aggregation result with metadata.
type Entry struct {
	Screenings []model.Screening `json:"screenings"`
	FetchedAt  time.Time         `json:"fetched_at"`
}

// Cache provides disk-based caching for aggregated screenings, so the serve
// mode doesn't re-scrape the upstream service on every request.
type Cache struct {
	dir string
	ttl time.Duration
	mu  sync.RWMutex
}

// New creates a new disk-based cache.
func New(cacheDir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	return &Cache{
		dir: cacheDir,
		ttl: ttl,
	}, nil
}

// Get retrieves cached screenings for a key if they exist and aren't expired.
func (c *Cache) Get(key string) ([]model.Screening, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.filePath(key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Since(entry.FetchedAt) > c.ttl {
		return nil, false
	}

	return entry.Screenings, true
}

// Set stores screenings in the cache.
func (c *Cache) Set(key string, screenings []model.Screening) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{
		Screenings: screenings,
		FetchedAt:  time.Now(),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath(key), data, 0644)
}

// Invalidate removes a specific cache entry.
func (c *Cache) Invalidate(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.filePath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Cache) filePath(key string) string {
	// Sanitize key to be filesystem-safe
	safeKey := ""
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			safeKey += string(r)
		} else {
			safeKey += "_"
		}
	}
	return filepath.Join(c.dir, safeKey+".json")
}
