package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const cacheFile = "catalog.json"

// Cache stores the last fetched catalog on disk.
type Cache struct {
	Dir string
	TTL time.Duration
}

// CachedCatalog is the on-disk cache entry.
type CachedCatalog struct {
	Source      string    `json:"source"`
	Catalog     *Catalog  `json:"catalog"`
	LastUpdated time.Time `json:"last_updated"`
	ETag        string    `json:"etag"`
}

// CacheInfo summarizes the cache for display.
type CacheInfo struct {
	Path        string
	Source      string
	Countries   int
	Regions     int
	LastUpdated time.Time
	Age         time.Duration
}

func (c Cache) Path() string {
	return filepath.Join(c.Dir, cacheFile)
}

// Load reads the cache entry. It returns ErrNoCache when there is none.
func (c Cache) Load() (*CachedCatalog, error) {
	data, err := os.ReadFile(c.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoCache
	} else if err != nil {
		return nil, err
	}

	var entry CachedCatalog
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	if entry.Catalog == nil {
		return nil, ErrNoCache
	}
	return &entry, nil
}

func (c Cache) Save(source string, cat *Catalog, etag string) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}

	entry := CachedCatalog{
		Source:      source,
		Catalog:     cat,
		LastUpdated: time.Now(),
		ETag:        etag,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.Path(), data, 0o644)
}

func (c Cache) Info() (*CacheInfo, error) {
	entry, err := c.Load()
	if err != nil {
		return nil, err
	}
	return &CacheInfo{
		Path:        c.Path(),
		Source:      entry.Source,
		Countries:   len(entry.Catalog.Countries),
		Regions:     entry.Catalog.RegionCount(),
		LastUpdated: entry.LastUpdated,
		Age:         time.Since(entry.LastUpdated),
	}, nil
}

// Clear removes the cache entry. The directory and anything else in it stay.
func (c Cache) Clear() error {
	if err := os.Remove(c.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Fetch returns the catalog at url, served from the cache while it is
// younger than the TTL and was fetched from the same url. A stale entry with
// an ETag is revalidated, and a 304 keeps the cached catalog.
func Fetch(ctx context.Context, url string, cache Cache) (*Catalog, error) {
	entry, err := cache.Load()
	if err != nil || entry.Source != url {
		entry = nil
	}
	if entry != nil && time.Since(entry.LastUpdated) < cache.TTL {
		slog.Debug("using cached catalog", "path", cache.Path(), "age", time.Since(entry.LastUpdated).Round(time.Second))
		return entry.Catalog, nil
	}

	slog.Info("fetching catalog", "url", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if entry != nil && entry.ETag != "" {
		req.Header.Set("If-None-Match", entry.ETag)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && entry != nil {
		slog.Debug("catalog not modified", "url", url, "etag", entry.ETag)
		if err := cache.Save(url, entry.Catalog, entry.ETag); err != nil {
			slog.Warn("failed to cache catalog", "path", cache.Path(), "error", err)
		}
		return entry.Catalog, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch catalog: %s", resp.Status)
	}

	cat, err := Decode(resp.Body, FormatJSON)
	if err != nil {
		return nil, err
	}

	if err := cache.Save(url, cat, resp.Header.Get("ETag")); err != nil {
		slog.Warn("failed to cache catalog", "path", cache.Path(), "error", err)
	}

	return cat, nil
}
