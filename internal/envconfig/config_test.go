package envconfig

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebug(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"1":     true,
		"true":  true,
		"false": false,
		"0":     false,
		"yes":   true,
	}
	for v, want := range cases {
		t.Setenv("STATEPROVINCE_DEBUG", v)
		LoadConfig()
		assert.Equal(t, want, Debug, "STATEPROVINCE_DEBUG=%q", v)
	}
}

func TestCacheTTL(t *testing.T) {
	cases := map[string]time.Duration{
		"":      24 * time.Hour,
		"1h":    time.Hour,
		"90s":   90 * time.Second,
		"bogus": 24 * time.Hour,
		"-5m":   24 * time.Hour,
		"'30m'": 30 * time.Minute,
	}
	for v, want := range cases {
		t.Setenv("STATEPROVINCE_CACHE_TTL", v)
		LoadConfig()
		assert.Equal(t, want, CacheTTL, "STATEPROVINCE_CACHE_TTL=%q", v)
	}
}

func TestCacheDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STATEPROVINCE_CACHE_DIR", dir)
	LoadConfig()
	assert.Equal(t, dir, CacheDir)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("STATEPROVINCE_CACHE_DIR", "")
	LoadConfig()
	assert.Equal(t, filepath.Join(home, ".stateprovince-cache"), CacheDir)
}

func TestCatalogAndValues(t *testing.T) {
	t.Setenv("STATEPROVINCE_CATALOG", `"https://example.com/catalog.json"`)
	LoadConfig()
	assert.Equal(t, "https://example.com/catalog.json", Catalog)
	assert.Equal(t, "https://example.com/catalog.json", Values()["STATEPROVINCE_CATALOG"])
	assert.Len(t, AsMap(), 6)
}
