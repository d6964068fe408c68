package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var (
	// Set via STATEPROVINCE_DEBUG in the environment
	Debug bool
	// Set via STATEPROVINCE_TRACE in the environment
	Trace bool
	// Set via STATEPROVINCE_CATALOG in the environment
	Catalog string
	// Set via STATEPROVINCE_CACHE_DIR in the environment
	CacheDir string
	// Set via STATEPROVINCE_CACHE_TTL in the environment
	CacheTTL time.Duration
	// Set via STATEPROVINCE_LOG in the environment
	LogFile string
)

const defaultCacheTTL = 24 * time.Hour

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"STATEPROVINCE_DEBUG":     {"STATEPROVINCE_DEBUG", Debug, "Show additional debug information (e.g. STATEPROVINCE_DEBUG=1)"},
		"STATEPROVINCE_TRACE":     {"STATEPROVINCE_TRACE", Trace, "Log every pruned option"},
		"STATEPROVINCE_CATALOG":   {"STATEPROVINCE_CATALOG", Catalog, "Catalog file or URL (default: built-in sample)"},
		"STATEPROVINCE_CACHE_DIR": {"STATEPROVINCE_CACHE_DIR", CacheDir, "Location for the fetched catalog cache"},
		"STATEPROVINCE_CACHE_TTL": {"STATEPROVINCE_CACHE_TTL", CacheTTL, "How long a fetched catalog stays fresh (default \"24h\")"},
		"STATEPROVINCE_LOG":       {"STATEPROVINCE_LOG", LogFile, "Log file for the interactive picker"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	Debug = false
	if debug := clean("STATEPROVINCE_DEBUG"); debug != "" {
		d, err := strconv.ParseBool(debug)
		if err == nil {
			Debug = d
		} else {
			Debug = true
		}
	}

	Trace = false
	if trace := clean("STATEPROVINCE_TRACE"); trace != "" {
		d, err := strconv.ParseBool(trace)
		if err == nil {
			Trace = d
		} else {
			Trace = true
		}
	}

	Catalog = clean("STATEPROVINCE_CATALOG")
	LogFile = clean("STATEPROVINCE_LOG")

	CacheDir = clean("STATEPROVINCE_CACHE_DIR")
	if CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			CacheDir = ".stateprovince-cache"
		} else {
			CacheDir = filepath.Join(home, ".stateprovince-cache")
		}
	}

	CacheTTL = defaultCacheTTL
	if ttl := clean("STATEPROVINCE_CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			slog.Error("invalid setting, ignoring", "STATEPROVINCE_CACHE_TTL", ttl, "error", err)
		} else {
			CacheTTL = d
		}
	}
}
