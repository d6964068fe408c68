package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// LocationServices are the IP geolocation endpoints tried by Locate, in order.
var LocationServices = []string{
	"https://ipapi.co/json",
	"http://ip-api.com/json",
}

// Location is the caller's position as reported by a geolocation service.
type Location struct {
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Region      string `json:"region"`
	RegionCode  string `json:"region_code"`
}

// Locate asks each service in turn for the caller's country and returns the
// first usable answer. It reports false when every service fails.
func Locate(ctx context.Context, services ...string) (Location, bool) {
	client := &http.Client{Timeout: 3 * time.Second}
	for _, url := range services {
		loc, err := locate(ctx, client, url)
		if err != nil {
			slog.Debug("geolocation failed", "service", url, "error", err)
			continue
		}
		if loc.CountryCode == "" {
			continue
		}
		return loc, true
	}
	return Location{}, false
}

func locate(ctx context.Context, client *http.Client, url string) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("%s: unexpected status %s", url, resp.Status)
	}

	// ipapi.co reports the code as country_code, ip-api.com as countryCode
	// with the name in country.
	var raw struct {
		Location
		AltCountryCode string `json:"countryCode"`
		AltRegion      string `json:"regionName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Location{}, err
	}
	loc := raw.Location
	if loc.CountryCode == "" && len(raw.AltCountryCode) == 2 {
		loc.CountryCode = raw.AltCountryCode
		loc.RegionCode, loc.Region = loc.Region, raw.AltRegion
	}
	loc.CountryCode = strings.ToUpper(loc.CountryCode)
	return loc, nil
}

// Flag renders an ISO 3166-1 alpha-2 code as its emoji flag, or "" when
// code is not two ASCII letters.
func Flag(code string) string {
	if len(code) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + r - 'A')
	}
	return b.String()
}
