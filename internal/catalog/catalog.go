// Package catalog loads the countries and regions a form offers.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuafuller/stateprovince/internal/filter"
)

// Region is a state, province or other first-level division.
type Region struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// Country groups its regions. Countries without divisions have none.
type Country struct {
	Code    string   `yaml:"code" json:"code"`
	Name    string   `yaml:"name" json:"name"`
	Regions []Region `yaml:"regions,omitempty" json:"regions,omitempty"`
}

// Catalog is the data behind a country/region form.
type Catalog struct {
	Default   string    `yaml:"default,omitempty" json:"default,omitempty"`
	Countries []Country `yaml:"countries" json:"countries"`
}

// Format names a catalog encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

//go:embed sample.yaml
var sample []byte

// Sample returns the built-in catalog.
func Sample() *Catalog {
	c, err := Decode(bytes.NewReader(sample), FormatYAML)
	if err != nil {
		panic("catalog: embedded sample is invalid: " + err.Error())
	}
	return c
}

// Decode reads a catalog in the given format and validates it.
func Decode(r io.Reader, format Format) (*Catalog, error) {
	var c Catalog
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&c); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a catalog, picking the format from the file extension.
func LoadFile(path string) (*Catalog, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func formatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Open resolves a catalog source: "" is the built-in sample, an http(s) URL
// is fetched through the cache, anything else is a file path.
func Open(ctx context.Context, source string, cache Cache) (*Catalog, error) {
	switch {
	case source == "":
		return Sample(), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return Fetch(ctx, source, cache)
	default:
		return LoadFile(source)
	}
}

// Validate checks that country codes are present and unique.
func (c *Catalog) Validate() error {
	if len(c.Countries) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]bool)
	for i, country := range c.Countries {
		code := strings.ToLower(country.Code)
		if code == "" {
			return fmt.Errorf("%w: country #%d", ErrMissingCode, i+1)
		}
		if seen[code] {
			return fmt.Errorf("%w: %s", ErrDuplicateCountry, country.Code)
		}
		seen[code] = true
	}
	if c.Default != "" && c.Lookup(c.Default) == nil {
		return fmt.Errorf("%w: default %s", ErrUnknownCountry, c.Default)
	}
	return nil
}

// Lookup finds a country by code, ignoring case.
func (c *Catalog) Lookup(code string) *Country {
	for i := range c.Countries {
		if strings.EqualFold(c.Countries[i].Code, code) {
			return &c.Countries[i]
		}
	}
	return nil
}

// RegionCount is the number of regions across all countries.
func (c *Catalog) RegionCount() int {
	n := 0
	for _, country := range c.Countries {
		n += len(country.Regions)
	}
	return n
}

// CountryOptions lists the countries as select options, marking selected,
// or the catalog default when selected is empty.
func (c *Catalog) CountryOptions(selected string) []filter.Option {
	if selected == "" {
		selected = c.Default
	}
	opts := make([]filter.Option, 0, len(c.Countries))
	for _, country := range c.Countries {
		opts = append(opts, filter.Option{
			Value:    country.Code,
			Label:    country.Name,
			Selected: strings.EqualFold(country.Code, selected),
		})
	}
	return opts
}

// RegionOptions lists every region of every country, each tagged with its
// country. A region value may repeat across countries; selection matches the
// country as well.
func (c *Catalog) RegionOptions(country, selected string) []filter.Option {
	var opts []filter.Option
	for _, ct := range c.Countries {
		for _, r := range ct.Regions {
			opts = append(opts, filter.Option{
				Value:    r.Code,
				Label:    r.Name,
				Tag:      filter.CountryTag(ct.Code),
				Selected: selected != "" && strings.EqualFold(ct.Code, country) && r.Code == selected,
			})
		}
	}
	return opts
}
