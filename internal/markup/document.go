// Package markup applies the country/region filter to HTML form markup.
//
// The markup contract is the one the localflavor widgets render: a country
// <select> carrying DefaultCountryClass and a region <select> carrying
// DefaultRegionClass whose options are tagged with "country-<code>" classes.
package markup

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/joshuafuller/stateprovince/internal/filter"
	"github.com/joshuafuller/stateprovince/internal/logutil"
)

const (
	DefaultCountryClass = filter.DefaultCountryClass
	DefaultRegionClass  = filter.DefaultRegionClass
)

// Document is a parsed HTML page or fragment.
type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	return &Document{root: root}, nil
}

func (d *Document) Root() *html.Node { return d.root }

func (d *Document) Render(w io.Writer) error {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// Widget is one bound country/region pair.
type Widget struct {
	Country *CountrySelect
	Region  *RegionSelect
	Filter  *filter.Filter
}

// ChangeCountry selects code in the country select and lets the filter react
// as it would to a user's change event.
func (w *Widget) ChangeCountry(code string) error {
	if !w.Country.SetSelected(code) {
		return fmt.Errorf("%w: %s", ErrUnknownCountry, code)
	}
	w.Filter.OnCountryChange()
	return nil
}

type bindConfig struct {
	countryClass string
	regionClass  string
	logger       *slog.Logger
}

type BindOption func(*bindConfig)

// WithClasses overrides the marker classes of the two selects.
func WithClasses(country, region string) BindOption {
	return func(c *bindConfig) {
		if country != "" {
			c.countryClass = country
		}
		if region != "" {
			c.regionClass = region
		}
	}
}

func WithLogger(l *slog.Logger) BindOption {
	return func(c *bindConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Bind pairs every country select with the region select of its own form,
// builds a filter for each pair and runs its ready step. A country select
// outside any form is paired with the first free region select of the document.
func (d *Document) Bind(opts ...BindOption) ([]*Widget, error) {
	cfg := bindConfig{
		countryClass: DefaultCountryClass,
		regionClass:  DefaultRegionClass,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	countries := findAll(d.root, func(n *html.Node) bool {
		return n.DataAtom == atom.Select && hasClass(n, cfg.countryClass)
	})
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: no select with class %q", ErrNoCountrySelect, cfg.countryClass)
	}

	isRegion := func(n *html.Node) bool {
		return n.DataAtom == atom.Select && hasClass(n, cfg.regionClass)
	}

	var widgets []*Widget
	pairer := filter.NewPairer(func(a, b *html.Node) bool { return a == b })
	for i, country := range countries {
		scope := closest(country, atom.Form)
		if scope == nil {
			cfg.logger.Warn("country select outside a form, pairing with the first region select of the document", "index", i)
			scope = d.root
		}

		regions := findAll(scope, isRegion)
		if len(regions) == 0 {
			cfg.logger.Warn("country select has no region select in scope", "index", i)
			continue
		}
		region, ok := pairer.Pair(regions)
		if !ok {
			cfg.logger.Warn("region select already bound to another country select", "index", i)
			continue
		}
		logutil.Trace("paired selects", "index", i, "form", scope != d.root)

		w := &Widget{
			Country: &CountrySelect{node: country},
			Region:  &RegionSelect{node: region},
		}
		w.Filter = filter.New(w.Country, w.Region, filter.WithLogger(cfg.logger))
		w.Filter.OnReady()
		widgets = append(widgets, w)
	}

	if len(widgets) == 0 {
		return nil, fmt.Errorf("%w: no select with class %q", ErrNoRegionSelect, cfg.regionClass)
	}
	return widgets, nil
}
