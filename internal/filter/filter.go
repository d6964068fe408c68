// Package filter keeps a region select in step with its paired country select.
//
// A Filter partitions the region options by country tag once, when the widget
// becomes ready, and afterwards swaps the visible options for the bucket of
// whichever country is selected. When no options apply the region field is
// hidden.
package filter

import (
	"context"
	"log/slog"

	"github.com/joshuafuller/stateprovince/internal/logutil"
)

// CountrySelector is the select whose value drives the filter.
type CountrySelector interface {
	SelectedValue() string
}

// RegionSelector is the dependent select the filter rewrites.
type RegionSelector interface {
	// Options returns the options currently attached to the visible list, in order.
	Options() []Option
	RemoveAll()
	Append(opt Option)
	// Select marks the option with the given value as the selected one.
	Select(value string)
	// SetVisible shows or hides the row containing the select.
	SetVisible(visible bool)
}

// Visibility is the state of the region field.
type Visibility int

const (
	Visible Visibility = iota // visible with options
	Hidden                    // hidden and empty
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Filter is one country/region widget pair.
type Filter struct {
	country CountrySelector
	region  RegionSelector
	index   *Index
	state   Visibility
	ready   bool
	logger  *slog.Logger
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithLogger sets the logger used for lifecycle and trace output.
func WithLogger(l *slog.Logger) FilterOption {
	return func(f *Filter) {
		if l != nil {
			f.logger = l
		}
	}
}

// New pairs a country selector with its region selector. Nothing is touched
// until OnReady runs.
func New(country CountrySelector, region RegionSelector, opts ...FilterOption) *Filter {
	f := &Filter{
		country: country,
		region:  region,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CurrentTag is the country tag of the currently selected country.
func (f *Filter) CurrentTag() string {
	return CountryTag(f.country.SelectedValue())
}

// OnReady indexes the region options and prunes the visible list down to the
// selected country's bucket. Only the first call partitions; later calls
// re-apply the current country from the stored index so hidden buckets are
// never lost.
func (f *Filter) OnReady() {
	tag := f.CurrentTag()

	if f.ready {
		f.logger.Debug("filter already initialized, re-applying stored index", "tag", tag)
		f.show(tag, false)
		return
	}

	options := f.region.Options()
	f.index = NewIndex(options)
	f.ready = true

	f.region.RemoveAll()
	kept := 0
	for _, opt := range options {
		if opt.Tag != tag {
			f.logger.Log(context.TODO(), logutil.LevelTrace, "pruned region option", "value", opt.Value, "tag", opt.Tag)
			continue
		}
		f.region.Append(opt)
		kept++
	}

	f.setState(kept > 0)
	f.logger.Debug("filter initialized", "tag", tag, "options", len(options), "buckets", len(f.index.Tags()), "visible", kept)
}

// OnCountryChange replaces the visible region options with the bucket of the
// newly selected country and selects its first entry. A country without a
// bucket leaves the list empty and the field hidden.
func (f *Filter) OnCountryChange() {
	if !f.ready {
		// a change can race the ready event; index first so no option is dropped
		f.OnReady()
	}
	tag := f.CurrentTag()
	f.show(tag, true)
	f.logger.Debug("country changed", "tag", tag, "state", f.state)
}

func (f *Filter) show(tag string, selectFirst bool) {
	f.region.RemoveAll()

	bucket, ok := f.index.Bucket(tag)
	if !ok || len(bucket) == 0 {
		f.setState(false)
		return
	}

	for _, opt := range bucket {
		f.region.Append(opt)
	}
	if selectFirst {
		f.region.Select(bucket[0].Value)
	}
	f.setState(true)
}

func (f *Filter) setState(visible bool) {
	if visible {
		f.state = Visible
	} else {
		f.state = Hidden
	}
	f.region.SetVisible(visible)
}

// State reports whether the region field is showing options.
func (f *Filter) State() Visibility {
	return f.state
}

// Ready reports whether OnReady has run.
func (f *Filter) Ready() bool {
	return f.ready
}

// Index returns the per-country index, nil before OnReady.
func (f *Filter) Index() *Index {
	return f.index
}
