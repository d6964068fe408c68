//go:build js && wasm

package dom

import (
	"log/slog"
	"syscall/js"

	"github.com/joshuafuller/stateprovince/internal/filter"
)

var (
	_ filter.CountrySelector = jsCountry{}
	_ filter.RegionSelector  = jsRegion{}
)

// jsCountry wraps a country <select> element.
type jsCountry struct {
	el js.Value
}

func (c jsCountry) SelectedValue() string {
	v := c.el.Get("value")
	if !v.Truthy() {
		return ""
	}
	return v.String()
}

// jsRegion wraps the dependent <select> element.
type jsRegion struct {
	el js.Value
}

// optionChildren lists the direct <option> children, matching the markup binding.
func (r jsRegion) optionChildren() []js.Value {
	children := r.el.Get("children")
	var out []js.Value
	for i := 0; i < children.Length(); i++ {
		c := children.Index(i)
		if c.Get("tagName").String() == "OPTION" {
			out = append(out, c)
		}
	}
	return out
}

func (r jsRegion) Options() []filter.Option {
	var opts []filter.Option
	for _, o := range r.optionChildren() {
		opts = append(opts, filter.Option{
			Value:    o.Get("value").String(),
			Label:    o.Get("text").String(),
			Tag:      filter.TagFromClasses(o.Get("className").String()),
			Selected: o.Call("hasAttribute", "selected").Bool(),
			Handle:   o,
		})
	}
	return opts
}

func (r jsRegion) RemoveAll() {
	for _, o := range r.optionChildren() {
		r.el.Call("removeChild", o)
	}
}

func (r jsRegion) Append(opt filter.Option) {
	el, ok := opt.Handle.(js.Value)
	if !ok || !el.Truthy() {
		el = js.Global().Get("document").Call("createElement", "option")
		el.Set("value", opt.Value)
		el.Set("text", opt.Label)
		if opt.Tag != "" {
			el.Set("className", opt.Tag)
		}
	}
	r.el.Call("appendChild", el)
}

func (r jsRegion) Select(value string) {
	chosen := false
	for _, o := range r.optionChildren() {
		if !chosen && o.Get("value").String() == value {
			o.Call("setAttribute", "selected", "selected")
			o.Set("selected", true)
			chosen = true
		} else {
			o.Call("removeAttribute", "selected")
		}
	}
}

func (r jsRegion) SetVisible(visible bool) {
	row := r.el.Call("closest", "tr, p")
	if !row.Truthy() {
		return
	}
	if visible {
		row.Get("style").Set("display", "")
	} else {
		row.Get("style").Set("display", "none")
	}
}

// Binding holds the filters attached to a page and their event callbacks.
type Binding struct {
	filters []*filter.Filter
	funcs   []js.Func
}

// BindDocument attaches a filter to every country select in the current
// document, pairing it with the region select of its own form.
func BindDocument(countryClass, regionClass string) *Binding {
	return Bind(js.Global().Get("document"), countryClass, regionClass)
}

func Bind(document js.Value, countryClass, regionClass string) *Binding {
	b := &Binding{}
	pairer := filter.NewPairer(js.Value.Equal)

	countries := document.Call("querySelectorAll", "select."+countryClass)
	for i := 0; i < countries.Length(); i++ {
		country := countries.Index(i)

		scope := country.Call("closest", "form")
		if !scope.Truthy() {
			slog.Warn("country select outside a form, pairing with the first region select of the document", "index", i)
			scope = document
		}
		regions := nodeList(scope.Call("querySelectorAll", "select."+regionClass))
		if len(regions) == 0 {
			slog.Warn("country select has no region select in scope", "index", i)
			continue
		}
		region, ok := pairer.Pair(regions)
		if !ok {
			slog.Warn("region select already bound to another country select", "index", i)
			continue
		}

		f := filter.New(jsCountry{el: country}, jsRegion{el: region})
		b.filters = append(b.filters, f)

		onChange := js.FuncOf(func(this js.Value, args []js.Value) any {
			f.OnCountryChange()
			return nil
		})
		country.Call("addEventListener", "change", onChange)
		b.funcs = append(b.funcs, onChange)
	}

	ready := func() {
		for _, f := range b.filters {
			f.OnReady()
		}
		slog.Debug("bound country/region widgets", "count", len(b.filters))
	}

	if document.Get("readyState").String() == "loading" {
		onReady := js.FuncOf(func(this js.Value, args []js.Value) any {
			ready()
			return nil
		})
		document.Call("addEventListener", "DOMContentLoaded", onReady, map[string]any{"once": true})
		b.funcs = append(b.funcs, onReady)
	} else {
		ready()
	}

	return b
}

func nodeList(list js.Value) []js.Value {
	out := make([]js.Value, list.Length())
	for i := range out {
		out[i] = list.Index(i)
	}
	return out
}

func (b *Binding) Filters() []*filter.Filter {
	return b.filters
}

// Release frees the Go callbacks. The listeners must not fire afterwards.
func (b *Binding) Release() {
	for _, fn := range b.funcs {
		fn.Release()
	}
	b.funcs = nil
}
