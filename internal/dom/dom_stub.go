//go:build !(js && wasm)

package dom

import "github.com/joshuafuller/stateprovince/internal/filter"

// Stub file for non-WASM builds so the module builds and tests natively.
// The browser implementation lives in dom.go.

// Binding is empty outside the browser.
type Binding struct{}

// BindDocument binds nothing in non-WASM builds.
func BindDocument(countryClass, regionClass string) *Binding {
	return &Binding{}
}

func (b *Binding) Filters() []*filter.Filter {
	return nil
}

func (b *Binding) Release() {}
