//go:build !(js && wasm)

package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuafuller/stateprovince/internal/filter"
)

func TestBindDocument_StubBindsNothing(t *testing.T) {
	b := BindDocument(filter.DefaultCountryClass, filter.DefaultRegionClass)
	assert.Empty(t, b.Filters())
	b.Release()
}
