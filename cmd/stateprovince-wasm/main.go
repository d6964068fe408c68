//go:build js && wasm

package main

import (
	"log/slog"
	"os"

	"github.com/joshuafuller/stateprovince/internal/dom"
	"github.com/joshuafuller/stateprovince/internal/envconfig"
	"github.com/joshuafuller/stateprovince/internal/filter"
	"github.com/joshuafuller/stateprovince/internal/logutil"
)

func main() {
	slog.SetDefault(logutil.NewLogger(os.Stderr, logutil.Level(envconfig.Debug, envconfig.Trace)))

	binding := dom.BindDocument(filter.DefaultCountryClass, filter.DefaultRegionClass)
	defer binding.Release()

	// Keep the Go program running
	select {}
}
