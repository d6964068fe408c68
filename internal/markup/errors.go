package markup

import "errors"

var (
	ErrNoCountrySelect = errors.New("no country select")
	ErrNoRegionSelect  = errors.New("no region select")
	ErrUnknownCountry  = errors.New("unknown country")
)
