package catalog

import "errors"

var (
	ErrEmptyCatalog     = errors.New("catalog has no countries")
	ErrMissingCode      = errors.New("country without code")
	ErrDuplicateCountry = errors.New("duplicate country code")
	ErrUnknownCountry   = errors.New("unknown country")
	ErrUnknownFormat    = errors.New("unknown catalog format")
	ErrNoCache          = errors.New("no cached catalog")
)
