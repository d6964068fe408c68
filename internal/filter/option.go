package filter

import "strings"

// TagPrefix is the class prefix that marks a region option's owning country.
const TagPrefix = "country-"

// Option is a single entry of a country or region select.
type Option struct {
	Value    string
	Label    string
	Tag      string // country tag, "" when the option carries none
	Selected bool

	// Handle is the platform element behind the option (*html.Node, js.Value, ...).
	// The filter moves it between the visible list and the index but never inspects it.
	Handle any
}

// CountryTag derives the tag region options carry for the given country code.
func CountryTag(code string) string {
	return TagPrefix + strings.ToLower(code)
}

// TagFromClasses picks the country tag out of a class attribute.
func TagFromClasses(class string) string {
	for _, c := range strings.Fields(class) {
		if strings.HasPrefix(c, TagPrefix) {
			return c
		}
	}
	return ""
}
