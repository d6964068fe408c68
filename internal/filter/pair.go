package filter

// Marker classes of the localflavor country and state/province widgets.
const (
	DefaultCountryClass = "localflavor-generic-country"
	DefaultRegionClass  = "localflavor-generic-stateprovince"
)

// Pairer hands region selects out to country selects. A region select is
// given to at most one country select, since a second filter over it would
// index the options the first one already pruned.
type Pairer[T any] struct {
	equal func(a, b T) bool
	bound []T
}

// NewPairer returns a Pairer that identifies elements with equal.
func NewPairer[T any](equal func(a, b T) bool) *Pairer[T] {
	return &Pairer[T]{equal: equal}
}

// Pair claims the first candidate not yet paired. It reports false when
// every candidate is taken.
func (p *Pairer[T]) Pair(candidates []T) (T, bool) {
	for _, c := range candidates {
		if p.isBound(c) {
			continue
		}
		p.bound = append(p.bound, c)
		return c, true
	}
	var zero T
	return zero, false
}

func (p *Pairer[T]) isBound(c T) bool {
	for _, b := range p.bound {
		if p.equal(b, c) {
			return true
		}
	}
	return false
}

// Len is the number of paired region selects.
func (p *Pairer[T]) Len() int {
	return len(p.bound)
}
