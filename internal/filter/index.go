package filter

// Index holds every region option grouped by country tag.
// Buckets keep markup order and are never modified once built.
type Index struct {
	buckets map[string][]Option
	tags    []string // first-seen order
	size    int
}

// NewIndex partitions options by tag.
func NewIndex(options []Option) *Index {
	idx := &Index{buckets: make(map[string][]Option)}
	for _, opt := range options {
		if _, ok := idx.buckets[opt.Tag]; !ok {
			idx.tags = append(idx.tags, opt.Tag)
		}
		idx.buckets[opt.Tag] = append(idx.buckets[opt.Tag], opt)
		idx.size++
	}
	return idx
}

// Bucket returns the options tagged with tag.
// The returned slice is a copy; callers may keep or modify it.
func (idx *Index) Bucket(tag string) ([]Option, bool) {
	if idx == nil {
		return nil, false
	}
	b, ok := idx.buckets[tag]
	if !ok {
		return nil, false
	}
	return append([]Option(nil), b...), true
}

// Tags lists the known tags in the order they first appeared.
func (idx *Index) Tags() []string {
	if idx == nil {
		return nil
	}
	return append([]string(nil), idx.tags...)
}

// Len is the total number of options across all buckets.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return idx.size
}

// All returns the union of all buckets, grouped by tag in first-seen order.
func (idx *Index) All() []Option {
	if idx == nil {
		return nil
	}
	all := make([]Option, 0, idx.size)
	for _, tag := range idx.tags {
		all = append(all, idx.buckets[tag]...)
	}
	return all
}
