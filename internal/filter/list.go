package filter

// ListCountry is an in-memory country select.
type ListCountry struct {
	options  []Option
	selected int
}

// NewListCountry builds a country list. The first option marked Selected
// wins; with none marked the first option is selected, as a browser would.
func NewListCountry(options []Option) *ListCountry {
	c := &ListCountry{options: append([]Option(nil), options...), selected: -1}
	for i, opt := range c.options {
		if opt.Selected {
			c.selected = i
			break
		}
	}
	if c.selected < 0 && len(c.options) > 0 {
		c.selected = 0
	}
	return c
}

func (c *ListCountry) SelectedValue() string {
	if c.selected < 0 || c.selected >= len(c.options) {
		return ""
	}
	return c.options[c.selected].Value
}

// Options returns the country options with the Selected flags current.
func (c *ListCountry) Options() []Option {
	out := append([]Option(nil), c.options...)
	for i := range out {
		out[i].Selected = i == c.selected
	}
	return out
}

// SelectedIndex is the position of the selected country, -1 when empty.
func (c *ListCountry) SelectedIndex() int {
	return c.selected
}

// Select changes the selected country. It reports false for an unknown value.
func (c *ListCountry) Select(value string) bool {
	for i, opt := range c.options {
		if opt.Value == value {
			c.selected = i
			return true
		}
	}
	return false
}

// ListRegion is an in-memory region select.
type ListRegion struct {
	options []Option
	visible bool
}

func NewListRegion(options []Option) *ListRegion {
	return &ListRegion{options: append([]Option(nil), options...), visible: true}
}

func (r *ListRegion) Options() []Option {
	return append([]Option(nil), r.options...)
}

func (r *ListRegion) RemoveAll() {
	r.options = nil
}

func (r *ListRegion) Append(opt Option) {
	r.options = append(r.options, opt)
}

func (r *ListRegion) Select(value string) {
	for i := range r.options {
		r.options[i].Selected = r.options[i].Value == value
	}
}

func (r *ListRegion) SetVisible(visible bool) {
	r.visible = visible
}

// Visible reports the last visibility set by the filter.
func (r *ListRegion) Visible() bool {
	return r.visible
}

// SelectedValue is the value of the selected region, or "" when none is.
func (r *ListRegion) SelectedValue() string {
	for _, opt := range r.options {
		if opt.Selected {
			return opt.Value
		}
	}
	return ""
}
