package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/joshuafuller/stateprovince/internal/filter"
)

var (
	_ filter.CountrySelector = (*CountrySelect)(nil)
	_ filter.RegionSelector  = (*RegionSelect)(nil)
)

// CountrySelect is a <select> element driving a filter.
type CountrySelect struct {
	node *html.Node
}

// Node returns the underlying element.
func (s *CountrySelect) Node() *html.Node { return s.node }

// SelectedValue is the value of the option marked selected, or of the first
// option when none is.
func (s *CountrySelect) SelectedValue() string {
	opts := optionChildren(s.node)
	for _, o := range opts {
		if _, ok := getAttr(o, "selected"); ok {
			return optionValue(o)
		}
	}
	if len(opts) > 0 {
		return optionValue(opts[0])
	}
	return ""
}

// SetSelected marks the option whose value matches code, ignoring case.
// It reports false and leaves the select untouched when there is none.
func (s *CountrySelect) SetSelected(code string) bool {
	var match *html.Node
	opts := optionChildren(s.node)
	for _, o := range opts {
		if strings.EqualFold(optionValue(o), code) {
			match = o
			break
		}
	}
	if match == nil {
		return false
	}
	for _, o := range opts {
		if o == match {
			setAttr(o, "selected", "selected")
		} else {
			removeAttr(o, "selected")
		}
	}
	return true
}

// RegionSelect is the dependent <select> element.
type RegionSelect struct {
	node *html.Node
}

func (s *RegionSelect) Node() *html.Node { return s.node }

func (s *RegionSelect) Options() []filter.Option {
	var opts []filter.Option
	for _, o := range optionChildren(s.node) {
		class, _ := getAttr(o, "class")
		_, selected := getAttr(o, "selected")
		opts = append(opts, filter.Option{
			Value:    optionValue(o),
			Label:    textContent(o),
			Tag:      filter.TagFromClasses(class),
			Selected: selected,
			Handle:   o,
		})
	}
	return opts
}

// RemoveAll detaches the option elements; they stay reachable through the
// filter's index.
func (s *RegionSelect) RemoveAll() {
	for _, o := range optionChildren(s.node) {
		s.node.RemoveChild(o)
	}
}

// Append attaches the option's element, building one when the option did not
// come from markup.
func (s *RegionSelect) Append(opt filter.Option) {
	n, ok := opt.Handle.(*html.Node)
	if !ok || n == nil {
		n = newOption(opt)
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	s.node.AppendChild(n)
}

func (s *RegionSelect) Select(value string) {
	chosen := false
	for _, o := range optionChildren(s.node) {
		if !chosen && optionValue(o) == value {
			setAttr(o, "selected", "selected")
			chosen = true
		} else {
			removeAttr(o, "selected")
		}
	}
}

// SetVisible toggles the nearest enclosing table row or paragraph.
func (s *RegionSelect) SetVisible(visible bool) {
	if row := s.Row(); row != nil {
		setDisplayNone(row, !visible)
	}
}

// Row is the table row or paragraph holding the select, nil when there is none.
func (s *RegionSelect) Row() *html.Node {
	return closest(s.node, atom.Tr, atom.P)
}

// Hidden reports whether the row holding the select is hidden.
func (s *RegionSelect) Hidden() bool {
	row := s.Row()
	return row != nil && isHidden(row)
}

func newOption(opt filter.Option) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: "option", DataAtom: atom.Option}
	if opt.Tag != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: opt.Tag})
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "value", Val: opt.Value})
	if opt.Selected {
		n.Attr = append(n.Attr, html.Attribute{Key: "selected", Val: "selected"})
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: opt.Label})
	return n
}
