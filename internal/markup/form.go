package markup

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/joshuafuller/stateprovince/internal/catalog"
	"github.com/joshuafuller/stateprovince/internal/filter"
)

// FormOptions controls the generated form.
type FormOptions struct {
	Action       string
	Method       string
	CountryName  string
	RegionName   string
	CountryLabel string
	RegionLabel  string
	Country      string // selected country, catalog default when empty
	Region       string // selected region of that country
	CountryClass string
	RegionClass  string
}

func (o *FormOptions) defaults() {
	if o.Method == "" {
		o.Method = "post"
	}
	if o.CountryName == "" {
		o.CountryName = "country"
	}
	if o.RegionName == "" {
		o.RegionName = "division"
	}
	if o.CountryLabel == "" {
		o.CountryLabel = "Country"
	}
	if o.RegionLabel == "" {
		o.RegionLabel = "State/Province"
	}
	if o.CountryClass == "" {
		o.CountryClass = DefaultCountryClass
	}
	if o.RegionClass == "" {
		o.RegionClass = DefaultRegionClass
	}
}

// BuildForm renders the catalog as a form in the widget markup contract: one
// paragraph per field, every region option tagged with its country's class.
// All regions are emitted; binding the document narrows them.
func BuildForm(cat *catalog.Catalog, opts FormOptions) *Document {
	opts.defaults()

	country := opts.Country
	if country == "" {
		country = cat.Default
	}

	form := element(atom.Form, "method", opts.Method, "action", opts.Action)
	form.AppendChild(field(opts.CountryName, opts.CountryLabel, opts.CountryClass, cat.CountryOptions(country)))
	form.AppendChild(field(opts.RegionName, opts.RegionLabel, opts.RegionClass, cat.RegionOptions(country, opts.Region)))

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(form)
	return &Document{root: root}
}

func field(name, label, class string, options []filter.Option) *html.Node {
	id := "id_" + name

	lbl := element(atom.Label, "for", id)
	lbl.AppendChild(&html.Node{Type: html.TextNode, Data: label})

	sel := element(atom.Select, "name", name, "id", id, "class", class)
	for _, opt := range options {
		sel.AppendChild(newOption(opt))
	}

	p := element(atom.P)
	p.AppendChild(lbl)
	p.AppendChild(sel)
	return p
}

func element(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}
