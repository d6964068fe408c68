package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

func hasClass(n *html.Node, class string) bool {
	v, ok := getAttr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

// findAll collects, in document order, every element below n matching pred.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		for ; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && pred(c) {
				out = append(out, c)
			}
			walk(c.FirstChild)
		}
	}
	walk(n.FirstChild)
	return out
}

// closest returns the nearest ancestor of n that is one of the given elements.
func closest(n *html.Node, atoms ...atom.Atom) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		for _, a := range atoms {
			if p.DataAtom == a {
				return p
			}
		}
	}
	return nil
}

// optionChildren lists the direct <option> children of a select.
func optionChildren(sel *html.Node) []*html.Node {
	var out []*html.Node
	for c := sel.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, atom.Option) {
			out = append(out, c)
		}
	}
	return out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		for ; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			walk(c.FirstChild)
		}
	}
	walk(n.FirstChild)
	return strings.TrimSpace(b.String())
}

// optionValue follows the browser rule: the value attribute, else the text.
func optionValue(n *html.Node) string {
	if v, ok := getAttr(n, "value"); ok {
		return v
	}
	return textContent(n)
}

// setDisplayNone adds or strips a display:none declaration in the style attribute.
func setDisplayNone(n *html.Node, hide bool) {
	style, _ := getAttr(n, "style")
	var decls []string
	for _, d := range strings.Split(style, ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		prop, _, _ := strings.Cut(d, ":")
		if strings.EqualFold(strings.TrimSpace(prop), "display") {
			continue
		}
		decls = append(decls, d)
	}
	if hide {
		decls = append(decls, "display: none")
	}
	if len(decls) == 0 {
		removeAttr(n, "style")
		return
	}
	setAttr(n, "style", strings.Join(decls, "; "))
}

func isHidden(n *html.Node) bool {
	style, _ := getAttr(n, "style")
	for _, d := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(d, ":")
		if ok && strings.EqualFold(strings.TrimSpace(prop), "display") && strings.TrimSpace(val) == "none" {
			return true
		}
	}
	return false
}
