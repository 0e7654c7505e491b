package export

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hyperifyio/gobrd/internal/sections"
)

// HTML renders doc as a standalone HTML page. Text is escaped by the
// renderer, so section bodies may contain arbitrary characters.
func HTML(w io.Writer, doc *sections.Document, m Meta) error {
	body := elem(atom.Body)
	body.AppendChild(textElem(atom.H1, DocumentTitle))
	if t := strings.TrimSpace(m.Title); t != "" {
		body.AppendChild(textElem(atom.H2, t))
	}
	if m.Domain != "" {
		body.AppendChild(textElem(atom.P, "Domain: "+m.Domain))
	}
	for _, f := range m.Fields {
		body.AppendChild(textElem(atom.P, f.Key+": "+f.Value))
	}
	body.AppendChild(textElem(atom.P, m.generatedOn()))

	all := doc.Sections()
	nav := elem(atom.Nav)
	nav.AppendChild(textElem(atom.H2, "Table of Contents"))
	toc := elem(atom.Ol)
	for i, s := range all {
		li := elem(atom.Li)
		a := textElem(atom.A, s.Name)
		a.Attr = []html.Attribute{{Key: "href", Val: "#" + anchor(i)}}
		li.AppendChild(a)
		toc.AppendChild(li)
	}
	nav.AppendChild(toc)
	body.AppendChild(nav)

	for i, s := range all {
		sec := elem(atom.Section)
		sec.Attr = []html.Attribute{{Key: "id", Val: anchor(i)}}
		sec.AppendChild(textElem(atom.H2, strconv.Itoa(i+1)+". "+s.Name))
		lines := bodyLines(s.Content)
		if len(lines) == 0 {
			sec.AppendChild(textElem(atom.P, EmptySection))
		}
		var list *html.Node
		for _, l := range lines {
			kind, text := classify(l)
			if kind != bullet {
				list = nil
				sec.AppendChild(textElem(atom.P, text))
				continue
			}
			if list == nil {
				list = elem(atom.Ul)
				sec.AppendChild(list)
			}
			list.AppendChild(textElem(atom.Li, text))
		}
		body.AppendChild(sec)
	}

	appx := elem(atom.Section)
	appx.AppendChild(textElem(atom.H2, "Appendix"))
	appx.AppendChild(textElem(atom.H3, "Compliance References"))
	appx.AppendChild(listOf(m.References))
	appx.AppendChild(textElem(atom.H3, "Glossary"))
	appx.AppendChild(textElem(atom.P, m.glossary()))
	if len(m.Terminology) > 0 {
		appx.AppendChild(listOf(m.Terminology))
	}
	body.AppendChild(appx)

	head := elem(atom.Head)
	meta := elem(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	title := DocumentTitle
	if t := strings.TrimSpace(m.Title); t != "" {
		title = t + " - " + DocumentTitle
	}
	head.AppendChild(textElem(atom.Title, title))

	root := elem(atom.Html)
	root.Attr = []html.Attribute{{Key: "lang", Val: "en"}}
	root.AppendChild(head)
	root.AppendChild(body)

	page := &html.Node{Type: html.DocumentNode}
	page.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	page.AppendChild(root)
	return html.Render(w, page)
}

func elem(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func textElem(a atom.Atom, text string) *html.Node {
	n := elem(a)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func listOf(items []string) *html.Node {
	ul := elem(atom.Ul)
	for _, it := range items {
		ul.AppendChild(textElem(atom.Li, it))
	}
	return ul
}

func anchor(i int) string {
	return "section-" + strconv.Itoa(i+1)
}
