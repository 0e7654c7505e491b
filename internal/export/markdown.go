package export

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/gobrd/internal/sections"
)

// Markdown renders doc with a title block, a numbered table of contents,
// numbered section headings and an appendix.
func Markdown(doc *sections.Document, m Meta) string {
	var b strings.Builder
	b.WriteString("# " + DocumentTitle + "\n\n")
	if t := strings.TrimSpace(m.Title); t != "" {
		b.WriteString("## " + t + "\n\n")
	}
	if m.Domain != "" {
		b.WriteString("**Domain:** " + m.Domain + "\n\n")
	}
	for _, f := range m.Fields {
		fmt.Fprintf(&b, "**%s:** %s\n\n", f.Key, f.Value)
	}
	b.WriteString(m.generatedOn() + "\n\n")

	all := doc.Sections()
	b.WriteString("## Table of Contents\n\n")
	for i, s := range all {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Name)
	}
	b.WriteString("\n")

	for i, s := range all {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, s.Name)
		lines := bodyLines(s.Content)
		if len(lines) == 0 {
			b.WriteString(EmptySection + "\n\n")
			continue
		}
		prev := paragraph
		for j, l := range lines {
			kind, text := classify(l)
			// Separate paragraphs, keep list items tight.
			if j > 0 && (kind == paragraph || kind != prev) {
				b.WriteString("\n")
			}
			switch kind {
			case bullet:
				b.WriteString("- " + text + "\n")
			default:
				b.WriteString(text + "\n")
			}
			prev = kind
		}
		b.WriteString("\n")
	}

	b.WriteString("## Appendix\n\n")
	b.WriteString("### Compliance References\n\n")
	for _, r := range m.References {
		b.WriteString("- " + r + "\n")
	}
	if len(m.References) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("### Glossary\n\n")
	b.WriteString(m.glossary() + "\n")
	if len(m.Terminology) > 0 {
		b.WriteString("\n")
		for _, t := range m.Terminology {
			b.WriteString("- " + t + "\n")
		}
	}
	return b.String()
}
