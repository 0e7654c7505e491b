// Package export renders a parsed BRD document as Markdown, PDF or HTML.
package export

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/hyperifyio/gobrd/internal/profile"
	"github.com/hyperifyio/gobrd/internal/sections"
)

// DocumentTitle heads every exported document.
const DocumentTitle = "Business Requirement Document"

// EmptySection is rendered for sections without content.
const EmptySection = "[Content to be developed]"

// Field is one line of title-page metadata.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Meta holds the facts printed around the section bodies.
type Meta struct {
	Title     string
	Domain    string
	Generated time.Time
	Fields    []Field
	// References and Terminology fill the appendix.
	References  []string
	Terminology []string
}

// MetaFor builds Meta from a domain profile.
func MetaFor(title string, p profile.Profile, generated time.Time) Meta {
	return Meta{
		Title:       title,
		Domain:      profile.DisplayName(p.Domain),
		Generated:   generated,
		References:  append([]string(nil), p.ComplianceReferences...),
		Terminology: append([]string(nil), p.Terminology...),
	}
}

func (m Meta) generatedOn() string {
	ts := m.Generated
	if ts.IsZero() {
		ts = time.Now()
	}
	return "Generated on: " + ts.Format("January 02, 2006")
}

func (m Meta) glossary() string {
	return fmt.Sprintf("This document contains domain-specific terminology relevant to the %s industry. "+
		"For detailed definitions and explanations, please refer to the respective regulatory "+
		"guidelines and industry standards mentioned in the compliance references.", m.Domain)
}

type lineKind int

const (
	paragraph lineKind = iota
	bullet
	numbered
)

// classify mirrors the body conventions of generated text: "-" or "*"
// starts a bullet, a leading digit followed by '.' starts a numbered item.
func classify(line string) (lineKind, string) {
	switch {
	case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*"):
		return bullet, strings.TrimSpace(line[1:])
	case line != "" && line[0] >= '0' && line[0] <= '9' && strings.Contains(line[:min(3, len(line))], "."):
		return numbered, line
	}
	return paragraph, line
}

func bodyLines(content string) []string {
	var out []string
	for _, l := range strings.Split(content, "\n") {
		if s := strings.TrimSpace(l); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Preview renders the first 200 characters of every section.
func Preview(doc *sections.Document) string {
	lines := []string{"=== BRD DOCUMENT PREVIEW ===\n"}
	for _, s := range doc.Sections() {
		lines = append(lines, "## "+s.Name)
		if s.Content == "" {
			lines = append(lines, EmptySection)
		} else {
			lines = append(lines, truncate(s.Content, 200))
		}
		lines = append(lines, "\n"+strings.Repeat("-", 50)+"\n")
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Filename returns the file stem "BRD_<domain>_<title>_<timestamp>". The
// title keeps letters, digits, '-' and '_'; spaces become underscores.
func Filename(domain, title string, ts time.Time) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	clean := strings.ReplaceAll(strings.TrimRight(b.String(), " "), " ", "_")
	if clean == "" {
		clean = "Untitled"
	}
	d := strings.ReplaceAll(profile.DisplayName(domain), " ", "_")
	if d == "" {
		d = "General"
	}
	return fmt.Sprintf("BRD_%s_%s_%s", d, clean, ts.Format("20060102_150405"))
}
