package sections

import "strings"

// HeaderKeywords are the phrases whose presence anywhere in a line marks it as
// a section header.
var HeaderKeywords = []string{
	"Project Overview",
	"Business Objectives",
	"Functional Requirements",
	"Non-Functional Requirements",
	"Key Performance Indicators",
	"KPIs",
	"Compliance",
	"Risk Assessment",
	"Stakeholder Analysis",
	"Project Scope",
}

// HeaderMatcher classifies a trimmed input line as a section header.
type HeaderMatcher func(line string) bool

// IsHeader is the default matcher: case-insensitive substring match against
// HeaderKeywords. A keyword inside ordinary prose also matches, which splits
// the section early; callers needing stricter behavior use ParseWith.
func IsHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range HeaderKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// MarkdownHeadingMatcher only accepts Markdown ATX headings ("# ...") that
// also contain a header keyword.
func MarkdownHeadingMatcher(line string) bool {
	if !strings.HasPrefix(line, "#") {
		return false
	}
	return IsHeader(line)
}

// CleanHeader turns a header line into a section name by dropping '#'
// markup and surrounding whitespace.
func CleanHeader(line string) string {
	return strings.TrimSpace(strings.ReplaceAll(line, "#", ""))
}

// Placeholder is the synthesized content for a required section that the
// raw text did not contain.
func Placeholder(name string) string {
	return "[Content for " + name + " will be generated based on specific requirements]"
}

// IsPlaceholder reports whether content is the synthesized filler for name.
func IsPlaceholder(name, content string) bool {
	return content == Placeholder(name)
}

// Parse segments raw generated text into a Document using IsHeader and then
// guarantees every required section is present.
func Parse(raw string, required []string) *Document {
	return ParseWith(raw, required, IsHeader)
}

// ParseWith is Parse with a caller-supplied header matcher. It never fails;
// the worst case is a document made of placeholders only.
func ParseWith(raw string, required []string, isHeader HeaderMatcher) *Document {
	if isHeader == nil {
		isHeader = IsHeader
	}
	doc := NewDocument()

	var (
		current string
		open    bool
		buf     []string
	)
	flush := func() {
		if open {
			doc.Set(current, strings.TrimSpace(strings.Join(buf, "\n")))
		}
	}

	for _, l := range strings.Split(raw, "\n") {
		line := strings.TrimSpace(l)
		switch {
		case line != "" && isHeader(line):
			flush()
			current = CleanHeader(line)
			open = true
			buf = buf[:0]
		case line != "" && open:
			buf = append(buf, line)
		}
	}
	// A header on the last line with no body is dropped so that a required
	// name falls through to its placeholder.
	if len(buf) > 0 {
		flush()
	}

	for _, name := range required {
		if !doc.Has(name) {
			doc.Set(name, Placeholder(name))
		}
	}
	return doc
}
