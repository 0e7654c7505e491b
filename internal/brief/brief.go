package brief

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultDomain is used when the request names no domain.
const DefaultDomain = "Pharma"

// Brief represents the project request parsed from a single Markdown input.
// It keeps only the facts the generator puts into its prompt.
type Brief struct {
	Title                  string
	Domain                 string
	Description            string
	Objectives             string
	Stakeholders           string
	AdditionalRequirements string
	// Raw is the original input for traceability if needed downstream.
	Raw string
}

var (
	headingRe       = regexp.MustCompile(`^\s{0,3}#{1,6}\s+(.+?)\s*$`)
	domainLineRe    = regexp.MustCompile(`(?i)^\s*(?:domain|industry)\s*[:\-]\s*(.+?)\s*$`)
	titleLineRe     = regexp.MustCompile(`(?i)^\s*(?:project\s*)?title\s*[:\-]\s*(.+?)\s*$`)
	objectivesRe    = regexp.MustCompile(`(?i)^\s*(?:business\s*)?objectives?\s*[:\-]\s*(.+?)\s*$`)
	stakeholdersRe  = regexp.MustCompile(`(?i)^\s*(?:key\s*)?stakeholders?\s*[:\-]\s*(.+?)\s*$`)
	additionalReqRe = regexp.MustCompile(`(?i)^\s*additional\s*(?:requirements?|notes?)\s*[:\-]\s*(.+?)\s*$`)
)

// ParseBrief parses a Markdown string into a Brief. The first heading is the
// title (falling back to the first non-empty line); "Domain:",
// "Objectives:", "Stakeholders:" and "Additional requirements:" lines fill
// their fields; every other line becomes the description.
func ParseBrief(input string) Brief {
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	b := Brief{Raw: input}
	var (
		firstNonEmpty string
		description   []string
	)

	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" {
			continue
		}
		if firstNonEmpty == "" {
			firstNonEmpty = trimmed
		}

		if m := headingRe.FindStringSubmatch(trimmed); len(m) == 2 {
			if b.Title == "" {
				b.Title = strings.TrimSpace(stripTrailingPunctuation(m[1]))
			}
			continue
		}
		if v, ok := field(titleLineRe, trimmed); ok {
			if b.Title == "" {
				b.Title = v
			}
			continue
		}
		if v, ok := field(domainLineRe, trimmed); ok {
			if b.Domain == "" {
				b.Domain = v
			}
			continue
		}
		if v, ok := field(objectivesRe, trimmed); ok {
			b.Objectives = appendField(b.Objectives, v)
			continue
		}
		if v, ok := field(stakeholdersRe, trimmed); ok {
			b.Stakeholders = appendField(b.Stakeholders, v)
			continue
		}
		if v, ok := field(additionalReqRe, trimmed); ok {
			b.AdditionalRequirements = appendField(b.AdditionalRequirements, v)
			continue
		}
		description = append(description, trimmed)
	}

	if b.Title == "" {
		b.Title = deriveTitleFromLine(firstNonEmpty)
	}
	if b.Domain == "" {
		b.Domain = DefaultDomain
	}
	b.Description = strings.Join(description, "\n")
	return b
}

func field(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if len(m) != 2 {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func appendField(existing, v string) string {
	if existing == "" {
		return v
	}
	return existing + "; " + v
}

func deriveTitleFromLine(line string) string {
	if line == "" {
		return ""
	}
	// Remove simple markdown markers like emphasis or inline code wrappers.
	s := strings.TrimSpace(line)
	s = strings.Trim(s, "`*")
	s = stripTrailingPunctuation(s)
	return s
}

func stripTrailingPunctuation(s string) string {
	return strings.TrimRight(s, " #:-")
}

// Minimum lengths, in characters, for the fields a useful prompt needs.
const (
	MinTitleLen        = 5
	MinDescriptionLen  = 20
	MinObjectivesLen   = 15
	MinStakeholdersLen = 10
)

// Validate reports fields that are missing or too short to give the model
// enough to work with. An empty result means the brief is complete.
func (b Brief) Validate() []string {
	var problems []string
	if strings.TrimSpace(b.Domain) == "" {
		problems = append(problems, "domain is missing")
	}
	for _, f := range []struct {
		name  string
		value string
		min   int
	}{
		{"project title", b.Title, MinTitleLen},
		{"project description", b.Description, MinDescriptionLen},
		{"business objectives", b.Objectives, MinObjectivesLen},
		{"stakeholders", b.Stakeholders, MinStakeholdersLen},
	} {
		if n := utf8.RuneCountInString(strings.TrimSpace(f.value)); n < f.min {
			problems = append(problems, fmt.Sprintf("%s is too short (%d characters, minimum %d)", f.name, n, f.min))
		}
	}
	return problems
}
