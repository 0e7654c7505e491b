package validate

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/gobrd/internal/sections"
)

const (
	// tooBriefWords flags a section in the quality metrics. The recommendation
	// warning uses briefSectionWords instead.
	tooBriefWords = 20
	// longSentenceWords is the average words per sentence above which a
	// section is flagged.
	longSentenceWords = 30
	// readabilitySaturationWords is the total word count that maps to a
	// readability score of 1.0.
	readabilitySaturationWords = 500
)

// SectionCount is the word count of one section.
type SectionCount struct {
	Name  string `json:"name"`
	Words int    `json:"words"`
}

// Metrics are document quality figures reported next to, but never mixed
// into, the validation scores.
type Metrics struct {
	TotalWordCount       int            `json:"total_word_count"`
	SectionWordCounts    []SectionCount `json:"section_word_counts"`
	ReadabilityScore     float64        `json:"readability_score"`
	StructureScore       float64        `json:"structure_score"`
	ContentQualityIssues []string       `json:"content_quality_issues"`
}

// WordsIn returns the recorded word count for a section.
func (m Metrics) WordsIn(name string) (int, bool) {
	for _, c := range m.SectionWordCounts {
		if c.Name == name {
			return c.Words, true
		}
	}
	return 0, false
}

// Quality computes word counts, a saturating readability proxy and the share
// of required sections that carry any text. Placeholders count as text.
func Quality(doc *sections.Document, requiredCount int) Metrics {
	m := Metrics{SectionWordCounts: []SectionCount{}, ContentQualityIssues: []string{}}
	nonBlank := 0
	for _, s := range doc.Sections() {
		if strings.TrimSpace(s.Content) != "" {
			nonBlank++
		}
		if s.Content == "" {
			continue
		}
		words := wordCount(s.Content)
		m.SectionWordCounts = append(m.SectionWordCounts, SectionCount{Name: s.Name, Words: words})
		m.TotalWordCount += words

		if words < tooBriefWords {
			m.ContentQualityIssues = append(m.ContentQualityIssues, fmt.Sprintf("Section '%s' is too brief", s.Name))
		}
		if averageSentenceWords(s.Content) > longSentenceWords {
			m.ContentQualityIssues = append(m.ContentQualityIssues, fmt.Sprintf("Section '%s' has very long sentences", s.Name))
		}
	}

	if m.TotalWordCount > 0 {
		m.ReadabilityScore = min(float64(m.TotalWordCount)/readabilitySaturationWords, 1.0)
	}
	if requiredCount > 0 {
		m.StructureScore = min(float64(nonBlank)/float64(requiredCount), 1.0)
	}
	return m
}

// averageSentenceWords splits on '.' and averages the word count over every
// fragment, including the empty one after a trailing period.
func averageSentenceWords(content string) float64 {
	fragments := strings.Split(content, ".")
	total := 0
	for _, f := range fragments {
		total += wordCount(f)
	}
	return float64(total) / float64(len(fragments))
}
