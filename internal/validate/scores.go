package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/gobrd/internal/sections"
)

const (
	// neutralComplianceScore is reported for domains without a keyword set.
	neutralComplianceScore = 0.5
	// expectedTerms is the number of distinct vocabulary hits that saturates
	// the terminology score.
	expectedTerms = 5
	// minSectionChars is the trimmed length below which a section is thin.
	minSectionChars = 50
)

// ComplianceResult is the compliance score with the keywords behind it.
type ComplianceResult struct {
	Score   float64
	Found   []string
	Missing []string
}

// TerminologyResult is the terminology score with the terms that were found.
type TerminologyResult struct {
	Score float64
	Found []string
}

// CompletenessResult is the completeness score with the sections that held
// it back.
type CompletenessResult struct {
	Score   float64
	Missing []string
	Thin    []string
}

// Incomplete lists missing sections followed by thin ones.
func (r CompletenessResult) Incomplete() []string {
	out := make([]string, 0, len(r.Missing)+len(r.Thin))
	out = append(out, r.Missing...)
	return append(out, r.Thin...)
}

// ScoreCompliance looks for every keyword, case-insensitively, anywhere in the
// document. known=false marks a domain with no configured keyword set, which
// scores a neutral 0.5.
func ScoreCompliance(doc *sections.Document, keywords []string, known bool) ComplianceResult {
	if !known {
		return ComplianceResult{Score: neutralComplianceScore, Found: []string{}, Missing: []string{}}
	}
	found, missing := partitionTerms(strings.ToLower(doc.Joined()), keywords)
	res := ComplianceResult{Found: found, Missing: missing}
	if len(keywords) > 0 {
		res.Score = float64(len(found)) / float64(len(keywords))
	}
	return res
}

// ScoreTerminology counts vocabulary terms present in the document. Finding
// five terms, or every term of a smaller vocabulary, gives a perfect score.
func ScoreTerminology(doc *sections.Document, vocabulary []string) TerminologyResult {
	found, _ := partitionTerms(strings.ToLower(doc.Joined()), vocabulary)
	res := TerminologyResult{Found: found}
	expected := min(expectedTerms, len(vocabulary))
	if expected > 0 {
		res.Score = min(float64(len(found))/float64(expected), 1.0)
	}
	return res
}

// ScoreCompleteness checks that each required section exists and carries at
// least minSectionChars characters. Placeholders are always thin.
func ScoreCompleteness(doc *sections.Document, required []string) CompletenessResult {
	res := CompletenessResult{Missing: []string{}, Thin: []string{}}
	for _, name := range required {
		content, ok := doc.Get(name)
		switch {
		case !ok:
			res.Missing = append(res.Missing, name)
		case utf8.RuneCountInString(strings.TrimSpace(content)) < minSectionChars:
			res.Thin = append(res.Thin, name)
		}
	}
	if total := len(required); total > 0 {
		complete := total - len(res.Missing) - len(res.Thin)
		res.Score = float64(complete) / float64(total)
	}
	return res
}

func partitionTerms(lowerContent string, terms []string) (found, missing []string) {
	found = []string{}
	missing = []string{}
	for _, term := range terms {
		if strings.Contains(lowerContent, strings.ToLower(term)) {
			found = append(found, term)
		} else {
			missing = append(missing, term)
		}
	}
	return found, missing
}
