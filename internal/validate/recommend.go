package validate

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/gobrd/internal/sections"
)

const (
	complianceRecommendBelow   = 0.8
	terminologyRecommendBelow  = 0.7
	completenessRecommendBelow = 0.8
	// briefSectionWords is the word count below which a section draws a
	// warning. It is unrelated to the quality metrics' own threshold.
	briefSectionWords = 30
	// namedKeywordLimit caps how many missing keywords a recommendation lists.
	namedKeywordLimit = 3
)

// Recommend derives the ordered recommendations and warnings from the scorer
// outputs. The order of the rules is fixed: compliance, terminology,
// completeness, then per-section brevity warnings in document order.
func Recommend(domain string, c ComplianceResult, t TerminologyResult, k CompletenessResult, doc *sections.Document) (recs, warnings []string) {
	recs = []string{}
	warnings = []string{}

	if c.Score < complianceRecommendBelow {
		recs = append(recs, fmt.Sprintf("Consider adding more compliance references for %s domain", domain))
		if len(c.Missing) > 0 {
			named := c.Missing[:min(namedKeywordLimit, len(c.Missing))]
			recs = append(recs, "Include these compliance keywords: "+strings.Join(named, ", "))
		}
	}

	if t.Score < terminologyRecommendBelow {
		recs = append(recs, fmt.Sprintf("Include more %s-specific terminology for better domain alignment", domain))
	}

	if k.Score < completenessRecommendBelow {
		if incomplete := k.Incomplete(); len(incomplete) > 0 {
			recs = append(recs, "Add content for missing sections: "+strings.Join(incomplete, ", "))
		}
		recs = append(recs, "Ensure each section has comprehensive content (minimum 50 words)")
	}

	for _, s := range doc.Sections() {
		if s.Content == "" {
			continue
		}
		if n := wordCount(s.Content); n < briefSectionWords {
			warnings = append(warnings, fmt.Sprintf("Section '%s' appears to be too brief (%d words)", s.Name, n))
		}
	}
	return recs, warnings
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
