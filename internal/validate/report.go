package validate

import (
	"fmt"
	"strings"
)

// FormatReport renders a validation result and quality metrics as a
// plain-text report. Recommendation, warning and issue blocks are left out
// when empty.
func FormatReport(r Result, m Metrics) string {
	var lines []string
	add := func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }

	lines = append(lines, "=== BRD VALIDATION REPORT ===\n")

	status := "FAILED"
	if r.IsValid {
		status = "PASSED"
	}
	add("Overall Status: %s", status)
	add("Overall Score: %.2f/1.00", r.OverallScore)
	lines = append(lines, "")

	lines = append(lines, "DETAILED SCORES:")
	add("  Compliance Score: %.2f/1.00", r.ComplianceScore)
	add("  Terminology Score: %.2f/1.00", r.TerminologyScore)
	add("  Completeness Score: %.2f/1.00", r.CompletenessScore)
	lines = append(lines, "")

	lines = append(lines, "QUALITY METRICS:")
	add("  Total Word Count: %d", m.TotalWordCount)
	add("  Readability Score: %.2f/1.00", m.ReadabilityScore)
	add("  Structure Score: %.2f/1.00", m.StructureScore)
	lines = append(lines, "")

	if len(r.Recommendations) > 0 {
		lines = append(lines, "RECOMMENDATIONS:")
		for i, rec := range r.Recommendations {
			add("  %d. %s", i+1, rec)
		}
		lines = append(lines, "")
	}

	if len(r.Warnings) > 0 {
		lines = append(lines, "WARNINGS:")
		for _, w := range r.Warnings {
			add("  • %s", w)
		}
		lines = append(lines, "")
	}

	if len(m.ContentQualityIssues) > 0 {
		lines = append(lines, "CONTENT QUALITY ISSUES:")
		for _, issue := range m.ContentQualityIssues {
			add("  • %s", issue)
		}
	}

	return strings.Join(lines, "\n")
}
