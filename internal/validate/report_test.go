package validate

import (
	"strings"
	"testing"
)

func TestFormatReport_FullLayout(t *testing.T) {
	r := Result{
		ComplianceScore:   0.5,
		TerminologyScore:  1,
		CompletenessScore: 0.5,
		OverallScore:      OverallScore(0.5, 1, 0.5),
		Recommendations:   []string{"first", "second"},
		Warnings:          []string{"careful"},
	}
	m := Metrics{TotalWordCount: 120, ReadabilityScore: 0.24, StructureScore: 1, ContentQualityIssues: []string{"Section 'X' is too brief"}}

	got := FormatReport(r, m)
	want := strings.Join([]string{
		"=== BRD VALIDATION REPORT ===",
		"",
		"Overall Status: FAILED",
		"Overall Score: 0.65/1.00",
		"",
		"DETAILED SCORES:",
		"  Compliance Score: 0.50/1.00",
		"  Terminology Score: 1.00/1.00",
		"  Completeness Score: 0.50/1.00",
		"",
		"QUALITY METRICS:",
		"  Total Word Count: 120",
		"  Readability Score: 0.24/1.00",
		"  Structure Score: 1.00/1.00",
		"",
		"RECOMMENDATIONS:",
		"  1. first",
		"  2. second",
		"",
		"WARNINGS:",
		"  • careful",
		"",
		"CONTENT QUALITY ISSUES:",
		"  • Section 'X' is too brief",
	}, "\n")
	if got != want {
		t.Fatalf("report mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestFormatReport_OmitsEmptyBlocks(t *testing.T) {
	r := NewResult(ComplianceResult{Score: 1}, TerminologyResult{Score: 1}, CompletenessResult{Score: 1}, nil, nil)
	got := FormatReport(r, Metrics{})
	if !strings.Contains(got, "Overall Status: PASSED") {
		t.Fatalf("expected PASSED:\n%s", got)
	}
	for _, block := range []string{"RECOMMENDATIONS:", "WARNINGS:", "CONTENT QUALITY ISSUES:"} {
		if strings.Contains(got, block) {
			t.Fatalf("empty block %q should be omitted:\n%s", block, got)
		}
	}
}
