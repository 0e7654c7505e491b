package validate

// Weights of the sub-scores in the overall score, and the pass threshold.
const (
	WeightCompliance   = 0.4
	WeightTerminology  = 0.3
	WeightCompleteness = 0.3
	ValidThreshold     = 0.7
)

// Result is the outcome of validating one document. It is plain data; the
// overall score and validity flag are derived by NewResult and nowhere else.
type Result struct {
	ComplianceScore   float64  `json:"compliance_score"`
	TerminologyScore  float64  `json:"terminology_score"`
	CompletenessScore float64  `json:"completeness_score"`
	OverallScore      float64  `json:"overall_score"`
	IsValid           bool     `json:"is_valid"`
	MissingKeywords   []string `json:"missing_keywords"`
	MissingSections   []string `json:"missing_sections"`
	Recommendations   []string `json:"recommendations"`
	Warnings          []string `json:"warnings"`
}

// OverallScore combines the three sub-scores with the fixed weights.
func OverallScore(compliance, terminology, completeness float64) float64 {
	return compliance*WeightCompliance + terminology*WeightTerminology + completeness*WeightCompleteness
}

// NewResult assembles a Result from the scorer outputs and the generated
// guidance.
func NewResult(c ComplianceResult, t TerminologyResult, k CompletenessResult, recs, warnings []string) Result {
	overall := OverallScore(c.Score, t.Score, k.Score)
	return Result{
		ComplianceScore:   c.Score,
		TerminologyScore:  t.Score,
		CompletenessScore: k.Score,
		OverallScore:      overall,
		IsValid:           overall >= ValidThreshold,
		MissingKeywords:   nonNil(c.Missing),
		MissingSections:   nonNil(k.Incomplete()),
		Recommendations:   nonNil(recs),
		Warnings:          nonNil(warnings),
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string(nil), in...)
}
