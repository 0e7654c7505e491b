package validate

import (
	"github.com/hyperifyio/gobrd/internal/profile"
	"github.com/hyperifyio/gobrd/internal/sections"
)

// Validator scores BRD documents against a fixed profile set. It keeps no
// per-call state, so one Validator may serve concurrent callers.
type Validator struct {
	profiles profile.Set
}

// New returns a Validator over profiles.
func New(profiles profile.Set) *Validator {
	return &Validator{profiles: profiles.Merge(profile.Set{})}
}

// RequiredSections returns the required-section list for domain.
func (v *Validator) RequiredSections(domain string) []string {
	p, _ := v.profiles.Lookup(domain)
	return p.RequiredSections
}

// Validate scores doc for domain. Unknown domains get a neutral compliance
// score and the generic vocabulary.
func (v *Validator) Validate(doc *sections.Document, domain string) Result {
	p, known := v.profiles.Lookup(domain)
	display := profile.DisplayName(domain)

	c := ScoreCompliance(doc, p.ComplianceKeywords, known)
	t := ScoreTerminology(doc, p.Terminology)
	k := ScoreCompleteness(doc, p.RequiredSections)
	recs, warnings := Recommend(display, c, t, k, doc)
	return NewResult(c, t, k, recs, warnings)
}

// Quality computes the quality metrics of doc relative to domain's required
// sections.
func (v *Validator) Quality(doc *sections.Document, domain string) Metrics {
	return Quality(doc, len(v.RequiredSections(domain)))
}

// Evaluation bundles everything derived from one raw generation.
type Evaluation struct {
	Domain   string
	Document *sections.Document
	Result   Result
	Metrics  Metrics
	Report   string
}

// Evaluate runs the full pipeline over raw generated text: parse, score,
// measure and format. It is defined for every input, including empty text.
func (v *Validator) Evaluate(raw, domain string) Evaluation {
	return v.EvaluateWith(raw, domain, sections.IsHeader)
}

// EvaluateWith is Evaluate with a caller-supplied header matcher.
func (v *Validator) EvaluateWith(raw, domain string, isHeader sections.HeaderMatcher) Evaluation {
	doc := sections.ParseWith(raw, v.RequiredSections(domain), isHeader)
	res := v.Validate(doc, domain)
	m := v.Quality(doc, domain)
	return Evaluation{
		Domain:   profile.DisplayName(domain),
		Document: doc,
		Result:   res,
		Metrics:  m,
		Report:   FormatReport(res, m),
	}
}
