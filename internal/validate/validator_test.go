package validate

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/hyperifyio/gobrd/internal/profile"
	"github.com/hyperifyio/gobrd/internal/sections"
)

func pharmaOnly() profile.Set {
	return profile.Set{
		RequiredSections: []string{"Project Overview", "Compliance & Risk Assessment"},
		Profiles: []profile.Profile{{
			Domain:             "Pharma",
			ComplianceKeywords: []string{"FDA", "HIPAA"},
			Terminology:        []string{"clinical trial", "protocol"},
		}},
	}
}

func TestValidate_PharmaHalfCompliance(t *testing.T) {
	v := New(pharmaOnly())
	doc := docOf(
		"Project Overview", "The sponsor runs a clinical trial under an approved protocol with remote monitoring.",
		"Compliance & Risk Assessment", "Submissions are aligned with FDA expectations for electronic records.",
	)
	res := v.Validate(doc, "Pharma")
	if res.ComplianceScore != 0.5 {
		t.Fatalf("compliance: got %v", res.ComplianceScore)
	}
	if !reflect.DeepEqual(res.MissingKeywords, []string{"HIPAA"}) {
		t.Fatalf("missing keywords: got %v", res.MissingKeywords)
	}
	if len(res.Recommendations) < 2 ||
		res.Recommendations[0] != "Consider adding more compliance references for Pharma domain" ||
		res.Recommendations[1] != "Include these compliance keywords: HIPAA" {
		t.Fatalf("recommendations: got %q", res.Recommendations)
	}
	if res.TerminologyScore != 1 {
		t.Fatalf("terminology: got %v", res.TerminologyScore)
	}
}

func TestValidate_UnknownDomainIsNeutral(t *testing.T) {
	v := New(profile.Default())
	res := v.Validate(docOf("Project Overview", "business requirements"), "Retail")
	if res.ComplianceScore != 0.5 || len(res.MissingKeywords) != 0 {
		t.Fatalf("unknown domain: got %+v", res)
	}
}

func TestEvaluate_EmptyTextEightSections(t *testing.T) {
	v := New(profile.Default())
	ev := v.Evaluate("", "pharma")
	if ev.Document.Len() != 8 {
		t.Fatalf("expected 8 keys, got %d", ev.Document.Len())
	}
	if ev.Result.CompletenessScore != 0 {
		t.Fatalf("completeness: got %v", ev.Result.CompletenessScore)
	}
	if ev.Metrics.StructureScore != 1 {
		t.Fatalf("structure: got %v", ev.Metrics.StructureScore)
	}
	if len(ev.Result.MissingSections) != 8 {
		t.Fatalf("all sections should be listed as thin: %v", ev.Result.MissingSections)
	}
	if ev.Result.IsValid {
		t.Fatalf("empty document must not pass")
	}
	if !strings.Contains(ev.Report, "Overall Status: FAILED") {
		t.Fatalf("report:\n%s", ev.Report)
	}
}

func TestEvaluate_ScoresBoundedForAnyInput(t *testing.T) {
	sets := []profile.Set{profile.Default(), {}, pharmaOnly()}
	inputs := []string{
		"",
		"\n\n\n",
		"KPIs",
		"Project Overview\n" + strings.Repeat("FDA HIPAA GxP clinical trial adverse event 21 CFR Part 11. ", 50),
		"Compliance\nCompliance\nCompliance",
	}
	for si, set := range sets {
		v := New(set)
		for _, in := range inputs {
			for _, domain := range []string{"pharma", "Finance", "", "unknown"} {
				ev := v.Evaluate(in, domain)
				r := ev.Result
				for name, s := range map[string]float64{
					"compliance":   r.ComplianceScore,
					"terminology":  r.TerminologyScore,
					"completeness": r.CompletenessScore,
					"overall":      r.OverallScore,
					"readability":  ev.Metrics.ReadabilityScore,
					"structure":    ev.Metrics.StructureScore,
				} {
					if math.IsNaN(s) || s < 0 || s > 1 {
						t.Fatalf("set %d input %q domain %q: %s score %v out of range", si, in, domain, name, s)
					}
				}
				if r.IsValid != (r.OverallScore >= ValidThreshold) {
					t.Fatalf("validity flag inconsistent: %+v", r)
				}
				for _, req := range v.RequiredSections(domain) {
					if !ev.Document.Has(req) {
						t.Fatalf("required %q missing from parsed document", req)
					}
				}
			}
		}
	}
}

func TestValidate_Idempotent(t *testing.T) {
	v := New(profile.Default())
	doc := sections.Parse("Project Overview\nGDPR and Basel III.\nKPIs\nProbability of default.", v.RequiredSections("finance"))
	a := v.Validate(doc, "finance")
	b := v.Validate(doc, "finance")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("validation is not deterministic")
	}
}

// Concurrent validations must not see each other's findings.
func TestValidate_ConcurrentCallsDoNotShareFindings(t *testing.T) {
	v := New(profile.Default())
	docs := map[string]*sections.Document{
		"FDA":   docOf("Project Overview", "FDA"),
		"HIPAA": docOf("Project Overview", "HIPAA"),
	}
	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := 0; i < 100; i++ {
		for present, doc := range docs {
			wg.Add(1)
			go func(present string, doc *sections.Document) {
				defer wg.Done()
				res := v.Validate(doc, "pharma")
				for _, kw := range res.MissingKeywords {
					if kw == present {
						errs <- fmt.Errorf("doc containing %s reported it missing: %v", present, res.MissingKeywords)
						return
					}
				}
			}(present, doc)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestEvaluateWith_MarkdownHeadingsOnly(t *testing.T) {
	v := New(profile.Default())
	raw := "## Project Overview\nThe compliance team owns this.\n## Project Scope\nAll sites."
	loose := v.Evaluate(raw, "pharma")
	if !loose.Document.Has("The compliance team owns this.") {
		t.Fatalf("default matcher should split on the keyword line: %v", loose.Document.Names())
	}
	strict := v.EvaluateWith(raw, "pharma", sections.MarkdownHeadingMatcher)
	got, _ := strict.Document.Get("Project Overview")
	if got != "The compliance team owns this." {
		t.Fatalf("strict matcher should keep the body intact, got %q", got)
	}
}

func TestEvaluate_TrailingRequiredHeaderGetsPlaceholder(t *testing.T) {
	v := New(profile.Default())
	ev := v.Evaluate("Project Overview\nText here.\nProject Scope", "pharma")
	got, _ := ev.Document.Get("Project Scope")
	if got != sections.Placeholder("Project Scope") {
		t.Fatalf("Project Scope: got %q", got)
	}
	if ev.Metrics.StructureScore != 1 {
		t.Fatalf("structure: got %v", ev.Metrics.StructureScore)
	}
}
