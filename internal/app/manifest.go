package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hyperifyio/gobrd/internal/sections"
	"github.com/hyperifyio/gobrd/internal/validate"
)

// Generator labels recorded in the manifest and footer.
const (
	generatorLLM      = "llm"
	generatorTemplate = "template"
)

// manifestSection is a compact record of one parsed section.
type manifestSection struct {
	Name        string `json:"name"`
	SHA256      string `json:"sha256"`
	Chars       int    `json:"chars"`
	Words       int    `json:"words"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// manifestMeta captures high-level run details that aid reproducibility.
type manifestMeta struct {
	RunID       string    `json:"run_id"`
	Version     string    `json:"version"`
	Title       string    `json:"title,omitempty"`
	Domain      string    `json:"domain"`
	Generator   string    `json:"generator"`
	Model       string    `json:"model,omitempty"`
	LLMBaseURL  string    `json:"llm_base_url,omitempty"`
	LLMCache    bool      `json:"llm_cache"`
	InputSHA256 string    `json:"input_sha256"`
	GeneratedAt time.Time `json:"generated_at"`
}

// manifestScores mirrors the validation result and quality metrics.
type manifestScores struct {
	Compliance   float64 `json:"compliance"`
	Terminology  float64 `json:"terminology"`
	Completeness float64 `json:"completeness"`
	Overall      float64 `json:"overall"`
	Valid        bool    `json:"valid"`
	Readability  float64 `json:"readability"`
	Structure    float64 `json:"structure"`
	Words        int     `json:"words"`
}

type manifest struct {
	Meta     manifestMeta      `json:"meta"`
	Scores   manifestScores    `json:"scores"`
	Sections []manifestSection `json:"sections"`
	Outputs  []string          `json:"outputs"`
}

func newRunID() string {
	return uuid.NewString()
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of the given text.
func computeSHA256Hex(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

func buildManifestSections(doc *sections.Document) []manifestSection {
	out := make([]manifestSection, 0, doc.Len())
	for _, s := range doc.Sections() {
		out = append(out, manifestSection{
			Name:        s.Name,
			SHA256:      computeSHA256Hex(s.Content),
			Chars:       len([]rune(s.Content)),
			Words:       len(strings.Fields(s.Content)),
			Placeholder: sections.IsPlaceholder(s.Name, s.Content),
		})
	}
	return out
}

func scoresFrom(ev validate.Evaluation) manifestScores {
	r, m := ev.Result, ev.Metrics
	return manifestScores{
		Compliance:   r.ComplianceScore,
		Terminology:  r.TerminologyScore,
		Completeness: r.CompletenessScore,
		Overall:      r.OverallScore,
		Valid:        r.IsValid,
		Readability:  m.ReadabilityScore,
		Structure:    m.StructureScore,
		Words:        m.TotalWordCount,
	}
}

// marshalManifestJSON encodes a machine-readable sidecar manifest.
func marshalManifestJSON(meta manifestMeta, ev validate.Evaluation, outputs []string) ([]byte, error) {
	return json.MarshalIndent(manifest{
		Meta:     meta,
		Scores:   scoresFrom(ev),
		Sections: buildManifestSections(ev.Document),
		Outputs:  outputs,
	}, "", "  ")
}
