package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hyperifyio/gobrd/internal/profile"
	"github.com/hyperifyio/gobrd/internal/validate"
)

func TestMarshalManifestJSON_RecordsScoresAndSections(t *testing.T) {
	v := validate.New(profile.Default())
	ev := v.Evaluate("Project Overview\nFDA and HIPAA apply to this clinical trial.", "pharma")
	meta := manifestMeta{
		RunID:       newRunID(),
		Version:     BuildVersion,
		Domain:      "Pharma",
		Generator:   generatorLLM,
		Model:       "gpt-local",
		GeneratedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	b, err := marshalManifestJSON(meta, ev, []string{"out.md"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got manifest
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := uuid.Parse(got.Meta.RunID); err != nil {
		t.Fatalf("run id is not a uuid: %q", got.Meta.RunID)
	}
	if got.Scores.Overall != ev.Result.OverallScore || got.Scores.Valid != ev.Result.IsValid {
		t.Fatalf("scores not recorded: %+v", got.Scores)
	}
	if len(got.Sections) != ev.Document.Len() {
		t.Fatalf("expected %d sections, got %d", ev.Document.Len(), len(got.Sections))
	}
	if got.Sections[0].Name != "Project Overview" || got.Sections[0].Placeholder || got.Sections[0].Words != 8 {
		t.Fatalf("first section: %+v", got.Sections[0])
	}
	if !got.Sections[1].Placeholder {
		t.Fatalf("missing sections should be marked as placeholders: %+v", got.Sections[1])
	}
}

func TestNewRunID_Unique(t *testing.T) {
	if newRunID() == newRunID() {
		t.Fatalf("run ids must differ")
	}
}
