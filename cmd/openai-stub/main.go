package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	log.Info().Str("addr", addr).Str("model", model).Msg("openai-stub listening")
	if err := http.ListenAndServe(addr, newMux(model)); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}

func newMux(model string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		var system, user string
		for _, m := range req.Messages {
			switch m.Role {
			case "system":
				system = m.Content
			case "user":
				user = m.Content
			}
		}
		if !strings.Contains(system, "Business Analyst") {
			http.Error(w, "unexpected system", http.StatusBadRequest)
			return
		}
		content := cannedBRD(domainFrom(user))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]any{
				{"index": 0, "finish_reason": "stop", "message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	})
	return mux
}

func domainFrom(user string) string {
	for _, line := range strings.Split(user, "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "Domain:"); ok {
			return strings.TrimSpace(v)
		}
	}
	return "Pharma"
}

func cannedBRD(domain string) string {
	if strings.EqualFold(domain, "finance") {
		return financeBRD
	}
	return pharmaBRD
}

const pharmaBRD = `# Business Requirement Document

## Project Overview
The sponsor will deploy a validated platform to manage clinical trial operations across sites, aligned with FDA expectations and GxP practice.

## Business Objectives
- Reduce adverse event reporting time from days to hours.
- Improve data integrity across investigational sites.

## Functional Requirements
- Capture adverse event reports with automated pharmacovigilance triage.
- Maintain an audit trail for every record change.

## Non-Functional Requirements
- 21 CFR Part 11 electronic signatures and records.
- HIPAA safeguards for protected health information.

## Key Performance Indicators (KPIs)
- Median adverse event triage time under four hours.
- Zero critical findings during regulatory inspections.

## Compliance & Risk Assessment
- Validation protocol executed before go-live.
- Informed consent records retained for the full retention period.

## Stakeholder Analysis
- Sponsor drug safety team, site investigators, regulatory affairs and quality assurance.

## Project Scope
- In scope: safety data capture, signal review and regulatory submissions.
- Out of scope: manufacturing batch records.
`

const financeBRD = `# Business Requirement Document

## Project Overview
The bank will build a credit risk platform that estimates probability of default and loss given default for the retail loan book under Basel III.

## Business Objectives
- Improve capital adequacy reporting accuracy.
- Shorten the monthly stress testing cycle.

## Functional Requirements
- Score every new application with the approved credit risk model.
- Revalue collateral nightly from market feeds.

## Non-Functional Requirements
- GDPR controls for customer data, including retention and erasure.
- Full audit logging of model inputs and outputs.

## Key Performance Indicators (KPIs)
- Model monitoring reports delivered within two business days of month end.
- Stress testing cycle under five working days.

## Compliance & Risk Assessment
- Governance committee approval for each model change.
- Independent validation of the probability of default model.

## Stakeholder Analysis
- Chief risk officer, credit officers, model validation and internal audit.

## Project Scope
- In scope: retail secured and unsecured lending.
- Out of scope: trading book exposures.
`
