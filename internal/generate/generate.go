package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/gobrd/internal/brief"
	"github.com/hyperifyio/gobrd/internal/budget"
	"github.com/hyperifyio/gobrd/internal/cache"
	"github.com/hyperifyio/gobrd/internal/llm"
	"github.com/hyperifyio/gobrd/internal/profile"
)

// Defaults used when the caller leaves the sampling knobs at zero.
const (
	DefaultMaxTokens   = 5000
	DefaultTemperature = 0.7
)

// ErrNoSubstantiveBody indicates the model produced no usable text.
var ErrNoSubstantiveBody = errors.New("no substantive body")

// Generator asks a chat model for a BRD draft. The returned text is raw and
// unstructured; the sections parser is responsible for recovering structure.
type Generator struct {
	Client llm.Client
	Cache  *cache.LLMCache
	Model  string
	// SystemPrompt, when non-empty, overrides the default system message.
	SystemPrompt string
	// CacheOnly, when true, returns from cache and fails fast if missing.
	CacheOnly   bool
	MaxTokens   int
	Temperature float32
}

// Generate builds the domain prompt from the brief and profile and returns
// the model's text.
func (g *Generator) Generate(ctx context.Context, b brief.Brief, p profile.Profile) (string, error) {
	if g.Client == nil || strings.TrimSpace(g.Model) == "" {
		return "", errors.New("generator not configured")
	}
	system := SystemMessage(b.Domain)
	if strings.TrimSpace(g.SystemPrompt) != "" {
		system = g.SystemPrompt
	}
	user := UserMessage(b, p)
	key := cache.KeyFrom(g.Model, system+"\n\n"+user)

	if g.Cache != nil {
		if raw, ok, _ := g.Cache.Get(ctx, key); ok {
			var out struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(raw, &out); err == nil && strings.TrimSpace(out.Text) != "" {
				return out.Text, nil
			}
		}
	}
	if g.CacheOnly {
		return "", ErrNoSubstantiveBody
	}

	maxTokens := g.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	maxTokens = budget.OutputTokens(g.Model, maxTokens, budget.EstimatePromptTokens(system, user))
	temperature := g.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	req := openai.ChatCompletionRequest{
		Model: g.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
		N:           1,
	}
	resp, err := g.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		// One short fixed backoff, skipped once the context is done.
		if ctx.Err() != nil {
			return "", fmt.Errorf("generation call: %w", err)
		}
		if sleepFunc != nil {
			sleepFunc(100)
		} else {
			defaultSleep(ctx, 100)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("generation call: %w", ctxErr)
		}
		resp, err = g.Client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("generation call (after retry): %w", err)
		}
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoSubstantiveBody
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrNoSubstantiveBody
	}
	if g.Cache != nil {
		payload, _ := json.Marshal(map[string]string{"text": out})
		_ = g.Cache.Save(ctx, key, payload)
	}
	return out, nil
}

// SystemMessage is the default system prompt for a domain.
func SystemMessage(domain string) string {
	return fmt.Sprintf("You are an expert Business Analyst specializing in %s domain. Write professional, compliance-ready Business Requirement Documents.", profile.DisplayName(domain))
}

// UserMessage renders the project facts, the domain context and the list of
// sections the draft must contain.
func UserMessage(b brief.Brief, p profile.Profile) string {
	domain := profile.DisplayName(b.Domain)
	var sb strings.Builder
	sb.WriteString("Generate a comprehensive Business Requirement Document (BRD) with the following details:\n")
	field(&sb, "Domain", domain)
	field(&sb, "Project Title", b.Title)
	field(&sb, "Project Description", b.Description)
	field(&sb, "Business Objectives", b.Objectives)
	field(&sb, "Key Stakeholders", b.Stakeholders)
	field(&sb, "Additional Requirements", b.AdditionalRequirements)
	if ctx := strings.TrimSpace(p.Context); ctx != "" {
		sb.WriteString("\nDomain Context:\n")
		sb.WriteString(ctx)
		sb.WriteString("\n")
	}
	if len(p.RequiredSections) > 0 {
		sb.WriteString("\nGenerate a detailed BRD with the following sections:\n")
		for i, name := range p.RequiredSections {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, name)
		}
	}
	sb.WriteString("\nFor each section, provide detailed, domain-specific content that addresses industry-standard terminology, relevant regulations and practical implementation details.")
	fmt.Fprintf(&sb, "\nEnsure the content is ready for %s regulatory review.", domain)
	sb.WriteString("\nFormat your response as a structured document with each section name on its own heading line followed by its content.")
	return sb.String()
}

func field(sb *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = "Not specified"
	}
	fmt.Fprintf(sb, "%s: %s\n", label, value)
}

// sleepFunc allows tests to inject a deterministic sleep hook measured in milliseconds.
// When nil, defaultSleep is used.
var sleepFunc func(ms int)

func defaultSleep(ctx context.Context, ms int) {
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(ms) * time.Millisecond):
	}
}
