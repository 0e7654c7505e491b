package budget

import (
	"math"
	"strings"
)

// MinOutputTokens is the smallest completion reservation OutputTokens returns.
const MinOutputTokens = 256

// EstimateTokens converts a string into an estimated token count using
// roughly four characters per token. Non-empty input yields at least 1.
func EstimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	return int(math.Ceil(float64(len(s)) / 4.0))
}

// EstimatePromptTokens sums the estimates for every message of a prompt.
func EstimatePromptTokens(messages ...string) int {
	total := 0
	for _, m := range messages {
		total += EstimateTokens(m)
	}
	return total
}

// ModelContextTokens returns an estimated context window for a model name.
// Unknown models get a conservative 8192.
func ModelContextTokens(modelName string) int {
	name := strings.ToLower(strings.TrimSpace(modelName))
	if name == "" {
		return 8192
	}
	if v, ok := knownModelMax[name]; ok {
		return v
	}
	for _, s := range []struct {
		suffix string
		size   int
	}{{"1m", 1_000_000}, {"200k", 200_000}, {"128k", 128_000}, {"32k", 32_768}, {"16k", 16_384}} {
		if strings.HasSuffix(name, s.suffix) {
			return s.size
		}
	}
	if strings.Contains(name, "-mini") {
		return 128_000
	}
	return 8192
}

// HeadroomTokens is the larger of 5% of the context window or 512 tokens,
// covering tokenizer drift and message framing.
func HeadroomTokens(modelName string) int {
	dyn := int(math.Ceil(float64(ModelContextTokens(modelName)) * 0.05))
	return max(dyn, 512)
}

// OutputTokens caps a requested completion size so that prompt, headroom and
// output fit the model's window. The result never drops below
// MinOutputTokens and never exceeds requested when requested is positive.
func OutputTokens(modelName string, requested, promptTokens int) int {
	room := ModelContextTokens(modelName) - HeadroomTokens(modelName) - promptTokens
	if requested <= 0 {
		requested = room
	}
	return max(min(requested, room), MinOutputTokens)
}

var knownModelMax = map[string]int{
	"gpt-4o":             128_000,
	"gpt-4o-mini":        128_000,
	"gpt-4-turbo":        128_000,
	"gpt-4":              8_192,
	"gpt-3.5-turbo":      16_384,
	"llama-3":            8_192,
	"llama-3.1":          128_000,
	"openai/gpt-oss-20b": 4_096,
	"gpt-oss-20b":        4_096,
}
