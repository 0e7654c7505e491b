package app

import (
	"strconv"
	"strings"
)

// appendReproFooter appends a minimal, deterministic footer that records
// configuration useful for reproducibility and auditing: model name, LLM
// base URL, which generator produced the text, the overall validation score
// and whether the LLM cache was active.
func appendReproFooter(markdown string, model string, baseURL string, generator string, overall float64, llmCacheActive bool) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(markdown, "\n"))
	b.WriteString("\n\n---\n")
	b.WriteString("Reproducibility: ")
	b.WriteString("model=")
	b.WriteString(strings.TrimSpace(model))
	b.WriteString("; llm_base_url=")
	b.WriteString(strings.TrimSpace(baseURL))
	b.WriteString("; generator=")
	b.WriteString(generator)
	b.WriteString("; overall_score=")
	b.WriteString(strconv.FormatFloat(overall, 'f', 2, 64))
	b.WriteString("; llm_cache=")
	b.WriteString(strconv.FormatBool(llmCacheActive))
	b.WriteString("\n")
	return b.String()
}
