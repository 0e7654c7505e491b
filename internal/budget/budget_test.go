package budget

import "testing"

func TestEstimateTokens(t *testing.T) {
	cases := map[string]int{"": 0, "a": 1, "abcd": 1, "abcde": 2}
	for in, want := range cases {
		if got := EstimateTokens(in); got != want {
			t.Fatalf("EstimateTokens(%q)=%d want %d", in, got, want)
		}
	}
	if got := EstimatePromptTokens("abcd", "abcdefgh", ""); got != 3 {
		t.Fatalf("EstimatePromptTokens=%d", got)
	}
}

func TestModelContextTokens(t *testing.T) {
	cases := map[string]int{
		"":                8192,
		"GPT-4o":          128_000,
		"gpt-oss-20b":     4_096,
		"local-model-32k": 32_768,
		"acme-mini":       128_000,
		"something-else":  8192,
	}
	for in, want := range cases {
		if got := ModelContextTokens(in); got != want {
			t.Fatalf("ModelContextTokens(%q)=%d want %d", in, got, want)
		}
	}
}

func TestHeadroomTokens(t *testing.T) {
	if got := HeadroomTokens("gpt-oss-20b"); got != 512 {
		t.Fatalf("small model headroom=%d", got)
	}
	if got := HeadroomTokens("gpt-4o"); got != 6400 {
		t.Fatalf("large model headroom=%d", got)
	}
}

func TestOutputTokens(t *testing.T) {
	// Large window: the request is honored.
	if got := OutputTokens("gpt-4o", 5000, 1000); got != 5000 {
		t.Fatalf("gpt-4o: %d", got)
	}
	// 4096 - 512 - 1000 = 2584 remains.
	if got := OutputTokens("gpt-oss-20b", 5000, 1000); got != 2584 {
		t.Fatalf("gpt-oss-20b: %d", got)
	}
	// Oversized prompt still leaves the floor.
	if got := OutputTokens("gpt-oss-20b", 5000, 10_000); got != MinOutputTokens {
		t.Fatalf("floor: %d", got)
	}
	// Zero request means "whatever fits".
	if got := OutputTokens("gpt-oss-20b", 0, 0); got != 3584 {
		t.Fatalf("unbounded: %d", got)
	}
}
