package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadConfigFile_AllFormatsAgree(t *testing.T) {
	files := map[string]string{
		"gobrd.yaml": "input: req.md\ndomain: finance\nllm:\n  model: m1\n  maxTokens: 2000\ncache:\n  maxAge: 24h\n",
		"gobrd.json": `{"input":"req.md","domain":"finance","llm":{"model":"m1","maxTokens":2000},"cache":{"maxAge":"24h"}}`,
		"gobrd.toml": "input = \"req.md\"\ndomain = \"finance\"\n\n[llm]\nmodel = \"m1\"\nmaxTokens = 2000\n\n[cache]\nmaxAge = \"24h\"\n",
	}
	for name, content := range files {
		fc, err := LoadConfigFile(writeConfig(t, name, content))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		var cfg Config
		if err := ApplyFileConfig(&cfg, fc); err != nil {
			t.Fatalf("%s: apply: %v", name, err)
		}
		if cfg.InputPath != "req.md" || cfg.Domain != "finance" || cfg.LLMModel != "m1" || cfg.MaxTokens != 2000 || cfg.CacheMaxAge != 24*time.Hour {
			t.Fatalf("%s: unexpected config %+v", name, cfg)
		}
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	fc, err := LoadConfigFile(writeConfig(t, "c.yaml", "input: file.md\nllm:\n  model: file-model\ncache:\n  dir: /var/cache/gobrd\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := Config{InputPath: inputDefault, LLMModel: "flag-model", CacheDir: cacheDirDefault}
	if err := ApplyFileConfig(&cfg, fc); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.InputPath != "file.md" {
		t.Fatalf("file should replace a default input, got %q", cfg.InputPath)
	}
	if cfg.LLMModel != "flag-model" {
		t.Fatalf("explicit flag must win, got %q", cfg.LLMModel)
	}
	if cfg.CacheDir != "/var/cache/gobrd" {
		t.Fatalf("file should replace default cache dir, got %q", cfg.CacheDir)
	}
}

func TestApplyFileConfig_BadDuration(t *testing.T) {
	var fc FileConfig
	fc.Cache.MaxAge = "soon"
	if err := ApplyFileConfig(&Config{}, fc); err == nil {
		t.Fatalf("expected duration error")
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"missing input", Config{DryRun: true}, false},
		{"dry run without model", Config{InputPath: "b.md", DryRun: true}, true},
		{"model required", Config{InputPath: "b.md"}, false},
		{"with model", Config{InputPath: "b.md", LLMModel: "m"}, true},
		{"batch needs nothing else", Config{ValidateGlob: "*.txt"}, true},
		{"bad temperature", Config{InputPath: "b.md", LLMModel: "m", Temperature: 3}, false},
	}
	for _, c := range cases {
		err := ValidateConfig(c.cfg)
		if (err == nil) != c.ok {
			t.Fatalf("%s: err=%v", c.name, err)
		}
	}
}
