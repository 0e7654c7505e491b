package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Nested sections improve readability and map naturally to flags/env.
type FileConfig struct {
	Input    string `yaml:"input" json:"input" toml:"input"`
	Output   string `yaml:"output" json:"output" toml:"output"`
	OutDir   string `yaml:"outputDir" json:"outputDir" toml:"outputDir"`
	Report   string `yaml:"report" json:"report" toml:"report"`
	PDF      string `yaml:"pdf" json:"pdf" toml:"pdf"`
	HTML     string `yaml:"html" json:"html" toml:"html"`
	Raw      string `yaml:"raw" json:"raw" toml:"raw"`
	Domain   string `yaml:"domain" json:"domain" toml:"domain"`
	Profiles string `yaml:"profiles" json:"profiles" toml:"profiles"`

	StrictHeaders bool `yaml:"strictHeaders" json:"strictHeaders" toml:"strictHeaders"`
	DryRun        bool `yaml:"dryRun" json:"dryRun" toml:"dryRun"`
	Verbose       bool `yaml:"verbose" json:"verbose" toml:"verbose"`

	LLM struct {
		BaseURL      string  `yaml:"base" json:"base" toml:"base"`
		Model        string  `yaml:"model" json:"model" toml:"model"`
		APIKey       string  `yaml:"key" json:"key" toml:"key"`
		Timeout      string  `yaml:"timeout" json:"timeout" toml:"timeout"`
		MaxTokens    int     `yaml:"maxTokens" json:"maxTokens" toml:"maxTokens"`
		Temperature  float64 `yaml:"temperature" json:"temperature" toml:"temperature"`
		SystemPrompt string  `yaml:"systemPrompt" json:"systemPrompt" toml:"systemPrompt"`
		CacheOnly    bool    `yaml:"cacheOnly" json:"cacheOnly" toml:"cacheOnly"`
	} `yaml:"llm" json:"llm" toml:"llm"`

	Cache struct {
		Dir         string `yaml:"dir" json:"dir" toml:"dir"`
		MaxAge      string `yaml:"maxAge" json:"maxAge" toml:"maxAge"`
		Clear       bool   `yaml:"clear" json:"clear" toml:"clear"`
		StrictPerms bool   `yaml:"strictPerms" json:"strictPerms" toml:"strictPerms"`
	} `yaml:"cache" json:"cache" toml:"cache"`
}

// LoadConfigFile reads YAML, JSON or TOML into FileConfig, chosen by
// extension.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse toml: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// Flag defaults that file config may replace.
const (
	inputDefault    = "brief.md"
	cacheDirDefault = ".gobrd-cache"
)

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset/zero in cfg. Flags should already have been parsed; this
// function lets file config supply defaults while preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) error {
	if cfg == nil {
		return nil
	}
	setStr := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
		}
	}
	setBool := func(dst *bool, v bool) {
		if !*dst && v {
			*dst = true
		}
	}

	if (cfg.InputPath == "" || cfg.InputPath == inputDefault) && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	setStr(&cfg.OutputPath, fc.Output)
	setStr(&cfg.OutputDir, fc.OutDir)
	setStr(&cfg.ReportPath, fc.Report)
	setStr(&cfg.PDFPath, fc.PDF)
	setStr(&cfg.HTMLPath, fc.HTML)
	setStr(&cfg.RawPath, fc.Raw)
	setStr(&cfg.Domain, fc.Domain)
	setStr(&cfg.ProfilesPath, fc.Profiles)
	setBool(&cfg.StrictHeaders, fc.StrictHeaders)
	setBool(&cfg.DryRun, fc.DryRun)
	setBool(&cfg.Verbose, fc.Verbose)

	setStr(&cfg.LLMBaseURL, fc.LLM.BaseURL)
	setStr(&cfg.LLMModel, fc.LLM.Model)
	setStr(&cfg.LLMAPIKey, fc.LLM.APIKey)
	setStr(&cfg.SystemPrompt, fc.LLM.SystemPrompt)
	setBool(&cfg.LLMCacheOnly, fc.LLM.CacheOnly)
	if cfg.MaxTokens == 0 && fc.LLM.MaxTokens > 0 {
		cfg.MaxTokens = fc.LLM.MaxTokens
	}
	if cfg.Temperature == 0 && fc.LLM.Temperature > 0 {
		cfg.Temperature = fc.LLM.Temperature
	}
	if cfg.LLMTimeout == 0 && fc.LLM.Timeout != "" {
		d, err := time.ParseDuration(fc.LLM.Timeout)
		if err != nil {
			return fmt.Errorf("config: llm.timeout: %w", err)
		}
		cfg.LLMTimeout = d
	}

	if (cfg.CacheDir == "" || cfg.CacheDir == cacheDirDefault) && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge != "" {
		d, err := time.ParseDuration(fc.Cache.MaxAge)
		if err != nil {
			return fmt.Errorf("config: cache.maxAge: %w", err)
		}
		cfg.CacheMaxAge = d
	}
	setBool(&cfg.CacheClear, fc.Cache.Clear)
	setBool(&cfg.CacheStrictPerms, fc.Cache.StrictPerms)
	return nil
}

// ValidateConfig performs minimal schema validation for required settings.
// For dry-run and batch validation, LLM settings may be omitted.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.ValidateGlob) != "" {
		return nil
	}
	if strings.TrimSpace(cfg.InputPath) == "" {
		return errors.New("config: input path is required")
	}
	if !cfg.DryRun && strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llm.model is required (or set LLM_MODEL, or use -dry-run)")
	}
	if cfg.MaxTokens < 0 || cfg.Temperature < 0 || cfg.Temperature > 2 {
		return errors.New("config: maxTokens must be >= 0 and temperature within [0, 2]")
	}
	return nil
}
