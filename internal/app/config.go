package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// InputPath is the Markdown project brief.
	InputPath string
	// OutputPath is the BRD Markdown file. When empty a name is derived
	// from domain, title and time under OutputDir.
	OutputPath string
	OutputDir  string
	// ReportPath defaults to OutputPath + ".report.txt".
	ReportPath string
	PDFPath    string
	HTMLPath   string
	// RawPath, when set, receives the unparsed generated text.
	RawPath string

	// Domain overrides the domain named in the brief.
	Domain       string
	ProfilesPath string
	// StrictHeaders only accepts Markdown headings as section headers.
	StrictHeaders bool

	// LLM
	LLMBaseURL   string
	LLMModel     string
	LLMAPIKey    string
	LLMTimeout   time.Duration
	MaxTokens    int
	Temperature  float64
	SystemPrompt string

	// ValidateGlob switches to batch mode: every matching file is treated
	// as raw generated text and gets a report next to it.
	ValidateGlob string

	// Behavior
	DryRun           bool
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool
	LLMCacheOnly     bool
	Verbose          bool
}
