package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gobrd/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath       string
		envFiles         string
		inputPath        string
		outputPath       string
		outputDir        string
		reportPath       string
		pdfPath          string
		htmlPath         string
		rawPath          string
		domain           string
		profilesPath     string
		strictHeaders    bool
		llmBaseURL       string
		llmModel         string
		llmKey           string
		llmTimeout       time.Duration
		maxTokens        int
		temperature      float64
		systemPrompt     string
		systemPromptFile string
		validateGlob     string
		dryRun           bool
		verbose          bool
		cacheDir         string
		cacheMaxAge      time.Duration
		cacheClear       bool
		cacheStrict      bool
		llmCacheOnly     bool
		showVersion      bool
	)

	flag.StringVar(&configPath, "config", os.Getenv("GOBRD_CONFIG"), "Path to YAML, JSON or TOML config file")
	flag.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load before reading env (missing files are ignored)")
	flag.StringVar(&inputPath, "input", "brief.md", "Path to the Markdown project brief")
	flag.StringVar(&outputPath, "output", "", "Path to write the BRD Markdown (default: derived under -out.dir)")
	flag.StringVar(&outputDir, "out.dir", "", "Directory for derived output names (default \"generated\")")
	flag.StringVar(&reportPath, "report", "", "Path to write the validation report (default: <output>.report.txt)")
	flag.StringVar(&pdfPath, "pdf", "", "Optional path to also export the BRD as PDF")
	flag.StringVar(&htmlPath, "html", "", "Optional path to also export the BRD as HTML")
	flag.StringVar(&rawPath, "raw", "", "Optional path to save the unparsed generated text")
	flag.StringVar(&domain, "domain", "", "Business domain; overrides the brief (e.g. Pharma, Finance)")
	flag.StringVar(&profilesPath, "profiles", "", "Domain profile overlay file (YAML, JSON or TOML)")
	flag.BoolVar(&strictHeaders, "strict-headers", false, "Only treat Markdown headings as section headers")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", "", "Model name")
	flag.StringVar(&llmKey, "llm.key", "", "API key for OpenAI-compatible server")
	flag.DurationVar(&llmTimeout, "llm.timeout", 0, "Overall timeout per model request (default 3m)")
	flag.IntVar(&maxTokens, "llm.maxTokens", 0, "Maximum tokens to generate (default 5000)")
	flag.Float64Var(&temperature, "llm.temperature", 0, "Sampling temperature (default 0.7)")
	flag.StringVar(&systemPrompt, "llm.systemPrompt", "", "Override the generation system prompt (inline string)")
	flag.StringVar(&systemPromptFile, "llm.systemPromptFile", "", "Path to file containing the generation system prompt")
	flag.StringVar(&validateGlob, "validate", "", "Validate existing generated files matching this glob (supports **) instead of generating")
	flag.BoolVar(&dryRun, "dry-run", false, "Use the template generator instead of calling the model")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.StringVar(&cacheDir, "cache.dir", ".gobrd-cache", "Cache directory path (empty disables the cache)")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
	flag.BoolVar(&cacheStrict, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	flag.BoolVar(&llmCacheOnly, "llm.cacheOnly", false, "Serve generations from cache only; fail when missing")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("gobrd %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.LoadEnvFiles(splitList(envFiles)...); err != nil {
		log.Warn().Err(err).Msg("load env files")
	}
	if strings.TrimSpace(systemPromptFile) != "" {
		if b, err := os.ReadFile(systemPromptFile); err == nil {
			systemPrompt = string(b)
		} else {
			log.Warn().Err(err).Str("path", systemPromptFile).Msg("read system prompt file")
		}
	}

	cfg := app.Config{
		InputPath:        inputPath,
		OutputPath:       outputPath,
		OutputDir:        outputDir,
		ReportPath:       reportPath,
		PDFPath:          pdfPath,
		HTMLPath:         htmlPath,
		RawPath:          rawPath,
		Domain:           domain,
		ProfilesPath:     profilesPath,
		StrictHeaders:    strictHeaders,
		LLMBaseURL:       llmBaseURL,
		LLMModel:         llmModel,
		LLMAPIKey:        llmKey,
		LLMTimeout:       llmTimeout,
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		SystemPrompt:     systemPrompt,
		ValidateGlob:     validateGlob,
		DryRun:           dryRun,
		Verbose:          verbose,
		CacheDir:         cacheDir,
		CacheMaxAge:      cacheMaxAge,
		CacheClear:       cacheClear,
		CacheStrictPerms: cacheStrict,
		LLMCacheOnly:     llmCacheOnly,
	}

	// Precedence: flags > env > config file.
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
		}
		if err := app.ApplyFileConfig(&cfg, fc); err != nil {
			log.Fatal().Err(err).Msg("apply config file")
		}
		explicit := explicitFlags()
		snapshot := cfg
		app.ApplyEnvOverrides(&cfg)
		restoreExplicit(&cfg, snapshot, explicit)
	} else {
		app.ApplyEnvToConfig(&cfg)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: nonzero only when the model gave no substantive
		// body; other failures are reported as warnings.
		if errors.Is(err, app.ErrNoSubstantiveBody) {
			os.Exit(2)
		}
		os.Exit(0)
	}
}

func run(ctx context.Context, cfg app.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func explicitFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// restoreExplicit puts back values given on the command line after env
// overrides were applied on top of the config file.
func restoreExplicit(cfg *app.Config, flags app.Config, explicit map[string]bool) {
	if explicit["llm.base"] {
		cfg.LLMBaseURL = flags.LLMBaseURL
	}
	if explicit["llm.model"] {
		cfg.LLMModel = flags.LLMModel
	}
	if explicit["llm.key"] {
		cfg.LLMAPIKey = flags.LLMAPIKey
	}
	if explicit["llm.timeout"] {
		cfg.LLMTimeout = flags.LLMTimeout
	}
	if explicit["llm.maxTokens"] {
		cfg.MaxTokens = flags.MaxTokens
	}
	if explicit["llm.temperature"] {
		cfg.Temperature = flags.Temperature
	}
	if explicit["llm.systemPrompt"] || explicit["llm.systemPromptFile"] {
		cfg.SystemPrompt = flags.SystemPrompt
	}
	if explicit["domain"] {
		cfg.Domain = flags.Domain
	}
	if explicit["profiles"] {
		cfg.ProfilesPath = flags.ProfilesPath
	}
	if explicit["out.dir"] {
		cfg.OutputDir = flags.OutputDir
	}
	if explicit["cache.dir"] {
		cfg.CacheDir = flags.CacheDir
	}
	if explicit["cache.maxAge"] {
		cfg.CacheMaxAge = flags.CacheMaxAge
	}
	if explicit["dry-run"] {
		cfg.DryRun = flags.DryRun
	}
	if explicit["v"] {
		cfg.Verbose = flags.Verbose
	}
	if explicit["strict-headers"] {
		cfg.StrictHeaders = flags.StrictHeaders
	}
	if explicit["cache.clear"] {
		cfg.CacheClear = flags.CacheClear
	}
	if explicit["cache.strictPerms"] {
		cfg.CacheStrictPerms = flags.CacheStrictPerms
	}
	if explicit["llm.cacheOnly"] {
		cfg.LLMCacheOnly = flags.LLMCacheOnly
	}
}
