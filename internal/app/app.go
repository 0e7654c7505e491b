package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gobrd/internal/brief"
	"github.com/hyperifyio/gobrd/internal/cache"
	"github.com/hyperifyio/gobrd/internal/export"
	"github.com/hyperifyio/gobrd/internal/generate"
	"github.com/hyperifyio/gobrd/internal/llm"
	"github.com/hyperifyio/gobrd/internal/profile"
	"github.com/hyperifyio/gobrd/internal/sections"
	"github.com/hyperifyio/gobrd/internal/validate"
)

// App runs the generate, parse, validate and export pipeline.
type App struct {
	cfg       Config
	client    llm.Client
	profiles  profile.Set
	validator *validate.Validator
	llmCache  *cache.LLMCache
	httpc     *http.Client
	now       func() time.Time
}

// ErrNoSubstantiveBody is returned when the model answered with no usable
// text. Per the exit code policy this is the one failure that makes the
// process exit non-zero.
var ErrNoSubstantiveBody = generate.ErrNoSubstantiveBody

func New(ctx context.Context, cfg Config) (*App, error) {
	profiles := profile.Default()
	if p := strings.TrimSpace(cfg.ProfilesPath); p != "" {
		overlay, err := profile.LoadFile(p)
		if err != nil {
			return nil, fmt.Errorf("load profiles: %w", err)
		}
		profiles = profiles.Merge(overlay)
		log.Debug().Str("path", p).Strs("domains", profiles.Domains()).Msg("loaded domain profiles")
	}

	a := &App{cfg: cfg, profiles: profiles, validator: validate.New(profiles), now: time.Now}

	if cfg.CacheDir != "" {
		// Apply cache invalidation controls; failures here never stop a run.
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			n, err := cache.PurgeLLMCacheByAge(cfg.CacheDir, cfg.CacheMaxAge)
			if err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged stale cache entries")
			}
		}
		a.llmCache = &cache.LLMCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	if cfg.DryRun || strings.TrimSpace(cfg.LLMModel) == "" || strings.TrimSpace(cfg.ValidateGlob) != "" {
		return a, nil
	}
	a.httpc = newLLMHTTPClient(cfg.LLMTimeout)
	provider := llm.NewOpenAI(cfg.LLMBaseURL, cfg.LLMAPIKey, a.httpc)
	a.client = provider

	// Best-effort preflight: an unreachable server is reported by the
	// generation call itself.
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := provider.ListModels(pctx)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
	case len(models.Models) == 0:
		log.Warn().Msg("LLM returned zero models")
	default:
		log.Info().Int("count", len(models.Models)).Msg("LLM models available")
	}
	return a, nil
}

// Close releases idle connections held by the model client.
func (a *App) Close() {
	if a.httpc != nil {
		a.httpc.CloseIdleConnections()
	}
}

// Run executes one configured job: batch validation when ValidateGlob is
// set, otherwise generation from the input brief.
func (a *App) Run(ctx context.Context) error {
	if strings.TrimSpace(a.cfg.ValidateGlob) != "" {
		_, err := a.ValidateFiles(ctx, a.cfg.ValidateGlob)
		return err
	}

	// 1) Read and parse brief
	inputBytes, err := os.ReadFile(a.cfg.InputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	b := brief.ParseBrief(string(inputBytes))
	if d := strings.TrimSpace(a.cfg.Domain); d != "" {
		b.Domain = d
	}
	for _, problem := range b.Validate() {
		log.Warn().Str("input", a.cfg.InputPath).Msg("brief: " + problem)
	}
	p, known := a.profiles.Lookup(b.Domain)
	if !known {
		log.Warn().Str("domain", b.Domain).Msg("unknown domain; using generic profile")
	}
	log.Info().Str("domain", profile.DisplayName(b.Domain)).Str("title", b.Title).Msg("generating BRD")

	// 2) Generate raw text
	raw, generator, err := a.generate(ctx, b, p)
	if err != nil {
		return err
	}

	// 3) Parse, score and report
	ev := a.evaluate(raw, b.Domain)
	log.Info().
		Float64("overall", ev.Result.OverallScore).
		Float64("compliance", ev.Result.ComplianceScore).
		Float64("terminology", ev.Result.TerminologyScore).
		Float64("completeness", ev.Result.CompletenessScore).
		Bool("valid", ev.Result.IsValid).
		Msg("BRD validation completed")
	for _, w := range ev.Result.Warnings {
		log.Debug().Str("warning", w).Msg("validation warning")
	}

	// 4) Write outputs
	ts := a.now()
	outPath := a.cfg.OutputPath
	if strings.TrimSpace(outPath) == "" {
		outPath = deriveOutputPath(a.cfg.OutputDir, b.Domain, b.Title, ts)
	}
	meta := export.MetaFor(b.Title, p, ts)
	meta.Domain = profile.DisplayName(b.Domain)
	meta.Fields = []export.Field{
		{Key: "Overall Score", Value: fmt.Sprintf("%.2f", ev.Result.OverallScore)},
		{Key: "Validation", Value: status(ev.Result.IsValid)},
	}

	md := export.Markdown(ev.Document, meta)
	md = appendReproFooter(md, a.cfg.LLMModel, a.cfg.LLMBaseURL, generator, ev.Result.OverallScore, a.llmCache != nil)
	if err := writeFile(outPath, []byte(md)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	outputs := []string{outPath}

	reportPath := a.cfg.ReportPath
	if strings.TrimSpace(reportPath) == "" {
		reportPath = deriveReportPath(outPath)
	}
	if err := writeFile(reportPath, []byte(ev.Report+"\n")); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	outputs = append(outputs, reportPath)

	if a.cfg.RawPath != "" {
		if err := writeFile(a.cfg.RawPath, []byte(raw)); err != nil {
			log.Warn().Err(err).Str("path", a.cfg.RawPath).Msg("write raw text failed")
		} else {
			outputs = append(outputs, a.cfg.RawPath)
		}
	}
	if a.cfg.PDFPath != "" {
		if err := writeWith(a.cfg.PDFPath, func(f *os.File) error { return export.PDF(f, ev.Document, meta) }); err != nil {
			log.Warn().Err(err).Str("path", a.cfg.PDFPath).Msg("PDF export failed")
		} else {
			outputs = append(outputs, a.cfg.PDFPath)
		}
	}
	if a.cfg.HTMLPath != "" {
		if err := writeWith(a.cfg.HTMLPath, func(f *os.File) error { return export.HTML(f, ev.Document, meta) }); err != nil {
			log.Warn().Err(err).Str("path", a.cfg.HTMLPath).Msg("HTML export failed")
		} else {
			outputs = append(outputs, a.cfg.HTMLPath)
		}
	}

	// 5) Sidecar manifest
	mm := manifestMeta{
		RunID:       newRunID(),
		Version:     BuildVersion,
		Title:       b.Title,
		Domain:      meta.Domain,
		Generator:   generator,
		LLMCache:    a.llmCache != nil,
		InputSHA256: computeSHA256Hex(string(inputBytes)),
		GeneratedAt: ts.UTC(),
	}
	if generator == generatorLLM {
		mm.Model = a.cfg.LLMModel
		mm.LLMBaseURL = a.cfg.LLMBaseURL
	}
	if mb, err := marshalManifestJSON(mm, ev, outputs); err == nil {
		if err := writeFile(deriveManifestSidecarPath(outPath), mb); err != nil {
			log.Warn().Err(err).Msg("write manifest failed")
		}
	}

	log.Info().Str("out", outPath).Str("report", reportPath).Str("run_id", mm.RunID).Msg("wrote BRD")
	return nil
}

// generate returns the raw text and the label of the generator that made it.
// Model failures other than an empty answer fall back to the template.
func (a *App) generate(ctx context.Context, b brief.Brief, p profile.Profile) (string, string, error) {
	if a.client == nil {
		if !a.cfg.DryRun {
			log.Info().Msg("no model configured; using template generator")
		}
		return generate.Fallback(b, p), generatorTemplate, nil
	}
	g := &generate.Generator{
		Client:       a.client,
		Cache:        a.llmCache,
		Model:        a.cfg.LLMModel,
		SystemPrompt: a.cfg.SystemPrompt,
		CacheOnly:    a.cfg.LLMCacheOnly,
		MaxTokens:    a.cfg.MaxTokens,
		Temperature:  float32(a.cfg.Temperature),
	}
	raw, err := g.Generate(ctx, b, p)
	switch {
	case err == nil:
		return raw, generatorLLM, nil
	case errors.Is(err, generate.ErrNoSubstantiveBody):
		return "", "", err
	case ctx.Err() != nil:
		return "", "", ctx.Err()
	}
	log.Warn().Err(err).Msg("model generation failed; using template generator")
	return generate.Fallback(b, p), generatorTemplate, nil
}

func (a *App) evaluate(raw, domain string) validate.Evaluation {
	if a.cfg.StrictHeaders {
		return a.validator.EvaluateWith(raw, domain, sections.MarkdownHeadingMatcher)
	}
	return a.validator.Evaluate(raw, domain)
}

func status(valid bool) string {
	if valid {
		return "PASSED"
	}
	return "FAILED"
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func writeWith(path string, render func(f *os.File) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
