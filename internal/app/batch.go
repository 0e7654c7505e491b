package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gobrd/internal/brief"
)

// ValidateFiles treats every file matching the doublestar pattern as raw
// generated text, validates it against the configured domain and writes
// "<file>.report.txt" next to it. Per-file failures are logged and skipped;
// the returned count is the number of reports written.
func (a *App) ValidateFiles(ctx context.Context, pattern string) (int, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return 0, fmt.Errorf("glob %q: %w", pattern, err)
	}
	domain := strings.TrimSpace(a.cfg.Domain)
	if domain == "" {
		domain = brief.DefaultDomain
	}
	if len(matches) == 0 {
		log.Warn().Str("pattern", pattern).Msg("no files matched")
		return 0, nil
	}

	written := 0
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if isGeneratedArtifact(path) {
			continue
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("read failed; skipping")
			continue
		}
		ev := a.evaluate(string(raw), domain)
		if err := writeFile(deriveReportPath(path), []byte(ev.Report+"\n")); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("write report failed; skipping")
			continue
		}
		written++
		log.Info().
			Str("file", path).
			Float64("overall", ev.Result.OverallScore).
			Bool("valid", ev.Result.IsValid).
			Msg("validated")
	}
	return written, nil
}

// isGeneratedArtifact reports files this tool wrote itself, so a broad
// pattern does not validate earlier reports.
func isGeneratedArtifact(path string) bool {
	return strings.HasSuffix(path, ".report.txt") || strings.HasSuffix(path, ".manifest.json")
}
