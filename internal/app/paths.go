package app

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperifyio/gobrd/internal/export"
)

const outputDirDefault = "generated"

// deriveOutputPath returns the BRD Markdown path under dir for a brief. The
// file name carries domain, cleaned title and a timestamp so repeated runs do
// not overwrite each other.
func deriveOutputPath(dir, domain, title string, ts time.Time) string {
	root := strings.TrimSpace(dir)
	if root == "" {
		root = outputDirDefault
	}
	return filepath.Join(root, export.Filename(domain, title, ts)+".md")
}

// deriveReportPath returns the validation report path written next to path.
func deriveReportPath(path string) string {
	return path + ".report.txt"
}

// deriveManifestSidecarPath returns a sidecar JSON path next to the output Markdown.
func deriveManifestSidecarPath(outputPath string) string {
	return outputPath + ".manifest.json"
}
