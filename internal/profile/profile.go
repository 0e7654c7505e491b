package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"
)

// Profile is the static configuration for one business domain.
type Profile struct {
	Domain               string   `yaml:"domain" json:"domain" toml:"domain"`
	Name                 string   `yaml:"name" json:"name" toml:"name"`
	RequiredSections     []string `yaml:"requiredSections" json:"requiredSections" toml:"requiredSections"`
	ComplianceKeywords   []string `yaml:"complianceKeywords" json:"complianceKeywords" toml:"complianceKeywords"`
	Terminology          []string `yaml:"terminology" json:"terminology" toml:"terminology"`
	Context              string   `yaml:"context" json:"context" toml:"context"`
	ComplianceReferences []string `yaml:"complianceReferences" json:"complianceReferences" toml:"complianceReferences"`
}

// Set is the full domain configuration: the default required-section list,
// the vocabulary used for unknown domains and the per-domain profiles.
type Set struct {
	RequiredSections   []string  `yaml:"requiredSections" json:"requiredSections" toml:"requiredSections"`
	GenericTerminology []string  `yaml:"genericTerminology" json:"genericTerminology" toml:"genericTerminology"`
	Profiles           []Profile `yaml:"profiles" json:"profiles" toml:"profiles"`
}

const (
	genericContext   = "General business context with standard compliance requirements."
	genericReference = "Standard compliance requirements"
)

//go:embed profiles.yaml
var builtin []byte

var defaultSet = mustParse(builtin)

func mustParse(b []byte) Set {
	s, err := Parse(b, ".yaml")
	if err != nil {
		panic(fmt.Sprintf("profile: invalid built-in profiles: %v", err))
	}
	return s
}

// Default returns the built-in Pharma and Finance configuration.
func Default() Set {
	return defaultSet.clone()
}

// Parse decodes a profile set. The format is chosen by file extension
// (".yaml", ".yml", ".json", ".toml"); anything else is tried as YAML.
func Parse(data []byte, ext string) (Set, error) {
	var s Set
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return Set{}, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return Set{}, fmt.Errorf("parse toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Set{}, fmt.Errorf("parse yaml: %w", err)
		}
	}
	return s.normalize(), nil
}

// LoadFile reads a profile set from disk.
func LoadFile(path string) (Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}
	return Parse(b, filepath.Ext(path))
}

// Merge overlays o on top of s. Non-empty top-level lists in o replace those
// in s; profiles replace same-domain profiles and new domains are appended.
// The result is normalized, so Merge(Set{}) also cleans up a hand-built Set.
func (s Set) Merge(o Set) Set {
	out := s.clone()
	if len(o.RequiredSections) > 0 {
		out.RequiredSections = append([]string(nil), o.RequiredSections...)
	}
	if len(o.GenericTerminology) > 0 {
		out.GenericTerminology = append([]string(nil), o.GenericTerminology...)
	}
	for _, p := range o.normalize().Profiles {
		replaced := false
		for i := range out.Profiles {
			if out.Profiles[i].Domain == p.Domain {
				out.Profiles[i] = p.clone()
				replaced = true
				break
			}
		}
		if !replaced {
			out.Profiles = append(out.Profiles, p.clone())
		}
	}
	return out.normalize()
}

// Lookup returns the profile for domain, matched case-insensitively. For an
// unknown domain it returns a generic profile (default sections, generic
// vocabulary, no compliance keywords) and false.
func (s Set) Lookup(domain string) (Profile, bool) {
	key := NormalizeDomain(domain)
	for _, p := range s.Profiles {
		if p.Domain == key {
			out := p.clone()
			if len(out.RequiredSections) == 0 {
				out.RequiredSections = append([]string(nil), s.RequiredSections...)
			}
			return out, true
		}
	}
	return Profile{
		Domain:               key,
		Name:                 "General BRD",
		RequiredSections:     append([]string(nil), s.RequiredSections...),
		Terminology:          append([]string(nil), s.GenericTerminology...),
		Context:              genericContext,
		ComplianceReferences: []string{genericReference},
	}, false
}

// Domains lists the configured domain keys in order.
func (s Set) Domains() []string {
	out := make([]string, 0, len(s.Profiles))
	for _, p := range s.Profiles {
		out = append(out, p.Domain)
	}
	return out
}

// NormalizeDomain is the lookup key for a user-supplied domain name.
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// DisplayName renders a domain for humans, e.g. "pharma" -> "Pharma".
func DisplayName(domain string) string {
	d := strings.TrimSpace(domain)
	if d == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(d))
}

func (s Set) normalize() Set {
	out := Set{
		RequiredSections:   trimList(s.RequiredSections),
		GenericTerminology: dedupe(s.GenericTerminology),
	}
	for _, p := range s.Profiles {
		p.Domain = NormalizeDomain(p.Domain)
		if p.Domain == "" {
			continue
		}
		p.RequiredSections = trimList(p.RequiredSections)
		p.ComplianceKeywords = dedupe(p.ComplianceKeywords)
		p.Terminology = dedupe(p.Terminology)
		p.ComplianceReferences = trimList(p.ComplianceReferences)
		p.Context = strings.TrimSpace(p.Context)
		out.Profiles = append(out.Profiles, p)
	}
	return out
}

func (s Set) clone() Set {
	out := Set{
		RequiredSections:   append([]string(nil), s.RequiredSections...),
		GenericTerminology: append([]string(nil), s.GenericTerminology...),
	}
	for _, p := range s.Profiles {
		out.Profiles = append(out.Profiles, p.clone())
	}
	return out
}

func (p Profile) clone() Profile {
	p.RequiredSections = append([]string(nil), p.RequiredSections...)
	p.ComplianceKeywords = append([]string(nil), p.ComplianceKeywords...)
	p.Terminology = append([]string(nil), p.Terminology...)
	p.ComplianceReferences = append([]string(nil), p.ComplianceReferences...)
	return p
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// dedupe trims entries and drops case-insensitive duplicates, keeping the
// first spelling.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, v := range trimList(in) {
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}
