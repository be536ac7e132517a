package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ProjectType represents the UI framework of the analyzed project
type ProjectType string

const (
	ProjectTypeGeneric     ProjectType = "generic"
	ProjectTypeReact       ProjectType = "react"
	ProjectTypeReactNative ProjectType = "react-native"
	ProjectTypeVue         ProjectType = "vue"
	ProjectTypeSvelte      ProjectType = "svelte"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds file patterns for a project type
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// StrictnessPreset holds thresholds for a strictness level
type StrictnessPreset struct {
	MinTouchTargetSize int
	MinScore           int
	FailOn             string
	Animation          bool
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	common := []string{
		"node_modules", "dist", "build", "coverage", ".git",
		"__tests__", "*.test.*", "*.spec.*", "*.stories.*", "*.min.js", "*.d.ts",
	}
	with := func(extra ...string) []string {
		return append(append([]string{}, common...), extra...)
	}

	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{"**/*.jsx", "**/*.tsx", "**/*.js", "**/*.ts", "**/*.vue", "**/*.svelte"},
			ExcludePatterns: with(),
		},
		ProjectTypeReact: {
			IncludePatterns: []string{"**/*.jsx", "**/*.tsx"},
			ExcludePatterns: with(".next", "out"),
		},
		ProjectTypeReactNative: {
			IncludePatterns: []string{"**/*.jsx", "**/*.tsx", "**/*.js", "**/*.ts"},
			ExcludePatterns: with("android", "ios", ".expo"),
		},
		ProjectTypeVue: {
			IncludePatterns: []string{"**/*.vue"},
			ExcludePatterns: with(".nuxt", ".output"),
		},
		ProjectTypeSvelte: {
			IncludePatterns: []string{"**/*.svelte"},
			ExcludePatterns: with(".svelte-kit"),
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			MinTouchTargetSize: 40,
			MinScore:           60,
			FailOn:             "critical",
		},
		StrictnessStandard: {
			MinTouchTargetSize: DefaultMinTouchTargetSize,
			MinScore:           DefaultMinScore,
			FailOn:             DefaultFailOn,
		},
		StrictnessStrict: {
			MinTouchTargetSize: 48,
			MinScore:           85,
			FailOn:             "high",
			Animation:          true,
		},
	}
}

// BuildConfig returns the default configuration adjusted for a project type
// and strictness level. Unknown values fall back to generic and standard.
func BuildConfig(projectType ProjectType, strictness Strictness) *Config {
	preset, ok := GetProjectPresets()[projectType]
	if !ok {
		preset = GetProjectPresets()[ProjectTypeGeneric]
	}
	strict, ok := GetStrictnessPresets()[strictness]
	if !ok {
		strict = GetStrictnessPresets()[StrictnessStandard]
	}

	cfg := DefaultConfig()
	cfg.Analysis.IncludePatterns = preset.IncludePatterns
	cfg.Analysis.ExcludePatterns = preset.ExcludePatterns
	cfg.Mobile.MinTouchTargetSize = strict.MinTouchTargetSize
	cfg.Check.MinScore = strict.MinScore
	cfg.Check.FailOn = strict.FailOn
	cfg.Evaluators.Animation = strict.Animation
	return cfg
}

// sectionDocs documents each top-level section in generated files
var sectionDocs = map[string]string{
	"mobile":      "Touch targets and responsive breakpoints (pixels).\ndomain_enrichment enables financial-app categories and checks.",
	"evaluators":  "Optional evaluators. Animation findings are informational and not scored.",
	"output":      "Report format: text, json, yaml, csv, html.\nmin_severity hides lower issues in reports (critical, high, medium, low).",
	"analysis":    "Which files are analyzed (glob patterns).",
	"check":       "CI gate used by 'mobilescan check'.\nfail_on is the priority tier that fails the build.",
	"performance": "Parallel analysis limits (0 = automatic / no timeout).",
	"server":      "HTTP API started by 'mobilescan serve'.",
}

// GetFullConfigTemplate returns a documented YAML config for the given presets
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) (string, error) {
	return renderTemplate(BuildConfig(projectType, strictness), true)
}

// GetMinimalConfigTemplate returns a YAML config with the essential options only
func GetMinimalConfigTemplate() (string, error) {
	cfg := DefaultConfig()
	minimal := struct {
		Mobile MobileConfig `yaml:"mobile"`
		Check  CheckConfig  `yaml:"check"`
	}{Mobile: cfg.Mobile, Check: cfg.Check}
	return renderTemplate(minimal, false)
}

func renderTemplate(value interface{}, documented bool) (string, error) {
	var doc yaml.Node
	if err := doc.Encode(value); err != nil {
		return "", fmt.Errorf("failed to encode config template: %w", err)
	}

	doc.HeadComment = "mobilescan configuration\nDocumentation: https://github.com/ludo-technologies/mobilescan"
	if documented && doc.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(doc.Content); i += 2 {
			key := doc.Content[i]
			if comment, ok := sectionDocs[key.Value]; ok {
				key.HeadComment = comment
			}
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return "", fmt.Errorf("failed to render config template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
