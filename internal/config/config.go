package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
	"github.com/spf13/viper"
)

// Default mobile thresholds
const (
	// DefaultMinTouchTargetSize is the minimum touch target edge in pixels
	DefaultMinTouchTargetSize = 44

	// Default responsive breakpoints in pixels
	DefaultMobileBreakpoint  = 640
	DefaultTabletBreakpoint  = 768
	DefaultDesktopBreakpoint = 1024

	// MaxTouchTargetSize bounds the configurable minimum
	MaxTouchTargetSize = 200
)

// Default check and runtime settings
const (
	DefaultMinScore      = 70
	DefaultFailOn        = "critical"
	DefaultTimeoutSecond = 300
	DefaultServerHost    = "127.0.0.1"
	DefaultServerPort    = 8080
	DefaultServerMode    = "release"
	DefaultSortBy        = "score"
	DefaultMaxFileSizeKB = 1024
)

// EnvConfigPath names the environment variable pointing at a config file
const EnvConfigPath = "MOBILESCAN_CONFIG"

// Config represents the main configuration structure
type Config struct {
	// Mobile holds touch-target and breakpoint settings
	Mobile MobileConfig `json:"mobile" mapstructure:"mobile" yaml:"mobile"`

	// Evaluators toggles the optional evaluators
	Evaluators EvaluatorsConfig `json:"evaluators" mapstructure:"evaluators" yaml:"evaluators"`

	// Catalog overrides the built-in keyword tables
	Catalog CatalogConfig `json:"catalog,omitempty" mapstructure:"catalog" yaml:"catalog,omitempty"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds file discovery configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Check holds CI gate thresholds
	Check CheckConfig `json:"check" mapstructure:"check" yaml:"check"`

	// Performance holds batch execution limits
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`

	// Server holds HTTP API settings
	Server ServerConfig `json:"server" mapstructure:"server" yaml:"server"`
}

// MobileConfig holds mobile viewport and touch settings
type MobileConfig struct {
	// MinTouchTargetSize is the minimum hit area edge in pixels
	MinTouchTargetSize int `json:"min_touch_target_size" mapstructure:"min_touch_target_size" yaml:"min_touch_target_size"`

	MobileBreakpoint  int `json:"mobile_breakpoint" mapstructure:"mobile_breakpoint" yaml:"mobile_breakpoint"`
	TabletBreakpoint  int `json:"tablet_breakpoint" mapstructure:"tablet_breakpoint" yaml:"tablet_breakpoint"`
	DesktopBreakpoint int `json:"desktop_breakpoint" mapstructure:"desktop_breakpoint" yaml:"desktop_breakpoint"`

	// DomainEnrichment enables financial-domain classification and checks
	DomainEnrichment bool `json:"domain_enrichment" mapstructure:"domain_enrichment" yaml:"domain_enrichment"`
}

// EvaluatorsConfig enables the optional evaluators
type EvaluatorsConfig struct {
	Accessibility bool `json:"accessibility" mapstructure:"accessibility" yaml:"accessibility"`
	Performance   bool `json:"performance" mapstructure:"performance" yaml:"performance"`
	Animation     bool `json:"animation" mapstructure:"animation" yaml:"animation"`
}

// CatalogConfig overrides keyword tables of the built-in catalog
type CatalogConfig struct {
	// DomainKeywords replaces the line-level domain keywords when non-empty
	DomainKeywords []string `json:"domain_keywords,omitempty" mapstructure:"domain_keywords" yaml:"domain_keywords,omitempty"`

	// AdditionalDomainKeywords are appended to the domain keywords
	AdditionalDomainKeywords []string `json:"additional_domain_keywords,omitempty" mapstructure:"additional_domain_keywords" yaml:"additional_domain_keywords,omitempty"`

	// Categories replaces the ordered category table when non-empty
	Categories []catalog.CategoryKeywords `json:"categories,omitempty" mapstructure:"categories" yaml:"categories,omitempty"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv, html
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// MinSeverity hides issues below this severity in reports (empty = show all)
	MinSeverity string `json:"min_severity" mapstructure:"min_severity" yaml:"min_severity"`

	// SortBy specifies how to sort components: score, name, priority, issues, path
	SortBy string `json:"sort_by" mapstructure:"sort_by" yaml:"sort_by"`

	// ShowDetails controls whether every issue is listed in text output
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`

	// Directory specifies the output directory for file reports (empty = .mobilescan/reports)
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// FollowSymlinks controls whether to follow symbolic links
	FollowSymlinks bool `json:"follow_symlinks" mapstructure:"follow_symlinks" yaml:"follow_symlinks"`

	// RespectGitignore skips files matched by the project's .gitignore
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`

	// MaxFileSizeKB skips larger files (0 = no limit)
	MaxFileSizeKB int `json:"max_file_size_kb" mapstructure:"max_file_size_kb" yaml:"max_file_size_kb"`
}

// CheckConfig holds the thresholds used by the check command
type CheckConfig struct {
	// MinScore fails the check when any component scores below it
	MinScore int `json:"min_score" mapstructure:"min_score" yaml:"min_score"`

	// FailOn fails the check when any component reaches this priority tier
	FailOn string `json:"fail_on" mapstructure:"fail_on" yaml:"fail_on"`
}

// PerformanceConfig holds batch execution limits
type PerformanceConfig struct {
	// MaxGoroutines bounds concurrent component analyses (0 = number of CPUs)
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds a whole batch (0 = no timeout)
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host" yaml:"host"`
	Port int    `json:"port" mapstructure:"port" yaml:"port"`

	// Mode is the gin mode: debug, release or test
	Mode string `json:"mode" mapstructure:"mode" yaml:"mode"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Mobile: MobileConfig{
			MinTouchTargetSize: DefaultMinTouchTargetSize,
			MobileBreakpoint:   DefaultMobileBreakpoint,
			TabletBreakpoint:   DefaultTabletBreakpoint,
			DesktopBreakpoint:  DefaultDesktopBreakpoint,
			DomainEnrichment:   true,
		},
		Evaluators: EvaluatorsConfig{
			Accessibility: true,
			Performance:   true,
			Animation:     false,
		},
		Output: OutputConfig{
			Format:      "text",
			MinSeverity: "",
			SortBy:      DefaultSortBy,
			ShowDetails: false,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{
				"**/*.jsx", "**/*.tsx", "**/*.js", "**/*.ts",
				"**/*.vue", "**/*.svelte",
			},
			ExcludePatterns: []string{
				// Package managers and dependencies
				"node_modules",
				"vendor",
				// Build outputs
				"dist",
				"build",
				"out",
				".output",
				// Framework-specific
				".next",
				".nuxt",
				".svelte-kit",
				// Cache directories
				".cache",
				".turbo",
				"coverage",
				// Version control
				".git",
				// Tests and stories
				"__tests__",
				"*.test.*",
				"*.spec.*",
				"*.stories.*",
				// Minified and bundled files
				"*.min.js",
				"*.bundle.js",
				"*.d.ts",
			},
			Recursive:        true,
			FollowSymlinks:   false,
			RespectGitignore: true,
			MaxFileSizeKB:    DefaultMaxFileSizeKB,
		},
		Check: CheckConfig{
			MinScore: DefaultMinScore,
			FailOn:   DefaultFailOn,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  0,
			TimeoutSeconds: DefaultTimeoutSecond,
		},
		Server: ServerConfig{
			Host: DefaultServerHost,
			Port: DefaultServerPort,
			Mode: DefaultServerMode,
		},
	}
}

// BuildCatalog applies the catalog overrides to the built-in catalog
func (c *Config) BuildCatalog() *catalog.Catalog {
	cat := catalog.Default()
	if len(c.Catalog.Categories) > 0 {
		cat = cat.WithCategories(c.Catalog.Categories)
	}
	if len(c.Catalog.DomainKeywords) > 0 {
		cat = cat.WithDomainKeywords(c.Catalog.DomainKeywords)
	}
	if len(c.Catalog.AdditionalDomainKeywords) > 0 {
		cat = cat.WithAdditionalDomainKeywords(c.Catalog.AdditionalDomainKeywords)
	}
	return cat
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// discoverConfigFile finds the appropriate config file path
func discoverConfigFile(targetPath string) string {
	return findDefaultConfig(targetPath)
}

// loadConfigFromFile reads and parses a configuration file. Environment
// overrides for the server section apply with or without a file.
func loadConfigFromFile(configPath string) (*Config, error) {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()

	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// bindEnv maps environment variables onto config keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("server.port", "MOBILESCAN_PORT")
	_ = v.BindEnv("server.host", "MOBILESCAN_HOST")
	_ = v.BindEnv("server.mode", "GIN_MODE")
	_ = v.BindEnv("performance.max_goroutines", "MOBILESCAN_MAX_GOROUTINES")
}

// LoadConfigWithTarget loads configuration with target path context
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = discoverConfigFile(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// ResolveConfigPath returns the config file that LoadConfigWithTarget would use
func ResolveConfigPath(configPath string, targetPath string) string {
	if configPath != "" {
		return configPath
	}
	return discoverConfigFile(targetPath)
}

// configCandidates lists config file names in order of preference
var configCandidates = []string{
	"mobilescan.yaml",
	"mobilescan.yml",
	".mobilescan.yaml",
	".mobilescan.yml",
	"mobilescan.json",
	".mobilescan.json",
	".mobilescan.toml",
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the file or directory being analyzed.
func findDefaultConfig(targetPath string) string {
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			// If it's a file, start from its directory
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			// Walk up to the filesystem root, handling Windows volume roots
			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, configCandidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", configCandidates); config != "" {
		return config
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "mobilescan"), configCandidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "mobilescan")
		if config := searchConfigInDirectory(configDir, configCandidates); config != "" {
			return config
		}

		if config := searchConfigInDirectory(home, configCandidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv(EnvConfigPath); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	m := c.Mobile
	if m.MinTouchTargetSize < 1 || m.MinTouchTargetSize > MaxTouchTargetSize {
		return fmt.Errorf("mobile.min_touch_target_size must be between 1 and %d, got %d", MaxTouchTargetSize, m.MinTouchTargetSize)
	}
	if m.MobileBreakpoint < 1 {
		return fmt.Errorf("mobile.mobile_breakpoint must be >= 1, got %d", m.MobileBreakpoint)
	}
	if m.TabletBreakpoint <= m.MobileBreakpoint {
		return fmt.Errorf("mobile.tablet_breakpoint (%d) must be > mobile_breakpoint (%d)", m.TabletBreakpoint, m.MobileBreakpoint)
	}
	if m.DesktopBreakpoint <= m.TabletBreakpoint {
		return fmt.Errorf("mobile.desktop_breakpoint (%d) must be > tablet_breakpoint (%d)", m.DesktopBreakpoint, m.TabletBreakpoint)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"csv":  true,
		"html": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv, html", c.Output.Format)
	}

	if c.Output.MinSeverity != "" {
		if _, err := domain.ParseSeverity(c.Output.MinSeverity); err != nil {
			return fmt.Errorf("invalid output.min_severity: %w", err)
		}
	}

	validSortBy := map[string]bool{
		string(domain.SortByScore):    true,
		string(domain.SortByName):     true,
		string(domain.SortByPriority): true,
		string(domain.SortByIssues):   true,
		string(domain.SortByPath):     true,
	}
	if !validSortBy[c.Output.SortBy] {
		return fmt.Errorf("invalid output.sort_by '%s', must be one of: score, name, priority, issues, path", c.Output.SortBy)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}
	if c.Analysis.MaxFileSizeKB < 0 {
		return fmt.Errorf("analysis.max_file_size_kb must be >= 0, got %d", c.Analysis.MaxFileSizeKB)
	}

	if c.Check.MinScore < 0 || c.Check.MinScore > 100 {
		return fmt.Errorf("check.min_score must be between 0 and 100, got %d", c.Check.MinScore)
	}
	if c.Check.FailOn != "" {
		if _, err := domain.ParseSeverity(c.Check.FailOn); err != nil {
			return fmt.Errorf("invalid check.fail_on: %w", err)
		}
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch strings.ToLower(c.Server.Mode) {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server.mode '%s', must be one of: debug, release, test", c.Server.Mode)
	}

	for i, ck := range c.Catalog.Categories {
		if !isKnownCategory(ck.Category) {
			return fmt.Errorf("catalog.categories[%d]: unknown category '%s'", i, ck.Category)
		}
		if len(ck.Keywords) == 0 {
			return fmt.Errorf("catalog.categories[%d]: keywords cannot be empty", i)
		}
	}

	return nil
}

func isKnownCategory(category domain.DomainCategory) bool {
	for _, known := range domain.AllCategories() {
		if known == category && known != domain.CategoryOther {
			return true
		}
	}
	return false
}

// SaveConfig saves configuration to a file; the format follows the extension
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}

	v.Set("mobile", config.Mobile)
	v.Set("evaluators", config.Evaluators)
	v.Set("output", config.Output)
	v.Set("analysis", config.Analysis)
	v.Set("check", config.Check)
	v.Set("performance", config.Performance)
	v.Set("server", config.Server)
	if len(config.Catalog.Categories) > 0 || len(config.Catalog.DomainKeywords) > 0 || len(config.Catalog.AdditionalDomainKeywords) > 0 {
		v.Set("catalog", config.Catalog)
	}

	return v.WriteConfig()
}
