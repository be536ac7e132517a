package service

import (
	"fmt"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/analyzer"
	"github.com/ludo-technologies/mobilescan/internal/config"
)

// ConfigurationLoaderImpl loads configuration and converts it into analyzer
// options and batch requests
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the given path, or discovers one
// starting at targetPath when path is empty
func (c *ConfigurationLoaderImpl) LoadConfig(path, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(path, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads a discovered configuration, falling back to defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *config.Config {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err == nil {
		return cfg
	}
	return config.DefaultConfig()
}

// AnalyzerOptions converts a Config into analyzer options
func AnalyzerOptions(cfg *config.Config) analyzer.Options {
	return analyzer.Options{
		MinTouchTargetSize: cfg.Mobile.MinTouchTargetSize,
		MobileBreakpoint:   cfg.Mobile.MobileBreakpoint,
		TabletBreakpoint:   cfg.Mobile.TabletBreakpoint,
		DesktopBreakpoint:  cfg.Mobile.DesktopBreakpoint,
		Evaluators: analyzer.EvaluatorToggles{
			Accessibility: cfg.Evaluators.Accessibility,
			Performance:   cfg.Evaluators.Performance,
			Animation:     cfg.Evaluators.Animation,
		},
		DomainEnrichment: cfg.Mobile.DomainEnrichment,
		Catalog:          cfg.BuildCatalog(),
	}
}

// RequestFromConfig builds the presentation part of a batch request from config
func (c *ConfigurationLoaderImpl) RequestFromConfig(cfg *config.Config) (*domain.MobileRequest, error) {
	req := &domain.MobileRequest{
		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		SortBy:       domain.SortCriteria(cfg.Output.SortBy),
	}
	if cfg.Output.MinSeverity != "" {
		sev, err := domain.ParseSeverity(cfg.Output.MinSeverity)
		if err != nil {
			return nil, domain.NewConfigError("invalid output.min_severity", err)
		}
		req.MinSeverity = sev
	}
	return req, nil
}

// MergeRequest overlays non-zero values of override (CLI flags) on base (config)
func (c *ConfigurationLoaderImpl) MergeRequest(base, override *domain.MobileRequest) *domain.MobileRequest {
	merged := *base

	if len(override.Components) > 0 {
		merged.Components = override.Components
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.NoOpen {
		merged.NoOpen = true
	}
	if override.MinSeverity != "" {
		merged.MinSeverity = override.MinSeverity
	}
	if override.SortBy != "" {
		merged.SortBy = override.SortBy
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// ValidateRequest validates the presentation settings of a request
func (c *ConfigurationLoaderImpl) ValidateRequest(req *domain.MobileRequest) error {
	validFormats := map[domain.OutputFormat]bool{
		domain.OutputFormatText: true,
		domain.OutputFormatJSON: true,
		domain.OutputFormatYAML: true,
		domain.OutputFormatCSV:  true,
		domain.OutputFormatHTML: true,
	}
	if !validFormats[req.OutputFormat] {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml, csv, html)", req.OutputFormat)
	}

	if req.MinSeverity != "" && req.MinSeverity.Rank() == 0 {
		return fmt.Errorf("invalid minimum severity: %s", req.MinSeverity)
	}

	switch req.SortBy {
	case "", domain.SortByScore, domain.SortByName, domain.SortByPriority, domain.SortByIssues, domain.SortByPath:
	default:
		return fmt.Errorf("invalid sort criteria: %s", req.SortBy)
	}

	return nil
}
