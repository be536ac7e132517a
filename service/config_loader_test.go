package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/config"
)

func TestNewConfigurationLoader(t *testing.T) {
	loader := NewConfigurationLoader()

	if loader == nil {
		t.Fatal("NewConfigurationLoader should not return nil")
	}
}

func TestConfigurationLoader_LoadConfig_NonExistent(t *testing.T) {
	loader := NewConfigurationLoader()

	_, err := loader.LoadConfig("/nonexistent/mobilescan.yaml", "")
	if err == nil {
		t.Fatal("LoadConfig should return error for nonexistent file")
	}

	var domainErr domain.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != domain.ErrCodeConfigError {
		t.Errorf("Expected config DomainError, got %v", err)
	}
}

func TestConfigurationLoader_LoadConfig_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "mobilescan.yaml")
	if err := os.WriteFile(configFile, []byte("mobile: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewConfigurationLoader()

	_, err := loader.LoadConfig(configFile, "")
	if err == nil {
		t.Error("LoadConfig should return error for invalid YAML")
	}
}

func TestConfigurationLoader_LoadConfig_Valid(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "mobilescan.json")
	content := `{
		"mobile": {"min_touch_target_size": 48},
		"output": {"format": "json", "sort_by": "name", "min_severity": "high"}
	}`
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewConfigurationLoader()
	cfg, err := loader.LoadConfig(configFile, "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	req, err := loader.RequestFromConfig(cfg)
	if err != nil {
		t.Fatalf("RequestFromConfig failed: %v", err)
	}
	if req.OutputFormat != domain.OutputFormatJSON {
		t.Errorf("Expected json format, got %s", req.OutputFormat)
	}
	if req.SortBy != domain.SortByName {
		t.Errorf("Expected sort by name, got %s", req.SortBy)
	}
	if req.MinSeverity != domain.SeverityHigh {
		t.Errorf("Expected min severity high, got %s", req.MinSeverity)
	}
}

func TestConfigurationLoader_LoadDefaultConfig(t *testing.T) {
	loader := NewConfigurationLoader()

	cfg := loader.LoadDefaultConfig()
	if cfg == nil {
		t.Fatal("LoadDefaultConfig should never return nil")
	}
}

func TestAnalyzerOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mobile.MinTouchTargetSize = 48
	cfg.Mobile.DomainEnrichment = false
	cfg.Evaluators.Animation = true
	cfg.Catalog.AdditionalDomainKeywords = []string{"mortgage"}

	opts := AnalyzerOptions(cfg)

	if opts.MinTouchTargetSize != 48 {
		t.Errorf("Expected touch size 48, got %d", opts.MinTouchTargetSize)
	}
	if opts.DomainEnrichment {
		t.Error("Expected domain enrichment to be disabled")
	}
	if !opts.Evaluators.Animation || !opts.Evaluators.Accessibility {
		t.Errorf("Unexpected evaluator toggles: %+v", opts.Evaluators)
	}
	if opts.Catalog == nil || !opts.Catalog.MatchesDomain("mortgage offer") {
		t.Error("Expected catalog overrides to be applied")
	}
	if opts.DesktopBreakpoint != config.DefaultDesktopBreakpoint {
		t.Errorf("Expected desktop breakpoint %d, got %d", config.DefaultDesktopBreakpoint, opts.DesktopBreakpoint)
	}
}

func TestConfigurationLoader_MergeRequest(t *testing.T) {
	loader := NewConfigurationLoader()

	base := &domain.MobileRequest{
		OutputFormat: domain.OutputFormatText,
		SortBy:       domain.SortByScore,
		MinSeverity:  domain.SeverityLow,
		ConfigPath:   "base.yaml",
	}

	tests := []struct {
		name     string
		override domain.MobileRequest
		check    func(*testing.T, *domain.MobileRequest)
	}{
		{
			name:     "empty override keeps base",
			override: domain.MobileRequest{},
			check: func(t *testing.T, m *domain.MobileRequest) {
				if m.OutputFormat != domain.OutputFormatText || m.SortBy != domain.SortByScore || m.ConfigPath != "base.yaml" {
					t.Errorf("Expected base values, got %+v", m)
				}
			},
		},
		{
			name:     "format and severity",
			override: domain.MobileRequest{OutputFormat: domain.OutputFormatHTML, MinSeverity: domain.SeverityHigh},
			check: func(t *testing.T, m *domain.MobileRequest) {
				if m.OutputFormat != domain.OutputFormatHTML {
					t.Errorf("Expected html, got %s", m.OutputFormat)
				}
				if m.MinSeverity != domain.SeverityHigh {
					t.Errorf("Expected high, got %s", m.MinSeverity)
				}
			},
		},
		{
			name:     "components and no-open",
			override: domain.MobileRequest{Components: []domain.ComponentSource{{Name: "Card"}}, NoOpen: true},
			check: func(t *testing.T, m *domain.MobileRequest) {
				if len(m.Components) != 1 || !m.NoOpen {
					t.Errorf("Expected override components and NoOpen, got %+v", m)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := loader.MergeRequest(base, &tt.override)
			tt.check(t, merged)
		})
	}

	if base.OutputFormat != domain.OutputFormatText {
		t.Error("MergeRequest should not modify the base request")
	}
}

func TestConfigurationLoader_ValidateRequest(t *testing.T) {
	loader := NewConfigurationLoader()

	tests := []struct {
		name    string
		req     domain.MobileRequest
		wantErr bool
	}{
		{"valid text", domain.MobileRequest{OutputFormat: domain.OutputFormatText}, false},
		{"valid csv sorted", domain.MobileRequest{OutputFormat: domain.OutputFormatCSV, SortBy: domain.SortByPriority}, false},
		{"invalid format", domain.MobileRequest{OutputFormat: "xml"}, true},
		{"invalid severity", domain.MobileRequest{OutputFormat: domain.OutputFormatJSON, MinSeverity: "urgent"}, true},
		{"invalid sort", domain.MobileRequest{OutputFormat: domain.OutputFormatJSON, SortBy: "size"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loader.ValidateRequest(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
