package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/mobilescan/internal/config"
)

// runInitCmd executes the init command with args and returns its stdout
func runInitCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := initCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mobilescan.yaml")

	out, err := runInitCmd(t, "--config", configPath)
	if err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if !strings.Contains(out, "mobilescan analyze .") {
		t.Errorf("Expected next-step hint, got %q", out)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	expectedSections := []string{
		"mobile:",
		"min_touch_target_size:",
		"evaluators:",
		"output:",
		"analysis:",
		"check:",
		"fail_on:",
		"server:",
	}

	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing expected section: %s", section)
		}
	}
}

func TestInitCommand_GeneratedConfigLoads(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mobilescan.yaml")

	if _, err := runInitCmd(t, "--config", configPath, "--project", "vue", "--strictness", "strict"); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Generated config does not load: %v", err)
	}
	if cfg.Mobile.MinTouchTargetSize != 48 {
		t.Errorf("Expected min touch target 48, got %d", cfg.Mobile.MinTouchTargetSize)
	}
	if cfg.Check.MinScore != 85 {
		t.Errorf("Expected min score 85, got %d", cfg.Check.MinScore)
	}
	if len(cfg.Analysis.IncludePatterns) != 1 || cfg.Analysis.IncludePatterns[0] != "**/*.vue" {
		t.Errorf("Expected vue include pattern, got %v", cfg.Analysis.IncludePatterns)
	}
}

func TestInitCommand_UnknownPreset(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"project", []string{"--project", "angular"}},
		{"strictness", []string{"--strictness", "paranoid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(dir, tt.name+".yaml")
			_, err := runInitCmd(t, append([]string{"--config", configPath}, tt.args...)...)
			if err == nil {
				t.Fatal("Expected error for unknown preset")
			}
			if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
				t.Error("Config file should not be written for unknown preset")
			}
		})
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mobilescan.yaml")

	existingContent := []byte("existing: true\n")
	if err := os.WriteFile(configPath, existingContent, 0644); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	// Without force - should fail
	_, err := runInitCmd(t, "--config", configPath)
	if err == nil {
		t.Fatal("Expected error when file exists without --force")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected 'already exists' error, got: %v", err)
	}

	// With force - should succeed
	if _, err := runInitCmd(t, "--config", configPath, "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if !strings.Contains(string(content), "mobile:") {
		t.Error("Config file was not overwritten with new content")
	}
}

func TestInitCommand_MinimalConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mobilescan.yaml")

	if _, err := runInitCmd(t, "--config", configPath, "--minimal"); err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	contentStr := string(content)

	for _, section := range []string{"mobile:", "check:"} {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Minimal config missing %s section", section)
		}
	}
	if strings.Contains(contentStr, "server:") {
		t.Error("Minimal config should not contain the server section")
	}
}

func TestInitCommand_InvalidDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "missing", "mobilescan.yaml")

	_, err := runInitCmd(t, "--config", configPath)
	if err == nil {
		t.Fatal("Expected error when directory doesn't exist")
	}

	if !strings.Contains(err.Error(), "directory does not exist") {
		t.Errorf("Expected 'directory does not exist' error, got: %v", err)
	}
}

func TestInitCommand_FullConfigSize(t *testing.T) {
	dir := t.TempDir()

	fullPath := filepath.Join(dir, "full.yaml")
	if _, err := runInitCmd(t, "--config", fullPath); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	minimalPath := filepath.Join(dir, "minimal.yaml")
	if _, err := runInitCmd(t, "--config", minimalPath, "--minimal"); err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}

	fullContent, _ := os.ReadFile(fullPath)
	minimalContent, _ := os.ReadFile(minimalPath)

	if len(fullContent) <= len(minimalContent) {
		t.Error("Full config should be larger than minimal config")
	}
}

func TestInitCmd_FlagsExist(t *testing.T) {
	cmd := initCmd()

	expectedFlags := []string{"config", "force", "minimal", "interactive", "project", "strictness"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}

	shortFlags := map[string]string{
		"c": "config",
		"f": "force",
		"i": "interactive",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestInitCmd_DefaultConfigPath(t *testing.T) {
	cmd := initCmd()

	configFlag := cmd.Flags().Lookup("config")
	if configFlag == nil {
		t.Fatal("config flag not found")
	}

	if configFlag.DefValue != "mobilescan.yaml" {
		t.Errorf("Expected default config path to be 'mobilescan.yaml', got '%s'", configFlag.DefValue)
	}
}
