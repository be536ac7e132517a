package version

import (
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = ""
	if got := GetVersion(); got != "dev" {
		t.Errorf("Expected dev for empty version, got %s", got)
	}

	Version = "1.2.3"
	if got := GetVersion(); got != "1.2.3" {
		t.Errorf("Expected 1.2.3, got %s", got)
	}
}

func TestGetFullVersion(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "1.2.3"
	full := GetFullVersion()
	for _, want := range []string{"1.2.3", "commit: " + Commit, "by: " + BuiltBy} {
		if !strings.Contains(full, want) {
			t.Errorf("Expected %q in %q", want, full)
		}
	}
}
