// Package testutil provides helper functions for testing mobilescan components
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/mobilescan/domain"
)

// NewComponent builds an in-memory component source
func NewComponent(name, content string) domain.ComponentSource {
	return domain.ComponentSource{
		Name:    name,
		Path:    "src/" + name + ".tsx",
		Content: content,
		Size:    int64(len(content)),
	}
}

// WriteFiles creates files under root, keyed by slash-separated relative path
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}
}

// FindIssue returns the first issue of the given category, or nil
func FindIssue(result *domain.AnalysisResult, category string) *domain.Issue {
	for _, issue := range result.All() {
		if issue.Category == category {
			found := issue
			return &found
		}
	}
	return nil
}

// CountIssues counts the issues of the given category
func CountIssues(result *domain.AnalysisResult, category string) int {
	count := 0
	for _, issue := range result.All() {
		if issue.Category == category {
			count++
		}
	}
	return count
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertScoreInRange fails the test if a score is outside 0..100
func AssertScoreInRange(t *testing.T, name string, score int) {
	t.Helper()
	if score < 0 || score > 100 {
		t.Errorf("%s score %d is outside 0..100", name, score)
	}
}
