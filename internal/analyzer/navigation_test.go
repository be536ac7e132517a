package analyzer

import (
	"reflect"
	"testing"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

func TestNavigationEvaluator_HamburgerToggle(t *testing.T) {
	e := NewNavigationEvaluator(catalog.Default(), true)
	issues := e.Evaluate(view(component("Header", `<button className="menu-toggle">`)))

	var hamburger *domain.Issue
	for i := range issues {
		if issues[i].Category == "hamburger-menu" {
			hamburger = &issues[i]
		}
	}
	if hamburger == nil {
		t.Fatalf("Expected a hamburger-menu issue, got %+v", issues)
	}
	if hamburger.Severity != domain.SeverityMedium && hamburger.Severity != domain.SeverityHigh {
		t.Errorf("Expected medium or high severity, got %s", hamburger.Severity)
	}
	if hamburger.Line != 1 {
		t.Errorf("Expected line 1, got %d", hamburger.Line)
	}
}

func TestNavigationEvaluator_Checks(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		enrichment bool
		expected   []string
	}{
		{"unlabelled toggle", `<button className="menu-toggle">`, true, []string{"missing-aria-label", "hamburger-menu"}},
		{"labelled toggle hidden on desktop", `<button className="md:hidden menu-toggle" aria-label="Open menu">`, true, nil},
		{"tight nav", `<nav className="flex gap-1">`, true, []string{"missing-aria-label", "tight-spacing"}},
		{"spaced nav with label", `<nav className="flex gap-4" aria-label="Accounts">`, true, nil},
		{"pay button without label", `<button onClick={pay}>Pay</button>`, true, []string{"missing-aria-label"}},
		{"plain button", `<button onClick={close}>Close</button>`, true, nil},
		{"pay button generic mode", `<button onClick={pay}>Pay</button>`, false, nil},
		{"navigation generic mode", `<div className="navbar">`, false, []string{"missing-aria-label"}},
		{"p-10 is not tight", `<nav className="p-10" aria-label="Main">`, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := NewNavigationEvaluator(catalog.Default(), tt.enrichment).Evaluate(view(component("Header", tt.line)))
			var got []string
			for _, i := range issues {
				got = append(got, i.Category)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNavigationEvaluator_Score(t *testing.T) {
	e := NewNavigationEvaluator(catalog.Default(), true)
	issues := []domain.Issue{
		{Severity: domain.SeverityCritical},
		{Severity: domain.SeverityHigh},
		{Severity: domain.SeverityMedium},
	}
	if got := e.Score(issues); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
}
