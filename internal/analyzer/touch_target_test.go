package analyzer

import (
	"fmt"
	"testing"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

func TestResolveSize(t *testing.T) {
	tests := []struct {
		line     string
		expected domain.Size
	}{
		{`<button className="w-10 h-10">`, domain.Size{Width: 40, Height: 40}},
		{`<button className="h-2.5">`, domain.Size{Width: 0, Height: 10}},
		{`<button className="w-[30px] h-[48px]">`, domain.Size{Width: 30, Height: 48}},
		{`<button className="size-8">`, domain.Size{Width: 32, Height: 32}},
		{`<button className="h-8 min-h-[44px]">`, domain.Size{Width: 0, Height: 44}},
		{`<button className="min-w-12 w-6">`, domain.Size{Width: 48, Height: 0}},
		{`<button className="sm:h-4 p-2">`, domain.Size{}},
		{`<button>`, domain.Size{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := ResolveSize(tt.line)
			if got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestTouchTargetEvaluator_Severity(t *testing.T) {
	e := NewTouchTargetEvaluator(catalog.Default(), 44, true)

	tests := []struct {
		name     string
		line     string
		expected domain.Severity
		issue    bool
	}{
		{"unresolved", `<button>Open</button>`, domain.SeverityMedium, true},
		{"critical", `<button className="h-6 w-6">x</button>`, domain.SeverityCritical, true},
		{"high", `<button className="h-8">x</button>`, domain.SeverityHigh, true},
		{"medium", `<button className="h-10">x</button>`, domain.SeverityMedium, true},
		{"compliant", `<button className="h-11 w-11">x</button>`, "", false},
		{"one dimension compliant", `<button className="h-12">x</button>`, "", false},
		{"smallest dimension wins", `<button className="w-[20px] h-[39px]">x</button>`, domain.SeverityCritical, true},
		{"not interactive", `<div className="h-4">x</div>`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := e.Evaluate(view(component("Widget", tt.line)))
			if !tt.issue {
				if len(issues) != 0 {
					t.Errorf("Expected no issue, got %+v", issues)
				}
				return
			}
			if len(issues) != 1 {
				t.Fatalf("Expected 1 issue, got %d", len(issues))
			}
			if issues[0].Severity != tt.expected {
				t.Errorf("Expected severity %s, got %s", tt.expected, issues[0].Severity)
			}
			if issues[0].Line != 1 {
				t.Errorf("Expected line 1, got %d", issues[0].Line)
			}
		})
	}
}

func TestTouchTargetEvaluator_SeverityMonotonic(t *testing.T) {
	e := NewTouchTargetEvaluator(catalog.Default(), 44, true)

	previous := 0
	for px := 50; px >= 8; px-- {
		line := fmt.Sprintf(`<button className="w-[%dpx] h-[%dpx]">x</button>`, px, px)
		issues := e.Evaluate(view(component("Widget", line)))

		rank := 0
		if len(issues) > 0 {
			rank = issues[0].Severity.Rank()
		}
		if rank < previous {
			t.Fatalf("Severity decreased at %dpx: rank %d after %d", px, rank, previous)
		}
		previous = rank
	}
	if previous != domain.SeverityCritical.Rank() {
		t.Errorf("Expected the smallest size to be critical, got rank %d", previous)
	}
}

func TestTouchTargetEvaluator_DomainRole(t *testing.T) {
	c := catalog.Default()

	tests := []struct {
		line string
		role domain.ElementRole
	}{
		{`<button onClick={pay}>Pay</button>`, domain.RoleButton},
		{`<input className="h-8" name="amount" />`, domain.RoleFormControl},
		{`<a href="/transactions">Transactions</a>`, domain.RoleLink},
		{`<div role="button" className="chart-slice">Spending</div>`, domain.RoleChartElement},
		{`<button className="menu-item">Accounts</button>`, domain.RoleNavItem},
	}

	e := NewTouchTargetEvaluator(c, 44, true)
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			issues := e.Evaluate(view(component("Widget", tt.line)))
			if len(issues) != 1 {
				t.Fatalf("Expected 1 issue, got %d", len(issues))
			}
			issue := issues[0]
			if !issue.DomainRelevant {
				t.Error("Expected the issue to be domain relevant")
			}
			if issue.ElementRole != tt.role {
				t.Errorf("Expected role %s, got %s", tt.role, issue.ElementRole)
			}
			if issue.Suggestion != c.RoleRemediations[tt.role] {
				t.Errorf("Expected role remediation, got %q", issue.Suggestion)
			}
		})
	}

	generic := NewTouchTargetEvaluator(c, 44, false)
	issues := generic.Evaluate(view(component("Widget", tests[0].line)))
	if len(issues) != 1 || issues[0].DomainRelevant || issues[0].ElementRole != "" {
		t.Errorf("Expected a plain issue without domain enrichment, got %+v", issues)
	}
}

func TestTouchTargetEvaluator_Score(t *testing.T) {
	e := NewTouchTargetEvaluator(catalog.Default(), 44, true)

	tests := []struct {
		severities []domain.Severity
		expected   int
	}{
		{nil, 100},
		{[]domain.Severity{domain.SeverityCritical}, 75},
		{[]domain.Severity{domain.SeverityHigh, domain.SeverityMedium}, 77},
		{[]domain.Severity{domain.SeverityCritical, domain.SeverityCritical, domain.SeverityCritical, domain.SeverityCritical, domain.SeverityHigh}, 0},
	}

	for _, tt := range tests {
		var issues []domain.TouchTargetIssue
		for _, s := range tt.severities {
			issues = append(issues, domain.TouchTargetIssue{Issue: domain.Issue{Severity: s}})
		}
		if got := e.Score(issues); got != tt.expected {
			t.Errorf("Score(%v) = %d, expected %d", tt.severities, got, tt.expected)
		}
	}
}

func TestTouchTargetEvaluator_CustomMinimum(t *testing.T) {
	e := NewTouchTargetEvaluator(catalog.Default(), 48, true)
	issues := e.Evaluate(view(component("Widget", `<button className="h-11 w-11">x</button>`)))
	if len(issues) != 1 || issues[0].Severity != domain.SeverityMedium {
		t.Fatalf("Expected one medium issue under a 48px minimum, got %+v", issues)
	}
	if issues[0].RequiredSize != 48 {
		t.Errorf("Expected required size 48, got %d", issues[0].RequiredSize)
	}
}
