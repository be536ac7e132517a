package analyzer

import (
	"testing"

	"github.com/ludo-technologies/mobilescan/domain"
)

func TestAggregate(t *testing.T) {
	equal := Weights{
		{Evaluator: "a", Value: 0.25},
		{Evaluator: "b", Value: 0.25},
		{Evaluator: "c", Value: 0.25},
		{Evaluator: "d", Value: 0.25},
	}

	tests := []struct {
		name     string
		scores   []domain.SubScore
		weights  Weights
		expected int
	}{
		{
			name:     "equal weights",
			scores:   []domain.SubScore{{Evaluator: "a", Value: 100}, {Evaluator: "b", Value: 100}, {Evaluator: "c", Value: 100}, {Evaluator: "d", Value: 0}},
			weights:  equal,
			expected: 75,
		},
		{
			name:     "renormalised over present scores",
			scores:   []domain.SubScore{{Evaluator: domain.EvaluatorTouchTarget, Value: 100}, {Evaluator: domain.EvaluatorResponsive, Value: 50}},
			weights:  DefaultWeights(),
			expected: 78,
		},
		{
			name:     "unweighted evaluator ignored",
			scores:   []domain.SubScore{{Evaluator: domain.EvaluatorTouchTarget, Value: 80}, {Evaluator: domain.EvaluatorAnimation, Value: 0}},
			weights:  DefaultWeights(),
			expected: 80,
		},
		{
			name:     "no scores",
			scores:   nil,
			weights:  DefaultWeights(),
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aggregate(tt.scores, tt.weights); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()

	sum := 0.0
	for _, entry := range w {
		sum += entry.Value
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("Expected weights to sum to 1, got %f", sum)
	}

	order := []string{
		domain.EvaluatorTouchTarget, domain.EvaluatorResponsive, domain.EvaluatorDomainUX,
		domain.EvaluatorNavigation, domain.EvaluatorAccessibility, domain.EvaluatorPerformance,
		domain.EvaluatorLayout,
	}
	for i := 1; i < len(order); i++ {
		if w.Of(order[i-1]) < w.Of(order[i]) {
			t.Errorf("Expected %s to weigh at least as much as %s", order[i-1], order[i])
		}
	}
	if w.Of(domain.EvaluatorAnimation) != 0 {
		t.Error("Expected animation to be unweighted")
	}
}

func TestDeterminePriority(t *testing.T) {
	criticalTouch := domain.IssueSet{TouchTargets: []domain.TouchTargetIssue{{Issue: domain.Issue{Severity: domain.SeverityCritical}}}}
	criticalNav := domain.IssueSet{NavigationIssues: []domain.Issue{{Severity: domain.SeverityCritical}}}
	criticalDomain := domain.IssueSet{DomainUXIssues: []domain.Issue{{Severity: domain.SeverityCritical}}}
	highLayout := func(n int) domain.IssueSet {
		var s domain.IssueSet
		for i := 0; i < n; i++ {
			s.LayoutIssues = append(s.LayoutIssues, domain.LayoutIssue{Issue: domain.Issue{Severity: domain.SeverityHigh}})
		}
		return s
	}

	tests := []struct {
		name     string
		issues   domain.IssueSet
		overall  int
		expected domain.PriorityTier
	}{
		{"critical touch beats a good score", criticalTouch, 95, domain.PriorityCritical},
		{"critical navigation", criticalNav, 90, domain.PriorityCritical},
		{"critical domain ux", criticalDomain, 90, domain.PriorityCritical},
		{"low score", domain.IssueSet{}, 59, domain.PriorityHigh},
		{"three high layout issues", highLayout(3), 90, domain.PriorityHigh},
		{"two high layout issues", highLayout(2), 90, domain.PriorityLow},
		{"medium band", domain.IssueSet{}, 60, domain.PriorityMedium},
		{"upper medium band", domain.IssueSet{}, 79, domain.PriorityMedium},
		{"low", domain.IssueSet{}, 80, domain.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeterminePriority(tt.issues, tt.overall); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
