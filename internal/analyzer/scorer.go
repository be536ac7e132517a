package analyzer

import (
	"math"

	"github.com/ludo-technologies/mobilescan/domain"
)

// Priority thresholds
const (
	PriorityHighScoreBelow   = 60
	PriorityMediumScoreBelow = 80
	PriorityHighLayoutIssues = 2
)

// Weight is the aggregation weight of one evaluator
type Weight struct {
	Evaluator string
	Value     float64
}

// Weights is an ordered weight table. Order fixes the summation order so
// aggregation is reproducible bit for bit.
type Weights []Weight

// DefaultWeights returns the built-in weights. Touch targets weigh the most
// and layout the least; animation is not weighted.
func DefaultWeights() Weights {
	return Weights{
		{Evaluator: domain.EvaluatorTouchTarget, Value: 0.25},
		{Evaluator: domain.EvaluatorResponsive, Value: 0.20},
		{Evaluator: domain.EvaluatorDomainUX, Value: 0.17},
		{Evaluator: domain.EvaluatorNavigation, Value: 0.13},
		{Evaluator: domain.EvaluatorAccessibility, Value: 0.10},
		{Evaluator: domain.EvaluatorPerformance, Value: 0.08},
		{Evaluator: domain.EvaluatorLayout, Value: 0.07},
	}
}

// Of returns the weight of an evaluator, or 0 when it is not weighted
func (w Weights) Of(evaluator string) float64 {
	for _, entry := range w {
		if entry.Evaluator == evaluator {
			return entry.Value
		}
	}
	return 0
}

// Aggregate combines sub-scores into the overall score. Only weighted
// evaluators that produced a sub-score contribute, and their weights are
// renormalised to sum to 1. With no contributing sub-score the result is 100.
func Aggregate(scores []domain.SubScore, weights Weights) int {
	values := make(map[string]int, len(scores))
	for _, s := range scores {
		values[s.Evaluator] = s.Value
	}

	var sum, total float64
	for _, w := range weights {
		v, ok := values[w.Evaluator]
		if !ok || w.Value <= 0 {
			continue
		}
		sum += float64(v) * w.Value
		total += w.Value
	}
	if total == 0 {
		return 100
	}
	return clampScore(int(math.Round(sum / total)))
}

// DeterminePriority assigns the remediation tier. Rules are checked in order
// and the first match wins.
func DeterminePriority(issues domain.IssueSet, overall int) domain.PriorityTier {
	for _, i := range issues.TouchTargets {
		if i.Severity == domain.SeverityCritical {
			return domain.PriorityCritical
		}
	}
	if hasSeverity(issues.NavigationIssues, domain.SeverityCritical) || hasSeverity(issues.DomainUXIssues, domain.SeverityCritical) {
		return domain.PriorityCritical
	}

	highLayout := 0
	for _, i := range issues.LayoutIssues {
		if i.Severity == domain.SeverityHigh {
			highLayout++
		}
	}
	if overall < PriorityHighScoreBelow || highLayout > PriorityHighLayoutIssues {
		return domain.PriorityHigh
	}
	if overall < PriorityMediumScoreBelow {
		return domain.PriorityMedium
	}
	return domain.PriorityLow
}

func hasSeverity(issues []domain.Issue, severity domain.Severity) bool {
	for _, i := range issues {
		if i.Severity == severity {
			return true
		}
	}
	return false
}
