package app

import (
	"fmt"
	"strconv"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/version"
)

// CheckThresholds are the quality gate limits
type CheckThresholds struct {
	// MinScore fails components scoring below it (0 disables the rule)
	MinScore int

	// FailOn fails components at or above this priority tier (empty disables the rule)
	FailOn domain.PriorityTier

	// Verbose adds one warning violation per critical issue
	Verbose bool
}

// EvaluateCheck turns an analysis response into a pass/fail gate result.
// Components that could not be analyzed are violations too.
func EvaluateCheck(response *domain.MobileResponse, thresholds CheckThresholds) *domain.CheckResult {
	result := &domain.CheckResult{
		Passed:      true,
		Violations:  []domain.CheckViolation{},
		GeneratedAt: response.GeneratedAt,
		Duration:    response.DurationMs,
		Version:     version.Version,
		Summary: domain.CheckSummary{
			ComponentsAnalyzed: response.Summary.AnalyzedComponents,
			ComponentsFailed:   response.Summary.FailedComponents,
			AverageScore:       response.Summary.AverageScore,
			CriticalComponents: response.Summary.PriorityCounts[domain.PriorityCritical],
			HighComponents:     response.Summary.PriorityCounts[domain.PriorityHigh],
		},
	}

	for _, report := range response.Reports {
		label := report.Component.Path
		if label == "" {
			label = report.Component.Name
		}

		if report.Failed() {
			result.Violations = append(result.Violations, domain.CheckViolation{
				Component: label,
				Rule:      "analysis-failed",
				Severity:  "error",
				Message:   fmt.Sprintf("Component could not be analyzed: %s", report.Error),
				Actual:    "failed",
			})
			continue
		}

		r := report.Result
		if thresholds.MinScore > 0 && r.OverallScore < thresholds.MinScore {
			result.Violations = append(result.Violations, domain.CheckViolation{
				Component: label,
				Rule:      "min-score",
				Severity:  "error",
				Message:   fmt.Sprintf("Mobile score %d is below %d", r.OverallScore, thresholds.MinScore),
				Actual:    strconv.Itoa(r.OverallScore),
				Threshold: strconv.Itoa(thresholds.MinScore),
			})
		}

		if thresholds.FailOn != "" && r.Priority.Rank() >= thresholds.FailOn.Rank() {
			result.Violations = append(result.Violations, domain.CheckViolation{
				Component: label,
				Rule:      "fail-on",
				Severity:  "error",
				Message:   fmt.Sprintf("Priority %s reaches the %s threshold", r.Priority, thresholds.FailOn),
				Actual:    string(r.Priority),
				Threshold: string(thresholds.FailOn),
			})
		}

		if thresholds.Verbose {
			for _, issue := range r.All() {
				if issue.Severity != domain.SeverityCritical {
					continue
				}
				location := ""
				if issue.Line > 0 {
					location = fmt.Sprintf("%s:%d", label, issue.Line)
				}
				result.Violations = append(result.Violations, domain.CheckViolation{
					Component: label,
					Rule:      issue.Category,
					Severity:  "warning",
					Message:   issue.Description,
					Location:  location,
					Actual:    string(issue.Severity),
				})
			}
		}
	}

	for _, v := range result.Violations {
		if v.Severity == "error" {
			result.Passed = false
			break
		}
	}
	result.Summary.TotalViolations = len(result.Violations)
	if !result.Passed {
		result.ExitCode = 1
	}
	return result
}
