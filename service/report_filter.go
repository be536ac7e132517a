package service

import (
	"sort"
	"strings"

	"github.com/ludo-technologies/mobilescan/domain"
)

// PrepareResponse returns a presentation copy of the response: issues below
// minSeverity are hidden and reports are sorted. Scores, priorities and the
// summary are left as analyzed. The input is not modified.
func PrepareResponse(response *domain.MobileResponse, minSeverity domain.Severity, sortBy domain.SortCriteria) *domain.MobileResponse {
	out := *response
	out.Reports = make([]domain.ComponentReport, len(response.Reports))
	for i, report := range response.Reports {
		out.Reports[i] = report
		if report.Result != nil && minSeverity != "" {
			filtered := *report.Result
			filtered.IssueSet = FilterIssues(report.Result.IssueSet, minSeverity)
			out.Reports[i].Result = &filtered
		}
	}
	SortReports(out.Reports, sortBy)
	return &out
}

// FilterIssues drops issues less severe than minSeverity
func FilterIssues(set domain.IssueSet, minSeverity domain.Severity) domain.IssueSet {
	keep := func(s domain.Severity) bool { return s.AtLeast(minSeverity) }

	return domain.IssueSet{
		TouchTargets:        filterSlice(set.TouchTargets, func(i domain.TouchTargetIssue) bool { return keep(i.Severity) }),
		ResponsiveGaps:      filterSlice(set.ResponsiveGaps, func(i domain.ResponsiveGap) bool { return keep(i.Severity) }),
		LayoutIssues:        filterSlice(set.LayoutIssues, func(i domain.LayoutIssue) bool { return keep(i.Severity) }),
		NavigationIssues:    filterSlice(set.NavigationIssues, func(i domain.Issue) bool { return keep(i.Severity) }),
		DomainUXIssues:      filterSlice(set.DomainUXIssues, func(i domain.Issue) bool { return keep(i.Severity) }),
		AccessibilityIssues: filterSlice(set.AccessibilityIssues, func(i domain.Issue) bool { return keep(i.Severity) }),
		PerformanceIssues:   filterSlice(set.PerformanceIssues, func(i domain.Issue) bool { return keep(i.Severity) }),
		AnimationIssues:     filterSlice(set.AnimationIssues, func(i domain.Issue) bool { return keep(i.Severity) }),
	}
}

func filterSlice[T any](items []T, keep func(T) bool) []T {
	if items == nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortReports orders reports in place. Failed reports always go last.
func SortReports(reports []domain.ComponentReport, sortBy domain.SortCriteria) {
	sort.SliceStable(reports, func(i, j int) bool {
		a, b := reports[i], reports[j]
		if a.Failed() != b.Failed() {
			return !a.Failed()
		}
		if a.Failed() {
			return false
		}

		switch sortBy {
		case domain.SortByName:
			return strings.ToLower(a.Component.Name) < strings.ToLower(b.Component.Name)
		case domain.SortByPath:
			return a.Component.Path < b.Component.Path
		case domain.SortByPriority:
			if a.Result.Priority.Rank() != b.Result.Priority.Rank() {
				return a.Result.Priority.Rank() > b.Result.Priority.Rank()
			}
			return a.Result.OverallScore < b.Result.OverallScore
		case domain.SortByIssues:
			return a.Result.Total() > b.Result.Total()
		case domain.SortByScore:
			return a.Result.OverallScore < b.Result.OverallScore
		default:
			return false
		}
	})
}
