package domain

import (
	"fmt"
	"strings"
	"time"
)

// Severity represents the impact tier of a detected issue
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank returns the ordinal strictness of the severity (critical = 4, low = 1).
// Unknown severities rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether s is as strict as or stricter than other
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// ParseSeverity converts a string into a Severity
func ParseSeverity(value string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(value))) {
	case SeverityCritical:
		return SeverityCritical, nil
	case SeverityHigh:
		return SeverityHigh, nil
	case SeverityMedium:
		return SeverityMedium, nil
	case SeverityLow:
		return SeverityLow, nil
	}
	return "", fmt.Errorf("unknown severity %q (must be one of: critical, high, medium, low)", value)
}

// DomainCategory is the functional classification of a component within the
// financial-app taxonomy
type DomainCategory string

const (
	CategoryTransactionList DomainCategory = "transaction-list"
	CategoryDashboardCard   DomainCategory = "dashboard-card"
	CategoryBudgetChart     DomainCategory = "budget-chart"
	CategoryForm            DomainCategory = "form"
	CategoryNavigation      DomainCategory = "navigation"
	CategoryOther           DomainCategory = "other"
)

// AllCategories lists every category in declaration order
func AllCategories() []DomainCategory {
	return []DomainCategory{
		CategoryTransactionList,
		CategoryDashboardCard,
		CategoryBudgetChart,
		CategoryForm,
		CategoryNavigation,
		CategoryOther,
	}
}

// PriorityTier is the remediation-urgency bucket assigned after aggregation
type PriorityTier string

const (
	PriorityCritical PriorityTier = "critical"
	PriorityHigh     PriorityTier = "high"
	PriorityMedium   PriorityTier = "medium"
	PriorityLow      PriorityTier = "low"
)

// Rank returns the ordinal urgency of the tier (critical = 4, low = 1)
func (p PriorityTier) Rank() int {
	return Severity(p).Rank()
}

// Evaluator names used for sub-scores and weights
const (
	EvaluatorTouchTarget   = "touch-target"
	EvaluatorResponsive    = "responsive"
	EvaluatorLayout        = "layout"
	EvaluatorNavigation    = "navigation"
	EvaluatorDomainUX      = "domain-ux"
	EvaluatorAccessibility = "accessibility"
	EvaluatorPerformance   = "performance"
	EvaluatorAnimation     = "animation"
)

// ComponentSource is a single UI component handed to the analyzer
type ComponentSource struct {
	Name    string    `json:"name" yaml:"name"`
	Path    string    `json:"path,omitempty" yaml:"path,omitempty"`
	Content string    `json:"-" yaml:"-"`
	Size    int64     `json:"size,omitempty" yaml:"size,omitempty"`
	ModTime time.Time `json:"mod_time,omitempty" yaml:"mod_time,omitempty"`
}

// Lines returns the content split into lines with trailing carriage returns removed.
// Empty content yields no lines.
func (c ComponentSource) Lines() []string {
	if c.Content == "" {
		return nil
	}
	lines := strings.Split(c.Content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Issue holds the fields shared by every detected problem
type Issue struct {
	Category     string   `json:"category" yaml:"category"`
	Description  string   `json:"description" yaml:"description"`
	Severity     Severity `json:"severity" yaml:"severity"`
	Line         int      `json:"line,omitempty" yaml:"line,omitempty"`
	Suggestion   string   `json:"suggestion" yaml:"suggestion"`
	DomainImpact string   `json:"domain_impact,omitempty" yaml:"domain_impact,omitempty"`
}

// ElementRole classifies a domain-relevant interactive element
type ElementRole string

const (
	RoleButton       ElementRole = "button"
	RoleFormControl  ElementRole = "form-control"
	RoleNavItem      ElementRole = "nav-item"
	RoleChartElement ElementRole = "chart-element"
	RoleLink         ElementRole = "link"
)

// Size is a resolved width/height in pixels. Zero means unresolved.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// TouchTargetIssue is an interactive element whose hit area is too small or unknown
type TouchTargetIssue struct {
	Issue          `yaml:",inline"`
	Element        string      `json:"element" yaml:"element"`
	CurrentSize    Size        `json:"current_size" yaml:"current_size"`
	RequiredSize   int         `json:"required_size" yaml:"required_size"`
	DomainRelevant bool        `json:"domain_relevant" yaml:"domain_relevant"`
	ElementRole    ElementRole `json:"element_role,omitempty" yaml:"element_role,omitempty"`
}

// GapType classifies the effect of a responsive gap
type GapType string

const (
	GapLayoutBreaking GapType = "layout-breaking"
	GapUXDegradation  GapType = "ux-degradation"
)

// ResponsiveGap is a utility class used without a breakpoint override
type ResponsiveGap struct {
	Issue            `yaml:",inline"`
	GapType          GapType  `json:"gap_type" yaml:"gap_type"`
	CurrentClasses   []string `json:"current_classes" yaml:"current_classes"`
	SuggestedClasses []string `json:"suggested_classes" yaml:"suggested_classes"`
}

// LayoutIssue is a structural metric above its recommended ceiling
type LayoutIssue struct {
	Issue          `yaml:",inline"`
	Metric         string `json:"metric" yaml:"metric"`
	CurrentValue   int    `json:"current_value" yaml:"current_value"`
	RecommendedMax int    `json:"recommended_max" yaml:"recommended_max"`
}

// SubScore is the 0-100 score produced by one evaluator
type SubScore struct {
	Evaluator string `json:"evaluator" yaml:"evaluator"`
	Value     int    `json:"value" yaml:"value"`
}

// RecommendationSet groups remediation actions by horizon
type RecommendationSet struct {
	Immediate []string `json:"immediate" yaml:"immediate"`
	ShortTerm []string `json:"short_term" yaml:"short_term"`
	LongTerm  []string `json:"long_term" yaml:"long_term"`
}

// IsEmpty reports whether no recommendation was produced
func (r RecommendationSet) IsEmpty() bool {
	return len(r.Immediate) == 0 && len(r.ShortTerm) == 0 && len(r.LongTerm) == 0
}

// IssueSet holds every issue collection produced by the evaluators
type IssueSet struct {
	TouchTargets        []TouchTargetIssue `json:"touch_targets" yaml:"touch_targets"`
	ResponsiveGaps      []ResponsiveGap    `json:"responsive_gaps" yaml:"responsive_gaps"`
	LayoutIssues        []LayoutIssue      `json:"layout_issues" yaml:"layout_issues"`
	NavigationIssues    []Issue            `json:"navigation_issues" yaml:"navigation_issues"`
	DomainUXIssues      []Issue            `json:"domain_ux_issues" yaml:"domain_ux_issues"`
	AccessibilityIssues []Issue            `json:"accessibility_issues,omitempty" yaml:"accessibility_issues,omitempty"`
	PerformanceIssues   []Issue            `json:"performance_issues,omitempty" yaml:"performance_issues,omitempty"`
	AnimationIssues     []Issue            `json:"animation_issues,omitempty" yaml:"animation_issues,omitempty"`
}

// All flattens every collection into common Issue values, grouped by evaluator
func (s IssueSet) All() []Issue {
	all := make([]Issue, 0, s.Total())
	for _, i := range s.TouchTargets {
		all = append(all, i.Issue)
	}
	for _, i := range s.ResponsiveGaps {
		all = append(all, i.Issue)
	}
	for _, i := range s.LayoutIssues {
		all = append(all, i.Issue)
	}
	all = append(all, s.NavigationIssues...)
	all = append(all, s.DomainUXIssues...)
	all = append(all, s.AccessibilityIssues...)
	all = append(all, s.PerformanceIssues...)
	all = append(all, s.AnimationIssues...)
	return all
}

// Total returns the number of issues across all collections
func (s IssueSet) Total() int {
	return len(s.TouchTargets) + len(s.ResponsiveGaps) + len(s.LayoutIssues) +
		len(s.NavigationIssues) + len(s.DomainUXIssues) + len(s.AccessibilityIssues) +
		len(s.PerformanceIssues) + len(s.AnimationIssues)
}

// CountBySeverity tallies every issue by severity
func (s IssueSet) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int, 4)
	for _, issue := range s.All() {
		counts[issue.Severity]++
	}
	return counts
}

// AnalysisResult is the outcome of analyzing one component
type AnalysisResult struct {
	Component       ComponentSource   `json:"component" yaml:"component"`
	Category        DomainCategory    `json:"category" yaml:"category"`
	IssueSet        `yaml:",inline"`
	SubScores       []SubScore        `json:"sub_scores" yaml:"sub_scores"`
	OverallScore    int               `json:"overall_score" yaml:"overall_score"`
	Priority        PriorityTier      `json:"priority" yaml:"priority"`
	Recommendations RecommendationSet `json:"recommendations" yaml:"recommendations"`
	Warnings        []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// SubScore returns the value recorded for an evaluator
func (r *AnalysisResult) SubScore(evaluator string) (int, bool) {
	for _, s := range r.SubScores {
		if s.Evaluator == evaluator {
			return s.Value, true
		}
	}
	return 0, false
}
