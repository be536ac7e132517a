// Package analyzer scores UI component source for mobile readiness.
//
// Analysis is line and pattern based: a component is classified into a
// financial domain category, independent evaluators produce issues and
// sub-scores, and the sub-scores are aggregated into an overall score,
// priority tier and recommendation set. An Analyzer holds no mutable state and
// is safe for concurrent use.
package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

// Default breakpoints in pixels
const (
	DefaultMobileBreakpoint  = 640
	DefaultTabletBreakpoint  = 768
	DefaultDesktopBreakpoint = 1024
)

// EvaluatorToggles enables the optional evaluators
type EvaluatorToggles struct {
	Accessibility bool
	Performance   bool
	Animation     bool
}

// Options configures an Analyzer
type Options struct {
	MinTouchTargetSize int
	MobileBreakpoint   int
	TabletBreakpoint   int
	DesktopBreakpoint  int
	Evaluators         EvaluatorToggles

	// DomainEnrichment enables financial-domain classification and checks.
	// When disabled every component is treated as category "other".
	DomainEnrichment bool

	// Catalog defaults to catalog.Default() when nil
	Catalog *catalog.Catalog

	// Weights defaults to DefaultWeights() when empty
	Weights Weights
}

// DefaultOptions returns the default analyzer options
func DefaultOptions() Options {
	return Options{
		MinTouchTargetSize: DefaultMinTouchTargetSize,
		MobileBreakpoint:   DefaultMobileBreakpoint,
		TabletBreakpoint:   DefaultTabletBreakpoint,
		DesktopBreakpoint:  DefaultDesktopBreakpoint,
		Evaluators: EvaluatorToggles{
			Accessibility: true,
			Performance:   true,
			Animation:     false,
		},
		DomainEnrichment: true,
	}
}

// Analyzer runs the classification and evaluation pipeline
type Analyzer struct {
	opts       Options
	classifier *Classifier
	touch      *TouchTargetEvaluator
	responsive *ResponsiveEvaluator
	layout     *LayoutEvaluator
	navigation *NavigationEvaluator
	domainUX   *DomainUXEvaluator
	access     *AccessibilityEvaluator
	perf       *PerformanceEvaluator
	animation  *AnimationEvaluator
}

// New creates an Analyzer. Zero-valued sizes and breakpoints fall back to the defaults.
func New(opts Options) *Analyzer {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.MinTouchTargetSize <= 0 {
		opts.MinTouchTargetSize = DefaultMinTouchTargetSize
	}
	if opts.MobileBreakpoint <= 0 {
		opts.MobileBreakpoint = DefaultMobileBreakpoint
	}
	if opts.TabletBreakpoint <= 0 {
		opts.TabletBreakpoint = DefaultTabletBreakpoint
	}
	if opts.DesktopBreakpoint <= 0 {
		opts.DesktopBreakpoint = DefaultDesktopBreakpoint
	}
	if len(opts.Weights) == 0 {
		opts.Weights = DefaultWeights()
	}

	c := opts.Catalog
	return &Analyzer{
		opts:       opts,
		classifier: NewClassifier(c),
		touch:      NewTouchTargetEvaluator(c, opts.MinTouchTargetSize, opts.DomainEnrichment),
		responsive: NewResponsiveEvaluator(c, opts.DomainEnrichment, opts.MobileBreakpoint, opts.DesktopBreakpoint),
		layout:     NewLayoutEvaluator(c),
		navigation: NewNavigationEvaluator(c, opts.DomainEnrichment),
		domainUX:   NewDomainUXEvaluator(c),
		access:     NewAccessibilityEvaluator(c),
		perf:       NewPerformanceEvaluator(),
		animation:  NewAnimationEvaluator(),
	}
}

// Options returns the effective options
func (a *Analyzer) Options() Options {
	return a.opts
}

// Analyze runs every enabled evaluator over the component. It never fails: an
// evaluator that panics contributes no issues and a default sub-score, and the
// failure is recorded in the result warnings.
func (a *Analyzer) Analyze(src domain.ComponentSource) *domain.AnalysisResult {
	result := &domain.AnalysisResult{Component: src, Category: domain.CategoryOther}

	if a.opts.DomainEnrichment {
		result.Category = safeEvaluate("classifier", &result.Warnings, domain.CategoryOther, func() domain.DomainCategory {
			return a.classifier.Classify(src)
		})
	}
	v := newComponentView(src, result.Category)

	touch := safeEvaluate(domain.EvaluatorTouchTarget, &result.Warnings, scored[domain.TouchTargetIssue]{score: 100}, func() scored[domain.TouchTargetIssue] {
		issues := a.touch.Evaluate(v)
		return scored[domain.TouchTargetIssue]{issues: issues, score: a.touch.Score(issues)}
	})
	result.TouchTargets = touch.issues
	result.SubScores = append(result.SubScores, domain.SubScore{Evaluator: domain.EvaluatorTouchTarget, Value: touch.score})

	responsive := safeEvaluate(domain.EvaluatorResponsive, &result.Warnings, scored[domain.ResponsiveGap]{score: 100}, func() scored[domain.ResponsiveGap] {
		gaps := a.responsive.Evaluate(v)
		return scored[domain.ResponsiveGap]{issues: gaps, score: a.responsive.Score(a.responsive.BaseScore(v), gaps)}
	})
	result.ResponsiveGaps = responsive.issues
	result.SubScores = append(result.SubScores, domain.SubScore{Evaluator: domain.EvaluatorResponsive, Value: responsive.score})

	layout := safeEvaluate(domain.EvaluatorLayout, &result.Warnings, scored[domain.LayoutIssue]{score: 100}, func() scored[domain.LayoutIssue] {
		issues := a.layout.Evaluate(v)
		return scored[domain.LayoutIssue]{issues: issues, score: a.layout.Score(issues)}
	})
	result.LayoutIssues = layout.issues
	result.SubScores = append(result.SubScores, domain.SubScore{Evaluator: domain.EvaluatorLayout, Value: layout.score})

	result.NavigationIssues = a.runIssues(domain.EvaluatorNavigation, result, func() ([]domain.Issue, int) {
		issues := a.navigation.Evaluate(v)
		return issues, a.navigation.Score(issues)
	})

	if a.opts.DomainEnrichment {
		result.DomainUXIssues = a.runIssues(domain.EvaluatorDomainUX, result, func() ([]domain.Issue, int) {
			issues := a.domainUX.Evaluate(v)
			return issues, a.domainUX.Score(issues, v.category)
		})
	}

	if a.opts.Evaluators.Accessibility {
		result.AccessibilityIssues = a.runIssues(domain.EvaluatorAccessibility, result, func() ([]domain.Issue, int) {
			issues := a.access.Evaluate(v)
			return issues, a.access.Score(issues)
		})
	}
	if a.opts.Evaluators.Performance {
		result.PerformanceIssues = a.runIssues(domain.EvaluatorPerformance, result, func() ([]domain.Issue, int) {
			issues := a.perf.Evaluate(v)
			return issues, a.perf.Score(issues)
		})
	}
	if a.opts.Evaluators.Animation {
		result.AnimationIssues = a.runIssues(domain.EvaluatorAnimation, result, func() ([]domain.Issue, int) {
			issues := a.animation.Evaluate(v)
			return issues, a.animation.Score(issues)
		})
	}

	result.OverallScore = Aggregate(result.SubScores, a.opts.Weights)
	result.Priority = DeterminePriority(result.IssueSet, result.OverallScore)
	result.Recommendations = safeEvaluate("recommendations", &result.Warnings, domain.RecommendationSet{}, func() domain.RecommendationSet {
		return GenerateRecommendations(result.IssueSet, result.Category)
	})

	return result
}

// Analyze is a convenience wrapper that builds an Analyzer for a single call
func Analyze(src domain.ComponentSource, opts Options) *domain.AnalysisResult {
	return New(opts).Analyze(src)
}

type scored[T any] struct {
	issues []T
	score  int
}

// runIssues evaluates a plain-issue evaluator and records its sub-score
func (a *Analyzer) runIssues(name string, result *domain.AnalysisResult, fn func() ([]domain.Issue, int)) []domain.Issue {
	out := safeEvaluate(name, &result.Warnings, scored[domain.Issue]{score: 100}, func() scored[domain.Issue] {
		issues, score := fn()
		return scored[domain.Issue]{issues: issues, score: score}
	})
	result.SubScores = append(result.SubScores, domain.SubScore{Evaluator: name, Value: out.score})
	return out.issues
}

// safeEvaluate runs fn and returns fallback if it panics
func safeEvaluate[T any](name string, warnings *[]string, fallback T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			*warnings = append(*warnings, fmt.Sprintf("%s evaluator failed: %v", name, r))
			out = fallback
		}
	}()
	return fn()
}
