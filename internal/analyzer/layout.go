package analyzer

import (
	"fmt"
	"regexp"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

// Layout thresholds. These are fixed product constants.
const (
	MaxNestingDepth         = 6
	HighNestingDepth        = 10
	MaxFlexGridDensity      = 15
	MaxConditionalRenders   = 8
	layoutWeightHigh        = 20
	layoutWeightMedium      = 12
	layoutWeightLow         = 5
	metricNestingDepth      = "nesting-depth"
	metricFlexGridDensity   = "flex-grid-density"
	metricConditionalRender = "conditional-rendering"
)

var (
	openTagPattern        = regexp.MustCompile(`<[A-Za-z][\w.:-]*`)
	closeTagPattern       = regexp.MustCompile(`</[A-Za-z][\w.:-]*\s*>`)
	selfClosingPattern    = regexp.MustCompile(`/>`)
	ternaryRenderPattern  = regexp.MustCompile(`\{[^{}]*\?[^{}]*:[^{}]*\}`)
	andRenderPattern      = regexp.MustCompile(`\{[^{}]*&&[^{}]*\}`)
	orRenderPattern       = regexp.MustCompile(`\{[^{}]*\|\|[^{}]*\}`)
	conditionalRenderSets = []*regexp.Regexp{ternaryRenderPattern, andRenderPattern, orRenderPattern}
)

// LayoutEvaluator measures structural complexity of the markup
type LayoutEvaluator struct {
	catalog  *catalog.Catalog
	flexGrid []*regexp.Regexp
}

// NewLayoutEvaluator creates a layout-complexity evaluator. Invalid flex/grid
// patterns in the catalog are skipped.
func NewLayoutEvaluator(c *catalog.Catalog) *LayoutEvaluator {
	e := &LayoutEvaluator{catalog: c}
	for _, p := range c.FlexGridPatterns {
		if re, err := regexp.Compile(p); err == nil {
			e.flexGrid = append(e.flexGrid, re)
		}
	}
	return e
}

// LayoutMetrics holds the raw metric values
type LayoutMetrics struct {
	MaxDepth         int
	MaxDepthLine     int
	FlexGridCount    int
	FlexGridLine     int
	ConditionalCount int
	ConditionalLine  int
}

// Measure computes all layout metrics for the component
func (e *LayoutEvaluator) Measure(v *componentView) LayoutMetrics {
	var m LayoutMetrics

	depth := 0
	for i, line := range v.lines {
		opens := len(openTagPattern.FindAllStringIndex(line, -1))
		closes := len(closeTagPattern.FindAllStringIndex(line, -1))
		selfClosing := len(selfClosingPattern.FindAllStringIndex(line, -1))
		depth += opens - closes - selfClosing
		if depth > m.MaxDepth {
			m.MaxDepth = depth
			m.MaxDepthLine = i + 1
		}

		for _, token := range classTokens(line) {
			rest, _ := e.catalog.StripBreakpoint(token)
			for _, re := range e.flexGrid {
				if re.MatchString(rest) {
					m.FlexGridCount++
					if m.FlexGridCount == MaxFlexGridDensity+1 {
						m.FlexGridLine = i + 1
					}
					break
				}
			}
		}
	}

	firstOffset := -1
	for _, re := range conditionalRenderSets {
		locs := re.FindAllStringIndex(v.content, -1)
		m.ConditionalCount += len(locs)
		if len(locs) > 0 && (firstOffset < 0 || locs[0][0] < firstOffset) {
			firstOffset = locs[0][0]
		}
	}
	if firstOffset >= 0 {
		m.ConditionalLine = lineAt(v.content, firstOffset)
	}

	return m
}

// Evaluate turns the metrics into issues
func (e *LayoutEvaluator) Evaluate(v *componentView) []domain.LayoutIssue {
	m := e.Measure(v)
	var issues []domain.LayoutIssue

	if m.MaxDepth > MaxNestingDepth {
		severity := domain.SeverityMedium
		if m.MaxDepth > HighNestingDepth {
			severity = domain.SeverityHigh
		}
		issues = append(issues, domain.LayoutIssue{
			Issue: domain.Issue{
				Category:     metricNestingDepth,
				Description:  fmt.Sprintf("Element nesting reaches depth %d (recommended max %d)", m.MaxDepth, MaxNestingDepth),
				Severity:     severity,
				Line:         m.MaxDepthLine,
				Suggestion:   "Flatten the tree by extracting nested sections into child components",
				DomainImpact: "Deep trees slow layout and re-render on low-end phones",
			},
			Metric:         metricNestingDepth,
			CurrentValue:   m.MaxDepth,
			RecommendedMax: MaxNestingDepth,
		})
	}

	if m.FlexGridCount > MaxFlexGridDensity {
		issues = append(issues, domain.LayoutIssue{
			Issue: domain.Issue{
				Category:     metricFlexGridDensity,
				Description:  fmt.Sprintf("%d flexbox/grid utilities used (recommended max %d)", m.FlexGridCount, MaxFlexGridDensity),
				Severity:     domain.SeverityMedium,
				Line:         m.FlexGridLine,
				Suggestion:   "Consolidate layout containers and prefer a single grid over nested flex wrappers",
				DomainImpact: "Dense flex/grid nesting makes layouts brittle when the viewport shrinks",
			},
			Metric:         metricFlexGridDensity,
			CurrentValue:   m.FlexGridCount,
			RecommendedMax: MaxFlexGridDensity,
		})
	}

	if m.ConditionalCount > MaxConditionalRenders {
		issues = append(issues, domain.LayoutIssue{
			Issue: domain.Issue{
				Category:     metricConditionalRender,
				Description:  fmt.Sprintf("%d conditional render expressions (recommended max %d)", m.ConditionalCount, MaxConditionalRenders),
				Severity:     domain.SeverityMedium,
				Line:         m.ConditionalLine,
				Suggestion:   "Move branching into small sub-components or a lookup of render states",
				DomainImpact: "Frequent conditional branches cause layout shift while data loads on mobile networks",
			},
			Metric:         metricConditionalRender,
			CurrentValue:   m.ConditionalCount,
			RecommendedMax: MaxConditionalRenders,
		})
	}

	return issues
}

// Score converts layout issues into a sub-score
func (e *LayoutEvaluator) Score(issues []domain.LayoutIssue) int {
	deduction := 0
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityHigh, domain.SeverityCritical:
			deduction += layoutWeightHigh
		case domain.SeverityMedium:
			deduction += layoutWeightMedium
		case domain.SeverityLow:
			deduction += layoutWeightLow
		}
	}
	return clampScore(100 - deduction)
}
