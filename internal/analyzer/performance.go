package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ludo-technologies/mobilescan/domain"
)

const (
	maxInlineStyles      = 5
	maxInlineHandlers    = 5
	maxImportsPerFile    = 20
	inlineStyleSignature = "style={{"
)

var (
	inlineHandlerPattern = regexp.MustCompile(`on[A-Z]\w*=\{\s*\([^)]*\)\s*=>`)
	importLinePattern    = regexp.MustCompile(`^\s*import\s`)
)

// PerformanceEvaluator flags render-cost patterns that hurt low-end devices
type PerformanceEvaluator struct{}

// NewPerformanceEvaluator creates a performance evaluator
func NewPerformanceEvaluator() *PerformanceEvaluator {
	return &PerformanceEvaluator{}
}

// Evaluate checks list keys, lazy images, inline styles, inline handlers and
// import fan-out
func (e *PerformanceEvaluator) Evaluate(v *componentView) []domain.Issue {
	var issues []domain.Issue

	if line := v.firstLineContaining([]string{".map("}); line > 0 && !strings.Contains(v.lower, "key=") {
		issues = append(issues, domain.Issue{
			Category:    "missing-list-key",
			Description: "List is rendered without a key prop",
			Severity:    domain.SeverityMedium,
			Line:        line,
			Suggestion:  "Give each rendered row a stable key, such as the transaction id",
		})
	}

	for i, line := range v.lines {
		lower := v.lowerLines[i]
		if imgTagPattern.MatchString(line) && !strings.Contains(lower, "loading=") && !strings.Contains(lower, "priority") {
			issues = append(issues, domain.Issue{
				Category:    "eager-image",
				Description: "Image loads eagerly",
				Severity:    domain.SeverityLow,
				Line:        i + 1,
				Suggestion:  `Add loading="lazy" to images below the fold`,
			})
		}
	}

	if n := strings.Count(v.content, inlineStyleSignature); n > maxInlineStyles {
		issues = append(issues, domain.Issue{
			Category:    "inline-styles",
			Description: fmt.Sprintf("%d inline style objects are recreated on every render", n),
			Severity:    domain.SeverityLow,
			Line:        v.firstLineContaining([]string{inlineStyleSignature}),
			Suggestion:  "Move static styles into utility classes or a memoized style object",
		})
	}

	if locs := inlineHandlerPattern.FindAllStringIndex(v.content, -1); len(locs) > maxInlineHandlers {
		issues = append(issues, domain.Issue{
			Category:    "inline-handlers",
			Description: fmt.Sprintf("%d inline arrow handlers are recreated on every render", len(locs)),
			Severity:    domain.SeverityLow,
			Line:        lineAt(v.content, locs[0][0]),
			Suggestion:  "Hoist handlers with useCallback, especially inside list rows",
		})
	}

	imports := 0
	for _, line := range v.lines {
		if importLinePattern.MatchString(line) {
			imports++
		}
	}
	if imports > maxImportsPerFile {
		issues = append(issues, domain.Issue{
			Category:    "import-fan-out",
			Description: fmt.Sprintf("%d imports increase the bundle shipped to mobile clients", imports),
			Severity:    domain.SeverityLow,
			Line:        1,
			Suggestion:  "Split the component and lazy-load rarely used parts",
		})
	}

	return issues
}

// Score converts performance issues into a sub-score
func (e *PerformanceEvaluator) Score(issues []domain.Issue) int {
	return optionalWeights.score(issues)
}
