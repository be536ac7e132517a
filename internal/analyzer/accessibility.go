package analyzer

import (
	"regexp"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

// severityWeights holds per-severity deductions for the optional evaluators
type severityWeights struct {
	critical, high, medium, low int
}

var optionalWeights = severityWeights{critical: 25, high: 15, medium: 8, low: 4}

func (w severityWeights) score(issues []domain.Issue) int {
	deduction := 0
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityCritical:
			deduction += w.critical
		case domain.SeverityHigh:
			deduction += w.high
		case domain.SeverityMedium:
			deduction += w.medium
		case domain.SeverityLow:
			deduction += w.low
		}
	}
	return clampScore(100 - deduction)
}

var (
	imgTagPattern       = regexp.MustCompile(`<(?:img|Image)\b`)
	formFieldPattern    = regexp.MustCompile(`<(?:input|select|textarea)\b`)
	clickablePlainTag   = regexp.MustCompile(`<(?:div|span|li)\b[^>]*\bon(?:Click|click|Press)=`)
	tinyTextPattern     = regexp.MustCompile(`^text-(?:xs|\[(?:[0-9]|1[01])px\])$`)
	fieldLabelledSignal = []string{"aria-label", "aria-labelledby", "id=", "<label"}
)

// AccessibilityEvaluator flags markup that screen readers or low-vision users
// cannot work with
type AccessibilityEvaluator struct {
	catalog *catalog.Catalog
}

// NewAccessibilityEvaluator creates an accessibility evaluator
func NewAccessibilityEvaluator(c *catalog.Catalog) *AccessibilityEvaluator {
	return &AccessibilityEvaluator{catalog: c}
}

// Evaluate checks images, form fields, click handlers and text size line by line
func (e *AccessibilityEvaluator) Evaluate(v *componentView) []domain.Issue {
	var issues []domain.Issue

	for i, line := range v.lines {
		lower := v.lowerLines[i]
		lineNo := i + 1

		if imgTagPattern.MatchString(line) && !catalog.ContainsAny(lower, []string{"alt="}) {
			issues = append(issues, domain.Issue{
				Category:    "missing-alt-text",
				Description: "Image has no alt text",
				Severity:    domain.SeverityHigh,
				Line:        lineNo,
				Suggestion:  `Add a descriptive alt attribute, or alt="" for decorative images`,
			})
		}

		if formFieldPattern.MatchString(lower) && !catalog.ContainsAny(lower, fieldLabelledSignal) {
			issues = append(issues, domain.Issue{
				Category:    "unlabelled-field",
				Description: "Form field is not associated with a label",
				Severity:    domain.SeverityMedium,
				Line:        lineNo,
				Suggestion:  "Give the field an id referenced by a <label htmlFor>, or an aria-label",
			})
		}

		if clickablePlainTag.MatchString(line) && !catalog.ContainsAny(lower, []string{"role="}) {
			issues = append(issues, domain.Issue{
				Category:    "non-semantic-click",
				Description: "Click handler on a non-interactive element",
				Severity:    domain.SeverityMedium,
				Line:        lineNo,
				Suggestion:  `Use a <button>, or add role="button" and tabIndex={0} with keyboard handling`,
			})
		}

		if hasClassSignature(lower) && e.catalog.MatchesDomain(lower) && hasUnprefixed(classTokens(line), e.catalog, tinyTextPattern.MatchString) {
			issues = append(issues, domain.Issue{
				Category:    "small-text",
				Description: "Financial figures use text smaller than 12px",
				Severity:    domain.SeverityLow,
				Line:        lineNo,
				Suggestion:  "Use text-sm or larger for amounts and account details",
			})
		}
	}

	return issues
}

// Score converts accessibility issues into a sub-score
func (e *AccessibilityEvaluator) Score(issues []domain.Issue) int {
	return optionalWeights.score(issues)
}
