package analyzer

import (
	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

// Navigation severity weights
const (
	navWeightCritical = 30
	navWeightHigh     = 18
	navWeightMedium   = 10
)

// NavigationEvaluator checks menus and navigation bars for mobile usability
type NavigationEvaluator struct {
	catalog          *catalog.Catalog
	domainEnrichment bool
}

// NewNavigationEvaluator creates a navigation evaluator
func NewNavigationEvaluator(c *catalog.Catalog, domainEnrichment bool) *NavigationEvaluator {
	return &NavigationEvaluator{catalog: c, domainEnrichment: domainEnrichment}
}

// Evaluate runs the label, hamburger and spacing checks on every line
func (e *NavigationEvaluator) Evaluate(v *componentView) []domain.Issue {
	var issues []domain.Issue

	for i := range v.lines {
		lower := v.lowerLines[i]
		lineNo := i + 1
		navLine := catalog.ContainsAny(lower, e.catalog.NavigationSignatures)

		if e.needsLabel(lower, navLine) && !catalog.ContainsAny(lower, e.catalog.AccessibleLabelAttrs) {
			issues = append(issues, domain.Issue{
				Category:     "missing-aria-label",
				Description:  "Navigation control has no accessible label",
				Severity:     domain.SeverityHigh,
				Line:         lineNo,
				Suggestion:   `Add aria-label (e.g. aria-label="Open account menu") so screen readers announce the control`,
				DomainImpact: e.impact("Unlabelled controls make it impossible for screen-reader users to reach accounts and payments"),
			})
		}

		if catalog.ContainsAny(lower, e.catalog.HamburgerSignatures) && !hasAnyToken(classTokens(lower), e.catalog.DesktopHideClasses) {
			issues = append(issues, domain.Issue{
				Category:     "hamburger-menu",
				Description:  "Hamburger menu toggle stays visible on desktop viewports",
				Severity:     domain.SeverityMedium,
				Line:         lineNo,
				Suggestion:   "Hide the toggle from the md breakpoint (md:hidden) and show the full navigation instead",
				DomainImpact: e.impact("Desktop users lose one-click access to key banking sections"),
			})
		}

		if navLine && hasAnyToken(classTokens(lower), e.catalog.TightSpacingClasses) {
			issues = append(issues, domain.Issue{
				Category:     "tight-spacing",
				Description:  "Navigation items are spaced too tightly for reliable tapping",
				Severity:     domain.SeverityMedium,
				Line:         lineNo,
				Suggestion:   "Use at least gap-2 or space-x-2 between items and py-3 on each item for a 44px tap row",
				DomainImpact: e.impact("Adjacent menu entries such as Transfer and Pay are easy to hit by mistake"),
			})
		}
	}

	return issues
}

// needsLabel decides whether the accessible-label check applies to a line.
// With domain enrichment, menu actions and navigation lines that mention
// financial content are checked; without it only navigation lines are.
func (e *NavigationEvaluator) needsLabel(lower string, navLine bool) bool {
	if !e.domainEnrichment {
		return navLine
	}
	if !navLine && !catalog.ContainsAny(lower, e.catalog.MenuActionSignatures) {
		return false
	}
	return e.catalog.MatchesDomain(lower)
}

func (e *NavigationEvaluator) impact(note string) string {
	if !e.domainEnrichment {
		return ""
	}
	return note
}

// Score converts navigation issues into a sub-score
func (e *NavigationEvaluator) Score(issues []domain.Issue) int {
	deduction := 0
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityCritical:
			deduction += navWeightCritical
		case domain.SeverityHigh:
			deduction += navWeightHigh
		case domain.SeverityMedium:
			deduction += navWeightMedium
		}
	}
	return clampScore(100 - deduction)
}

// hasAnyToken reports whether any unprefixed token equals one of the classes.
// Breakpoint-prefixed entries in classes match literally.
func hasAnyToken(tokens, classes []string) bool {
	for _, t := range tokens {
		for _, c := range classes {
			if t == c {
				return true
			}
		}
	}
	return false
}
