package analyzer

import (
	"regexp"
	"strconv"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

// Domain UX priority weights
const (
	domainUXWeightCritical = 25
	domainUXWeightHigh     = 15
	domainUXWeightMedium   = 8
	domainUXCategoryBonus  = 5
)

var (
	dollarLiteralPattern = regexp.MustCompile(`\$\d|>\s*\$|["']\$["']`)
	markupPattern        = regexp.MustCompile(`<[A-Za-z]`)
)

// DomainUXEvaluator applies category-specific financial UX rules
type DomainUXEvaluator struct {
	catalog *catalog.Catalog
}

// NewDomainUXEvaluator creates a domain UX evaluator
func NewDomainUXEvaluator(c *catalog.Catalog) *DomainUXEvaluator {
	return &DomainUXEvaluator{catalog: c}
}

// Evaluate dispatches on the component category, then runs the universal rules
func (e *DomainUXEvaluator) Evaluate(v *componentView) []domain.Issue {
	if v.blank {
		return nil
	}

	var issues []domain.Issue
	switch v.category {
	case domain.CategoryTransactionList:
		issues = append(issues, e.transactionList(v)...)
	case domain.CategoryDashboardCard:
		issues = append(issues, e.dashboardCard(v)...)
	case domain.CategoryBudgetChart:
		issues = append(issues, e.budgetChart(v)...)
	case domain.CategoryForm:
		issues = append(issues, e.form(v)...)
	}
	issues = append(issues, e.currency(v)...)
	return issues
}

func (e *DomainUXEvaluator) transactionList(v *componentView) []domain.Issue {
	var issues []domain.Issue
	listLine := v.firstLineContaining(e.catalog.ListRenderSignals)
	if listLine > 0 && !catalog.ContainsAny(v.lower, e.catalog.VirtualizationSignals) {
		issues = append(issues, domain.Issue{
			Category:     "missing-virtualization",
			Description:  "Transaction list renders every row without virtualization",
			Severity:     domain.SeverityHigh,
			Line:         listLine,
			Suggestion:   "Render rows through a virtualized list (react-window FixedSizeList or FlatList) and page older entries",
			DomainImpact: "Long transaction histories stall scrolling and drain battery on mid-range phones",
		})
	}
	if !catalog.ContainsAny(v.lower, e.catalog.GestureSignals) {
		issues = append(issues, domain.Issue{
			Category:     "missing-swipe-actions",
			Description:  "Transaction rows offer no swipe gesture for quick actions",
			Severity:     domain.SeverityMedium,
			Line:         max(listLine, 1),
			Suggestion:   "Add swipe-to-reveal actions (categorize, split, dispute) on each row",
			DomainImpact: "Users expect one-handed swipe actions on transaction rows in mobile banking apps",
		})
	}
	return issues
}

func (e *DomainUXEvaluator) dashboardCard(v *componentView) []domain.Issue {
	var issues []domain.Issue

	for i, line := range v.lines {
		tokens := classTokens(line)
		cols, ok := multiColumnGrid(tokens, e.catalog)
		if !ok || hasAnyToken(tokens, []string{"grid-cols-1"}) {
			continue
		}
		issues = append(issues, domain.Issue{
			Category:     "missing-mobile-grid-fallback",
			Description:  strconv.Itoa(cols) + "-column card grid has no single-column layout for phones",
			Severity:     domain.SeverityHigh,
			Line:         i + 1,
			Suggestion:   "Start from grid-cols-1 and add columns at larger breakpoints (sm:grid-cols-2 lg:grid-cols-" + strconv.Itoa(cols) + ")",
			DomainImpact: "Balance and spending cards shrink until figures are unreadable on small screens",
		})
		break
	}

	if markupPattern.MatchString(v.content) && !catalog.ContainsAny(v.lower, e.catalog.LoadingSignals) {
		issues = append(issues, domain.Issue{
			Category:     "missing-loading-state",
			Description:  "Dashboard card has no loading or skeleton state",
			Severity:     domain.SeverityMedium,
			Line:         lineAt(v.content, markupPattern.FindStringIndex(v.content)[0]),
			Suggestion:   "Show a skeleton placeholder while account data loads",
			DomainImpact: "Empty or jumping cards on slow mobile networks make balances look wrong",
		})
	}

	return issues
}

func (e *DomainUXEvaluator) budgetChart(v *componentView) []domain.Issue {
	chartLine := v.firstLineContaining(e.catalog.ChartLibrarySignals)
	if chartLine == 0 || catalog.ContainsAny(v.lower, e.catalog.ChartTouchSignals) {
		return nil
	}
	return []domain.Issue{{
		Category:     "missing-chart-touch",
		Description:  "Chart has no touch interaction for exploring values",
		Severity:     domain.SeverityHigh,
		Line:         chartLine,
		Suggestion:   "Enable tap-to-inspect tooltips and touch-action handling on the chart container",
		DomainImpact: "Budget breakdowns cannot be explored without hover, which phones do not have",
	}}
}

func (e *DomainUXEvaluator) form(v *componentView) []domain.Issue {
	for i, l := range v.lowerLines {
		if !catalog.ContainsAny(l, []string{"<input", "<textinput", "<textfield"}) {
			continue
		}
		if !catalog.ContainsAny(l, e.catalog.NumericFieldSignals) || catalog.ContainsAny(l, e.catalog.InputModeSignals) {
			continue
		}
		return []domain.Issue{{
			Category:     "missing-numeric-inputmode",
			Description:  "Numeric financial field opens the full text keyboard",
			Severity:     domain.SeverityHigh,
			Line:         i + 1,
			Suggestion:   `Add inputMode="decimal" (or "numeric" for card and account numbers) to the input`,
			DomainImpact: "Typing amounts on a text keyboard slows payments and invites entry errors",
		}}
	}
	return nil
}

func (e *DomainUXEvaluator) currency(v *componentView) []domain.Issue {
	if catalog.ContainsAny(v.lower, e.catalog.IntlFormatSignals) {
		return nil
	}
	for i, line := range v.lines {
		if !catalog.ContainsAny(line, e.catalog.CurrencyGlyphs) && !dollarLiteralPattern.MatchString(line) {
			continue
		}
		return []domain.Issue{{
			Category:     "hardcoded-currency",
			Description:  "Currency symbol is hard-coded instead of locale formatted",
			Severity:     domain.SeverityMedium,
			Line:         i + 1,
			Suggestion:   "Format amounts with Intl.NumberFormat using the user's locale and currency",
			DomainImpact: "Hard-coded symbols show the wrong currency and digit grouping to international users",
		}}
	}
	return nil
}

// Score converts domain UX issues into a sub-score. Classified components get
// a flat bonus; the result is capped at 100.
func (e *DomainUXEvaluator) Score(issues []domain.Issue, category domain.DomainCategory) int {
	score := 100
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityCritical:
			score -= domainUXWeightCritical
		case domain.SeverityHigh:
			score -= domainUXWeightHigh
		case domain.SeverityMedium:
			score -= domainUXWeightMedium
		}
	}
	if category != domain.CategoryOther {
		score += domainUXCategoryBonus
	}
	return clampScore(score)
}

// multiColumnGrid returns the first unprefixed grid-cols-N with N >= 2
func multiColumnGrid(tokens []string, c *catalog.Catalog) (int, bool) {
	for _, t := range tokens {
		if _, prefixed := c.StripBreakpoint(t); prefixed {
			continue
		}
		if m := gridColsPattern.FindStringSubmatch(t); m != nil {
			if cols, err := strconv.Atoi(m[1]); err == nil && cols >= 2 {
				return cols, true
			}
		}
	}
	return 0, false
}
