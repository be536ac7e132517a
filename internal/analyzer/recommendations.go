package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/mobilescan/domain"
)

// longTermByCategory holds the category-specific long-horizon items
var longTermByCategory = map[domain.DomainCategory][]string{
	domain.CategoryTransactionList: {
		"Add virtualization and incremental loading to transaction history",
		"Introduce swipe actions for common transaction operations",
	},
	domain.CategoryDashboardCard: {
		"Adopt a mobile-first card grid shared by all dashboard widgets",
		"Standardize skeleton loading states across account cards",
	},
	domain.CategoryBudgetChart: {
		"Provide touch-friendly chart interactions and an accessible data table fallback",
	},
	domain.CategoryForm: {
		"Build a shared amount input with locale-aware formatting and numeric keyboards",
	},
	domain.CategoryNavigation: {
		"Move primary banking sections into a thumb-reachable bottom tab bar",
	},
}

// GenerateRecommendations turns an issue set into immediate, short-term and
// long-term actions. The output depends only on its inputs.
func GenerateRecommendations(issues domain.IssueSet, category domain.DomainCategory) domain.RecommendationSet {
	rec := domain.RecommendationSet{
		Immediate: []string{},
		ShortTerm: []string{},
		LongTerm:  []string{},
	}

	criticalTouch := 0
	for _, i := range issues.TouchTargets {
		if i.Severity == domain.SeverityCritical {
			criticalTouch++
		}
	}
	if criticalTouch > 0 {
		rec.Immediate = append(rec.Immediate,
			fmt.Sprintf("Enlarge %d critical touch target(s) to at least 44x44px", criticalTouch))
	}

	criticalNav, highNav := 0, 0
	for _, i := range issues.NavigationIssues {
		switch i.Severity {
		case domain.SeverityCritical:
			criticalNav++
		case domain.SeverityHigh:
			highNav++
		}
	}
	if criticalNav > 0 {
		rec.Immediate = append(rec.Immediate,
			fmt.Sprintf("Fix %d critical navigation issue(s) blocking mobile access", criticalNav))
	}
	if highNav > 0 {
		rec.Immediate = append(rec.Immediate,
			fmt.Sprintf("Add accessible labels to %d navigation control(s)", highNav))
	}

	if n := len(issues.ResponsiveGaps); n > 0 {
		breaking := 0
		for _, g := range issues.ResponsiveGaps {
			if g.GapType == domain.GapLayoutBreaking {
				breaking++
			}
		}
		if breaking > 0 {
			rec.ShortTerm = append(rec.ShortTerm,
				fmt.Sprintf("Add mobile-first breakpoints to %d layout-breaking class set(s)", breaking))
		}
		if n-breaking > 0 {
			rec.ShortTerm = append(rec.ShortTerm,
				fmt.Sprintf("Add responsive variants to %d class set(s) that degrade on small screens", n-breaking))
		}
	}

	highDomain := 0
	for _, i := range issues.DomainUXIssues {
		if i.Severity == domain.SeverityHigh || i.Severity == domain.SeverityCritical {
			highDomain++
		}
	}
	if highDomain > 0 {
		rec.ShortTerm = append(rec.ShortTerm,
			fmt.Sprintf("Resolve %d high-priority %s UX issue(s)", highDomain, categoryLabel(category)))
	}

	highLayout := 0
	for _, i := range issues.LayoutIssues {
		if i.Severity == domain.SeverityHigh {
			highLayout++
		}
	}
	if highLayout > 0 {
		rec.LongTerm = append(rec.LongTerm,
			fmt.Sprintf("Refactor %d deeply nested or dense layout(s) into smaller components", highLayout))
	}
	rec.LongTerm = append(rec.LongTerm, longTermByCategory[category]...)

	return rec
}

func categoryLabel(category domain.DomainCategory) string {
	if category == domain.CategoryOther || category == "" {
		return "financial"
	}
	return string(category)
}
