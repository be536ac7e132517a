package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

// Base-score adjustments
const (
	responsivePenaltyWidth   = 15
	responsivePenaltyText    = 10
	responsivePenaltySpacing = 10
	responsivePenaltyGrid    = 15
	responsiveMobileFirst    = 10
)

// Gap deductions applied on top of the base score
const (
	gapWeightLayoutBreaking = 15
	gapWeightUXDegradation  = 8
)

var (
	fixedWidthPattern   = regexp.MustCompile(`^w-(?:\d+(?:\.\d+)?|\[\d+(?:\.\d+)?(?:px|rem)\])$`)
	largeTextPattern    = regexp.MustCompile(`^text-(?:xl|[2-9]xl)$`)
	textSizePattern     = regexp.MustCompile(`^text-(?:xs|sm|base|lg|xl|[2-9]xl|\[\d+(?:\.\d+)?(?:px|rem)\])$`)
	gridColsPattern     = regexp.MustCompile(`^grid-cols-(\d+)$`)
	smallPaddingPattern = regexp.MustCompile(`^p[xy]?-(?:0|0\.5|1|1\.5|2)$`)
	spacingPattern      = regexp.MustCompile(`^(?:[pm][xytrbl]?|gap(?:-[xy])?|space-[xy])-`)
	widthFamilyPattern  = regexp.MustCompile(`^(?:min-|max-)?w-`)
	gridFamilyPattern   = regexp.MustCompile(`^grid-cols-`)
)

// ResponsiveEvaluator detects utility classes that lack breakpoint overrides
type ResponsiveEvaluator struct {
	catalog           *catalog.Catalog
	domainEnrichment  bool
	mobileBreakpoint  int
	desktopBreakpoint int
}

// NewResponsiveEvaluator creates a responsive-gap evaluator
func NewResponsiveEvaluator(c *catalog.Catalog, domainEnrichment bool, mobileBreakpoint, desktopBreakpoint int) *ResponsiveEvaluator {
	return &ResponsiveEvaluator{
		catalog:           c,
		domainEnrichment:  domainEnrichment,
		mobileBreakpoint:  mobileBreakpoint,
		desktopBreakpoint: desktopBreakpoint,
	}
}

// Evaluate checks each class-bearing line for the four gap triggers
func (e *ResponsiveEvaluator) Evaluate(v *componentView) []domain.ResponsiveGap {
	var gaps []domain.ResponsiveGap

	for i, line := range v.lines {
		lower := v.lowerLines[i]
		if !hasClassSignature(lower) {
			continue
		}

		current := currentClasses(line)
		tokens := classTokens(line)
		domainLine := e.domainMatch(lower)
		lineNo := i + 1

		if domainLine && hasUnprefixed(tokens, e.catalog, fixedWidthPattern.MatchString) &&
			!hasPrefixed(tokens, e.catalog, widthFamilyPattern.MatchString) {
			gaps = append(gaps, e.gap(lineNo, domain.GapLayoutBreaking, current,
				"fixed-width",
				fmt.Sprintf("Fixed width without a responsive variant overflows screens narrower than %dpx", e.mobileBreakpoint),
				"Use a fluid width on mobile and restore the fixed width from the sm breakpoint",
				"Balances and account numbers get clipped or force horizontal scrolling on phones",
				[]string{"w-full", "sm:w-auto", "max-w-full"}))
		}

		if domainLine && hasUnprefixed(tokens, e.catalog, largeTextPattern.MatchString) &&
			!hasPrefixed(tokens, e.catalog, textSizePattern.MatchString) {
			gaps = append(gaps, e.gap(lineNo, domain.GapUXDegradation, current,
				"fixed-font-size",
				"Large font size is applied at every viewport without a responsive step",
				"Start from a readable mobile size and scale the text up at larger breakpoints",
				"Oversized amounts wrap or truncate, making figures hard to read at a glance",
				[]string{"text-base", "sm:text-lg", "md:text-xl"}))
		}

		if cols, ok := wideGrid(tokens, e.catalog); ok && !hasPrefixed(tokens, e.catalog, gridFamilyPattern.MatchString) {
			gaps = append(gaps, e.gap(lineNo, domain.GapLayoutBreaking, current,
				"fixed-grid",
				fmt.Sprintf("%d-column grid has no single-column mobile fallback", cols),
				fmt.Sprintf("Collapse to one column on mobile and reach %d columns from %dpx", cols, e.desktopBreakpoint),
				"Cards and figures are squeezed into unreadable columns on small screens",
				[]string{"grid-cols-1", "sm:grid-cols-2", "lg:grid-cols-" + strconv.Itoa(cols)}))
		}

		if e.financialAction(lower) && hasUnprefixed(tokens, e.catalog, smallPaddingPattern.MatchString) {
			gaps = append(gaps, e.gap(lineNo, domain.GapUXDegradation, current,
				"insufficient-touch-padding",
				"Interactive financial element uses small padding that shrinks its touch area on mobile",
				"Use larger padding on mobile and tighten it from the sm breakpoint",
				"Cramped payment and transfer controls lead to accidental taps",
				[]string{"p-3", "sm:p-2", "min-h-[44px]"}))
		}
	}

	return gaps
}

// BaseScore scores the component's overall responsive class usage. Missing
// responsive width, text, spacing or grid variants cost fixed points; mixing
// unprefixed and prefixed classes earns a mobile-first bonus.
func (e *ResponsiveEvaluator) BaseScore(v *componentView) int {
	var tokens []string
	for i, line := range v.lines {
		if hasClassSignature(v.lowerLines[i]) {
			tokens = append(tokens, classTokens(line)...)
		}
	}

	score := 100
	if hasUnprefixed(tokens, e.catalog, fixedWidthPattern.MatchString) && !hasPrefixed(tokens, e.catalog, widthFamilyPattern.MatchString) {
		score -= responsivePenaltyWidth
	}
	if hasUnprefixed(tokens, e.catalog, largeTextPattern.MatchString) && !hasPrefixed(tokens, e.catalog, textSizePattern.MatchString) {
		score -= responsivePenaltyText
	}
	if hasUnprefixed(tokens, e.catalog, spacingPattern.MatchString) && !hasPrefixed(tokens, e.catalog, spacingPattern.MatchString) {
		score -= responsivePenaltySpacing
	}
	if hasUnprefixed(tokens, e.catalog, gridColsPattern.MatchString) && !hasPrefixed(tokens, e.catalog, gridFamilyPattern.MatchString) {
		score -= responsivePenaltyGrid
	}

	anyToken := func(string) bool { return true }
	if hasUnprefixed(tokens, e.catalog, isUtilityClass) && hasPrefixed(tokens, e.catalog, anyToken) {
		score += responsiveMobileFirst
	}

	return clampScore(score)
}

// Score combines the base score with per-gap deductions
func (e *ResponsiveEvaluator) Score(base int, gaps []domain.ResponsiveGap) int {
	score := base
	for _, g := range gaps {
		switch g.GapType {
		case domain.GapLayoutBreaking:
			score -= gapWeightLayoutBreaking
		case domain.GapUXDegradation:
			score -= gapWeightUXDegradation
		}
	}
	return clampScore(score)
}

func (e *ResponsiveEvaluator) domainMatch(lower string) bool {
	if !e.domainEnrichment {
		return true
	}
	return e.catalog.MatchesDomain(lower)
}

func (e *ResponsiveEvaluator) financialAction(lower string) bool {
	if !catalog.ContainsAny(lower, e.catalog.InteractiveSignatures) {
		return false
	}
	if !e.domainEnrichment {
		return true
	}
	return catalog.ContainsAny(lower, e.catalog.FinancialActions)
}

func (e *ResponsiveEvaluator) gap(line int, gapType domain.GapType, current []string, category, description, suggestion, impact string, suggested []string) domain.ResponsiveGap {
	gap := domain.ResponsiveGap{
		Issue: domain.Issue{
			Category:    category,
			Description: description,
			Severity:    gapSeverity(gapType),
			Line:        line,
			Suggestion:  suggestion + ": " + strings.Join(suggested, " "),
		},
		GapType:          gapType,
		CurrentClasses:   current,
		SuggestedClasses: suggested,
	}
	if e.domainEnrichment {
		gap.DomainImpact = impact
	}
	return gap
}

func gapSeverity(t domain.GapType) domain.Severity {
	if t == domain.GapLayoutBreaking {
		return domain.SeverityHigh
	}
	return domain.SeverityMedium
}

// currentClasses returns the whitespace-split class attribute value of a line
func currentClasses(line string) []string {
	if value, ok := classAttribute(line); ok {
		return strings.Fields(value)
	}
	return []string{}
}

func hasUnprefixed(tokens []string, c *catalog.Catalog, match func(string) bool) bool {
	for _, t := range tokens {
		if _, prefixed := c.StripBreakpoint(t); !prefixed && match(t) {
			return true
		}
	}
	return false
}

func hasPrefixed(tokens []string, c *catalog.Catalog, match func(string) bool) bool {
	for _, t := range tokens {
		if rest, prefixed := c.StripBreakpoint(t); prefixed && match(rest) {
			return true
		}
	}
	return false
}

func wideGrid(tokens []string, c *catalog.Catalog) (int, bool) {
	for _, t := range tokens {
		if _, prefixed := c.StripBreakpoint(t); prefixed {
			continue
		}
		if m := gridColsPattern.FindStringSubmatch(t); m != nil {
			if cols, err := strconv.Atoi(m[1]); err == nil && cols >= 3 {
				return cols, true
			}
		}
	}
	return 0, false
}

var utilityClassPattern = regexp.MustCompile(`^-?[a-z][a-z0-9]*(?:-[\w.\[\]/%#]+)*$`)

// isUtilityClass filters out attribute names and markup fragments picked up by
// the tokenizer
func isUtilityClass(token string) bool {
	return !strings.ContainsAny(token, "=<>()") && utilityClassPattern.MatchString(token)
}
