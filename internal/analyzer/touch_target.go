package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

const (
	// DefaultMinTouchTargetSize is the minimum hit area edge in pixels
	DefaultMinTouchTargetSize = 44

	// PixelsPerSpacingUnit converts a spacing-scale number to pixels
	PixelsPerSpacingUnit = 4

	criticalTouchBelow = 32
	highTouchBelow     = 40
)

// Touch-target severity weights
const (
	touchWeightCritical = 25
	touchWeightHigh     = 15
	touchWeightMedium   = 8
)

var sizeTokenPattern = regexp.MustCompile(`^(min-)?(w|h|size)-(?:(\d+(?:\.\d+)?)|\[(\d+(?:\.\d+)?)px\])$`)

// TouchTargetEvaluator checks the hit area of interactive elements
type TouchTargetEvaluator struct {
	catalog          *catalog.Catalog
	minSize          int
	domainEnrichment bool
}

// NewTouchTargetEvaluator creates a touch-target evaluator
func NewTouchTargetEvaluator(c *catalog.Catalog, minSize int, domainEnrichment bool) *TouchTargetEvaluator {
	if minSize <= 0 {
		minSize = DefaultMinTouchTargetSize
	}
	return &TouchTargetEvaluator{catalog: c, minSize: minSize, domainEnrichment: domainEnrichment}
}

// Evaluate returns one issue per interactive line whose size is unknown or too small
func (e *TouchTargetEvaluator) Evaluate(v *componentView) []domain.TouchTargetIssue {
	var issues []domain.TouchTargetIssue

	for i, line := range v.lines {
		lower := v.lowerLines[i]
		if !catalog.ContainsAny(lower, e.catalog.InteractiveSignatures) {
			continue
		}

		size := ResolveSize(line)
		severity, ok := e.classify(size)
		if !ok {
			continue
		}

		issue := domain.TouchTargetIssue{
			Issue: domain.Issue{
				Category: "touch-target",
				Severity: severity,
				Line:     i + 1,
			},
			Element:      elementName(line),
			CurrentSize:  size,
			RequiredSize: e.minSize,
		}

		if size.Width == 0 && size.Height == 0 {
			issue.Description = fmt.Sprintf("Interactive <%s> has no resolvable size; cannot confirm a %dpx touch target", issue.Element, e.minSize)
		} else {
			issue.Description = fmt.Sprintf("Interactive <%s> touch target is %s, below the %dpx minimum", issue.Element, formatSize(size), e.minSize)
		}
		issue.Suggestion = fmt.Sprintf("Ensure at least %dx%dpx, e.g. min-h-[%dpx] min-w-[%dpx]", e.minSize, e.minSize, e.minSize, e.minSize)

		if e.domainEnrichment && e.catalog.MatchesDomain(lower) {
			issue.DomainRelevant = true
			issue.ElementRole = classifyRole(lower)
			if remediation, ok := e.catalog.RoleRemediations[issue.ElementRole]; ok {
				issue.Suggestion = remediation
			}
			issue.DomainImpact = "Mis-taps on financial controls can trigger the wrong payment, transfer or account action"
		}

		issues = append(issues, issue)
	}

	return issues
}

// classify applies the size policy. It returns false when the target complies.
func (e *TouchTargetEvaluator) classify(size domain.Size) (domain.Severity, bool) {
	if size.Width == 0 && size.Height == 0 {
		return domain.SeverityMedium, true
	}

	smallest := 0
	for _, d := range []int{size.Width, size.Height} {
		if d > 0 && d < e.minSize && (smallest == 0 || d < smallest) {
			smallest = d
		}
	}
	if smallest == 0 {
		return "", false
	}

	switch {
	case smallest < criticalTouchBelow:
		return domain.SeverityCritical, true
	case smallest < highTouchBelow:
		return domain.SeverityHigh, true
	default:
		return domain.SeverityMedium, true
	}
}

// Score converts touch-target issues into a sub-score
func (e *TouchTargetEvaluator) Score(issues []domain.TouchTargetIssue) int {
	deduction := 0
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityCritical:
			deduction += touchWeightCritical
		case domain.SeverityHigh:
			deduction += touchWeightHigh
		case domain.SeverityMedium:
			deduction += touchWeightMedium
		}
	}
	return clampScore(100 - deduction)
}

// ResolveSize reads unprefixed width/height utilities from a line. Minimum-size
// utilities raise the resolved dimension; unknown dimensions stay zero.
func ResolveSize(line string) domain.Size {
	var width, height, minWidth, minHeight int

	for _, token := range classTokens(line) {
		m := sizeTokenPattern.FindStringSubmatch(token)
		if m == nil {
			continue
		}
		px := tokenPixels(m[3], m[4])
		if px <= 0 {
			continue
		}
		isMin := m[1] != ""
		switch m[2] {
		case "w":
			if isMin {
				minWidth = px
			} else {
				width = px
			}
		case "h":
			if isMin {
				minHeight = px
			} else {
				height = px
			}
		case "size":
			if !isMin {
				width, height = px, px
			}
		}
	}

	return domain.Size{Width: max(width, minWidth), Height: max(height, minHeight)}
}

func tokenPixels(scale, literal string) int {
	if literal != "" {
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return 0
		}
		return int(v)
	}
	v, err := strconv.ParseFloat(scale, 64)
	if err != nil {
		return 0
	}
	return int(v * PixelsPerSpacingUnit)
}

func classifyRole(lower string) domain.ElementRole {
	switch {
	case strings.Contains(lower, "chart") || strings.Contains(lower, "graph") ||
		strings.Contains(lower, "<bar") || strings.Contains(lower, "<pie") || strings.Contains(lower, "<cell"):
		return domain.RoleChartElement
	case strings.Contains(lower, "<input") || strings.Contains(lower, "<select") || strings.Contains(lower, "<textarea"):
		return domain.RoleFormControl
	case strings.Contains(lower, "<nav") || strings.Contains(lower, "menu") ||
		strings.Contains(lower, "tabbar") || strings.Contains(lower, `role="tab"`):
		return domain.RoleNavItem
	case strings.Contains(lower, "<a ") || strings.Contains(lower, "href=") || strings.Contains(lower, "<link"):
		return domain.RoleLink
	default:
		return domain.RoleButton
	}
}

func formatSize(s domain.Size) string {
	dim := func(v int) string {
		if v == 0 {
			return "?"
		}
		return strconv.Itoa(v)
	}
	return dim(s.Width) + "x" + dim(s.Height) + "px"
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
