package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ludo-technologies/mobilescan/domain"
)

const maxAnimationDurationMs = 500

var (
	motionTokenPattern   = regexp.MustCompile(`^(?:animate-[\w-]+|transition(?:-[\w-]+)?)$`)
	durationTokenPattern = regexp.MustCompile(`^duration-(\d+)$`)
	reducedMotionSignals = []string{"motion-reduce:", "motion-safe:", "prefers-reduced-motion", "usereducedmotion"}
)

// AnimationEvaluator reports motion that ignores user preferences or slows
// interaction. Its sub-score is informational.
type AnimationEvaluator struct{}

// NewAnimationEvaluator creates an animation evaluator
func NewAnimationEvaluator() *AnimationEvaluator {
	return &AnimationEvaluator{}
}

// Evaluate checks reduced-motion support, transition-all and long durations
func (e *AnimationEvaluator) Evaluate(v *componentView) []domain.Issue {
	var issues []domain.Issue
	reducedMotion := false
	for _, s := range reducedMotionSignals {
		if strings.Contains(v.lower, s) {
			reducedMotion = true
			break
		}
	}

	reported := false
	for i, line := range v.lines {
		if !hasClassSignature(v.lowerLines[i]) {
			continue
		}
		for _, token := range classTokens(line) {
			if motionTokenPattern.MatchString(token) && !reducedMotion && !reported {
				reported = true
				issues = append(issues, domain.Issue{
					Category:    "reduced-motion",
					Description: "Animation runs without a reduced-motion alternative",
					Severity:    domain.SeverityMedium,
					Line:        i + 1,
					Suggestion:  "Add motion-reduce:transition-none or motion-reduce:animate-none",
				})
			}
			if token == "transition-all" {
				issues = append(issues, domain.Issue{
					Category:    "transition-all",
					Description: "transition-all animates layout properties",
					Severity:    domain.SeverityLow,
					Line:        i + 1,
					Suggestion:  "Limit transitions to transform and opacity (transition-transform, transition-opacity)",
				})
			}
			if m := durationTokenPattern.FindStringSubmatch(token); m != nil {
				if ms, err := strconv.Atoi(m[1]); err == nil && ms > maxAnimationDurationMs {
					issues = append(issues, domain.Issue{
						Category:    "slow-animation",
						Description: fmt.Sprintf("%dms animation delays feedback on tap", ms),
						Severity:    domain.SeverityLow,
						Line:        i + 1,
						Suggestion:  fmt.Sprintf("Keep interaction feedback at or under %dms", maxAnimationDurationMs/2),
					})
				}
			}
		}
	}

	return issues
}

// Score converts animation issues into a sub-score
func (e *AnimationEvaluator) Score(issues []domain.Issue) int {
	return optionalWeights.score(issues)
}
