package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/mobilescan/domain"
)

// promptIssue is the compact issue shape embedded in prompts
type promptIssue struct {
	Category     string `json:"category"`
	Severity     string `json:"severity"`
	Line         int    `json:"line,omitempty"`
	Description  string `json:"description"`
	Suggestion   string `json:"suggestion,omitempty"`
	DomainImpact string `json:"domain_impact,omitempty"`
}

// BuildPrompt renders one component result as a prompt asking an assistant
// to rewrite the component for mobile
func BuildPrompt(result *domain.AnalysisResult) (string, error) {
	if result == nil {
		return "", domain.NewInvalidInputError("no analysis result to build a prompt from", nil)
	}

	issues := make([]promptIssue, 0, result.Total())
	for _, issue := range result.All() {
		issues = append(issues, promptIssue{
			Category:     issue.Category,
			Severity:     string(issue.Severity),
			Line:         issue.Line,
			Description:  issue.Description,
			Suggestion:   issue.Suggestion,
			DomainImpact: issue.DomainImpact,
		})
	}
	issuesJSON, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal issues: %w", err)
	}

	scores := make([]string, 0, len(result.SubScores))
	for _, sub := range result.SubScores {
		scores = append(scores, fmt.Sprintf("%s=%d", sub.Evaluator, sub.Value))
	}

	return fmt.Sprintf(`You are a senior frontend engineer specialising in mobile UX for financial applications.

Component: %s (%s)
Category: %s
Mobile score: %d/100 (priority %s)
Sub-scores: %s

Detected issues:
%s

Source:
%s

Please rewrite this component so that it:
1. Fixes every critical and high severity issue first
2. Keeps interactive elements at least 44x44px
3. Adds mobile-first responsive classes where layouts are fixed
4. Preserves the existing behaviour and props

Respond with the updated component source followed by a short list of the changes you made.`,
		result.Component.Name, componentLabel(result.Component),
		result.Category,
		result.OverallScore, result.Priority,
		strings.Join(scores, ", "),
		string(issuesJSON),
		fenced(result.Component.Content)), nil
}

// WritePrompts writes a prompt for every analyzed component that has issues
func WritePrompts(response *domain.MobileResponse, writer io.Writer) error {
	written := 0
	for _, report := range response.Reports {
		if report.Failed() || report.Result.Total() == 0 {
			continue
		}
		prompt, err := BuildPrompt(report.Result)
		if err != nil {
			return err
		}
		if written > 0 {
			if _, err := fmt.Fprint(writer, "\n\n---\n\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(writer, prompt); err != nil {
			return domain.NewOutputError("failed to write prompt", err)
		}
		written++
	}
	if written == 0 {
		_, err := fmt.Fprintln(writer, "No issues found; nothing to prompt for.")
		return err
	}
	return nil
}

func fenced(content string) string {
	if strings.TrimSpace(content) == "" {
		return "(source not available)"
	}
	return "```\n" + strings.TrimRight(content, "\n") + "\n```"
}
