package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/mobilescan/domain"
)

// OutputFormatterImpl implements the domain.OutputFormatter interface
type OutputFormatterImpl struct {
	showDetails bool
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WithDetails makes text output list every issue with its suggestion
func (f *OutputFormatterImpl) WithDetails(show bool) *OutputFormatterImpl {
	f.showDetails = show
	return f
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Format renders the response into a string
func (f *OutputFormatterImpl) Format(response *domain.MobileResponse, format domain.OutputFormat) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(response, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write writes the response in the specified format
func (f *OutputFormatterImpl) Write(response *domain.MobileResponse, format domain.OutputFormat, writer io.Writer) error {
	var err error
	switch format {
	case domain.OutputFormatJSON:
		err = WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		err = WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		err = f.writeCSV(response, writer)
	case domain.OutputFormatHTML:
		err = f.WriteHTML(response, writer)
	case domain.OutputFormatText, "":
		err = f.writeText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to write %s output", format), err)
	}
	return nil
}

// csvHeader lists the columns of the CSV report, one row per issue
var csvHeader = []string{
	"component", "path", "category", "overall_score", "priority",
	"issue_category", "severity", "line", "description", "suggestion",
}

func (f *OutputFormatterImpl) writeCSV(response *domain.MobileResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, report := range response.Reports {
		c := report.Component
		if report.Failed() {
			if err := w.Write([]string{c.Name, c.Path, "", "", "", "error", "", "", report.Error, ""}); err != nil {
				return err
			}
			continue
		}

		r := report.Result
		prefix := []string{c.Name, c.Path, string(r.Category), strconv.Itoa(r.OverallScore), string(r.Priority)}
		issues := r.All()
		if len(issues) == 0 {
			if err := w.Write(append(prefix, "", "", "", "", "")); err != nil {
				return err
			}
			continue
		}
		for _, issue := range issues {
			line := ""
			if issue.Line > 0 {
				line = strconv.Itoa(issue.Line)
			}
			row := append(append([]string{}, prefix...), issue.Category, string(issue.Severity), line, issue.Description, issue.Suggestion)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.Bold)
	failColor   = color.New(color.FgRed, color.Bold)
	mutedColor  = color.New(color.FgHiBlack)
)

// severityColor returns the display color for a severity or priority tier
func severityColor(severity string) *color.Color {
	switch strings.ToLower(severity) {
	case "critical":
		return color.New(color.FgRed, color.Bold)
	case "high":
		return color.New(color.FgRed)
	case "medium":
		return color.New(color.FgYellow)
	case "low":
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}

// scoreColor colors a 0-100 score by quality band
func scoreColor(score int) *color.Color {
	switch {
	case score >= domain.ScoreThresholdGood:
		return color.New(color.FgGreen)
	case score >= domain.ScoreThresholdFair:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func (f *OutputFormatterImpl) writeText(response *domain.MobileResponse, writer io.Writer) error {
	s := response.Summary

	headerColor.Fprintf(writer, "\n=== mobilescan Report ===\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Duration: %dms\n", response.DurationMs)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	labelColor.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Components: %d (analyzed %d, failed %d)\n", s.TotalComponents, s.AnalyzedComponents, s.FailedComponents)
	fmt.Fprintf(writer, "  Average score: %s (grade %s)\n",
		scoreColor(int(s.AverageScore+0.5)).Sprintf("%.1f", s.AverageScore), s.Grade)
	fmt.Fprintf(writer, "  Lowest score: %d\n", s.MinScore)
	fmt.Fprintf(writer, "  Issues: %d (critical %d, high %d, medium %d, low %d)\n", s.TotalIssues,
		s.SeverityCounts[domain.SeverityCritical], s.SeverityCounts[domain.SeverityHigh],
		s.SeverityCounts[domain.SeverityMedium], s.SeverityCounts[domain.SeverityLow])
	fmt.Fprintf(writer, "  Priority: critical %d, high %d, medium %d, low %d\n",
		s.PriorityCounts[domain.PriorityCritical], s.PriorityCounts[domain.PriorityHigh],
		s.PriorityCounts[domain.PriorityMedium], s.PriorityCounts[domain.PriorityLow])
	if len(s.CategoryCounts) > 0 {
		fmt.Fprintf(writer, "  Categories: %s\n", formatCategoryCounts(s.CategoryCounts))
	}
	if len(s.Urgent) > 0 {
		fmt.Fprintf(writer, "  Fix first: %s\n", strings.Join(s.Urgent, ", "))
	}
	fmt.Fprintln(writer)

	if len(response.Reports) > 0 {
		labelColor.Fprintf(writer, "Components:\n")
	}
	for _, report := range response.Reports {
		f.writeReportText(report, writer)
	}

	if len(response.Warnings) > 0 {
		labelColor.Fprintf(writer, "Warnings:\n")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}

	if len(response.Errors) > 0 {
		labelColor.Fprintf(writer, "Errors:\n")
		for _, e := range response.Errors {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
	}

	return nil
}

func (f *OutputFormatterImpl) writeReportText(report domain.ComponentReport, writer io.Writer) {
	label := componentLabel(report.Component)
	if report.Failed() {
		failColor.Fprintf(writer, "  [FAILED] ")
		fmt.Fprintf(writer, "%s: %s\n\n", label, report.Error)
		return
	}

	r := report.Result
	severityColor(string(r.Priority)).Fprintf(writer, "  [%s] ", strings.ToUpper(string(r.Priority)))
	fmt.Fprintf(writer, "%s  score %s  %s\n", label, scoreColor(r.OverallScore).Sprintf("%d", r.OverallScore), r.Category)

	parts := make([]string, 0, len(r.SubScores))
	for _, sub := range r.SubScores {
		parts = append(parts, fmt.Sprintf("%s %d", sub.Evaluator, sub.Value))
	}
	mutedColor.Fprintf(writer, "    %s\n", strings.Join(parts, ", "))

	for _, issue := range r.All() {
		location := ""
		if issue.Line > 0 {
			location = fmt.Sprintf("L%d ", issue.Line)
		}
		fmt.Fprintf(writer, "    %s", location)
		severityColor(string(issue.Severity)).Fprintf(writer, "[%s]", issue.Severity)
		fmt.Fprintf(writer, " %s: %s\n", issue.Category, issue.Description)
		if f.showDetails {
			if issue.Suggestion != "" {
				fmt.Fprintf(writer, "      Fix: %s\n", issue.Suggestion)
			}
			if issue.DomainImpact != "" {
				fmt.Fprintf(writer, "      Impact: %s\n", issue.DomainImpact)
			}
		}
	}

	writeRecommendations(writer, "Immediate", r.Recommendations.Immediate)
	writeRecommendations(writer, "Short term", r.Recommendations.ShortTerm)
	writeRecommendations(writer, "Long term", r.Recommendations.LongTerm)

	for _, w := range r.Warnings {
		mutedColor.Fprintf(writer, "    warning: %s\n", w)
	}
	fmt.Fprintln(writer)
}

func writeRecommendations(writer io.Writer, horizon string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(writer, "    %s:\n", horizon)
	for _, item := range items {
		fmt.Fprintf(writer, "      - %s\n", item)
	}
}

func formatCategoryCounts(counts map[domain.DomainCategory]int) string {
	parts := make([]string, 0, len(counts))
	for _, category := range domain.AllCategories() {
		if n := counts[category]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", category, n))
		}
	}
	return strings.Join(parts, ", ")
}
