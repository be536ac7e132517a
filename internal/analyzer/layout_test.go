package analyzer

import (
	"strings"
	"testing"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

// nested returns depth opening div lines followed by their closing lines
func nested(depth int) []string {
	var lines []string
	for i := 0; i < depth; i++ {
		lines = append(lines, strings.Repeat("  ", i)+"<div>")
	}
	for i := depth - 1; i >= 0; i-- {
		lines = append(lines, strings.Repeat("  ", i)+"</div>")
	}
	return lines
}

func repeat(line string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = line
	}
	return lines
}

func TestLayoutEvaluator_Measure(t *testing.T) {
	e := NewLayoutEvaluator(catalog.Default())

	tests := []struct {
		name         string
		lines        []string
		depth        int
		depthLine    int
		flexGrid     int
		conditionals int
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"nested divs", nested(4), 4, 4, 0, 0},
		{"self-closing", []string{"<div>", "  <img src={logo} />", "  <Icon />", "</div>"}, 1, 1, 0, 0},
		{"one line open and close", []string{"<p><b>Total</b></p>"}, 0, 0, 0, 0},
		{"flex tokens", []string{`<div className="flex flex-col items-center justify-between gap-4 md:grid p-4">`}, 1, 1, 6, 0},
		{"conditionals", []string{"{isLoading ? <Spinner /> : null}", "{error && <Alert />}", "{name || 'Unknown'}"}, 0, 0, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := e.Measure(view(component("Widget", tt.lines...)))
			if m.MaxDepth != tt.depth {
				t.Errorf("Expected depth %d, got %d", tt.depth, m.MaxDepth)
			}
			if m.MaxDepthLine != tt.depthLine {
				t.Errorf("Expected depth line %d, got %d", tt.depthLine, m.MaxDepthLine)
			}
			if m.FlexGridCount != tt.flexGrid {
				t.Errorf("Expected %d flex/grid utilities, got %d", tt.flexGrid, m.FlexGridCount)
			}
			if m.ConditionalCount != tt.conditionals {
				t.Errorf("Expected %d conditionals, got %d", tt.conditionals, m.ConditionalCount)
			}
		})
	}
}

func TestLayoutEvaluator_Evaluate(t *testing.T) {
	e := NewLayoutEvaluator(catalog.Default())

	tests := []struct {
		name     string
		lines    []string
		metric   string
		severity domain.Severity
		value    int
	}{
		{"depth at limit", nested(6), "", "", 0},
		{"medium depth", nested(8), metricNestingDepth, domain.SeverityMedium, 8},
		{"high depth", nested(12), metricNestingDepth, domain.SeverityHigh, 12},
		{"flex at limit", repeat(`<div className="flex"></div>`, 15), "", "", 0},
		{"flex over limit", repeat(`<div className="flex"></div>`, 16), metricFlexGridDensity, domain.SeverityMedium, 16},
		{"conditionals at limit", repeat("{open && <Menu />}", 8), "", "", 0},
		{"conditionals over limit", repeat("{open && <Menu />}", 9), metricConditionalRender, domain.SeverityMedium, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := e.Evaluate(view(component("Widget", tt.lines...)))
			if tt.metric == "" {
				if len(issues) != 0 {
					t.Errorf("Expected no issues, got %+v", issues)
				}
				return
			}
			if len(issues) != 1 {
				t.Fatalf("Expected 1 issue, got %d: %+v", len(issues), issues)
			}
			issue := issues[0]
			if issue.Metric != tt.metric {
				t.Errorf("Expected metric %s, got %s", tt.metric, issue.Metric)
			}
			if issue.Severity != tt.severity {
				t.Errorf("Expected severity %s, got %s", tt.severity, issue.Severity)
			}
			if issue.CurrentValue != tt.value {
				t.Errorf("Expected value %d, got %d", tt.value, issue.CurrentValue)
			}
			if issue.Line == 0 {
				t.Error("Expected a line reference")
			}
		})
	}
}

func TestLayoutEvaluator_Score(t *testing.T) {
	e := NewLayoutEvaluator(catalog.Default())
	issues := []domain.LayoutIssue{
		{Issue: domain.Issue{Severity: domain.SeverityHigh}},
		{Issue: domain.Issue{Severity: domain.SeverityMedium}},
		{Issue: domain.Issue{Severity: domain.SeverityLow}},
	}
	if got := e.Score(issues); got != 63 {
		t.Errorf("Expected 63, got %d", got)
	}
	if got := e.Score(nil); got != 100 {
		t.Errorf("Expected 100, got %d", got)
	}
}
