package service

import (
	"html/template"
	"io"
	"strings"

	"github.com/ludo-technologies/mobilescan/domain"
)

// HTMLData represents the data for the HTML template
type HTMLData struct {
	GeneratedAt string
	Duration    int64
	Version     string
	Summary     domain.ProjectSummary
	Reports     []domain.ComponentReport
	Warnings    []string
	Errors      []string
	Severities  []domain.Severity
}

var htmlFuncs = template.FuncMap{
	"join": func(elems []string, sep string) string {
		return strings.Join(elems, sep)
	},
	"upper": func(s interface{}) string {
		switch v := s.(type) {
		case domain.PriorityTier:
			return strings.ToUpper(string(v))
		case domain.Severity:
			return strings.ToUpper(string(v))
		case string:
			return strings.ToUpper(v)
		}
		return ""
	},
	"scoreQuality": func(score int) string {
		switch {
		case score >= domain.ScoreThresholdExcellent:
			return "excellent"
		case score >= domain.ScoreThresholdGood:
			return "good"
		case score >= domain.ScoreThresholdFair:
			return "fair"
		default:
			return "poor"
		}
	},
	"gradeClass": func(grade string) string {
		return "grade-" + strings.ToLower(grade)
	},
	"label": componentLabel,
}

var reportTemplate = template.Must(template.New("report").Funcs(htmlFuncs).Parse(htmlTemplate))

// WriteHTML writes the response as a standalone HTML report
func (f *OutputFormatterImpl) WriteHTML(response *domain.MobileResponse, writer io.Writer) error {
	data := HTMLData{
		GeneratedAt: response.GeneratedAt,
		Duration:    response.DurationMs,
		Version:     response.Version,
		Summary:     response.Summary,
		Reports:     response.Reports,
		Warnings:    response.Warnings,
		Errors:      response.Errors,
		Severities:  []domain.Severity{domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow},
	}
	return reportTemplate.Execute(writer, data)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>mobilescan Report</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #f0f2f7;
        }
        .container { max-width: 1100px; margin: 0 auto; padding: 16px; }
        .header, .component {
            background: white;
            border-radius: 10px;
            padding: 24px;
            margin-bottom: 16px;
            box-shadow: 0 6px 20px rgba(0,0,0,0.08);
        }
        .header h1 { color: #3f51b5; margin-bottom: 6px; }
        .subtitle { color: #666; font-size: 14px; }
        .score-badge {
            display: inline-block;
            padding: 8px 18px;
            border-radius: 50px;
            font-size: 22px;
            font-weight: bold;
            margin: 10px 0;
        }
        .grade-a { background: #4caf50; color: white; }
        .grade-b { background: #8bc34a; color: white; }
        .grade-c { background: #ff9800; color: white; }
        .grade-d { background: #ff5722; color: white; }
        .grade-f { background: #f44336; color: white; }
        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(140px, 1fr));
            gap: 12px;
            margin: 16px 0;
        }
        .metric-card { background: #f8f9fa; padding: 14px; border-radius: 8px; text-align: center; }
        .metric-value { font-size: 26px; font-weight: bold; color: #3f51b5; }
        .metric-label { color: #666; font-size: 13px; }
        .table { width: 100%; border-collapse: collapse; margin: 12px 0; font-size: 14px; }
        .table th, .table td { padding: 8px; text-align: left; border-bottom: 1px solid #ddd; vertical-align: top; }
        .table th { background: #f8f9fa; font-weight: 600; }
        .priority { font-weight: 700; padding: 2px 8px; border-radius: 4px; color: white; }
        .priority-critical, .severity-critical { background: #b71c1c; }
        .priority-high, .severity-high { background: #f44336; }
        .priority-medium, .severity-medium { background: #ff9800; }
        .priority-low, .severity-low { background: #4caf50; }
        .severity { font-size: 12px; padding: 1px 6px; border-radius: 4px; color: white; }
        .score-excellent { color: #2e7d32; }
        .score-good { color: #558b2f; }
        .score-fair { color: #ef6c00; }
        .score-poor { color: #c62828; }
        .subscores { color: #666; font-size: 13px; margin: 6px 0; }
        .recommendations h4 { margin-top: 10px; font-size: 14px; }
        .recommendations ul { margin-left: 20px; font-size: 14px; }
        .failed { border-left: 4px solid #f44336; }
        @media (max-width: 640px) {
            .container { padding: 8px; }
            .header, .component { padding: 14px; }
            .table { font-size: 12px; }
        }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>mobilescan Report</h1>
        <div class="subtitle">Generated {{.GeneratedAt}} in {{.Duration}}ms &middot; version {{.Version}}</div>
        <div class="score-badge {{gradeClass .Summary.Grade}}" id="grade">Grade {{.Summary.Grade}}</div>
        <div class="metric-grid" id="summary">
            <div class="metric-card"><div class="metric-value">{{.Summary.TotalComponents}}</div><div class="metric-label">Components</div></div>
            <div class="metric-card"><div class="metric-value">{{printf "%.1f" .Summary.AverageScore}}</div><div class="metric-label">Average score</div></div>
            <div class="metric-card"><div class="metric-value">{{.Summary.MinScore}}</div><div class="metric-label">Lowest score</div></div>
            <div class="metric-card"><div class="metric-value">{{.Summary.TotalIssues}}</div><div class="metric-label">Issues</div></div>
            {{- range .Severities}}
            <div class="metric-card"><div class="metric-value">{{index $.Summary.SeverityCounts .}}</div><div class="metric-label">{{.}}</div></div>
            {{- end}}
        </div>
        {{- if .Summary.Urgent}}
        <p><strong>Fix first:</strong> {{join .Summary.Urgent ", "}}</p>
        {{- end}}
    </div>

    {{- range .Reports}}
    {{- if .Result}}
    <div class="component" data-priority="{{.Result.Priority}}">
        <h3>{{label .Component}} <span class="priority priority-{{.Result.Priority}}">{{upper .Result.Priority}}</span></h3>
        <div>Score <strong class="score-{{scoreQuality .Result.OverallScore}}">{{.Result.OverallScore}}</strong> &middot; {{.Result.Category}}</div>
        <div class="subscores">{{range $i, $s := .Result.SubScores}}{{if $i}}, {{end}}{{$s.Evaluator}} {{$s.Value}}{{end}}</div>
        {{- $issues := .Result.All}}
        {{- if $issues}}
        <table class="table issues">
            <thead><tr><th>Line</th><th>Severity</th><th>Issue</th><th>Fix</th></tr></thead>
            <tbody>
            {{- range $issues}}
                <tr><td>{{if .Line}}{{.Line}}{{end}}</td><td><span class="severity severity-{{.Severity}}">{{.Severity}}</span></td><td><strong>{{.Category}}</strong>: {{.Description}}{{if .DomainImpact}}<br><em>{{.DomainImpact}}</em>{{end}}</td><td>{{.Suggestion}}</td></tr>
            {{- end}}
            </tbody>
        </table>
        {{- end}}
        {{- with .Result.Recommendations}}
        <div class="recommendations">
            {{- if .Immediate}}<h4>Immediate</h4><ul>{{range .Immediate}}<li>{{.}}</li>{{end}}</ul>{{end}}
            {{- if .ShortTerm}}<h4>Short term</h4><ul>{{range .ShortTerm}}<li>{{.}}</li>{{end}}</ul>{{end}}
            {{- if .LongTerm}}<h4>Long term</h4><ul>{{range .LongTerm}}<li>{{.}}</li>{{end}}</ul>{{end}}
        </div>
        {{- end}}
    </div>
    {{- else}}
    <div class="component failed">
        <h3>{{label .Component}}</h3>
        <div>Analysis failed: {{.Error}}</div>
    </div>
    {{- end}}
    {{- end}}

    {{- if .Errors}}
    <div class="component failed" id="errors">
        <h3>Errors</h3>
        <ul>{{range .Errors}}<li>{{.}}</li>{{end}}</ul>
    </div>
    {{- end}}
    {{- if .Warnings}}
    <div class="component" id="warnings">
        <h3>Warnings</h3>
        <ul>{{range .Warnings}}<li>{{.}}</li>{{end}}</ul>
    </div>
    {{- end}}
</div>
</body>
</html>
`
