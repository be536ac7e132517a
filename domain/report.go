package domain

import (
	"context"
	"io"
	"sort"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
)

// SortCriteria represents the criteria for sorting component reports
type SortCriteria string

const (
	SortByScore    SortCriteria = "score"
	SortByName     SortCriteria = "name"
	SortByPriority SortCriteria = "priority"
	SortByIssues   SortCriteria = "issues"
	SortByPath     SortCriteria = "path"
)

// Score thresholds used for quality labels and grades
const (
	ScoreThresholdExcellent = 90
	ScoreThresholdGood      = 80
	ScoreThresholdFair      = 60
	ScoreThresholdPoor      = 40
)

// GradeForScore maps an overall score to a letter grade
func GradeForScore(score int) string {
	switch {
	case score >= ScoreThresholdExcellent:
		return "A"
	case score >= ScoreThresholdGood:
		return "B"
	case score >= 70:
		return "C"
	case score >= ScoreThresholdFair:
		return "D"
	default:
		return "F"
	}
}

// MobileRequest represents a request for a batch mobile-optimization analysis
type MobileRequest struct {
	// Components read by the source reader, in discovery order
	Components []ComponentSource

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	NoOpen       bool

	// Presentation filters (never applied by the analyzer itself)
	MinSeverity Severity
	SortBy      SortCriteria

	// ConfigPath is the configuration file in effect, if any
	ConfigPath string
}

// ComponentReport wraps the result of one component, or the reason it failed
type ComponentReport struct {
	Component ComponentSource `json:"component" yaml:"component"`
	Result    *AnalysisResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error     string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the component could not be analyzed
func (r ComponentReport) Failed() bool {
	return r.Result == nil
}

// ProjectSummary aggregates per-component results
type ProjectSummary struct {
	TotalComponents    int     `json:"total_components" yaml:"total_components"`
	AnalyzedComponents int     `json:"analyzed_components" yaml:"analyzed_components"`
	FailedComponents   int     `json:"failed_components" yaml:"failed_components"`
	AverageScore       float64 `json:"average_score" yaml:"average_score"`
	MinScore           int     `json:"min_score" yaml:"min_score"`
	Grade              string  `json:"grade" yaml:"grade"`
	TotalIssues        int     `json:"total_issues" yaml:"total_issues"`

	SeverityCounts map[Severity]int       `json:"severity_counts" yaml:"severity_counts"`
	PriorityCounts map[PriorityTier]int   `json:"priority_counts" yaml:"priority_counts"`
	CategoryCounts map[DomainCategory]int `json:"category_counts" yaml:"category_counts"`

	// Components needing attention first (critical, then high tier)
	Urgent []string `json:"urgent,omitempty" yaml:"urgent,omitempty"`
}

// NewProjectSummary builds the project-level summary from component reports
func NewProjectSummary(reports []ComponentReport) ProjectSummary {
	summary := ProjectSummary{
		TotalComponents: len(reports),
		SeverityCounts:  make(map[Severity]int),
		PriorityCounts:  make(map[PriorityTier]int),
		CategoryCounts:  make(map[DomainCategory]int),
		MinScore:        100,
	}

	totalScore := 0
	type urgentEntry struct {
		name  string
		rank  int
		score int
	}
	var urgent []urgentEntry

	for _, report := range reports {
		if report.Failed() {
			summary.FailedComponents++
			continue
		}
		r := report.Result
		summary.AnalyzedComponents++
		totalScore += r.OverallScore
		if r.OverallScore < summary.MinScore {
			summary.MinScore = r.OverallScore
		}
		summary.TotalIssues += r.Total()
		for sev, n := range r.CountBySeverity() {
			summary.SeverityCounts[sev] += n
		}
		summary.PriorityCounts[r.Priority]++
		summary.CategoryCounts[r.Category]++

		if r.Priority == PriorityCritical || r.Priority == PriorityHigh {
			urgent = append(urgent, urgentEntry{name: componentLabel(report.Component), rank: r.Priority.Rank(), score: r.OverallScore})
		}
	}

	if summary.AnalyzedComponents > 0 {
		summary.AverageScore = float64(totalScore) / float64(summary.AnalyzedComponents)
	} else {
		summary.MinScore = 0
	}
	summary.Grade = GradeForScore(int(summary.AverageScore + 0.5))

	sort.SliceStable(urgent, func(i, j int) bool {
		if urgent[i].rank != urgent[j].rank {
			return urgent[i].rank > urgent[j].rank
		}
		return urgent[i].score < urgent[j].score
	})
	for _, u := range urgent {
		summary.Urgent = append(summary.Urgent, u.name)
	}

	return summary
}

func componentLabel(c ComponentSource) string {
	if c.Path != "" {
		return c.Path
	}
	return c.Name
}

// MobileResponse represents the complete batch analysis result
type MobileResponse struct {
	Reports     []ComponentReport `json:"reports" yaml:"reports"`
	Summary     ProjectSummary    `json:"summary" yaml:"summary"`
	Warnings    []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors      []string          `json:"errors,omitempty" yaml:"errors,omitempty"`
	GeneratedAt string            `json:"generated_at" yaml:"generated_at"`
	DurationMs  int64             `json:"duration_ms" yaml:"duration_ms"`
	Version     string            `json:"version" yaml:"version"`
	Config      interface{}       `json:"config,omitempty" yaml:"config,omitempty"`
}

// MobileService defines the batch analysis service
type MobileService interface {
	// Analyze analyzes every component in the request
	Analyze(ctx context.Context, req MobileRequest) (*MobileResponse, error)

	// AnalyzeComponent analyzes a single component
	AnalyzeComponent(ctx context.Context, component ComponentSource) (*AnalysisResult, error)
}

// ComponentReader discovers and reads component sources
type ComponentReader interface {
	// CollectComponentFiles finds component files in the given paths
	CollectComponentFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadComponents reads the given files into component sources.
	// Files that cannot be read are reported as warnings.
	ReadComponents(files []string) ([]ComponentSource, []string)

	// IsComponentFile checks whether a path looks like a component file
	IsComponentFile(path string) bool
}

// OutputFormatter defines the interface for formatting analysis results
type OutputFormatter interface {
	// Format renders the response into a string
	Format(response *MobileResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *MobileResponse, format OutputFormat, writer io.Writer) error
}
