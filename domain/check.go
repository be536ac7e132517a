package domain

// CheckResult represents the result of a mobile quality gate
type CheckResult struct {
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	Violations  []CheckViolation `json:"violations"`
	Summary     CheckSummary     `json:"summary"`
	Duration    int64            `json:"duration_ms"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}

// CheckViolation represents a single threshold violation
type CheckViolation struct {
	Component string `json:"component"`           // Component path or name
	Rule      string `json:"rule"`                // min-score, fail-on, critical-touch, etc.
	Severity  string `json:"severity"`            // error, warning
	Message   string `json:"message"`             // Human-readable description
	Location  string `json:"location,omitempty"`  // File:line if applicable
	Actual    string `json:"actual"`              // Actual value
	Threshold string `json:"threshold,omitempty"` // Configured threshold
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	ComponentsAnalyzed int     `json:"components_analyzed"`
	ComponentsFailed   int     `json:"components_failed"`
	TotalViolations    int     `json:"total_violations"`
	AverageScore       float64 `json:"average_score"`
	CriticalComponents int     `json:"critical_components"`
	HighComponents     int     `json:"high_components"`
}
