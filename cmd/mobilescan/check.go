package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mobilescan/app"
	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/config"
	"github.com/ludo-technologies/mobilescan/internal/constants"
	"github.com/ludo-technologies/mobilescan/service"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

// checkOptions holds the check command flags
type checkOptions struct {
	minScore   int
	failOn     string
	verbose    bool
	jsonOutput bool
	configPath string
}

func checkCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Mobile readiness gate for CI/CD pipelines",
		Long: `Analyze components and fail when scores or priorities cross thresholds.

Exit codes:
  0 - All checks pass
  1 - Threshold(s) violated
  2 - Analysis error (no components, unreadable path, bad config)

Examples:
  # Check with thresholds from config (defaults: min score 70, fail on critical)
  mobilescan check src/

  # Stricter gate
  mobilescan check --min-score 85 --fail-on high src/

  # JSON output for machine parsing
  mobilescan check --json src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntVar(&opts.minScore, "min-score", config.DefaultMinScore,
		"Minimum mobile score per component (0 disables)")
	cmd.Flags().StringVar(&opts.failOn, "fail-on", config.DefaultFailOn,
		"Fail when a component reaches this priority: critical, high, medium, low (empty disables)")
	cmd.Flags().BoolVarP(&opts.verbose, "details", "d", false,
		"Show detailed output including critical issues")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	if len(args) == 0 {
		return &CheckExitError{Code: constants.ExitCodeError, Message: "no paths specified"}
	}

	cfg, err := config.LoadConfigWithTarget(opts.configPath, args[0])
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	// Apply config values for flags not explicitly set on CLI
	if !cmd.Flags().Changed("min-score") {
		opts.minScore = cfg.Check.MinScore
	}
	if !cmd.Flags().Changed("fail-on") {
		opts.failOn = cfg.Check.FailOn
	}

	thresholds := app.CheckThresholds{MinScore: opts.minScore, Verbose: opts.verbose}
	if opts.failOn != "" {
		severity, err := domain.ParseSeverity(opts.failOn)
		if err != nil {
			return &CheckExitError{Code: constants.ExitCodeError, Message: fmt.Sprintf("invalid --fail-on: %v", err)}
		}
		thresholds.FailOn = domain.PriorityTier(severity)
	}

	// Create progress manager (auto-disabled for JSON output or non-TTY/CI)
	pm := service.NewProgressManager(!opts.jsonOutput)
	defer pm.Close()

	svc := service.NewMobileServiceFromConfig(cfg, pm)
	uc, err := app.NewMobileUseCaseBuilder().
		WithService(svc).
		WithFileHelper(newFileHelper(cfg)).
		Build()
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: err.Error()}
	}

	response, err := uc.Execute(cmd.Context(), args, sourceOptions(cfg), domain.MobileRequest{})
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: err.Error()}
	}

	result := app.EvaluateCheck(response, thresholds)

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return outputCheckJSON(out, result)
	}
	return outputCheckText(out, result, thresholds, opts.verbose)
}

func outputCheckText(w io.Writer, result *domain.CheckResult, thresholds app.CheckThresholds, verbose bool) error {
	if result.Passed {
		fmt.Fprintln(w, "PASS: All mobile checks passed")
		if verbose {
			fmt.Fprintf(w, "  Components analyzed: %d\n", result.Summary.ComponentsAnalyzed)
			fmt.Fprintf(w, "  Average score: %.1f\n", result.Summary.AverageScore)
			fmt.Fprintf(w, "  Thresholds: min score %d, fail on %s\n", thresholds.MinScore, failOnLabel(thresholds.FailOn))
			fmt.Fprintf(w, "  Duration: %dms\n", result.Duration)
		}
		return nil
	}

	fmt.Fprintln(w, "FAIL: Mobile check failed")
	fmt.Fprintf(w, "  Violations: %d\n", result.Summary.TotalViolations)

	for _, v := range result.Violations {
		severity := "ERROR"
		if v.Severity == "warning" {
			severity = "WARN"
		}
		fmt.Fprintf(w, "  [%s] %s (%s): %s\n", severity, v.Component, v.Rule, v.Message)
		if verbose && v.Location != "" {
			fmt.Fprintf(w, "         at %s\n", v.Location)
		}
	}

	if verbose {
		fmt.Fprintf(w, "\nSummary:\n")
		fmt.Fprintf(w, "  Components: %d analyzed, %d failed\n", result.Summary.ComponentsAnalyzed, result.Summary.ComponentsFailed)
		fmt.Fprintf(w, "  Average score: %.1f\n", result.Summary.AverageScore)
		fmt.Fprintf(w, "  Critical components: %d, high: %d\n", result.Summary.CriticalComponents, result.Summary.HighComponents)
		fmt.Fprintf(w, "  Duration: %dms\n", result.Duration)
	}

	return &CheckExitError{Code: constants.ExitCodeViolation, Message: ""}
}

func outputCheckJSON(w io.Writer, result *domain.CheckResult) error {
	if err := service.WriteJSON(w, result); err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}

	if !result.Passed {
		return &CheckExitError{Code: constants.ExitCodeViolation, Message: ""}
	}
	return nil
}

func failOnLabel(tier domain.PriorityTier) string {
	if tier == "" {
		return "nothing"
	}
	return strings.ToLower(string(tier))
}
