package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/analyzer"
	"github.com/ludo-technologies/mobilescan/internal/config"
	"github.com/ludo-technologies/mobilescan/internal/version"
)

// MobileServiceImpl implements domain.MobileService on top of the analyzer
type MobileServiceImpl struct {
	analyzer *analyzer.Analyzer
	executor domain.ParallelExecutor
	logger   *slog.Logger
}

// NewMobileService creates a service with the given analyzer options and a
// default executor
func NewMobileService(opts analyzer.Options) *MobileServiceImpl {
	return &MobileServiceImpl{
		analyzer: analyzer.New(opts),
		executor: NewParallelExecutor(),
		logger:   slog.Default(),
	}
}

// NewMobileServiceFromConfig creates a service from configuration with progress tracking
func NewMobileServiceFromConfig(cfg *config.Config, pm domain.ProgressManager) *MobileServiceImpl {
	return &MobileServiceImpl{
		analyzer: analyzer.New(AnalyzerOptions(cfg)),
		executor: NewParallelExecutorWithProgress(&cfg.Performance, pm),
		logger:   slog.Default(),
	}
}

// WithExecutor replaces the executor
func (s *MobileServiceImpl) WithExecutor(executor domain.ParallelExecutor) *MobileServiceImpl {
	s.executor = executor
	return s
}

// WithLogger replaces the logger
func (s *MobileServiceImpl) WithLogger(logger *slog.Logger) *MobileServiceImpl {
	s.logger = logger
	return s
}

// Options returns the effective analyzer options
func (s *MobileServiceImpl) Options() analyzer.Options {
	return s.analyzer.Options()
}

// AnalyzeComponent analyzes a single component
func (s *MobileServiceImpl) AnalyzeComponent(ctx context.Context, component domain.ComponentSource) (*domain.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.analyzer.Analyze(component), nil
}

// Analyze analyzes every component of the request concurrently. A component
// that fails is reported in place and never aborts the batch; reports keep
// the request order.
func (s *MobileServiceImpl) Analyze(ctx context.Context, req domain.MobileRequest) (*domain.MobileResponse, error) {
	start := time.Now()

	reports := make([]domain.ComponentReport, len(req.Components))
	tasks := make([]domain.ExecutableTask, len(req.Components))
	for i, component := range req.Components {
		reports[i].Component = component
		tasks[i] = &componentTask{
			name:      taskName(i, component),
			component: component,
			analyzer:  s.analyzer,
			slot:      &reports[i],
		}
	}

	response := &domain.MobileResponse{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}

	if err := s.executor.Execute(ctx, tasks); err != nil {
		var agg *AggregatedError
		if !errors.As(err, &agg) {
			return nil, domain.NewAnalysisError("batch analysis failed", err)
		}
		failures := agg.ByTask()

		for i, t := range tasks {
			failure, failed := failures[t.Name()]
			if !failed {
				continue
			}
			reports[i].Result = nil
			reports[i].Error = failure.Error()
			response.Errors = append(response.Errors, fmt.Sprintf("%s: %v", componentLabel(reports[i].Component), failure))
			s.logger.Warn("component analysis failed",
				"component", componentLabel(reports[i].Component),
				"error", failure)
		}
	}

	for i := range reports {
		report := &reports[i]
		if report.Result == nil {
			if report.Error == "" {
				report.Error = "not analyzed"
			}
			continue
		}
		for _, w := range report.Result.Warnings {
			s.logger.Debug("evaluator recovered", "component", componentLabel(report.Component), "warning", w)
		}
	}

	response.Reports = reports
	response.Summary = domain.NewProjectSummary(reports)
	response.DurationMs = time.Since(start).Milliseconds()
	return response, nil
}

// componentTask analyzes one component into its report slot
type componentTask struct {
	name      string
	component domain.ComponentSource
	analyzer  *analyzer.Analyzer
	slot      *domain.ComponentReport
}

func (t *componentTask) Name() string { return t.name }

func (t *componentTask) IsEnabled() bool { return true }

func (t *componentTask) Execute(ctx context.Context) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := t.analyzer.Analyze(t.component)
	t.slot.Result = result
	return result, nil
}

// taskName is unique per batch so failures can be matched back to their slot
func taskName(i int, c domain.ComponentSource) string {
	return fmt.Sprintf("%d:%s", i, componentLabel(c))
}

func componentLabel(c domain.ComponentSource) string {
	if c.Path != "" {
		return c.Path
	}
	return c.Name
}
