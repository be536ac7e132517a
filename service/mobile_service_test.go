package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/analyzer"
	"github.com/ludo-technologies/mobilescan/internal/config"
)

const balanceCard = `export function BalanceCard({ balance }) {
  return (
    <div className="card grid grid-cols-3 gap-4">
      <h2>Account balance</h2>
      <button className="w-6 h-6" onClick={refresh}>↻</button>
    </div>
  )
}`

const plainFooter = `export const Footer = () => <footer className="p-4 text-sm">© ACME</footer>`

func batch() []domain.ComponentSource {
	return []domain.ComponentSource{
		{Name: "BalanceCard", Path: "src/BalanceCard.tsx", Content: balanceCard},
		{Name: "Footer", Path: "src/Footer.tsx", Content: plainFooter},
		{Name: "Empty", Path: "src/Empty.tsx", Content: ""},
	}
}

// failingExecutor runs tasks through the real executor but fails the named one
type failingExecutor struct {
	inner domain.ParallelExecutor
	fail  string
}

func (e *failingExecutor) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	var keep []domain.ExecutableTask
	var agg AggregatedError
	for _, t := range tasks {
		if strings.HasSuffix(t.Name(), e.fail) {
			agg.Errors = append(agg.Errors, TaskError{TaskName: t.Name(), Err: errors.New("boom")})
			continue
		}
		keep = append(keep, t)
	}
	if err := e.inner.Execute(ctx, keep); err != nil {
		return err
	}
	if len(agg.Errors) > 0 {
		return &agg
	}
	return nil
}

func TestMobileService_Analyze(t *testing.T) {
	svc := NewMobileService(analyzer.DefaultOptions())

	resp, err := svc.Analyze(context.Background(), domain.MobileRequest{Components: batch()})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(resp.Reports) != 3 {
		t.Fatalf("Expected 3 reports, got %d", len(resp.Reports))
	}
	for i, name := range []string{"BalanceCard", "Footer", "Empty"} {
		if resp.Reports[i].Component.Name != name {
			t.Errorf("Report %d: expected %s, got %s", i, name, resp.Reports[i].Component.Name)
		}
		if resp.Reports[i].Failed() {
			t.Errorf("Report %d should not fail: %s", i, resp.Reports[i].Error)
		}
	}

	card := resp.Reports[0].Result
	if card.Category != domain.CategoryDashboardCard {
		t.Errorf("Expected dashboard-card, got %s", card.Category)
	}
	if len(card.TouchTargets) == 0 {
		t.Error("Expected the 24px refresh button to be reported")
	}

	empty := resp.Reports[2].Result
	if empty.OverallScore != 100 || empty.Total() != 0 {
		t.Errorf("Expected empty component to score 100 with no issues, got %d/%d", empty.OverallScore, empty.Total())
	}

	if resp.Summary.AnalyzedComponents != 3 || resp.Summary.FailedComponents != 0 {
		t.Errorf("Unexpected summary: %+v", resp.Summary)
	}
	if resp.Version == "" || resp.GeneratedAt == "" {
		t.Error("Expected version and timestamp to be set")
	}
}

func TestMobileService_FailureIsolated(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	svc := NewMobileService(analyzer.DefaultOptions()).
		WithExecutor(&failingExecutor{inner: NewParallelExecutor(), fail: "src/Footer.tsx"}).
		WithLogger(logger)

	resp, err := svc.Analyze(context.Background(), domain.MobileRequest{Components: batch()})
	if err != nil {
		t.Fatalf("Analyze should not fail for a single component: %v", err)
	}

	if !resp.Reports[1].Failed() || resp.Reports[1].Error != "boom" {
		t.Errorf("Expected Footer to fail with boom, got %+v", resp.Reports[1])
	}
	if resp.Reports[0].Failed() || resp.Reports[2].Failed() {
		t.Error("Expected the other components to be analyzed")
	}
	if resp.Summary.FailedComponents != 1 || resp.Summary.AnalyzedComponents != 2 {
		t.Errorf("Unexpected summary: %+v", resp.Summary)
	}
	if len(resp.Errors) != 1 || !strings.Contains(resp.Errors[0], "src/Footer.tsx") {
		t.Errorf("Expected one error naming the component, got %v", resp.Errors)
	}
	if !strings.Contains(logs.String(), "component analysis failed") || !strings.Contains(logs.String(), "component=src/Footer.tsx") {
		t.Errorf("Expected a WARN log for the failed component, got %q", logs.String())
	}
}

func TestMobileService_FromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mobile.DomainEnrichment = false
	cfg.Performance.MaxGoroutines = 2

	svc := NewMobileServiceFromConfig(cfg, &NoOpProgressManager{})
	if svc.Options().DomainEnrichment {
		t.Error("Expected enrichment to follow the config")
	}

	result, err := svc.AnalyzeComponent(context.Background(), batch()[0])
	if err != nil {
		t.Fatalf("AnalyzeComponent failed: %v", err)
	}
	if result.Category != domain.CategoryOther {
		t.Errorf("Expected category other without enrichment, got %s", result.Category)
	}
	if _, ok := result.SubScore(domain.EvaluatorDomainUX); ok {
		t.Error("Expected no domain-ux sub-score without enrichment")
	}
}

func TestMobileService_CancelledContext(t *testing.T) {
	svc := NewMobileService(analyzer.DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.AnalyzeComponent(ctx, batch()[0]); err == nil {
		t.Error("Expected error for cancelled context")
	}

	resp, err := svc.Analyze(ctx, domain.MobileRequest{Components: batch()})
	if err != nil {
		t.Fatalf("Analyze should report per-component failures, got %v", err)
	}
	if resp.Summary.FailedComponents != 3 {
		t.Errorf("Expected all components to fail, got %d", resp.Summary.FailedComponents)
	}
}
