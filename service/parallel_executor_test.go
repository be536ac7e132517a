package service

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/config"
)

// mockTask implements domain.ExecutableTask for testing
type mockTask struct {
	name     string
	enabled  bool
	execFunc func(ctx context.Context) (interface{}, error)
}

func (t *mockTask) Name() string {
	return t.name
}

func (t *mockTask) Execute(ctx context.Context) (interface{}, error) {
	if t.execFunc != nil {
		return t.execFunc(ctx)
	}
	return nil, nil
}

func (t *mockTask) IsEnabled() bool {
	return t.enabled
}

// newMockTask creates a simple mock task
func newMockTask(name string, enabled bool) *mockTask {
	return &mockTask{
		name:    name,
		enabled: enabled,
	}
}

// newMockTaskWithExec creates a mock task with custom execution function
func newMockTaskWithExec(name string, enabled bool, execFunc func(ctx context.Context) (interface{}, error)) *mockTask {
	return &mockTask{
		name:     name,
		enabled:  enabled,
		execFunc: execFunc,
	}
}

func TestNewParallelExecutorFromConfig(t *testing.T) {
	tests := []struct {
		name                string
		cfg                 *config.PerformanceConfig
		expectedConcurrency int
		expectedTimeout     time.Duration
	}{
		{"nil config", nil, runtime.NumCPU(), DefaultTimeout},
		{"zero values", &config.PerformanceConfig{}, runtime.NumCPU(), DefaultTimeout},
		{"explicit", &config.PerformanceConfig{MaxGoroutines: 8, TimeoutSeconds: 120}, 8, 120 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := NewParallelExecutorFromConfig(tt.cfg)
			if executor.maxConcurrency != tt.expectedConcurrency {
				t.Errorf("Expected concurrency %d, got %d", tt.expectedConcurrency, executor.maxConcurrency)
			}
			if executor.timeout != tt.expectedTimeout {
				t.Errorf("Expected timeout %v, got %v", tt.expectedTimeout, executor.timeout)
			}
		})
	}
}

func TestParallelExecutor_Setters(t *testing.T) {
	executor := NewParallelExecutor()
	original := executor.maxConcurrency

	executor.SetMaxConcurrency(0)
	executor.SetTimeout(-time.Second)
	if executor.maxConcurrency != original || executor.timeout != DefaultTimeout {
		t.Errorf("Invalid values should be ignored, got %d / %v", executor.maxConcurrency, executor.timeout)
	}

	executor.SetMaxConcurrency(16)
	executor.SetTimeout(10 * time.Minute)
	if executor.maxConcurrency != 16 || executor.timeout != 10*time.Minute {
		t.Errorf("Expected 16 / 10m, got %d / %v", executor.maxConcurrency, executor.timeout)
	}
}

func TestParallelExecutor_NothingToRun(t *testing.T) {
	tests := []struct {
		name  string
		tasks []domain.ExecutableTask
	}{
		{"empty", nil},
		{"all disabled", []domain.ExecutableTask{newMockTask("Footer.tsx", false), newMockTask("Header.vue", false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewParallelExecutor().Execute(context.Background(), tt.tasks); err != nil {
				t.Errorf("Expected nil, got %v", err)
			}
		})
	}
}

func TestParallelExecutor_RunsEnabledTasks(t *testing.T) {
	var executed atomic.Int32
	count := func(ctx context.Context) (interface{}, error) {
		executed.Add(1)
		return nil, nil
	}
	tasks := []domain.ExecutableTask{
		newMockTaskWithExec("Balance.tsx", true, count),
		newMockTaskWithExec("Ledger.tsx", true, count),
		newMockTaskWithExec("Legacy.tsx", false, count),
	}

	if err := NewParallelExecutor().Execute(context.Background(), tasks); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if executed.Load() != 2 {
		t.Errorf("Expected 2 executions, got %d", executed.Load())
	}
}

func TestParallelExecutor_PartialFailures(t *testing.T) {
	errBalance := errors.New("balance unreadable")
	errBudget := errors.New("budget unreadable")

	tasks := []domain.ExecutableTask{
		newMockTaskWithExec("Balance.tsx", true, func(ctx context.Context) (interface{}, error) {
			return nil, errBalance
		}),
		newMockTask("Ledger.tsx", true),
		newMockTaskWithExec("Budget.svelte", true, func(ctx context.Context) (interface{}, error) {
			return nil, errBudget
		}),
	}

	err := NewParallelExecutor().Execute(context.Background(), tasks)

	var aggErr *AggregatedError
	if !errors.As(err, &aggErr) {
		t.Fatalf("Expected AggregatedError, got %T", err)
	}
	byTask := aggErr.ByTask()
	if len(byTask) != 2 {
		t.Fatalf("Expected 2 failures, got %d", len(byTask))
	}
	if !errors.Is(byTask["Balance.tsx"], errBalance) || !errors.Is(byTask["Budget.svelte"], errBudget) {
		t.Errorf("Expected failures keyed by task, got %v", byTask)
	}
}

func TestParallelExecutor_PanicIsolated(t *testing.T) {
	var executed atomic.Int32
	tasks := []domain.ExecutableTask{
		newMockTaskWithExec("Balance.tsx", true, func(ctx context.Context) (interface{}, error) {
			panic("unexpected markup")
		}),
		newMockTaskWithExec("Ledger.tsx", true, func(ctx context.Context) (interface{}, error) {
			executed.Add(1)
			return nil, nil
		}),
	}

	err := NewParallelExecutor().Execute(context.Background(), tasks)

	var aggErr *AggregatedError
	if !errors.As(err, &aggErr) {
		t.Fatalf("Expected AggregatedError, got %T", err)
	}
	if executed.Load() != 1 {
		t.Errorf("Healthy task should still run, got %d executions", executed.Load())
	}

	var panicErr PanicError
	if !errors.As(aggErr.ByTask()["Balance.tsx"], &panicErr) {
		t.Fatalf("Expected PanicError, got %v", aggErr.ByTask())
	}
	if !strings.Contains(panicErr.Error(), "unexpected markup") {
		t.Errorf("Expected panic value in message, got %q", panicErr.Error())
	}
}

func TestParallelExecutor_Deadlines(t *testing.T) {
	slow := func(ctx context.Context) (interface{}, error) {
		select {
		case <-time.After(5 * time.Second):
			return nil, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	t.Run("timeout", func(t *testing.T) {
		executor := NewParallelExecutor()
		executor.SetTimeout(100 * time.Millisecond)

		err := executor.Execute(context.Background(), []domain.ExecutableTask{newMockTaskWithExec("Chart.tsx", true, slow)})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Expected deadline exceeded, got %v", err)
		}
	})

	t.Run("cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		started := make(chan struct{})
		task := newMockTaskWithExec("Chart.tsx", true, func(ctx context.Context) (interface{}, error) {
			close(started)
			return slow(ctx)
		})

		errChan := make(chan error, 1)
		go func() {
			errChan <- NewParallelExecutor().Execute(ctx, []domain.ExecutableTask{task})
		}()
		<-started
		cancel()

		if err := <-errChan; !errors.Is(err, context.Canceled) {
			t.Errorf("Expected cancellation, got %v", err)
		}
	})
}

func TestParallelExecutor_ConcurrencyLimit(t *testing.T) {
	executor := NewParallelExecutorFromConfig(&config.PerformanceConfig{MaxGoroutines: 2, TimeoutSeconds: 30})

	var current, peak atomic.Int32
	var mu sync.Mutex
	var tasks []domain.ExecutableTask
	for _, name := range []string{"A.tsx", "B.tsx", "C.tsx", "D.tsx", "E.tsx"} {
		tasks = append(tasks, newMockTaskWithExec(name, true, func(ctx context.Context) (interface{}, error) {
			n := current.Add(1)
			mu.Lock()
			if n > peak.Load() {
				peak.Store(n)
			}
			mu.Unlock()
			time.Sleep(50 * time.Millisecond)
			current.Add(-1)
			return nil, nil
		}))
	}

	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if peak.Load() > 2 {
		t.Errorf("Concurrency should not exceed 2, got %d", peak.Load())
	}
}

func TestParallelExecutor_ProgressIntegration(t *testing.T) {
	var increments atomic.Int32
	var completed atomic.Bool

	pm := &mockProgressManager{
		startTaskFunc: func(description string, total int) domain.TaskProgress {
			if description != "Scoring components" || total != 3 {
				t.Errorf("Unexpected task %q with total %d", description, total)
			}
			return &mockTaskProgress{
				incrementFunc: func(n int) { increments.Add(int32(n)) },
				completeFunc:  func() { completed.Store(true) },
			}
		},
	}

	executor := NewParallelExecutorWithProgress(&config.PerformanceConfig{MaxGoroutines: 4}, pm)
	executor.SetDescription("Scoring components")

	tasks := []domain.ExecutableTask{
		newMockTask("Balance.tsx", true),
		newMockTask("Ledger.tsx", true),
		newMockTask("Budget.svelte", true),
	}
	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if increments.Load() != 3 {
		t.Errorf("Expected 3 increments, got %d", increments.Load())
	}
	if !completed.Load() {
		t.Error("Expected Complete() to be called")
	}
}

func TestAggregatedError(t *testing.T) {
	cause := errors.New("read failed")

	tests := []struct {
		name     string
		errors   []TaskError
		contains string
		unwraps  error
	}{
		{"no errors", nil, "no errors", nil},
		{"single error", []TaskError{{TaskName: "Balance.tsx", Err: cause}}, "[Balance.tsx] read failed", cause},
		{
			name: "multiple errors",
			errors: []TaskError{
				{TaskName: "Balance.tsx", Err: cause},
				{TaskName: "Ledger.tsx", Err: errors.New("timeout")},
			},
			contains: "2 tasks failed",
			unwraps:  cause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggErr := &AggregatedError{Errors: tt.errors}
			if !strings.Contains(aggErr.Error(), tt.contains) {
				t.Errorf("Expected error string to contain %q, got %q", tt.contains, aggErr.Error())
			}
			if aggErr.Unwrap() != tt.unwraps {
				t.Errorf("Expected Unwrap %v, got %v", tt.unwraps, aggErr.Unwrap())
			}
		})
	}

	te := TaskError{TaskName: "Ledger.tsx", Err: cause}
	if !errors.Is(te, cause) {
		t.Error("TaskError should unwrap to its cause")
	}
}

// Helper types for testing

type mockProgressManager struct {
	startTaskFunc func(description string, total int) domain.TaskProgress
}

func (m *mockProgressManager) StartTask(description string, total int) domain.TaskProgress {
	if m.startTaskFunc != nil {
		return m.startTaskFunc(description, total)
	}
	return &NoOpTaskProgress{}
}

func (m *mockProgressManager) IsInteractive() bool {
	return false
}

func (m *mockProgressManager) Close() {}

type mockTaskProgress struct {
	incrementFunc func(n int)
	describeFunc  func(description string)
	completeFunc  func()
}

func (m *mockTaskProgress) Increment(n int) {
	if m.incrementFunc != nil {
		m.incrementFunc(n)
	}
}

func (m *mockTaskProgress) Describe(description string) {
	if m.describeFunc != nil {
		m.describeFunc(description)
	}
}

func (m *mockTaskProgress) Complete() {
	if m.completeFunc != nil {
		m.completeFunc()
	}
}
