package domain

import "context"

// ProgressManager creates progress trackers for long running work
type ProgressManager interface {
	// StartTask creates a new task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress is rendered to a terminal
	IsInteractive() bool

	// Close finishes all tasks
	Close()
}

// TaskProgress tracks the progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is a unit of work run by a ParallelExecutor
type ExecutableTask interface {
	// Name returns the task name used in error reports
	Name() string

	// Execute runs the task
	Execute(ctx context.Context) (interface{}, error)

	// IsEnabled reports whether the task should run
	IsEnabled() bool
}

// ParallelExecutor runs independent tasks concurrently
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
}
