package service

import (
	"bytes"
	"testing"

	"github.com/ludo-technologies/mobilescan/domain"
)

func TestNewProgressManager_NonInteractive(t *testing.T) {
	// When disabled, should return NoOpProgressManager
	pm := NewProgressManager(false)
	if pm.IsInteractive() {
		t.Error("expected non-interactive progress manager when disabled")
	}

	var _ domain.ProgressManager = pm
}

func TestNewProgressManager_CI(t *testing.T) {
	t.Setenv("CI", "true")

	pm := NewProgressManager(true)
	if pm.IsInteractive() {
		t.Error("expected non-interactive progress manager in CI")
	}
}

func TestProgressManagerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManagerWithWriter(&buf)

	if !pm.IsInteractive() {
		t.Error("expected writer-backed manager to be interactive")
	}

	task := pm.StartTask("Analyzing components", 3)
	task.Increment(1)
	task.Describe("Checking touch targets")
	task.Increment(2)
	task.Complete()
	pm.Close()

	if buf.Len() == 0 {
		t.Error("expected progress output to be written")
	}
	if len(pm.tasks) != 0 {
		t.Errorf("expected tasks to be cleared on Close, got %d", len(pm.tasks))
	}
}

func TestNoOpProgressManager(t *testing.T) {
	pm := &NoOpProgressManager{}

	if pm.IsInteractive() {
		t.Error("expected NoOpProgressManager.IsInteractive() to return false")
	}

	task := pm.StartTask("test", 100)
	if task == nil {
		t.Fatal("expected non-nil task from StartTask")
	}

	// All operations should be no-ops (not panic)
	task.Increment(10)
	task.Describe("testing")
	task.Complete()

	pm.Close()
}

func TestProgressManagerImpl_Interface(t *testing.T) {
	var _ domain.ProgressManager = &ProgressManagerImpl{}
	var _ domain.TaskProgress = &TaskProgressImpl{}
	var _ domain.TaskProgress = &NoOpTaskProgress{}
}
