package tasks

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeStatistics, "test-project")

	if task.GetID() == "" {
		t.Error("Expected task to have an ID")
	}
	if task.GetType() != TaskTypeStatistics {
		t.Errorf("Expected type '%s', got '%s'", TaskTypeStatistics, task.GetType())
	}
	if task.GetProjectName() != "test-project" {
		t.Errorf("Expected project name 'test-project', got '%s'", task.GetProjectName())
	}
	if task.GetInitialDelay() != 0 {
		t.Errorf("Expected no initial delay, got %v", task.GetInitialDelay())
	}
}

func TestTaskTryAcquireRelease(t *testing.T) {
	task := NewTask(TaskTypeDetails, "test-project")

	if !task.TryAcquire() {
		t.Fatal("Expected first TryAcquire to succeed")
	}
	if task.TryAcquire() {
		t.Error("Expected TryAcquire to fail while running")
	}

	task.Release()

	if !task.TryAcquire() {
		t.Error("Expected TryAcquire to succeed after Release")
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeLastUpdate, "test-project")

	if task.GetDuration() != 0 {
		t.Errorf("Expected zero duration before Start, got %v", task.GetDuration())
	}

	task.Start()
	time.Sleep(10 * time.Millisecond)

	if task.GetDuration() < 10*time.Millisecond {
		t.Errorf("Expected duration of at least 10ms, got %v", task.GetDuration())
	}
}
