package tasks

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

type TaskType string

const (
	TaskTypeStatistics TaskType = "login_statistics"
	TaskTypeDetails    TaskType = "project_details"
	TaskTypeLastUpdate TaskType = "last_update_time"
	TaskTypeStatus     TaskType = "status"
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetProjectName() string
	GetInitialDelay() time.Duration
	TryAcquire() bool
	Release()
	Start()
	GetDuration() time.Duration
}

type Task struct {
	ID           string
	Type         TaskType
	ProjectName  string
	InitialDelay time.Duration
	StartedAt    *time.Time

	running int32
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetProjectName() string {
	return t.ProjectName
}

func (t *Task) GetInitialDelay() time.Duration {
	return t.InitialDelay
}

// TryAcquire marks the task as running. It fails when a previous
// execution of the same task has not completed yet, so overlapping
// firings are skipped rather than run in parallel.
func (t *Task) TryAcquire() bool {
	return atomic.CompareAndSwapInt32(&t.running, 0, 1)
}

func (t *Task) Release() {
	atomic.StoreInt32(&t.running, 0)
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, projectName string) Task {
	uniqueID := fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(10000))

	return Task{
		ID:          uniqueID,
		Type:        taskType,
		ProjectName: projectName,
	}
}
