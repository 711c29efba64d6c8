package tasks

import (
	"context"
	"time"

	"github.com/seshireddy/project-reloader/app/project"
)

// StatusTask periodically emits the project's current cached state. It
// runs on the same scheduling path as the refresh tasks, offset by an
// initial delay so the first report lands after the first refreshes.
type StatusTask struct {
	Task
	project *project.Project
}

func NewStatusTask(proj *project.Project, initialDelay time.Duration) *StatusTask {
	task := NewTask(TaskTypeStatus, proj.Name())
	task.InitialDelay = initialDelay

	return &StatusTask{
		Task:    task,
		project: proj,
	}
}

func (t *StatusTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.project.LogStatus()

	return nil
}
