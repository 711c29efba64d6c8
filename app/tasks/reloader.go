package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/seshireddy/project-reloader/app/database"
	"github.com/seshireddy/project-reloader/app/project"
)

var _ ProjectReloaderInterface = (*Reloader)(nil)

var (
	ErrUnsupportedProjectType = errors.New("unsupported project type")
	ErrAlreadyStarted         = errors.New("reloader already started")
	ErrStopped                = errors.New("reloader already stopped")
	ErrNotRunning             = errors.New("reloader is not running")
	ErrQueueFull              = errors.New("task queue is full")
)

// State of a reloader. Transitions are Created -> Running -> Stopped;
// a stopped reloader cannot be started again.
type State string

const (
	StateCreated State = "created"
	StateRunning State = "running"
	StateStopped State = "stopped"
)

const executionTimeout = 5 * time.Minute

type Options struct {
	WorkerCount    int           // 0 sizes the pool to task count + 1
	ReloadInterval time.Duration // default 15s
	StatusDelay    time.Duration // default 1s
	StopTimeout    time.Duration // default 60s
	UserAgent      string
}

// Reloader keeps one project's cached data fresh. It owns a bounded
// worker pool and fires every bound task at a fixed rate, starting
// immediately on Start, until Stop drains the pool.
type Reloader struct {
	proj       *project.Project
	tasks      []TaskInterface
	refreshLog database.RefreshLogRepository
	opts       Options

	mu    sync.Mutex
	state State

	execCtx     context.Context
	execCancel  context.CancelFunc
	schedCtx    context.Context
	schedCancel context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface

	counts map[TaskType]*atomic.Uint64
}

// NewReloader builds the reloader for a project based on its declared
// type. Static projects only refresh login statistics; live projects
// additionally refresh details and last update time. The periodic
// status emitter is a regular task on the same scheduling path.
func NewReloader(proj *project.Project, projectConfig *project.Config,
	projectRepo database.ProjectRepository, refreshLog database.RefreshLogRepository,
	httpClient *http.Client, activityParser *project.ActivityParser,
	extractor *project.DescriptionExtractor, opts Options) (*Reloader, error) {

	timeout := time.Duration(projectConfig.Settings.Timeout) * time.Second

	var taskList []TaskInterface
	switch proj.Type() {
	case project.TypeStatic:
		taskList = []TaskInterface{
			NewStatisticsTask(proj, projectConfig.StatsURL, httpClient, opts.UserAgent, timeout),
		}
	case project.TypeLive:
		taskList = []TaskInterface{
			NewDetailsTask(proj, projectRepo, httpClient, extractor, opts.UserAgent, timeout),
			NewLastUpdateTask(proj, projectConfig.ActivityURL, httpClient, activityParser, projectRepo, opts.UserAgent, timeout),
			NewStatisticsTask(proj, projectConfig.StatsURL, httpClient, opts.UserAgent, timeout),
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProjectType, proj.Type())
	}

	if opts.StatusDelay == 0 {
		opts.StatusDelay = 1 * time.Second
	}

	taskList = append(taskList, NewStatusTask(proj, opts.StatusDelay))

	return newReloader(proj, taskList, refreshLog, opts), nil
}

func newReloader(proj *project.Project, taskList []TaskInterface,
	refreshLog database.RefreshLogRepository, opts Options) *Reloader {

	if opts.ReloadInterval <= 0 {
		opts.ReloadInterval = 15 * time.Second
	}
	if opts.StatusDelay < 0 {
		opts.StatusDelay = 0
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = 60 * time.Second
	}

	counts := make(map[TaskType]*atomic.Uint64, len(taskList))
	for _, task := range taskList {
		counts[task.GetType()] = &atomic.Uint64{}
	}

	return &Reloader{
		proj:       proj,
		tasks:      taskList,
		refreshLog: refreshLog,
		opts:       opts,
		state:      StateCreated,
		counts:     counts,
	}
}

// Tasks returns the bound task set in scheduling order.
func (r *Reloader) Tasks() []TaskInterface {
	return r.tasks
}

func (r *Reloader) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Counts returns the number of completed executions per task type.
func (r *Reloader) Counts() map[TaskType]uint64 {
	countsCopy := make(map[TaskType]uint64, len(r.counts))
	for taskType, count := range r.counts {
		countsCopy[taskType] = count.Load()
	}
	return countsCopy
}

// Start transitions the reloader to Running, spawns the worker pool and
// schedules every bound task at a fixed rate, firing immediately.
// Starting a running or stopped reloader is an error.
func (r *Reloader) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateRunning:
		return ErrAlreadyStarted
	case StateStopped:
		return ErrStopped
	}
	r.state = StateRunning

	slog.Info("Starting project data reloading",
		"project", r.proj.Name(),
		"type", string(r.proj.Type()),
		"tasks", len(r.tasks),
		"interval", r.opts.ReloadInterval.String())

	workerCount := r.opts.WorkerCount
	if workerCount <= 0 {
		workerCount = len(r.tasks) + 1
	}

	// All tasks fire at t=0 simultaneously; the queue holds a full
	// round per task so fixed-rate firings rarely block the tickers.
	r.taskQueue = make(chan TaskInterface, len(r.tasks)*2)

	r.execCtx, r.execCancel = context.WithCancel(context.Background())
	r.schedCtx, r.schedCancel = context.WithCancel(r.execCtx)

	for i := 0; i < workerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	for _, task := range r.tasks {
		r.wg.Add(1)
		go r.schedule(task)
	}

	return nil
}

// Stop halts new task firings and waits for in-flight and queued
// executions to finish, up to the configured grace window. Executions
// still running when the window elapses are cancelled via context.
// Stop never blocks past the grace window. Stopping a reloader that is
// not running is a no-op.
func (r *Reloader) Stop() error {
	r.mu.Lock()
	if r.state != StateRunning {
		r.mu.Unlock()
		return nil
	}
	r.state = StateStopped
	r.mu.Unlock()

	slog.Info("Stopping project data reloading", "project", r.proj.Name())

	r.schedCancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(r.opts.StopTimeout):
		slog.Warn("Shutdown grace window elapsed, cancelling in-flight executions",
			"project", r.proj.Name(),
			"timeout", r.opts.StopTimeout.String())
	}

	r.execCancel()
	return nil
}

// EnqueueNow fires a single out-of-schedule execution of the task with
// the given type, subject to the same worker pool and overlap rules.
func (r *Reloader) EnqueueNow(taskType TaskType) error {
	r.mu.Lock()
	if r.state != StateRunning {
		r.mu.Unlock()
		return ErrNotRunning
	}
	queue := r.taskQueue
	schedCtx := r.schedCtx
	r.mu.Unlock()

	for _, task := range r.tasks {
		if task.GetType() != taskType {
			continue
		}
		select {
		case queue <- task:
			return nil
		case <-schedCtx.Done():
			return ErrNotRunning
		default:
			return ErrQueueFull
		}
	}

	return fmt.Errorf("no task of type %q bound to project %q", taskType, r.proj.Name())
}

// schedule runs one task's fixed-rate timer. The first firing happens
// right away (after the task's initial delay, if any); later firings
// are anchored to the ticker, not to execution completion.
func (r *Reloader) schedule(task TaskInterface) {
	defer r.wg.Done()

	if delay := task.GetInitialDelay(); delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.schedCtx.Done():
			return
		}
	}

	r.fire(task)

	ticker := time.NewTicker(r.opts.ReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.fire(task)
		case <-r.schedCtx.Done():
			return
		}
	}
}

func (r *Reloader) fire(task TaskInterface) {
	select {
	case r.taskQueue <- task:
	case <-r.schedCtx.Done():
	}
}

func (r *Reloader) worker(id int) {
	defer r.wg.Done()

	for {
		select {
		case task := <-r.taskQueue:
			r.executeTask(id, task)

		case <-r.schedCtx.Done():
			// Finish already-queued firings before exiting.
			for {
				select {
				case task := <-r.taskQueue:
					r.executeTask(id, task)
				default:
					return
				}
			}
		}
	}
}

// executeTask runs a single firing. Failures (including panics) are
// contained here: they are logged and recorded, and never reach the
// worker pool or sibling tasks.
func (r *Reloader) executeTask(workerID int, task TaskInterface) {
	if r.execCtx.Err() != nil {
		return
	}

	if !task.TryAcquire() {
		slog.Debug("Skipping task firing, previous execution still in flight",
			"type", string(task.GetType()),
			"project", task.GetProjectName())
		return
	}
	defer task.Release()

	task.Start()

	taskCtx, cancel := context.WithTimeout(r.execCtx, executionTimeout)
	defer cancel()

	err := func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("task panicked: %v", rec)
			}
		}()
		return task.Execute(taskCtx)
	}()

	r.counts[task.GetType()].Add(1)

	if err != nil {
		slog.Error("Worker task execution failed",
			"worker_id", workerID,
			"type", string(task.GetType()),
			"id", task.GetID(),
			"project", task.GetProjectName(),
			"error", err)
	}

	if r.refreshLog != nil && task.GetType() != TaskTypeStatus {
		errMsg := ""
		if err != nil {
			errMsg = err.Error()
		}
		if logErr := r.refreshLog.RecordRefresh(task.GetProjectName(), string(task.GetType()), task.GetDuration(), errMsg); logErr != nil {
			slog.Warn("Failed to record refresh", "type", string(task.GetType()), "project", task.GetProjectName(), "error", logErr)
		}
	}
}
