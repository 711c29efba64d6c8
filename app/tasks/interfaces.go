package tasks

// ProjectReloaderInterface defines the interface for per-project refresh
// scheduling. Used by the main application and the HTTP API to manage
// the background refresh of a project's cached data.
// Example usage:
//
//	reloader, err := NewReloader(project, projectConfig, projectRepo, refreshLog, httpClient, activityParser, extractor, opts)
//	reloader.Start()
//	defer reloader.Stop()
type ProjectReloaderInterface interface {
	Start() error
	Stop() error
	State() State
	Counts() map[TaskType]uint64
	EnqueueNow(taskType TaskType) error
}
