package database

import (
	"time"
)

// ProjectRecord is a project row in the persistence store. The store is
// the expensive system of record the reloader shields callers from.
type ProjectRecord struct {
	Name        string
	Owner       string
	Description string
	HomepageURL string
	UpdatedAt   *time.Time
	CreatedAt   time.Time
}

// RefreshLogEntry records one completed refresh task execution.
type RefreshLogEntry struct {
	ID          int64
	ProjectName string
	TaskType    string
	Duration    time.Duration
	Error       string
	CreatedAt   time.Time
}
