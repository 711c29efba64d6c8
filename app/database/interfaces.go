package database

import (
	"time"
)

type ProjectRepository interface {
	GetProject(name string) (*ProjectRecord, error)
	GetProjectCount() (int, error)

	UpsertProject(name, owner, description, homepageURL string) error
	UpdateProjectDescription(name, description string) error
	UpdateProjectTimestamp(name string, updatedAt time.Time) error
}

type RefreshLogRepository interface {
	RecordRefresh(projectName, taskType string, duration time.Duration, errMsg string) error

	GetRecentRefreshes(projectName string, limit int) ([]RefreshLogEntry, error)
	GetRefreshCount(projectName string) (int, error)
}
