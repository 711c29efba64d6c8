package database

import (
	"fmt"
	"time"
)

var _ RefreshLogRepository = (*RefreshLogRepositorySQLite)(nil)

// RefreshLogRepositorySQLite handles database operations for the refresh log
type RefreshLogRepositorySQLite struct {
	db *DB
}

func NewRefreshLogRepository(db *DB) *RefreshLogRepositorySQLite {
	return &RefreshLogRepositorySQLite{db: db}
}

func (r *RefreshLogRepositorySQLite) RecordRefresh(projectName, taskType string, duration time.Duration, errMsg string) error {
	_, err := r.db.Exec(`
		INSERT INTO refresh_log (project_name, task_type, duration_ms, error)
		VALUES (?, ?, ?, ?)
	`, projectName, taskType, duration.Milliseconds(), errMsg)
	if err != nil {
		return fmt.Errorf("failed to record refresh: %w", err)
	}
	return nil
}

func (r *RefreshLogRepositorySQLite) GetRecentRefreshes(projectName string, limit int) ([]RefreshLogEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, project_name, task_type, duration_ms, error, created_at
		FROM refresh_log
		WHERE project_name = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, projectName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent refreshes: %w", err)
	}
	defer rows.Close()

	var entries []RefreshLogEntry
	for rows.Next() {
		var entry RefreshLogEntry
		var durationMS int64

		err := rows.Scan(&entry.ID, &entry.ProjectName, &entry.TaskType,
			&durationMS, &entry.Error, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan refresh log entry: %w", err)
		}

		entry.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate refresh log entries: %w", err)
	}

	return entries, nil
}

func (r *RefreshLogRepositorySQLite) GetRefreshCount(projectName string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM refresh_log WHERE project_name = ?
	`, projectName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count refreshes: %w", err)
	}
	return count, nil
}
