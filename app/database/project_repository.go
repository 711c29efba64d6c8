package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ ProjectRepository = (*ProjectRepositorySQLite)(nil)

// ProjectRepositorySQLite handles database operations for projects
type ProjectRepositorySQLite struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepositorySQLite {
	return &ProjectRepositorySQLite{db: db}
}

func (r *ProjectRepositorySQLite) GetProject(name string) (*ProjectRecord, error) {
	var record ProjectRecord
	var updatedAt sql.NullTime

	err := r.db.QueryRow(`
		SELECT name, owner, description, homepage_url, updated_at, created_at
		FROM projects
		WHERE name = ?
	`, name).Scan(&record.Name, &record.Owner, &record.Description,
		&record.HomepageURL, &updatedAt, &record.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if updatedAt.Valid {
		record.UpdatedAt = &updatedAt.Time
	}

	return &record, nil
}

func (r *ProjectRepositorySQLite) GetProjectCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

func (r *ProjectRepositorySQLite) UpsertProject(name, owner, description, homepageURL string) error {
	_, err := r.db.Exec(`
		INSERT INTO projects (name, owner, description, homepage_url)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			owner = excluded.owner,
			description = excluded.description,
			homepage_url = excluded.homepage_url
	`, name, owner, description, homepageURL)
	if err != nil {
		return fmt.Errorf("failed to upsert project: %w", err)
	}
	return nil
}

func (r *ProjectRepositorySQLite) UpdateProjectDescription(name, description string) error {
	_, err := r.db.Exec(`
		UPDATE projects SET description = ? WHERE name = ?
	`, description, name)
	if err != nil {
		return fmt.Errorf("failed to update project description: %w", err)
	}
	return nil
}

func (r *ProjectRepositorySQLite) UpdateProjectTimestamp(name string, updatedAt time.Time) error {
	_, err := r.db.Exec(`
		UPDATE projects SET updated_at = ? WHERE name = ?
	`, updatedAt.UTC(), name)
	if err != nil {
		return fmt.Errorf("failed to update project timestamp: %w", err)
	}
	return nil
}
