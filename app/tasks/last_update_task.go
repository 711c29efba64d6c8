package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/seshireddy/project-reloader/app/database"
	"github.com/seshireddy/project-reloader/app/project"
)

// LastUpdateTask refreshes a project's last update time from its
// activity feed, falling back to the timestamp recorded in the
// persistence store when the feed carries no usable dates.
type LastUpdateTask struct {
	Task
	project        *project.Project
	activityURL    string
	httpClient     *http.Client
	activityParser *project.ActivityParser
	projectRepo    database.ProjectRepository
	userAgent      string
	timeout        time.Duration
}

func NewLastUpdateTask(proj *project.Project, activityURL string, httpClient *http.Client, activityParser *project.ActivityParser, projectRepo database.ProjectRepository, userAgent string, timeout time.Duration) *LastUpdateTask {
	return &LastUpdateTask{
		Task:           NewTask(TaskTypeLastUpdate, proj.Name()),
		project:        proj,
		activityURL:    activityURL,
		httpClient:     httpClient,
		activityParser: activityParser,
		projectRepo:    projectRepo,
		userAgent:      userAgent,
		timeout:        timeout,
	}
}

func (t *LastUpdateTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	lastUpdate, feedErr := t.fromActivityFeed(ctx)
	if feedErr != nil {
		slog.Debug("Activity feed unavailable, falling back to persistence store",
			"project", t.ProjectName, "error", feedErr)
	}
	fromFeed := feedErr == nil && lastUpdate != nil

	if lastUpdate == nil {
		record, err := t.projectRepo.GetProject(t.ProjectName)
		if err != nil {
			return fmt.Errorf("failed to load project from persistence store: %w", err)
		}
		if record != nil {
			lastUpdate = record.UpdatedAt
		}
	}

	if lastUpdate == nil {
		if feedErr != nil {
			return fmt.Errorf("no last update time available: %w", feedErr)
		}
		return fmt.Errorf("no last update time available for project %q", t.ProjectName)
	}

	t.project.SetLastUpdatedAt(*lastUpdate)

	if fromFeed {
		if err := t.projectRepo.UpdateProjectTimestamp(t.ProjectName, *lastUpdate); err != nil {
			slog.Warn("Failed to store last update time", "project", t.ProjectName, "error", err)
		}
	}

	slog.Info("Task completed",
		"type", string(t.GetType()),
		"project", t.ProjectName,
		"duration", t.GetDuration(),
		"last_updated_at", lastUpdate.Format(time.RFC3339))

	return nil
}

func (t *LastUpdateTask) fromActivityFeed(ctx context.Context) (*time.Time, error) {
	if t.activityURL == "" {
		return nil, fmt.Errorf("no activity URL configured")
	}

	data, err := fetchURL(ctx, t.httpClient, t.activityURL, t.userAgent, t.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity feed: %w", err)
	}

	lastUpdate, err := t.activityParser.Run(data)
	if err != nil {
		return nil, err
	}

	return lastUpdate, nil
}
