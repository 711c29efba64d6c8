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

// DetailsTask refreshes a project's details from the persistence store.
// When the store has no description but knows a homepage, the homepage
// is fetched and a readable description extracted and written back.
type DetailsTask struct {
	Task
	project     *project.Project
	projectRepo database.ProjectRepository
	httpClient  *http.Client
	extractor   *project.DescriptionExtractor
	userAgent   string
	timeout     time.Duration
}

func NewDetailsTask(proj *project.Project, projectRepo database.ProjectRepository, httpClient *http.Client, extractor *project.DescriptionExtractor, userAgent string, timeout time.Duration) *DetailsTask {
	return &DetailsTask{
		Task:        NewTask(TaskTypeDetails, proj.Name()),
		project:     proj,
		projectRepo: projectRepo,
		httpClient:  httpClient,
		extractor:   extractor,
		userAgent:   userAgent,
		timeout:     timeout,
	}
}

func (t *DetailsTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	record, err := t.projectRepo.GetProject(t.ProjectName)
	if err != nil {
		return fmt.Errorf("failed to load project details: %w", err)
	}
	if record == nil {
		return fmt.Errorf("project %q not found in persistence store", t.ProjectName)
	}

	details := project.Details{
		Owner:       record.Owner,
		Description: record.Description,
		HomepageURL: record.HomepageURL,
	}

	if details.Description == "" && details.HomepageURL != "" {
		description, err := t.extractDescription(ctx, details.HomepageURL)
		if err != nil {
			slog.Warn("Failed to derive description from homepage",
				"project", t.ProjectName, "url", details.HomepageURL, "error", err)
		} else {
			details.Description = description
			if err := t.projectRepo.UpdateProjectDescription(t.ProjectName, description); err != nil {
				slog.Warn("Failed to store derived description", "project", t.ProjectName, "error", err)
			}
		}
	}

	t.project.SetDetails(details)

	slog.Info("Task completed",
		"type", string(t.GetType()),
		"project", t.ProjectName,
		"duration", t.GetDuration(),
		"owner", details.Owner)

	return nil
}

func (t *DetailsTask) extractDescription(ctx context.Context, homepageURL string) (string, error) {
	data, err := fetchURL(ctx, t.httpClient, homepageURL, t.userAgent, t.timeout)
	if err != nil {
		return "", fmt.Errorf("failed to fetch homepage: %w", err)
	}

	description, err := t.extractor.Run(data)
	if err != nil {
		return "", fmt.Errorf("failed to extract description: %w", err)
	}

	return description, nil
}
