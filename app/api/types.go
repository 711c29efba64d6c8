package api

import (
	"github.com/seshireddy/project-reloader/app/database"
	"github.com/seshireddy/project-reloader/app/project"
	"github.com/seshireddy/project-reloader/app/tasks"
)

type Handler struct {
	configCache *project.ConfigCache
	projectRepo database.ProjectRepository
	refreshLog  database.RefreshLogRepository
	projects    map[string]*project.Project
	reloaders   map[string]tasks.ProjectReloaderInterface
}
