package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seshireddy/project-reloader/app/database"
	"github.com/seshireddy/project-reloader/app/project"
	"github.com/seshireddy/project-reloader/app/tasks"
)

func NewHandler(configCache *project.ConfigCache, projectRepo database.ProjectRepository,
	refreshLog database.RefreshLogRepository, projects map[string]*project.Project,
	reloaders map[string]tasks.ProjectReloaderInterface) *Handler {
	return &Handler{
		configCache: configCache,
		projectRepo: projectRepo,
		refreshLog:  refreshLog,
		projects:    projects,
		reloaders:   reloaders,
	}
}

// GetProject serves the cached snapshot. It never touches the external
// systems the reloader shields; that is the point of the cache.
func (h *Handler) GetProject(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	proj, ok := h.projects[name]
	if !ok {
		slog.Error("Project not found", "project", name)
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, proj.Snapshot())
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	running := 0
	for _, reloader := range h.reloaders {
		if reloader.State() == tasks.StateRunning {
			running++
		}
	}
	health["running_reloaders"] = running
	health["loaded_configurations"] = h.configCache.GetConfigCount()

	if projectCount, err := h.projectRepo.GetProjectCount(); err == nil {
		health["projects"] = projectCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := make([]map[string]interface{}, 0, len(h.reloaders))

	for name, reloader := range h.reloaders {
		counts := make(map[string]uint64)
		for taskType, count := range reloader.Counts() {
			counts[string(taskType)] = count
		}

		info := map[string]interface{}{
			"project":    name,
			"state":      string(reloader.State()),
			"executions": counts,
		}

		if refreshCount, err := h.refreshLog.GetRefreshCount(name); err == nil {
			info["recorded_refreshes"] = refreshCount
		}

		if recent, err := h.refreshLog.GetRecentRefreshes(name, 10); err == nil {
			entries := make([]map[string]interface{}, 0, len(recent))
			for _, entry := range recent {
				entries = append(entries, map[string]interface{}{
					"task_type":  entry.TaskType,
					"duration":   entry.Duration.String(),
					"error":      entry.Error,
					"created_at": entry.CreatedAt.Format(time.RFC3339),
				})
			}
			info["recent"] = entries
		}

		stats = append(stats, info)
	}

	c.JSON(http.StatusOK, gin.H{"reloaders": stats})
}

func (h *Handler) APIListProjects(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	projects := make([]map[string]interface{}, 0, len(configs))

	for _, projectConfig := range configs {
		info := map[string]interface{}{
			"name":            projectConfig.Name,
			"type":            string(projectConfig.Type),
			"stats_url":       projectConfig.StatsURL,
			"activity_url":    projectConfig.ActivityURL,
			"reload_interval": (time.Duration(projectConfig.Settings.ReloadInterval) * time.Second).String(),
		}

		if reloader, ok := h.reloaders[projectConfig.Name]; ok {
			info["state"] = string(reloader.State())
		}

		projects = append(projects, info)
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// APIRefreshProject fires an immediate out-of-schedule refresh of every
// bound refresh task for the project.
func (h *Handler) APIRefreshProject(c *gin.Context) {
	name := c.Param("name")

	reloader, ok := h.reloaders[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	enqueued := make([]string, 0)
	for taskType := range reloader.Counts() {
		if taskType == tasks.TaskTypeStatus {
			continue
		}
		if err := reloader.EnqueueNow(taskType); err != nil {
			slog.Warn("Failed to enqueue refresh", "project", name, "type", string(taskType), "error", err)
			if errors.Is(err, tasks.ErrQueueFull) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			}
			return
		}
		enqueued = append(enqueued, string(taskType))
	}

	c.JSON(http.StatusOK, gin.H{
		"project":  name,
		"enqueued": enqueued,
	})
}
