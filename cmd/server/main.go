package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seshireddy/project-reloader/app/api"
	"github.com/seshireddy/project-reloader/app/cfg"
	"github.com/seshireddy/project-reloader/app/database"
	"github.com/seshireddy/project-reloader/app/project"
	"github.com/seshireddy/project-reloader/app/tasks"
)

// effectiveReloadInterval resolves the reload period for one project:
// the per-project setting wins, the global flag covers projects whose
// file omits it, and a zero result falls through to the reloader's own
// default.
func effectiveReloadInterval(projectConfig *project.Config, appCfg *cfg.Cfg) time.Duration {
	seconds := projectConfig.Settings.ReloadInterval
	if seconds == 0 {
		seconds = appCfg.ReloadInterval
	}
	return time.Duration(seconds) * time.Second
}

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Project Reloader server", "version", appCfg.Version)

	// Database connection
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	// Load project configurations
	configCache := project.NewConfigCache(appCfg.ProjectsDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load project configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("Project configurations loaded", "dir", appCfg.ProjectsDir, "count", configCache.GetConfigCount())

	// Initialize repositories and collaborators
	projectRepo := database.NewProjectRepository(db)
	refreshLog := database.NewRefreshLogRepository(db)
	httpClient := &http.Client{}
	activityParser := project.NewActivityParser()
	extractor := project.NewDescriptionExtractor()

	// Build a project and a reloader per configuration
	projects := make(map[string]*project.Project)
	reloaders := make(map[string]tasks.ProjectReloaderInterface)

	for name, projectConfig := range configCache.GetConfigs() {
		proj := project.New(name, projectConfig.Type)

		opts := tasks.Options{
			WorkerCount:    appCfg.WorkerCount,
			ReloadInterval: effectiveReloadInterval(projectConfig, appCfg),
			StatusDelay:    time.Duration(appCfg.StatusDelay) * time.Second,
			StopTimeout:    time.Duration(appCfg.StopTimeout) * time.Second,
			UserAgent:      appCfg.UserAgent,
		}

		reloader, err := tasks.NewReloader(proj, projectConfig, projectRepo, refreshLog,
			httpClient, activityParser, extractor, opts)
		if err != nil {
			if errors.Is(err, tasks.ErrUnsupportedProjectType) {
				slog.Warn("Skipping project with unsupported type", "project", name, "type", string(projectConfig.Type))
				continue
			}
			slog.Error("Failed to create reloader", "project", name, "error", err)
			os.Exit(1)
		}

		projects[name] = proj
		reloaders[name] = reloader
	}

	// Start reloaders
	for name, reloader := range reloaders {
		if err := reloader.Start(); err != nil {
			slog.Error("Failed to start reloader", "project", name, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Reloaders started", "count", len(reloaders))

	// Initialize HTTP server
	apiHandler := api.NewHandler(configCache, projectRepo, refreshLog, projects, reloaders)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	for name, reloader := range reloaders {
		if err := reloader.Stop(); err != nil {
			slog.Error("Reloader stop error", "project", name, "error", err)
		}
	}
	slog.Info("Reloaders stopped")

	slog.Info("Project Reloader server shutdown complete")
}
