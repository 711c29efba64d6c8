package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/seshireddy/project-reloader/app/project"
)

// StatisticsTask refreshes a project's login statistics from the login
// server. Calls are rate limited so a short reload period cannot hammer
// the login server on its own.
type StatisticsTask struct {
	Task
	project    *project.Project
	statsURL   string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	timeout    time.Duration
}

func NewStatisticsTask(proj *project.Project, statsURL string, httpClient *http.Client, userAgent string, timeout time.Duration) *StatisticsTask {
	return &StatisticsTask{
		Task:       NewTask(TaskTypeStatistics, proj.Name()),
		project:    proj,
		statsURL:   statsURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (t *StatisticsTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if t.statsURL == "" {
		return fmt.Errorf("no stats URL configured for project %q", t.ProjectName)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	data, err := fetchURL(ctx, t.httpClient, t.statsURL, t.userAgent, t.timeout)
	if err != nil {
		return fmt.Errorf("failed to fetch login statistics: %w", err)
	}

	var stats project.LoginStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("failed to parse login statistics: %w", err)
	}

	t.project.SetLoginStats(stats)

	slog.Info("Task completed",
		"type", string(t.GetType()),
		"project", t.ProjectName,
		"duration", t.GetDuration(),
		"active_sessions", stats.ActiveSessions,
		"logins_today", stats.LoginsToday)

	return nil
}
