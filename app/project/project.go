package project

import (
	"log/slog"
	"sync"
	"time"
)

// Project holds the server-side cache of data for a single project.
// Refresh tasks write individual slices of the state; readers get
// consistent copies via Snapshot. All access is guarded by the mutex,
// the tasks themselves are not expected to coordinate.
type Project struct {
	name string
	typ  Type

	mu                 sync.RWMutex
	details            Details
	detailsRefreshedAt *time.Time
	lastUpdatedAt      *time.Time
	updateRefreshedAt  *time.Time
	stats              LoginStats
	statsRefreshedAt   *time.Time
}

func New(name string, typ Type) *Project {
	return &Project{
		name: name,
		typ:  typ,
	}
}

func (p *Project) Name() string {
	return p.name
}

func (p *Project) Type() Type {
	return p.typ
}

func (p *Project) SetDetails(details Details) {
	now := time.Now().UTC()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.details = details
	p.detailsRefreshedAt = &now
}

func (p *Project) SetLastUpdatedAt(t time.Time) {
	now := time.Now().UTC()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastUpdatedAt = &t
	p.updateRefreshedAt = &now
}

func (p *Project) SetLoginStats(stats LoginStats) {
	now := time.Now().UTC()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = stats
	p.statsRefreshedAt = &now
}

func (p *Project) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Snapshot{
		Name:               p.name,
		Type:               p.typ,
		Details:            p.details,
		DetailsRefreshedAt: p.detailsRefreshedAt,
		LastUpdatedAt:      p.lastUpdatedAt,
		UpdateRefreshedAt:  p.updateRefreshedAt,
		LoginStats:         p.stats,
		StatsRefreshedAt:   p.statsRefreshedAt,
	}
}

// LogStatus emits a human-readable snapshot of the cached state.
func (p *Project) LogStatus() {
	s := p.Snapshot()

	attrs := []any{
		"project", s.Name,
		"type", string(s.Type),
		"owner", s.Details.Owner,
		"active_sessions", s.LoginStats.ActiveSessions,
		"logins_today", s.LoginStats.LoginsToday,
	}
	if s.LastUpdatedAt != nil {
		attrs = append(attrs, "last_updated_at", s.LastUpdatedAt.Format(time.RFC3339))
	}

	slog.Info("Project status", attrs...)
}
