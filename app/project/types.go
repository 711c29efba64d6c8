package project

import "time"

// Type classifies a project and controls which refresh tasks apply to it.
type Type string

const (
	TypeStatic Type = "static"
	TypeLive   Type = "live"
)

type Config struct {
	Name        string   `yaml:"-"`
	Type        Type     `yaml:"type"`
	StatsURL    string   `yaml:"stats_url"`
	ActivityURL string   `yaml:"activity_url"`
	Settings    Settings `yaml:"settings"`
}

type Settings struct {
	ReloadInterval int `yaml:"reload_interval"` // seconds
	Timeout        int `yaml:"timeout"`         // seconds
}

type Details struct {
	Owner       string `json:"owner"`
	Description string `json:"description"`
	HomepageURL string `json:"homepage_url"`
}

type LoginStats struct {
	ActiveSessions int `json:"active_sessions"`
	LoginsToday    int `json:"logins_today"`
	UniqueUsers    int `json:"unique_users"`
}

// Snapshot is a point-in-time copy of a project's cached state.
type Snapshot struct {
	Name               string     `json:"name"`
	Type               Type       `json:"type"`
	Details            Details    `json:"details"`
	DetailsRefreshedAt *time.Time `json:"details_refreshed_at,omitempty"`
	LastUpdatedAt      *time.Time `json:"last_updated_at,omitempty"`
	UpdateRefreshedAt  *time.Time `json:"update_refreshed_at,omitempty"`
	LoginStats         LoginStats `json:"login_stats"`
	StatsRefreshedAt   *time.Time `json:"stats_refreshed_at,omitempty"`
}
