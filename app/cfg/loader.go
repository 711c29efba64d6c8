package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./projects.db" description:"Path to the SQLite database file"`

	// Application configuration
	ProjectsDir    string `long:"projects-dir" env:"PROJECTS_DIR" default:"./projects" description:"Directory containing project configuration files"`
	Port           string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount    int    `long:"worker-count" env:"WORKER_COUNT" default:"0" description:"Workers per project reloader (0 = task count + 1)"`
	ReloadInterval int    `long:"reload-interval" env:"RELOAD_INTERVAL" default:"15" description:"Reload period in seconds"`
	StatusDelay    int    `long:"status-delay" env:"STATUS_DELAY" default:"1" description:"Initial delay of the status task in seconds"`
	StopTimeout    int    `long:"stop-timeout" env:"STOP_TIMEOUT" default:"60" description:"Grace window for reloader shutdown in seconds"`
	APIAccessKey   string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Project Reloader/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:         raw.DBPath,
		ProjectsDir:    raw.ProjectsDir,
		Port:           raw.Port,
		WorkerCount:    raw.WorkerCount,
		ReloadInterval: raw.ReloadInterval,
		StatusDelay:    raw.StatusDelay,
		StopTimeout:    raw.StopTimeout,
		APIAccessKey:   raw.APIAccessKey,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
