package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seshireddy/project-reloader/app/cfg"
	"github.com/seshireddy/project-reloader/app/project"
)

func TestEffectiveReloadInterval(t *testing.T) {
	appCfg := &cfg.Cfg{ReloadInterval: 30}

	// Per-project setting wins over the global flag
	projectConfig := &project.Config{Settings: project.Settings{ReloadInterval: 5}}
	if got := effectiveReloadInterval(projectConfig, appCfg); got != 5*time.Second {
		t.Errorf("Expected per-project interval 5s, got %v", got)
	}

	// The global flag covers projects that omit the setting
	projectConfig = &project.Config{}
	if got := effectiveReloadInterval(projectConfig, appCfg); got != 30*time.Second {
		t.Errorf("Expected global interval 30s, got %v", got)
	}

	// Zero everywhere falls through to the reloader's own default
	appCfg = &cfg.Cfg{}
	if got := effectiveReloadInterval(projectConfig, appCfg); got != 0 {
		t.Errorf("Expected 0 for unset intervals, got %v", got)
	}
}

func TestGlobalReloadIntervalAppliesToLoadedConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
type: static
stats_url: "https://login.example.com/stats/landing"
`

	if err := os.WriteFile(filepath.Join(tempDir, "landing.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	configCache := project.NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	projectConfig, err := configCache.GetConfig("landing")
	if err != nil {
		t.Fatal(err)
	}

	appCfg := &cfg.Cfg{ReloadInterval: 45}
	if got := effectiveReloadInterval(projectConfig, appCfg); got != 45*time.Second {
		t.Errorf("Expected global flag to apply when the file omits reload_interval, got %v", got)
	}
}
