package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:         "./test.db",
		ProjectsDir:    "./projects",
		Port:           "8080",
		WorkerCount:    4,
		ReloadInterval: 15,
		StatusDelay:    1,
		StopTimeout:    60,
		APIAccessKey:   "test-key",
		UserAgent:      "Test Agent",
		Timezone:       "UTC",
		Debug:          true,
		Version:        "test-version",
	}

	if cfg.DBPath != "./test.db" {
		t.Errorf("Expected DB path './test.db', got '%s'", cfg.DBPath)
	}
	if cfg.ProjectsDir != "./projects" {
		t.Errorf("Expected projects dir './projects', got '%s'", cfg.ProjectsDir)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("Expected worker count 4, got %d", cfg.WorkerCount)
	}
	if cfg.ReloadInterval != 15 {
		t.Errorf("Expected reload interval 15, got %d", cfg.ReloadInterval)
	}
	if cfg.StatusDelay != 1 {
		t.Errorf("Expected status delay 1, got %d", cfg.StatusDelay)
	}
	if cfg.StopTimeout != 60 {
		t.Errorf("Expected stop timeout 60, got %d", cfg.StopTimeout)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}
