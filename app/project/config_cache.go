package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type ConfigCache struct {
	projectsDir string
	cache       map[string]*Config
	mu          sync.RWMutex
}

func NewConfigCache(projectsDir string) *ConfigCache {
	return &ConfigCache{
		projectsDir: projectsDir,
		cache:       make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.projectsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.projectsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive project name from filename (remove .yml extension)
		fileName := filepath.Base(file)
		projectName := fileName[:len(fileName)-4]

		config, err := cc.LoadConfig(projectName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Configuration loaded", "project", projectName, "type", string(config.Type), "reload_interval", config.Settings.ReloadInterval)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(projectName string) (*Config, error) {
	configFile := cc.getConfigFilePath(projectName)
	projectConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	// Set project name from parameter
	projectConfig.Name = projectName

	if err := cc.validateConfig(projectConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	// Store in cache
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[projectConfig.Name] = projectConfig

	return projectConfig, nil
}

func (cc *ConfigCache) GetConfig(projectName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	projectConfig, ok := cc.cache[projectName]
	if !ok {
		return nil, fmt.Errorf("project config with name '%s' not found", projectName)
	}
	return projectConfig, nil
}

func (cc *ConfigCache) GetConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configsCopy := make(map[string]*Config, len(cc.cache))
	for k, v := range cc.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var projectConfig Config
	if err := yaml.Unmarshal(data, &projectConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Type tags are matched case-insensitively, constants are lowercase
	projectConfig.Type = Type(strings.ToLower(string(projectConfig.Type)))

	// ReloadInterval stays 0 when the file omits it, so callers can
	// tell "unset" apart from an explicit value and apply their own
	// fallback chain.
	if projectConfig.Settings.Timeout == 0 {
		projectConfig.Settings.Timeout = 10
	}

	return &projectConfig, nil
}

func (cc *ConfigCache) validateConfig(projectConfig *Config) error {
	if projectConfig == nil {
		return fmt.Errorf("projectConfig is nil")
	}

	requiredFields := map[string]string{
		"project name": projectConfig.Name,
		"project type": string(projectConfig.Type),
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"reload interval": projectConfig.Settings.ReloadInterval,
		"timeout":         projectConfig.Settings.Timeout,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	// Whether the type is one of the supported set is decided by the
	// reloader factory, not here; configs only need a non-empty tag.
	return nil
}

func (cc *ConfigCache) getConfigFilePath(projectName string) string {
	return filepath.Join(cc.projectsDir, projectName+".yml")
}
