package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of source configurations.
type Loader struct {
	sourcesDir string
}

func NewLoader(sourcesDir string) *Loader {
	return &Loader{sourcesDir: sourcesDir}
}

// LoadAll loads every YAML source definition from the sources
// directory, keyed by source name.
func (l *Loader) LoadAll() (map[string]*SourceConfig, error) {
	configs := make(map[string]*SourceConfig)

	if _, err := os.Stat(l.sourcesDir); os.IsNotExist(err) {
		return configs, nil
	}

	files, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		config, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(config); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", file, err)
		}

		configs[config.Name] = config
		slog.Info("Loaded source configuration", "file", file, "source", config.Name)
	}

	return configs, nil
}

func (l *Loader) loadFile(path string) (*SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config SourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Base(path)
	config.Name = strings.TrimSuffix(base, filepath.Ext(base))
	l.setDefaults(&config)

	return &config, nil
}

func (l *Loader) setDefaults(config *SourceConfig) {
	if config.Source.Container == "" {
		config.Source.Container = "article#post-6"
	}
	if config.Source.Timezone == "" {
		config.Source.Timezone = "Asia/Colombo"
	}
	if config.Settings.PageSize == 0 {
		config.Settings.PageSize = 10
	}
	if config.Settings.FetchDelay == 0 {
		config.Settings.FetchDelay = 4 // seconds
	}
}

func (l *Loader) validate(config *SourceConfig) error {
	if config.Source.URL == "" {
		return fmt.Errorf("source URL is required")
	}
	if config.Source.PageURL != "" && !strings.Contains(config.Source.PageURL, "%d") {
		return fmt.Errorf("page_url must contain a %%d page placeholder")
	}
	if config.Settings.PageSize < 0 {
		return fmt.Errorf("page size must be non-negative")
	}
	if config.Settings.FetchDelay < 0 {
		return fmt.Errorf("fetch delay must be non-negative")
	}
	if _, err := time.LoadLocation(config.Source.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", config.Source.Timezone, err)
	}
	return nil
}
