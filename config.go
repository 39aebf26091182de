package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDir  = ".news-summarizer"
	defaultPromptPath = "prompts/summarize.txt"
)

// Embedded defaults, written out on first run
//
//go:embed config/settings.yaml
var defaultSettings string

//go:embed config/summarize-prompt.md
var defaultPromptTemplate string

// Duration parses YAML values like "1s" or "300ms"
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// RetrySettings controls the per-row retry loop
type RetrySettings struct {
	MaxAttempts int      `yaml:"max_attempts"`
	BaseDelay   Duration `yaml:"base_delay"`
}

// BatchSettings controls the pause between row groups
type BatchSettings struct {
	Size  int      `yaml:"size"`
	Delay Duration `yaml:"delay"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	ErrorLog    string        `yaml:"error_log"`
	Retry       RetrySettings `yaml:"retry"`
	Batch       BatchSettings `yaml:"batch"`
}

// loadSettings loads settings from the given path, falling back to the
// embedded defaults when the file does not exist
func loadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return parseSettings([]byte(defaultSettings))
		}
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	settings, err := parseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return settings, nil
}

func parseSettings(data []byte) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	if settings.Retry.MaxAttempts < 1 {
		settings.Retry.MaxAttempts = 1
	}
	if settings.ErrorLog == "" {
		settings.ErrorLog = "errors.log"
	}
	return &settings, nil
}

// getConfigPath returns the path to a config file in the config directory
func getConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// ensureConfigExists writes the default settings and prompt template on
// first run so --dry-run works without any setup
func ensureConfigExists() error {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	settingsPath := getConfigPath("settings.yaml")
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := os.WriteFile(settingsPath, []byte(defaultSettings), 0644); err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	if _, err := os.Stat(defaultPromptPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(defaultPromptPath), 0755); err != nil {
			return fmt.Errorf("creating prompts directory: %w", err)
		}
		if err := os.WriteFile(defaultPromptPath, []byte(defaultPromptTemplate), 0644); err != nil {
			return fmt.Errorf("writing default prompt template: %w", err)
		}
	}

	return nil
}
