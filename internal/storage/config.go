package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration stored at ~/.config/tagbox/config.yaml.
type Config struct {
	RecentTagsLimit int           `yaml:"recent_tags_limit"`
	PanelHeight     int           `yaml:"panel_height"`
	Backend         string        `yaml:"backend"`
	LogFile         string        `yaml:"log_file,omitempty"`
	DefaultTagColor string        `yaml:"default_tag_color"`
	CreateTimeout   time.Duration `yaml:"create_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RecentTagsLimit: 10,
		PanelHeight:     8,
		Backend:         BackendAuto,
		DefaultTagColor: "#7D56F4",
		CreateTimeout:   10 * time.Second,
	}
}

// LoadConfig reads config from the YAML file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: defaults are usable even if the file can't be written
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	defaults := DefaultConfig()
	if config.RecentTagsLimit <= 0 {
		config.RecentTagsLimit = defaults.RecentTagsLimit
	}
	if config.PanelHeight <= 0 {
		config.PanelHeight = defaults.PanelHeight
	}
	if config.Backend == "" {
		config.Backend = defaults.Backend
	}
	if config.DefaultTagColor == "" {
		config.DefaultTagColor = defaults.DefaultTagColor
	}
	if config.CreateTimeout <= 0 {
		config.CreateTimeout = defaults.CreateTimeout
	}

	return &config, nil
}

// SaveConfig writes config to the YAML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/tagbox/config.yaml
func DefaultConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
