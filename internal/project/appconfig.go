package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// AppConfig holds persisted CLI defaults and recently used batch files.
type AppConfig struct {
	TimeLimitSeconds      int      `json:"time_limit_seconds"`
	MaxSolutions          int      `json:"max_solutions"`
	BacktrackMaxSolutions int      `json:"backtrack_max_solutions"`
	CompactnessWeight     float64  `json:"compactness_weight"`
	GreedyStrategy        string   `json:"greedy_strategy"`
	RecentFiles           []string `json:"recent_files"`
}

// DefaultAppConfig mirrors the built-in solver defaults.
func DefaultAppConfig() AppConfig {
	settings := model.DefaultSettings()
	return AppConfig{
		TimeLimitSeconds:      int(settings.TimeLimit / time.Second),
		MaxSolutions:          settings.MaxSolutions,
		BacktrackMaxSolutions: settings.BacktrackMaxSolutions,
		CompactnessWeight:     settings.CompactnessWeight,
		GreedyStrategy:        settings.GreedyStrategy,
		RecentFiles:           []string{},
	}
}

// Settings converts the persisted config into solver settings, starting
// from the built-in defaults for any budget the config does not carry.
func (c AppConfig) Settings() model.SolveSettings {
	settings := model.DefaultSettings()
	if c.TimeLimitSeconds > 0 {
		settings.TimeLimit = time.Duration(c.TimeLimitSeconds) * time.Second
	}
	if c.MaxSolutions > 0 {
		settings.MaxSolutions = c.MaxSolutions
	}
	if c.BacktrackMaxSolutions > 0 {
		settings.BacktrackMaxSolutions = c.BacktrackMaxSolutions
	}
	if c.CompactnessWeight > 0 {
		settings.CompactnessWeight = c.CompactnessWeight
	}
	if c.GreedyStrategy != "" {
		settings.GreedyStrategy = c.GreedyStrategy
	}
	return settings
}

// RememberFile prepends a file to the recent list, deduplicating and
// keeping at most ten entries.
func (c *AppConfig) RememberFile(path string) {
	recent := []string{path}
	for _, f := range c.RecentFiles {
		if f != path {
			recent = append(recent, f)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentFiles = recent
}

// DefaultConfigDir returns the default directory for application
// configuration, ~/.packbatch on all platforms.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".packbatch")
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists the config to the given path as JSON, creating
// any missing parent directories.
func SaveAppConfig(path string, config AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads the config from the given path. A missing file
// yields the defaults with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	if config.RecentFiles == nil {
		config.RecentFiles = []string{}
	}
	return config, nil
}
