// Package config handles configuration loading and validation for magazine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Markdown styles accepted by tui.markdown_style.
const (
	MarkdownAuto  = "auto"
	MarkdownDark  = "dark"
	MarkdownLight = "light"
	MarkdownNoTTY = "notty"
)

// Config holds the application configuration.
type Config struct {
	API     APIConfig   `yaml:"api"`
	Toast   ToastConfig `yaml:"toast"`
	TUI     TUIConfig   `yaml:"tui"`
	DataDir string      `yaml:"-"` // set by caller, not from config file
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ToastConfig tunes the status message queue.
type ToastConfig struct {
	DefaultDuration time.Duration `yaml:"default_duration"`
	MaxVisible      int           `yaml:"max_visible"` // 0 = unbounded
}

// TUIConfig holds interactive feed settings.
type TUIConfig struct {
	MarkdownStyle string `yaml:"markdown_style"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:8000/api",
			Timeout: 15 * time.Second,
		},
		Toast: ToastConfig{
			DefaultDuration: 3500 * time.Millisecond,
		},
		TUI: TUIConfig{
			MarkdownStyle: MarkdownAuto,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.Toast.DefaultDuration == 0 {
		c.Toast.DefaultDuration = defaults.Toast.DefaultDuration
	}
	if c.TUI.MarkdownStyle == "" {
		c.TUI.MarkdownStyle = defaults.TUI.MarkdownStyle
	}
}

// CredentialsDir returns where login state is persisted.
func (c *Config) CredentialsDir() string {
	return c.DataDir
}

// LogFile returns the default log file inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "magazine.log")
}
