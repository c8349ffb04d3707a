package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all host configuration.
type Config struct {
	Plugins PluginsConfig
	WebView WebViewConfig
	Logging LoggingConfig
}

// PluginsConfig controls plugin discovery and provider processes.
type PluginsConfig struct {
	// Dir is the plugin discovery root. Empty means $HOME/.glasshost/plugins.
	Dir string `envconfig:"PLUGINS_DIR"`
	// Interpreter overrides the resolved provider interpreter command.
	Interpreter string `envconfig:"PYTHON"`
	// ReadyTimeout bounds how long to wait for a provider to answer HTTP.
	ReadyTimeout time.Duration `envconfig:"READY_TIMEOUT" default:"10s"`
}

// WebViewConfig controls the embedded browser surfaces.
type WebViewConfig struct {
	DevTools    bool   `envconfig:"DEVTOOLS"`
	Transparent bool   `envconfig:"TRANSPARENT"`
	UserAgent   string `envconfig:"USER_AGENT"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Plugins: PluginsConfig{ReadyTimeout: 10 * time.Second},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads configuration from GLASSHOST_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("glasshost", &cfg.Plugins); err != nil {
		return nil, fmt.Errorf("config: plugins: %w", err)
	}
	if err := envconfig.Process("glasshost", &cfg.WebView); err != nil {
		return nil, fmt.Errorf("config: webview: %w", err)
	}
	if err := envconfig.Process("glasshost", &cfg.Logging); err != nil {
		return nil, fmt.Errorf("config: logging: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads from the environment, falling back to defaults on
// error.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// PluginsDir returns the configured discovery root, defaulting to
// $HOME/.glasshost/plugins.
func (c *Config) PluginsDir() string {
	if c.Plugins.Dir != "" {
		return c.Plugins.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".glasshost", "plugins")
	}
	return filepath.Join(home, ".glasshost", "plugins")
}
