// Package config loads the application configuration from the user's
// config directory, filling in defaults for anything missing.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DataDir holds the SQLite store and logs. Defaults to ~/.pipeboard.
	DataDir string `yaml:"data_dir"`

	API   APIConfig   `yaml:"api"`
	Theme ColorScheme `yaml:"theme"`
}

// APIConfig points at the collaborator services (auth, user directory,
// profiles) and carries the session token between runs.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// DefaultAPIBaseURL matches the backend's development default.
const DefaultAPIBaseURL = "http://localhost:3000/api/v1"

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaults(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaults(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

// Save saves the config to the user's config directory.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o600)
}

// DatabasePath returns the SQLite file inside the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "pipeboard.db")
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "pipeboard", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "pipeboard", "config.yaml"), nil
}

func defaults() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.DataDir = filepath.Join(home, ".pipeboard")
		} else {
			c.DataDir = ".pipeboard"
		}
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	c.Theme.applyDefaults()
}
