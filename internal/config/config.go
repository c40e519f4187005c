// Package config loads the client configuration for the LeadPilot CLI.
//
// Resolution order (lowest to highest precedence):
//  1. Built-in defaults
//  2. Config file (~/.leadpilot/config.yaml)
//  3. Environment variables (LEADPILOT_*)
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/leadpilot/leadpilot/internal/errors"
)

// Config holds the client configuration.
type Config struct {
	// APIURL is the base URL of the LeadPilot platform API.
	APIURL string `yaml:"api_url" env:"LEADPILOT_API_URL"`

	// RequestTimeout bounds every API request.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"LEADPILOT_REQUEST_TIMEOUT"`

	// DataDir holds credentials and other client state.
	DataDir string `yaml:"data_dir" env:"LEADPILOT_DATA_DIR"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" env:"LEADPILOT_LOG_LEVEL"`

	// LogFormat is the log output format (text, json).
	LogFormat string `yaml:"log_format" env:"LEADPILOT_LOG_FORMAT"`
}

// Default returns the built-in default configuration.
func Default() Config {
	homeDir, _ := os.UserHomeDir()

	return Config{
		APIURL:         "https://api.leadpilot.io",
		RequestTimeout: 30 * time.Second,
		DataDir:        filepath.Join(homeDir, ".leadpilot"),
		LogLevel:       "warn",
		LogFormat:      "text",
	}
}

// Path returns the default config file location.
func Path() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".leadpilot", "config.yaml")
}

// Load resolves the configuration from defaults, the config file, and the
// environment. A missing config file is not an error; a malformed one is.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom resolves the configuration using the given config file path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.NewConfigUnmarshalError(path, err)
		}
	case os.IsNotExist(err):
		// Defaults only
	default:
		return Config{}, errors.Wrap(errors.ErrCodeConfigNotFound, "failed to read config file", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to parse environment overrides", err)
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	return cfg, nil
}

// Save writes the configuration to the given path, creating the directory
// if needed. Used by 'leadpilot config set'.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to write config file", err)
	}

	return nil
}
