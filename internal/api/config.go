package api

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all client-side settings for talking to the tracker backend.
type Config struct {
	BaseURL           string `yaml:"api_url"`
	TimeoutMs         int    `yaml:"timeout_ms"`
	ValidateTimeoutMs int    `yaml:"validate_timeout_ms"`
	MaxRetries        int    `yaml:"max_retries"`
	LogCalls          bool   `yaml:"log_calls"`
	DownloadDir       string `yaml:"download_dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "http://localhost:8080",
		TimeoutMs:         15000,
		ValidateTimeoutMs: 2000,
		MaxRetries:        1,
	}
}

// LoadConfig reads configuration from ~/.pocdesk/config.yaml (overridable via
// POCDESK_CONFIG) and then applies environment variable overrides, falling
// back to defaults for anything unset.
func LoadConfig() Config {
	cfg := DefaultConfig()

	path := os.Getenv("POCDESK_CONFIG")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".pocdesk", "config.yaml")
		}
	}
	if data, err := os.ReadFile(path); err == nil {
		// A malformed file falls back to defaults rather than aborting;
		// env overrides still apply.
		_ = yaml.Unmarshal(data, &cfg)
	}

	if v := os.Getenv("POCDESK_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("POCDESK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("POCDESK_VALIDATE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ValidateTimeoutMs = n
		}
	}
	if v := os.Getenv("POCDESK_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("POCDESK_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("POCDESK_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = v
	}

	return cfg
}
