// Package config provides configuration for the vidseo TUI.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the TUI configuration. Pipeline settings come from the
// shared service configuration named by ServiceConfig.
type Config struct {
	// ServiceConfig is the YAML file passed to the shared config loader.
	ServiceConfig string
	EnvFile       string

	// Language preselected in the analyze form.
	Language string
	// Session owning runs started from this terminal.
	Session string

	HistoryRefresh time.Duration
	HistoryLimit   int
}

// Load returns configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ServiceConfig:  getEnv("VIDSEO_CONFIG", ""),
		EnvFile:        getEnv("VIDSEO_ENV_FILE", ".env"),
		Language:       getEnv("VIDSEO_LANGUAGE", "English"),
		Session:        getEnv("VIDSEO_SESSION", "tui_"+hostname()),
		HistoryRefresh: getDuration("VIDSEO_HISTORY_REFRESH", 5*time.Second),
		HistoryLimit:   getInt("VIDSEO_HISTORY_LIMIT", 50),
	}
}

func hostname() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "local"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
