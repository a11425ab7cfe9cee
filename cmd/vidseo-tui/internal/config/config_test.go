package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"VIDSEO_CONFIG", "VIDSEO_LANGUAGE", "VIDSEO_SESSION", "VIDSEO_HISTORY_REFRESH", "VIDSEO_HISTORY_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServiceConfig != "" {
		t.Errorf("ServiceConfig = %q, want empty", cfg.ServiceConfig)
	}
	if cfg.Language != "English" {
		t.Errorf("Language = %q, want English", cfg.Language)
	}
	if cfg.Session == "" || cfg.Session[:4] != "tui_" {
		t.Errorf("Session = %q, want tui_ prefix", cfg.Session)
	}
	if cfg.HistoryRefresh != 5*time.Second {
		t.Errorf("HistoryRefresh = %v", cfg.HistoryRefresh)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("HistoryLimit = %d", cfg.HistoryLimit)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VIDSEO_CONFIG", "/etc/vidseo.yaml")
	t.Setenv("VIDSEO_LANGUAGE", "ja")
	t.Setenv("VIDSEO_SESSION", "desk-1")
	t.Setenv("VIDSEO_HISTORY_REFRESH", "30s")
	t.Setenv("VIDSEO_HISTORY_LIMIT", "10")

	cfg := Load()

	if cfg.ServiceConfig != "/etc/vidseo.yaml" || cfg.Language != "ja" || cfg.Session != "desk-1" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.HistoryRefresh != 30*time.Second || cfg.HistoryLimit != 10 {
		t.Errorf("refresh = %v limit = %d", cfg.HistoryRefresh, cfg.HistoryLimit)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"VIDSEO_HISTORY_REFRESH", "soon"},
		{"VIDSEO_HISTORY_REFRESH", "-5s"},
		{"VIDSEO_HISTORY_LIMIT", "lots"},
		{"VIDSEO_HISTORY_LIMIT", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := Load()
			if cfg.HistoryRefresh != 5*time.Second || cfg.HistoryLimit != 50 {
				t.Errorf("refresh = %v limit = %d", cfg.HistoryRefresh, cfg.HistoryLimit)
			}
		})
	}
}
