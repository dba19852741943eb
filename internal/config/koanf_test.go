// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Recorder.URL != "http://localhost:8083" {
		t.Errorf("Recorder.URL = %q, want http://localhost:8083", cfg.Recorder.URL)
	}
	if cfg.Recorder.Timeout != 30*time.Second {
		t.Errorf("Recorder.Timeout = %v, want 30s", cfg.Recorder.Timeout)
	}
	if !cfg.Recorder.UseProxy {
		t.Error("Recorder.UseProxy should default to true")
	}
	if cfg.Viewer.DefaultRange != 12*time.Hour {
		t.Errorf("Viewer.DefaultRange = %v, want 12h", cfg.Viewer.DefaultRange)
	}
	if cfg.Security.AuthMode != "none" {
		t.Errorf("Security.AuthMode = %q, want none", cfg.Security.AuthMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("RECORDER_URL", "https://recorder.example.com")
	t.Setenv("RECORDER_TIMEOUT", "5s")
	t.Setenv("SETTINGS_PATH", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Recorder.URL != "https://recorder.example.com" {
		t.Errorf("Recorder.URL = %q", cfg.Recorder.URL)
	}
	if cfg.Recorder.Timeout != 5*time.Second {
		t.Errorf("Recorder.Timeout = %v, want 5s", cfg.Recorder.Timeout)
	}
	if cfg.Settings.Path != "" {
		t.Errorf("Settings.Path = %q, want empty (in-memory)", cfg.Settings.Path)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadWithKoanf_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 7000
recorder:
  url: http://rec.local:8083
  username: jane
viewer:
  default_range: 24h
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7001 {
		t.Errorf("env should override file: port = %d", cfg.Server.Port)
	}
	if cfg.Recorder.URL != "http://rec.local:8083" || cfg.Recorder.Username != "jane" {
		t.Errorf("recorder from file not applied: %+v", cfg.Recorder)
	}
	if cfg.Viewer.DefaultRange != 24*time.Hour {
		t.Errorf("Viewer.DefaultRange = %v, want 24h", cfg.Viewer.DefaultRange)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("unset fields keep defaults: host = %q", cfg.Server.Host)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"RECORDER_URL", "recorder.url"},
		{"recorder_password", "recorder.password"},
		{"AUTH_MODE", "security.auth_mode"},
		{"LOG_LEVEL", "logging.level"},
		{"VIEWER_USERS_REFRESH", "viewer.users_refresh_interval"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
