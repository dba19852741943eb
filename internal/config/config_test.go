// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"missing recorder", func(c *Config) { c.Recorder.URL = "" }, "RECORDER_URL is required"},
		{"recorder with path", func(c *Config) { c.Recorder.URL = "http://rec/api/0" }, "remove path"},
		{"recorder bad scheme", func(c *Config) { c.Recorder.URL = "ftp://rec" }, "scheme"},
		{"negative timeout", func(c *Config) { c.Recorder.Timeout = -time.Second }, "RECORDER_TIMEOUT"},
		{"zero timeout allowed", func(c *Config) { c.Recorder.Timeout = 0 }, ""},
		{"zero range", func(c *Config) { c.Viewer.DefaultRange = 0 }, "VIEWER_DEFAULT_RANGE"},
		{"bad auth mode", func(c *Config) { c.Security.AuthMode = "jwt" }, "AUTH_MODE"},
		{"basic without user", func(c *Config) { c.Security.AuthMode = "basic" }, "ADMIN_USERNAME"},
		{"basic without password", func(c *Config) {
			c.Security.AuthMode = "basic"
			c.Security.AdminUsername = "admin"
		}, "ADMIN_PASSWORD"},
		{"none in production", func(c *Config) { c.Server.Environment = "production" }, "not allowed"},
		{"rate limit out of range", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRecorderProxyBase(t *testing.T) {
	for _, base := range []string{"http://rec:8083", "http://rec:8083/"} {
		if got := (RecorderConfig{URL: base}).ProxyBase(); got != "http://rec:8083/api/0" {
			t.Errorf("ProxyBase(%q) = %q", base, got)
		}
	}
}

func TestServerAddr(t *testing.T) {
	if got := (ServerConfig{Host: "0.0.0.0", Port: 8090}).Addr(); got != "0.0.0.0:8090" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("no warning expected without auth")
	}
	cfg.Security.AuthMode = "basic"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("expected warning for wildcard CORS with basic auth")
	}
}
