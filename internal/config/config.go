// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables (in that order of precedence).
//
// Configuration Categories:
//
//  1. Server: HTTP listener and environment mode
//  2. Recorder: upstream OwnTracks recorder used by proxy mode and as the
//     default connection when no settings have been saved yet
//  3. Settings: where the connection settings record is persisted
//  4. Viewer: initial view state and background refresh
//  5. Security: auth for Trackview itself, rate limiting, CORS
//  6. Logging: log level and output format
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Recorder RecorderConfig `koanf:"recorder"`
	Settings SettingsConfig `koanf:"settings"`
	Viewer   ViewerConfig   `koanf:"viewer"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `koanf:"port"`
	Host         string        `koanf:"host"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	Environment  string        `koanf:"environment"` // development, staging, production
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// RecorderConfig describes the upstream recorder.
type RecorderConfig struct {
	// URL is the recorder's base URL without the /api/0 prefix,
	// e.g. http://localhost:8083. Target of the /api/0 proxy.
	URL string `koanf:"url"`

	// Username and Password seed the default settings record.
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// Timeout bounds every recorder HTTP request. 0 disables it.
	Timeout time.Duration `koanf:"timeout"`

	// UseProxy seeds the default settings record's proxy flag.
	UseProxy bool `koanf:"use_proxy"`
}

// ProxyBase returns the API base the server-side client uses in proxy mode.
func (r RecorderConfig) ProxyBase() string {
	return strings.TrimSuffix(r.URL, "/") + ProxyPathPrefix
}

// ProxyPathPrefix is the same-origin path forwarded to the recorder.
const ProxyPathPrefix = "/api/0"

// SettingsConfig configures the settings record store.
type SettingsConfig struct {
	// Path is the Badger directory. Empty runs in-memory.
	Path string `koanf:"path"`
}

// ViewerConfig holds initial view state and background work.
type ViewerConfig struct {
	// DefaultRange is the width of the initial "last N" window.
	DefaultRange time.Duration `koanf:"default_range"`

	// UsersRefreshInterval reloads the user list in the background. 0 disables it.
	UsersRefreshInterval time.Duration `koanf:"users_refresh_interval"`

	// WSMessagesPerSecond limits inbound WebSocket messages per connection.
	WSMessagesPerSecond float64 `koanf:"ws_messages_per_second"`
	WSBurst             int     `koanf:"ws_burst"`
}

// SecurityConfig holds authentication, rate limiting and CORS settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // none or basic
	AdminUsername     string        `koanf:"admin_username"`
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to log entries.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
