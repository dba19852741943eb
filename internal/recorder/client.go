// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

/*
Package recorder is the HTTP client for an OwnTracks recorder API.

Every public method degrades instead of failing: transport errors, non-2xx
responses and malformed bodies are logged and collapse to an empty result
(or {"version":"unknown"}). Callers cannot tell "no data" from "fetch
failed". The error return exists so other implementations of API (and test
fakes) can report failures; *Client always returns nil.

Endpoints (relative to the base URL, usually .../api/0):

	GET /last[?user=&device=]
	GET /locations?user=&format=json|geojson|linestring[&device=][&from=][&to=]
	GET /version
*/
package recorder

import (
	"context"
	"net/http"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/trackview/internal/logging"
	"github.com/tomtom215/trackview/internal/models"
)

// API is the set of recorder operations the viewer depends on.
type API interface {
	Users(ctx context.Context) ([]models.User, error)
	Devices(ctx context.Context) ([]models.Device, error)
	LastPositions(ctx context.Context, user, device string) ([]models.LastPosition, error)
	Locations(ctx context.Context, q LocationQuery) ([]models.LocationPoint, error)
	Version(ctx context.Context) (models.VersionInfo, error)
}

// Ensure Client implements API
var _ API = (*Client)(nil)

// Format selects the /locations response shape.
type Format string

const (
	FormatJSON       Format = "json"
	FormatGeoJSON    Format = "geojson"
	FormatLineString Format = "linestring"
)

// timeLayout matches JavaScript's Date.toISOString output.
const timeLayout = "2006-01-02T15:04:05.000Z"

// LocationQuery describes one /locations request. Empty Device fetches all
// of the user's devices server-side; nil From/To are omitted.
type LocationQuery struct {
	User   string
	Device string
	From   *time.Time
	To     *time.Time
	Format Format
}

// Config configures a Client.
type Config struct {
	// BaseURL is the recorder API root, e.g. http://localhost:8083/api/0.
	BaseURL string

	// Username and Password enable HTTP Basic auth when both are set.
	Username string
	Password string

	// Timeout bounds each request. 0 means no timeout.
	Timeout time.Duration
}

// Client talks to one recorder. It is immutable after construction; a
// settings change builds a new Client.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
	now        func() time.Time
}

// NewClient creates a recorder client. A trailing slash on BaseURL is trimmed.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cb:  newBreaker(breakerName),
		now: time.Now,
	}
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasAuth reports whether requests carry Basic credentials.
func (c *Client) HasAuth() bool {
	return c.username != "" && c.password != ""
}

// Users returns recorder users with their devices, grouped from /last in
// first-seen order. Failures yield an empty slice.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	positions, err := c.fetchLast(ctx, "", "")
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("endpoint", "/last").Msg("Error fetching users")
		return []models.User{}, nil
	}
	return GroupUsers(positions), nil
}

// Devices returns the flat, deduplicated device list from /last.
func (c *Client) Devices(ctx context.Context) ([]models.Device, error) {
	positions, err := c.fetchLast(ctx, "", "")
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("endpoint", "/last").Msg("Error fetching devices")
		return []models.Device{}, nil
	}
	return DedupeDevices(positions), nil
}

// LastPositions returns the raw last-position records, optionally filtered.
func (c *Client) LastPositions(ctx context.Context, user, device string) ([]models.LastPosition, error) {
	positions, err := c.fetchLast(ctx, user, device)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("endpoint", "/last").Str("user", user).Str("device", device).Msg("Error fetching last positions")
		return []models.LastPosition{}, nil
	}
	return positions, nil
}

// Locations returns the points for q in the requested format. Failures and
// unexpected shapes yield an empty slice.
func (c *Client) Locations(ctx context.Context, q LocationQuery) ([]models.LocationPoint, error) {
	points, err := c.fetchLocations(ctx, q)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Str("endpoint", "/locations").
			Str("user", q.User).
			Str("device", q.Device).
			Str("format", string(q.Format)).
			Msg("Error fetching locations")
		return []models.LocationPoint{}, nil
	}
	return points, nil
}

// Version returns the recorder's version map, or {"version":"unknown"}.
func (c *Client) Version(ctx context.Context) (models.VersionInfo, error) {
	var info models.VersionInfo
	if err := c.fetchJSON(ctx, "/version", &info); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("endpoint", "/version").Msg("Error fetching version")
		return models.UnknownVersion(), nil
	}
	if info == nil {
		return models.UnknownVersion(), nil
	}
	if _, ok := info["version"]; !ok {
		info["version"] = "unknown"
	}
	return info, nil
}
