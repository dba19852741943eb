// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/trackview/internal/metrics"
	"github.com/tomtom215/trackview/internal/models"
)

// maxBodyBytes caps a single recorder response.
const maxBodyBytes = 64 << 20

// StatusError is returned by fetch for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.Code, e.Status)
}

// fetch performs a GET through the circuit breaker and returns the body.
// This is the only place real errors exist; public methods swallow them.
func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	label := endpointLabel(endpoint)
	start := time.Now()

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, endpoint)
	})

	outcome := "success"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "rejected"
	case err != nil:
		outcome = "error"
	}
	recordBreakerResult(c.cb, outcome)
	metrics.RecordRecorderRequest(label, outcome, time.Since(start))

	if err != nil {
		return nil, fmt.Errorf("recorder %s request failed: %w", label, err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.HasAuth() {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// fetchJSON fetches endpoint and decodes the body into out.
func (c *Client) fetchJSON(ctx context.Context, endpoint string, out interface{}) error {
	body, err := c.fetch(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpointLabel(endpoint), err)
	}
	return nil
}

func (c *Client) fetchLast(ctx context.Context, user, device string) ([]models.LastPosition, error) {
	params := url.Values{}
	if user != "" {
		params.Set("user", user)
	}
	if device != "" {
		params.Set("device", device)
	}
	endpoint := "/last"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	body, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return decodeLastPositions(body)
}

func (c *Client) fetchLocations(ctx context.Context, q LocationQuery) ([]models.LocationPoint, error) {
	format := q.Format
	if format == "" {
		format = FormatJSON
	}

	body, err := c.fetch(ctx, locationsEndpoint(q.User, q.Device, q.From, q.To, format))
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return decodeLocationsJSON(body)
	case FormatGeoJSON:
		return decodeLocationsGeoJSON(body)
	case FormatLineString:
		return decodeLocationsLineString(body, c.now())
	default:
		return nil, fmt.Errorf("unsupported locations format %q", format)
	}
}

// locationsEndpoint builds /locations?user=&format=[&device=][&from=][&to=].
func locationsEndpoint(user, device string, from, to *time.Time, format Format) string {
	params := url.Values{}
	params.Set("user", user)
	params.Set("format", string(format))
	if device != "" {
		params.Set("device", device)
	}
	if from != nil {
		params.Set("from", formatTime(*from))
	}
	if to != nil {
		params.Set("to", formatTime(*to))
	}
	return "/locations?" + params.Encode()
}

// formatTime renders t as ISO-8601 UTC with millisecond precision.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// endpointLabel strips the query string for metric labels and messages.
func endpointLabel(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}
