// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

/*
Package api provides the HTTP layer for Trackview.

Routes are served by a chi router. Every JSON endpoint answers with the same
envelope:

	{"success": true, "data": ..., "meta": {"request_id": ..., "timestamp": ...}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": ...}, "meta": ...}

Endpoint groups:

  - /api/v1/health/live, /api/v1/health/ready: probes
  - /api/v1/users, /devices, /last, /info: recorder data
  - /api/v1/view/*: the shared view state (user, device, range, layers)
  - /api/v1/locations: loaded points and the detail panel
  - /api/v1/map/scene: clusters, track and heat layer as GeoJSON
  - /api/v1/settings: recorder connection settings
  - /api/v1/ws: WebSocket push of view changes
  - /api/0/*: reverse proxy to the configured recorder
  - /metrics: Prometheus

View mutations run the recorder load before answering, on a context detached
from the request so a closed browser tab does not cancel a load that other
clients will receive over the WebSocket.

Middleware order: request ID, real IP, request logging, panic recovery, CORS,
security headers; then per group rate limiting, Prometheus metrics,
authentication and compression.
*/
package api
