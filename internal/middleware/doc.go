// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

/*
Package middleware provides HTTP middleware for the Trackview API.

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge per route
  - RequestLogger: one structured log line per request

All three are plain func(http.Handler) http.Handler and are mounted on the
chi router in internal/api:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.RequestLogger)

PrometheusMetrics labels requests with the chi route pattern
("/api/v1/locations/{index}") rather than the raw path, so per-point URLs do
not create one series each. Requests that match no route are labelled
"unmatched".
*/
package middleware
