// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package api

import (
	"net/http"
	"time"
)

// HealthLive is the liveness probe. It only reports that the process serves
// requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady is the readiness probe. The recorder being down does not make
// Trackview unready: its failures already surface as empty results.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	settingsReady := h.settings != nil && h.settings.Client() != nil
	viewReady := h.view != nil
	ready := settingsReady && viewReady

	data := map[string]interface{}{
		"settings_loaded": settingsReady,
		"view_ready":      viewReady,
		"ready_to_serve":  ready,
		"uptime":          time.Since(h.startTime).Seconds(),
	}
	if viewReady {
		data["users_loaded"] = h.view.Summary().UsersLoaded
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	NewResponseWriter(w, r).Status(status, data)
}
