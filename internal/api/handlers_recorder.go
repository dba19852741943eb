// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package api

import (
	"net/http"

	"github.com/tomtom215/trackview/internal/models"
)

// Users returns the coordinator's user list, loading it on first use.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	if !h.view.Summary().UsersLoaded {
		if err := h.view.LoadUsers(detach(r)); err != nil {
			NewResponseWriter(w, r).InternalError("Failed to load users", err)
			return
		}
	}
	h.writeUsers(w, r)
}

// ReloadUsers re-reads the user list from the recorder.
func (h *Handler) ReloadUsers(w http.ResponseWriter, r *http.Request) {
	if err := h.view.LoadUsers(detach(r)); err != nil {
		NewResponseWriter(w, r).InternalError("Failed to load users", err)
		return
	}
	h.writeUsers(w, r)
}

func (h *Handler) writeUsers(w http.ResponseWriter, r *http.Request) {
	state := h.view.Summary()
	NewResponseWriter(w, r).SuccessWithCount(map[string]interface{}{
		"users":   state.Users,
		"message": state.Message,
	}, len(state.Users))
}

// Devices lists every device the recorder knows, one entry per user/device.
func (h *Handler) Devices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.recorder().Devices(detach(r))
	if err != nil {
		NewResponseWriter(w, r).InternalError("Failed to load devices", err)
		return
	}
	if devices == nil {
		devices = []models.Device{}
	}
	NewResponseWriter(w, r).SuccessWithCount(devices, len(devices))
}

// Last returns last known positions, optionally narrowed by user and device.
func (h *Handler) Last(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	user, device := q.Get("user"), q.Get("device")
	if device != "" && user == "" {
		NewResponseWriter(w, r).BadRequest("device requires user")
		return
	}

	positions, err := h.recorder().LastPositions(detach(r), user, device)
	if err != nil {
		NewResponseWriter(w, r).InternalError("Failed to load last positions", err)
		return
	}
	if positions == nil {
		positions = []models.LastPosition{}
	}
	NewResponseWriter(w, r).SuccessWithCount(positions, len(positions))
}

// Info is the server info panel: the recorder's version map plus the
// connection it was read through.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	client := h.settings.Client()
	version, err := client.Version(detach(r))
	if err != nil {
		NewResponseWriter(w, r).InternalError("Failed to load server info", err)
		return
	}

	NewResponseWriter(w, r).Success(map[string]interface{}{
		"version":     version.Version(),
		"server":      version,
		"base_url":    client.BaseURL(),
		"has_auth":    client.HasAuth(),
		"using_proxy": h.settings.Settings().UseProxy,
	})
}
