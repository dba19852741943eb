// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package api

import (
	"net/http"

	"github.com/tomtom215/trackview/internal/models"
	ws "github.com/tomtom215/trackview/internal/websocket"
)

// settingsRequest is the settings form. Only lengths are bounded; a wrong
// URL or password shows up as empty results on the next load.
type settingsRequest struct {
	ServerURL string `json:"server_url" validate:"max=2048"`
	Username  string `json:"username" validate:"max=256"`
	Password  string `json:"password" validate:"max=1024"`
	UseProxy  bool   `json:"use_proxy"`
}

// GetSettings returns the stored settings with the password masked.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.settings.Settings().Masked())
}

// PutSettings persists new settings, swaps the recorder client and reloads
// users through it. Sending the masked placeholder keeps the stored password.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	current := h.settings.Settings()
	next := models.Settings{
		ServerURL: req.ServerURL,
		Username:  req.Username,
		Password:  req.Password,
		UseProxy:  req.UseProxy,
	}
	if next.Password == current.Masked().Password && current.Password != "" {
		next.Password = current.Password
	}

	ctx := detach(r)
	if err := h.settings.Save(ctx, next); err != nil {
		NewResponseWriter(w, r).InternalError("Failed to save settings", err)
		return
	}

	masked := next.Masked()
	if h.wsHub != nil {
		h.wsHub.BroadcastJSON(ws.MessageTypeSettingsSaved, masked)
	}
	if err := h.view.LoadUsers(ctx); err != nil {
		NewResponseWriter(w, r).InternalError("Failed to reload users", err)
		return
	}

	NewResponseWriter(w, r).Success(masked)
}
