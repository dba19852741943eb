// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/trackview/internal/config"
	"github.com/tomtom215/trackview/internal/logging"
	"github.com/tomtom215/trackview/internal/models"
	"github.com/tomtom215/trackview/internal/recorder"
	"github.com/tomtom215/trackview/internal/viewstate"
	ws "github.com/tomtom215/trackview/internal/websocket"
)

// SettingsStore is the persisted recorder connection and the client built
// from it. *settings.Store satisfies it.
type SettingsStore interface {
	Settings() models.Settings
	Save(ctx context.Context, s models.Settings) error
	Client() *recorder.Client
}

// Handler serves the Trackview API.
type Handler struct {
	config    *config.Config
	view      *viewstate.Coordinator
	settings  SettingsStore
	wsHub     *ws.Hub
	startTime time.Time
	now       func() time.Time
}

// NewHandler creates a handler. wsHub may be nil, which disables /ws.
func NewHandler(cfg *config.Config, view *viewstate.Coordinator, store SettingsStore, wsHub *ws.Hub) *Handler {
	return &Handler{
		config:    cfg,
		view:      view,
		settings:  store,
		wsHub:     wsHub,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// recorder returns the live recorder client. A settings save replaces it.
func (h *Handler) recorder() recorder.API {
	return h.settings.Client()
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin on WebSocket upgrades.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
