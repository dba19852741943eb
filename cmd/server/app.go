// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/trackview/internal/api"
	"github.com/tomtom215/trackview/internal/auth"
	"github.com/tomtom215/trackview/internal/config"
	"github.com/tomtom215/trackview/internal/models"
	"github.com/tomtom215/trackview/internal/settings"
	"github.com/tomtom215/trackview/internal/viewstate"
	ws "github.com/tomtom215/trackview/internal/websocket"
)

const shutdownTimeout = 10 * time.Second

// app holds the wired components that the supervisor tree runs.
type app struct {
	store  *settings.Store
	hub    *ws.Hub
	view   *viewstate.Coordinator
	server *http.Server
}

// newApp wires settings, hub, coordinator and router from cfg.
func newApp(cfg *config.Config) (*app, error) {
	store, err := settings.Open(settings.Options{
		Path:      cfg.Settings.Path,
		Defaults:  defaultSettings(cfg.Recorder),
		ProxyBase: cfg.Recorder.ProxyBase(),
		Timeout:   cfg.Recorder.Timeout,
	})
	if err != nil {
		return nil, err
	}

	a, err := wire(cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

func wire(cfg *config.Config, store *settings.Store) (*app, error) {
	// The hub and the coordinator refer to each other. view is assigned
	// before the server accepts any connection.
	var view *viewstate.Coordinator
	hub := ws.NewHubWithConfig(ws.HubConfig{
		MessagesPerSecond: cfg.Viewer.WSMessagesPerSecond,
		Burst:             cfg.Viewer.WSBurst,
		Interactions:      ws.InteractionFunc(func() bool { return view.MapInteraction() }),
	})

	view = viewstate.NewCoordinator(
		func() viewstate.Source { return store.Client() },
		viewstate.Options{
			DefaultRange: cfg.Viewer.DefaultRange,
			Publisher:    hub,
		},
	)

	mode, err := auth.ParseAuthMode(cfg.Security.AuthMode)
	if err != nil {
		return nil, err
	}
	authMiddleware, err := auth.NewMiddleware(mode, cfg.Security.AdminUsername, cfg.Security.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("configure auth: %w", err)
	}

	var proxy http.Handler
	if cfg.Recorder.URL != "" {
		rp, err := api.NewRecorderProxy(cfg.Recorder.URL, store, mode == auth.AuthModeBasic)
		if err != nil {
			return nil, err
		}
		proxy = rp
	}

	handler := api.NewHandler(cfg, view, store, hub)
	router := api.NewRouter(handler, authMiddleware, api.NewChiMiddlewareFromConfig(cfg.Security), proxy)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return &app{store: store, hub: hub, view: view, server: server}, nil
}

// defaultSettings seeds the settings record from the recorder section.
func defaultSettings(rc config.RecorderConfig) models.Settings {
	return models.Settings{
		ServerURL: rc.ProxyBase(),
		Username:  rc.Username,
		Password:  rc.Password,
		UseProxy:  rc.UseProxy,
	}
}

// Close releases the settings database.
func (a *app) Close() error {
	return a.store.Close()
}
