// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/trackview/internal/auth"
	"github.com/tomtom215/trackview/internal/config"
	"github.com/tomtom215/trackview/internal/middleware"
)

// Router wires handlers and middleware into a chi tree.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
	proxy         http.Handler
}

// NewRouter creates a router. A nil proxy leaves /api/0 unrouted.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiMiddleware *ChiMiddleware, proxy http.Handler) *Router {
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		chiMiddleware: chiMiddleware,
		proxy:         proxy,
	}
}

// NewChiMiddlewareFromConfig maps the security section onto CORS and rate
// limit settings.
func NewChiMiddlewareFromConfig(sec config.SecurityConfig) *ChiMiddleware {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = sec.CORSOrigins
	cfg.RateLimitRequests = sec.RateLimitReqs
	cfg.RateLimitWindow = sec.RateLimitWindow
	cfg.RateLimitDisabled = sec.RateLimitDisabled
	return NewChiMiddleware(cfg)
}

// SetupChi builds the HTTP handler for every route.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(auth.SecurityHeaders)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitWebSocket))
		r.Use(router.auth.Authenticate)
		r.Get("/api/v1/ws", h.WebSocket)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.auth.Authenticate)
		r.Use(chimiddleware.Compress(5, "application/json", "application/geo+json"))

		r.Get("/users", h.Users)
		r.Post("/users/reload", h.ReloadUsers)
		r.Get("/devices", h.Devices)
		r.Get("/last", h.Last)
		r.Get("/info", h.Info)

		r.Route("/view", func(r chi.Router) {
			r.Get("/", h.View)
			r.Put("/user", h.SelectUser)
			r.Put("/device", h.SelectDevice)
			r.Put("/range", h.SetDateRange)
			r.Get("/presets", h.Presets)
			r.Post("/preset", h.ApplyPreset)
			r.Put("/modes", h.SetDisplayModes)
			r.Post("/refresh", h.Refresh)
			r.Post("/interaction", h.MapInteraction)
			r.Put("/controls", h.SetControls)
		})

		r.Get("/locations", h.Locations)
		r.Delete("/locations/selected", h.ClearSelection)
		r.Get("/locations/{index}", h.LocationDetail)

		r.Get("/map/scene", h.MapScene)

		r.Get("/settings", h.GetSettings)
		r.With(router.chiMiddleware.RateLimitCustom(RateLimitSettings)).Put("/settings", h.PutSettings)
	})

	if router.proxy != nil {
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(router.auth.Authenticate)
			r.Handle(config.ProxyPathPrefix+"/*", router.proxy)
		})
	}

	return r
}
