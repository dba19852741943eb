// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package auth

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/trackview/internal/logging"
)

// Middleware enforces the configured auth mode.
type Middleware struct {
	mode  AuthMode
	basic *BasicAuthManager
}

// NewMiddleware builds the middleware for mode. Basic mode requires the
// admin username and password.
func NewMiddleware(mode AuthMode, username, password string) (*Middleware, error) {
	m := &Middleware{mode: mode}
	switch mode {
	case AuthModeNone:
	case AuthModeBasic:
		basic, err := NewBasicAuthManager(username, password)
		if err != nil {
			return nil, err
		}
		m.basic = basic
	default:
		return nil, errors.New("invalid auth mode: " + string(mode))
	}
	return m, nil
}

// Mode returns the active auth mode.
func (m *Middleware) Mode() AuthMode {
	return m.mode
}

// Authenticate rejects requests without valid credentials in basic mode and
// stores the Subject in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	if m.mode == AuthModeNone {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.sendBasicAuthChallenge(w, "authentication required")
			return
		}

		username, err := m.basic.ValidateCredentials(authHeader)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("Basic auth validation failed")
			m.sendBasicAuthChallenge(w, "invalid credentials")
			return
		}

		ctx := ContextWithSubject(r.Context(), &Subject{Username: username, AuthMethod: AuthModeBasic})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type challengeBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// sendBasicAuthChallenge answers 401 with a WWW-Authenticate challenge.
func (m *Middleware) sendBasicAuthChallenge(w http.ResponseWriter, message string) {
	var body challengeBody
	body.Error.Code = "UNAUTHORIZED"
	body.Error.Message = message

	w.Header().Set("WWW-Authenticate", m.basic.GetWWWAuthenticateHeader())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("Failed to write auth challenge")
	}
}

// contentSecurityPolicy suits JSON and WebSocket responses; nothing served
// here is meant to be rendered as a document.
const contentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"

// SecurityHeaders adds security headers to all responses
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Cache-Control", "no-store")
		if r.Header.Get("X-Forwarded-Proto") == "https" || r.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		// The viewer never asks for the browser's own location.
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		next.ServeHTTP(w, r)
	})
}
