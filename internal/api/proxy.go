// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package api

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/tomtom215/trackview/internal/logging"
)

// RecorderProxy forwards /api/0/* to the configured recorder so browsers can
// reach it same-origin.
type RecorderProxy struct {
	proxy *httputil.ReverseProxy
}

// NewRecorderProxy builds a proxy to recorderURL. Requests carry the stored
// recorder credentials when there are any. Otherwise the caller's
// Authorization header is forwarded, unless it belongs to Trackview's own
// basic auth (stripCallerAuth).
func NewRecorderProxy(recorderURL string, settings SettingsStore, stripCallerAuth bool) (*RecorderProxy, error) {
	target, err := url.Parse(recorderURL)
	if err != nil {
		return nil, fmt.Errorf("parse recorder url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("recorder url %q must be absolute", recorderURL)
	}

	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()

			s := settings.Settings()
			switch {
			case s.Username != "" && s.Password != "":
				pr.Out.SetBasicAuth(s.Username, s.Password)
			case stripCallerAuth:
				pr.Out.Header.Del("Authorization")
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logging.Ctx(r.Context()).Error().Err(err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Recorder proxy error")
			NewResponseWriter(w, r).Error(http.StatusBadGateway, "BAD_GATEWAY", "Recorder unreachable")
		},
	}
	return &RecorderProxy{proxy: rp}, nil
}

// ServeHTTP implements http.Handler.
func (p *RecorderProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.proxy.ServeHTTP(w, r)
}
