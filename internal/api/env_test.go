// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/trackview/internal/auth"
	"github.com/tomtom215/trackview/internal/config"
	"github.com/tomtom215/trackview/internal/logging"
	"github.com/tomtom215/trackview/internal/models"
	"github.com/tomtom215/trackview/internal/settings"
	"github.com/tomtom215/trackview/internal/viewstate"
)

func init() {
	logging.Init(logging.Config{Level: "error", Format: "json", Output: io.Discard})
}

const fakeLast = `[
  {"_type":"location","username":"jane","device":"phone","tid":"jp","lat":51.5,"lon":-0.1,"tst":1700000000},
  {"_type":"location","username":"bob","device":"car","tid":"bc","lat":48.8,"lon":2.3,"tst":1700000100},
  {"_type":"location","username":"jane","device":"tablet","lat":51.6,"lon":-0.2,"tst":1700000200}
]`

var fakeLocations = map[string]string{
	"phone":  `{"count":2,"data":[{"lat":51.50,"lon":-0.10,"tst":1700000100,"addr":"1 High St"},{"lat":51.52,"lon":-0.12,"tst":1700000300,"vel":12}]}`,
	"tablet": `{"count":1,"data":[{"lat":51.51,"lon":-0.11,"tst":1700000200,"locality":"London"}]}`,
	"car":    `{"count":1,"data":[{"lat":48.80,"lon":2.30,"tst":1700000400}]}`,
}

// fakeRecorder serves /api/0 like an OwnTracks recorder.
type fakeRecorder struct {
	server    *httptest.Server
	locations atomic.Int32

	mu       sync.Mutex
	gate     chan struct{}
	entered  chan struct{}
	lastAuth string
}

func newFakeRecorder(t *testing.T) *fakeRecorder {
	t.Helper()
	f := &fakeRecorder{}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeRecorder) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.lastAuth = r.Header.Get("Authorization")
	gate, entered := f.gate, f.entered
	f.mu.Unlock()

	switch r.URL.Path {
	case "/api/0/last":
		_, _ = w.Write([]byte(fakeLast))
	case "/api/0/locations":
		f.locations.Add(1)
		if gate != nil {
			entered <- struct{}{}
			<-gate
		}
		body, ok := fakeLocations[r.URL.Query().Get("device")]
		if !ok {
			body = `{"count":0,"data":[]}`
		}
		_, _ = w.Write([]byte(body))
	case "/api/0/version":
		_, _ = w.Write([]byte(`{"version":"0.9.9","git":"abc"}`))
	default:
		http.NotFound(w, r)
	}
}

// hold makes the next /locations requests block until release is called.
func (f *fakeRecorder) hold() (entered <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
	f.entered = make(chan struct{}, 8)
	gate := f.gate
	return f.entered, func() { close(gate) }
}

func (f *fakeRecorder) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

var testNow = time.Date(2023, 11, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	recorder *fakeRecorder
	store    *settings.Store
	view     *viewstate.Coordinator
	handler  *Handler
	server   http.Handler
}

type envOptions struct {
	authMode auth.AuthMode
	defaults *models.Settings
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	rec := newFakeRecorder(t)

	defaults := models.Settings{ServerURL: rec.server.URL + "/api/0"}
	if opts.defaults != nil {
		defaults = *opts.defaults
	}

	store, err := settings.Open(settings.Options{
		Defaults:  defaults,
		ProxyBase: rec.server.URL + config.ProxyPathPrefix,
		Timeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatalf("open settings: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	view := viewstate.NewCoordinator(func() viewstate.Source { return store.Client() }, viewstate.Options{
		Now: func() time.Time { return testNow },
	})

	cfg := &config.Config{
		Recorder: config.RecorderConfig{URL: rec.server.URL},
		Security: config.SecurityConfig{CORSOrigins: []string{"http://localhost:5173"}},
	}
	h := NewHandler(cfg, view, store, nil)
	h.now = func() time.Time { return testNow }

	mode := opts.authMode
	if mode == "" {
		mode = auth.AuthModeNone
	}
	authMW, err := auth.NewMiddleware(mode, "admin", "password123")
	if err != nil {
		t.Fatalf("auth middleware: %v", err)
	}

	proxy, err := NewRecorderProxy(rec.server.URL, store, mode == auth.AuthModeBasic)
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}

	chiCfg := DefaultChiMiddlewareConfig()
	chiCfg.RateLimitDisabled = true
	router := NewRouter(h, authMW, NewChiMiddleware(chiCfg), proxy)

	return &testEnv{
		recorder: rec,
		store:    store,
		view:     view,
		handler:  h,
		server:   router.SetupChi(),
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)

	var env envelope
	if ct := rec.Header().Get("Content-Type"); rec.Body.Len() > 0 && bytes.HasPrefix([]byte(ct), []byte("application/json")) {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, string(env.Data))
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, env envelope, want string) {
	t.Helper()
	if env.Success {
		t.Fatal("expected success=false")
	}
	if env.Error == nil || env.Error.Code != want {
		t.Fatalf("error = %+v, want code %s", env.Error, want)
	}
}
