// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

// Package settings persists the recorder connection settings and owns the
// single live recorder client built from them.
//
// The record lives in BadgerDB under one fixed key as JSON. A missing or
// unparseable record falls back to the configured defaults without error.
// Save writes the record and then swaps the live client; requests already
// running on the previous client finish against it.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/trackview/internal/logging"
	"github.com/tomtom215/trackview/internal/metrics"
	"github.com/tomtom215/trackview/internal/models"
	"github.com/tomtom215/trackview/internal/recorder"
)

// StorageKey is the Badger key holding the settings record.
const StorageKey = "owntracks-settings"

// Options configures a Store.
type Options struct {
	// Path is the Badger directory. Empty runs in-memory.
	Path string

	// Defaults are used when no valid record is stored.
	Defaults models.Settings

	// ProxyBase is the API root used when UseProxy is set.
	ProxyBase string

	// Timeout is passed to every recorder client the store builds.
	Timeout time.Duration
}

// Store holds the current settings and the recorder client built from them.
type Store struct {
	db        *badger.DB
	ownsDB    bool
	defaults  models.Settings
	proxyBase string
	timeout   time.Duration

	saveMu  sync.Mutex
	current atomic.Pointer[models.Settings]
	client  atomic.Pointer[recorder.Client]
}

// Open opens (or creates) the Badger database at opts.Path and loads the
// stored settings.
func Open(opts Options) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path).
		WithLogger(newBadgerLogger()).
		WithNumVersionsToKeep(1)
	if opts.Path == "" {
		badgerOpts = badgerOpts.WithInMemory(true)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open settings database: %w", err)
	}

	s, err := New(db, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.ownsDB = true
	return s, nil
}

// New builds a Store on an already open database. The caller keeps
// ownership of db.
func New(db *badger.DB, opts Options) (*Store, error) {
	s := &Store{
		db:        db,
		defaults:  opts.Defaults,
		proxyBase: opts.ProxyBase,
		timeout:   opts.Timeout,
	}

	settings, err := s.load()
	if err != nil {
		return nil, err
	}
	s.install(settings)
	return s, nil
}

// load reads the stored record. Missing or corrupt records yield defaults.
func (s *Store) load() (models.Settings, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(StorageKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return s.defaults, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		logging.Warn().Err(err).Str("key", StorageKey).Msg("Stored settings are unreadable, using defaults")
		return s.defaults, nil
	}
	return settings, nil
}

// Settings returns the current settings.
func (s *Store) Settings() models.Settings {
	return *s.current.Load()
}

// Client returns the live recorder client.
func (s *Store) Client() *recorder.Client {
	return s.client.Load()
}

// Save persists settings and swaps the live client. No validation is done:
// a bad URL or wrong credentials only show up as empty results later.
func (s *Store) Save(ctx context.Context, settings models.Settings) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	err := s.persist(settings)
	metrics.RecordSettingsSave(err)
	if err != nil {
		return err
	}

	s.install(settings)
	logging.Ctx(ctx).Info().
		Str("base_url", s.Client().BaseURL()).
		Bool("use_proxy", settings.UseProxy).
		Bool("auth", s.Client().HasAuth()).
		Msg("Settings saved, recorder client replaced")
	return nil
}

func (s *Store) persist(settings models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(StorageKey), data); err != nil {
			return fmt.Errorf("set settings: %w", err)
		}
		return nil
	})
}

// install publishes settings and the client built from them.
func (s *Store) install(settings models.Settings) {
	client := recorder.NewClient(recorder.Config{
		BaseURL:  BaseURL(settings, s.proxyBase),
		Username: settings.Username,
		Password: settings.Password,
		Timeout:  s.timeout,
	})
	s.current.Store(&settings)
	s.client.Store(client)
}

// Close closes the database if the store opened it.
func (s *Store) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

// BaseURL resolves the API root for settings: the proxy base when UseProxy
// is set, otherwise the configured server URL.
func BaseURL(settings models.Settings, proxyBase string) string {
	if settings.UseProxy {
		return proxyBase
	}
	return strings.TrimSuffix(settings.ServerURL, "/")
}
