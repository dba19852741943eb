// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package services

import (
	"context"
	"time"

	"github.com/tomtom215/trackview/internal/logging"
)

// UsersLoader is satisfied by *viewstate.Coordinator.
type UsersLoader interface {
	LoadUsers(ctx context.Context) error
}

// UsersRefreshService loads the user list once at start and then every
// interval, so devices that start reporting show up without a manual reload.
type UsersRefreshService struct {
	loader   UsersLoader
	interval time.Duration
}

// NewUsersRefreshService creates the service. A non-positive interval loads
// once and then idles until shutdown.
func NewUsersRefreshService(loader UsersLoader, interval time.Duration) *UsersRefreshService {
	return &UsersRefreshService{loader: loader, interval: interval}
}

// Serve implements suture.Service. Load failures are logged by the
// coordinator and never stop the service.
func (s *UsersRefreshService) Serve(ctx context.Context) error {
	s.load(ctx)

	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.load(ctx)
		}
	}
}

func (s *UsersRefreshService) load(ctx context.Context) {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	if err := s.loader.LoadUsers(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Scheduled users load failed")
	}
}

// String implements fmt.Stringer.
func (s *UsersRefreshService) String() string {
	return "users-refresh"
}
