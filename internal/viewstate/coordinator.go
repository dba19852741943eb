// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

// Package viewstate holds the shared view of the location history: the
// selected user, device and date range, the display modes, and the points
// loaded for that selection.
//
// State transitions run under a mutex and decide whether a locations load is
// needed (see OnFilterChanged). Loads run outside the lock. Each load takes a
// generation number when it is issued; a result that comes back after a newer
// load was issued is dropped instead of overwriting the newer selection.
// Nothing is cancelled, so an older load still runs to completion.
//
// Every committed change is pushed to a Publisher as a "view_updated" event.
package viewstate

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/trackview/internal/logging"
	"github.com/tomtom215/trackview/internal/metrics"
	"github.com/tomtom215/trackview/internal/models"
	"github.com/tomtom215/trackview/internal/recorder"
)

// Event types sent to the Publisher.
const (
	EventViewUpdated = "view_updated"
	EventUsersLoaded = "users_loaded"
)

// DefaultRange is the span of the initial date range.
const DefaultRange = 12 * time.Hour

// Source loads users and location points. *recorder.Client satisfies it.
type Source interface {
	Users(ctx context.Context) ([]models.User, error)
	Locations(ctx context.Context, q recorder.LocationQuery) ([]models.LocationPoint, error)
}

// SourceFunc returns the live Source. It is called once per load so a
// replaced client is picked up without restarting the coordinator.
type SourceFunc func() Source

// Publisher receives view events. The WebSocket hub satisfies it.
type Publisher interface {
	BroadcastJSON(messageType string, data interface{})
}

// Options configures a Coordinator.
type Options struct {
	// DefaultRange is the span ending now used for the initial range.
	DefaultRange time.Duration

	// Publisher receives events. Nil disables publishing.
	Publisher Publisher

	// Now overrides the clock.
	Now func() time.Time
}

// State is a snapshot of the view.
type State struct {
	Filter          Filter                 `json:"filter"`
	Users           []models.User          `json:"users"`
	UsersLoaded     bool                   `json:"users_loaded"`
	Points          []models.LocationPoint `json:"points,omitempty"`
	PointCount      int                    `json:"point_count"`
	Loading         bool                   `json:"loading"`
	Message         string                 `json:"message,omitempty"`
	ControlsVisible bool                   `json:"controls_visible"`
	SelectedIndex   *int                   `json:"selected_index,omitempty"`
	Generation      uint64                 `json:"generation"`
}

// Coordinator owns the view state.
type Coordinator struct {
	source    SourceFunc
	publisher Publisher

	mu       sync.Mutex
	state    State
	issued   uint64
	inflight int
}

// NewCoordinator creates a coordinator with points-only display and a date
// range covering the last opts.DefaultRange.
func NewCoordinator(source SourceFunc, opts Options) *Coordinator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultRange <= 0 {
		opts.DefaultRange = DefaultRange
	}

	now := opts.Now()
	return &Coordinator{
		source:    source,
		publisher: opts.Publisher,
		state: State{
			Filter: Filter{
				Range: models.NewDateRange(now.Add(-opts.DefaultRange), now),
				Modes: models.DefaultDisplayModes(),
			},
			Users:           []models.User{},
			Points:          []models.LocationPoint{},
			ControlsVisible: true,
		},
	}
}

// LoadUsers reloads the user list. When no user is selected yet the first
// user is selected, which loads that user's locations.
func (c *Coordinator) LoadUsers(ctx context.Context) error {
	c.mu.Lock()
	c.inflight++
	c.state.Loading = true
	c.state.Message = ""
	src := c.source()
	c.mu.Unlock()
	c.publish()

	users, err := src.Users(ctx)

	c.mu.Lock()
	c.inflight--
	c.state.Loading = c.inflight > 0
	if err != nil {
		c.state.Message = MessageUsersFailed
		c.mu.Unlock()
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to load users")
		c.publish()
		return nil
	}

	if users == nil {
		users = []models.User{}
	}
	c.state.Users = users
	c.state.UsersLoaded = true

	var req *FetchRequest
	var gen uint64
	if c.state.Filter.User == "" && len(users) > 0 {
		prev := c.state.Filter
		c.state.Filter.User = users[0].Name
		c.state.Filter.Device = ""
		req = OnFilterChanged(prev, c.state.Filter, users)
		if req != nil {
			gen = c.beginLocked()
		}
	}
	usersCopy := copyUsers(users)
	c.mu.Unlock()

	logging.Ctx(ctx).Debug().Int("users", len(users)).Msg("Users loaded")
	if c.publisher != nil {
		c.publisher.BroadcastJSON(EventUsersLoaded, usersCopy)
	}
	c.publish()

	if req != nil {
		c.execute(ctx, req, gen)
	}
	return nil
}

// SelectUser selects a user and clears the device selection. An empty name
// deselects.
func (c *Coordinator) SelectUser(ctx context.Context, name string) error {
	return c.update(ctx, func(f *Filter, users []models.User) error {
		if name != "" && models.FindUser(users, name) == nil {
			return ErrUnknownUser
		}
		f.User = name
		f.Device = ""
		return nil
	})
}

// SelectDevice selects one device of the current user. An empty name means
// all of the user's devices.
func (c *Coordinator) SelectDevice(ctx context.Context, device string) error {
	return c.update(ctx, func(f *Filter, users []models.User) error {
		if f.User == "" {
			return ErrNoUserSelected
		}
		if device != "" {
			u := models.FindUser(users, f.User)
			if u == nil || !containsDevice(u, device) {
				return ErrUnknownDevice
			}
		}
		f.Device = device
		return nil
	})
}

// SetDateRange sets the range. A range with a missing endpoint is stored
// but does not load anything.
func (c *Coordinator) SetDateRange(ctx context.Context, r models.DateRange) error {
	return c.update(ctx, func(f *Filter, _ []models.User) error {
		f.Range = copyRange(r)
		return nil
	})
}

// ApplyPreset sets the range from a preset resolved against now.
func (c *Coordinator) ApplyPreset(ctx context.Context, preset Preset, now time.Time) error {
	r, err := preset.Range(now)
	if err != nil {
		return err
	}
	return c.SetDateRange(ctx, r)
}

// SetDisplayModes changes which layers are drawn. It never loads data.
func (c *Coordinator) SetDisplayModes(ctx context.Context, modes models.DisplayModes) error {
	return c.update(ctx, func(f *Filter, _ []models.User) error {
		f.Modes = modes
		return nil
	})
}

// Refresh reloads locations for the current selection, or the user list
// when no user is selected. It refuses to start while a load is running.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.inflight > 0 {
		c.mu.Unlock()
		return ErrFetchInFlight
	}
	if c.state.Filter.User == "" {
		c.mu.Unlock()
		return c.LoadUsers(ctx)
	}
	req := buildRequest(c.state.Filter, c.state.Users)
	if req == nil {
		c.mu.Unlock()
		return nil
	}
	gen := c.beginLocked()
	c.mu.Unlock()

	c.publish()
	c.execute(ctx, req, gen)
	return nil
}

// MapInteraction records a user-initiated map pan. The first one collapses
// the filter controls; it reports whether anything changed.
func (c *Coordinator) MapInteraction() bool {
	c.mu.Lock()
	if !c.state.ControlsVisible {
		c.mu.Unlock()
		return false
	}
	c.state.ControlsVisible = false
	c.mu.Unlock()

	c.publish()
	return true
}

// SetControlsVisible shows or hides the filter controls.
func (c *Coordinator) SetControlsVisible(visible bool) {
	c.mu.Lock()
	changed := c.state.ControlsVisible != visible
	c.state.ControlsVisible = visible
	c.mu.Unlock()

	if changed {
		c.publish()
	}
}

// SelectPoint opens the detail panel for the point at index.
func (c *Coordinator) SelectPoint(index int) (PointDetails, error) {
	c.mu.Lock()
	if index < 0 || index >= len(c.state.Points) {
		c.mu.Unlock()
		return PointDetails{}, ErrPointNotFound
	}
	p := c.state.Points[index]
	i := index
	c.state.SelectedIndex = &i
	c.mu.Unlock()

	c.publish()
	return NewPointDetails(index, &p), nil
}

// ClearSelectedPoint closes the detail panel.
func (c *Coordinator) ClearSelectedPoint() {
	c.mu.Lock()
	had := c.state.SelectedIndex != nil
	c.state.SelectedIndex = nil
	c.mu.Unlock()

	if had {
		c.publish()
	}
}

// Snapshot returns a copy of the full state including points.
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLocked(true)
}

// Summary returns a copy of the state without the point list.
func (c *Coordinator) Summary() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLocked(false)
}

// Points returns a copy of the loaded points and the display modes.
func (c *Coordinator) Points() ([]models.LocationPoint, models.DisplayModes) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.LocationPoint, len(c.state.Points))
	copy(out, c.state.Points)
	return out, c.state.Filter.Modes
}

// update applies mutate to a copy of the filter and starts a load when the
// transition asks for one. The generation is taken under the same lock so
// the issue order matches the order of filter changes.
func (c *Coordinator) update(ctx context.Context, mutate func(*Filter, []models.User) error) error {
	c.mu.Lock()
	prev := c.state.Filter
	next := prev
	if err := mutate(&next, c.state.Users); err != nil {
		c.mu.Unlock()
		return err
	}
	c.state.Filter = next

	req := OnFilterChanged(prev, next, c.state.Users)
	var gen uint64
	if req != nil {
		gen = c.beginLocked()
	}
	c.mu.Unlock()

	c.publish()
	if req != nil {
		c.execute(ctx, req, gen)
	}
	return nil
}

// beginLocked issues a new generation and marks a load in flight.
func (c *Coordinator) beginLocked() uint64 {
	c.issued++
	c.inflight++
	c.state.Loading = true
	c.state.Message = ""
	return c.issued
}

// execute runs req and commits its result unless a newer load was issued
// in the meantime.
func (c *Coordinator) execute(ctx context.Context, req *FetchRequest, gen uint64) {
	c.mu.Lock()
	src := c.source()
	c.mu.Unlock()

	start := time.Now()
	points, err := fetchPoints(ctx, src, req)
	elapsed := time.Since(start)

	c.mu.Lock()
	c.inflight--
	c.state.Loading = c.inflight > 0

	if gen < c.issued {
		c.mu.Unlock()
		metrics.RecordStaleResult()
		logging.Ctx(ctx).Debug().
			Uint64("generation", gen).
			Str("user", req.User).
			Msg("Discarding stale locations result")
		c.publish()
		return
	}

	result := metrics.FetchResultOK
	switch {
	case err != nil:
		result = metrics.FetchResultError
		c.state.Message = MessageLocationsFailed
	default:
		c.state.Points = points
		c.state.SelectedIndex = nil
		c.state.Generation = gen
		if len(points) == 0 {
			result = metrics.FetchResultEmpty
			c.state.Message = MessageNoData
		}
	}
	c.mu.Unlock()

	metrics.RecordViewFetch(result, len(points), elapsed)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("user", req.User).Msg("Failed to load locations")
	} else {
		logging.Ctx(ctx).Debug().
			Str("user", req.User).
			Str("device", req.Device).
			Int("devices", len(req.Targets())).
			Int("points", len(points)).
			Dur("duration", elapsed).
			Msg("Locations loaded")
	}
	c.publish()
}

func (c *Coordinator) publish() {
	if c.publisher == nil {
		return
	}
	c.publisher.BroadcastJSON(EventViewUpdated, c.Summary())
}

func (c *Coordinator) copyLocked(withPoints bool) State {
	s := c.state
	s.Filter.Range = copyRange(c.state.Filter.Range)
	s.Users = copyUsers(c.state.Users)
	s.PointCount = len(c.state.Points)
	if withPoints {
		s.Points = make([]models.LocationPoint, len(c.state.Points))
		copy(s.Points, c.state.Points)
	} else {
		s.Points = nil
	}
	if c.state.SelectedIndex != nil {
		i := *c.state.SelectedIndex
		s.SelectedIndex = &i
	}
	return s
}

func copyRange(r models.DateRange) models.DateRange {
	var out models.DateRange
	if r.From != nil {
		t := *r.From
		out.From = &t
	}
	if r.To != nil {
		t := *r.To
		out.To = &t
	}
	return out
}

func copyUsers(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		devices := make([]models.Device, len(u.Devices))
		copy(devices, u.Devices)
		out[i] = models.User{Name: u.Name, Devices: devices}
	}
	return out
}

func containsDevice(u *models.User, device string) bool {
	for _, d := range u.Devices {
		if d.Device == device {
			return true
		}
	}
	return false
}
