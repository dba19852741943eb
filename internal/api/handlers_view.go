// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/trackview/internal/models"
	"github.com/tomtom215/trackview/internal/viewstate"
)

type selectUserRequest struct {
	User string `json:"user" validate:"max=256"`
}

type selectDeviceRequest struct {
	Device string `json:"device" validate:"max=256"`
}

type dateRangeRequest struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

type presetRequest struct {
	Preset string `json:"preset" validate:"required,oneof=last_12h last_24h last_7d last_30d custom"`
}

type displayModesRequest struct {
	Points  bool `json:"points"`
	Track   bool `json:"track"`
	Heatmap bool `json:"heatmap"`
}

type interactionRequest struct {
	Kind string `json:"kind" validate:"required,oneof=dragstart"`
}

type controlsRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

// respondViewError maps coordinator errors to HTTP responses.
func respondViewError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	switch {
	case errors.Is(err, viewstate.ErrUnknownUser), errors.Is(err, viewstate.ErrUnknownDevice),
		errors.Is(err, viewstate.ErrPointNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, viewstate.ErrNoUserSelected), errors.Is(err, viewstate.ErrFetchInFlight):
		rw.Conflict(err.Error())
	case errors.Is(err, viewstate.ErrUnknownPreset):
		rw.BadRequest(err.Error())
	default:
		rw.InternalError("View update failed", err)
	}
}

// writeView answers with the view summary after a mutation.
func (h *Handler) writeView(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		respondViewError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(h.view.Summary())
}

// View returns the current view state without the point list.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.view.Summary())
}

// SelectUser changes the selected user, clearing the device selection.
func (h *Handler) SelectUser(w http.ResponseWriter, r *http.Request) {
	var req selectUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.writeView(w, r, h.view.SelectUser(detach(r), req.User))
}

// SelectDevice narrows the view to one device; empty selects all devices.
func (h *Handler) SelectDevice(w http.ResponseWriter, r *http.Request) {
	var req selectDeviceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.writeView(w, r, h.view.SelectDevice(detach(r), req.Device))
}

// SetDateRange stores the range. Either end may be null, in which case
// nothing is loaded until both are set.
func (h *Handler) SetDateRange(w http.ResponseWriter, r *http.Request) {
	var req dateRangeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.writeView(w, r, h.view.SetDateRange(detach(r), models.DateRange{From: req.From, To: req.To}))
}

// Presets lists the quick range choices.
func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	presets := viewstate.Presets()
	NewResponseWriter(w, r).SuccessWithCount(presets, len(presets))
}

// ApplyPreset resolves a preset against the current time.
func (h *Handler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.writeView(w, r, h.view.ApplyPreset(detach(r), viewstate.Preset(req.Preset), h.now()))
}

// SetDisplayModes toggles map layers. Never loads data.
func (h *Handler) SetDisplayModes(w http.ResponseWriter, r *http.Request) {
	var req displayModesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	modes := models.DisplayModes{Points: req.Points, Track: req.Track, Heatmap: req.Heatmap}
	h.writeView(w, r, h.view.SetDisplayModes(detach(r), modes))
}

// Refresh reloads the current selection. Answers 409 while a load runs.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, r, h.view.Refresh(detach(r)))
}

// MapInteraction reports a user pan of the map.
func (h *Handler) MapInteraction(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	changed := h.view.MapInteraction()
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"changed": changed,
		"view":    h.view.Summary(),
	})
}

// SetControls shows or hides the filter controls.
func (h *Handler) SetControls(w http.ResponseWriter, r *http.Request) {
	var req controlsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.view.SetControlsVisible(*req.Visible)
	NewResponseWriter(w, r).Success(h.view.Summary())
}

// Locations returns the loaded point list.
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	state := h.view.Snapshot()
	points := state.Points
	if points == nil {
		points = []models.LocationPoint{}
	}
	NewResponseWriter(w, r).SuccessWithCount(map[string]interface{}{
		"points":     points,
		"modes":      state.Filter.Modes,
		"loading":    state.Loading,
		"message":    state.Message,
		"generation": state.Generation,
	}, len(points))
}

// LocationDetail selects a point and returns its detail panel.
func (h *Handler) LocationDetail(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		NewResponseWriter(w, r).BadRequest("index must be an integer")
		return
	}
	details, err := h.view.SelectPoint(index)
	if err != nil {
		respondViewError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(details)
}

// ClearSelection closes the detail panel.
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.view.ClearSelectedPoint()
	NewResponseWriter(w, r).NoContent()
}
