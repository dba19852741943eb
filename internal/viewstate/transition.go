// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package viewstate

import (
	"time"

	"github.com/tomtom215/trackview/internal/models"
	"github.com/tomtom215/trackview/internal/recorder"
)

// Filter is the user-controlled part of the view.
type Filter struct {
	User   string              `json:"user"`
	Device string              `json:"device"`
	Range  models.DateRange    `json:"range"`
	Modes  models.DisplayModes `json:"modes"`
}

// FetchRequest describes one locations load. When Device is set a single
// request is made; otherwise one request per entry in Devices.
type FetchRequest struct {
	User    string
	Device  string
	Devices []string
	From    time.Time
	To      time.Time
	Format  recorder.Format
}

// Targets returns the devices the request fans out to.
func (r *FetchRequest) Targets() []string {
	if r.Device != "" {
		return []string{r.Device}
	}
	return r.Devices
}

// query builds the recorder query for one device.
func (r *FetchRequest) query(device string) recorder.LocationQuery {
	from, to := r.From, r.To
	return recorder.LocationQuery{
		User:   r.User,
		Device: device,
		From:   &from,
		To:     &to,
		Format: r.Format,
	}
}

// OnFilterChanged decides whether moving from prev to next needs a
// locations load. It returns nil when no user is selected, when either
// range endpoint is missing, or when only the display modes changed.
func OnFilterChanged(prev, next Filter, users []models.User) *FetchRequest {
	if prev.User == next.User && prev.Device == next.Device && prev.Range.Equal(next.Range) {
		return nil
	}
	return buildRequest(next, users)
}

// buildRequest returns the request for f regardless of what changed, or nil
// when f is not fetchable.
func buildRequest(f Filter, users []models.User) *FetchRequest {
	if f.User == "" || !f.Range.Complete() {
		return nil
	}

	req := &FetchRequest{
		User:   f.User,
		Device: f.Device,
		From:   *f.Range.From,
		To:     *f.Range.To,
		Format: recorder.FormatJSON,
	}
	if f.Modes.Track {
		req.Format = recorder.FormatLineString
	}
	if f.Device == "" {
		if u := models.FindUser(users, f.User); u != nil {
			req.Devices = u.DeviceNames()
		}
	}
	return req
}
