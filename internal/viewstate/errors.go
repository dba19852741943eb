// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package viewstate

import "errors"

// Sentinel errors returned by Coordinator operations.
var (
	ErrUnknownUser    = errors.New("unknown user")
	ErrUnknownDevice  = errors.New("unknown device")
	ErrNoUserSelected = errors.New("no user selected")
	ErrUnknownPreset  = errors.New("unknown date range preset")
	ErrFetchInFlight  = errors.New("a fetch is already in progress")
	ErrPointNotFound  = errors.New("point not found")
)

// Messages shown to the user. They are part of the view state, not errors.
const (
	MessageUsersFailed     = "Failed to load users. Please check your connection."
	MessageNoData          = "No location data found for the selected period."
	MessageLocationsFailed = "Failed to load location data. Please try again."
)
