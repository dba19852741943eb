// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package models

import "time"

// DateRange is an optional time window. A fetch is only eligible when both
// ends are set.
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// Complete reports whether both ends of the range are set.
func (r DateRange) Complete() bool {
	return r.From != nil && r.To != nil
}

// Equal compares two ranges by instant, treating nil ends as equal only to nil.
func (r DateRange) Equal(o DateRange) bool {
	return timePtrEqual(r.From, o.From) && timePtrEqual(r.To, o.To)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// NewDateRange builds a complete range.
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: &from, To: &to}
}

// DisplayModes are independent layer toggles; any combination is valid.
type DisplayModes struct {
	Points  bool `json:"points"`
	Track   bool `json:"track"`
	Heatmap bool `json:"heatmap"`
}

// DefaultDisplayModes shows points only.
func DefaultDisplayModes() DisplayModes {
	return DisplayModes{Points: true}
}
