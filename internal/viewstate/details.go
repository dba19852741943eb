// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package viewstate

import (
	"strconv"
	"time"

	"github.com/tomtom215/trackview/internal/models"
)

// detailTimeLayout matches the long date-time rendering of the detail panel.
const detailTimeLayout = "Jan 2, 2006, 3:04:05 PM"

// PointDetails is the detail panel content for one selected point. Optional
// fields are omitted when the panel would not show them.
type PointDetails struct {
	Index       int      `json:"index"`
	Coordinates string   `json:"coordinates"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Place       string   `json:"place,omitempty"`
	Timestamp   string   `json:"timestamp"`
	Time        string   `json:"time"`
	Battery     *float64 `json:"battery,omitempty"`
	Velocity    *float64 `json:"velocity,omitempty"`
	Altitude    *float64 `json:"altitude,omitempty"`
	Accuracy    *float64 `json:"accuracy,omitempty"`
	TrackerID   string   `json:"tracker_id,omitempty"`
}

// NewPointDetails formats p for the detail panel.
func NewPointDetails(index int, p *models.LocationPoint) PointDetails {
	d := PointDetails{
		Index:       index,
		Coordinates: formatCoord(p.Lat) + ", " + formatCoord(p.Lon),
		Latitude:    p.Lat,
		Longitude:   p.Lon,
		Place:       p.Addr,
		Battery:     p.Batt,
		Altitude:    p.Alt,
		Accuracy:    p.Acc,
		TrackerID:   p.Tid,
	}
	if d.Place == "" {
		d.Place = p.Locality
	}

	ts := p.Time()
	if p.IsoTst != "" {
		if parsed, err := time.Parse(time.RFC3339, p.IsoTst); err == nil {
			ts = parsed.UTC()
		}
	}
	d.Timestamp = ts.Format(time.RFC3339)
	d.Time = ts.Format(detailTimeLayout)

	if p.HasVelocity() {
		d.Velocity = p.Vel
	}
	return d
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
