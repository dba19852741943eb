// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package maprender

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/tomtom215/trackview/internal/models"
)

// Track styling.
const (
	TrackColor      = "#3b82f6"
	TrackWeight     = 3
	TrackOpacity    = 0.7
	StartGlyphColor = "#22c55e"
	EndGlyphColor   = "#ef4444"
)

// Glyph is a labelled marker at one end of the track.
type Glyph struct {
	Kind  string  `json:"kind"`
	Label string  `json:"label"`
	Color string  `json:"color"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Tst   int64   `json:"tst"`
	Index int     `json:"index"`
}

// Track is the polyline through all points in order.
type Track struct {
	Line    orb.LineString `json:"-"`
	Color   string         `json:"color"`
	Weight  int            `json:"weight"`
	Opacity float64        `json:"opacity"`
	Start   Glyph          `json:"start"`
	End     Glyph          `json:"end"`
}

// buildTrack returns nil for fewer than two points.
func buildTrack(points []models.LocationPoint) *Track {
	if len(points) < 2 {
		return nil
	}
	line := make(orb.LineString, len(points))
	for i := range points {
		line[i] = orb.Point{points[i].Lon, points[i].Lat}
	}
	last := len(points) - 1
	return &Track{
		Line:    line,
		Color:   TrackColor,
		Weight:  TrackWeight,
		Opacity: TrackOpacity,
		Start:   glyph("start", "S", StartGlyphColor, points[0], 0),
		End:     glyph("end", "E", EndGlyphColor, points[last], last),
	}
}

func glyph(kind, label, color string, p models.LocationPoint, index int) Glyph {
	return Glyph{Kind: kind, Label: label, Color: color, Lat: p.Lat, Lon: p.Lon, Tst: p.Tst, Index: index}
}

// HeatOptions mirrors the heat layer's drawing parameters.
type HeatOptions struct {
	Radius   int               `json:"radius"`
	Blur     int               `json:"blur"`
	MaxZoom  int               `json:"maxZoom"`
	Max      float64           `json:"max"`
	Gradient map[string]string `json:"gradient"`
}

// DefaultHeatOptions returns the heat layer settings.
func DefaultHeatOptions() HeatOptions {
	return HeatOptions{
		Radius:  25,
		Blur:    15,
		MaxZoom: 17,
		Max:     1.0,
		Gradient: map[string]string{
			"0.0": "blue",
			"0.3": "cyan",
			"0.5": "lime",
			"0.7": "yellow",
			"1.0": "red",
		},
	}
}

// HeatPoint is one weighted heat sample.
type HeatPoint struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Weight float64 `json:"weight"`
}

// HeatLayer is the weighted point set plus its options.
type HeatLayer struct {
	Points  []HeatPoint `json:"points"`
	Options HeatOptions `json:"options"`
}

// defaultHeatWeight is used when a point has no positive velocity.
const defaultHeatWeight = 0.5

// HeatWeight is min(vel/100, 1) for a positive velocity, else 0.5.
func HeatWeight(p *models.LocationPoint) float64 {
	if !p.HasVelocity() {
		return defaultHeatWeight
	}
	return math.Min(*p.Vel/100, 1.0)
}

func buildHeat(points []models.LocationPoint) *HeatLayer {
	heat := &HeatLayer{Points: make([]HeatPoint, len(points)), Options: DefaultHeatOptions()}
	for i := range points {
		heat.Points[i] = HeatPoint{Lat: points[i].Lat, Lon: points[i].Lon, Weight: HeatWeight(&points[i])}
	}
	return heat
}
