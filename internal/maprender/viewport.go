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

// Viewport defaults and fit parameters.
const (
	DefaultCenterLat = 51.505
	DefaultCenterLon = -0.09
	DefaultZoom      = 13
	FitPaddingPx     = 50
	FitMaxZoom       = 15
	DefaultWidth     = 1024
	DefaultHeight    = 768
)

// Viewport is a map centre and zoom.
type Viewport struct {
	Lat    float64   `json:"lat"`
	Lon    float64   `json:"lon"`
	Zoom   int       `json:"zoom"`
	Bounds orb.Bound `json:"-"`
}

// DefaultViewport is where the map starts before any data is loaded.
func DefaultViewport() Viewport {
	return Viewport{Lat: DefaultCenterLat, Lon: DefaultCenterLon, Zoom: DefaultZoom}
}

// Bounds returns the lon/lat bounding box of points.
func Bounds(points []models.LocationPoint) (orb.Bound, bool) {
	if len(points) == 0 {
		return orb.Bound{}, false
	}
	first := orb.Point{points[0].Lon, points[0].Lat}
	b := orb.Bound{Min: first, Max: first}
	for i := 1; i < len(points); i++ {
		b = b.Extend(orb.Point{points[i].Lon, points[i].Lat})
	}
	return b, true
}

// FitBounds returns the viewport that shows b inside a width x height pixel
// map with padding on every side. Zoom is the largest whole level at which
// the box fits, capped at maxZoom.
func FitBounds(b orb.Bound, width, height, padding, maxZoom int) Viewport {
	minM := mercator(b.Min[0], b.Min[1])
	maxM := mercator(b.Max[0], b.Max[1])

	// Pixel extent at zoom 0.
	lo := toPixel(minM, 0)
	hi := toPixel(maxM, 0)
	spanX := math.Abs(hi[0] - lo[0])
	spanY := math.Abs(hi[1] - lo[1])

	availX := math.Max(float64(width-2*padding), 1)
	availY := math.Max(float64(height-2*padding), 1)

	zoom := maxZoom
	if spanX > 0 || spanY > 0 {
		scale := math.Inf(1)
		if spanX > 0 {
			scale = math.Min(scale, availX/spanX)
		}
		if spanY > 0 {
			scale = math.Min(scale, availY/spanY)
		}
		zoom = int(math.Floor(math.Log2(scale)))
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	if zoom < 0 {
		zoom = 0
	}

	// The projection round trip is not exact; keep the centre inside b.
	center := unmercator(orb.Point{(minM[0] + maxM[0]) / 2, (minM[1] + maxM[1]) / 2})
	return Viewport{
		Lat:    clamp(center[1], b.Min[1], b.Max[1]),
		Lon:    clamp(center[0], b.Min[0], b.Max[0]),
		Zoom:   zoom,
		Bounds: b,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
