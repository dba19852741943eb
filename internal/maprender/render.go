// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

// Package maprender turns a list of location points and the active display
// modes into a map scene: clustered markers, a track with start and end
// glyphs, a weighted heat layer and a viewport fitted to the data.
//
// Clustering and fitting work in Web Mercator pixel space (EPSG:3857 via
// wroge/wgs84). Scenes encode to a GeoJSON FeatureCollection where every
// feature carries a "layer" property.
package maprender

import (
	"time"

	"github.com/tomtom215/trackview/internal/metrics"
	"github.com/tomtom215/trackview/internal/models"
)

// Options controls the viewport a scene is rendered for.
type Options struct {
	// Width and Height are the map size in pixels. Zero takes the defaults.
	Width  int
	Height int

	// Zoom is the level used for clustering. Zero uses the fitted zoom, or
	// DefaultZoom when there is nothing to fit.
	Zoom int
}

// Scene is everything the map draws for one point list.
type Scene struct {
	// Viewport is nil when there are no points; the map keeps its view.
	Viewport   *Viewport           `json:"viewport,omitempty"`
	Zoom       int                 `json:"zoom"`
	PointCount int                 `json:"point_count"`
	Modes      models.DisplayModes `json:"modes"`
	Clusters   []Cluster           `json:"clusters,omitempty"`
	Track      *Track              `json:"track,omitempty"`
	Heat       *HeatLayer          `json:"heat,omitempty"`
}

// Render builds the scene for points under modes.
func Render(points []models.LocationPoint, modes models.DisplayModes, opts Options) Scene {
	start := time.Now()
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	scene := Scene{PointCount: len(points), Modes: modes, Zoom: opts.Zoom}
	if b, ok := Bounds(points); ok {
		vp := FitBounds(b, opts.Width, opts.Height, FitPaddingPx, FitMaxZoom)
		scene.Viewport = &vp
	}
	if scene.Zoom <= 0 {
		scene.Zoom = DefaultZoom
		if scene.Viewport != nil {
			scene.Zoom = scene.Viewport.Zoom
		}
	}

	if modes.Points {
		scene.Clusters = clusterPoints(points, scene.Zoom, ClusterRadiusPx)
	}
	if modes.Track {
		scene.Track = buildTrack(points)
	}
	if modes.Heatmap && len(points) > 0 {
		scene.Heat = buildHeat(points)
	}

	metrics.SceneRenderDuration.WithLabelValues(layersLabel(modes)).Observe(time.Since(start).Seconds())
	return scene
}

// layersLabel is a compact metric label such as "points+track".
func layersLabel(m models.DisplayModes) string {
	label := ""
	add := func(on bool, name string) {
		if !on {
			return
		}
		if label != "" {
			label += "+"
		}
		label += name
	}
	add(m.Points, "points")
	add(m.Track, "track")
	add(m.Heatmap, "heatmap")
	if label == "" {
		return "none"
	}
	return label
}
