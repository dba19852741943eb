// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package maprender

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Layer names used in the "layer" feature property.
const (
	LayerPoints     = "points"
	LayerTrack      = "track"
	LayerTrackStart = "track_start"
	LayerTrackEnd   = "track_end"
	LayerHeatmap    = "heatmap"
)

// FeatureCollection encodes the scene as GeoJSON. Marker clusters come
// first, then the track and its glyphs, then heat samples.
func (s *Scene) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, c := range s.Clusters {
		f := geojson.NewFeature(orb.Point{c.Lon, c.Lat})
		f.Properties["layer"] = LayerPoints
		f.Properties["count"] = c.Count
		if c.Count == 1 {
			f.Properties["index"] = c.Indices[0]
		} else {
			f.Properties["indices"] = c.Indices
		}
		fc.Append(f)
	}

	if s.Track != nil {
		line := geojson.NewFeature(s.Track.Line)
		line.Properties["layer"] = LayerTrack
		line.Properties["color"] = s.Track.Color
		line.Properties["weight"] = s.Track.Weight
		line.Properties["opacity"] = s.Track.Opacity
		fc.Append(line)

		for _, g := range []struct {
			layer string
			glyph Glyph
		}{{LayerTrackStart, s.Track.Start}, {LayerTrackEnd, s.Track.End}} {
			f := geojson.NewFeature(orb.Point{g.glyph.Lon, g.glyph.Lat})
			f.Properties["layer"] = g.layer
			f.Properties["label"] = g.glyph.Label
			f.Properties["color"] = g.glyph.Color
			f.Properties["tst"] = g.glyph.Tst
			f.Properties["index"] = g.glyph.Index
			fc.Append(f)
		}
	}

	if s.Heat != nil {
		for _, h := range s.Heat.Points {
			f := geojson.NewFeature(orb.Point{h.Lon, h.Lat})
			f.Properties["layer"] = LayerHeatmap
			f.Properties["weight"] = h.Weight
			fc.Append(f)
		}
	}

	if s.Viewport != nil {
		fc.BBox = geojson.NewBBox(s.Viewport.Bounds)
	}
	return fc
}
