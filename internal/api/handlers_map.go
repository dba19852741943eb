// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package api

import (
	"net/http"

	"github.com/paulmach/orb/geojson"

	"github.com/tomtom215/trackview/internal/logging"
	"github.com/tomtom215/trackview/internal/maprender"
)

// sceneQuery holds the viewport parameters of /map/scene.
type sceneQuery struct {
	Zoom   int `json:"zoom" validate:"mapzoom"`
	Width  int `json:"width" validate:"min=0,max=8192"`
	Height int `json:"height" validate:"min=0,max=8192"`
}

// sceneResponse pairs the scene description with its GeoJSON encoding.
type sceneResponse struct {
	Scene    maprender.Scene            `json:"scene"`
	Features *geojson.FeatureCollection `json:"features"`
}

// MapScene renders the loaded points for a viewport. With format=geojson
// the bare FeatureCollection is returned instead of the envelope.
func (h *Handler) MapScene(w http.ResponseWriter, r *http.Request) {
	var q sceneQuery
	var ok bool
	for _, p := range []struct {
		name string
		dst  *int
	}{{"zoom", &q.Zoom}, {"width", &q.Width}, {"height", &q.Height}} {
		if *p.dst, ok = getIntParam(r, p.name, 0); !ok {
			NewResponseWriter(w, r).BadRequest(p.name + " must be an integer")
			return
		}
	}
	if !validateRequest(w, r, &q) {
		return
	}

	points, modes := h.view.Points()
	scene := maprender.Render(points, modes, maprender.Options{
		Width:  q.Width,
		Height: q.Height,
		Zoom:   q.Zoom,
	})
	fc := scene.FeatureCollection()

	if r.URL.Query().Get("format") == "geojson" {
		data, err := fc.MarshalJSON()
		if err != nil {
			NewResponseWriter(w, r).InternalError("Failed to encode scene", err)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write scene")
		}
		return
	}

	NewResponseWriter(w, r).Success(sceneResponse{Scene: scene, Features: fc})
}
