// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package maprender

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/wroge/wgs84"
)

const (
	// TileSize is the pixel size of one map tile.
	TileSize = 256

	// maxLatitude is the Web Mercator latitude limit.
	maxLatitude = 85.0511287798

	// originShift is half the Web Mercator world width in meters.
	originShift = 20037508.342789244
)

var (
	toMercator   = wgs84.EPSG().Transform(4326, 3857)
	fromMercator = wgs84.EPSG().Transform(3857, 4326)
)

// mercator projects lon/lat to EPSG:3857 meters.
func mercator(lon, lat float64) orb.Point {
	lat = math.Max(-maxLatitude, math.Min(maxLatitude, lat))
	x, y, _ := toMercator(lon, lat, 0)
	return orb.Point{x, y}
}

// unmercator converts EPSG:3857 meters back to lon/lat.
func unmercator(p orb.Point) orb.Point {
	lon, lat, _ := fromMercator(p[0], p[1], 0)
	return orb.Point{lon, lat}
}

// worldSize is the world width in pixels at zoom.
func worldSize(zoom int) float64 {
	return TileSize * math.Exp2(float64(zoom))
}

// toPixel converts EPSG:3857 meters to global pixel coordinates at zoom,
// with the origin at the top-left of the world.
func toPixel(m orb.Point, zoom int) orb.Point {
	scale := worldSize(zoom) / (2 * originShift)
	return orb.Point{
		(m[0] + originShift) * scale,
		(originShift - m[1]) * scale,
	}
}
