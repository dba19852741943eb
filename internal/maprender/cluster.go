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

// ClusterRadiusPx is the maximum pixel distance from a cluster's centre at
// which a point still joins it.
const ClusterRadiusPx = 50

// Cluster is a group of nearby points at one zoom level. A cluster with a
// single member is drawn as a plain marker.
type Cluster struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Count   int     `json:"count"`
	Indices []int   `json:"indices"`
}

type gridCell struct{ x, y int }

type pendingCluster struct {
	px      orb.Point // running pixel centroid
	sumLat  float64
	sumLon  float64
	indices []int
}

// clusterPoints groups points greedily in input order. Each point joins the
// nearest existing cluster within radius pixels, found through a grid of
// radius-sized cells, or starts a new one.
func clusterPoints(points []models.LocationPoint, zoom int, radius float64) []Cluster {
	if len(points) == 0 {
		return nil
	}

	var clusters []*pendingCluster
	grid := make(map[gridCell][]*pendingCluster)
	cellOf := func(p orb.Point) gridCell {
		return gridCell{int(math.Floor(p[0] / radius)), int(math.Floor(p[1] / radius))}
	}

	for i := range points {
		p := toPixel(mercator(points[i].Lon, points[i].Lat), zoom)
		cell := cellOf(p)

		var best *pendingCluster
		bestDist := radius
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, c := range grid[gridCell{cell.x + dx, cell.y + dy}] {
					if d := distance(c.px, p); d <= bestDist {
						best, bestDist = c, d
					}
				}
			}
		}

		if best == nil {
			c := &pendingCluster{px: p, sumLat: points[i].Lat, sumLon: points[i].Lon, indices: []int{i}}
			clusters = append(clusters, c)
			grid[cell] = append(grid[cell], c)
			continue
		}

		// The centroid moves, but the cluster stays filed under the cell it
		// was created in. Lookups scan neighbouring cells so a drift of up
		// to one radius is still found.
		n := float64(len(best.indices))
		best.px = orb.Point{
			(best.px[0]*n + p[0]) / (n + 1),
			(best.px[1]*n + p[1]) / (n + 1),
		}
		best.sumLat += points[i].Lat
		best.sumLon += points[i].Lon
		best.indices = append(best.indices, i)
	}

	out := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		n := float64(len(c.indices))
		out = append(out, Cluster{
			Lat:     c.sumLat / n,
			Lon:     c.sumLon / n,
			Count:   len(c.indices),
			Indices: c.indices,
		})
	}
	return out
}

func distance(a, b orb.Point) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}
