// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package viewstate

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/trackview/internal/models"
)

// fetchPoints runs req against src. A single-device request returns the
// recorder's order unchanged. A multi-device request loads every device
// concurrently, waits for all of them, and merges the results ordered by
// timestamp. Equal timestamps keep device order.
func fetchPoints(ctx context.Context, src Source, req *FetchRequest) ([]models.LocationPoint, error) {
	if req.Device != "" {
		points, err := src.Locations(ctx, req.query(req.Device))
		if err != nil {
			return nil, fmt.Errorf("load locations for %s/%s: %w", req.User, req.Device, err)
		}
		if points == nil {
			points = []models.LocationPoint{}
		}
		return points, nil
	}

	results := make([][]models.LocationPoint, len(req.Devices))
	var g errgroup.Group
	for i, device := range req.Devices {
		g.Go(func() error {
			points, err := src.Locations(ctx, req.query(device))
			if err != nil {
				return fmt.Errorf("load locations for %s/%s: %w", req.User, device, err)
			}
			results[i] = points
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]models.LocationPoint, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Tst < merged[b].Tst
	})
	return merged, nil
}
