// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package viewstate

import (
	"time"

	"github.com/tomtom215/trackview/internal/models"
)

// Preset names a quick date range choice.
type Preset string

const (
	PresetLast12Hours Preset = "last_12h"
	PresetLast24Hours Preset = "last_24h"
	PresetLast7Days   Preset = "last_7d"
	PresetLast30Days  Preset = "last_30d"
	PresetCustom      Preset = "custom"
)

// PresetInfo is the label shown for a preset.
type PresetInfo struct {
	Key   Preset `json:"key"`
	Label string `json:"label"`
}

var presets = []struct {
	info PresetInfo
	span time.Duration
}{
	{PresetInfo{PresetLast12Hours, "Last 12 hours"}, 12 * time.Hour},
	{PresetInfo{PresetLast24Hours, "Last 24 hours"}, 24 * time.Hour},
	{PresetInfo{PresetLast7Days, "Last 7 days"}, 7 * 24 * time.Hour},
	{PresetInfo{PresetLast30Days, "Last 30 days"}, 30 * 24 * time.Hour},
	{PresetInfo{PresetCustom, "Custom"}, 0},
}

// Presets lists the available presets in display order.
func Presets() []PresetInfo {
	out := make([]PresetInfo, 0, len(presets))
	for _, p := range presets {
		out = append(out, p.info)
	}
	return out
}

// Range resolves p against now. The custom preset yields an empty range,
// which suppresses fetching until explicit endpoints are set.
func (p Preset) Range(now time.Time) (models.DateRange, error) {
	for _, def := range presets {
		if def.info.Key != p {
			continue
		}
		if def.span == 0 {
			return models.DateRange{}, nil
		}
		return models.NewDateRange(now.Add(-def.span), now), nil
	}
	return models.DateRange{}, ErrUnknownPreset
}
