// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package viewstate

import (
	"errors"
	"testing"
	"time"
)

func TestPresetRange(t *testing.T) {
	tests := []struct {
		preset Preset
		span   time.Duration
	}{
		{PresetLast12Hours, 12 * time.Hour},
		{PresetLast24Hours, 24 * time.Hour},
		{PresetLast7Days, 7 * 24 * time.Hour},
		{PresetLast30Days, 30 * 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			r, err := tt.preset.Range(testNow)
			if err != nil {
				t.Fatal(err)
			}
			if !r.Complete() {
				t.Fatal("expected complete range")
			}
			if !r.To.Equal(testNow) {
				t.Errorf("to = %v, want now", r.To)
			}
			if got := testNow.Sub(*r.From); got != tt.span {
				t.Errorf("span = %v, want %v", got, tt.span)
			}
		})
	}

	r, err := PresetCustom.Range(testNow)
	if err != nil {
		t.Fatal(err)
	}
	if r.From != nil || r.To != nil {
		t.Errorf("custom range = %+v, want empty", r)
	}

	if _, err := Preset("yesterday").Range(testNow); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetsOrder(t *testing.T) {
	got := Presets()
	if len(got) != 5 {
		t.Fatalf("presets = %d, want 5", len(got))
	}
	if got[0].Label != "Last 12 hours" || got[4].Key != PresetCustom {
		t.Errorf("unexpected presets %+v", got)
	}
}
