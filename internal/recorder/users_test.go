// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package recorder

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/tomtom215/trackview/internal/models"
)

func pos(user, device string) models.LastPosition {
	return models.LastPosition{Username: user, Device: device}
}

func TestGroupUsers(t *testing.T) {
	tests := []struct {
		name      string
		positions []models.LastPosition
		want      map[string][]string
		order     []string
	}{
		{
			name:      "empty",
			positions: nil,
			want:      map[string][]string{},
			order:     []string{},
		},
		{
			name:      "duplicate device collapses",
			positions: []models.LastPosition{pos("a", "x"), pos("a", "x")},
			want:      map[string][]string{"a": {"x"}},
			order:     []string{"a"},
		},
		{
			name:      "first-seen user order",
			positions: []models.LastPosition{pos("b", "1"), pos("a", "1"), pos("b", "2")},
			want:      map[string][]string{"a": {"1"}, "b": {"1", "2"}},
			order:     []string{"b", "a"},
		},
		{
			name:      "same device name under two users",
			positions: []models.LastPosition{pos("a", "phone"), pos("b", "phone")},
			want:      map[string][]string{"a": {"phone"}, "b": {"phone"}},
			order:     []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := GroupUsers(tt.positions)
			checkIntEqual(t, "users", len(users), len(tt.order))
			for i, u := range users {
				checkStringEqual(t, "order", u.Name, tt.order[i])
				devices := u.DeviceNames()
				if fmt.Sprint(devices) != fmt.Sprint(tt.want[u.Name]) {
					t.Errorf("user %s devices = %v, want %v", u.Name, devices, tt.want[u.Name])
				}
			}
		})
	}
}

// Randomized payloads must never produce duplicate users or foreign devices.
func TestGroupUsers_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"ann", "bob", "cy"}
	devices := []string{"phone", "tablet", "car", "watch"}

	for round := 0; round < 200; round++ {
		n := rng.Intn(30)
		positions := make([]models.LastPosition, n)
		for i := range positions {
			positions[i] = pos(names[rng.Intn(len(names))], devices[rng.Intn(len(devices))])
		}

		users := GroupUsers(positions)
		seenUsers := map[string]bool{}
		for _, u := range users {
			if seenUsers[u.Name] {
				t.Fatalf("round %d: duplicate user %q", round, u.Name)
			}
			seenUsers[u.Name] = true

			seenDevices := map[string]bool{}
			for _, d := range u.Devices {
				if d.User != u.Name {
					t.Fatalf("round %d: device %q has user %q under %q", round, d.Device, d.User, u.Name)
				}
				if seenDevices[d.Device] {
					t.Fatalf("round %d: duplicate device %q under %q", round, d.Device, u.Name)
				}
				seenDevices[d.Device] = true
			}
		}
	}
}

func TestDedupeDevices(t *testing.T) {
	positions := []models.LastPosition{pos("a", "x"), pos("b", "x"), pos("a", "x"), pos("a", "y")}
	devices := DedupeDevices(positions)

	checkIntEqual(t, "devices", len(devices), 3)
	got := make([]string, 0, len(devices))
	for _, d := range devices {
		got = append(got, d.User+"/"+d.Device)
	}
	if fmt.Sprint(got) != "[a/x b/x a/y]" {
		t.Errorf("devices = %v", got)
	}
}
