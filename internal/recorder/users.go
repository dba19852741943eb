// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package recorder

import "github.com/tomtom215/trackview/internal/models"

// GroupUsers groups last positions by username in first-seen order. Each
// user lists each of its devices once; every device's User equals the
// owning user's Name.
func GroupUsers(positions []models.LastPosition) []models.User {
	users := make([]models.User, 0)
	index := make(map[string]int)

	for i := range positions {
		pos := &positions[i]
		idx, ok := index[pos.Username]
		if !ok {
			idx = len(users)
			index[pos.Username] = idx
			users = append(users, models.User{Name: pos.Username, Devices: []models.Device{}})
		}

		user := &users[idx]
		if hasDevice(user.Devices, pos.Device) {
			continue
		}
		user.Devices = append(user.Devices, models.Device{
			User:   pos.Username,
			Device: pos.Device,
			Tid:    pos.Tid,
		})
	}
	return users
}

// DedupeDevices returns one Device per (user, device) in first-seen order.
func DedupeDevices(positions []models.LastPosition) []models.Device {
	type key struct{ user, device string }

	devices := make([]models.Device, 0, len(positions))
	seen := make(map[key]struct{}, len(positions))
	for i := range positions {
		pos := &positions[i]
		k := key{pos.Username, pos.Device}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		devices = append(devices, models.Device{
			User:   pos.Username,
			Device: pos.Device,
			Tid:    pos.Tid,
		})
	}
	return devices
}

func hasDevice(devices []models.Device, name string) bool {
	for _, d := range devices {
		if d.Device == name {
			return true
		}
	}
	return false
}
