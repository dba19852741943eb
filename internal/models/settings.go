// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package models

// Settings is the persisted recorder connection record.
type Settings struct {
	ServerURL string `json:"server_url"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	UseProxy  bool   `json:"use_proxy"`
}

// Masked returns a copy safe to hand to the browser.
func (s Settings) Masked() Settings {
	if s.Password != "" {
		s.Password = "********"
	}
	return s
}
