// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package models

import "time"

// LocationPoint is one recorded fix. Points are immutable once fetched and
// have no identity beyond their position in the list they were returned in.
type LocationPoint struct {
	Type     string   `json:"_type,omitempty"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Tst      int64    `json:"tst"`
	Tid      string   `json:"tid,omitempty"`
	Batt     *float64 `json:"batt,omitempty"`
	Vel      *float64 `json:"vel,omitempty"`
	Alt      *float64 `json:"alt,omitempty"`
	Acc      *float64 `json:"acc,omitempty"`
	Cog      *float64 `json:"cog,omitempty"`
	Trigger  string   `json:"t,omitempty"`
	Mode     *int     `json:"m,omitempty"`
	BattStat *int     `json:"bs,omitempty"`
	SSID     string   `json:"SSID,omitempty"`
	BSSID    string   `json:"BSSID,omitempty"`
	Conn     string   `json:"conn,omitempty"`
	Regions  []string `json:"inregions,omitempty"`
	Addr     string   `json:"addr,omitempty"`
	Locality string   `json:"locality,omitempty"`
	CC       string   `json:"cc,omitempty"`
	Ghash    string   `json:"ghash,omitempty"`
	IsoTst   string   `json:"isotst,omitempty"`
	IsoRcv   string   `json:"isorcv,omitempty"`
	DispTst  string   `json:"disptst,omitempty"`
}

// Time returns the fix time in UTC.
func (p *LocationPoint) Time() time.Time {
	return time.Unix(p.Tst, 0).UTC()
}

// HasVelocity reports whether a positive velocity was recorded.
func (p *LocationPoint) HasVelocity() bool {
	return p.Vel != nil && *p.Vel > 0
}

// LastPosition is a device's most recent fix as returned by GET /last.
type LastPosition struct {
	LocationPoint
	Username string `json:"username"`
	Device   string `json:"device"`
	Topic    string `json:"topic,omitempty"`
}

// Device identifies one tracker. Unique per (User, Device).
type Device struct {
	User   string `json:"user"`
	Device string `json:"device"`
	Tid    string `json:"tid,omitempty"`
}

// User groups the devices reporting under one recorder username.
type User struct {
	Name    string   `json:"name"`
	Devices []Device `json:"devices"`
}

// DeviceNames returns the user's device identifiers in order.
func (u *User) DeviceNames() []string {
	names := make([]string, 0, len(u.Devices))
	for _, d := range u.Devices {
		names = append(names, d.Device)
	}
	return names
}

// FindUser returns the user with the given name, or nil.
func FindUser(users []User, name string) *User {
	for i := range users {
		if users[i].Name == name {
			return &users[i]
		}
	}
	return nil
}

// LocationsResponse is the recorder's json-format body for GET /locations.
type LocationsResponse struct {
	Count  int             `json:"count"`
	Data   []LocationPoint `json:"data"`
	Status int             `json:"status"`
}

// VersionInfo is the free-form body of GET /version. It always carries "version".
type VersionInfo map[string]interface{}

// UnknownVersion is returned when the recorder version cannot be fetched.
func UnknownVersion() VersionInfo {
	return VersionInfo{"version": "unknown"}
}

// Version returns the "version" entry as a string.
func (v VersionInfo) Version() string {
	if s, ok := v["version"].(string); ok {
		return s
	}
	return "unknown"
}
