// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

/*
Package models defines data structures shared across Trackview.

Key Components:

  - LocationPoint: a single fix as stored by the recorder
  - LastPosition: most recent fix per device, keyed by topic on the recorder
  - Device / User: read-only projections derived from last positions
  - DateRange / DisplayModes: viewer filter state
  - Settings: recorder connection settings persisted by internal/settings
  - VersionInfo: free-form recorder version map

Optional numeric fields on LocationPoint are pointers so an absent value is
never confused with zero (a battery at 0% is still a reading).
*/
package models
