// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

/*
Package auth protects the Trackview API itself.

Two modes are supported, selected by security.auth_mode:

  - none: every request passes
  - basic: HTTP Basic credentials checked against one configured account

The configured password is hashed with bcrypt once at startup; requests are
checked with bcrypt.CompareHashAndPassword and a constant-time username
comparison. Failures answer 401 with a WWW-Authenticate challenge and the
JSON error envelope used by the rest of the API.

These credentials are unrelated to the recorder credentials kept in the
settings store; those are sent upstream, these guard the viewer.

SecurityHeaders sets a locked-down CSP and related headers on every API
response.
*/
package auth
