// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

/*
Package services adapts Trackview components to suture.Service.

Each wrapper turns a component's lifecycle into Serve(ctx) error and names
itself through fmt.Stringer for supervisor logs:

  - HTTPServerService: ListenAndServe plus graceful Shutdown
  - WebSocketHubService: delegates to Hub.RunWithContext
  - UsersRefreshService: reloads the recorder user list on an interval

Returning ctx.Err() on shutdown tells suture the stop was requested; any
other error counts as a failure and triggers a restart with backoff.
*/
package services
