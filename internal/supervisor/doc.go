// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

/*
Package supervisor runs Trackview's long-lived services under suture v4.

The tree has two layers:

	RootSupervisor ("trackview")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService
	│   └── UsersRefreshService (initial load, then every users_refresh_interval)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed hub restarts without dropping the HTTP listener, and a failing
listener (port in use) backs off without touching the hub. Supervisor events
are logged through sutureslog on top of the zerolog slog adapter.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
