// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

/*
Package main is the entry point for the Trackview server.

Trackview reads location history from an OwnTracks Recorder and serves a
shared map view over HTTP and WebSocket: the selected user and device, the
date range, which layers are drawn, and the resulting points, track and heat
layer.

# Application Architecture

	RootSupervisor ("trackview")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket Hub (view_updated, users_loaded, settings_saved)
	│   └── Users refresh (initial load, then periodic)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: koanf v2 (defaults, CONFIG_PATH file, environment)
 2. Logging: zerolog with the configured level and format
 3. Settings store: Badger at SETTINGS_PATH, holding the recorder connection
 4. WebSocket hub and view coordinator
 5. Auth, router and HTTP server
 6. Supervisor tree, until SIGINT or SIGTERM

# Configuration

	RECORDER_URL=http://recorder:8083   recorder root; /api/0 is appended
	RECORDER_USE_PROXY=true             route browser calls through /api/0 here
	SETTINGS_PATH=/data/settings        empty runs in memory
	AUTH_MODE=basic                     none | basic
	ADMIN_USERNAME=admin
	ADMIN_PASSWORD=change-me-please
	HTTP_PORT=8090
	LOG_LEVEL=info
	LOG_FORMAT=json

# Example

	docker run -d -p 8090:8090 \
	  -e RECORDER_URL=http://recorder:8083 \
	  -v trackview-data:/data \
	  ghcr.io/tomtom215/trackview
*/
package main
