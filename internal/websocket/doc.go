// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

/*
Package websocket pushes view changes to connected browsers and receives map
interaction events from them.

Key Components:

  - Hub: tracks connected clients and fans broadcasts out to them
  - Client: one connection with a read goroutine and a write goroutine
  - Message: the {type, data} envelope used in both directions

Message Types:

Server to browser:

  - view_updated: view summary after any committed change
  - users_loaded: the user list after a reload
  - settings_saved: the recorder connection changed
  - pong: reply to ping
  - error: a rejected inbound message

Browser to server:

  - ping
  - map_interaction: {"kind": "dragstart"} when the user pans the map

Inbound messages are limited per connection with a token bucket
(golang.org/x/time/rate). Messages over the limit are answered with an error
frame and dropped; the connection stays open.

Usage:

	hub := websocket.NewHubWithConfig(websocket.HubConfig{
	    MessagesPerSecond: 5,
	    Burst:             10,
	    Interactions:      coordinator,
	})
	go hub.RunWithContext(ctx)

	// in the HTTP handler, after upgrading
	client := websocket.NewClient(hub, conn)
	hub.Register <- client
	client.Start()

	hub.BroadcastJSON(websocket.MessageTypeViewUpdated, summary)

Connection settings:

  - writeWait: 10 seconds
  - pongWait: 60 seconds
  - pingPeriod: 54 seconds
  - maxMessageSize: 64 KB
*/
package websocket
