// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package websocket

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/trackview/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// setupHub creates a hub running until the test ends
func setupHub(t *testing.T, cfg HubConfig) *Hub {
	t.Helper()
	hub := NewHubWithConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub
}

// createTestClient creates a client without a connection
func createTestClient(hub *Hub, buffer int) *Client {
	return &Client{
		id:      clientIDCounter.Add(1),
		hub:     hub,
		send:    make(chan Message, buffer),
		limiter: rate.NewLimiter(rate.Limit(hub.cfg.MessagesPerSecond), hub.cfg.Burst),
	}
}

// waitFor polls cond until it holds or the timeout expires
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// receive reads one message from a client's send channel
func receive(t *testing.T, c *Client) (Message, bool) {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		return msg, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}, false
	}
}

func TestNewHubWithConfig_Defaults(t *testing.T) {
	hub := NewHub()
	if hub.cfg.MessagesPerSecond != DefaultMessagesPerSecond {
		t.Errorf("messages per second = %v", hub.cfg.MessagesPerSecond)
	}
	if hub.cfg.Burst != DefaultBurst {
		t.Errorf("burst = %d", hub.cfg.Burst)
	}
	if hub.GetClientCount() != 0 {
		t.Error("new hub should have no clients")
	}

	hub = NewHubWithConfig(HubConfig{MessagesPerSecond: 1, Burst: 2})
	if hub.cfg.MessagesPerSecond != 1 || hub.cfg.Burst != 2 {
		t.Errorf("config not applied: %+v", hub.cfg)
	}
}

func TestHub_RegisterBroadcastUnregister(t *testing.T) {
	hub := setupHub(t, HubConfig{})
	a := createTestClient(hub, 8)
	b := createTestClient(hub, 8)

	hub.Register <- a
	hub.Register <- b
	waitFor(t, "two clients", func() bool { return hub.GetClientCount() == 2 })

	hub.BroadcastJSON(MessageTypeViewUpdated, map[string]int{"point_count": 3})
	for _, c := range []*Client{a, b} {
		msg, ok := receive(t, c)
		if !ok {
			t.Fatal("send channel closed")
		}
		if msg.Type != MessageTypeViewUpdated {
			t.Errorf("type = %q", msg.Type)
		}
	}

	hub.Unregister <- a
	waitFor(t, "one client", func() bool { return hub.GetClientCount() == 1 })
	if _, ok := <-a.send; ok {
		t.Error("unregistered client's channel should be closed")
	}

	// Unregistering twice is harmless.
	hub.Unregister <- a
	waitFor(t, "still one client", func() bool { return hub.GetClientCount() == 1 })
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := setupHub(t, HubConfig{})
	slow := createTestClient(hub, 1)
	hub.Register <- slow
	waitFor(t, "registration", func() bool { return hub.GetClientCount() == 1 })

	hub.BroadcastJSON(MessageTypeViewUpdated, nil)
	hub.BroadcastJSON(MessageTypeViewUpdated, nil)

	waitFor(t, "slow client removal", func() bool { return hub.GetClientCount() == 0 })
}

func TestHub_BroadcastNeverBlocks(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(hub.broadcast)+10; i++ {
			hub.BroadcastJSON(MessageTypeViewUpdated, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("BroadcastJSON blocked on a full queue")
	}
	if got := len(hub.broadcast); got != cap(hub.broadcast) {
		t.Errorf("queued = %d, want %d", got, cap(hub.broadcast))
	}
}

func TestHub_RunWithContextShutdown(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.RunWithContext(ctx) }()

	client := createTestClient(hub, 8)
	hub.Register <- client
	waitFor(t, "registration", func() bool { return hub.GetClientCount() == 1 })

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	if hub.GetClientCount() != 0 {
		t.Error("clients should be closed on shutdown")
	}
	if _, ok := <-client.send; ok {
		t.Error("client channel should be closed on shutdown")
	}
}

func TestGetShutdownReason(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()

	tests := []struct {
		name string
		ctx  context.Context
		want ShutdownReason
	}{
		{"canceled", canceled, ShutdownReasonContextCanceled},
		{"deadline", expired, ShutdownReasonContextDeadline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getShutdownReason(tt.ctx); got != tt.want {
				t.Errorf("reason = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalMessage(t *testing.T) {
	data, err := MarshalMessage(Message{Type: MessageTypePong})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"pong","data":null}` {
		t.Errorf("marshal = %s", data)
	}
}
