package server

import (
	"context"
	"testing"
	"time"
)

func recvPayload(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for payload")
		return nil
	}
}

func TestHubBroadcastsPerRoom(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	first := newClient(hub, nil, nil, "g1", "p1")
	second := newClient(hub, nil, nil, "g1", "")
	other := newClient(hub, nil, nil, "g2", "p9")
	hub.register <- first
	hub.register <- second
	hub.register <- other

	hub.Publish("g1", []byte("hello"))

	if got := string(recvPayload(t, first.send)); got != "hello" {
		t.Fatalf("first = %q", got)
	}
	if got := string(recvPayload(t, second.send)); got != "hello" {
		t.Fatalf("second = %q", got)
	}
	select {
	case payload := <-other.send:
		t.Fatalf("other room received %q", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newClient(hub, nil, nil, "g1", "p1")
	hub.register <- client
	hub.unregister <- client

	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("send should be closed, not carrying data")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for close")
	}

	// Publishing to the emptied room is a no-op.
	hub.Publish("g1", []byte("into the void"))
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := newClient(hub, nil, nil, "g1", "p1")
	hub.register <- client
	cancel()

	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("send should be closed on shutdown")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for shutdown close")
	}
}
