package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newTestClient(h *Hub, buffer int) *Client {
	return &Client{
		hub:    h,
		id:     uuid.New(),
		send:   make(chan []byte, buffer),
		logger: zerolog.Nop(),
	}
}

func TestBroadcastDropsSlowSubscriber(t *testing.T) {
	h := NewHub(zerolog.Nop())

	fast := newTestClient(h, 8)
	slow := newTestClient(h, 0) // unbuffered, so any send overflows
	h.clients[fast] = true
	h.clients[slow] = true

	h.broadcastEvent(&Event{Type: EventUserCreated, Timestamp: time.Now()})

	if got := h.ClientCount(); got != 1 {
		t.Fatalf("ClientCount() = %d, want 1 after dropping the slow subscriber", got)
	}
	if _, ok := h.clients[slow]; ok {
		t.Error("slow subscriber still registered")
	}
	if _, ok := <-slow.send; ok {
		t.Error("slow subscriber's send channel should be closed")
	}

	select {
	case msg := <-fast.send:
		if len(msg) == 0 {
			t.Error("fast subscriber received an empty frame")
		}
	default:
		t.Error("fast subscriber received nothing")
	}
}

func TestHubKeepsServingAfterDroppingSubscriber(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	slow := newTestClient(h, 0)
	fast := newTestClient(h, 8)
	h.register <- slow
	h.register <- fast

	// The first event overflows the slow subscriber. The loop must drop
	// it and keep delivering to the remaining subscriber.
	h.Publish(EventUserUpdated, map[string]int64{"id": 1})
	h.Publish(EventUserDeleted, map[string]int64{"id": 1})

	deadline := time.After(2 * time.Second)
	for received := 0; received < 2; {
		select {
		case <-fast.send:
			received++
		case <-deadline:
			t.Fatalf("received %d of 2 events, hub loop stalled", received)
		}
	}

	// A regular disconnect still flows through the unregister channel.
	select {
	case h.unregister <- fast:
	case <-time.After(2 * time.Second):
		t.Fatal("unregister blocked, hub loop stalled")
	}

	for i := 0; h.ClientCount() != 0; i++ {
		if i > 200 {
			t.Fatalf("ClientCount() = %d, want 0 after unregister", h.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
