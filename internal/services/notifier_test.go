package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/edtrack/calendar-backend/internal/sse"
)

func TestProgressNotifier_BroadcastsToSubscribedClient(t *testing.T) {
	log := testLogger(t)
	hub := sse.NewSSEHub(log)
	notifier := NewProgressNotifier(log, hub, nil)

	sessionID := uuid.New()
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, sse.SessionChannel(sessionID))
	defer hub.RemoveClient(client)

	notifier.Notify(context.Background(), sessionID, sse.SSEEventScrapeProgress, map[string]any{"stage": "normalized"})

	select {
	case msg := <-client.Outbound:
		if msg.Event != sse.SSEEventScrapeProgress {
			t.Errorf("event = %s, want %s", msg.Event, sse.SSEEventScrapeProgress)
		}
		if msg.Channel != sse.SessionChannel(sessionID) {
			t.Errorf("channel = %s, want %s", msg.Channel, sse.SessionChannel(sessionID))
		}
	case <-time.After(time.Second):
		t.Fatal("no message delivered to subscribed client")
	}
}

func TestProgressNotifier_OtherSessionNotDelivered(t *testing.T) {
	log := testLogger(t)
	hub := sse.NewSSEHub(log)
	notifier := NewProgressNotifier(log, hub, nil)

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, sse.SessionChannel(uuid.New()))
	defer hub.RemoveClient(client)

	notifier.Notify(context.Background(), uuid.New(), sse.SSEEventScrapeStarted, nil)

	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected message %v for unrelated session", msg)
	case <-time.After(50 * time.Millisecond):
	}
}
