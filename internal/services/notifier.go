package services

import (
	"context"

	"github.com/google/uuid"

	redisclient "github.com/edtrack/calendar-backend/internal/clients/redis"
	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/sse"
	"github.com/edtrack/calendar-backend/internal/ssedata"
)

// ProgressNotifier pushes scrape/schedule progress to whoever is watching a
// session's SSE channel. With a redis bus wired, the event goes through the
// bus so every replica's hub rebroadcasts it. Without one, events land in
// the request's ssedata buffer when there is one (flushed when the request
// commits) and otherwise go straight to the local hub.
type ProgressNotifier interface {
	Notify(ctx context.Context, sessionID uuid.UUID, event sse.SSEEvent, data any)
}

type progressNotifier struct {
	log *logger.Logger
	hub *sse.SSEHub
	bus redisclient.SSEBus
}

func NewProgressNotifier(log *logger.Logger, hub *sse.SSEHub, bus redisclient.SSEBus) ProgressNotifier {
	return &progressNotifier{
		log: log.With("service", "ProgressNotifier"),
		hub: hub,
		bus: bus,
	}
}

func (pn *progressNotifier) Notify(ctx context.Context, sessionID uuid.UUID, event sse.SSEEvent, data any) {
	msg := sse.SSEMessage{
		Channel: sse.SessionChannel(sessionID),
		Event:   event,
		Data:    data,
	}
	if pn.bus != nil {
		if err := pn.bus.Publish(ctx, msg); err != nil {
			pn.log.Warn("failed to publish progress event", "error", err, "event", event)
		}
		return
	}
	if data := ssedata.GetSSEData(ctx); data != nil {
		data.AppendMessage(msg)
		return
	}
	if pn.hub != nil {
		pn.hub.Broadcast(msg)
	}
}
