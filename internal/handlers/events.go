package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/socialcarehq/social-care-backend/internal/logger"
	"github.com/socialcarehq/social-care-backend/internal/outbox"
)

type EventsHandler struct {
	log   *logger.Logger
	relay *outbox.Relay
}

func NewEventsHandler(log *logger.Logger, relay *outbox.Relay) *EventsHandler {
	return &EventsHandler{log: log.With("handler", "EventsHandler"), relay: relay}
}

type streamedEvent struct {
	EventType  string    `json:"eventType"`
	EventID    string    `json:"eventId"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Stream subscribes the caller to the outbox relay and forwards every
// delivered event as an SSE message until the client disconnects.
func (eh *EventsHandler) Stream(c *gin.Context) {
	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		c.String(http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := c.Request.Context()
	sub, err := eh.relay.Subscribe(ctx)
	if err != nil {
		RespondError(c, err)
		return
	}
	defer sub.Close()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case event, open := <-sub.Events:
			if !open {
				return
			}
			msg := streamedEvent{
				EventType:  event.EventType(),
				EventID:    event.EventID().String(),
				OccurredAt: event.EventOccurredAt(),
				Payload:    event,
			}
			raw, err := json.Marshal(msg)
			if err != nil {
				eh.log.Warn("Failed to marshal streamed event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\n", event.EventType())
			fmt.Fprintf(w, "data: %s\n\n", string(raw))
			flusher.Flush()
		}
	}
}
