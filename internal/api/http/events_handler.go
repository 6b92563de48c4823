package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/store"
)

const eventKeepAlive = 15 * time.Second

// EventMessage is the wire form of a store event
type EventMessage struct {
	Kind      store.EventKind     `json:"kind"`
	At        time.Time           `json:"at,omitzero"`
	ItemID    int64               `json:"item_id,omitempty"`
	ItemName  string              `json:"item_name,omitempty"`
	ItemCount int                 `json:"item_count"`
	Order     *domain.OrderRecord `json:"order,omitempty"`
	ActorID   int64               `json:"actor_id,omitempty"`
	Error     string              `json:"error,omitempty"`
	Field     string              `json:"field,omitempty"`
}

func eventMessage(ev store.Event) EventMessage {
	msg := EventMessage{
		Kind:      ev.Kind,
		At:        ev.At,
		ItemID:    ev.ItemID,
		ItemName:  ev.ItemName,
		ItemCount: ev.ItemCount,
		Order:     ev.Order,
	}
	if ev.Actor != nil {
		msg.ActorID = ev.Actor.ID
	}
	if ev.Err != nil {
		msg.Error = ev.Err.Error()
		var ve *domain.ValidationError
		if errors.As(ev.Err, &ve) {
			msg.Field = ve.Field
		}
	}
	return msg
}

func eventMessages(events []store.Event) []EventMessage {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]EventMessage, 0, len(events))
	for _, ev := range events {
		msgs = append(msgs, eventMessage(ev))
	}
	return msgs
}

// StreamEvents sends the session's store events as server-sent events until
// the client goes away or the server shuts down.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "streaming unsupported"})
		return
	}

	s := sessionFrom(r.Context())
	events, unsubscribe := s.Store.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	logger.Debug("Event stream opened", "sessionID", s.ID)
	defer logger.Debug("Event stream closed", "sessionID", s.ID)

	keepAlive := time.NewTicker(eventKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(eventMessage(ev))
			if err != nil {
				logger.Error("Failed to encode store event", "kind", ev.Kind, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
