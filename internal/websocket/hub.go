package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message is one fan-out envelope. Data is carried opaque: the hub never
// interprets payloads, it only moves them.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewMessage builds a Message, marshaling data. Marshal failures produce a
// payload-less message rather than dropping the event.
func NewMessage(event string, data any) Message {
	msg := Message{Event: event}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			msg.Data = raw
		}
	}
	return msg
}

// rebroadcastEvents maps client-originated events to the derived event name
// every connected display receives. Anything not listed is dropped.
var rebroadcastEvents = map[string]string{
	"switch-view":   "view-changed",
	"config-update": "config-changed",
	"chore-update":  "chore-changed",
}

// Hub maintains the set of connected clients and broadcasts messages to all
// of them, sender included. Best effort only: no persistence, no replay, and
// a client whose buffer is full loses the message.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("client registered", "client_id", c.id)
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a message to all connected clients, including the one the
// event originated from. Clients must treat their own echo as a no-op.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop message to avoid blocking
		}
	}
}

// Dispatch handles a client-originated event: known events are re-broadcast
// to every client under their *-changed name, unknown events are logged and
// dropped.
func (h *Hub) Dispatch(from *Client, msg Message) {
	changed, ok := rebroadcastEvents[msg.Event]
	if !ok {
		h.logger.Warn("unknown event dropped", "event", msg.Event, "client_id", from.id)
		return
	}
	h.Broadcast(Message{Event: changed, Data: msg.Data})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
