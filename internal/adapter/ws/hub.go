package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"focustime/pkg/metrics"
)

// Event is the wire format in both directions: an event name and a free-form
// payload.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub fans presence broadcasts out to every connected client and owns the
// focus registry. All registration and broadcasting goes through the run
// loop, so the clients map needs no lock.
type Hub struct {
	registry   *Registry
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	metrics    *metrics.AppMetrics
}

// NewHub builds a hub over registry. m may be nil when metrics are disabled.
func NewHub(registry *Registry, m *metrics.AppMetrics) *Hub {
	return &Hub{
		registry:   registry,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		metrics:    m,
	}
}

func (h *Hub) Registry() *Registry {
	return h.registry
}

// Run processes register, unregister and broadcast requests until ctx is
// done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*Client]bool)
			return

		case client := <-h.register:
			h.clients[client] = true
			if h.metrics != nil {
				h.metrics.IncrementWebsocketClients()
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop the connection rather than
					// block every other client.
					h.drop(client)
				}
			}
		}
	}
}

// drop removes the client from the loop state and clears its presence.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.dropPresence(client)

	if h.metrics != nil {
		h.metrics.DecrementWebsocketClients()
	}
}

// dropPresence removes the client's focus entry on disconnect and tells the
// remaining clients, so a vanished connection does not leave a ghost user in
// the registry.
func (h *Hub) dropPresence(client *Client) {
	if client.focusUserID == "" {
		return
	}

	if h.registry.LeaveIfOwner(client.focusUserID, client) {
		h.broadcastEvent("focus_user_left", map[string]string{"user_id": client.focusUserID})
		h.updateFocusGauge()
	}
}

// Broadcast queues an event for every connected client.
func (h *Hub) Broadcast(event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("error encoding broadcast payload", "event", event, "error", err)
		return
	}

	message, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		slog.Error("error encoding broadcast event", "event", event, "error", err)
		return
	}

	h.broadcast <- message
}

// broadcastEvent is the run-loop internal variant: it writes to the client
// channels directly because it already runs inside the loop goroutine.
func (h *Hub) broadcastEvent(event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}

	message, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		return
	}

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
		}
	}
}

func (h *Hub) updateFocusGauge() {
	if h.metrics != nil {
		h.metrics.SetFocusUsersOnline(h.registry.Count())
	}
}
