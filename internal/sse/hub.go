package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/habbi3/spinbot/internal/metrics"
)

// Event is one message on the overlay stream. Payload carries the bus
// event's payload unchanged; the overlay switches on Type.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is one connected overlay. Events is closed by the hub when the
// client is unregistered or the hub stops.
type Client struct {
	ID     string
	Events chan Event
	filter map[string]struct{}
}

// wants reports whether the client subscribed to this event type. A client
// with no filter takes everything.
func (c *Client) wants(eventType string) bool {
	if c.filter == nil {
		return true
	}
	_, ok := c.filter[eventType]
	return ok
}

// Hub fans spin and leaderboard events out to connected overlays. All
// membership changes flow through the run loop; Broadcast never blocks the
// publisher, so an overlay that stops reading loses events rather than
// stalling the spin pipeline.
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	wg         sync.WaitGroup
}

// NewHub creates a hub; call Start to begin dispatching.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's dispatch loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop gracefully shuts down the hub and closes every client channel
func (h *Hub) Stop() {
	close(h.shutdown)
	h.wg.Wait()

	h.mu.Lock()
	for _, client := range h.clients {
		close(client.Events)
	}
	h.clients = make(map[string]*Client)
	h.mu.Unlock()
	metrics.SSEClients.Set(0)
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			metrics.SSEClients.Inc()

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.Events)
				delete(h.clients, clientID)
				metrics.SSEClients.Dec()
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.dispatch(event)

		case <-h.shutdown:
			return
		}
	}
}

// dispatch delivers one event to every subscribed client. Sends are
// non-blocking: a full client buffer drops the event for that client only.
func (h *Hub) dispatch(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if !client.wants(event.Type) {
			continue
		}
		select {
		case client.Events <- event:
		default:
		}
	}
}

// Register adds a client, optionally restricted to the given event types.
func (h *Hub) Register(eventTypes []string) *Client {
	client := &Client{
		ID:     uuid.New().String(),
		Events: make(chan Event, ClientEventBuffer),
	}

	if len(eventTypes) > 0 {
		client.filter = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			client.filter[t] = struct{}{}
		}
	}

	h.register <- client
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for all interested clients. A full broadcast
// buffer drops the event; the overlay resyncs from /spin/current anyway.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- event:
	default:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders an event in wire format:
// "id: <id>\nevent: <type>\ndata: <json>\n\n".
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	msg := "id: " + event.ID + "\n"
	msg += "event: " + event.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}
