package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event tells an attached view to refresh itself. Views reload the grid
// from the API instead of patching state locally, mirroring the
// reload-after-persist rule of the edit sequencer.
type Event struct {
	Type   string `json:"type"`
	Source string `json:"source,omitempty"`
}

// CatalogChanged is broadcast after any successful catalog write.
func CatalogChanged(source string) Event {
	return Event{Type: "catalog_changed", Source: source}
}

// Hub maintains the set of attached view clients and broadcasts refresh
// events to them.
type Hub struct {
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]*Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			log.Printf("🖥️  View attached: %s", client.id)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
				log.Printf("🔌 View detached: %s", client.id)
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to every attached view. Slow or dead clients
// are skipped rather than blocking the writer.
func (h *Hub) Broadcast(evt Event) {
	msg, err := json.Marshal(evt)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.send <- msg:
		default:
			// Buffer full or client dead
		}
	}
}

// ClientCount reports the number of attached views.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
