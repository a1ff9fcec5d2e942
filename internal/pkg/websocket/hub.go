package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types published to the admin feed
const (
	EventApplicationSubmitted     = "application.submitted"
	EventApplicationApproved      = "application.approved"
	EventApplicationRejected      = "application.rejected"
	EventApplicationStatusChanged = "application.status_changed"
	EventApplicationFeeVerified   = "application.fee_verified"
	EventApplicationFeeUnverified = "application.fee_unverified"
	EventApplicationDeleted       = "application.deleted"
)

// Event is one admin feed message
type Event struct {
	Type          string      `json:"type"`
	ApplicationID int64       `json:"application_id,omitempty"`
	Status        string      `json:"status,omitempty"`
	Data          interface{} `json:"data,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

// Hub maintains the set of connected admin clients and fans events out to them
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Events waiting to be broadcast
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for event listeners
	listenersMu sync.RWMutex

	// In-process subscribers, e.g. the audit logger
	listeners []chan *Event

	// Closed when Run returns
	done chan struct{}

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		listeners:  []chan *Event{},
		done:       make(chan struct{}),
		logger:     logger.With().Str("component", "events").Logger(),
	}
}

// Run handles registrations and broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info().
		Int64("adminID", client.adminID).
		Str("addr", client.remoteAddr()).
		Msg("Admin client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Info().
			Int64("adminID", client.adminID).
			Str("addr", client.remoteAddr()).
			Msg("Admin client unregistered")
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

// broadcastEvent sends event to listeners and to every connected client
func (h *Hub) broadcastEvent(event *Event) {
	h.notifyListeners(event)

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", event.Type).Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Slow client; drop it rather than stall the feed
			delete(h.clients, client)
			close(client.send)
			h.logger.Warn().Int64("adminID", client.adminID).Msg("Dropped slow admin client")
		}
	}

	h.logger.Debug().
		Str("type", event.Type).
		Int("clientCount", len(h.clients)).
		Msg("Event broadcasted")
}

func (h *Hub) notifyListeners(event *Event) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- event:
		default:
			h.logger.Warn().Msg("Skipped slow event listener")
		}
	}
}

// Publish queues event for broadcast. It never blocks; events are dropped
// when the queue is full.
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case h.broadcast <- &event:
	default:
		h.logger.Warn().Str("type", event.Type).Msg("Event queue full, dropping event")
	}
}

// ClientsCount returns the number of connected admin clients
func (h *Hub) ClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// AddListener registers a channel to receive all events
func (h *Hub) AddListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.listeners = append(h.listeners, listener)
}

// RemoveListener removes a listener from the hub
func (h *Hub) RemoveListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.listeners {
		if l == listener {
			h.listeners[i] = h.listeners[len(h.listeners)-1]
			h.listeners = h.listeners[:len(h.listeners)-1]
			break
		}
	}
}
