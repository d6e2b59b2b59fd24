// internal/events/hub.go
package events

import (
	"context"
	"encoding/json"
	"sync"

	"backdesk-service/internal/domain/assignment"

	"go.uber.org/zap"
)

// Hub fans committed assignment events out to connected staff clients.
// Delivery is best effort: a full client buffer drops the message rather
// than backpressuring the engine.
type Hub struct {
	// Registered clients by identity ID
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client

	broadcast chan *BroadcastMessage

	// closed when Run stops; senders select on it so a stopped hub never
	// strands a client goroutine
	done chan struct{}

	logger *zap.Logger
}

type BroadcastMessage struct {
	IdentityIDs []int64
	Payload     []byte
}

// EventMessage is the wire shape pushed to websocket clients.
type EventMessage struct {
	Type  string                      `json:"type"`
	Event *assignment.AssignmentEvent `json:"event"`
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// AssignmentCommitted implements the engine's notifier. The affected parties
// are the previous owner, the new owner and the acting staff member.
func (h *Hub) AssignmentCommitted(event *assignment.AssignmentEvent) {
	payload, err := json.Marshal(EventMessage{Type: "assignment_event", Event: event})
	if err != nil {
		h.logger.Error("failed to encode assignment event", zap.Error(err))
		return
	}

	ids := make([]int64, 0, 3)
	seen := map[int64]bool{}
	add := func(id int64) {
		if id != 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if event.PreviousAssignment.AssignedTo != nil {
		add(*event.PreviousAssignment.AssignedTo)
	}
	if event.NewAssignment.AssignedTo != nil {
		add(*event.NewAssignment.AssignedTo)
	}
	add(event.ActionBy)

	select {
	case h.broadcast <- &BroadcastMessage{IdentityIDs: ids, Payload: payload}:
	default:
		// Hub is saturated; the audit trail is the source of truth anyway.
		h.logger.Warn("event broadcast dropped", zap.String("event_id", event.ID))
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.identityID] == nil {
		h.clients[client.identityID] = make(map[*Client]bool)
	}
	h.clients[client.identityID][client] = true

	h.logger.Info("events client connected",
		zap.Int64("identity_id", client.identityID),
		zap.Int("total", h.totalClients()),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.identityID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, client.identityID)
			}

			h.logger.Info("events client disconnected",
				zap.Int64("identity_id", client.identityID),
				zap.Int("total", h.totalClients()),
			)
		}
	}
}

func (h *Hub) deliver(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, identityID := range msg.IdentityIDs {
		if clients, ok := h.clients[identityID]; ok {
			for client := range clients {
				client.Send(msg.Payload)
			}
		}
	}
}

// IsConnected checks if a staff member has any active connections
func (h *Hub) IsConnected(identityID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[identityID]) > 0
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

// Done reports hub termination to client pumps and the upgrade handler.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
}
