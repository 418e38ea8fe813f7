package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/models"
)

// Message types pushed to clients
const (
	MessageTypeNotification  = "notification"
	MessageTypeBranchMessage = "branch_message"
)

// Message represents a message sent over WebSocket
type Message struct {
	Type string `json:"type"`

	// Branch room this message belongs to, nil for direct messages
	BranchID *int64 `json:"branchId,omitempty"`

	SenderID   int64  `json:"senderId,omitempty"`
	SenderName string `json:"senderName,omitempty"`
	Content    string `json:"content,omitempty"`

	Notification *models.Notification `json:"notification,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// delivery is a serialized message addressed to a user or a branch room
type delivery struct {
	userID   int64
	branchID int64
	data     []byte
}

// Hub maintains the set of active clients and delivers messages to them.
// Only the Run goroutine mutates the client maps.
type Hub struct {
	// Registered clients organized by branch room
	rooms map[int64]map[*Client]struct{}

	// Registered clients organized by user
	users map[int64]map[*Client]struct{}

	deliver    chan delivery
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	done   chan struct{}
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[int64]map[*Client]struct{}),
		users:      make(map[int64]map[*Client]struct{}),
		deliver:    make(chan delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and deliveries until ctx is cancelled
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

		case d := <-h.deliver:
			h.dispatch(d)
		}
	}
}

// Done is closed once Run has returned
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[client.userID]; !ok {
		h.users[client.userID] = make(map[*Client]struct{})
	}
	h.users[client.userID][client] = struct{}{}

	if client.branchID != 0 {
		if _, ok := h.rooms[client.branchID]; !ok {
			h.rooms[client.branchID] = make(map[*Client]struct{})
		}
		h.rooms[client.branchID][client] = struct{}{}
	}

	h.logger.Info().
		Int64("branchID", client.branchID).
		Int64("userID", client.userID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	set, ok := h.users[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}

	delete(set, client)
	if len(set) == 0 {
		delete(h.users, client.userID)
	}
	if room, ok := h.rooms[client.branchID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, client.branchID)
		}
	}
	close(client.send)

	h.logger.Info().
		Int64("branchID", client.branchID).
		Int64("userID", client.userID).
		Msg("Client unregistered")
}

// dispatch fans a delivery out to its recipients. Clients whose buffer is
// full are dropped after the loop so the maps are never edited mid-iteration.
func (h *Hub) dispatch(d delivery) {
	h.mu.RLock()
	var recipients map[*Client]struct{}
	if d.userID != 0 {
		recipients = h.users[d.userID]
	} else {
		recipients = h.rooms[d.branchID]
	}

	var slow []*Client
	for client := range recipients {
		select {
		case client.send <- d.data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}

	h.mu.Lock()
	for _, client := range slow {
		h.logger.Warn().Int64("userID", client.userID).Msg("Dropping slow websocket client")
		h.removeLocked(client)
	}
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.users {
		for client := range set {
			h.removeLocked(client)
		}
	}
}

func (h *Hub) enqueue(d delivery) {
	select {
	case h.deliver <- d:
	case <-h.done:
	default:
		h.logger.Warn().
			Int64("userID", d.userID).
			Int64("branchID", d.branchID).
			Msg("Websocket delivery queue full, message dropped")
	}
}

// SendToUser pushes a message to every connection of one user
func (h *Hub) SendToUser(userID int64, message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to marshal websocket message")
		return
	}
	h.enqueue(delivery{userID: userID, data: data})
}

// BroadcastToBranch pushes a message to every client in a branch room
func (h *Hub) BroadcastToBranch(branchID int64, message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Int64("branchID", branchID).Msg("Failed to marshal websocket message")
		return
	}
	h.enqueue(delivery{branchID: branchID, data: data})
}

// PublishNotification delivers a freshly stored notification to its recipient
func (h *Hub) PublishNotification(notification *models.Notification) {
	h.SendToUser(notification.UserID, &Message{
		Type:         MessageTypeNotification,
		BranchID:     notification.BranchID,
		Notification: notification,
		Timestamp:    notification.CreatedAt,
	})
}

// ClientsInBranch returns the number of connected clients for a branch room
func (h *Hub) ClientsInBranch(branchID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[branchID])
}

// ConnectionsForUser returns the number of open connections of one user
func (h *Hub) ConnectionsForUser(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}
