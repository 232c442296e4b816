// Package notify pushes substitution announcements to connected browsers.
// Uses github.com/coder/websocket - the modern, context-aware WebSocket
// library for Go. Delivery is fire-and-forget: a slow or dead client is
// dropped, never retried.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/classhub/backend/internal/logger"
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Event is a message broadcast to every connected client.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sent_at"`
}

type client struct {
	send chan []byte
}

// Hub maintains the set of active clients and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Broadcast sends an event to every connected client. Clients whose send
// buffer is full miss the event; the next page load catches them up.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload, SentAt: time.Now().UTC()})
	if err != nil {
		logger.ErrorWithFields("Failed to encode broadcast event", err, zap.String("type", eventType))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Shutdown disconnects all clients and refuses new ones.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// ServeWS upgrades the request and streams broadcast events until the client
// disconnects. Auth already ran in middleware by the time this is called.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		// The browser client is served from a different origin in development.
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		logger.WarnWithFields("WebSocket accept failed", err)
		return
	}

	cl := &client{send: make(chan []byte, 16)}
	if !h.register(cl) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer h.unregister(cl)

	ctx := c.Request.Context()

	// Discard inbound frames; the socket is one-way. Read failures mean the
	// client went away.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case data, ok := <-cl.send:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				conn.Close(websocket.StatusAbnormalClosure, "write failed")
				return
			}
		case <-readDone:
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ctx.Done():
			conn.Close(websocket.StatusGoingAway, "request cancelled")
			return
		}
	}
}
