package broadcast

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 32 * 1024
)

// Hub is a single-topic fan-out relay for admin order scanners. Every
// message received from a connected session is forwarded verbatim to all
// other sessions; the hub never interprets payloads. Server-side events
// enter the same stream via PublishJSON.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}

	logger *logger.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// sessions are authenticated before the upgrade; the socket
			// itself is origin-agnostic
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// Join upgrades the request to a websocket and attaches it to the hub.
// The caller must have verified the session before calling. Join returns
// once the pumps are started; the connection lives until the peer closes
// it or a write fails.
func (h *Hub) Join(w http.ResponseWriter, r *http.Request) error {
	log := logger.FromRequest(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*Hub.Join").Msg("websocket upgrade failed")
		return fmt.Errorf("websocket upgrade failed: %w", err)
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 16),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)

	return nil
}

// PublishJSON marshals v and relays it to every connected session.
func (h *Hub) PublishJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("event marshalling failed: %w", err)
	}

	h.broadcast(data, nil)
	return nil
}

// Count returns the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast sends data to every client except sender. Clients whose send
// buffer is full are dropped rather than blocking the rest.
func (h *Hub) broadcast(data []byte, sender *client) {
	h.mu.RLock()
	stalled := make([]*client, 0)
	for c := range h.clients {
		if c == sender {
			continue
		}
		select {
		case c.send <- data:
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	h.mu.Unlock()

	if ok {
		close(c.send)
		_ = c.conn.Close()
	}
}

// readPump relays inbound messages to the other sessions until the peer
// disconnects.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Err(err).Str("func", "*Hub.readPump").Msg("websocket read failed")
			}
			return
		}
		h.broadcast(message, c)
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.remove(c)
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
