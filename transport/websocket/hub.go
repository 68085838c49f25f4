package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/slide2048/game/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Queued messages per client before it is dropped.
	sendBufferSize = 256

	// EventStateUpdate carries a full board snapshot.
	EventStateUpdate = "state_update"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message represents a WebSocket message
type Message struct {
	SessionID string            `json:"session_id"`
	GameState *engine.GameState `json:"game_state,omitempty"`
	Event     string            `json:"event,omitempty"`
	Data      interface{}       `json:"data,omitempty"`
}

// Client represents a WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub tracks clients per session and fans out board updates to them
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// Run processes client registration until Stop is called
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-h.quit:
			h.closeAll()
			return
		}
	}
}

// Stop ends Run and closes every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// ServeWS upgrades the request and attaches the connection to a session
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		sessionID: sessionKey(sessionID),
	}

	select {
	case h.register <- client:
	case <-h.quit:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// BroadcastToSession sends a board snapshot to all clients in a session
func (h *Hub) BroadcastToSession(sessionID string, state *engine.GameState) {
	h.publish(&Message{
		SessionID: sessionID,
		GameState: state,
		Event:     EventStateUpdate,
	})
}

// BroadcastEvent sends a named event with an arbitrary payload to a session
func (h *Hub) BroadcastEvent(sessionID string, event string, data interface{}) {
	h.publish(&Message{
		SessionID: sessionID,
		Event:     event,
		Data:      data,
	})
}

// ClientCount returns the number of clients attached to a session
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionKey(sessionID)])
}

func (h *Hub) publish(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal WebSocket message: %v", err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	for client := range h.sessions[sessionKey(message.SessionID)] {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		log.Printf("Dropping slow WebSocket client for session %s", client.sessionID)
		h.unregisterClient(client)
	}
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	log.Printf("Client registered for session %s (total clients: %d)",
		client.sessionID, len(h.sessions[client.sessionID]))
}

// unregisterClient removes a client from a session and closes its queue
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.sessions[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}

	log.Printf("Client unregistered from session %s (remaining clients: %d)",
		client.sessionID, len(clients))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, clients := range h.sessions {
		for client := range clients {
			close(client.send)
		}
		delete(h.sessions, id)
	}
}

// sessionKey matches the case-insensitive session IDs of the session manager
func sessionKey(id string) string {
	return strings.ToLower(id)
}

// readPump drains the connection so pings and close frames are handled
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Clients only listen; inbound frames are discarded
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message so clients can decode each as JSON
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
