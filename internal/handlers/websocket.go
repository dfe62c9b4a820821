package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/samstronghammer/chess/internal/eventbus"
	"github.com/samstronghammer/chess/internal/models"
	"github.com/samstronghammer/chess/internal/session"
)

const eventTypeGameState = "game_state"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the REST routes only
	},
}

type WebSocketHandler struct {
	store *session.Store
	hub   *Hub
}

func NewWebSocketHandler(store *session.Store, bus *eventbus.EventBus) *WebSocketHandler {
	hub := NewHub(bus)
	go hub.Run()
	return &WebSocketHandler{store: store, hub: hub}
}

// Hub maintains active connections and relays session events to them.
type Hub struct {
	// Map of sessionId -> map of clientId -> connection
	sessions map[string]map[string]*Client
	// Event bus subscriptions, one per session with at least one client
	unsubscribe map[string]func()
	mu          sync.RWMutex

	bus          *eventbus.EventBus
	register     chan *Client
	unregister   chan *Client
	broadcast    chan *BroadcastMessage
	closeSession chan string
	done         chan struct{}
	stopOnce     sync.Once
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionId string
	clientId  string
	send      chan []byte
}

type BroadcastMessage struct {
	SessionId string
	Message   []byte
}

// NewHub creates a hub. bus may be nil, in which case only direct
// broadcasts reach clients.
func NewHub(bus *eventbus.EventBus) *Hub {
	return &Hub{
		sessions:     make(map[string]map[string]*Client),
		unsubscribe:  make(map[string]func()),
		bus:          bus,
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan *BroadcastMessage),
		closeSession: make(chan string),
		done:         make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for sessionId, session := range h.sessions {
				for _, client := range session {
					close(client.send)
				}
				h.dropSession(sessionId)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.sessions[client.sessionId] == nil {
				h.sessions[client.sessionId] = make(map[string]*Client)
				if h.bus != nil {
					h.unsubscribe[client.sessionId] = h.bus.Subscribe(client.sessionId, h.relay)
				}
			}
			h.sessions[client.sessionId][client.clientId] = client
			h.mu.Unlock()
			log.Printf("[WebSocket] Client registered: session=%s client=%s", client.sessionId, client.clientId)

		case client := <-h.unregister:
			h.mu.Lock()
			if session, ok := h.sessions[client.sessionId]; ok {
				if _, ok := session[client.clientId]; ok {
					delete(session, client.clientId)
					close(client.send)
					if len(session) == 0 {
						h.dropSession(client.sessionId)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("[WebSocket] Client unregistered: session=%s client=%s", client.sessionId, client.clientId)

		case sessionId := <-h.closeSession:
			h.mu.Lock()
			if session, ok := h.sessions[sessionId]; ok {
				for _, client := range session {
					close(client.send)
				}
				h.dropSession(sessionId)
				log.Printf("[WebSocket] Closed %d client(s) of session %s", len(session), sessionId)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			if session, ok := h.sessions[msg.SessionId]; ok {
				for clientId, client := range session {
					select {
					case client.send <- msg.Message:
					default:
						close(client.send)
						delete(session, clientId)
					}
				}
				if len(session) == 0 {
					h.dropSession(msg.SessionId)
				}
			}
			h.mu.Unlock()
		}
	}
}

// dropSession forgets a session's clients and its bus subscription. The
// caller holds h.mu and has already closed any remaining send channels.
func (h *Hub) dropSession(sessionId string) {
	if unsubscribe, ok := h.unsubscribe[sessionId]; ok {
		unsubscribe()
		delete(h.unsubscribe, sessionId)
	}
	delete(h.sessions, sessionId)
}

func (h *Hub) relay(event eventbus.Event) {
	h.BroadcastToSession(event.SessionID, event.Message)
}

func (h *Hub) BroadcastToSession(sessionId string, message []byte) {
	select {
	case h.broadcast <- &BroadcastMessage{SessionId: sessionId, Message: message}:
	case <-h.done:
	}
}

// CloseSession disconnects every client watching sessionId.
func (h *Hub) CloseSession(sessionId string) {
	select {
	case h.closeSession <- sessionId:
	case <-h.done:
	}
}

// ClientCount returns the number of clients connected to a session.
func (h *Hub) ClientCount(sessionId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionId])
}

// Stop shuts the hub down. Connected clients receive a close frame.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WebSocket] Read error: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HandleWebSocket streams a session's events. The first message is the
// current game state; move and game_over events follow.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionId := mux.Vars(r)["sessionId"]

	s, err := h.store.Get(sessionId)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			respondWithError(w, http.StatusNotFound, "Game not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load game")
		return
	}

	initial, err := json.Marshal(models.Event{Type: eventTypeGameState, Game: s.Snapshot()})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to encode game")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WebSocket] Upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h.hub,
		conn:      conn,
		sessionId: sessionId,
		clientId:  uuid.NewString(),
		send:      make(chan []byte, 256),
	}
	client.send <- initial

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// CloseSession disconnects the clients of an evicted session.
func (h *WebSocketHandler) CloseSession(sessionId string) {
	h.hub.CloseSession(sessionId)
}

// GetHub returns the hub for use by other handlers
func (h *WebSocketHandler) GetHub() *Hub {
	return h.hub
}

// Stop disconnects every client.
func (h *WebSocketHandler) Stop() {
	h.hub.Stop()
}
