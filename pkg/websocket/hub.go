package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message is the standard change-feed envelope pushed to subscribers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins. Adjust this in production!
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans row-change events out to every subscriber of a room. Clients are
// pure listeners; all mutations arrive over the HTTP API and the services
// call Broadcast after each write.
type Hub struct {
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	roomID string
	done   chan struct{}
}

// Run listens on the register and unregister channels and updates hub state.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if _, exists := h.rooms[client.roomID]; !exists {
				h.rooms[client.roomID] = make(map[*Client]bool)
			}
			h.rooms[client.roomID][client] = true
			h.logger.Info("subscriber joined",
				zap.String("room_id", client.roomID),
				zap.Int("subscribers", len(h.rooms[client.roomID])))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				if room, exists := h.rooms[client.roomID]; exists {
					delete(room, client)
					if len(room) == 0 {
						delete(h.rooms, client.roomID)
					}
				}
				delete(h.clients, client)
				close(client.send)
				close(client.done)
				h.logger.Info("subscriber left", zap.String("room_id", client.roomID))
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast marshals an event and queues it for every subscriber of a room.
// Clients whose send buffer is full are dropped rather than blocking the rest.
func (h *Hub) Broadcast(roomID string, eventType string, data interface{}) {
	msg := Message{
		Type: eventType,
		Data: data,
	}

	messageBytes, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", zap.String("type", eventType), zap.Error(err))
		return
	}

	h.mu.RLock()
	room := h.rooms[roomID]
	clients := make([]*Client, 0, len(room))
	for client := range room {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- messageBytes:
		default:
			h.logger.Warn("send buffer full, evicting subscriber",
				zap.String("room_id", roomID))
			h.unregister <- client
		}
	}
}

// HandleWebSocket upgrades the connection and subscribes it to a room feed.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID := vars["roomID"]
	if roomID == "" {
		http.Error(w, "Missing room id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade", zap.Error(err))
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		roomID: roomID,
		done:   make(chan struct{}),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection to keep pong handling alive. Subscribers do
// not send domain messages; anything inbound is ignored.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("unexpected close", zap.Error(err))
			}
			break
		}
	}
}

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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
