package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/trimsalon/salon-queue-api/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is the wire envelope for every realtime message.
type Event struct {
	ID    string      `json:"id"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Client struct {
	UserID   uint
	SalonID  uint
	BarberID uint // 0 when the client watches the whole salon

	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// Hub is the connection registry for queue-board subscribers. It is
// constructed once at startup and injected wherever broadcasts
// originate; Run/Stop make its lifecycle explicit.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	byUser  map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[uint][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.byUser[client.UserID] = append(h.byUser[client.UserID], client)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				conns := h.byUser[client.UserID]
				for i, c := range conns {
					if c == client {
						h.byUser[client.UserID] = append(conns[:i], conns[i+1:]...)
						break
					}
				}
			}
			h.mu.Unlock()

		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		client.conn.Close()
		delete(h.clients, client)
	}
	h.byUser = make(map[uint][]*Client)
}

// --------------------------------------------------
// Broadcasts
// --------------------------------------------------

// BroadcastBoard fans the barber's queue board out to every client
// watching that barber or its salon.
func (h *Hub) BroadcastBoard(barberID uint, salonID uint, board []models.Appointment) {
	payload := h.envelope("queue_board", board)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.BarberID == barberID || (client.BarberID == 0 && client.SalonID == salonID) {
			h.deliver(client, payload)
		}
	}
}

// BroadcastInSalonUpdate notifies a salon's watchers about chair
// occupancy changes.
func (h *Hub) BroadcastInSalonUpdate(salonID uint, apps []models.Appointment) {
	payload := h.envelope("in_salon_update", apps)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.SalonID == salonID {
			h.deliver(client, payload)
		}
	}
}

// SendToUser pushes an event to every open connection of one user.
func (h *Hub) SendToUser(userID uint, event string, data interface{}) {
	payload := h.envelope(event, data)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.byUser[userID] {
		h.deliver(client, payload)
	}
}

func (h *Hub) envelope(event string, data interface{}) []byte {
	payload, err := json.Marshal(Event{
		ID:    uuid.NewString(),
		Event: event,
		Data:  data,
	})
	if err != nil {
		h.log.Error("realtime marshal failed", zap.Error(err))
		return nil
	}
	return payload
}

// slow consumers are dropped rather than allowed to block the hub
func (h *Hub) deliver(client *Client, payload []byte) {
	if payload == nil {
		return
	}
	select {
	case client.send <- payload:
	default:
		h.log.Warn("realtime client too slow, dropping",
			zap.Uint("user_id", client.UserID),
		)
	}
}

// --------------------------------------------------
// Connection handling
// --------------------------------------------------

// Serve upgrades the request and registers the client until the
// connection drops.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID, salonID, barberID uint) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		UserID:   userID,
		SalonID:  salonID,
		BarberID: barberID,
		conn:     conn,
		send:     make(chan []byte, 16),
		hub:      h,
	}
	h.register <- client

	go client.writeLoop()
	go client.readLoop()
	return nil
}

func (c *Client) writeLoop() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			break
		}
	}
	c.conn.Close()
}

// readLoop only consumes control frames; the board is one-way.
func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
