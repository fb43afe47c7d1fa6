package controllers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

// upgrader configures the WebSocket connection. The route sits behind the
// admin session, which already pins the origin through the cookie.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LocationUpdate is pushed to the live map for every driver ping.
type LocationUpdate struct {
	UserID    uint    `json:"user_id"`
	UserName  string  `json:"user_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	DateTime  string  `json:"date_time"`
}

// LocationHub fans driver pings out to connected dashboard clients.
type LocationHub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan LocationUpdate
	done      chan struct{}
	mu        sync.Mutex
}

// NewLocationHub creates a hub and starts its broadcasting goroutine.
func NewLocationHub() *LocationHub {
	hub := &LocationHub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan LocationUpdate, 100),
		done:      make(chan struct{}),
	}
	go hub.run()
	return hub
}

// run is the only writer on client connections.
func (h *LocationHub) run() {
	for {
		select {
		case <-h.done:
			return
		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					logrus.WithError(err).WithField("conn_ptr", fmt.Sprintf("%p", conn)).
						Info("Dropping live map client after failed write.")
					delete(h.clients, conn)
					conn.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *LocationHub) RegisterClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Client registered with LocationHub.")
}

func (h *LocationHub) UnregisterClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Client unregistered from LocationHub.")
	}
}

// ClientCount reports the number of connected clients.
func (h *LocationHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// PublishLocation queues an update; it never blocks the caller.
func (h *LocationHub) PublishLocation(update LocationUpdate) {
	select {
	case h.broadcast <- update:
	default:
		logrus.Warn("Location broadcast channel full, dropping message.")
	}
}

// Close stops the broadcaster and disconnects every client.
func (h *LocationHub) Close() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.clients, conn)
	}
}

// HandleLocationWebSocket upgrades a dashboard client and keeps it
// registered until it disconnects. Clients only listen.
func (h *LocationHub) HandleLocationWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection.")
		return
	}
	defer conn.Close()

	h.RegisterClient(conn)
	defer h.UnregisterClient(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).Warn("Live map WebSocket closed unexpectedly.")
			}
			return
		}
	}
}
