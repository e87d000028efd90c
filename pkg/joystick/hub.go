package joystick

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"joystick.io/fleet-control/pkg/common"
)

const (
	hubWriteWait    = 10 * time.Second
	hubPingInterval = 30 * time.Second
	hubSendBuffer   = 16
)

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NotificationHub pushes notifications to every connected websocket client.
type NotificationHub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.RWMutex
	clients map[*hubClient]struct{}

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: common.GetLoggerWith(
			common.LoggerNameJoystickCore,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryNotification),
		),
		clients: map[*hubClient]struct{}{},
	}
}

// Start begins the keepalive loop. Stop ends it and disconnects every client.
func (h *NotificationHub) Start() {
	h.mu.Lock()
	if h.stop != nil {
		h.mu.Unlock()
		return
	}
	h.stop = make(chan struct{})
	stop := h.stop
	h.mu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ticker := time.NewTicker(hubPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				h.pingAll()
			}
		}
	}()
}

func (h *NotificationHub) Stop() {
	h.mu.Lock()
	if h.stop != nil {
		close(h.stop)
		h.stop = nil
	}
	clients := h.clients
	h.clients = map[*hubClient]struct{}{}
	h.mu.Unlock()

	h.wg.Wait()
	for c := range clients {
		close(c.send)
	}
}

func (h *NotificationHub) pingAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(hubWriteWait))
	}
}

func (h *NotificationHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *NotificationHub) register(c *hubClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("Notification client connected")
}

func (h *NotificationHub) unregister(c *hubClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Info("Notification client disconnected")
}

// Broadcast sends message to every client and returns how many were
// reached. Clients whose buffer is full are dropped.
func (h *NotificationHub) Broadcast(message any) (int, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return 0, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for c := range h.clients {
		select {
		case c.send <- data:
			sent++
		default:
			h.logger.Warn("Dropping slow notification client")
			delete(h.clients, c)
			close(c.send)
		}
	}
	return sent, nil
}

// ServeHTTP upgrades the request and keeps the client registered until the
// connection closes.
func (h *NotificationHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade notification socket", zap.Error(err))
		return
	}

	c := &hubClient{conn: conn, send: make(chan []byte, hubSendBuffer)}
	h.register(c)

	go h.writePump(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(c)
}

func (h *NotificationHub) writePump(c *hubClient) {
	defer c.conn.Close()
	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Error("Failed to send notification to client", zap.Error(err))
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
