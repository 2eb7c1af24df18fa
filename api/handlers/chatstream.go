package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/manjunath2605/courtcase-app/api"
)

// WebSocket upgrader. Origins are already filtered by the CORS middleware in
// front of the router.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatHub tracks connected staff sockets (userId -> conn) and fans chat
// events out to all of them
type ChatHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex

	// writeMutex serializes outbound writes; gorilla conns allow only one
	// concurrent writer
	writeMutex sync.Mutex
}

// NewChatHub returns an empty hub
func NewChatHub() *ChatHub {
	return &ChatHub{
		clients: make(map[string]*websocket.Conn),
	}
}

// ServeWS upgrades the request and registers the caller's socket. Staff only.
func (h *ChatHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	identity, ok := api.IdentityFromContext(r.Context())
	if !ok || !identity.Role.Staff() {
		writeMsg(w, http.StatusForbidden, "Not allowed")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}

	h.mutex.Lock()
	if old, exists := h.clients[identity.ID]; exists {
		old.Close()
	}
	h.clients[identity.ID] = conn
	h.mutex.Unlock()
	zap.S().Infow("chat socket connected", "userId", identity.ID)

	conn.SetCloseHandler(func(code int, text string) error {
		h.remove(identity.ID, conn)
		zap.S().Infow("chat socket disconnected", "userId", identity.ID)
		return nil
	})

	// Drain inbound frames; all writes happen through Broadcast
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.remove(identity.ID, conn)
			break
		}
	}
}

// remove closes a socket and deregisters it, unless a newer socket has
// already replaced it for the same user
func (h *ChatHub) remove(userID string, conn *websocket.Conn) {
	h.mutex.Lock()
	if h.clients[userID] == conn {
		delete(h.clients, userID)
	}
	h.mutex.Unlock()
	conn.Close()
}

// Broadcast sends an event to every connected socket, dropping sockets that
// fail to write. The registry lock is released before any network write so a
// stalled socket never blocks joins and leaves.
func (h *ChatHub) Broadcast(event string, data interface{}) {
	h.mutex.Lock()
	conns := make(map[string]*websocket.Conn, len(h.clients))
	for userID, conn := range h.clients {
		conns[userID] = conn
	}
	h.mutex.Unlock()

	payload := map[string]interface{}{
		"event": event,
		"data":  data,
	}

	h.writeMutex.Lock()
	defer h.writeMutex.Unlock()
	for userID, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			zap.S().Warnw("chat broadcast failed", "userId", userID, "error", err)
			h.remove(userID, conn)
		}
	}
}
