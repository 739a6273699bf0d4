package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// TrackHandler broadcasts the tracking feed over WebSocket: the detected
// hands, the classified gesture and the resulting camera state. The browser
// renderer drives its scene camera from these messages.
type TrackHandler struct {
	session   *app.Session
	clients   map[*websocket.Conn]bool
	mu        sync.RWMutex
	stop      chan struct{}
	closeOnce sync.Once
}

// NewTrackHandler creates a new TrackHandler for the given session.
func NewTrackHandler(session *app.Session) *TrackHandler {
	h := &TrackHandler{
		session: session,
		clients: make(map[*websocket.Conn]bool),
		stop:    make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// Close stops the broadcast loop. Safe to call more than once; connected
// clients are left to fail on their next read.
func (h *TrackHandler) Close() {
	h.closeOnce.Do(func() { close(h.stop) })
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *TrackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast pushes the session snapshot to all connected clients at a fixed
// rate. Consumers must not assume this matches the vision frame rate.
func (h *TrackHandler) broadcast() {
	ticker := time.NewTicker(33 * time.Millisecond) // ~30 FPS
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
		}

		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		msg, err := json.Marshal(h.session.Snapshot())
		if err != nil {
			continue
		}

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
