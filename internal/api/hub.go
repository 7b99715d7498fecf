package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talgya/econsim/internal/engine"
)

// maxStreamConns caps concurrent WebSocket observers per variant.
const maxStreamConns = 16

var upgrader = websocket.Upgrader{
	// The HTTP layer already filters origins via CORS; the stream is
	// read-only observation, so any origin may subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub pushes a fresh view to every connected client after each state
// change, so the frontend never polls for chart updates.
type Hub struct {
	ctrl *engine.Controller

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates a hub for one controller.
func NewHub(ctrl *engine.Controller) *Hub {
	return &Hub{
		ctrl:  ctrl,
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// BroadcastView serializes the current view and sends it to every
// client. Slow or dead clients are dropped rather than back-pressuring
// the simulation.
func (h *Hub) BroadcastView() {
	h.mu.Lock()
	if len(h.conns) == 0 {
		h.mu.Unlock()
		return
	}
	payload, err := json.Marshal(h.ctrl.View())
	if err != nil {
		h.mu.Unlock()
		slog.Error("view marshal failed", "error", err)
		return
	}

	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
	h.mu.Unlock()
}

// handleStream upgrades the request and registers the client. The
// client receives the current view immediately, then one message per
// state change until it disconnects. Registration and the initial write
// happen under the hub lock so no change broadcast can slip between
// them.
func (h *Hub) handleStream(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	full := len(h.conns) >= maxStreamConns
	h.mu.Unlock()
	if full {
		http.Error(w, "too many stream connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("stream upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	payload, err := json.Marshal(h.ctrl.View())
	if err == nil {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		err = conn.WriteMessage(websocket.TextMessage, payload)
	}
	if err != nil {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.conns[conn] = struct{}{}
	count := len(h.conns)
	h.mu.Unlock()
	slog.Info("stream client connected", "variant", h.ctrl.Variant().String(), "clients", count)

	// Read loop: the stream is one-way, but reading surfaces closes and
	// keeps pong handling alive.
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.conns, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		conn.SetReadLimit(1 << 10)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
