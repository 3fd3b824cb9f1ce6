// Package chat provides the WebSocket chat endpoint and its session handling.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// ErrSessionNotRegistered is returned when sending to a session with no
// live connection.
var ErrSessionNotRegistered = errors.New("chat: session not registered")

// Manager tracks the live WebSocket connection for each chat session.
type Manager struct {
	mu     sync.RWMutex
	active map[string]*websocket.Conn
}

// NewManager creates a new connection manager.
func NewManager() *Manager {
	return &Manager{
		active: make(map[string]*websocket.Conn),
	}
}

// Register adds a connection for a session. A previous connection under the
// same session id is closed and replaced.
func (m *Manager) Register(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.active[sessionID]; ok && existing != conn {
		_ = existing.Close(websocket.StatusNormalClosure, "session replaced")
	}

	m.active[sessionID] = conn
	slog.Info("Chat session registered", "session_id", sessionID)
}

// Unregister removes a connection for a session. Safe to call when the
// session was already removed or replaced.
func (m *Manager) Unregister(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.active[sessionID]; ok && current == conn {
		delete(m.active, sessionID)
		slog.Info("Chat session unregistered", "session_id", sessionID)
	}
}

// Get returns the active connection for a session, or nil.
func (m *Manager) Get(sessionID string) *websocket.Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active[sessionID]
}

// Send delivers a text frame to one registered session.
func (m *Manager) Send(ctx context.Context, sessionID string, data []byte) error {
	conn := m.Get(sessionID)
	if conn == nil {
		return ErrSessionNotRegistered
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

// Broadcast delivers a text frame to every registered session.
func (m *Manager) Broadcast(ctx context.Context, data []byte) {
	m.mu.RLock()
	conns := make(map[string]*websocket.Conn, len(m.active))
	for id, conn := range m.active {
		conns[id] = conn
	}
	m.mu.RUnlock()

	for id, conn := range conns {
		if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
			slog.Debug("Broadcast write failed", "session_id", id, "error", err)
		}
	}
}
