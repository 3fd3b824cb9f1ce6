package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/deepmonapara9/invoice-agent/internal/agent"
	"github.com/deepmonapara9/invoice-agent/internal/domain"
	"github.com/deepmonapara9/invoice-agent/internal/store"
	"github.com/google/uuid"
)

// Agent processes one chat turn. Implemented by agent.Service.
type Agent interface {
	Chat(ctx context.Context, sessionID, message string) agent.Reply
}

// WebSocketHandler handles WebSocket-based chat sessions.
type WebSocketHandler struct {
	agent         Agent
	history       store.Repository
	manager       *Manager
	allowedOrigin string
	isDev         bool
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(a Agent, history store.Repository, manager *Manager, allowedOrigin string, isDev bool) *WebSocketHandler {
	return &WebSocketHandler{
		agent:         a,
		history:       history,
		manager:       manager,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
//
// Each connection gets one server-generated session id and a single read
// loop that processes messages strictly in arrival order: receive, process,
// respond, receive next. Independent connections run concurrently.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()

	connSessionID := uuid.NewString()
	h.manager.Register(connSessionID, ws)
	defer h.manager.Unregister(connSessionID, ws)

	slog.Info("Chat connection established", "session_id", connSessionID, "ip", r.RemoteAddr)

	for {
		_, raw, err := ws.Read(r.Context())
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("WebSocket closed by client", "session_id", connSessionID)
			} else {
				slog.Warn("WebSocket read error", "session_id", connSessionID, "error", err)
			}
			return
		}

		// The turn runs on a detached context: a connection dropped
		// mid-turn must not cancel the in-flight remote calls. The
		// agent's own timeout still bounds them.
		resp := h.handleFrame(context.WithoutCancel(r.Context()), connSessionID, raw)

		data, err := json.Marshal(resp)
		if err != nil {
			slog.Error("Failed to encode response", "session_id", connSessionID, "error", err)
			continue
		}
		if err := h.manager.Send(context.Background(), connSessionID, data); err != nil {
			slog.Debug("Response delivery abandoned", "session_id", connSessionID, "error", err)
			return
		}
	}
}

// handleFrame processes one inbound frame and produces the outbound frame.
// No failure here closes the connection.
func (h *WebSocketHandler) handleFrame(ctx context.Context, connSessionID string, raw []byte) domain.ChatResponse {
	msg := parseFrame(raw, connSessionID)

	if isClear(msg) {
		deleted, err := h.history.ClearSession(ctx, msg.SessionID)
		if err != nil {
			slog.Error("Failed to clear conversation history", "session_id", msg.SessionID, "error", err)
			return newErrorResponse(msg.SessionID, genericFrameError, err.Error())
		}
		slog.Info("Conversation history cleared", "session_id", msg.SessionID, "deleted", deleted)
		return newResponse(msg.SessionID, clearConfirmation)
	}

	if msg.Message == "" {
		return newErrorResponse(msg.SessionID, genericFrameError, "message is required")
	}

	reply := h.agent.Chat(ctx, msg.SessionID, msg.Message)
	if !reply.Success {
		return newErrorResponse(msg.SessionID, reply.Message, reply.Err)
	}
	return newResponse(msg.SessionID, reply.Message)
}

// genericFrameError is the fixed user-safe message for frame-level failures.
const genericFrameError = "Sorry, I encountered an error processing your message."

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigin == "*" || h.allowedOrigin == "" {
		return true
	}
	if origin == h.allowedOrigin {
		return true
	}
	slog.Warn("WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigin)
	return false
}
