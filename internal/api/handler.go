// Package api provides HTTP handlers for the keyed management surface.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/deepmonapara9/invoice-agent/internal/store"
	"github.com/go-chi/chi/v5"
)

// Handler serves the health check and conversation reset endpoints.
type Handler struct {
	repo store.Repository
}

// NewHandler creates a new Handler.
func NewHandler(repo store.Repository) *Handler {
	return &Handler{repo: repo}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// HandleHealth handles GET /api/health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"message": "API is working"})
}

type clearChatRequest struct {
	SessionID string `json:"session_id"`
}

// HandleClearChat handles POST /api/chat/clear. With a session_id it resets
// one session's history; without one it resets every session.
func (h *Handler) HandleClearChat(w http.ResponseWriter, r *http.Request) {
	var req clearChatRequest
	if r.Body != nil {
		// An empty or absent body means "clear everything".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	var (
		deleted int64
		err     error
	)
	if req.SessionID != "" {
		deleted, err = h.repo.ClearSession(r.Context(), req.SessionID)
	} else {
		deleted, err = h.repo.ClearAll(r.Context())
	}
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to clear chat history")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Chat history cleared successfully",
		"success": true,
		"deleted": deleted,
	})
}

// RegisterRoutes registers the keyed management routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Post("/chat/clear", h.HandleClearChat)
	})
}
