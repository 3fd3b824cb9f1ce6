// Package domain defines the wire and history types shared across the server.
package domain

// Message types carried on the chat WebSocket.
const (
	MessageTypeChat     = "chat"
	MessageTypeClear    = "clear"
	MessageTypeResponse = "response"
)

// SenderAgent is the sender field on every outbound frame.
const SenderAgent = "agent"

// ChatMessage is an inbound chat frame.
type ChatMessage struct {
	SessionID   string `json:"session_id"`
	Message     string `json:"message"`
	UserID      string `json:"user_id,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	MessageType string `json:"message_type,omitempty"`
}

// ChatResponse is an outbound response frame.
type ChatResponse struct {
	SessionID   string `json:"session_id"`
	Message     string `json:"message"`
	Sender      string `json:"sender"`
	Timestamp   string `json:"timestamp"`
	MessageType string `json:"message_type"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// StoredMessage is a serialized conversation history entry.
type StoredMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)
