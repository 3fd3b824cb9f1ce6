package chat

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/deepmonapara9/invoice-agent/internal/domain"
)

// clearConfirmation is the fixed reply to a conversation reset.
const clearConfirmation = "Chat history has been cleared."

// parseFrame decodes an inbound frame as a ChatMessage. Non-JSON payloads
// are accepted for backward compatibility and treated as plain chat text
// under the server-generated fallback session id.
func parseFrame(raw []byte, fallbackSessionID string) domain.ChatMessage {
	var msg domain.ChatMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return domain.ChatMessage{
			SessionID:   fallbackSessionID,
			Message:     string(raw),
			MessageType: domain.MessageTypeChat,
		}
	}

	if msg.SessionID == "" {
		msg.SessionID = fallbackSessionID
	}
	if msg.MessageType == "" {
		msg.MessageType = domain.MessageTypeChat
	}
	return msg
}

// isClear reports whether a message requests a conversation reset, either
// through its type or the "/clear" command.
func isClear(msg domain.ChatMessage) bool {
	if msg.MessageType == domain.MessageTypeClear {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(msg.Message), "/clear")
}

// newResponse builds a successful outbound frame.
func newResponse(sessionID, message string) domain.ChatResponse {
	return domain.ChatResponse{
		SessionID:   sessionID,
		Message:     message,
		Sender:      domain.SenderAgent,
		Timestamp:   time.Now().Format(time.RFC3339),
		MessageType: domain.MessageTypeResponse,
		Success:     true,
	}
}

// newErrorResponse builds an error-flagged outbound frame. The message is a
// fixed user-safe string; the underlying error travels in the error field.
func newErrorResponse(sessionID, message, errText string) domain.ChatResponse {
	resp := newResponse(sessionID, message)
	resp.Success = false
	resp.Error = errText
	return resp
}
