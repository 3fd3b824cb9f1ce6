// Package agent implements the chat-to-tool-call orchestration loop.
package agent

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/deepmonapara9/invoice-agent/internal/domain"
	"github.com/deepmonapara9/invoice-agent/internal/llm"
	"github.com/deepmonapara9/invoice-agent/internal/store"
)

// genericErrorMessage is the user-safe text sent whenever a turn fails in a
// way the user cannot act on. The underlying error travels separately.
const genericErrorMessage = "Sorry, I encountered an error processing your message."

// Reply is the outcome of one agent turn.
type Reply struct {
	// Message is the user-facing text.
	Message string
	// Success is false when the turn failed before producing a usable
	// result (model invocation failure, unknown tool, bad arguments).
	Success bool
	// Err carries the underlying error text for diagnostics when Success
	// is false.
	Err string
}

// Service runs the agent loop: submit a message to the model, interpret the
// typed reply, dispatch at most one tool call, format the outcome.
type Service struct {
	provider     llm.Provider
	registry     *Registry
	history      store.Repository
	historyLimit int
	timeout      time.Duration
}

// NewService creates the agent service. timeout bounds one full turn,
// including the model call and any tool dispatch.
func NewService(provider llm.Provider, registry *Registry, history store.Repository, historyLimit int, timeout time.Duration) *Service {
	return &Service{
		provider:     provider,
		registry:     registry,
		history:      history,
		historyLimit: historyLimit,
		timeout:      timeout,
	}
}

// Chat processes one user message for a session and returns the reply.
// It never returns an error: every failure is folded into the Reply.
func (s *Service) Chat(ctx context.Context, sessionID, message string) Reply {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.provider.Generate(ctx, &llm.Request{
		Message: message,
		History: s.loadHistory(ctx, sessionID),
		Tools:   s.registry.Definitions(),
	})
	if err != nil {
		slog.Error("Model invocation failed", "session_id", sessionID, "error", err)
		return Reply{Message: genericErrorMessage, Success: false, Err: err.Error()}
	}

	var final string
	if reply.Call == nil {
		final = reply.Text
	} else {
		result, icon, dispatchErr := s.registry.Dispatch(ctx, *reply.Call)
		if dispatchErr != nil {
			var actionErr *ActionError
			if errors.As(dispatchErr, &actionErr) && actionErr.Kind == ErrorKindProvider {
				// Remote failures become a descriptive result in a
				// normal response; the turn itself succeeded.
				result = actionErr.UserText()
			} else {
				slog.Warn("Tool dispatch rejected", "session_id", sessionID, "tool", reply.Call.Name, "error", dispatchErr)
				return Reply{Message: genericErrorMessage, Success: false, Err: dispatchErr.Error()}
			}
		}
		final = result
		if icon != "" {
			final = icon + " " + result
		}
	}

	s.appendHistory(ctx, sessionID, message, final)
	return Reply{Message: final, Success: true}
}

// loadHistory fetches recent session context. History is best effort: a
// store failure degrades the turn to single-shot rather than failing it.
func (s *Service) loadHistory(ctx context.Context, sessionID string) []domain.StoredMessage {
	history, err := s.history.History(ctx, sessionID, s.historyLimit)
	if err != nil {
		slog.Warn("Failed to load conversation history", "session_id", sessionID, "error", err)
		return nil
	}
	return history
}

func (s *Service) appendHistory(ctx context.Context, sessionID, userMessage, agentMessage string) {
	entries := []domain.StoredMessage{
		{Role: domain.RoleUser, Content: userMessage},
		{Role: domain.RoleModel, Content: agentMessage},
	}
	for _, entry := range entries {
		if err := s.history.AppendMessage(ctx, sessionID, entry); err != nil {
			slog.Warn("Failed to append conversation history", "session_id", sessionID, "error", err)
			return
		}
	}
}
