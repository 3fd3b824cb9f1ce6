package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/deepmonapara9/invoice-agent/internal/agent"
	"github.com/deepmonapara9/invoice-agent/internal/domain"
)

type fakeAgent struct {
	lastSessionID string
	lastMessage   string
	reply         agent.Reply
}

func (f *fakeAgent) Chat(_ context.Context, sessionID, message string) agent.Reply {
	f.lastSessionID = sessionID
	f.lastMessage = message
	return f.reply
}

type fakeRepo struct {
	cleared  []string
	clearErr error
}

func (f *fakeRepo) AppendMessage(context.Context, string, domain.StoredMessage) error { return nil }
func (f *fakeRepo) History(context.Context, string, int) ([]domain.StoredMessage, error) {
	return nil, nil
}
func (f *fakeRepo) ClearSession(_ context.Context, sessionID string) (int64, error) {
	if f.clearErr != nil {
		return 0, f.clearErr
	}
	f.cleared = append(f.cleared, sessionID)
	return 1, nil
}
func (f *fakeRepo) ClearAll(context.Context) (int64, error) { return 0, nil }
func (f *fakeRepo) Ping(context.Context) error              { return nil }
func (f *fakeRepo) Close() error                            { return nil }

func newTestHandler(a *fakeAgent, repo *fakeRepo) *WebSocketHandler {
	return NewWebSocketHandler(a, repo, NewManager(), "", true)
}

func TestHandleFrame_ChatReturnsAgentReply(t *testing.T) {
	a := &fakeAgent{reply: agent.Reply{Message: "Hello there!", Success: true}}
	h := newTestHandler(a, &fakeRepo{})

	resp := h.handleFrame(context.Background(), "conn-1", []byte(`{"session_id":"s1","message":"hi"}`))

	if !resp.Success {
		t.Errorf("Expected success, got error %q", resp.Error)
	}
	if resp.Message != "Hello there!" {
		t.Errorf("Expected agent text verbatim, got %q", resp.Message)
	}
	if resp.SessionID != "s1" {
		t.Errorf("Expected session id s1, got %s", resp.SessionID)
	}
	if a.lastSessionID != "s1" || a.lastMessage != "hi" {
		t.Errorf("Agent called with (%s, %s)", a.lastSessionID, a.lastMessage)
	}
}

func TestHandleFrame_ClearNeverReachesAgent(t *testing.T) {
	a := &fakeAgent{reply: agent.Reply{Message: "should not appear", Success: true}}
	repo := &fakeRepo{}
	h := newTestHandler(a, repo)

	for _, raw := range []string{
		`{"session_id":"s1","message":"ignored","message_type":"clear"}`,
		`{"session_id":"s1","message":" /Clear "}`,
	} {
		resp := h.handleFrame(context.Background(), "conn-1", []byte(raw))

		if resp.Message != clearConfirmation {
			t.Errorf("Expected clear confirmation, got %q", resp.Message)
		}
		if !resp.Success {
			t.Errorf("Expected success, got error %q", resp.Error)
		}
	}

	if len(repo.cleared) != 2 {
		t.Errorf("Expected 2 clear calls, got %d", len(repo.cleared))
	}
	if a.lastMessage != "" {
		t.Errorf("Agent must not run for clear messages, got %q", a.lastMessage)
	}
}

func TestHandleFrame_ClearFailure(t *testing.T) {
	h := newTestHandler(&fakeAgent{}, &fakeRepo{clearErr: errors.New("db down")})

	resp := h.handleFrame(context.Background(), "conn-1", []byte(`{"session_id":"s1","message_type":"clear","message":""}`))

	if resp.Success {
		t.Error("Expected success=false on clear failure")
	}
	if resp.Error != "db down" {
		t.Errorf("Expected error detail, got %q", resp.Error)
	}
}

func TestHandleFrame_PlainTextFallback(t *testing.T) {
	a := &fakeAgent{reply: agent.Reply{Message: "ok", Success: true}}
	h := newTestHandler(a, &fakeRepo{})

	resp := h.handleFrame(context.Background(), "conn-1", []byte("not json at all"))

	if !resp.Success {
		t.Errorf("Expected success, got error %q", resp.Error)
	}
	if resp.SessionID != "conn-1" {
		t.Errorf("Expected server-generated session id, got %s", resp.SessionID)
	}
	if resp.MessageType != domain.MessageTypeResponse {
		t.Errorf("Expected message_type response, got %s", resp.MessageType)
	}
	if a.lastMessage != "not json at all" {
		t.Errorf("Expected raw payload forwarded to agent, got %q", a.lastMessage)
	}
}

func TestHandleFrame_EmptyMessage(t *testing.T) {
	h := newTestHandler(&fakeAgent{}, &fakeRepo{})

	resp := h.handleFrame(context.Background(), "conn-1", []byte(`{"session_id":"s1","message":""}`))

	if resp.Success {
		t.Error("Expected success=false for empty message")
	}
	if resp.Error == "" {
		t.Error("Expected error to be populated")
	}
	if resp.Message != genericFrameError {
		t.Errorf("Expected generic user-safe message, got %q", resp.Message)
	}
}

func TestHandleFrame_AgentFailure(t *testing.T) {
	a := &fakeAgent{reply: agent.Reply{Message: "Sorry, I encountered an error processing your message.", Success: false, Err: "model exploded"}}
	h := newTestHandler(a, &fakeRepo{})

	resp := h.handleFrame(context.Background(), "conn-1", []byte(`{"session_id":"s1","message":"hi"}`))

	if resp.Success {
		t.Error("Expected success=false")
	}
	if resp.Error != "model exploded" {
		t.Errorf("Expected diagnostic error, got %q", resp.Error)
	}
}
