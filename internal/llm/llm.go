// Package llm defines the model provider abstraction used by the agent loop.
package llm

import (
	"context"
	"errors"

	"github.com/deepmonapara9/invoice-agent/internal/domain"
)

// Sentinel errors for malformed model output.
var (
	ErrNoCandidates      = errors.New("no candidates in model response")
	ErrMultipleToolCalls = errors.New("model returned more than one tool call")
)

// Property describes a single tool parameter.
type Property struct {
	Type        string
	Description string
}

// Schema describes a tool's parameter object.
type Schema struct {
	Properties map[string]Property
	Required   []string
}

// ToolDefinition describes a callable tool presented to the model.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  Schema
}

// ToolCall is a structured function invocation emitted by the model.
type ToolCall struct {
	Name string
	Args map[string]any
}

// Reply is the typed result of one model turn: either free text or
// exactly one tool call. Call is nil for plain text replies.
type Reply struct {
	Text string
	Call *ToolCall
}

// Request is a single-turn generation request.
type Request struct {
	Message string
	History []domain.StoredMessage
	Tools   []ToolDefinition
}

// Provider generates model replies. Implementations must convert provider
// failures into errors rather than panicking, and must collapse the model's
// raw output into a Reply.
type Provider interface {
	Generate(ctx context.Context, req *Request) (*Reply, error)
}
