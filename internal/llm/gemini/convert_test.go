package gemini

import (
	"testing"

	"github.com/deepmonapara9/invoice-agent/internal/domain"
	"github.com/deepmonapara9/invoice-agent/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGeminiContents(t *testing.T) {
	history := []domain.StoredMessage{
		{Role: domain.RoleUser, Content: "create a customer"},
		{Role: domain.RoleModel, Content: "Which email should I use?"},
		{Role: domain.RoleModel, Content: ""},
	}

	contents := toGeminiContents("jane@example.com", history)

	require.Len(t, contents, 3, "empty history entries are skipped")
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "user", contents[2].Role)
	assert.Equal(t, "jane@example.com", contents[2].Parts[0].Text)
}

func TestToGeminiContents_EmptyPrompt(t *testing.T) {
	contents := toGeminiContents("", nil)
	assert.Empty(t, contents)
}

func TestToGeminiTools(t *testing.T) {
	tools := []llm.ToolDefinition{
		{
			Name:        "create_customer",
			Description: "Create a new customer in Stripe",
			Parameters: llm.Schema{
				Properties: map[string]llm.Property{
					"email":  {Type: "string", Description: "Customer email address"},
					"amount": {Type: "integer"},
				},
				Required: []string{"email"},
			},
		},
	}

	geminiTools := toGeminiTools(tools)

	require.Len(t, geminiTools, 1)
	require.Len(t, geminiTools[0].FunctionDeclarations, 1)

	fd := geminiTools[0].FunctionDeclarations[0]
	assert.Equal(t, "create_customer", fd.Name)
	require.NotNil(t, fd.Parameters)
	assert.Equal(t, genai.TypeObject, fd.Parameters.Type)
	assert.Equal(t, genai.TypeString, fd.Parameters.Properties["email"].Type)
	assert.Equal(t, genai.TypeInteger, fd.Parameters.Properties["amount"].Type)
	assert.Equal(t, []string{"email"}, fd.Parameters.Required)
}

func TestToGeminiTools_Empty(t *testing.T) {
	assert.Nil(t, toGeminiTools(nil))
}

func TestToGeminiType(t *testing.T) {
	tests := []struct {
		in   string
		want genai.Type
	}{
		{"string", genai.TypeString},
		{"integer", genai.TypeInteger},
		{"number", genai.TypeNumber},
		{"boolean", genai.TypeBoolean},
		{"array", genai.TypeArray},
		{"object", genai.TypeObject},
		{"anything-else", genai.TypeString},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toGeminiType(tt.in))
	}
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		},
	}
}

func TestFromGeminiResponse_Text(t *testing.T) {
	resp := textResponse(
		genai.NewPartFromText("Hello, "),
		genai.NewPartFromText("how can I help?"),
	)

	reply, err := fromGeminiResponse(resp)
	require.NoError(t, err)
	assert.Nil(t, reply.Call)
	assert.Equal(t, "Hello, how can I help?", reply.Text)
}

func TestFromGeminiResponse_ToolCall(t *testing.T) {
	resp := textResponse(&genai.Part{
		FunctionCall: &genai.FunctionCall{
			Name: "create_invoice",
			Args: map[string]any{"customer_id": "cus_1", "amount": float64(5000)},
		},
	})

	reply, err := fromGeminiResponse(resp)
	require.NoError(t, err)
	require.NotNil(t, reply.Call)
	assert.Equal(t, "create_invoice", reply.Call.Name)
	assert.Equal(t, "cus_1", reply.Call.Args["customer_id"])
}

func TestFromGeminiResponse_MultipleToolCalls(t *testing.T) {
	resp := textResponse(
		&genai.Part{FunctionCall: &genai.FunctionCall{Name: "create_customer"}},
		&genai.Part{FunctionCall: &genai.FunctionCall{Name: "create_invoice"}},
	)

	_, err := fromGeminiResponse(resp)
	assert.ErrorIs(t, err, llm.ErrMultipleToolCalls)
}

func TestFromGeminiResponse_NoCandidates(t *testing.T) {
	_, err := fromGeminiResponse(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, llm.ErrNoCandidates)
}

func TestFromGeminiResponse_NilContent(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{}},
	}
	_, err := fromGeminiResponse(resp)
	assert.ErrorIs(t, err, llm.ErrNoCandidates)
}
