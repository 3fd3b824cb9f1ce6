package gemini

import (
	"github.com/deepmonapara9/invoice-agent/internal/domain"
	"github.com/deepmonapara9/invoice-agent/internal/llm"
	"google.golang.org/genai"
)

// toGeminiContents converts a prompt and history to Gemini Content format.
func toGeminiContents(prompt string, history []domain.StoredMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)

	for _, msg := range history {
		if msg.Content == "" {
			continue
		}
		role := "user"
		if msg.Role == domain.RoleModel {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}

	if prompt != "" {
		contents = append(contents, &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{genai.NewPartFromText(prompt)},
		})
	}

	return contents
}

// toGeminiTools converts tool definitions to Gemini tools.
func toGeminiTools(tools []llm.ToolDefinition) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		functionDeclarations = append(functionDeclarations, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  toGeminiSchema(tool.Parameters),
		})
	}

	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts a tool parameter schema to a Gemini Schema.
func toGeminiSchema(params llm.Schema) *genai.Schema {
	schema := &genai.Schema{
		Type: genai.TypeObject,
	}

	if len(params.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(params.Properties))
		for name, prop := range params.Properties {
			schema.Properties[name] = &genai.Schema{
				Type:        toGeminiType(prop.Type),
				Description: prop.Description,
			}
		}
	}

	if len(params.Required) > 0 {
		schema.Required = params.Required
	}

	return schema
}

// toGeminiType converts a string type to a Gemini Type.
func toGeminiType(typeStr string) genai.Type {
	switch typeStr {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// fromGeminiResponse collapses a Gemini response into a typed llm.Reply.
// At most one function call is accepted per turn; more than one is an
// explicit error rather than silently taking the first.
func fromGeminiResponse(resp *genai.GenerateContentResponse) (*llm.Reply, error) {
	if len(resp.Candidates) == 0 {
		return nil, llm.ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil, llm.ErrNoCandidates
	}

	var text string
	var call *llm.ToolCall
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil {
			if call != nil {
				return nil, llm.ErrMultipleToolCalls
			}
			call = &llm.ToolCall{
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			}
			continue
		}
		if part.Text != "" {
			text += part.Text
		}
	}

	return &llm.Reply{Text: text, Call: call}, nil
}
