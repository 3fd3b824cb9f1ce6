// Package gemini implements the llm.Provider interface for Google Gemini.
package gemini

import (
	"context"

	"github.com/deepmonapara9/invoice-agent/internal/llm"
	"google.golang.org/genai"
)

// systemInstruction is the fixed persona presented to the model on every turn.
const systemInstruction = `You are a finance assistant responsible for generating and managing the invoicing process for a company. Your job is to enable the user to communicate with you using natural language to instruct you to perform tasks related to invoicing. You have the ability to create invoices, manage customer accounts and list existing invoices. Your invoicing capabilities are provided using Stripe's API.

Using the information in the conversation history, you need to execute the actions instructed to you by the user. If you do not have enough information to complete the task or you run into any issues, you should ask the user for clarification or additional information.

Communicate with the end user in a polite and friendly tone. Your message responses should be clear and concise. Do not provide any unnecessary information or jargon.`

// Provider implements llm.Provider for Google Gemini.
type Provider struct {
	client    Client
	modelName string
}

// New creates a new Provider with the specified client and model.
func New(client Client, modelName string) *Provider {
	return &Provider{
		client:    client,
		modelName: modelName,
	}
}

// Generate sends a single-turn request to the Gemini API and collapses the
// response into a typed llm.Reply.
func (p *Provider) Generate(ctx context.Context, req *llm.Request) (*llm.Reply, error) {
	contents := toGeminiContents(req.Message, req.History)
	config := generationConfig()

	if len(req.Tools) > 0 {
		config.Tools = toGeminiTools(req.Tools)
	}

	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		return nil, err
	}

	return fromGeminiResponse(resp)
}

func generationConfig() *genai.GenerateContentConfig {
	temperature := float32(0.7)
	topP := float32(0.8)
	return &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		MaxOutputTokens: 2048,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(systemInstruction)},
		},
	}
}
