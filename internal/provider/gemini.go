// Package provider implements schema.LLMProvider on top of the Google Gemini
// API.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/amadeusai/amadeus/internal/schema"
)

// Gemini calls the Gemini API for both tool selection and conversational
// replies.
type Gemini struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewGemini creates a Gemini provider. model defaults to gemini-2.0-flash.
func NewGemini(ctx context.Context, apiKey, model string, maxTokens int, temperature float64) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

func (g *Gemini) DefaultModel() string { return g.model }

// Generate implements schema.LLMProvider.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config(""))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return extractText(resp)
}

// Chat implements schema.LLMProvider. History is flattened into the prompt;
// the model sees the same transcript format the persona prompt describes.
func (g *Gemini) Chat(ctx context.Context, system string, history []schema.Message, user string) (string, error) {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Recent conversation:\n")
		b.WriteString(schema.FormatHistory(history, "Assistant"))
		b.WriteString("\n\n")
	}
	b.WriteString("User: " + user)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(b.String()), g.config(system))
	if err != nil {
		return "", fmt.Errorf("gemini chat: %w", err)
	}
	return extractText(resp)
}

func (g *Gemini) config(system string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if g.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(g.maxTokens)
	}
	if g.temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(g.temperature))
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return cfg
}

// extractText pulls the text out of a response, tolerating empty candidates.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		slog.Warn("gemini returned an empty response")
		return "", fmt.Errorf("empty model response")
	}
	return strings.TrimSpace(text), nil
}
