package schema

import "context"

// LLMProvider is the language-model capability consumed by the intent
// resolver and the conversational fallback.
type LLMProvider interface {
	// Generate runs a single raw prompt and returns the model's text.
	Generate(ctx context.Context, prompt string) (string, error)
	// Chat runs a system-prompted exchange with prior history as context.
	Chat(ctx context.Context, system string, history []Message, user string) (string, error)
	DefaultModel() string
}
