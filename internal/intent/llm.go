package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amadeusai/amadeus/internal/registry"
	"github.com/amadeusai/amadeus/internal/schema"
)

// minConfidence is the floor below which a model tool choice is discarded in
// favor of a conversational reply.
const minConfidence = 0.3

// LLMResolver asks the language model to pick a tool. The prompt lists every
// registered tool with its description; the model answers with a JSON object
// {"tool": ..., "args": {...}, "confidence": ...} or the literal
// "conversational" sentinel.
type LLMResolver struct {
	provider schema.LLMProvider
	registry *registry.Registry
}

func NewLLMResolver(provider schema.LLMProvider, reg *registry.Registry) *LLMResolver {
	return &LLMResolver{provider: provider, registry: reg}
}

func (r *LLMResolver) Resolve(ctx context.Context, text string) schema.IntentCandidate {
	out, err := r.provider.Generate(ctx, r.buildPrompt(text))
	if err != nil {
		slog.Error("tool selection call failed", "err", err)
		return schema.ConversationalCandidate()
	}

	var cand schema.IntentCandidate
	if err := json.Unmarshal([]byte(stripFences(out)), &cand); err != nil {
		slog.Warn("unparseable tool selection, falling back to conversational",
			"err", err, "output", truncate(out, 200))
		return schema.ConversationalCandidate()
	}
	if cand.Arguments == nil {
		cand.Arguments = map[string]any{}
	}

	slog.Info("tool selection", "tool", cand.Tool, "confidence", cand.Confidence)

	if cand.IsConversational() {
		return schema.ConversationalCandidate()
	}
	if cand.Confidence > 0 && cand.Confidence < minConfidence {
		slog.Info("low confidence, falling back to conversational", "tool", cand.Tool)
		return schema.ConversationalCandidate()
	}
	return cand
}

func (r *LLMResolver) buildPrompt(command string) string {
	var b strings.Builder
	b.WriteString("Analyze this user command and select the best tool.\n\n")
	fmt.Fprintf(&b, "User command: %q\n\nAvailable tools:\n", command)

	for _, cat := range []schema.Category{
		schema.CategorySystem,
		schema.CategoryInformation,
		schema.CategoryCommunication,
		schema.CategoryProductivity,
	} {
		tools := r.registry.ByCategory(cat)
		if len(tools) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", cat)
		for _, t := range tools {
			fmt.Fprintf(&b, "  - %s: %s\n", t.Name, t.Description)
		}
	}

	b.WriteString(`
Respond ONLY with a JSON object (no markdown, no backticks):
{"tool": "tool_name_or_conversational", "args": {"param": "value"}, "confidence": 0.0-1.0}

If no tool fits, use: {"tool": "conversational", "args": {}, "confidence": 1.0}

Examples:
- "what time is it" -> {"tool": "get_datetime_info", "args": {"query": "time"}, "confidence": 0.95}
- "add task buy groceries" -> {"tool": "add_task", "args": {"content": "buy groceries"}, "confidence": 0.9}
- "how are you" -> {"tool": "conversational", "args": {}, "confidence": 1.0}
`)
	return b.String()
}

// stripFences removes a markdown code fence around a JSON response, plus any
// stray backticks or "json" language tag the model sneaks in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	s = strings.ReplaceAll(s, "`", "")
	s = strings.TrimPrefix(strings.TrimSpace(s), "json")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
