package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/amadeusai/amadeus/internal/schema"
)

func findTool(t *testing.T, defs []*schema.ToolDefinition, name string) *schema.ToolDefinition {
	t.Helper()
	for _, d := range defs {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("tool %q not registered", name)
	return nil
}

func TestSetTimer_TakesSeconds(t *testing.T) {
	timer := findTool(t, ProductivityTools(ProductivityDeps{}), "set_timer")

	spec, ok := timer.Parameters["seconds"]
	if !ok || !spec.Required {
		t.Fatalf("expected a required seconds parameter, got %+v", timer.Parameters)
	}

	msg, err := timer.Handler(context.Background(), map[string]any{"seconds": 90, "label": "tea"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, "tea") || !strings.Contains(msg, "1m30s") {
		t.Errorf("expected label and duration in reply, got %q", msg)
	}

	if _, err := timer.Handler(context.Background(), map[string]any{"seconds": 0}); err == nil {
		t.Error("expected error for a zero-length timer")
	}
}
