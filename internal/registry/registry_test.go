package registry

import (
	"context"
	"testing"

	"github.com/amadeusai/amadeus/internal/schema"
)

func testTool(name string, cat schema.Category) *schema.ToolDefinition {
	return &schema.ToolDefinition{
		Name:        name,
		Description: "test tool " + name,
		Category:    cat,
		Parameters: map[string]schema.ParamSpec{
			"arg": {Type: schema.ParamString, Required: true},
		},
		Handler: func(context.Context, map[string]any) (string, error) {
			return "ok", nil
		},
	}
}

func TestRegister_GetByName(t *testing.T) {
	reg := NewBuilder().
		WithTool(testTool("alpha", schema.CategorySystem)).
		WithTool(testTool("beta", schema.CategoryInformation)).
		Build()

	got := reg.Get("alpha")
	if got == nil {
		t.Fatal("expected alpha to be registered")
	}
	if got.Name != "alpha" {
		t.Errorf("expected name %q, got %q", "alpha", got.Name)
	}
	if reg.Get("missing") != nil {
		t.Error("expected nil for unregistered tool")
	}
}

func TestRegister_OverwriteKeepsPosition(t *testing.T) {
	reg := New()
	reg.Register(testTool("alpha", schema.CategorySystem))
	reg.Register(testTool("beta", schema.CategorySystem))

	replacement := testTool("alpha", schema.CategoryInformation)
	reg.Register(replacement)

	names := reg.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 tools after overwrite, got %d", len(names))
	}
	if names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("expected order [alpha beta], got %v", names)
	}
	if reg.Get("alpha").Category != schema.CategoryInformation {
		t.Error("expected overwrite to replace the definition")
	}
}

func TestByCategory(t *testing.T) {
	reg := NewBuilder().
		WithTool(testTool("alpha", schema.CategorySystem)).
		WithTool(testTool("beta", schema.CategoryInformation)).
		WithTool(testTool("gamma", schema.CategorySystem)).
		Build()

	system := reg.ByCategory(schema.CategorySystem)
	if len(system) != 2 {
		t.Fatalf("expected 2 system tools, got %d", len(system))
	}
	if system[0].Name != "alpha" || system[1].Name != "gamma" {
		t.Errorf("expected registration order [alpha gamma], got [%s %s]", system[0].Name, system[1].Name)
	}
}

func TestDeclarations(t *testing.T) {
	reg := NewBuilder().
		WithTool(testTool("alpha", schema.CategorySystem)).
		WithTool(testTool("beta", schema.CategorySystem)).
		Build()

	all := reg.Declarations(nil)
	if len(all) != 2 {
		t.Fatalf("expected 2 declarations for nil filter, got %d", len(all))
	}

	subset := reg.Declarations([]string{"beta", "missing"})
	if len(subset) != 1 {
		t.Fatalf("expected unknown names to be skipped, got %d declarations", len(subset))
	}
	if subset[0].Name != "beta" {
		t.Errorf("expected declaration for beta, got %q", subset[0].Name)
	}
	if len(subset[0].Parameters.Required) != 1 || subset[0].Parameters.Required[0] != "arg" {
		t.Errorf("expected required [arg], got %v", subset[0].Parameters.Required)
	}
}
