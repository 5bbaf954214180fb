// Package registry holds the process-wide tool catalog. It is populated once
// during startup and read concurrently by every request afterwards.
package registry

import (
	"log/slog"

	"github.com/amadeusai/amadeus/internal/schema"
)

// Registry maps tool names to definitions. Lookup is by exact name; listing
// preserves registration order.
type Registry struct {
	tools map[string]*schema.ToolDefinition
	order []string
}

// New returns an empty Registry. Most callers should use a Builder instead
// and treat the built Registry as immutable.
func New() *Registry {
	return &Registry{tools: make(map[string]*schema.ToolDefinition)}
}

// Register inserts a tool, overwriting any existing tool of the same name.
// Overwrites keep the original list position and log a warning; they are
// never an error.
func (r *Registry) Register(def *schema.ToolDefinition) {
	if _, exists := r.tools[def.Name]; exists {
		slog.Warn("tool already registered, overwriting", "name", def.Name)
	} else {
		r.order = append(r.order, def.Name)
	}
	r.tools[def.Name] = def
}

// Get returns the tool with the given name, or nil.
func (r *Registry) Get(name string) *schema.ToolDefinition {
	return r.tools[name]
}

// ByCategory returns all tools in a category, in registration order.
func (r *Registry) ByCategory(cat schema.Category) []*schema.ToolDefinition {
	var out []*schema.ToolDefinition
	for _, name := range r.order {
		if t := r.tools[name]; t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

// All returns every registered tool in registration order.
func (r *Registry) All() []*schema.ToolDefinition {
	out := make([]*schema.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Names returns every registered tool name in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Declarations projects tools into LLM function-calling declarations.
// names == nil means all tools; unknown names are skipped.
func (r *Registry) Declarations(names []string) []schema.Declaration {
	if names == nil {
		names = r.order
	}
	out := make([]schema.Declaration, 0, len(names))
	for _, name := range names {
		if t := r.tools[name]; t != nil {
			out = append(out, t.Declare())
		}
	}
	return out
}
