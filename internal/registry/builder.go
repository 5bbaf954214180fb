package registry

import "github.com/amadeusai/amadeus/internal/schema"

// Builder accumulates tools during the construction phase.
// Call Build() to produce a Registry ready for use.
type Builder struct {
	reg *Registry
}

// NewBuilder returns a fresh Builder.
func NewBuilder() *Builder {
	return &Builder{reg: New()}
}

// WithTool adds a tool and returns the builder, enabling chaining.
func (b *Builder) WithTool(def *schema.ToolDefinition) *Builder {
	b.reg.Register(def)
	return b
}

// WithTools adds a batch of tools in order.
func (b *Builder) WithTools(defs []*schema.ToolDefinition) *Builder {
	for _, def := range defs {
		b.reg.Register(def)
	}
	return b
}

// Build returns the accumulated Registry. The caller must not register more
// tools after Build; the registry is shared without synchronization.
func (b *Builder) Build() *Registry {
	return b.reg
}
