// Package schema contains the core contracts shared across amadeus packages.
// Concrete implementations live in their respective packages; this package is
// the single canonical source of truth for every shared type.
package schema

import (
	"context"
	"sort"
	"time"
)

// Category groups tools for listing and prompt construction.
type Category string

const (
	CategorySystem        Category = "system"
	CategoryInformation   Category = "information"
	CategoryCommunication Category = "communication"
	CategoryProductivity  Category = "productivity"
)

// ParamType is the wire type of a tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
	ParamNumber  ParamType = "number"
	ParamBoolean ParamType = "boolean"
)

// ParamSpec describes a single tool parameter.
type ParamSpec struct {
	Type        ParamType
	Required    bool
	Description string
}

// Handler is the executable unit backing a tool. Arguments arrive already
// validated and coerced against the tool's parameter schema.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// ToolDefinition is an immutable tool descriptor. Created once during registry
// population at startup and never mutated afterwards.
type ToolDefinition struct {
	Name                 string
	Description          string
	Category             Category
	Parameters           map[string]ParamSpec
	RequiresConfirmation bool
	// TargetParam names the parameter whose value identifies the object a
	// destructive action operates on. Used to build confirmation prompts and
	// to match a follow-up confirmation to the original request.
	TargetParam string
	// Timeout bounds handler execution. Zero means the executor default.
	Timeout time.Duration
	Handler Handler
}

// RequiredParams returns the names of required parameters in sorted order.
func (d *ToolDefinition) RequiredParams() []string {
	var names []string
	for name, spec := range d.Parameters {
		if spec.Required {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Declaration is a tool projected into the shape expected by an LLM
// function-calling API.
type Declaration struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  DeclarationSchema `json:"parameters"`
}

// DeclarationSchema is the JSON-schema-like parameter block of a Declaration.
type DeclarationSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]DeclProperty `json:"properties"`
	Required   []string                `json:"required,omitempty"`
}

type DeclProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Declare projects the definition into function-calling form.
func (d *ToolDefinition) Declare() Declaration {
	props := make(map[string]DeclProperty, len(d.Parameters))
	for name, spec := range d.Parameters {
		props[name] = DeclProperty{
			Type:        string(spec.Type),
			Description: spec.Description,
		}
	}
	return Declaration{
		Name:        d.Name,
		Description: d.Description,
		Parameters: DeclarationSchema{
			Type:       "object",
			Properties: props,
			Required:   d.RequiredParams(),
		},
	}
}
