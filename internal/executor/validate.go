package executor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amadeusai/amadeus/internal/schema"
)

// validateArgs checks supplied arguments against the tool's parameter schema.
// Unknown arguments are dropped; known ones are coerced to their declared
// type. Returns the cleaned argument map or a *schema.ValidationError.
func validateArgs(def *schema.ToolDefinition, args map[string]any) (map[string]any, error) {
	cleaned := make(map[string]any, len(args))

	for name, spec := range def.Parameters {
		raw, ok := args[name]
		if !ok || raw == nil {
			if spec.Required {
				return nil, &schema.ValidationError{Param: name, Reason: "required parameter is missing"}
			}
			continue
		}
		v, err := coerce(raw, spec.Type)
		if err != nil {
			return nil, &schema.ValidationError{Param: name, Reason: err.Error()}
		}
		cleaned[name] = v
	}

	return cleaned, nil
}

// coerce converts a raw argument (typically a JSON-decoded value) to the
// declared parameter type.
func coerce(raw any, t schema.ParamType) (any, error) {
	switch t {
	case schema.ParamString:
		switch v := raw.(type) {
		case string:
			return v, nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(v), nil
		}
		return nil, fmt.Errorf("expected string, got %T", raw)

	case schema.ParamNumber:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("expected a number, got %q", v)
			}
			return f, nil
		}
		return nil, fmt.Errorf("expected a number, got %T", raw)

	case schema.ParamInteger:
		switch v := raw.(type) {
		case float64:
			if v != float64(int64(v)) {
				return nil, fmt.Errorf("expected an integer, got %v", v)
			}
			return int(v), nil
		case int:
			return v, nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("expected an integer, got %q", v)
			}
			return n, nil
		}
		return nil, fmt.Errorf("expected an integer, got %T", raw)

	case schema.ParamBoolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("expected true or false, got %q", v)
			}
			return b, nil
		}
		return nil, fmt.Errorf("expected true or false, got %T", raw)
	}

	return raw, nil
}
