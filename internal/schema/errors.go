package schema

import (
	"errors"
	"fmt"
)

// ErrToolNotFound marks a candidate naming a tool absent from the registry.
var ErrToolNotFound = errors.New("tool not found")

// ErrTimeout marks a handler that exceeded its execution bound. Surfaced
// distinctly so the user knows to retry rather than assume permanent failure.
var ErrTimeout = errors.New("tool timed out")

// ValidationError reports a missing or malformed tool argument. The parameter
// name is part of the user-facing message.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument '%s': %s", e.Param, e.Reason)
}
