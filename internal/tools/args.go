// Package tools implements the built-in tool catalog: file operations,
// system monitoring, information lookups, conversions, and productivity
// (tasks, notes, reminders, calendar, pomodoro).
//
// Handlers receive arguments already validated and coerced by the executor,
// so the accessors here only deal with presence and defaults.
package tools

func argString(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return def
}

func argInt(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

func argFloat(args map[string]any, key string, def float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func argBool(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}
