package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/expr-lang/expr"

	"github.com/amadeusai/amadeus/internal/schema"
)

// Greeting returns a time-of-day greeting, used by the daily brief and the
// startup banner.
func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h >= 5 && h < 12:
		return "Good morning"
	case h >= 12 && h < 17:
		return "Good afternoon"
	case h >= 17 && h < 21:
		return "Good evening"
	default:
		return "Hello"
	}
}

// DatetimeInfo answers a date/time query ("time", "date", "day", "week",
// "month", "year", "datetime"). Times are spoken in 12-hour form.
func DatetimeInfo(query string, now time.Time) string {
	q := strings.ToLower(strings.TrimSpace(query))
	switch {
	case strings.Contains(q, "time"):
		return fmt.Sprintf("The current time is %s", now.Format("03:04 PM"))
	case strings.Contains(q, "date"):
		return fmt.Sprintf("Today's date is %s", now.Format("January 02, 2006"))
	case strings.Contains(q, "week"):
		_, week := now.ISOWeek()
		return fmt.Sprintf("This is week %d of %d", week, now.Year())
	case strings.Contains(q, "month"):
		return fmt.Sprintf("The current month is %s", now.Format("January 2006"))
	case strings.Contains(q, "year"):
		return fmt.Sprintf("The current year is %d", now.Year())
	case strings.Contains(q, "day"):
		return fmt.Sprintf("Today is %s", now.Format("Monday"))
	case strings.Contains(q, "datetime"), strings.Contains(q, "full"):
		return fmt.Sprintf("It is %s on %s", now.Format("03:04 PM"), now.Format("Monday, January 02, 2006"))
	default:
		return fmt.Sprintf("It's %s on %s", now.Format("03:04 PM"), now.Format("Monday, January 02, 2006"))
	}
}

// spokenTimes matches an "x" used as a multiplication sign between numbers,
// leaving identifiers like max() alone.
var spokenTimes = regexp.MustCompile(`(\d)\s*[xX]\s*(\d)`)

// Calculate evaluates a plain arithmetic expression.
func Calculate(expression string) (string, error) {
	// Normalize spoken operators before evaluation.
	cleaned := strings.NewReplacer("×", "*", "÷", "/", "^", "**").Replace(expression)
	cleaned = spokenTimes.ReplaceAllString(cleaned, "$1 * $2")

	program, err := expr.Compile(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid expression %q", expression)
	}
	result, err := expr.Run(program, nil)
	if err != nil {
		return "", fmt.Errorf("calculation error: %v", err)
	}
	return fmt.Sprintf("%s = %v", expression, result), nil
}

// ConvertTemperature converts between Celsius, Fahrenheit, and Kelvin.
// Units match on their first letter, so "celsius", "C", and "c" all work.
func ConvertTemperature(value float64, fromUnit, toUnit string) (string, error) {
	from := firstLetter(fromUnit)
	to := firstLetter(toUnit)
	if !strings.ContainsRune("cfk", rune(from)) || !strings.ContainsRune("cfk", rune(to)) {
		return "", fmt.Errorf("unknown temperature unit; use celsius, fahrenheit, or kelvin")
	}

	var celsius float64
	switch from {
	case 'f':
		celsius = (value - 32) * 5 / 9
	case 'k':
		celsius = value - 273.15
	default:
		celsius = value
	}

	var result float64
	var unitName string
	switch to {
	case 'f':
		result = celsius*9/5 + 32
		unitName = "Fahrenheit"
	case 'k':
		result = celsius + 273.15
		unitName = "Kelvin"
	default:
		result = celsius
		unitName = "Celsius"
	}

	return fmt.Sprintf("%g° = %.2f° %s", value, result, unitName), nil
}

var lengthToMeters = map[string]float64{
	"mm": 0.001, "cm": 0.01, "m": 1, "km": 1000,
	"in": 0.0254, "ft": 0.3048, "yd": 0.9144, "mi": 1609.34,
}

// ConvertLength converts between common length units.
func ConvertLength(value float64, fromUnit, toUnit string) (string, error) {
	from := strings.ToLower(strings.TrimSpace(fromUnit))
	to := strings.ToLower(strings.TrimSpace(toUnit))

	fromFactor, ok1 := lengthToMeters[from]
	toFactor, ok2 := lengthToMeters[to]
	if !ok1 || !ok2 {
		return "", fmt.Errorf("unknown unit; supported: mm, cm, m, km, in, ft, yd, mi")
	}

	result := value * fromFactor / toFactor
	return fmt.Sprintf("%g %s = %.4f %s", value, from, result, to), nil
}

func firstLetter(s string) byte {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	return s[0]
}

// GeneralTools returns datetime, calculator, and conversion tools.
func GeneralTools(clock func() time.Time) []*schema.ToolDefinition {
	if clock == nil {
		clock = time.Now
	}
	return []*schema.ToolDefinition{
		{
			Name:        "get_datetime_info",
			Description: "Gets current date, time, or day. Args: query ('time', 'date', 'day', 'week', 'month', 'year')",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"query": {Type: schema.ParamString, Description: "What to retrieve: time, date, day, week, month, year, or datetime"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return DatetimeInfo(argString(args, "query", "datetime"), clock()), nil
			},
		},
		{
			Name:        "calculate",
			Description: "Evaluates a mathematical expression. Args: expression (str)",
			Category:    schema.CategoryInformation,
			Parameters: map[string]schema.ParamSpec{
				"expression": {Type: schema.ParamString, Required: true, Description: "Expression to evaluate, e.g. '17 * 4'"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return Calculate(argString(args, "expression", ""))
			},
		},
		{
			Name:        "convert_temperature",
			Description: "Converts temperature between Celsius, Fahrenheit, and Kelvin. Args: value, from_unit, to_unit",
			Category:    schema.CategoryInformation,
			Parameters: map[string]schema.ParamSpec{
				"value":     {Type: schema.ParamNumber, Required: true, Description: "Temperature value"},
				"from_unit": {Type: schema.ParamString, Required: true, Description: "Source unit"},
				"to_unit":   {Type: schema.ParamString, Required: true, Description: "Target unit"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return ConvertTemperature(argFloat(args, "value", 0), argString(args, "from_unit", ""), argString(args, "to_unit", ""))
			},
		},
		{
			Name:        "convert_length",
			Description: "Converts length between mm, cm, m, km, in, ft, yd, mi. Args: value, from_unit, to_unit",
			Category:    schema.CategoryInformation,
			Parameters: map[string]schema.ParamSpec{
				"value":     {Type: schema.ParamNumber, Required: true, Description: "Length value"},
				"from_unit": {Type: schema.ParamString, Required: true, Description: "Source unit"},
				"to_unit":   {Type: schema.ParamString, Required: true, Description: "Target unit"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return ConvertLength(argFloat(args, "value", 0), argString(args, "from_unit", ""), argString(args, "to_unit", ""))
			},
		},
	}
}
