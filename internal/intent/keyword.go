package intent

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/amadeusai/amadeus/internal/schema"
)

// KeywordResolver is the classifier-backed strategy: a fixed, ordered table
// of phrase patterns mapped to tool choices. It answers common commands
// without consuming LLM quota and is fully deterministic: the first matching
// rule wins, so ties never depend on map order.
type KeywordResolver struct {
	rules []rule
}

type rule struct {
	re         *regexp.Regexp
	confidence float64
	build      func(m []string) schema.IntentCandidate
}

func NewKeywordResolver() *KeywordResolver {
	return &KeywordResolver{rules: defaultRules()}
}

func (r *KeywordResolver) Resolve(_ context.Context, text string) schema.IntentCandidate {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, rl := range r.rules {
		if m := rl.re.FindStringSubmatch(t); m != nil {
			cand := rl.build(m)
			cand.Confidence = rl.confidence
			if cand.Arguments == nil {
				cand.Arguments = map[string]any{}
			}
			return cand
		}
	}
	return schema.ConversationalCandidate()
}

func simple(tool string) func([]string) schema.IntentCandidate {
	return func([]string) schema.IntentCandidate {
		return schema.IntentCandidate{Tool: tool}
	}
}

func withArg(tool, param string, group int) func([]string) schema.IntentCandidate {
	return func(m []string) schema.IntentCandidate {
		return schema.IntentCandidate{
			Tool:      tool,
			Arguments: map[string]any{param: strings.TrimSpace(m[group])},
		}
	}
}

func defaultRules() []rule {
	return []rule{
		// Datetime. Exact phrase matches go first (tie-break policy: phrase
		// match beats any fuzzier interpretation).
		{regexp.MustCompile(`\b(what time is it|what'?s the time|current time|time now)\b`), 0.95,
			func([]string) schema.IntentCandidate {
				return schema.IntentCandidate{Tool: "get_datetime_info", Arguments: map[string]any{"query": "time"}}
			}},
		{regexp.MustCompile(`\b(what'?s the date|today'?s date|what day is (it|today))\b`), 0.95,
			func(m []string) schema.IntentCandidate {
				q := "date"
				if strings.Contains(m[1], "day is") {
					q = "day"
				}
				return schema.IntentCandidate{Tool: "get_datetime_info", Arguments: map[string]any{"query": q}}
			}},

		// Destructive file op: "delete file notes.txt" / "remove the file x".
		{regexp.MustCompile(`^(?:delete|remove)(?: the)? file (.+)$`), 0.9,
			withArg("delete_file", "file_path", 1)},

		// Unit conversions: "convert 0 celsius to fahrenheit".
		{regexp.MustCompile(`convert\s+(-?\d+(?:\.\d+)?)\s*(?:degrees? )?(celsius|fahrenheit|kelvin|[cfk])\s+(?:to|into)\s+(?:degrees? )?(celsius|fahrenheit|kelvin|[cfk])`), 0.95,
			func(m []string) schema.IntentCandidate {
				v, _ := strconv.ParseFloat(m[1], 64)
				return schema.IntentCandidate{Tool: "convert_temperature", Arguments: map[string]any{
					"value": v, "from_unit": m[2], "to_unit": m[3],
				}}
			}},
		{regexp.MustCompile(`convert\s+(-?\d+(?:\.\d+)?)\s*(mm|cm|m|km|in|ft|yd|mi|inches|feet|yards|miles|meters?|kilometers?)\s+(?:to|into)\s+(mm|cm|m|km|in|ft|yd|mi|inches|feet|yards|miles|meters?|kilometers?)`), 0.9,
			func(m []string) schema.IntentCandidate {
				v, _ := strconv.ParseFloat(m[1], 64)
				return schema.IntentCandidate{Tool: "convert_length", Arguments: map[string]any{
					"value": v, "from_unit": shortUnit(m[2]), "to_unit": shortUnit(m[3]),
				}}
			}},

		// Weather / news / wikipedia.
		{regexp.MustCompile(`weather(?: (?:in|for|at) (.+))?$`), 0.85,
			func(m []string) schema.IntentCandidate {
				args := map[string]any{}
				if m[1] != "" {
					args["location"] = strings.TrimSpace(m[1])
				}
				return schema.IntentCandidate{Tool: "get_weather", Arguments: args}
			}},
		{regexp.MustCompile(`\b(news|headlines)\b`), 0.8, simple("get_news")},
		{regexp.MustCompile(`^(?:search )?wikipedia (?:for )?(.+)$`), 0.9,
			withArg("wikipedia_search", "query", 1)},

		// Jokes.
		{regexp.MustCompile(`\b(tell me a joke|another joke|make me laugh)\b`), 0.95, simple("tell_joke")},

		// System monitoring.
		{regexp.MustCompile(`\bcpu\b`), 0.9, simple("get_cpu_usage")},
		{regexp.MustCompile(`\b(memory|ram)\b.*\b(usage|status)\b|\bhow much (memory|ram)\b`), 0.9, simple("get_memory_usage")},
		{regexp.MustCompile(`\bdisk\b`), 0.9, simple("get_disk_usage")},
		{regexp.MustCompile(`\bbattery\b`), 0.9, simple("get_battery_info")},
		{regexp.MustCompile(`\buptime\b`), 0.9, simple("get_system_uptime")},
		{regexp.MustCompile(`\brunning processes\b|\btop processes\b`), 0.85, simple("get_running_processes")},
		{regexp.MustCompile(`\bsystem alerts?\b|\bsystem (?:status|health)\b`), 0.8, simple("check_system_alerts")},

		// Tasks.
		{regexp.MustCompile(`^add (?:a )?task (?:to )?(.+)$`), 0.9, withArg("add_task", "content", 1)},
		{regexp.MustCompile(`^(?:list|show)(?: my)? tasks$`), 0.9, simple("list_tasks")},
		{regexp.MustCompile(`^(?:complete|finish|done with) task (.+)$`), 0.9, withArg("complete_task", "identifier", 1)},
		{regexp.MustCompile(`^delete task (.+)$`), 0.9, withArg("delete_task", "identifier", 1)},

		// Reminders.
		{regexp.MustCompile(`^(?:list|show)(?: my)? reminders$`), 0.9, simple("list_reminders")},

		// Pomodoro.
		{regexp.MustCompile(`^start (?:a )?pomodoro(?: for (.+))?$`), 0.9,
			func(m []string) schema.IntentCandidate {
				args := map[string]any{}
				if m[1] != "" {
					args["task"] = strings.TrimSpace(m[1])
				}
				return schema.IntentCandidate{Tool: "start_pomodoro", Arguments: args}
			}},
		{regexp.MustCompile(`^stop (?:the )?pomodoro$`), 0.9, simple("stop_pomodoro")},

		// Calculator: "calculate 2+2" or "what is 17 * 4".
		{regexp.MustCompile(`^(?:calculate|compute|what is|what'?s)\s+([-\d(][\d+\-*/.()x^÷\s]*)$`), 0.85,
			withArg("calculate", "expression", 1)},
	}
}

func shortUnit(u string) string {
	switch u {
	case "inches":
		return "in"
	case "feet":
		return "ft"
	case "yards":
		return "yd"
	case "miles":
		return "mi"
	case "meter", "meters":
		return "m"
	case "kilometer", "kilometers":
		return "km"
	}
	return u
}
