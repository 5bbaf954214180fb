package schema

import (
	"fmt"
	"strings"
	"time"
)

// Message is one turn of a conversation.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	ToolUsed  string    `json:"tool_used,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func UserMessage(content string) Message {
	return Message{Role: "user", Content: content, Timestamp: time.Now()}
}

func AssistantMessage(content, toolUsed string) Message {
	return Message{Role: "assistant", Content: content, ToolUsed: toolUsed, Timestamp: time.Now()}
}

// FormatHistory renders messages as prompt context, e.g.
//
//	User: what time is it
//	Amadeus [used: get_datetime_info]: The current time is 03:04 PM
func FormatHistory(msgs []Message, assistantName string) string {
	var b strings.Builder
	for _, m := range msgs {
		name := "User"
		if m.Role == "assistant" {
			name = assistantName
		}
		if m.ToolUsed != "" {
			fmt.Fprintf(&b, "%s [used: %s]: %s\n", name, m.ToolUsed, m.Content)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", name, m.Content)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
