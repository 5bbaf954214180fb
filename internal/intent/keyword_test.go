package intent

import (
	"context"
	"testing"
)

func TestKeywordResolver_Datetime(t *testing.T) {
	r := NewKeywordResolver()

	cand := r.Resolve(context.Background(), "what time is it?")
	if cand.Tool != "get_datetime_info" {
		t.Fatalf("expected get_datetime_info, got %q", cand.Tool)
	}
	if cand.Arguments["query"] != "time" {
		t.Errorf("expected query=time, got %v", cand.Arguments["query"])
	}
	if cand.Confidence < 0.9 {
		t.Errorf("expected high confidence, got %v", cand.Confidence)
	}

	cand = r.Resolve(context.Background(), "What's the date?")
	if cand.Tool != "get_datetime_info" || cand.Arguments["query"] != "date" {
		t.Errorf("expected date query, got %q %v", cand.Tool, cand.Arguments)
	}
}

func TestKeywordResolver_DeleteFile(t *testing.T) {
	r := NewKeywordResolver()

	cand := r.Resolve(context.Background(), "delete file notes.txt")
	if cand.Tool != "delete_file" {
		t.Fatalf("expected delete_file, got %q", cand.Tool)
	}
	if cand.Arguments["file_path"] != "notes.txt" {
		t.Errorf("expected file_path=notes.txt, got %v", cand.Arguments["file_path"])
	}

	cand = r.Resolve(context.Background(), "remove the file /tmp/old.log")
	if cand.Tool != "delete_file" || cand.Arguments["file_path"] != "/tmp/old.log" {
		t.Errorf("expected delete_file with path, got %q %v", cand.Tool, cand.Arguments)
	}
}

func TestKeywordResolver_Conversions(t *testing.T) {
	r := NewKeywordResolver()

	cand := r.Resolve(context.Background(), "convert 0 celsius to fahrenheit")
	if cand.Tool != "convert_temperature" {
		t.Fatalf("expected convert_temperature, got %q", cand.Tool)
	}
	if cand.Arguments["value"] != 0.0 {
		t.Errorf("expected value 0, got %v", cand.Arguments["value"])
	}
	if cand.Arguments["from_unit"] != "celsius" || cand.Arguments["to_unit"] != "fahrenheit" {
		t.Errorf("unexpected units: %v", cand.Arguments)
	}

	cand = r.Resolve(context.Background(), "convert 5 miles to km")
	if cand.Tool != "convert_length" {
		t.Fatalf("expected convert_length, got %q", cand.Tool)
	}
	if cand.Arguments["from_unit"] != "mi" || cand.Arguments["to_unit"] != "km" {
		t.Errorf("expected normalized units mi/km, got %v", cand.Arguments)
	}
}

func TestKeywordResolver_TasksAndMonitoring(t *testing.T) {
	r := NewKeywordResolver()

	cases := []struct {
		input string
		tool  string
	}{
		{"add task buy groceries", "add_task"},
		{"list my tasks", "list_tasks"},
		{"complete task 3", "complete_task"},
		{"delete task 3", "delete_task"},
		{"show my reminders", "list_reminders"},
		{"how's the cpu doing", "get_cpu_usage"},
		{"battery level", "get_battery_info"},
		{"uptime please", "get_system_uptime"},
		{"tell me a joke", "tell_joke"},
		{"weather in Tokyo", "get_weather"},
		{"start a pomodoro for writing", "start_pomodoro"},
		{"calculate 17 * 4", "calculate"},
	}
	for _, tc := range cases {
		cand := r.Resolve(context.Background(), tc.input)
		if cand.Tool != tc.tool {
			t.Errorf("%q: expected %q, got %q", tc.input, tc.tool, cand.Tool)
		}
	}
}

func TestKeywordResolver_FallsThroughToConversation(t *testing.T) {
	r := NewKeywordResolver()
	for _, input := range []string{
		"how are you today",
		"tell me about quantum physics",
		"",
	} {
		cand := r.Resolve(context.Background(), input)
		if !cand.IsConversational() {
			t.Errorf("%q: expected conversational, got tool %q", input, cand.Tool)
		}
	}
}
