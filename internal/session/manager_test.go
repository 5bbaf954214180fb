package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetOrCreate_SameInstance(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	a := m.GetOrCreate("cli")
	b := m.GetOrCreate("cli")
	if a != b {
		t.Error("expected the same session instance for the same key")
	}
	if a.Key != "cli" {
		t.Errorf("expected key cli, got %q", a.Key)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	s := m.GetOrCreate("cli")
	s.AddUser("what time is it?", "get_datetime_info")
	s.AddAssistant("The current time is 03:04 PM", "get_datetime_info")
	if err := m.Save(s); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A fresh manager must read the same history back from disk.
	m2, err := NewManager(dir)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	loaded := m2.GetOrCreate("cli")
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 messages after reload, got %d", loaded.Len())
	}
	msgs := loaded.History(0)
	if msgs[0].Role != "user" || msgs[0].ToolUsed != "get_datetime_info" {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].Role != "assistant" {
		t.Errorf("unexpected second message: %+v", msgs[1])
	}
}

func TestLoad_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	path := filepath.Join(dir, "sessions", "broken.jsonl")
	content := `{"_type":"metadata","key":"broken","created_at":"2026-03-09T10:00:00Z"}
{not json at all
{"role":"user","content":"hello","timestamp":"2026-03-09T10:00:01Z"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := m.GetOrCreate("broken")
	if s.Len() != 1 {
		t.Errorf("expected 1 valid message, got %d", s.Len())
	}
}

func TestHistory_Window(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	s := m.GetOrCreate("cli")
	for i := 0; i < 10; i++ {
		s.AddUser("message", "")
	}

	if got := len(s.History(4)); got != 4 {
		t.Errorf("expected window of 4, got %d", got)
	}
	if got := len(s.History(0)); got != 10 {
		t.Errorf("expected everything for window 0, got %d", got)
	}
}

func TestClear(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	s := m.GetOrCreate("cli")
	s.AddUser("hello", "")
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("expected empty session after Clear, got %d messages", s.Len())
	}
}

func TestSessionPath_SanitizesKey(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	s := m.GetOrCreate("ws:client/1")
	s.AddUser("hi", "")
	if err := m.Save(s); err != nil {
		t.Fatalf("expected unsafe key to save cleanly: %v", err)
	}
}
