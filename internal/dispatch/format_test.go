package dispatch

import (
	"strings"
	"testing"
)

func TestSpeakable_StripsMarkdown(t *testing.T) {
	got := Speakable("**Bold** and `code` and # heading", 0)
	if strings.ContainsAny(got, "*`#") {
		t.Errorf("expected markdown stripped, got %q", got)
	}
}

func TestSpeakable_ShortTextUntouched(t *testing.T) {
	in := "The current time is 03:04 PM"
	if got := Speakable(in, 800); got != in {
		t.Errorf("expected unchanged text, got %q", got)
	}
}

func TestSpeakable_TruncatesWithMarker(t *testing.T) {
	long := strings.Repeat("All work and no play makes for dull output. ", 50)
	got := Speakable(long, 200)
	if len(got) > 230 {
		t.Errorf("expected bounded output, got %d chars", len(got))
	}
	if !strings.Contains(got, "content truncated") {
		t.Errorf("expected explicit truncation marker, got %q", got)
	}
}

func TestSpeakable_CollapsesWhitespace(t *testing.T) {
	got := Speakable("too    many   spaces", 0)
	if got != "too many spaces" {
		t.Errorf("expected collapsed spaces, got %q", got)
	}
}
