package timeparse

import (
	"testing"
	"time"
)

var base = time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)

func TestParse_Relative(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"in 20 minutes", base.Add(20 * time.Minute)},
		{"in 2 hours", base.Add(2 * time.Hour)},
		{"in 1 day", base.Add(24 * time.Hour)},
		{"in 90 seconds", base.Add(90 * time.Second)},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input, base, time.UTC)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.input, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("%q: expected %v, got %v", tc.input, tc.want, got)
		}
	}
}

func TestParse_DayPhrases(t *testing.T) {
	got, err := Parse("tomorrow at 5pm", base, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got, err = Parse("today at 14:30", base, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// Bare "tomorrow" defaults to morning; "tonight" to evening.
	got, _ = Parse("tomorrow", base, time.UTC)
	if got.Hour() != 9 || got.Day() != 10 {
		t.Errorf("expected tomorrow 9:00, got %v", got)
	}
	got, _ = Parse("tonight", base, time.UTC)
	if got.Hour() != 20 || got.Day() != 9 {
		t.Errorf("expected tonight 20:00, got %v", got)
	}

	if _, err := Parse("today at 8am", base, time.UTC); err == nil {
		t.Error("expected error for a today time already in the past")
	}
}

func TestParse_BareClock(t *testing.T) {
	// 5pm is later today.
	got, err := Parse("at 5pm", base, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Day() != 9 || got.Hour() != 17 {
		t.Errorf("expected today 17:00, got %v", got)
	}

	// 9:30 already passed at 10:00, so it rolls to tomorrow.
	got, err = Parse("9:30", base, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Day() != 10 || got.Hour() != 9 || got.Minute() != 30 {
		t.Errorf("expected tomorrow 9:30, got %v", got)
	}

	// 12am edge: midnight, next occurrence.
	got, err = Parse("at 12:00 am", base, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 0 {
		t.Errorf("expected midnight, got %v", got)
	}
}

func TestParse_Absolute(t *testing.T) {
	got, err := Parse("2026-04-01 14:00", base, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "whenever", "at the weekend maybe"} {
		if _, err := Parse(input, base, time.UTC); err == nil {
			t.Errorf("%q: expected error", input)
		}
	}
}
