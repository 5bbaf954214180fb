package tools

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, time.March, 9, 15, 4, 0, 0, time.UTC)

func TestDatetimeInfo_TwelveHourClock(t *testing.T) {
	got := DatetimeInfo("time", fixedNow)
	if !strings.Contains(got, "03:04 PM") {
		t.Errorf("expected 12-hour time, got %q", got)
	}

	re := regexp.MustCompile(`\d{2}:\d{2} (AM|PM)`)
	if !re.MatchString(got) {
		t.Errorf("expected HH:MM AM/PM shape, got %q", got)
	}
}

func TestDatetimeInfo_Queries(t *testing.T) {
	if got := DatetimeInfo("day", fixedNow); !strings.Contains(got, "Monday") {
		t.Errorf("expected weekday, got %q", got)
	}
	if got := DatetimeInfo("date", fixedNow); !strings.Contains(got, "March 09, 2026") {
		t.Errorf("expected full date, got %q", got)
	}
	if got := DatetimeInfo("year", fixedNow); !strings.Contains(got, "2026") {
		t.Errorf("expected year, got %q", got)
	}
	if got := DatetimeInfo("", fixedNow); got == "" {
		t.Error("expected a default answer for empty query")
	}
}

func TestConvertTemperature(t *testing.T) {
	got, err := ConvertTemperature(0, "celsius", "fahrenheit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "32.00") {
		t.Errorf("expected 32.00 in output, got %q", got)
	}

	got, err = ConvertTemperature(100, "C", "K")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "373.15") {
		t.Errorf("expected 373.15, got %q", got)
	}

	got, err = ConvertTemperature(32, "fahrenheit", "celsius")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "0.00") {
		t.Errorf("expected 0.00, got %q", got)
	}

	if _, err := ConvertTemperature(1, "celsius", "parsec"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestConvertLength(t *testing.T) {
	got, err := ConvertLength(1, "km", "m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "1000.0000") {
		t.Errorf("expected 1000.0000, got %q", got)
	}

	got, err = ConvertLength(12, "in", "ft")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "1.0000") {
		t.Errorf("expected 1.0000, got %q", got)
	}

	if _, err := ConvertLength(1, "km", "lightyears"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestCalculate(t *testing.T) {
	got, err := Calculate("17 * 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "68") {
		t.Errorf("expected 68, got %q", got)
	}

	// Spoken "x" works as multiplication without mangling identifiers.
	got, err = Calculate("3 x 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "12") {
		t.Errorf("expected 12, got %q", got)
	}
	got, err = Calculate("max(2, 3)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, "= 3") {
		t.Errorf("expected 3, got %q", got)
	}

	if _, err := Calculate("2 +* 3"); err == nil {
		t.Error("expected error for malformed expression")
	}
	if _, err := Calculate("1 / 0"); err == nil {
		t.Error("expected error for division by zero")
	}
}

func TestGreeting(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{8, "Good morning"},
		{13, "Good afternoon"},
		{19, "Good evening"},
		{23, "Hello"},
		{3, "Hello"},
	}
	for _, tc := range cases {
		at := time.Date(2026, 3, 9, tc.hour, 0, 0, 0, time.UTC)
		if got := Greeting(at); got != tc.want {
			t.Errorf("hour %d: expected %q, got %q", tc.hour, tc.want, got)
		}
	}
}
