// Package timeparse resolves natural-language time references ("tomorrow at
// 5pm", "in 20 minutes", "2026-03-01 14:00") into timestamps. Relative
// phrases are handled here; absolute forms are delegated to dateparse.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	reIn      = regexp.MustCompile(`^in\s+(\d+)\s*(minutes?|mins?|hours?|hrs?|days?|seconds?|secs?)$`)
	reAtClock = regexp.MustCompile(`^(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
	reDayAt   = regexp.MustCompile(`^(today|tomorrow|tonight)(?:\s+at\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?$`)
)

// Parse resolves text to a timestamp relative to now in loc.
// Returns an error when no interpretation fits.
func Parse(text string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = now.Location()
	}
	now = now.In(loc)
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return time.Time{}, fmt.Errorf("empty time reference")
	}

	// "in 20 minutes", "in 2 hours"
	if m := reIn.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		var d time.Duration
		switch m[2][0] {
		case 's':
			d = time.Duration(n) * time.Second
		case 'm':
			d = time.Duration(n) * time.Minute
		case 'h':
			d = time.Duration(n) * time.Hour
		case 'd':
			d = time.Duration(n) * 24 * time.Hour
		}
		return now.Add(d), nil
	}

	// "tomorrow at 5pm", "today at 14:30", "tonight"
	if m := reDayAt.FindStringSubmatch(t); m != nil {
		day := now
		if m[1] == "tomorrow" {
			day = now.AddDate(0, 0, 1)
		}
		hour, minute := 9, 0 // bare "today"/"tomorrow" defaults to morning
		if m[1] == "tonight" {
			hour = 20
		}
		if m[2] != "" {
			hour, minute = clock(m[2], m[3], m[4])
		}
		res := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
		if m[1] == "today" && res.Before(now) {
			return time.Time{}, fmt.Errorf("%q is already in the past", text)
		}
		return res, nil
	}

	// "at 5pm", "17:30": next occurrence of that wall-clock time.
	if m := reAtClock.FindStringSubmatch(t); m != nil && (m[2] != "" || m[3] != "") {
		hour, minute := clock(m[1], m[2], m[3])
		res := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, loc)
		if !res.After(now) {
			res = res.AddDate(0, 0, 1)
		}
		return res, nil
	}

	// Absolute formats ("2026-03-01 14:00", "March 1 2pm", ...).
	if parsed, err := dateparse.ParseIn(text, loc); err == nil {
		return parsed, nil
	}

	return time.Time{}, fmt.Errorf("could not understand time reference %q", text)
}

func clock(h, m, ampm string) (int, int) {
	hour, _ := strconv.Atoi(h)
	minute := 0
	if m != "" {
		minute, _ = strconv.Atoi(m)
	}
	switch ampm {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return hour, minute
}
