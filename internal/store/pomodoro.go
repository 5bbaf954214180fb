package store

import (
	"fmt"
	"sync"
	"time"
)

// Pomodoro phase durations.
const (
	DefaultFocusMinutes = 25
	ShortBreakMinutes   = 5
	LongBreakMinutes    = 15
)

// PomodoroManager tracks the current focus or break session and lifetime
// stats. State is in-memory only; a restart resets it.
type PomodoroManager struct {
	mu sync.Mutex

	task      string
	phase     string // "", "focus", "break"
	startedAt time.Time
	duration  time.Duration

	completedSessions int
	totalFocusMinutes int
}

func NewPomodoroManager() *PomodoroManager {
	return &PomodoroManager{}
}

// Start begins a focus session. minutes <= 0 uses the default.
func (p *PomodoroManager) Start(task string, minutes int) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase == "focus" {
		return "", fmt.Errorf("a pomodoro for %q is already running", p.task)
	}
	if task == "" {
		task = "Focus Session"
	}
	if minutes <= 0 {
		minutes = DefaultFocusMinutes
	}

	p.task = task
	p.phase = "focus"
	p.startedAt = time.Now()
	p.duration = time.Duration(minutes) * time.Minute

	return fmt.Sprintf("Pomodoro started: %s for %d minutes. Stay focused!", task, minutes), nil
}

// Stop ends the current session, counting it as completed if at least half of
// the planned time elapsed.
func (p *PomodoroManager) Stop() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase == "" {
		return "", fmt.Errorf("no pomodoro is running")
	}

	elapsed := time.Since(p.startedAt)
	msg := fmt.Sprintf("Stopped %s after %d minutes.", p.phase, int(elapsed.Minutes()))
	if p.phase == "focus" && elapsed >= p.duration/2 {
		p.completedSessions++
		p.totalFocusMinutes += int(elapsed.Minutes())
		msg = fmt.Sprintf("Pomodoro complete: %s, %d minutes of focus. Well done!", p.task, int(elapsed.Minutes()))
	}

	p.task = ""
	p.phase = ""
	return msg, nil
}

// Status describes the current session.
func (p *PomodoroManager) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase == "" {
		return "No pomodoro is running."
	}
	remaining := p.duration - time.Since(p.startedAt)
	if remaining < 0 {
		remaining = 0
	}
	if p.phase == "break" {
		return fmt.Sprintf("On a break, %d minutes remaining.", int(remaining.Minutes()))
	}
	return fmt.Sprintf("Working on %q, %d minutes remaining.", p.task, int(remaining.Minutes()))
}

// Stats summarizes completed sessions since startup.
func (p *PomodoroManager) Stats() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.completedSessions == 0 {
		return "No pomodoro sessions completed yet today."
	}
	return fmt.Sprintf("%d pomodoro sessions completed, %d minutes of focus.",
		p.completedSessions, p.totalFocusMinutes)
}

// StartBreak begins a short or long break.
func (p *PomodoroManager) StartBreak(kind string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase == "focus" {
		return "", fmt.Errorf("a pomodoro is running; stop it before taking a break")
	}

	minutes := ShortBreakMinutes
	if kind == "long" {
		minutes = LongBreakMinutes
	}
	p.phase = "break"
	p.task = ""
	p.startedAt = time.Now()
	p.duration = time.Duration(minutes) * time.Minute

	return fmt.Sprintf("Break started: %d minutes. Step away from the screen.", minutes), nil
}
