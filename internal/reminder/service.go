// Package reminder runs the background schedule: a periodic scan that fires
// due reminders and a cron-scheduled daily brief.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	robfigcron "github.com/robfig/cron/v3"

	"github.com/amadeusai/amadeus/internal/brief"
	"github.com/amadeusai/amadeus/internal/store"
)

// Notifier delivers a message to the user, e.g. the console or a websocket hub.
type Notifier func(kind, message string)

// Service owns the cron runner. Start it once; Stop drains in-flight jobs.
type Service struct {
	store    *store.Store
	brief    *brief.Generator
	notify   Notifier
	interval time.Duration
	briefAt  string
	loc      *time.Location

	cron *robfigcron.Cron
}

// Config for the scheduler. Interval is the due-reminder scan period;
// BriefCron is a standard 5-field cron expression, empty disables the brief.
type Config struct {
	Interval  time.Duration
	BriefCron string
	Location  *time.Location
}

// New builds the service. notify must be non-nil.
func New(st *store.Store, gen *brief.Generator, notify Notifier, cfg Config) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Service{
		store:    st,
		brief:    gen,
		notify:   notify,
		interval: cfg.Interval,
		briefAt:  cfg.BriefCron,
		loc:      cfg.Location,
	}
}

// Start registers the jobs and launches the runner. Returns an error when the
// brief cron expression does not parse.
func (s *Service) Start(ctx context.Context) error {
	s.cron = robfigcron.New(robfigcron.WithLocation(s.loc))

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.fireDue(ctx)
	}); err != nil {
		return fmt.Errorf("schedule reminder scan: %w", err)
	}

	if s.briefAt != "" && s.brief != nil {
		if _, err := s.cron.AddFunc(s.briefAt, func() {
			s.notify("daily_brief", s.brief.Generate(ctx))
		}); err != nil {
			return fmt.Errorf("schedule daily brief %q: %w", s.briefAt, err)
		}
	}

	s.cron.Start()
	slog.Info("reminder service started", "interval", s.interval, "brief", s.briefAt)
	return nil
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		slog.Info("reminder service stopped")
	}
}

// fireDue completes and announces every reminder whose time has passed.
// CompleteReminder is atomic, so a reminder fires once even if two scans race.
func (s *Service) fireDue(ctx context.Context) {
	due, err := s.store.DueReminders(time.Now())
	if err != nil {
		slog.Error("due reminder scan failed", "err", err)
		return
	}
	for _, r := range due {
		if ctx.Err() != nil {
			return
		}
		fired, err := s.store.CompleteReminder(r.ID)
		if err != nil {
			slog.Error("complete reminder failed", "id", r.ID, "err", err)
			continue
		}
		if !fired {
			continue
		}
		msg := fmt.Sprintf("Reminder: %s", r.Title)
		if r.Description != "" {
			msg += " (" + r.Description + ")"
		}
		slog.Info("reminder fired", "id", r.ID, "title", r.Title)
		s.notify("reminder_due", msg)
	}
}
