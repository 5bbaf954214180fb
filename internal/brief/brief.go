// Package brief composes the morning summary: greeting, date, tasks,
// reminders, weather, and a machine health line.
package brief

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amadeusai/amadeus/internal/store"
	"github.com/amadeusai/amadeus/internal/tools"
)

// Generator assembles daily briefs from the persistence layer and the
// information tools. Weather is optional and skipped when no key is set.
type Generator struct {
	Store           *store.Store
	Location        *time.Location
	WeatherAPIKey   string
	DefaultLocation string
	AssistantName   string
	Clock           func() time.Time
}

func (g *Generator) now() time.Time {
	if g.Clock != nil {
		return g.Clock()
	}
	return time.Now()
}

// Generate builds the brief text. Failing sections are logged and skipped so
// one bad data source never kills the whole brief.
func (g *Generator) Generate(ctx context.Context) string {
	loc := g.Location
	if loc == nil {
		loc = time.Local
	}
	now := g.now().In(loc)

	var b strings.Builder
	fmt.Fprintf(&b, "%s! It's %s, %s.\n", tools.Greeting(now),
		now.Format("Monday, January 2"), now.Format("03:04 PM"))

	if summary, err := g.Store.TaskSummary(); err == nil {
		b.WriteString(summary + "\n")
	} else {
		slog.Warn("brief: task summary failed", "err", err)
	}

	if reminders, err := g.Store.ListReminders(); err == nil {
		switch n := len(reminders); n {
		case 0:
			b.WriteString("No reminders today.\n")
		case 1:
			fmt.Fprintf(&b, "1 reminder: %s at %s.\n",
				reminders[0].Title, reminders[0].DueAt.In(loc).Format("03:04 PM"))
		default:
			fmt.Fprintf(&b, "%d active reminders; next up: %s at %s.\n",
				n, reminders[0].Title, reminders[0].DueAt.In(loc).Format("03:04 PM"))
		}
	} else {
		slog.Warn("brief: reminders failed", "err", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if events, err := g.Store.ListEvents(dayStart, dayStart.AddDate(0, 0, 1)); err == nil && len(events) > 0 {
		fmt.Fprintf(&b, "%d event(s) on today's calendar; first: %s at %s.\n",
			len(events), events[0].Title, events[0].StartAt.In(loc).Format("03:04 PM"))
	}

	if g.WeatherAPIKey != "" && g.DefaultLocation != "" {
		if weather, err := tools.Weather(ctx, g.WeatherAPIKey, g.DefaultLocation); err == nil {
			b.WriteString(weather + "\n")
		} else {
			slog.Warn("brief: weather failed", "err", err)
		}
	}

	b.WriteString("System: " + tools.SystemSummary(ctx) + ".")
	return b.String()
}
