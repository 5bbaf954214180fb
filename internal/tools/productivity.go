package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amadeusai/amadeus/internal/schema"
	"github.com/amadeusai/amadeus/internal/store"
	"github.com/amadeusai/amadeus/internal/timeparse"
)

// ProductivityDeps wires the persistence layer into the productivity tools.
type ProductivityDeps struct {
	Store    *store.Store
	Pomodoro *store.PomodoroManager
	Location *time.Location
	Clock    func() time.Time

	// Notify delivers timer and reminder messages to the user. Optional.
	Notify func(message string)
}

func (d ProductivityDeps) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

func (d ProductivityDeps) loc() *time.Location {
	if d.Location != nil {
		return d.Location
	}
	return time.Local
}

func formatDue(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon Jan 2 at 03:04 PM")
}

func formatTaskList(tasks []store.Task) string {
	if len(tasks) == 0 {
		return "No tasks found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You have %d task(s):\n", len(tasks))
	for _, t := range tasks {
		mark := " "
		if t.Status == store.TaskCompleted {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] #%d %s\n", mark, t.ID, t.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatNoteList(notes []store.Note) string {
	if len(notes) == 0 {
		return "No notes found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You have %d note(s):\n", len(notes))
	for _, n := range notes {
		line := fmt.Sprintf("  #%d %s", n.ID, n.Title)
		if len(n.Tags) > 0 {
			line += " [" + strings.Join(n.Tags, ", ") + "]"
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatEventList(events []store.Event, loc *time.Location, emptyMsg string) string {
	if len(events) == 0 {
		return emptyMsg
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d event(s):\n", len(events))
	for _, e := range events {
		line := fmt.Sprintf("  #%d %s at %s", e.ID, e.Title, formatDue(e.StartAt, loc))
		if e.Location != "" {
			line += " (" + e.Location + ")"
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ProductivityTools returns task, note, reminder, calendar, timer, and
// pomodoro tools backed by the store.
func ProductivityTools(deps ProductivityDeps) []*schema.ToolDefinition {
	taskTools := []*schema.ToolDefinition{
		{
			Name:        "add_task",
			Description: "Adds a task to the to-do list. Args: content (str)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"content": {Type: schema.ParamString, Required: true, Description: "What the task is"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				t, err := deps.Store.AddTask(argString(args, "content", ""))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added task #%d: %s", t.ID, t.Content), nil
			},
		},
		{
			Name:        "list_tasks",
			Description: "Lists tasks. Args: status ('pending' or 'completed', optional)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"status": {Type: schema.ParamString, Description: "Filter by status, defaults to all"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				tasks, err := deps.Store.ListTasks(argString(args, "status", ""))
				if err != nil {
					return "", err
				}
				return formatTaskList(tasks), nil
			},
		},
		{
			Name:        "complete_task",
			Description: "Marks a task as completed. Args: identifier (task ID or a few words from it)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"identifier": {Type: schema.ParamString, Required: true, Description: "Task ID or content fragment"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				t, err := deps.Store.CompleteTask(argString(args, "identifier", ""))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Completed task #%d: %s", t.ID, t.Content), nil
			},
		},
		{
			Name:                 "delete_task",
			Description:          "Deletes a task. Args: identifier (task ID or a few words from it)",
			Category:             schema.CategoryProductivity,
			RequiresConfirmation: true,
			TargetParam:          "identifier",
			Parameters: map[string]schema.ParamSpec{
				"identifier": {Type: schema.ParamString, Required: true, Description: "Task ID or content fragment"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				t, err := deps.Store.DeleteTask(argString(args, "identifier", ""))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted task #%d: %s", t.ID, t.Content), nil
			},
		},
		{
			Name:        "get_task_summary",
			Description: "Summarizes pending and completed tasks",
			Category:    schema.CategoryProductivity,
			Handler: func(_ context.Context, _ map[string]any) (string, error) {
				return deps.Store.TaskSummary()
			},
		},
	}

	noteTools := []*schema.ToolDefinition{
		{
			Name:        "create_note",
			Description: "Creates a note. Args: title (str), content (str), tags (str, comma-separated, optional)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"title":   {Type: schema.ParamString, Required: true, Description: "Note title"},
				"content": {Type: schema.ParamString, Required: true, Description: "Note body"},
				"tags":    {Type: schema.ParamString, Description: "Comma-separated tags"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				n, err := deps.Store.CreateNote(
					argString(args, "title", ""), argString(args, "content", ""),
					splitTags(argString(args, "tags", "")))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Created note #%d: %s", n.ID, n.Title), nil
			},
		},
		{
			Name:        "list_notes",
			Description: "Lists notes, optionally filtered by tag. Args: tag (str, optional)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"tag": {Type: schema.ParamString, Description: "Only notes carrying this tag"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				notes, err := deps.Store.ListNotes(argString(args, "tag", ""))
				if err != nil {
					return "", err
				}
				return formatNoteList(notes), nil
			},
		},
		{
			Name:        "get_note",
			Description: "Reads a note by ID. Args: note_id (int)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"note_id": {Type: schema.ParamInteger, Required: true, Description: "ID of the note"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				n, err := deps.Store.GetNote(int64(argInt(args, "note_id", 0)))
				if err != nil {
					return "", err
				}
				out := fmt.Sprintf("#%d %s\n%s", n.ID, n.Title, n.Content)
				if len(n.Tags) > 0 {
					out += "\nTags: " + strings.Join(n.Tags, ", ")
				}
				return out, nil
			},
		},
		{
			Name:        "update_note",
			Description: "Updates a note's title, content, or tags. Args: note_id (int), title/content/tags (optional)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"note_id": {Type: schema.ParamInteger, Required: true, Description: "ID of the note"},
				"title":   {Type: schema.ParamString, Description: "New title"},
				"content": {Type: schema.ParamString, Description: "New body"},
				"tags":    {Type: schema.ParamString, Description: "New comma-separated tags"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				var title, content *string
				if v, ok := args["title"].(string); ok && v != "" {
					title = &v
				}
				if v, ok := args["content"].(string); ok && v != "" {
					content = &v
				}
				n, err := deps.Store.UpdateNote(int64(argInt(args, "note_id", 0)),
					title, content, splitTags(argString(args, "tags", "")))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated note #%d: %s", n.ID, n.Title), nil
			},
		},
		{
			Name:                 "delete_note",
			Description:          "Deletes a note. Args: note_id (int)",
			Category:             schema.CategoryProductivity,
			RequiresConfirmation: true,
			TargetParam:          "note_id",
			Parameters: map[string]schema.ParamSpec{
				"note_id": {Type: schema.ParamInteger, Required: true, Description: "ID of the note"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				n, err := deps.Store.DeleteNote(int64(argInt(args, "note_id", 0)))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted note #%d: %s", n.ID, n.Title), nil
			},
		},
		{
			Name:        "get_notes_summary",
			Description: "Summarizes stored notes",
			Category:    schema.CategoryProductivity,
			Handler: func(_ context.Context, _ map[string]any) (string, error) {
				return deps.Store.NotesSummary()
			},
		},
	}

	reminderTools := []*schema.ToolDefinition{
		{
			Name:        "add_reminder",
			Description: "Sets a reminder. Args: title (str), time_reference (e.g. 'tomorrow at 5pm', 'in 20 minutes'), description (optional)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"title":          {Type: schema.ParamString, Required: true, Description: "What to be reminded about"},
				"time_reference": {Type: schema.ParamString, Required: true, Description: "When to remind, in natural language"},
				"description":    {Type: schema.ParamString, Description: "Extra details"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				due, err := timeparse.Parse(argString(args, "time_reference", ""), deps.now(), deps.loc())
				if err != nil {
					return "", err
				}
				r, err := deps.Store.AddReminder(argString(args, "title", ""), argString(args, "description", ""), due)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Reminder set: %s on %s.", r.Title, formatDue(r.DueAt, deps.loc())), nil
			},
		},
		{
			Name:        "list_reminders",
			Description: "Lists active reminders",
			Category:    schema.CategoryProductivity,
			Handler: func(_ context.Context, _ map[string]any) (string, error) {
				reminders, err := deps.Store.ListReminders()
				if err != nil {
					return "", err
				}
				if len(reminders) == 0 {
					return "You have no active reminders.", nil
				}
				var b strings.Builder
				fmt.Fprintf(&b, "You have %d active reminder(s):\n", len(reminders))
				for _, r := range reminders {
					fmt.Fprintf(&b, "  #%d %s on %s\n", r.ID, r.Title, formatDue(r.DueAt, deps.loc()))
				}
				return strings.TrimRight(b.String(), "\n"), nil
			},
		},
		{
			Name:        "delete_reminder",
			Description: "Deletes a reminder by ID. Args: reminder_id (int)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"reminder_id": {Type: schema.ParamInteger, Required: true, Description: "ID of the reminder"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				r, err := deps.Store.DeleteReminder(int64(argInt(args, "reminder_id", 0)))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted reminder #%d: %s", r.ID, r.Title), nil
			},
		},
		{
			Name:        "set_timer",
			Description: "Starts a countdown timer. Args: seconds (int), label (str, optional)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"seconds": {Type: schema.ParamInteger, Required: true, Description: "Timer length in seconds"},
				"label":   {Type: schema.ParamString, Description: "What the timer is for"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				seconds := argInt(args, "seconds", 0)
				if seconds <= 0 {
					return "", fmt.Errorf("timer length must be at least 1 second")
				}
				length := time.Duration(seconds) * time.Second
				label := argString(args, "label", "Timer")
				if deps.Notify != nil {
					notify := deps.Notify
					time.AfterFunc(length, func() {
						notify(fmt.Sprintf("Time's up: %s (%s).", label, length))
					})
				}
				return fmt.Sprintf("Timer set: %s for %s.", label, length), nil
			},
		},
	}

	eventTools := []*schema.ToolDefinition{
		{
			Name:        "add_event",
			Description: "Adds a calendar event. Args: title, time_reference, description/location/duration_minutes (optional)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"title":            {Type: schema.ParamString, Required: true, Description: "Event title"},
				"time_reference":   {Type: schema.ParamString, Required: true, Description: "When the event starts, in natural language"},
				"description":      {Type: schema.ParamString, Description: "Event details"},
				"location":         {Type: schema.ParamString, Description: "Where the event takes place"},
				"duration_minutes": {Type: schema.ParamInteger, Description: "Event length in minutes"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				start, err := timeparse.Parse(argString(args, "time_reference", ""), deps.now(), deps.loc())
				if err != nil {
					return "", err
				}
				var end *time.Time
				if mins := argInt(args, "duration_minutes", 0); mins > 0 {
					e := start.Add(time.Duration(mins) * time.Minute)
					end = &e
				}
				ev, err := deps.Store.AddEvent(argString(args, "title", ""),
					argString(args, "description", ""), argString(args, "location", ""), start, end)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Event added: %s on %s.", ev.Title, formatDue(ev.StartAt, deps.loc())), nil
			},
		},
		{
			Name:        "list_events",
			Description: "Lists all upcoming calendar events",
			Category:    schema.CategoryProductivity,
			Handler: func(_ context.Context, _ map[string]any) (string, error) {
				events, err := deps.Store.ListEvents(deps.now(), time.Time{})
				if err != nil {
					return "", err
				}
				return formatEventList(events, deps.loc(), "No upcoming events."), nil
			},
		},
		{
			Name:        "get_today_agenda",
			Description: "Lists events scheduled for today",
			Category:    schema.CategoryProductivity,
			Handler: func(_ context.Context, _ map[string]any) (string, error) {
				now := deps.now().In(deps.loc())
				start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, deps.loc())
				events, err := deps.Store.ListEvents(start, start.AddDate(0, 0, 1))
				if err != nil {
					return "", err
				}
				return formatEventList(events, deps.loc(), "Nothing on the agenda today."), nil
			},
		},
		{
			Name:        "get_upcoming_events",
			Description: "Lists events in the next N days. Args: days (int, optional)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"days": {Type: schema.ParamInteger, Description: "Look-ahead window in days, defaults to 7"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				days := argInt(args, "days", 7)
				if days <= 0 {
					days = 7
				}
				now := deps.now()
				events, err := deps.Store.ListEvents(now, now.AddDate(0, 0, days))
				if err != nil {
					return "", err
				}
				return formatEventList(events, deps.loc(),
					fmt.Sprintf("No events in the next %d days.", days)), nil
			},
		},
		{
			Name:                 "delete_event",
			Description:          "Deletes a calendar event. Args: event_id (int)",
			Category:             schema.CategoryProductivity,
			RequiresConfirmation: true,
			TargetParam:          "event_id",
			Parameters: map[string]schema.ParamSpec{
				"event_id": {Type: schema.ParamInteger, Required: true, Description: "ID of the event"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				ev, err := deps.Store.DeleteEvent(int64(argInt(args, "event_id", 0)))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted event #%d: %s", ev.ID, ev.Title), nil
			},
		},
	}

	pomodoroTools := []*schema.ToolDefinition{
		{
			Name:        "start_pomodoro",
			Description: "Starts a pomodoro focus session. Args: task (str, optional), minutes (int, optional)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"task":    {Type: schema.ParamString, Description: "What to focus on"},
				"minutes": {Type: schema.ParamInteger, Description: "Session length, defaults to 25"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return deps.Pomodoro.Start(argString(args, "task", ""), argInt(args, "minutes", 0))
			},
		},
		{
			Name:        "stop_pomodoro",
			Description: "Stops the running pomodoro session",
			Category:    schema.CategoryProductivity,
			Handler: func(_ context.Context, _ map[string]any) (string, error) {
				return deps.Pomodoro.Stop()
			},
		},
		{
			Name:        "get_pomodoro_status",
			Description: "Shows the current pomodoro session",
			Category:    schema.CategoryProductivity,
			Handler: func(_ context.Context, _ map[string]any) (string, error) {
				return deps.Pomodoro.Status(), nil
			},
		},
		{
			Name:        "get_pomodoro_stats",
			Description: "Shows pomodoro stats for this session",
			Category:    schema.CategoryProductivity,
			Handler: func(_ context.Context, _ map[string]any) (string, error) {
				return deps.Pomodoro.Stats(), nil
			},
		},
		{
			Name:        "start_break",
			Description: "Starts a break. Args: kind ('short' or 'long', optional)",
			Category:    schema.CategoryProductivity,
			Parameters: map[string]schema.ParamSpec{
				"kind": {Type: schema.ParamString, Description: "'short' (5 min) or 'long' (15 min)"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return deps.Pomodoro.StartBreak(argString(args, "kind", "short"))
			},
		},
	}

	var all []*schema.ToolDefinition
	all = append(all, taskTools...)
	all = append(all, noteTools...)
	all = append(all, reminderTools...)
	all = append(all, eventTools...)
	all = append(all, pomodoroTools...)
	return all
}
