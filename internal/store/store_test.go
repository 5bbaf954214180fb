package store

import (
	"strings"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTasks_AddListComplete(t *testing.T) {
	s := testStore(t)

	task, err := s.AddTask("buy groceries")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.ID == 0 || task.Status != TaskPending {
		t.Errorf("expected pending task with ID, got %+v", task)
	}

	if _, err := s.AddTask("  "); err == nil {
		t.Error("expected error for empty content")
	}

	tasks, err := s.ListTasks("")
	if err != nil || len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d (%v)", len(tasks), err)
	}

	done, err := s.CompleteTask("groceries")
	if err != nil {
		t.Fatalf("complete by substring: %v", err)
	}
	if done.ID != task.ID || done.Status != TaskCompleted {
		t.Errorf("expected completed task %d, got %+v", task.ID, done)
	}

	// Completing again must fail; the transition is one-way.
	if _, err := s.CompleteTask("groceries"); err == nil {
		t.Error("expected error completing an already-completed task")
	}

	pending, _ := s.ListTasks(TaskPending)
	if len(pending) != 0 {
		t.Errorf("expected no pending tasks, got %d", len(pending))
	}
}

func TestTasks_FindByIDAndDelete(t *testing.T) {
	s := testStore(t)
	a, _ := s.AddTask("first")
	b, _ := s.AddTask("second")

	deleted, err := s.DeleteTask("1")
	if err != nil {
		t.Fatalf("delete by ID: %v", err)
	}
	if deleted.ID != a.ID {
		t.Errorf("expected task %d deleted, got %d", a.ID, deleted.ID)
	}

	if _, err := s.DeleteTask("99"); err == nil {
		t.Error("expected error for unknown ID")
	}
	if _, err := s.DeleteTask("nonexistent words"); err == nil {
		t.Error("expected error for unmatched substring")
	}

	left, _ := s.ListTasks("")
	if len(left) != 1 || left[0].ID != b.ID {
		t.Errorf("expected only task %d left, got %+v", b.ID, left)
	}
}

func TestTaskSummary(t *testing.T) {
	s := testStore(t)
	if sum, _ := s.TaskSummary(); sum != "You have no tasks." {
		t.Errorf("expected empty summary, got %q", sum)
	}
	s.AddTask("one")
	s.AddTask("two")
	s.CompleteTask("one")
	sum, err := s.TaskSummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(sum, "1 pending") || !strings.Contains(sum, "1 completed") {
		t.Errorf("expected counts in summary, got %q", sum)
	}
}

func TestNotes_CRUD(t *testing.T) {
	s := testStore(t)

	n, err := s.CreateNote("Shopping", "milk, eggs", []string{"home", "errands"})
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	got, err := s.GetNote(n.ID)
	if err != nil {
		t.Fatalf("get note: %v", err)
	}
	if got.Title != "Shopping" || len(got.Tags) != 2 {
		t.Errorf("unexpected note: %+v", got)
	}

	tagged, err := s.ListNotes("home")
	if err != nil || len(tagged) != 1 {
		t.Fatalf("expected 1 note tagged home, got %d (%v)", len(tagged), err)
	}
	if notag, _ := s.ListNotes("work"); len(notag) != 0 {
		t.Errorf("expected no notes tagged work, got %d", len(notag))
	}

	title := "Groceries"
	updated, err := s.UpdateNote(n.ID, &title, nil, nil)
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	if updated.Title != "Groceries" || updated.Content != "milk, eggs" {
		t.Errorf("expected partial update, got %+v", updated)
	}

	if _, err := s.DeleteNote(n.ID); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if _, err := s.GetNote(n.ID); err == nil {
		t.Error("expected error getting deleted note")
	}
}

func TestReminders_DueAndComplete(t *testing.T) {
	s := testStore(t)
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	due, err := s.AddReminder("stand up", "", past)
	if err != nil {
		t.Fatalf("add reminder: %v", err)
	}
	if _, err := s.AddReminder("later", "", future); err != nil {
		t.Fatalf("add reminder: %v", err)
	}

	list, err := s.ListReminders()
	if err != nil || len(list) != 2 {
		t.Fatalf("expected 2 active reminders, got %d (%v)", len(list), err)
	}
	if list[0].ID != due.ID {
		t.Errorf("expected soonest first, got %+v", list[0])
	}

	dueNow, err := s.DueReminders(time.Now())
	if err != nil {
		t.Fatalf("due reminders: %v", err)
	}
	if len(dueNow) != 1 || dueNow[0].ID != due.ID {
		t.Fatalf("expected only the past reminder due, got %+v", dueNow)
	}

	fired, err := s.CompleteReminder(due.ID)
	if err != nil || !fired {
		t.Fatalf("expected first complete to fire, got %v (%v)", fired, err)
	}
	fired, err = s.CompleteReminder(due.ID)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if fired {
		t.Error("expected second complete to be a no-op")
	}

	list, _ = s.ListReminders()
	if len(list) != 1 {
		t.Errorf("expected 1 active reminder left, got %d", len(list))
	}
}

func TestEvents_RangeQuery(t *testing.T) {
	s := testStore(t)
	base := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	if _, err := s.AddEvent("standup", "", "", base, nil); err != nil {
		t.Fatalf("add event: %v", err)
	}
	end := base.Add(25 * time.Hour)
	if _, err := s.AddEvent("review", "", "room 4", base.Add(24*time.Hour), &end); err != nil {
		t.Fatalf("add event: %v", err)
	}

	today, err := s.ListEvents(base.Add(-time.Hour), base.Add(23*time.Hour))
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(today) != 1 || today[0].Title != "standup" {
		t.Errorf("expected only standup in window, got %+v", today)
	}

	all, _ := s.ListEvents(time.Time{}, time.Time{})
	if len(all) != 2 {
		t.Errorf("expected 2 events with open bounds, got %d", len(all))
	}

	deleted, err := s.DeleteEvent(all[0].ID)
	if err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if deleted.Title != "standup" {
		t.Errorf("expected standup deleted, got %+v", deleted)
	}
	if _, err := s.DeleteEvent(999); err == nil {
		t.Error("expected error deleting unknown event")
	}
}

func TestPomodoro_Lifecycle(t *testing.T) {
	p := NewPomodoroManager()

	if _, err := p.Stop(); err == nil {
		t.Error("expected error stopping with nothing running")
	}

	msg, err := p.Start("writing", 25)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(msg, "writing") {
		t.Errorf("expected task in message, got %q", msg)
	}

	if _, err := p.Start("other", 25); err == nil {
		t.Error("expected error starting while one is running")
	}
	if _, err := p.StartBreak("short"); err == nil {
		t.Error("expected error starting a break mid-focus")
	}

	status := p.Status()
	if !strings.Contains(status, "writing") {
		t.Errorf("expected status to name the task, got %q", status)
	}

	if _, err := p.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if p.Status() != "No pomodoro is running." {
		t.Errorf("expected idle status, got %q", p.Status())
	}

	if _, err := p.StartBreak("long"); err != nil {
		t.Fatalf("start break: %v", err)
	}
	if !strings.Contains(p.Status(), "break") {
		t.Errorf("expected break status, got %q", p.Status())
	}
}
