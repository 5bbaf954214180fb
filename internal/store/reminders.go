package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Reminder statuses.
const (
	ReminderActive    = "active"
	ReminderCompleted = "completed"
	ReminderCancelled = "cancelled"
)

type Reminder struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueAt       time.Time `json:"due_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddReminder inserts an active reminder due at dueAt.
func (s *Store) AddReminder(title, description string, dueAt time.Time) (Reminder, error) {
	if strings.TrimSpace(title) == "" {
		return Reminder{}, fmt.Errorf("reminder title is empty")
	}
	r := Reminder{
		Title:       title,
		Description: description,
		DueAt:       dueAt.UTC(),
		Status:      ReminderActive,
		CreatedAt:   now(),
	}
	res, err := s.db.Exec(
		`INSERT INTO reminders (title, description, due_at, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.Title, r.Description, r.DueAt, r.Status, r.CreatedAt,
	)
	if err != nil {
		return Reminder{}, fmt.Errorf("insert reminder: %w", err)
	}
	r.ID, _ = res.LastInsertId()
	return r, nil
}

// ListReminders returns active reminders soonest first.
func (s *Store) ListReminders() ([]Reminder, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, due_at, status, created_at FROM reminders
		 WHERE status = ? ORDER BY due_at ASC`, ReminderActive,
	)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var out []Reminder
	for rows.Next() {
		var r Reminder
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.DueAt, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteReminder cancels a reminder by ID.
func (s *Store) DeleteReminder(id int64) (Reminder, error) {
	var r Reminder
	err := s.db.QueryRow(
		`SELECT id, title, description, due_at, status, created_at FROM reminders WHERE id = ?`, id,
	).Scan(&r.ID, &r.Title, &r.Description, &r.DueAt, &r.Status, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return Reminder{}, fmt.Errorf("no reminder with ID %d", id)
	}
	if err != nil {
		return Reminder{}, fmt.Errorf("find reminder: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id); err != nil {
		return Reminder{}, fmt.Errorf("delete reminder: %w", err)
	}
	return r, nil
}

// DueReminders returns active reminders whose due time has passed.
// Both the background checker and the dispatcher read this view.
func (s *Store) DueReminders(asOf time.Time) ([]Reminder, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, due_at, status, created_at FROM reminders
		 WHERE status = ? AND due_at <= ? ORDER BY due_at ASC`,
		ReminderActive, asOf.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("due reminders: %w", err)
	}
	defer rows.Close()

	var out []Reminder
	for rows.Next() {
		var r Reminder
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.DueAt, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CompleteReminder transitions active → completed. The status predicate makes
// the update atomic, so the due-checker and a concurrent delete/list request
// see a consistent single transition; false means another writer got there
// first.
func (s *Store) CompleteReminder(id int64) (bool, error) {
	res, err := s.db.Exec(
		`UPDATE reminders SET status = ? WHERE id = ? AND status = ?`,
		ReminderCompleted, id, ReminderActive,
	)
	if err != nil {
		return false, fmt.Errorf("complete reminder: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
