package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type Event struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AddEvent inserts a calendar event. endAt may be zero for open-ended events.
func (s *Store) AddEvent(title, description, location string, startAt time.Time, endAt *time.Time) (Event, error) {
	if strings.TrimSpace(title) == "" {
		return Event{}, fmt.Errorf("event title is empty")
	}
	e := Event{
		Title:       title,
		Description: description,
		Location:    location,
		StartAt:     startAt.UTC(),
		CreatedAt:   now(),
	}
	var end any
	if endAt != nil {
		utc := endAt.UTC()
		e.EndAt = &utc
		end = utc
	}
	res, err := s.db.Exec(
		`INSERT INTO events (title, description, location, start_at, end_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Title, e.Description, e.Location, e.StartAt, end, e.CreatedAt,
	)
	if err != nil {
		return Event{}, fmt.Errorf("insert event: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return e, nil
}

// ListEvents returns events starting within [from, to), soonest first.
// Zero bounds are open.
func (s *Store) ListEvents(from, to time.Time) ([]Event, error) {
	query := `SELECT id, title, description, location, start_at, end_at, created_at FROM events WHERE 1=1`
	var args []any
	if !from.IsZero() {
		query += ` AND start_at >= ?`
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		query += ` AND start_at < ?`
		args = append(args, to.UTC())
	}
	query += ` ORDER BY start_at ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var end sql.NullTime
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartAt, &end, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if end.Valid {
			e.EndAt = &end.Time
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteEvent removes an event by ID.
func (s *Store) DeleteEvent(id int64) (Event, error) {
	var e Event
	var end sql.NullTime
	err := s.db.QueryRow(
		`SELECT id, title, description, location, start_at, end_at, created_at FROM events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartAt, &end, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return Event{}, fmt.Errorf("no event with ID %d", id)
	}
	if err != nil {
		return Event{}, fmt.Errorf("find event: %w", err)
	}
	if end.Valid {
		e.EndAt = &end.Time
	}
	if _, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id); err != nil {
		return Event{}, fmt.Errorf("delete event: %w", err)
	}
	return e, nil
}
