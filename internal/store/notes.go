package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func joinTags(tags []string) string {
	var clean []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// CreateNote inserts a new note.
func (s *Store) CreateNote(title, content string, tags []string) (Note, error) {
	if strings.TrimSpace(title) == "" {
		return Note{}, fmt.Errorf("note title is empty")
	}
	n := Note{Title: title, Content: content, Tags: tags, CreatedAt: now(), UpdatedAt: now()}
	res, err := s.db.Exec(
		`INSERT INTO notes (title, content, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		n.Title, n.Content, joinTags(tags), n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return Note{}, fmt.Errorf("insert note: %w", err)
	}
	n.ID, _ = res.LastInsertId()
	return n, nil
}

// ListNotes returns notes, optionally filtered by tag, newest first.
func (s *Store) ListNotes(tag string) ([]Note, error) {
	query := `SELECT id, title, content, tags, created_at, updated_at FROM notes`
	var args []any
	if tag != "" {
		query += ` WHERE ',' || tags || ',' LIKE ?`
		args = append(args, "%,"+tag+",%")
	}
	query += ` ORDER BY id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var n Note
		var tags string
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &tags, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		n.Tags = splitTags(tags)
		out = append(out, n)
	}
	return out, rows.Err()
}

// GetNote returns one note by ID.
func (s *Store) GetNote(id int64) (Note, error) {
	var n Note
	var tags string
	err := s.db.QueryRow(
		`SELECT id, title, content, tags, created_at, updated_at FROM notes WHERE id = ?`, id,
	).Scan(&n.ID, &n.Title, &n.Content, &tags, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return Note{}, fmt.Errorf("no note with ID %d", id)
	}
	if err != nil {
		return Note{}, fmt.Errorf("get note: %w", err)
	}
	n.Tags = splitTags(tags)
	return n, nil
}

// UpdateNote applies non-nil fields to an existing note.
func (s *Store) UpdateNote(id int64, title, content *string, tags []string) (Note, error) {
	n, err := s.GetNote(id)
	if err != nil {
		return Note{}, err
	}
	if title != nil {
		n.Title = *title
	}
	if content != nil {
		n.Content = *content
	}
	if tags != nil {
		n.Tags = tags
	}
	n.UpdatedAt = now()

	_, err = s.db.Exec(
		`UPDATE notes SET title = ?, content = ?, tags = ?, updated_at = ? WHERE id = ?`,
		n.Title, n.Content, joinTags(n.Tags), n.UpdatedAt, id,
	)
	if err != nil {
		return Note{}, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

// DeleteNote removes a note by ID.
func (s *Store) DeleteNote(id int64) (Note, error) {
	n, err := s.GetNote(id)
	if err != nil {
		return Note{}, err
	}
	if _, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id); err != nil {
		return Note{}, fmt.Errorf("delete note: %w", err)
	}
	return n, nil
}

// NotesSummary returns a one-line spoken summary of the notes collection.
func (s *Store) NotesSummary() (string, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&count); err != nil {
		return "", fmt.Errorf("notes summary: %w", err)
	}
	if count == 0 {
		return "You have no notes.", nil
	}

	rows, err := s.db.Query(`SELECT title FROM notes ORDER BY id DESC LIMIT 3`)
	if err != nil {
		return "", fmt.Errorf("notes summary: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err == nil {
			titles = append(titles, t)
		}
	}
	return fmt.Sprintf("You have %d notes. Most recent: %s.", count, strings.Join(titles, ", ")), nil
}
