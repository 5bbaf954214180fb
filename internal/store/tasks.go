package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Task statuses.
const (
	TaskPending   = "pending"
	TaskCompleted = "completed"
)

type Task struct {
	ID          int64      `json:"id"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// AddTask inserts a pending task.
func (s *Store) AddTask(content string) (Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Task{}, fmt.Errorf("task content is empty")
	}
	t := Task{Content: content, Status: TaskPending, CreatedAt: now()}
	res, err := s.db.Exec(
		`INSERT INTO tasks (content, status, created_at) VALUES (?, ?, ?)`,
		t.Content, t.Status, t.CreatedAt,
	)
	if err != nil {
		return Task{}, fmt.Errorf("insert task: %w", err)
	}
	t.ID, _ = res.LastInsertId()
	return t, nil
}

// ListTasks returns tasks, optionally filtered by status, newest first.
func (s *Store) ListTasks(status string) ([]Task, error) {
	query := `SELECT id, content, status, created_at, completed_at FROM tasks`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		var completed sql.NullTime
		if err := rows.Scan(&t.ID, &t.Content, &t.Status, &t.CreatedAt, &completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if completed.Valid {
			t.CompletedAt = &completed.Time
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// findTask resolves an identifier that may be a numeric ID or a content
// substring. Substring matches prefer pending tasks.
func (s *Store) findTask(identifier string) (Task, error) {
	identifier = strings.TrimSpace(identifier)

	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		var t Task
		var completed sql.NullTime
		err := s.db.QueryRow(
			`SELECT id, content, status, created_at, completed_at FROM tasks WHERE id = ?`, id,
		).Scan(&t.ID, &t.Content, &t.Status, &t.CreatedAt, &completed)
		if err == sql.ErrNoRows {
			return Task{}, fmt.Errorf("no task with ID %d", id)
		}
		if err != nil {
			return Task{}, fmt.Errorf("find task: %w", err)
		}
		if completed.Valid {
			t.CompletedAt = &completed.Time
		}
		return t, nil
	}

	var t Task
	var completed sql.NullTime
	err := s.db.QueryRow(
		`SELECT id, content, status, created_at, completed_at FROM tasks
		 WHERE content LIKE ? ORDER BY status = 'pending' DESC, id DESC LIMIT 1`,
		"%"+identifier+"%",
	).Scan(&t.ID, &t.Content, &t.Status, &t.CreatedAt, &completed)
	if err == sql.ErrNoRows {
		return Task{}, fmt.Errorf("no task matching %q", identifier)
	}
	if err != nil {
		return Task{}, fmt.Errorf("find task: %w", err)
	}
	if completed.Valid {
		t.CompletedAt = &completed.Time
	}
	return t, nil
}

// CompleteTask marks a task completed. The status predicate makes the
// transition atomic: two concurrent completes can only succeed once.
func (s *Store) CompleteTask(identifier string) (Task, error) {
	t, err := s.findTask(identifier)
	if err != nil {
		return Task{}, err
	}

	res, err := s.db.Exec(
		`UPDATE tasks SET status = ?, completed_at = ? WHERE id = ? AND status = ?`,
		TaskCompleted, now(), t.ID, TaskPending,
	)
	if err != nil {
		return Task{}, fmt.Errorf("complete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Task{}, fmt.Errorf("task %q is already completed", t.Content)
	}
	t.Status = TaskCompleted
	return t, nil
}

// DeleteTask removes a task by ID or content match.
func (s *Store) DeleteTask(identifier string) (Task, error) {
	t, err := s.findTask(identifier)
	if err != nil {
		return Task{}, err
	}
	if _, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, t.ID); err != nil {
		return Task{}, fmt.Errorf("delete task: %w", err)
	}
	return t, nil
}

// TaskSummary returns a one-line spoken summary of the task list.
func (s *Store) TaskSummary() (string, error) {
	var pending, completed int
	err := s.db.QueryRow(
		`SELECT
			COUNT(CASE WHEN status = 'pending' THEN 1 END),
			COUNT(CASE WHEN status = 'completed' THEN 1 END)
		 FROM tasks`,
	).Scan(&pending, &completed)
	if err != nil {
		return "", fmt.Errorf("task summary: %w", err)
	}
	if pending+completed == 0 {
		return "You have no tasks.", nil
	}
	return fmt.Sprintf("You have %d pending and %d completed tasks.", pending, completed), nil
}
