package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/amadeusai/amadeus/internal/schema"
)

// Manager loads and persists sessions as JSONL files under the data
// directory. Sessions are cached so the same key always yields the same
// *Session instance within a process.
type Manager struct {
	sessionsDir string
	cache       sync.Map // key → *Session
}

// NewManager creates a Manager rooted at dataDir, creating the sessions
// subdirectory if necessary.
func NewManager(dataDir string) (*Manager, error) {
	dir := filepath.Join(dataDir, "sessions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}
	return &Manager{sessionsDir: dir}, nil
}

// GetOrCreate returns the cached session for key, loading from disk if
// needed, or creating an empty new one.
func (m *Manager) GetOrCreate(key string) *Session {
	if v, ok := m.cache.Load(key); ok {
		return v.(*Session)
	}

	s := m.load(key)
	if s == nil {
		s = newSession(key)
	}

	actual, _ := m.cache.LoadOrStore(key, s)
	return actual.(*Session)
}

// Save writes the session to disk and updates the cache.
func (m *Manager) Save(s *Session) error {
	path := m.sessionPath(s.Key)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	meta := map[string]any{
		"_type":      "metadata",
		"key":        s.Key,
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	for _, msg := range s.snapshot() {
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", path, err)
	}

	m.cache.Store(s.Key, s)
	return nil
}

// Invalidate removes a session from the in-memory cache (used after a reset).
func (m *Manager) Invalidate(key string) {
	m.cache.Delete(key)
}

// sessionPath converts a session key to its JSONL file path.
func (m *Manager) sessionPath(key string) string {
	name := safeFilename(strings.ReplaceAll(key, ":", "_"))
	return filepath.Join(m.sessionsDir, name+".jsonl")
}

// safeFilename replaces filesystem-unsafe characters with underscores.
func safeFilename(name string) string {
	const unsafe = `<>:"/\|?*`
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(unsafe, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// load reads a session from disk; nil when missing or unreadable.
func (m *Manager) load(key string) *Session {
	f, err := os.Open(m.sessionPath(key))
	if err != nil {
		return nil
	}
	defer f.Close()

	s := newSession(key)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1<<20), 1<<20) // 1 MB per line
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var probe map[string]any
		if err := json.Unmarshal(line, &probe); err != nil {
			slog.Warn("skipping malformed session line", "key", key, "err", err)
			continue
		}

		if probe["_type"] == "metadata" {
			if ts, ok := probe["created_at"].(string); ok {
				if t, err := time.Parse(time.RFC3339, ts); err == nil {
					s.CreatedAt = t
				}
			}
			continue
		}

		var msg schema.Message
		if err := json.Unmarshal(line, &msg); err == nil {
			s.messages = append(s.messages, msg)
		}
	}

	if err := scanner.Err(); err != nil {
		slog.Warn("error reading session file", "key", key, "err", err)
		return nil
	}
	if s.max > 0 && len(s.messages) > s.max {
		s.messages = s.messages[len(s.messages)-s.max:]
	}
	return s
}
