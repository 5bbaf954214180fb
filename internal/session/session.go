// Package session manages per-conversation history stored as JSONL files.
//
// File format:
//
//	Line 1:  {"_type":"metadata","key":"…","created_at":"…","updated_at":"…"}
//	Line 2+: one JSON message object per line
//
// History is a bounded prompt-context window, not an audit log.
package session

import (
	"sync"
	"time"

	"github.com/amadeusai/amadeus/internal/schema"
)

// DefaultMaxMessages caps how many messages a session keeps in memory.
const DefaultMaxMessages = 100

// Session holds one conversation's messages and metadata.
// All mutations go through methods; the mutex also serializes history updates
// for concurrent commands on the same session.
type Session struct {
	Key       string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu       sync.Mutex
	messages []schema.Message
	max      int
}

func newSession(key string) *Session {
	return &Session{
		Key:       key,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		max:       DefaultMaxMessages,
	}
}

// AddUser appends a user message.
func (s *Session) AddUser(content, toolUsed string) {
	s.add(schema.Message{Role: "user", Content: content, ToolUsed: toolUsed, Timestamp: time.Now()})
}

// AddAssistant appends an assistant message.
func (s *Session) AddAssistant(content, toolUsed string) {
	s.add(schema.AssistantMessage(content, toolUsed))
}

func (s *Session) add(m schema.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	if s.max > 0 && len(s.messages) > s.max {
		s.messages = s.messages[len(s.messages)-s.max:]
	}
	s.UpdatedAt = time.Now()
}

// History returns the last maxMessages messages as a snapshot.
// maxMessages <= 0 returns everything retained.
func (s *Session) History(maxMessages int) []schema.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.messages
	if maxMessages > 0 && len(msgs) > maxMessages {
		msgs = msgs[len(msgs)-maxMessages:]
	}
	out := make([]schema.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Len returns the number of retained messages.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Clear resets the conversation.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.UpdatedAt = time.Now()
}

func (s *Session) snapshot() []schema.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]schema.Message, len(s.messages))
	copy(out, s.messages)
	return out
}
