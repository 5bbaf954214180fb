// Package confirm implements the two-step request/confirm protocol that
// guards destructive tools. State is keyed per session; at most one
// confirmation can be pending for a session at a time.
package confirm

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL bounds how long a pending confirmation stays valid. A stale
// confirmation must not execute against stale state.
const DefaultTTL = 60 * time.Second

// Pending is a confirmation awaiting a yes/no follow-up.
type Pending struct {
	ID        string
	Tool      string
	Target    string
	Arguments map[string]any
	Prompt    string
	CreatedAt time.Time
}

// Gate tracks pending confirmations per session.
// All transitions are atomic relative to other operations on the same session.
type Gate struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[string]*Pending

	now func() time.Time // overridable in tests
}

// NewGate creates a Gate. ttl <= 0 uses DefaultTTL.
func NewGate(ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Gate{ttl: ttl, pending: make(map[string]*Pending), now: time.Now}
}

// Request records a pending confirmation for the session, replacing any
// previous one (a newer destructive request voids the older prompt).
// It returns the stored record with ID and CreatedAt filled.
func (g *Gate) Request(session string, p Pending) Pending {
	g.mu.Lock()
	defer g.mu.Unlock()

	p.ID = uuid.NewString()
	p.CreatedAt = g.now()
	g.pending[session] = &p
	return p
}

// Peek returns the live pending confirmation for the session, or nil.
// An expired entry is discarded and reported as nil.
func (g *Gate) Peek(session string) *Pending {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.liveLocked(session)
}

// Take consumes and returns the live pending confirmation, or nil. A second
// Take for the same session returns nil, so a confirmation can never execute
// twice.
func (g *Gate) Take(session string) *Pending {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.liveLocked(session)
	if p != nil {
		delete(g.pending, session)
	}
	return p
}

// TakeMatching consumes the live pending confirmation only when its tool and
// target match, in a single critical section. Of any number of concurrent
// matching commands, exactly one gets the record; the rest see nil.
func (g *Gate) TakeMatching(session, tool, target string) *Pending {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.liveLocked(session)
	if p == nil || p.Tool != tool || p.Target != target {
		return nil
	}
	delete(g.pending, session)
	return p
}

// Cancel discards any pending confirmation for the session.
func (g *Gate) Cancel(session string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, session)
}

func (g *Gate) liveLocked(session string) *Pending {
	p := g.pending[session]
	if p == nil {
		return nil
	}
	if g.now().Sub(p.CreatedAt) > g.ttl {
		delete(g.pending, session)
		return nil
	}
	return p
}

var affirmatives = map[string]bool{
	"yes": true, "y": true, "yeah": true, "yep": true, "sure": true,
	"confirm": true, "do it": true, "go ahead": true, "ok": true, "okay": true,
}

var negatives = map[string]bool{
	"no": true, "n": true, "nope": true, "cancel": true, "stop": true,
	"don't": true, "do not": true, "never mind": true, "nevermind": true,
}

// IsAffirmative reports whether an utterance confirms a pending action.
func IsAffirmative(text string) bool {
	t := strings.ToLower(strings.TrimSpace(strings.Trim(text, ".!")))
	if affirmatives[t] {
		return true
	}
	return strings.HasPrefix(t, "yes,") || strings.HasPrefix(t, "yes ")
}

// IsNegative reports whether an utterance declines a pending action.
func IsNegative(text string) bool {
	t := strings.ToLower(strings.TrimSpace(strings.Trim(text, ".!")))
	if negatives[t] {
		return true
	}
	return strings.HasPrefix(t, "no,") || strings.HasPrefix(t, "no ")
}
