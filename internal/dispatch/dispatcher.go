// Package dispatch is the command pipeline: it resolves a user utterance to a
// tool intent or conversation, routes confirmation follow-ups, runs the
// executor, and records the exchange in session history.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/amadeusai/amadeus/internal/confirm"
	"github.com/amadeusai/amadeus/internal/config"
	"github.com/amadeusai/amadeus/internal/executor"
	"github.com/amadeusai/amadeus/internal/intent"
	"github.com/amadeusai/amadeus/internal/schema"
	"github.com/amadeusai/amadeus/internal/session"
)

const (
	emptyInputReply  = "I didn't catch that. Could you repeat?"
	llmFallbackReply = "I'm having trouble processing that right now."
	cancelledReply   = "Okay, cancelled."
	nothingToCancel  = "There's nothing waiting for confirmation."
)

// Response is what the dispatcher hands back to a channel (CLI, gateway).
type Response struct {
	Status   schema.ExecStatus `json:"status"`
	Text     string            `json:"message"`
	ToolUsed string            `json:"tool_used,omitempty"`
}

// Dispatcher owns one end-to-end command pipeline. Safe for concurrent use:
// commands within a session run one at a time so confirmation state and
// history updates stay strictly ordered, while distinct sessions proceed in
// parallel.
type Dispatcher struct {
	resolver intent.Resolver
	exec     *executor.Executor
	gate     *confirm.Gate
	sessions *session.Manager
	provider schema.LLMProvider
	persona  config.Persona

	memoryWindow int
	spokenLimit  int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Options tunes dispatcher behavior; zero values fall back to defaults.
type Options struct {
	MemoryWindow int
	SpokenLimit  int
}

// New wires a Dispatcher. provider may be nil; conversational turns then get
// a static fallback reply.
func New(resolver intent.Resolver, exec *executor.Executor, gate *confirm.Gate,
	sessions *session.Manager, provider schema.LLMProvider, persona config.Persona, opts Options) *Dispatcher {
	if opts.MemoryWindow <= 0 {
		opts.MemoryWindow = 20
	}
	if opts.SpokenLimit <= 0 {
		opts.SpokenLimit = 800
	}
	return &Dispatcher{
		resolver:     resolver,
		exec:         exec,
		gate:         gate,
		sessions:     sessions,
		provider:     provider,
		persona:      persona,
		memoryWindow: opts.MemoryWindow,
		spokenLimit:  opts.SpokenLimit,
		locks:        make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing exchanges for one session.
func (d *Dispatcher) sessionLock(sessionKey string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	l := d.locks[sessionKey]
	if l == nil {
		l = &sync.Mutex{}
		d.locks[sessionKey] = l
	}
	return l
}

// ProcessCommand runs one utterance through the pipeline and returns the reply.
func (d *Dispatcher) ProcessCommand(ctx context.Context, sessionKey, input string) Response {
	input = strings.TrimSpace(input)
	if input == "" {
		return Response{Status: schema.StatusSuccess, Text: emptyInputReply}
	}

	lock := d.sessionLock(sessionKey)
	lock.Lock()
	defer lock.Unlock()

	sess := d.sessions.GetOrCreate(sessionKey)

	// A pending confirmation intercepts the utterance before intent
	// resolution: yes runs the held action, no cancels it, and anything else
	// cancels it and is handled as a fresh command.
	if d.gate.Peek(sessionKey) != nil {
		switch {
		case confirm.IsAffirmative(input):
			p := d.gate.Take(sessionKey)
			if p == nil {
				return d.reply(sess, input, Response{Status: schema.StatusSuccess, Text: nothingToCancel})
			}
			result := d.exec.ExecutePending(ctx, p)
			return d.reply(sess, input, d.toolResponse(result, p.Tool))
		case confirm.IsNegative(input):
			d.gate.Cancel(sessionKey)
			return d.reply(sess, input, Response{Status: schema.StatusSuccess, Text: cancelledReply})
		default:
			d.gate.Cancel(sessionKey)
			slog.Info("pending confirmation dropped by unrelated input", "session", sessionKey)
		}
	}

	cand := d.resolver.Resolve(ctx, input)
	if cand.IsConversational() {
		return d.converse(ctx, sess, sessionKey, input)
	}

	result := d.exec.Execute(ctx, sessionKey, cand)
	if result.Status == schema.StatusConfirmNeeded {
		// The prompt is not history; the follow-up is matched by the gate,
		// not by conversational context.
		return Response{Status: result.Status, Text: result.Message, ToolUsed: cand.Tool}
	}
	return d.reply(sess, input, d.toolResponse(result, cand.Tool))
}

// toolResponse shapes an execution result for playback. Success output goes
// through Speakable; error messages are already short plain text.
func (d *Dispatcher) toolResponse(result schema.ExecutionResult, tool string) Response {
	text := result.Message
	if result.Status == schema.StatusSuccess {
		text = Speakable(text, d.spokenLimit)
	}
	return Response{Status: result.Status, Text: text, ToolUsed: tool}
}

// converse handles a turn with no tool intent through the LLM.
func (d *Dispatcher) converse(ctx context.Context, sess *session.Session, sessionKey, input string) Response {
	if d.provider == nil {
		return d.reply(sess, input, Response{Status: schema.StatusSuccess, Text: llmFallbackReply})
	}

	var history []schema.Message
	if sess != nil {
		history = sess.History(d.memoryWindow)
	}
	text, err := d.provider.Chat(ctx, d.systemPrompt(), history, input)
	if err != nil {
		slog.Error("conversational generation failed", "session", sessionKey, "err", err)
		return d.reply(sess, input, Response{Status: schema.StatusSuccess, Text: llmFallbackReply})
	}
	return d.reply(sess, input, Response{Status: schema.StatusSuccess, Text: Speakable(text, d.spokenLimit)})
}

// reply records the exchange and persists the session before returning.
func (d *Dispatcher) reply(sess *session.Session, input string, r Response) Response {
	if sess != nil {
		sess.AddUser(input, r.ToolUsed)
		sess.AddAssistant(r.Text, r.ToolUsed)
		if err := d.sessions.Save(sess); err != nil {
			slog.Warn("session save failed", "session", sess.Key, "err", err)
		}
	}
	return r
}

// ResetSession clears a conversation's history and any pending confirmation.
func (d *Dispatcher) ResetSession(sessionKey string) error {
	lock := d.sessionLock(sessionKey)
	lock.Lock()
	defer lock.Unlock()

	d.gate.Cancel(sessionKey)
	sess := d.sessions.GetOrCreate(sessionKey)
	sess.Clear()
	if err := d.sessions.Save(sess); err != nil {
		return fmt.Errorf("save session %s: %w", sessionKey, err)
	}
	return nil
}

func (d *Dispatcher) systemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a personal assistant. You are %s.\n",
		d.persona.Name, d.persona.Personality)
	fmt.Fprintf(&b, "Reply style: %s, verbosity: %s.\n", d.persona.Style, d.persona.Verbosity)
	for _, g := range d.persona.Guidelines {
		fmt.Fprintf(&b, "- %s\n", g)
	}
	return strings.TrimRight(b.String(), "\n")
}
