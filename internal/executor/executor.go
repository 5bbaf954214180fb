// Package executor turns an IntentCandidate into an ExecutionResult: it
// resolves the tool, validates arguments, consults the confirmation gate, and
// invokes the handler behind a failure boundary. Nothing in this package ever
// propagates a raw error or panic to the caller.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amadeusai/amadeus/internal/confirm"
	"github.com/amadeusai/amadeus/internal/registry"
	"github.com/amadeusai/amadeus/internal/schema"
)

// DefaultTimeout bounds handlers that do not declare their own.
const DefaultTimeout = 10 * time.Second

// Executor validates and runs tool invocations.
type Executor struct {
	registry       *registry.Registry
	gate           *confirm.Gate
	defaultTimeout time.Duration
}

// New creates an Executor. timeout <= 0 uses DefaultTimeout.
func New(reg *registry.Registry, gate *confirm.Gate, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{registry: reg, gate: gate, defaultTimeout: timeout}
}

// Execute runs the candidate for the given session.
//
// A confirmation-requiring tool invoked without a matching pending
// confirmation is NOT run; instead a confirm_needed result is returned and
// the pending record registered. If a matching confirmation already exists
// for the same target, the handler runs and the pending record is cleared
// regardless of outcome.
func (e *Executor) Execute(ctx context.Context, session string, cand schema.IntentCandidate) schema.ExecutionResult {
	def := e.registry.Get(cand.Tool)
	if def == nil {
		slog.Warn("unknown tool requested", "tool", cand.Tool)
		return schema.Failure(fmt.Sprintf("tool %q not found", cand.Tool))
	}

	args, err := validateArgs(def, cand.Arguments)
	if err != nil {
		return schema.Failure(err.Error())
	}

	if def.RequiresConfirmation && !skipConfirmation(args) {
		target := targetOf(def, args)
		if e.gate.TakeMatching(session, def.Name, target) == nil {
			pending := e.gate.Request(session, confirm.Pending{
				Tool:      def.Name,
				Target:    target,
				Arguments: args,
				Prompt:    confirmationPrompt(def, target),
			})
			slog.Info("confirmation requested", "tool", def.Name, "target", target, "session", session)
			return schema.ConfirmNeeded(pending.Prompt)
		}
	}

	return e.invoke(ctx, def, args)
}

// ExecutePending runs a previously confirmed action. The dispatcher calls
// this after an affirmative follow-up; the pending record must already have
// been consumed via the gate so the action can execute at most once.
func (e *Executor) ExecutePending(ctx context.Context, p *confirm.Pending) schema.ExecutionResult {
	def := e.registry.Get(p.Tool)
	if def == nil {
		return schema.Failure(fmt.Sprintf("tool %q not found", p.Tool))
	}
	return e.invoke(ctx, def, p.Arguments)
}

// invoke is the failure boundary around the handler: timeout, panic recovery,
// error normalization.
func (e *Executor) invoke(ctx context.Context, def *schema.ToolDefinition, args map[string]any) schema.ExecutionResult {
	timeout := def.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	slog.Info("executing tool", "name", def.Name, "args", args)

	type outcome struct {
		msg string
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		msg, err := def.Handler(cctx, args)
		done <- outcome{msg: msg, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			slog.Error("tool execution failed", "name", def.Name, "args", args, "err", o.err)
			return schema.Failure(fmt.Sprintf("%s failed: %s", def.Name, summarize(o.err)))
		}
		return schema.Success(o.msg)
	case <-cctx.Done():
		if ctx.Err() != nil {
			// Caller cancelled; report as a plain failure.
			return schema.Failure(fmt.Sprintf("%s was cancelled", def.Name))
		}
		slog.Warn("tool timed out", "name", def.Name, "timeout", timeout, "err", schema.ErrTimeout)
		return schema.ExecutionResult{
			Status:  schema.StatusError,
			Message: fmt.Sprintf("%s took too long and was stopped. Please try again.", def.Name),
			Data:    "timeout",
		}
	}
}

// skipConfirmation reports whether the caller explicitly opted out of the
// two-step flow, e.g. a dashboard that has already shown its own dialog.
func skipConfirmation(args map[string]any) bool {
	v, ok := args["skip_confirmation"].(bool)
	return ok && v
}

// targetOf extracts the identifier of the object a destructive action
// operates on, for confirmation prompts and follow-up matching.
func targetOf(def *schema.ToolDefinition, args map[string]any) string {
	if def.TargetParam != "" {
		if v, ok := args[def.TargetParam]; ok {
			return fmt.Sprintf("%v", v)
		}
	}
	for _, name := range def.RequiredParams() {
		if v, ok := args[name]; ok {
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

func confirmationPrompt(def *schema.ToolDefinition, target string) string {
	action := strings.ReplaceAll(def.Name, "_", " ")
	if target == "" {
		return fmt.Sprintf("Are you sure you want to %s? Say yes to confirm.", action)
	}
	return fmt.Sprintf("Are you sure you want to %s %q? Say yes to confirm.", action, target)
}

// summarize keeps handler errors to one user-safe line; full detail has
// already been logged.
func summarize(err error) string {
	s := err.Error()
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
