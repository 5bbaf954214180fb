package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amadeusai/amadeus/internal/confirm"
	"github.com/amadeusai/amadeus/internal/config"
	"github.com/amadeusai/amadeus/internal/executor"
	"github.com/amadeusai/amadeus/internal/intent"
	"github.com/amadeusai/amadeus/internal/registry"
	"github.com/amadeusai/amadeus/internal/schema"
	"github.com/amadeusai/amadeus/internal/session"
)

// stubResolver always returns the same candidate.
type stubResolver struct {
	cand schema.IntentCandidate
}

func (s stubResolver) Resolve(context.Context, string) schema.IntentCandidate { return s.cand }

// echoResolver maps every utterance to the echo tool, carrying the input
// along so replies can be matched back to the command that produced them.
type echoResolver struct{}

func (echoResolver) Resolve(_ context.Context, text string) schema.IntentCandidate {
	return schema.IntentCandidate{Tool: "echo", Confidence: 1, Arguments: map[string]any{"text": text}}
}

type fixture struct {
	d        *Dispatcher
	sessions *session.Manager
	deletes  *atomic.Int32
	lastArg  *atomic.Value
}

func newFixture(t *testing.T, resolver intent.Resolver) *fixture {
	t.Helper()

	var deletes atomic.Int32
	var lastArg atomic.Value
	reg := registry.NewBuilder().
		WithTool(&schema.ToolDefinition{
			Name:                 "delete_file",
			RequiresConfirmation: true,
			TargetParam:          "file_path",
			Parameters: map[string]schema.ParamSpec{
				"file_path": {Type: schema.ParamString, Required: true},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				deletes.Add(1)
				lastArg.Store(args["file_path"].(string))
				return "Deleted " + args["file_path"].(string) + ".", nil
			},
		}).
		WithTool(&schema.ToolDefinition{
			Name: "get_datetime_info",
			Parameters: map[string]schema.ParamSpec{
				"query": {Type: schema.ParamString},
			},
			Handler: func(context.Context, map[string]any) (string, error) {
				return "The current time is 03:04 PM", nil
			},
		}).
		WithTool(&schema.ToolDefinition{
			Name: "fetch_webpage",
			Parameters: map[string]schema.ParamSpec{
				"url": {Type: schema.ParamString},
			},
			Handler: func(context.Context, map[string]any) (string, error) {
				return strings.Repeat("# Section\n**bold** and `code` text. ", 300), nil
			},
		}).
		WithTool(&schema.ToolDefinition{
			Name: "echo",
			Parameters: map[string]schema.ParamSpec{
				"text": {Type: schema.ParamString, Required: true},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return "echo: " + args["text"].(string), nil
			},
		}).
		Build()

	gate := confirm.NewGate(time.Minute)
	exec := executor.New(reg, gate, time.Second)
	sessions, err := session.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	if resolver == nil {
		resolver = intent.Chain{intent.NewKeywordResolver()}
	}

	d := New(resolver, exec, gate, sessions, nil, config.DefaultPersona(), Options{})
	return &fixture{d: d, sessions: sessions, deletes: &deletes, lastArg: &lastArg}
}

func TestProcessCommand_EmptyInput(t *testing.T) {
	f := newFixture(t, nil)
	resp := f.d.ProcessCommand(context.Background(), "s1", "   ")
	if resp.Status != schema.StatusSuccess {
		t.Fatalf("expected success, got %q", resp.Status)
	}
	if !strings.Contains(resp.Text, "didn't catch") {
		t.Errorf("expected repeat prompt, got %q", resp.Text)
	}
}

func TestProcessCommand_ToolPath(t *testing.T) {
	f := newFixture(t, nil)
	resp := f.d.ProcessCommand(context.Background(), "s1", "what time is it?")
	if resp.Status != schema.StatusSuccess {
		t.Fatalf("expected success, got %q: %s", resp.Status, resp.Text)
	}
	if resp.ToolUsed != "get_datetime_info" {
		t.Errorf("expected tool_used get_datetime_info, got %q", resp.ToolUsed)
	}
	if !strings.Contains(resp.Text, "03:04 PM") {
		t.Errorf("expected a 12-hour time, got %q", resp.Text)
	}
}

func TestProcessCommand_ConfirmFlow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	resp := f.d.ProcessCommand(ctx, "s1", "delete file notes.txt")
	if resp.Status != schema.StatusConfirmNeeded {
		t.Fatalf("expected confirm_needed, got %q: %s", resp.Status, resp.Text)
	}
	if !strings.Contains(resp.Text, "notes.txt") {
		t.Errorf("expected prompt to mention notes.txt, got %q", resp.Text)
	}
	if f.deletes.Load() != 0 {
		t.Fatal("handler must not run before confirmation")
	}

	resp = f.d.ProcessCommand(ctx, "s1", "yes")
	if resp.Status != schema.StatusSuccess {
		t.Fatalf("expected success after yes, got %q: %s", resp.Status, resp.Text)
	}
	if f.deletes.Load() != 1 {
		t.Errorf("expected exactly one deletion, got %d", f.deletes.Load())
	}
	if got := f.lastArg.Load(); got != "notes.txt" {
		t.Errorf("expected file_path notes.txt, got %v", got)
	}

	// A second yes has nothing to act on; it must not delete again.
	f.d.ProcessCommand(ctx, "s1", "yes")
	if f.deletes.Load() != 1 {
		t.Errorf("expected deletion count to stay at 1, got %d", f.deletes.Load())
	}
}

func TestProcessCommand_ConfirmDeclined(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.d.ProcessCommand(ctx, "s1", "delete file notes.txt")
	resp := f.d.ProcessCommand(ctx, "s1", "no")
	if resp.Status != schema.StatusSuccess {
		t.Fatalf("expected success on decline, got %q", resp.Status)
	}
	if !strings.Contains(strings.ToLower(resp.Text), "cancel") {
		t.Errorf("expected cancellation wording, got %q", resp.Text)
	}
	if f.deletes.Load() != 0 {
		t.Errorf("expected no deletion after decline, got %d", f.deletes.Load())
	}
}

func TestProcessCommand_UnrelatedInputDropsPending(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.d.ProcessCommand(ctx, "s1", "delete file notes.txt")
	resp := f.d.ProcessCommand(ctx, "s1", "what time is it?")
	if resp.ToolUsed != "get_datetime_info" {
		t.Errorf("expected the new command to be handled, got tool %q", resp.ToolUsed)
	}
	if f.deletes.Load() != 0 {
		t.Errorf("expected no deletion, got %d", f.deletes.Load())
	}

	// The pending confirmation is gone, so a later yes is inert.
	f.d.ProcessCommand(ctx, "s1", "yes")
	if f.deletes.Load() != 0 {
		t.Errorf("expected stale yes to be inert, got %d deletions", f.deletes.Load())
	}
}

func TestProcessCommand_ConfirmationIsPerSession(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.d.ProcessCommand(ctx, "s1", "delete file notes.txt")
	f.d.ProcessCommand(ctx, "s2", "yes")
	if f.deletes.Load() != 0 {
		t.Errorf("expected a yes in another session to be inert, got %d deletions", f.deletes.Load())
	}
}

func TestProcessCommand_UnknownToolGraceful(t *testing.T) {
	f := newFixture(t, stubResolver{cand: schema.IntentCandidate{
		Tool: "launch_rocket", Confidence: 0.9, Arguments: map[string]any{},
	}})
	resp := f.d.ProcessCommand(context.Background(), "s1", "launch the rocket")
	if resp.Status != schema.StatusError {
		t.Fatalf("expected error status, got %q", resp.Status)
	}
	if !strings.Contains(resp.Text, "launch_rocket") {
		t.Errorf("expected response to name the unknown tool, got %q", resp.Text)
	}
}

func TestProcessCommand_ToolOutputSpeakable(t *testing.T) {
	f := newFixture(t, stubResolver{cand: schema.IntentCandidate{
		Tool: "fetch_webpage", Confidence: 0.9,
		Arguments: map[string]any{"url": "https://example.com/article"},
	}})

	resp := f.d.ProcessCommand(context.Background(), "s1", "read me that article")
	if resp.Status != schema.StatusSuccess {
		t.Fatalf("expected success, got %q: %s", resp.Status, resp.Text)
	}
	if strings.ContainsAny(resp.Text, "#*`") {
		t.Errorf("expected markup stripped from tool output, got %q", resp.Text)
	}
	if len(resp.Text) > 900 {
		t.Errorf("expected tool output bounded by the spoken limit, got %d chars", len(resp.Text))
	}
	if !strings.Contains(resp.Text, "content truncated") {
		t.Errorf("expected truncation marker on long tool output, got %q", resp.Text[:80])
	}
}

func TestProcessCommand_ConcurrentSameSessionKeepsHistoryPaired(t *testing.T) {
	f := newFixture(t, echoResolver{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.d.ProcessCommand(ctx, "s1", fmt.Sprintf("message %d", i))
		}()
	}
	wg.Wait()

	msgs := f.sessions.GetOrCreate("s1").History(0)
	if len(msgs) != 16 {
		t.Fatalf("expected 16 messages (8 exchanges), got %d", len(msgs))
	}
	for i := 0; i < len(msgs); i += 2 {
		user, assistant := msgs[i], msgs[i+1]
		if user.Role != "user" || assistant.Role != "assistant" {
			t.Fatalf("expected user/assistant pair at %d, got %s/%s", i, user.Role, assistant.Role)
		}
		if assistant.Content != "echo: "+user.Content {
			t.Fatalf("exchange at %d interleaved: user %q answered with %q", i, user.Content, assistant.Content)
		}
	}
}

func TestProcessCommand_ConversationalWithoutProvider(t *testing.T) {
	f := newFixture(t, nil)
	resp := f.d.ProcessCommand(context.Background(), "s1", "how are you today")
	if resp.Status != schema.StatusSuccess {
		t.Fatalf("expected graceful fallback, got %q", resp.Status)
	}
	if resp.Text == "" {
		t.Error("expected a non-empty fallback reply")
	}
}
