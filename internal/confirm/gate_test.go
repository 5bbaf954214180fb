package confirm

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTakeMatching_ConsumesOnce(t *testing.T) {
	g := NewGate(0)
	g.Request("s1", Pending{Tool: "delete_file", Target: "a.txt"})

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TakeMatching("s1", "delete_file", "a.txt") != nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("expected exactly one winner, got %d", wins.Load())
	}
	if g.Peek("s1") != nil {
		t.Error("expected the pending confirmation to be consumed")
	}
}

func TestTakeMatching_MismatchLeavesPending(t *testing.T) {
	g := NewGate(0)
	g.Request("s1", Pending{Tool: "delete_file", Target: "a.txt"})

	if g.TakeMatching("s1", "delete_file", "b.txt") != nil {
		t.Error("expected nil for a different target")
	}
	if g.TakeMatching("s1", "delete_note", "a.txt") != nil {
		t.Error("expected nil for a different tool")
	}
	if g.Peek("s1") == nil {
		t.Error("expected the pending confirmation to survive mismatches")
	}
}

func TestRequest_PeekTake(t *testing.T) {
	g := NewGate(0)

	p := g.Request("s1", Pending{Tool: "delete_file", Target: "notes.txt", Prompt: "sure?"})
	if p.ID == "" {
		t.Error("expected Request to assign an ID")
	}

	peeked := g.Peek("s1")
	if peeked == nil || peeked.Target != "notes.txt" {
		t.Fatalf("expected pending for s1, got %+v", peeked)
	}
	if g.Peek("s2") != nil {
		t.Error("expected no pending for another session")
	}

	taken := g.Take("s1")
	if taken == nil || taken.ID != p.ID {
		t.Fatalf("expected Take to return the pending record, got %+v", taken)
	}
	if g.Take("s1") != nil {
		t.Error("expected second Take to return nil")
	}
}

func TestRequest_ReplacesPrevious(t *testing.T) {
	g := NewGate(0)
	g.Request("s1", Pending{Tool: "delete_file", Target: "a.txt"})
	g.Request("s1", Pending{Tool: "delete_task", Target: "42"})

	p := g.Peek("s1")
	if p == nil || p.Tool != "delete_task" {
		t.Fatalf("expected newer request to replace the older, got %+v", p)
	}
}

func TestPeek_ExpiredDiscarded(t *testing.T) {
	g := NewGate(time.Minute)
	base := time.Now()
	g.now = func() time.Time { return base }

	g.Request("s1", Pending{Tool: "delete_file", Target: "a.txt"})

	g.now = func() time.Time { return base.Add(61 * time.Second) }
	if g.Peek("s1") != nil {
		t.Error("expected expired pending to be reported as nil")
	}
	if g.Take("s1") != nil {
		t.Error("expected expired pending to be unconsumable")
	}
}

func TestCancel(t *testing.T) {
	g := NewGate(0)
	g.Request("s1", Pending{Tool: "delete_file", Target: "a.txt"})
	g.Cancel("s1")
	if g.Peek("s1") != nil {
		t.Error("expected Cancel to discard the pending confirmation")
	}
}

func TestIsAffirmative(t *testing.T) {
	yes := []string{"yes", "Yes", "y", "yeah", "sure", "ok", "okay", "go ahead", "yes, do it", "yes please", "Yes."}
	for _, s := range yes {
		if !IsAffirmative(s) {
			t.Errorf("expected %q to be affirmative", s)
		}
	}
	no := []string{"no", "never", "what time is it", "", "yesterday"}
	for _, s := range no {
		if IsAffirmative(s) {
			t.Errorf("expected %q not to be affirmative", s)
		}
	}
}

func TestIsNegative(t *testing.T) {
	no := []string{"no", "No", "nope", "cancel", "stop", "never mind", "no, don't", "No."}
	for _, s := range no {
		if !IsNegative(s) {
			t.Errorf("expected %q to be negative", s)
		}
	}
	other := []string{"yes", "notes.txt", "", "nothing"}
	for _, s := range other {
		if IsNegative(s) {
			t.Errorf("expected %q not to be negative", s)
		}
	}
}
