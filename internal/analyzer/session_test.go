package analyzer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jo-hoe/rgbexplorer/internal/backend/scanner"
)

type recordingAnalyzer struct {
	mu     sync.Mutex
	inputs []string
	result func(text string) (*scanner.Result, error)
}

func (r *recordingAnalyzer) Analyze(_ context.Context, text string) (*scanner.Result, error) {
	r.mu.Lock()
	r.inputs = append(r.inputs, text)
	r.mu.Unlock()
	if r.result != nil {
		return r.result(text)
	}
	return &scanner.Result{Valid: true, ID: "rgb:abc", Strings: []string{"USDT"}}, nil
}

func (r *recordingAnalyzer) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.inputs...)
}

func newTestSession(t *testing.T, a Analyzer) (*Session, *clockwork.FakeClock, chan Snapshot) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	commits := make(chan Snapshot, 8)
	s := NewSession(a,
		WithClock(clock),
		WithOnCommit(func(snap Snapshot) { commits <- snap }),
	)
	t.Cleanup(s.Cancel)
	return s, clock, commits
}

func waitCommit(t *testing.T, commits <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap := <-commits:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for commit")
	}
	return Snapshot{}
}

func TestSession_DebounceSendsLastInputOnce(t *testing.T) {
	a := &recordingAnalyzer{}
	s, clock, commits := newTestSession(t, a)

	s.Submit("a")
	clock.Advance(100 * time.Millisecond)
	s.Submit("ab")
	clock.Advance(100 * time.Millisecond)
	s.Submit("abc")

	if got := s.Snapshot().State; got != Pending {
		t.Fatalf("State = %v, want pending", got)
	}

	clock.Advance(DefaultQuietPeriod)
	snap := waitCommit(t, commits)

	if calls := a.calls(); len(calls) != 1 || calls[0] != "abc" {
		t.Fatalf("analyzer calls = %q, want exactly [abc]", calls)
	}
	if snap.State != Resolved || snap.Input != "abc" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Metadata == nil || snap.Metadata.Ticker != "USDT" {
		t.Fatalf("expected extracted metadata, got %+v", snap.Metadata)
	}
}

func TestSession_NoRequestBeforeQuietPeriod(t *testing.T) {
	a := &recordingAnalyzer{}
	s, clock, _ := newTestSession(t, a)

	s.Submit("contract")
	clock.Advance(DefaultQuietPeriod - time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if calls := a.calls(); len(calls) != 0 {
		t.Fatalf("expected no analyzer calls, got %q", calls)
	}
}

func TestSession_BlankInputIsIdle(t *testing.T) {
	a := &recordingAnalyzer{}
	s, clock, _ := newTestSession(t, a)

	s.Submit("contract")
	s.Submit("   \n ")
	clock.Advance(time.Second)
	time.Sleep(20 * time.Millisecond)

	if got := s.Snapshot(); got.State != Idle || got.Input != "" {
		t.Fatalf("expected idle snapshot, got %+v", got)
	}
	if calls := a.calls(); len(calls) != 0 {
		t.Fatalf("expected no analyzer calls, got %q", calls)
	}
}

func TestSession_CancelStopsScheduledAnalysis(t *testing.T) {
	a := &recordingAnalyzer{}
	s, clock, _ := newTestSession(t, a)

	s.Submit("contract")
	s.Cancel()
	clock.Advance(time.Second)
	time.Sleep(20 * time.Millisecond)

	if got := s.Snapshot().State; got != Idle {
		t.Fatalf("State = %v, want idle", got)
	}
	if calls := a.calls(); len(calls) != 0 {
		t.Fatalf("expected no analyzer calls, got %q", calls)
	}
}

func TestSession_StaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	a := AnalyzerFunc(func(ctx context.Context, text string) (*scanner.Result, error) {
		if text == "first" {
			close(started)
			<-release
			return &scanner.Result{Valid: true, ID: "rgb:first"}, nil
		}
		return &scanner.Result{Valid: true, ID: "rgb:second"}, nil
	})
	s, clock, commits := newTestSession(t, a)

	s.Submit("first")
	clock.Advance(DefaultQuietPeriod)
	<-started

	s.Submit("second")
	clock.Advance(DefaultQuietPeriod)
	snap := waitCommit(t, commits)
	if snap.ID != "rgb:second" {
		t.Fatalf("committed %q, want rgb:second", snap.ID)
	}

	close(release)
	select {
	case stale := <-commits:
		t.Fatalf("stale response committed: %+v", stale)
	case <-time.After(100 * time.Millisecond):
	}
	if got := s.Snapshot(); got.ID != "rgb:second" || got.Input != "second" {
		t.Fatalf("snapshot = %+v, want second input", got)
	}
}

func TestSession_SubmitCancelsInFlightRequest(t *testing.T) {
	cancelled := make(chan struct{})
	started := make(chan struct{})
	a := AnalyzerFunc(func(ctx context.Context, text string) (*scanner.Result, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return nil, ctx.Err()
	})
	s, clock, _ := newTestSession(t, a)

	s.Submit("slow")
	clock.Advance(DefaultQuietPeriod)
	<-started
	s.Submit("")

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight request was not cancelled")
	}
}

func TestSession_FailureMessages(t *testing.T) {
	tests := []struct {
		name        string
		result      *scanner.Result
		err         error
		wantMessage string
	}{
		{
			name:        "transport failure",
			err:         ErrTransport,
			wantMessage: MsgUnavailable,
		},
		{
			name:        "rejected contract",
			result:      &scanner.Result{Valid: false, Error: "no RGB armor block found"},
			wantMessage: "Error: no RGB armor block found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AnalyzerFunc(func(context.Context, string) (*scanner.Result, error) {
				return tt.result, tt.err
			})
			s, clock, commits := newTestSession(t, a)
			s.Submit("contract")
			clock.Advance(DefaultQuietPeriod)
			snap := waitCommit(t, commits)
			if snap.State != Failed {
				t.Errorf("State = %v, want failed", snap.State)
			}
			if snap.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", snap.Message, tt.wantMessage)
			}
			if snap.Metadata != nil || snap.ID != "" {
				t.Errorf("failed snapshot must not carry an extraction: %+v", snap)
			}
		})
	}
}

func TestEvaluate_SanitizesID(t *testing.T) {
	snap := Evaluate("x", &scanner.Result{Valid: true, ID: `rgb:wW5abc\nSchema: y`}, nil, nil)
	if snap.ID != "rgb:wW5abc" {
		t.Fatalf("ID = %q, want rgb:wW5abc", snap.ID)
	}
	if !snap.Known(nil) {
		t.Error("expected sanitized id to match the known contract")
	}
	if snap.Metadata.Name != "Goddess GOAT #818" {
		t.Errorf("Name = %q, want override name", snap.Metadata.Name)
	}
}

func TestEvaluate_NilResult(t *testing.T) {
	snap := Evaluate("x", nil, nil, nil)
	if snap.State != Failed || snap.Message != MsgUnavailable {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestSession_KeepsRawInputAndAnalysesTrimmed(t *testing.T) {
	a := &recordingAnalyzer{}
	s, clock, commits := newTestSession(t, a)

	raw := "\n  contract body\n"
	s.Submit(raw)
	if got := s.Snapshot().Input; got != raw {
		t.Fatalf("pending Input = %q, want %q", got, raw)
	}
	clock.Advance(DefaultQuietPeriod)
	snap := waitCommit(t, commits)

	if snap.Input != raw {
		t.Errorf("committed Input = %q, want %q", snap.Input, raw)
	}
	if calls := a.calls(); len(calls) != 1 || calls[0] != "contract body" {
		t.Errorf("analyzer calls = %q, want the trimmed text", calls)
	}
}

func TestSession_CommitsDeliveredInOrder(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gate := make(chan struct{})
	commits := make(chan Snapshot, 4)
	var once sync.Once
	a := &recordingAnalyzer{result: func(text string) (*scanner.Result, error) {
		return &scanner.Result{Valid: true, ID: "rgb:" + text}, nil
	}}
	s := NewSession(a,
		WithClock(clock),
		WithOnCommit(func(snap Snapshot) {
			once.Do(func() { <-gate })
			commits <- snap
		}),
	)
	t.Cleanup(s.Cancel)

	s.Submit("first")
	clock.Advance(DefaultQuietPeriod)
	waitState(t, s, "rgb:first")

	s.Submit("second")
	clock.Advance(DefaultQuietPeriod)
	waitState(t, s, "rgb:second")
	close(gate)

	if got := waitCommit(t, commits).ID; got != "rgb:first" {
		t.Fatalf("first callback ID = %q, want rgb:first", got)
	}
	if got := waitCommit(t, commits).ID; got != "rgb:second" {
		t.Fatalf("second callback ID = %q, want rgb:second", got)
	}
}

func waitState(t *testing.T, s *Session, id string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := s.Snapshot(); snap.State == Resolved && snap.ID == id {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s to be committed", id)
}
