package analyzer

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jo-hoe/rgbexplorer/internal/backend/scanner"
	"github.com/jo-hoe/rgbexplorer/internal/metadata"
)

const (
	DefaultQuietPeriod = 500 * time.Millisecond
	DefaultTimeout     = 10 * time.Second

	MsgPending     = "Analyzing... (Sending to Backend)"
	MsgUnavailable = "Analysis Service Unavailable"
	MsgValid       = "Contract Valid. Metadata Extracted."
)

type State int

const (
	Idle State = iota
	Pending
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is one committed analyzer state. It is always replaced as a whole.
type Snapshot struct {
	Seq      uint64
	State    State
	Input    string // as submitted, surrounding whitespace included
	ID       string
	Image    string
	Metadata *metadata.Extracted
	Result   *scanner.Result
	Message  string
}

// Known reports whether the committed id matches an override entry.
func (s Snapshot) Known(overrides *metadata.OverrideTable) bool {
	if overrides == nil {
		overrides = metadata.DefaultOverrides
	}
	return s.ID != "" && overrides.IsKnown(s.ID)
}

// Evaluate maps one analysis outcome to a terminal snapshot.
func Evaluate(input string, result *scanner.Result, err error, overrides *metadata.OverrideTable) Snapshot {
	if overrides == nil {
		overrides = metadata.DefaultOverrides
	}
	snap := Snapshot{Input: input, Result: result}
	switch {
	case err != nil || result == nil:
		snap.State = Failed
		snap.Message = MsgUnavailable
	case !result.Valid:
		snap.State = Failed
		snap.Message = "Error: " + result.Error
	default:
		snap.State = Resolved
		snap.ID = metadata.SanitizeID(result.ID)
		snap.Image = result.ImageBase64
		meta := overrides.Guess(result.Strings, snap.ID, metadata.Headers{
			Schema:   result.Schema,
			Checksum: result.Checksum,
			Version:  result.Version,
		})
		snap.Metadata = &meta
		snap.Message = MsgValid
	}
	return snap
}

type Option func(*Session)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

func WithQuietPeriod(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.quiet = d
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithOverrides(overrides *metadata.OverrideTable) Option {
	return func(s *Session) {
		if overrides != nil {
			s.overrides = overrides
		}
	}
}

// WithOnCommit registers a callback receiving every committed snapshot.
// Callbacks run one at a time in commit order on a delivery goroutine,
// outside the session lock, and may call back into the session.
func WithOnCommit(fn func(Snapshot)) Option {
	return func(s *Session) { s.onCommit = fn }
}

// Session debounces contract input and keeps the latest committed analysis.
// Only the response to the most recent input is ever committed.
type Session struct {
	analyzer  Analyzer
	clock     clockwork.Clock
	quiet     time.Duration
	timeout   time.Duration
	overrides *metadata.OverrideTable
	onCommit  func(Snapshot)

	mu       sync.Mutex
	seq      uint64
	timer    clockwork.Timer
	cancel   context.CancelFunc
	snapshot Snapshot

	pending    []Snapshot
	delivering bool
}

func NewSession(analyzer Analyzer, opts ...Option) *Session {
	s := &Session{
		analyzer:  analyzer,
		clock:     clockwork.NewRealClock(),
		quiet:     DefaultQuietPeriod,
		timeout:   DefaultTimeout,
		overrides: metadata.DefaultOverrides,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit records a new input. The previous extraction is dropped immediately
// and analysis runs once the input has been quiet for the configured period.
// Only the trimmed text is analysed; snapshots keep the raw text.
func (s *Session) Submit(text string) {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.stopLocked()

	if trimmed == "" {
		s.snapshot = Snapshot{Seq: s.seq, State: Idle}
		return
	}

	seq := s.seq
	s.snapshot = Snapshot{Seq: seq, State: Pending, Input: text, Message: MsgPending}
	// keep the timer callback non-blocking
	s.timer = s.clock.AfterFunc(s.quiet, func() { go s.dispatch(seq, text, trimmed) })
}

// Cancel abandons any scheduled or running analysis and returns to Idle.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.stopLocked()
	s.snapshot = Snapshot{Seq: s.seq, State: Idle}
}

// Snapshot returns a copy of the committed state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *Session) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) dispatch(seq uint64, text, trimmed string) {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.cancel = cancel
	s.timer = nil
	s.mu.Unlock()

	result, err := s.analyzer.Analyze(ctx, trimmed)
	cancel()
	if err != nil {
		slog.Warn("analysis request failed", "seq", seq, "error", err)
	}
	snap := Evaluate(text, result, err, s.overrides)
	snap.Seq = seq

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		slog.Debug("discarding stale analysis response", "seq", seq)
		return
	}
	s.snapshot = snap
	s.cancel = nil
	if s.onCommit != nil {
		s.pending = append(s.pending, snap)
		if !s.delivering {
			s.delivering = true
			go s.deliver()
		}
	}
	s.mu.Unlock()
}

// deliver drains pending commits in order and exits when none are left.
func (s *Session) deliver() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.delivering = false
			s.mu.Unlock()
			return
		}
		snap := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		s.onCommit(snap)
	}
}
