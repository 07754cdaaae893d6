package fetch

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mlindner/asmtrack/internal/tree"
)

// DefaultQuiet is the debounce window for identifier-change requests.
const DefaultQuiet = 300 * time.Millisecond

// Result is the outcome of one committed fetch cycle. Exactly one of
// Snapshot/Err is set. Stale cycles never produce a Result.
type Result struct {
	Number   string
	Cycle    uint64
	Snapshot *tree.Snapshot
	Err      error
}

// Scheduler serializes fetch intent: rapid Request calls for changing
// identifiers are coalesced over a quiet window, Refresh bypasses the
// window, and every issued cycle carries a monotonic token. Only the
// cycle holding the newest token on completion is delivered; anything
// older is discarded, so results are last-writer-wins by issuance
// order regardless of completion order.
//
// In-flight source calls are not hard-cancelled: a superseded cycle
// runs to completion and its result is dropped at the token check.
type Scheduler struct {
	fetcher *Fetcher
	quiet   time.Duration
	log     *logrus.Logger
	results chan Result

	mu      sync.Mutex
	latest  uint64
	pending *time.Timer
	closed  bool
}

// NewScheduler creates a Scheduler delivering results on a buffered
// channel. A quiet of 0 uses DefaultQuiet; a nil logger disables
// debug logging.
func NewScheduler(fetcher *Fetcher, quiet time.Duration, log *logrus.Logger) *Scheduler {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Scheduler{
		fetcher: fetcher,
		quiet:   quiet,
		log:     log,
		results: make(chan Result, 16),
	}
}

// Results is the channel committed cycle outcomes are delivered on.
// It is closed by Close.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// Request schedules a fetch for the given identifier after the quiet
// window. A newer Request or Refresh before the window elapses cancels
// it entirely — no source call is ever issued for a superseded intent.
func (s *Scheduler) Request(number string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cancelPendingLocked()
	s.pending = time.AfterFunc(s.quiet, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.launchLocked(number)
	})
}

// Refresh issues a fetch immediately, bypassing the debounce window.
// It is still subject to the cycle-token guard: an even newer cycle
// supersedes its result.
func (s *Scheduler) Refresh(number string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cancelPendingLocked()
	s.launchLocked(number)
}

// Close cancels any pending debounce window and closes the results
// channel. In-flight cycles finish silently.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancelPendingLocked()
	close(s.results)
}

func (s *Scheduler) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Scheduler) launchLocked(number string) {
	s.latest++
	token := s.latest
	go s.run(token, number)
}

func (s *Scheduler) run(token uint64, number string) {
	snap, err := s.fetcher.Fetch(context.Background(), number)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if token != s.latest {
		// A newer cycle was issued while this one was in flight; its
		// result wins no matter which finished first.
		s.log.WithFields(logrus.Fields{
			"number": number,
			"cycle":  token,
			"latest": s.latest,
		}).Debug("stale cycle discarded")
		return
	}
	if snap != nil {
		snap.Cycle = token
	}
	s.results <- Result{Number: number, Cycle: token, Snapshot: snap, Err: err}
}
