package syncstatus

import (
	"fmt"
	"sync"
	"time"
)

// Aggregate is the mutable sync status. It is safe for concurrent use.
//
//	Idle ──Start──► Syncing ──Complete──► Idle
//	                   │
//	                  Fail
//	                   ▼
//	Idle ◄─Acknowledge─ Error ──Start──► Syncing
//
// Offline is entered and left with SetOffline whenever no cycle is running.
type Aggregate struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// Option configures an Aggregate.
type Option func(*Aggregate)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregate) { a.now = now }
}

// New returns an Idle aggregate with zero counters.
func New(opts ...Option) *Aggregate {
	a := &Aggregate{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func transitionError(from Status, event string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, event, from)
}

// Restore seeds LastSync, typically from the value persisted by the previous
// run. It does not change the phase.
func (a *Aggregate) Restore(lastSync time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap.LastSync = lastSync
}

// Start begins a cycle with pending work items. Allowed from Idle and Error.
// Per-cycle counters and the error message are reset.
func (a *Aggregate) Start(pending int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.Status != StatusIdle && a.snap.Status != StatusError {
		return transitionError(a.snap.Status, "start")
	}
	if pending < 0 {
		pending = 0
	}

	a.snap.Status = StatusSyncing
	a.snap.Pending = pending
	a.snap.Uploaded = 0
	a.snap.Downloaded = 0
	a.snap.Message = ""
	return nil
}

// ItemCompleted records one finished transfer.
func (a *Aggregate) ItemCompleted(dir Direction) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.Status != StatusSyncing {
		return transitionError(a.snap.Status, "item completion")
	}

	switch dir {
	case DirectionUpload:
		a.snap.Uploaded++
	case DirectionDownload:
		a.snap.Downloaded++
	default:
		return fmt.Errorf("%w: %d", ErrUnknownDirection, int(dir))
	}

	if a.snap.Pending > 0 {
		a.snap.Pending--
	}
	return nil
}

// Complete finishes a successful cycle and stamps LastSync.
func (a *Aggregate) Complete() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.Status != StatusSyncing {
		return transitionError(a.snap.Status, "completion")
	}

	a.snap.Status = StatusIdle
	a.snap.LastSync = a.now()
	a.snap.Pending = 0
	return nil
}

// Fail ends the cycle with an error. Counters stay as last observed so the
// partial progress remains visible.
func (a *Aggregate) Fail(message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.Status != StatusSyncing {
		return transitionError(a.snap.Status, "failure")
	}

	a.snap.Status = StatusError
	a.snap.Message = message
	return nil
}

// Acknowledge clears an error after the user has seen it.
func (a *Aggregate) Acknowledge() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.Status != StatusError {
		return transitionError(a.snap.Status, "acknowledge")
	}

	a.snap.Status = StatusIdle
	a.snap.Message = ""
	return nil
}

// SetOffline moves between Offline and Idle. A running cycle is left alone;
// it ends through Complete or Fail. Going offline discards a pending error.
func (a *Aggregate) SetOffline(offline bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case a.snap.Status == StatusSyncing:
	case offline:
		a.snap.Status = StatusOffline
		a.snap.Message = ""
	case a.snap.Status == StatusOffline:
		a.snap.Status = StatusIdle
	}
}

// Snapshot returns a copy of the current state.
func (a *Aggregate) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}
