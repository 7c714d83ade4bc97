package tracking

import (
	"fmt"
	"sync"
	"time"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/models"
)

// Status is the session state.
type Status string

// Session states
const (
	StatusIdle   Status = "IDLE"
	StatusActive Status = "ACTIVE"
)

// Result is the outcome of a stopped session, ready for the trip recorder.
type Result struct {
	StartTime     time.Time
	EndTime       time.Time
	DistanceMiles float64
}

// Snapshot is a consistent read-only view of a session for display refresh.
type Snapshot struct {
	Status         Status    `json:"status"`
	StartTime      time.Time `json:"start_time,omitempty"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	DistanceMiles  float64   `json:"distance_miles"`
}

// Session is the two-state tracking machine. Exactly one session is active
// per user context; the state machine itself enforces that by rejecting a
// second Start. Position updates are applied under a write lock so that
// concurrent Snapshot readers never observe a half-applied total.
type Session struct {
	mu        sync.RWMutex
	status    Status
	startTime time.Time
	acc       *DistanceAccumulator

	now func() time.Time
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{
		status: StatusIdle,
		now:    time.Now,
	}
}

// Start transitions Idle -> Active, resetting the accumulated distance and
// the previous fix. Starting an active session fails and leaves the progress
// already accumulated untouched.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusActive {
		return fmt.Errorf("%w: session already active", errs.ErrInvalidState)
	}

	s.status = StatusActive
	s.startTime = s.now()
	s.acc = NewDistanceAccumulator()
	return nil
}

// OnPosition feeds a fix into the accumulator. Fixes delivered while idle
// are ignored without error; the source may keep emitting briefly after a
// stop.
func (s *Session) OnPosition(p models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return nil
	}
	return s.acc.Update(p)
}

// Stop transitions Active -> Idle and returns the session result. Stopping
// an idle session fails and produces no result.
func (s *Session) Stop() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return Result{}, fmt.Errorf("%w: session not active", errs.ErrInvalidState)
	}

	res := Result{
		StartTime:     s.startTime,
		EndTime:       s.now(),
		DistanceMiles: s.acc.TotalMiles(),
	}

	s.status = StatusIdle
	s.startTime = time.Time{}
	s.acc = nil

	return res, nil
}

// Snapshot returns a consistent view of the session. Safe to call from a
// periodic display refresh while positions are being applied.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Status: s.status}
	if s.status == StatusActive {
		snap.StartTime = s.startTime
		snap.ElapsedSeconds = s.now().Sub(s.startTime).Seconds()
		snap.DistanceMiles = s.acc.TotalMiles()
	}
	return snap
}
