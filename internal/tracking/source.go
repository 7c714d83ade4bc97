package tracking

import (
	"context"
	"fmt"
	"sync"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/models"
)

// PositionSource is the platform location service contract. It emits a lazy,
// unbounded, non-restartable sequence of fixes between Start and Stop while
// permission is granted.
type PositionSource interface {
	// RequestPermission asks the platform for location access. Returns an
	// error wrapping errs.ErrPermissionDenied when not granted.
	RequestPermission(ctx context.Context) error

	// Start begins emitting fixes on the returned channel. The channel is
	// closed by Stop or when ctx is cancelled.
	Start(ctx context.Context) (<-chan models.Position, error)

	// Stop ends the emission and closes the channel returned by Start.
	Stop()
}

// SimulatedSource is an in-process PositionSource for tests and development.
// Fixes are injected with Emit.
type SimulatedSource struct {
	mu      sync.Mutex
	granted bool
	ch      chan models.Position
}

// NewSimulatedSource returns a source whose permission state is fixed at
// construction.
func NewSimulatedSource(granted bool) *SimulatedSource {
	return &SimulatedSource{granted: granted}
}

func (s *SimulatedSource) RequestPermission(ctx context.Context) error {
	if !s.granted {
		return fmt.Errorf("%w: simulated denial", errs.ErrPermissionDenied)
	}
	return nil
}

func (s *SimulatedSource) Start(ctx context.Context) (<-chan models.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.granted {
		return nil, fmt.Errorf("%w: simulated denial", errs.ErrPermissionDenied)
	}
	if s.ch != nil {
		return nil, fmt.Errorf("%w: source already started", errs.ErrInvalidState)
	}

	s.ch = make(chan models.Position, 16)
	return s.ch, nil
}

func (s *SimulatedSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil {
		close(s.ch)
		s.ch = nil
	}
}

// Emit pushes a fix to the subscriber. Reports false when the source is not
// started. The send happens under the lock so a concurrent Stop cannot close
// the channel mid-send.
func (s *SimulatedSource) Emit(p models.Position) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch == nil {
		return false
	}
	s.ch <- p
	return true
}
