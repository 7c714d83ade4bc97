package tracking

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/driverlog/miletracker/internal/models"
)

// TripContext is what the driver entered when the trip was started: the gig
// app being driven for and the projected earnings, which stand in at stop
// time when no final figure is entered.
type TripContext struct {
	AppName           string  `json:"app_name"`
	ProjectedEarnings float64 `json:"projected_earnings"`
}

// Manager owns the live session and pumps fixes from the position source
// into it. It is the process-wide "one active trip" authority.
type Manager struct {
	session *Session
	source  PositionSource

	mu     sync.Mutex
	trip   TripContext
	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager wires a session to a position source.
func NewManager(source PositionSource) *Manager {
	return &Manager{
		session: NewSession(),
		source:  source,
	}
}

// StartTrip requests permission, activates the session and begins consuming
// fixes. Fails with errs.ErrPermissionDenied when the source is not
// authorized and with errs.ErrInvalidState when a trip is already running.
func (m *Manager) StartTrip(ctx context.Context, trip TripContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.source.RequestPermission(ctx); err != nil {
		return err
	}

	if err := m.session.Start(); err != nil {
		return err
	}

	pumpCtx, cancel := context.WithCancel(context.Background())
	positions, err := m.source.Start(pumpCtx)
	if err != nil {
		cancel()
		// Roll the session back so a later StartTrip is not wedged.
		if _, stopErr := m.session.Stop(); stopErr != nil {
			log.Printf("Failed to reset session after source error: %v", stopErr)
		}
		return fmt.Errorf("failed to start position source: %w", err)
	}

	m.trip = trip
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.pump(pumpCtx, positions)

	return nil
}

// pump applies fixes until the channel closes or the context is cancelled.
func (m *Manager) pump(ctx context.Context, positions <-chan models.Position) {
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-positions:
			if !ok {
				return
			}
			if err := m.session.OnPosition(p); err != nil {
				// A bad fix aborts nothing; the running total is untouched.
				log.Printf("Dropped position fix: %v", err)
			}
		}
	}
}

// StopTrip ends fix delivery, stops the session and returns its result
// together with the trip context captured at start.
func (m *Manager) StopTrip() (Result, TripContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.session.Stop()
	if err != nil {
		return Result{}, TripContext{}, err
	}

	m.source.Stop()
	if m.cancel != nil {
		m.cancel()
		<-m.done
		m.cancel = nil
		m.done = nil
	}

	trip := m.trip
	m.trip = TripContext{}

	return res, trip, nil
}

// OnPosition applies an externally delivered fix to the live session, for
// sources that push over a transport instead of the in-process channel.
// Fixes arriving while idle are ignored, matching the session contract.
func (m *Manager) OnPosition(p models.Position) error {
	return m.session.OnPosition(p)
}

// Status returns a consistent snapshot of the live session plus the trip
// context, for display refresh.
func (m *Manager) Status() (Snapshot, TripContext) {
	m.mu.Lock()
	trip := m.trip
	m.mu.Unlock()

	return m.session.Snapshot(), trip
}

// Active reports whether a trip is currently being tracked.
func (m *Manager) Active() bool {
	return m.session.Snapshot().Status == StatusActive
}
