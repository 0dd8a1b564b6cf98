package actuation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vehicle-control/vcc/internal/relay"
	"github.com/vehicle-control/vcc/internal/status"
)

// State is the actuation gate state.
type State int

const (
	// Free is the initial state: the relay is inactive and the engine runs.
	Free State = iota
	// Immobilized means the relay holds the engine kill output active.
	Immobilized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Free:
		return "FREE"
	case Immobilized:
		return "IMMOBILIZED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Normalized gate errors.
var (
	// ErrSafetyRefused indicates an immobilize request was blocked because
	// the vehicle is moving. Never overridable, regardless of origin.
	ErrSafetyRefused = errors.New("SAFETY_REFUSED")

	// ErrHardwareFailure indicates the physical relay write failed; the gate
	// state and the status flag keep their prior, consistent values.
	ErrHardwareFailure = errors.New("HARDWARE_FAILURE")
)

// MotionProbe is the live motion authority consulted before immobilizing.
type MotionProbe interface {
	// Moving reports whether the vehicle is currently moving.
	Moving(ctx context.Context) bool
}

// Gate is the safety-checked actuation state machine.
type Gate struct {
	mu     sync.Mutex
	state  State
	relay  relay.Relay
	motion MotionProbe
	store  *status.Store
}

// NewGate creates a gate in the Free state. The relay is expected to already
// be driven inactive by its constructor.
func NewGate(r relay.Relay, motion MotionProbe, store *status.Store) *Gate {
	return &Gate{
		state:  Free,
		relay:  r,
		motion: motion,
		store:  store,
	}
}

// Immobilize transitions Free -> Immobilized.
//
// The transition is refused with ErrSafetyRefused while the vehicle is
// moving. On success the relay is driven active and the status flag set
// under the same lock. Requesting immobilize while already immobilized is a
// successful no-op.
func (g *Gate) Immobilize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Immobilized {
		return nil
	}

	if g.motion.Moving(ctx) {
		return fmt.Errorf("%w: vehicle is moving", ErrSafetyRefused)
	}

	if err := g.relay.Set(true); err != nil {
		return fmt.Errorf("%w: %v", ErrHardwareFailure, err)
	}

	g.state = Immobilized
	g.store.SetImmobilized(true)
	return nil
}

// Resume transitions Immobilized -> Free. Restoring motion capability is
// never safety-gated. Requesting resume while already free is a successful
// no-op.
func (g *Gate) Resume(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Free {
		return nil
	}

	if err := g.relay.Set(false); err != nil {
		return fmt.Errorf("%w: %v", ErrHardwareFailure, err)
	}

	g.state = Free
	g.store.SetImmobilized(false)
	return nil
}

// State returns the current gate state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
