package relay

import "errors"

// ErrWriteFailed indicates the physical output write did not complete; the
// relay must be assumed to still hold its previous state.
var ErrWriteFailed = errors.New("RELAY_WRITE_FAILED")

// Relay drives the engine kill output. Active kills the engine.
type Relay interface {
	// Set drives the output. On error the previous output state holds.
	Set(active bool) error
}

// Noop is a relay that accepts every write and drives nothing. Used on
// development hosts without the GPIO controller, mirroring a bench setup
// where the kill wire is simply not connected.
type Noop struct{}

// Set implements Relay.
func (Noop) Set(active bool) error { return nil }
