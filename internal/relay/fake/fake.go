// Package fake provides a fake relay implementation for testing.
package fake

import (
	"sync"

	"github.com/vehicle-control/vcc/internal/relay"
)

// FakeRelay implements relay.Relay for testing purposes. It records the last
// commanded output and can simulate write failures.
type FakeRelay struct {
	mu sync.Mutex

	active        bool
	writes        int
	simulateError bool
}

// New creates a fake relay in the inactive state.
func New() *FakeRelay {
	return &FakeRelay{}
}

// Set implements relay.Relay.
func (f *FakeRelay) Set(active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.simulateError {
		return relay.ErrWriteFailed
	}
	f.active = active
	f.writes++
	return nil
}

// Active returns the last successfully commanded output.
func (f *FakeRelay) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// Writes returns the number of successful writes.
func (f *FakeRelay) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// SetErrorSimulation makes subsequent writes fail without changing state.
func (f *FakeRelay) SetErrorSimulation(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.simulateError = enabled
}
