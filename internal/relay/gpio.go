package relay

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GPIORelay drives the kill relay through the kernel sysfs GPIO interface.
type GPIORelay struct {
	valueFile string
}

// NewGPIORelay exports the pin, configures it as an output, and drives it
// inactive so the process always starts from a known-safe relay state.
func NewGPIORelay(baseDir string, pin int) (*GPIORelay, error) {
	pinDir := filepath.Join(baseDir, fmt.Sprintf("gpio%d", pin))

	if _, err := os.Stat(pinDir); os.IsNotExist(err) {
		if err := os.WriteFile(filepath.Join(baseDir, "export"), []byte(strconv.Itoa(pin)), 0o644); err != nil {
			return nil, fmt.Errorf("failed to export GPIO %d: %w", pin, err)
		}
		// The kernel needs a moment to populate the pin directory.
		time.Sleep(100 * time.Millisecond)
	}

	if err := os.WriteFile(filepath.Join(pinDir, "direction"), []byte("out"), 0o644); err != nil {
		return nil, fmt.Errorf("failed to set GPIO %d direction: %w", pin, err)
	}

	r := &GPIORelay{valueFile: filepath.Join(pinDir, "value")}
	if err := r.Set(false); err != nil {
		return nil, fmt.Errorf("failed to drive GPIO %d inactive: %w", pin, err)
	}
	return r, nil
}

// Set implements Relay.
func (r *GPIORelay) Set(active bool) error {
	value := "0"
	if active {
		value = "1"
	}
	if err := os.WriteFile(r.valueFile, []byte(value), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
