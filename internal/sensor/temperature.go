package sensor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// EngineTempSource reads the engine temperature from a one-wire thermometer
// exposed as a kernel slave file (family code 28).
type EngineTempSource struct {
	deviceFile string
	timeout    time.Duration
}

// NewEngineTempSource discovers the thermometer under devicesDir. A missing
// device is not an error; the source simply reports unavailable on Read.
func NewEngineTempSource(devicesDir string, timeout time.Duration) *EngineTempSource {
	return &EngineTempSource{
		deviceFile: discoverW1Slave(devicesDir),
		timeout:    timeout,
	}
}

// discoverW1Slave returns the slave file of the first 28-* device, or "".
func discoverW1Slave(devicesDir string) string {
	entries, err := os.ReadDir(devicesDir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "28-") {
			return filepath.Join(devicesDir, entry.Name(), "w1_slave")
		}
	}
	return ""
}

// Name implements Source.
func (s *EngineTempSource) Name() string { return NameEngineTemp }

// Timeout implements Source.
func (s *EngineTempSource) Timeout() time.Duration { return s.timeout }

// Read parses the kernel slave file format: a CRC line ending in "YES"
// followed by a data line carrying "t=<milli-degrees C>".
func (s *EngineTempSource) Read(ctx context.Context) (Reading, error) {
	select {
	case <-ctx.Done():
		return Reading{}, ctx.Err()
	default:
	}

	if s.deviceFile == "" {
		return Reading{}, ErrUnavailable
	}

	raw, err := os.ReadFile(s.deviceFile)
	if err != nil {
		return Reading{}, fmt.Errorf("failed to read slave file: %w", err)
	}

	milli, err := parseW1Slave(string(raw))
	if err != nil {
		return Reading{}, err
	}

	return scalar(float64(milli) / 1000.0), nil
}

// parseW1Slave extracts the milli-degree value from slave file content.
func parseW1Slave(content string) (int, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return 0, fmt.Errorf("%w: expected 2 lines, got %d", ErrMalformed, len(lines))
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[0]), "YES") {
		return 0, fmt.Errorf("%w: CRC check not confirmed", ErrNoReading)
	}

	pos := strings.Index(lines[1], "t=")
	if pos < 0 {
		return 0, fmt.Errorf("%w: no t= field in data line", ErrMalformed)
	}

	milli, err := strconv.Atoi(strings.TrimSpace(lines[1][pos+2:]))
	if err != nil {
		return 0, fmt.Errorf("%w: bad t= value: %v", ErrMalformed, err)
	}
	return milli, nil
}
