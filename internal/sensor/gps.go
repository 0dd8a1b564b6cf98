package sensor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// maxNMEALinesPerRead bounds how many sentences one position read will scan
// while looking for an RMC fix.
const maxNMEALinesPerRead = 5

// LineReader is the injected serial line handle for the position source.
type LineReader interface {
	// ReadLine returns the next line without its terminator.
	ReadLine() (string, error)
}

// PositionSource parses latitude/longitude fixes from NMEA sentences on a
// serial line.
type PositionSource struct {
	lines   LineReader
	timeout time.Duration
}

// NewPositionSource creates the position source. A nil reader is allowed;
// the source then reports unavailable on Read.
func NewPositionSource(lines LineReader, timeout time.Duration) *PositionSource {
	return &PositionSource{lines: lines, timeout: timeout}
}

// Name implements Source.
func (s *PositionSource) Name() string { return NamePosition }

// Timeout implements Source.
func (s *PositionSource) Timeout() time.Duration { return s.timeout }

// Read scans up to maxNMEALinesPerRead sentences for an RMC fix.
func (s *PositionSource) Read(ctx context.Context) (Reading, error) {
	if s.lines == nil {
		return Reading{}, ErrUnavailable
	}

	for i := 0; i < maxNMEALinesPerRead; i++ {
		select {
		case <-ctx.Done():
			return Reading{}, ctx.Err()
		default:
		}

		line, err := s.lines.ReadLine()
		if err != nil {
			return Reading{}, fmt.Errorf("serial read failed: %w", err)
		}

		line = strings.TrimSpace(line)
		if !isRMC(line) {
			continue
		}

		lat, lon, err := parseRMC(line)
		if err != nil {
			continue
		}
		return Reading{Lat: &lat, Lon: &lon}, nil
	}

	return Reading{}, fmt.Errorf("%w: no RMC fix in %d sentences", ErrNoReading, maxNMEALinesPerRead)
}

// serialReadTimeout bounds one line read so a quiet port returns an error
// instead of blocking the position source past its budget.
const serialReadTimeout = 1 * time.Second

// SerialLine reads lines from a serial device file. Port speed and framing
// are configured by the platform (stty or device tree) before the process
// starts.
type SerialLine struct {
	mu          sync.Mutex
	file        *os.File
	reader      *bufio.Reader
	readTimeout time.Duration
}

// OpenSerialLine opens the serial device for line-oriented reading.
func OpenSerialLine(path string) (*SerialLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", path, err)
	}
	return &SerialLine{
		file:        file,
		reader:      bufio.NewReader(file),
		readTimeout: serialReadTimeout,
	}, nil
}

// ReadLine implements LineReader. Each read carries its own deadline where
// the device supports polling; a line that does not arrive in time surfaces
// as an error, never an indefinite block.
func (s *SerialLine) ReadLine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readTimeout > 0 {
		if err := s.file.SetReadDeadline(time.Now().Add(s.readTimeout)); err == nil {
			defer s.file.SetReadDeadline(time.Time{})
		}
	}

	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close releases the serial device.
func (s *SerialLine) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
