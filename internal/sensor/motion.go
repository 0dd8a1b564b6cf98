package sensor

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Accelerometer is the injected inertial sensor handle. Register layout and
// bus transactions are a platform concern and not modeled here.
type Accelerometer interface {
	// ReadAccel returns one 3-axis acceleration sample in units of gravity.
	ReadAccel(ctx context.Context) (ax, ay, az float64, err error)
}

// MotionSource derives the boolean "vehicle is moving" predicate from the
// acceleration magnitude's deviation from 1 g.
//
// This is the single ground truth motion authority: both the Collector and
// the actuation gate read through it, so it must be safe for concurrent use.
// It is stateless apart from the injected handle, which each implementation
// must keep concurrency-safe itself.
type MotionSource struct {
	accel     Accelerometer
	threshold float64
	timeout   time.Duration
}

// NewMotionSource creates the motion source. A nil accelerometer is allowed;
// the source then reports unavailable on Read and "not moving" on Moving.
func NewMotionSource(accel Accelerometer, threshold float64, timeout time.Duration) *MotionSource {
	return &MotionSource{accel: accel, threshold: threshold, timeout: timeout}
}

// Name implements Source.
func (s *MotionSource) Name() string { return NameMotion }

// Timeout implements Source.
func (s *MotionSource) Timeout() time.Duration { return s.timeout }

// Read implements Source.
func (s *MotionSource) Read(ctx context.Context) (Reading, error) {
	moving, err := s.sample(ctx)
	if err != nil {
		return Reading{}, err
	}
	return Reading{Moving: &moving}, nil
}

// Moving is the live predicate consumed by the actuation gate. A sensor
// failure reads as "not moving", matching Read-path absence semantics: an
// unreadable accelerometer must not wedge the immobilizer.
//
// The read is detached from the caller's cancellation and bounded only by
// the source timeout. A caller that disconnects mid-request must not be able
// to turn its own cancellation into a "not moving" verdict and slip an
// immobilize past the guard.
func (s *MotionSource) Moving(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	moving, err := s.sample(ctx)
	if err != nil {
		return false
	}
	return moving
}

func (s *MotionSource) sample(ctx context.Context) (bool, error) {
	if s.accel == nil {
		return false, ErrUnavailable
	}

	ax, ay, az, err := s.accel.ReadAccel(ctx)
	if err != nil {
		return false, fmt.Errorf("accelerometer read failed: %w", err)
	}
	return IsMoving(ax, ay, az, s.threshold), nil
}

// IsMoving applies the motion predicate: the vehicle is moving iff the
// Euclidean magnitude of the acceleration vector deviates from 1 g by more
// than threshold.
func IsMoving(ax, ay, az, threshold float64) bool {
	magnitude := math.Sqrt(ax*ax + ay*ay + az*az)
	return math.Abs(magnitude-1.0) > threshold
}
