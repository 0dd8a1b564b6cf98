package sensor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccel struct {
	ax, ay, az float64
	err        error
}

func (f *fakeAccel) ReadAccel(ctx context.Context) (float64, float64, float64, error) {
	return f.ax, f.ay, f.az, f.err
}

func TestIsMoving(t *testing.T) {
	tests := []struct {
		name       string
		ax, ay, az float64
		want       bool
	}{
		{"at rest flat", 0, 0, 1.0, false},
		{"at rest tilted within threshold", 0.1, 0, 0.99, false},
		{"accelerating", 0.5, 0.5, 1.0, true},
		{"free fall", 0, 0, 0, true},
		{"hard braking", 1.2, 0, 1.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMoving(tt.ax, tt.ay, tt.az, 0.15))
		})
	}
}

func TestMotionSourceRead(t *testing.T) {
	src := NewMotionSource(&fakeAccel{ax: 0.5, ay: 0.5, az: 1.0}, 0.15, time.Second)

	reading, err := src.Read(context.Background())
	require.NoError(t, err)
	require.NotNil(t, reading.Moving)
	assert.True(t, *reading.Moving)
}

func TestMotionSourceReadError(t *testing.T) {
	src := NewMotionSource(&fakeAccel{err: errors.New("i2c timeout")}, 0.15, time.Second)

	_, err := src.Read(context.Background())
	require.Error(t, err)
}

func TestMotionSourceReadNilHandle(t *testing.T) {
	src := NewMotionSource(nil, 0.15, time.Second)

	_, err := src.Read(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestMovingFailsClosed(t *testing.T) {
	// An unreadable accelerometer must not block immobilization, so the
	// predicate reports "not moving" on any failure.
	broken := NewMotionSource(&fakeAccel{err: errors.New("i2c timeout")}, 0.15, time.Second)
	assert.False(t, broken.Moving(context.Background()))

	missing := NewMotionSource(nil, 0.15, time.Second)
	assert.False(t, missing.Moving(context.Background()))
}

// ctxAccel honors ctx cancellation like a real bus transaction would.
type ctxAccel struct {
	ax, ay, az float64
}

func (c *ctxAccel) ReadAccel(ctx context.Context) (float64, float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, 0, err
	}
	return c.ax, c.ay, c.az, nil
}

func TestMovingSurvivesCallerCancellation(t *testing.T) {
	// A disconnected caller cancels its request context; the safety read
	// must still complete and report the real motion state.
	src := NewMotionSource(&ctxAccel{ax: 0.5, ay: 0.5, az: 1.0}, 0.15, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, src.Moving(ctx))
}

func TestMovingLivePredicate(t *testing.T) {
	src := NewMotionSource(&fakeAccel{az: 1.0}, 0.15, time.Second)
	assert.False(t, src.Moving(context.Background()))

	src = NewMotionSource(&fakeAccel{ax: 0.5, ay: 0.5, az: 1.0}, 0.15, time.Second)
	assert.True(t, src.Moving(context.Background()))
}
