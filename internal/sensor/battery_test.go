package sensor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeADC struct {
	raw     int
	err     error
	channel int
}

func (f *fakeADC) ReadChannel(ctx context.Context, channel int) (int, error) {
	f.channel = channel
	return f.raw, f.err
}

func TestBatteryVoltageScaling(t *testing.T) {
	// Full scale on a 10-bit ADC with a 2:1 divider reads the full pack
	// voltage: 3.3 V reference * 2.0 ratio.
	adc := &fakeADC{raw: 1023}
	src := NewBatteryVoltageSource(adc, 0, 1023, 3.3, 2.0, time.Second)

	reading, err := src.Read(context.Background())
	require.NoError(t, err)
	require.NotNil(t, reading.Scalar)
	assert.InDelta(t, 6.6, *reading.Scalar, 1e-9)
	assert.Equal(t, 0, adc.channel)
}

func TestBatteryVoltageMidScaleRounding(t *testing.T) {
	src := NewBatteryVoltageSource(&fakeADC{raw: 512}, 2, 1023, 3.3, 2.0, time.Second)

	reading, err := src.Read(context.Background())
	require.NoError(t, err)
	require.NotNil(t, reading.Scalar)
	// 512/1023 * 3.3 * 2.0 = 3.3032... rounds to two decimals.
	assert.InDelta(t, 3.30, *reading.Scalar, 1e-9)
}

func TestBatteryVoltageNilADC(t *testing.T) {
	src := NewBatteryVoltageSource(nil, 0, 1023, 3.3, 2.0, time.Second)

	_, err := src.Read(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestBatteryVoltageReadError(t *testing.T) {
	src := NewBatteryVoltageSource(&fakeADC{err: errors.New("spi failure")}, 0, 1023, 3.3, 2.0, time.Second)

	_, err := src.Read(context.Background())
	require.Error(t, err)
}

func TestBatteryVoltageRawOutOfRange(t *testing.T) {
	src := NewBatteryVoltageSource(&fakeADC{raw: 2048}, 0, 1023, 3.3, 2.0, time.Second)

	_, err := src.Read(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}
