package sensor

import (
	"context"
	"fmt"
	"math"
	"time"
)

// ADC is the injected analog-to-digital converter handle. The SPI framing
// behind it is a platform concern and not modeled here.
type ADC interface {
	// ReadChannel samples one channel and returns the raw conversion value.
	ReadChannel(ctx context.Context, channel int) (int, error)
}

// BatteryVoltageSource converts a raw ADC sample into battery volts using
// the reference voltage and the external divider network ratio.
type BatteryVoltageSource struct {
	adc          ADC
	channel      int
	maxValue     float64
	refVoltage   float64
	dividerRatio float64
	timeout      time.Duration
}

// NewBatteryVoltageSource creates the battery source. A nil adc is allowed;
// the source then reports unavailable on Read.
func NewBatteryVoltageSource(adc ADC, channel int, maxValue, refVoltage, dividerRatio float64, timeout time.Duration) *BatteryVoltageSource {
	return &BatteryVoltageSource{
		adc:          adc,
		channel:      channel,
		maxValue:     maxValue,
		refVoltage:   refVoltage,
		dividerRatio: dividerRatio,
		timeout:      timeout,
	}
}

// Name implements Source.
func (s *BatteryVoltageSource) Name() string { return NameBattery }

// Timeout implements Source.
func (s *BatteryVoltageSource) Timeout() time.Duration { return s.timeout }

// Read samples the ADC and scales the raw value to volts, rounded to two
// decimals.
func (s *BatteryVoltageSource) Read(ctx context.Context) (Reading, error) {
	if s.adc == nil {
		return Reading{}, ErrUnavailable
	}

	raw, err := s.adc.ReadChannel(ctx, s.channel)
	if err != nil {
		return Reading{}, fmt.Errorf("ADC read failed: %w", err)
	}
	if raw < 0 || float64(raw) > s.maxValue {
		return Reading{}, fmt.Errorf("%w: raw value %d outside [0, %.0f]", ErrMalformed, raw, s.maxValue)
	}

	volts := (float64(raw) / s.maxValue) * s.refVoltage * s.dividerRatio
	return scalar(math.Round(volts*100) / 100), nil
}
