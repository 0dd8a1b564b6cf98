package sensor

import (
	"context"
	"time"
)

// Snapshot is the joined set of all readings for one poll cycle.
// Nil fields mean the sensor was unavailable or the read failed.
// A Snapshot is immutable once the Collector returns it.
type Snapshot struct {
	EngineTempC     *float64
	BatteryVoltage  *float64
	TirePressureKPa *float64
	GPSLat          *float64
	GPSLon          *float64
	Moving          *bool
	CapturedAt      time.Time
}

// Reading is one sensor's output for one poll cycle. Exactly the fields
// matching the source kind are set; the rest stay nil.
type Reading struct {
	// Scalar carries temperature, voltage and pressure values.
	Scalar *float64
	// Lat/Lon carry the position fix.
	Lat *float64
	Lon *float64
	// Moving carries the motion predicate result.
	Moving *bool
}

// Source is the polymorphic sensor capability: produce one reading, possibly
// absent, within a bounded time.
//
// Implementations must honor ctx cancellation and return an error instead of
// panicking; all failures are converted to absent by the Collector. Sources
// share no state and are safe to call concurrently with each other.
type Source interface {
	// Name returns the stable sensor name used in snapshots and metrics.
	Name() string

	// Timeout returns the per-source read bound enforced by the Collector.
	Timeout() time.Duration

	// Read produces one reading.
	Read(ctx context.Context) (Reading, error)
}

// Well-known source names.
const (
	NameEngineTemp   = "engine_temp"
	NameBattery      = "battery_voltage"
	NameTirePressure = "tire_pressure"
	NamePosition     = "gps"
	NameMotion       = "motion"
)

// scalar is a convenience constructor for single-value readings.
func scalar(v float64) Reading {
	return Reading{Scalar: &v}
}
