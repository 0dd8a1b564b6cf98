package status

import (
	"sync"
	"time"

	"github.com/vehicle-control/vcc/internal/sensor"
)

// Record is the aggregated status published each cycle and served by the
// local API. Nil pointers serialize as JSON null, never as an error.
// Field names are the fixed wire contract of the telemetry topic.
type Record struct {
	EngineTempC     *float64 `json:"engine_temp_c"`
	BatteryVoltage  *float64 `json:"battery_voltage"`
	TirePressureKPa *float64 `json:"tire_pressure_kpa"`
	GPSLat          *float64 `json:"gps_lat"`
	GPSLon          *float64 `json:"gps_lon"`
	Moving          *bool    `json:"moving"`
	Immobilized     bool     `json:"immobilization_status"`
	Timestamp       int64    `json:"timestamp"`
}

// Store guards the Status Record for concurrent read/write.
//
// The immobilization flag is written only by the actuation gate, which keeps
// it equal to the physical relay state; the store never derives it.
type Store struct {
	mu     sync.RWMutex
	record Record
}

// NewStore creates a store with all telemetry fields absent and the
// immobilization flag clear.
func NewStore() *Store {
	return &Store{}
}

// ApplySnapshot replaces the sensor fields of the record with the given
// snapshot, stamps the record with now, and returns a consistent copy for
// publication. Fields absent in the snapshot become absent in the record.
func (s *Store) ApplySnapshot(snap sensor.Snapshot, now time.Time) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.EngineTempC = snap.EngineTempC
	s.record.BatteryVoltage = snap.BatteryVoltage
	s.record.TirePressureKPa = snap.TirePressureKPa
	s.record.GPSLat = snap.GPSLat
	s.record.GPSLon = snap.GPSLon
	s.record.Moving = snap.Moving
	s.record.Timestamp = now.Unix()

	return s.record
}

// SetImmobilized records the actuation state. Called by the gate under its
// own transition lock, immediately after the relay write succeeds.
func (s *Store) SetImmobilized(immobilized bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.Immobilized = immobilized
}

// Get returns a consistent copy of the current record.
func (s *Store) Get() Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record
}
