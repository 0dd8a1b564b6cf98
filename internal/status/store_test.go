package status

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vehicle-control/vcc/internal/sensor"
)

func f64(v float64) *float64 { return &v }

func TestApplySnapshotReplacesSensorFields(t *testing.T) {
	store := NewStore()
	moving := false
	now := time.Unix(1700000000, 0)

	record := store.ApplySnapshot(sensor.Snapshot{
		EngineTempC:    f64(82.5),
		BatteryVoltage: f64(12.6),
		Moving:         &moving,
	}, now)

	if record.EngineTempC == nil || *record.EngineTempC != 82.5 {
		t.Errorf("Expected engine temp 82.5, got %v", record.EngineTempC)
	}
	if record.Timestamp != 1700000000 {
		t.Errorf("Expected timestamp 1700000000, got %d", record.Timestamp)
	}
	if record.TirePressureKPa != nil {
		t.Error("Expected absent tire pressure to stay nil")
	}
}

func TestApplySnapshotClearsStaleFields(t *testing.T) {
	store := NewStore()
	store.ApplySnapshot(sensor.Snapshot{EngineTempC: f64(82.5)}, time.Now())

	// The sensor dropped out in the next cycle; the stale value must not
	// survive.
	record := store.ApplySnapshot(sensor.Snapshot{}, time.Now())

	if record.EngineTempC != nil {
		t.Errorf("Expected stale engine temp to be cleared, got %v", *record.EngineTempC)
	}
}

func TestApplySnapshotPreservesImmobilizationFlag(t *testing.T) {
	store := NewStore()
	store.SetImmobilized(true)

	record := store.ApplySnapshot(sensor.Snapshot{}, time.Now())

	if !record.Immobilized {
		t.Error("Expected immobilization flag to survive snapshot application")
	}
}

func TestRecordWireFormat(t *testing.T) {
	store := NewStore()
	store.SetImmobilized(true)
	record := store.ApplySnapshot(sensor.Snapshot{EngineTempC: f64(82.5)}, time.Unix(1700000000, 0))

	payload, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	got := string(payload)
	for _, want := range []string{
		`"engine_temp_c":82.5`,
		`"battery_voltage":null`,
		`"tire_pressure_kpa":null`,
		`"gps_lat":null`,
		`"gps_lon":null`,
		`"moving":null`,
		`"immobilization_status":true`,
		`"timestamp":1700000000`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected payload to contain %s, got %s", want, got)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				store.ApplySnapshot(sensor.Snapshot{EngineTempC: f64(float64(i))}, time.Now())
			case 1:
				store.SetImmobilized(i%2 == 0)
			default:
				_ = store.Get()
			}
		}(i)
	}
	wg.Wait()
}
