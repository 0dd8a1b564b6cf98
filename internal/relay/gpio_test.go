package relay

import (
	"os"
	"path/filepath"
	"testing"
)

// setupExportedPin simulates a pin directory the kernel already populated.
func setupExportedPin(t *testing.T, pin string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, pin), 0o755); err != nil {
		t.Fatalf("Failed to create pin dir: %v", err)
	}
	return dir
}

func TestNewGPIORelayDrivesInactive(t *testing.T) {
	dir := setupExportedPin(t, "gpio21")

	r, err := NewGPIORelay(dir, 21)
	if err != nil {
		t.Fatalf("NewGPIORelay failed: %v", err)
	}

	direction, err := os.ReadFile(filepath.Join(dir, "gpio21", "direction"))
	if err != nil {
		t.Fatalf("Failed to read direction: %v", err)
	}
	if string(direction) != "out" {
		t.Errorf("Expected direction out, got %s", direction)
	}

	value, err := os.ReadFile(filepath.Join(dir, "gpio21", "value"))
	if err != nil {
		t.Fatalf("Failed to read value: %v", err)
	}
	if string(value) != "0" {
		t.Errorf("Expected initial value 0, got %s", value)
	}
	_ = r
}

func TestGPIORelaySet(t *testing.T) {
	dir := setupExportedPin(t, "gpio21")

	r, err := NewGPIORelay(dir, 21)
	if err != nil {
		t.Fatalf("NewGPIORelay failed: %v", err)
	}

	if err := r.Set(true); err != nil {
		t.Fatalf("Set(true) failed: %v", err)
	}
	value, _ := os.ReadFile(filepath.Join(dir, "gpio21", "value"))
	if string(value) != "1" {
		t.Errorf("Expected value 1 after activate, got %s", value)
	}

	if err := r.Set(false); err != nil {
		t.Fatalf("Set(false) failed: %v", err)
	}
	value, _ = os.ReadFile(filepath.Join(dir, "gpio21", "value"))
	if string(value) != "0" {
		t.Errorf("Expected value 0 after deactivate, got %s", value)
	}
}

func TestNewGPIORelayMissingController(t *testing.T) {
	// No export file and no pin directory: construction must fail so the
	// caller can fall back to the no-op relay.
	if _, err := NewGPIORelay(filepath.Join(t.TempDir(), "missing"), 21); err == nil {
		t.Error("Expected error for missing GPIO controller")
	}
}

func TestNoopAcceptsWrites(t *testing.T) {
	var r Relay = Noop{}
	if err := r.Set(true); err != nil {
		t.Errorf("Noop Set failed: %v", err)
	}
}
