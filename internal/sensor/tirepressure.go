package sensor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// TPMSCapture captures tire-pressure broadcasts for the given window and
// returns the receiver's raw line-oriented JSON output. Injected so tests do
// not need the receiver binary on PATH.
type TPMSCapture func(ctx context.Context, window time.Duration) ([]byte, error)

// TirePressureSource obtains tire pressure from sub-GHz TPMS broadcasts via
// a best-effort external receiver invocation. It is the slowest source: one
// read occupies a full capture window.
type TirePressureSource struct {
	sensorID string
	window   time.Duration
	timeout  time.Duration
	capture  TPMSCapture
}

// NewTirePressureSource creates the tire pressure source using the rtl_433
// receiver. Pass a non-nil capture to override the process invocation.
func NewTirePressureSource(sensorID string, window, timeout time.Duration, capture TPMSCapture) *TirePressureSource {
	if capture == nil {
		capture = runRTL433
	}
	return &TirePressureSource{
		sensorID: sensorID,
		window:   window,
		timeout:  timeout,
		capture:  capture,
	}
}

// Name implements Source.
func (s *TirePressureSource) Name() string { return NameTirePressure }

// Timeout implements Source.
func (s *TirePressureSource) Timeout() time.Duration { return s.timeout }

// Read captures one receiver window and scans its output for a pressure
// report from the configured sensor id.
func (s *TirePressureSource) Read(ctx context.Context) (Reading, error) {
	out, err := s.capture(ctx, s.window)
	if err != nil {
		return Reading{}, fmt.Errorf("TPMS capture failed: %w", err)
	}

	pressure, ok := scanTPMSOutput(out, s.sensorID)
	if !ok {
		return Reading{}, fmt.Errorf("%w: no report from sensor %s", ErrNoReading, s.sensorID)
	}
	return scalar(pressure), nil
}

// runRTL433 invokes the receiver binary with a bounded capture window.
func runRTL433(ctx context.Context, window time.Duration) ([]byte, error) {
	seconds := int(window.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}

	cmd := exec.CommandContext(ctx, "rtl_433", "-F", "json", "-T", strconv.Itoa(seconds))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// scanTPMSOutput finds the first pressure report from sensorID in the
// receiver's JSON line output. Non-JSON lines and reports from other
// sensors are skipped.
func scanTPMSOutput(out []byte, sensorID string) (float64, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}

		var report map[string]interface{}
		if err := json.Unmarshal(line, &report); err != nil {
			continue
		}
		if tpmsReportID(report) != sensorID {
			continue
		}
		if pressure, ok := tpmsReportPressure(report); ok {
			return pressure, true
		}
	}
	return 0, false
}

// tpmsReportID extracts the sensor identifier, tolerating the id key
// variants different TPMS protocols emit.
func tpmsReportID(report map[string]interface{}) string {
	for _, key := range []string{"id", "sensor_id", "ID"} {
		if v, ok := report[key]; ok {
			switch id := v.(type) {
			case string:
				return id
			case float64:
				return strconv.FormatFloat(id, 'f', -1, 64)
			}
		}
	}
	return ""
}

// tpmsReportPressure extracts the pressure value in kPa, tolerating the
// pressure key variants different TPMS protocols emit.
func tpmsReportPressure(report map[string]interface{}) (float64, bool) {
	for _, key := range []string{"pressure_kPa", "kPa", "pressure"} {
		if v, ok := report[key]; ok {
			switch p := v.(type) {
			case float64:
				return p, true
			case string:
				if f, err := strconv.ParseFloat(p, 64); err == nil {
					return f, true
				}
			}
		}
	}
	return 0, false
}
