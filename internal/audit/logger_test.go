//
//
package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLogActionWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer logger.Close()

	logger.LogAction("immobilize", "api", "SUCCESS", "corr-1", 12*time.Millisecond)
	logger.LogAction("immobilize", "mqtt", "SAFETY_REFUSED", "corr-2", 3*time.Millisecond)

	file, err := os.Open(logger.GetFilePath())
	if err != nil {
		t.Fatalf("Failed to open audit log: %v", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("Line is not valid JSON: %v (%s)", err, scanner.Text())
		}
		entries = append(entries, entry)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != "immobilize" || entries[0].Origin != "api" || entries[0].Outcome != "SUCCESS" {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[0].CorrelationID != "corr-1" {
		t.Errorf("Expected correlation ID corr-1, got %s", entries[0].CorrelationID)
	}
	if entries[0].LatencyMs != 12 {
		t.Errorf("Expected latency 12ms, got %d", entries[0].LatencyMs)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("Expected a timestamp")
	}
	if entries[1].Outcome != "SAFETY_REFUSED" {
		t.Errorf("Expected refused outcome, got %s", entries[1].Outcome)
	}
}

func TestLoggerAppendsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	first.LogAction("immobilize", "api", "SUCCESS", "corr-1", time.Millisecond)
	first.Close()

	second, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	second.LogAction("resume", "api", "SUCCESS", "corr-2", time.Millisecond)
	second.Close()

	data, err := os.ReadFile(second.GetFilePath())
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("Expected 2 lines after restart, got %d", lines)
	}
}

func TestLogAfterCloseIsNoOp(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	logger.Close()

	// Must not panic or recreate the file handle.
	logger.LogAction("resume", "api", "SUCCESS", "corr-1", time.Millisecond)
}

func TestRotate(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer logger.Close()

	logger.LogAction("immobilize", "api", "SUCCESS", "corr-1", time.Millisecond)

	if err := logger.Rotate(); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}

	logger.LogAction("resume", "api", "SUCCESS", "corr-2", time.Millisecond)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to list log dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected rotated and current file, got %d files", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dir, "actuation.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read current log: %v", err)
	}
	var entry Entry
	if err := json.Unmarshal(data[:len(data)-1], &entry); err != nil {
		t.Fatalf("Current log entry not valid JSON: %v", err)
	}
	if entry.Action != "resume" {
		t.Errorf("Expected only the post-rotate entry, got %s", entry.Action)
	}
}
