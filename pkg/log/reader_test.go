package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestCapture(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.rlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create capture: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()
	return path
}

func testEvents(base time.Time) []Event {
	return []Event{
		{Timestamp: base, SessionID: "a", Device: "sensor", Direction: DirectionIn, Category: CategoryRead, Register: "*examples.Config", Address: "1"},
		{Timestamp: base.Add(time.Second), SessionID: "a", Device: "sensor", Direction: DirectionOut, Category: CategoryWrite, Register: "*examples.Config", Address: "1"},
		{Timestamp: base.Add(2 * time.Second), SessionID: "b", Device: "sensor", Direction: DirectionIn, Category: CategoryError, Register: "*examples.Status", Address: "2", Error: "nack"},
		{Timestamp: base.Add(3 * time.Second), SessionID: "b", Device: "adc", Direction: DirectionIn, Category: CategoryRead, Register: "*adc.Status", Address: "16"},
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	base := time.Now()
	path := createTestCapture(t, testEvents(base))

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 4 {
		t.Fatalf("got %d events, want 4", len(read))
	}
	if read[2].Error != "nack" {
		t.Errorf("third event Error = %q, want nack", read[2].Error)
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestCapture(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next on empty file = %v, want io.EOF", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "none.rlog")); err == nil {
		t.Error("NewReader should fail for a missing file")
	}
}

func TestFilter(t *testing.T) {
	base := time.Now()
	path := createTestCapture(t, testEvents(base))

	in := DirectionIn
	errCat := CategoryError
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"none", Filter{}, 4},
		{"session", Filter{SessionID: "a"}, 2},
		{"direction", Filter{Direction: &in}, 3},
		{"category", Filter{Category: &errCat}, 1},
		{"device", Filter{Device: "adc"}, 1},
		{"register bare name", Filter{Register: "status"}, 2},
		{"register qualified", Filter{Register: "examples.Status"}, 1},
		{"address", Filter{Address: "1"}, 2},
		{"address hex", Filter{Address: "0x01"}, 2},
		{"address by value", Filter{Address: "0x10"}, 1},
		{"address no match", Filter{Address: "0x03"}, 0},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{Device: "sensor", Direction: &in}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := ReadAll(path, tt.filter)
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d", len(events), tt.want)
			}
		})
	}
}
