package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/devreg/devreg-go/pkg/log"
)

const (
	sessA = "0b5e1f0c-7a43-4b0e-9a0d-2f1f1b7f5c11"
	sessB = "9d1c0a5e-2b6f-4f7e-8c3d-6a5b4c3d2e1f"
)

var base = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.rlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// sampleEvents is an edit of Config, a read of Status and a failed read.
func sampleEvents() []log.Event {
	return []log.Event{
		{
			Timestamp: base, SessionID: sessA, Direction: log.DirectionIn, Category: log.CategoryRead,
			Device: "sensor", Register: "*examples.Config", Address: "CONFIG", Access: "RWE",
			Data: []byte{0x7F, 0x80}, Duration: 120 * time.Microsecond,
		},
		{
			Timestamp: base.Add(time.Millisecond), SessionID: sessA, Direction: log.DirectionOut, Category: log.CategoryWrite,
			Device: "sensor", Register: "*examples.Config", Address: "CONFIG", Access: "RWE",
			Data: []byte{0xFF, 0xB2}, Duration: 80 * time.Microsecond,
		},
		{
			Timestamp: base.Add(2 * time.Millisecond), SessionID: sessB, Direction: log.DirectionIn, Category: log.CategoryRead,
			Device: "sensor", Register: "*examples.Status", Address: "STATUS", Access: "R",
			Data: []byte{0x01}, Duration: 50 * time.Microsecond,
		},
		{
			Timestamp: base.Add(3 * time.Second), SessionID: sessB, Direction: log.DirectionIn, Category: log.CategoryError,
			Device: "sensor", Register: "*examples.Data", Address: "DATA", Access: "R",
			Error: "sensor read DATA: nack", Duration: 2 * time.Millisecond,
		},
	}
}
