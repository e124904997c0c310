package commands

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/devreg/devreg-go/pkg/log"
)

// record is the JSON form of an event.
type record struct {
	Timestamp  string `json:"timestamp"`
	SessionID  string `json:"session_id"`
	Direction  string `json:"direction"`
	Category   string `json:"category"`
	Device     string `json:"device,omitempty"`
	Register   string `json:"register,omitempty"`
	Address    string `json:"address,omitempty"`
	Access     string `json:"access,omitempty"`
	Data       string `json:"data,omitempty"`
	DurationNS int64  `json:"duration_ns,omitempty"`
	Error      string `json:"error,omitempty"`
}

func toRecord(e log.Event) record {
	return record{
		Timestamp:  e.Timestamp.UTC().Format(timestampLayout),
		SessionID:  e.SessionID,
		Direction:  e.Direction.String(),
		Category:   e.Category.String(),
		Device:     e.Device,
		Register:   e.Register,
		Address:    e.Address,
		Access:     e.Access,
		Data:       hex.EncodeToString(e.Data),
		DurationNS: e.Duration.Nanoseconds(),
		Error:      e.Error,
	}
}

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toRecord(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "direction", "category", "device", "register", "address", "access", "data", "duration_ns", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		r := toRecord(event)
		row := []string{
			r.Timestamp,
			r.SessionID,
			r.Direction,
			r.Category,
			r.Device,
			r.Register,
			r.Address,
			r.Access,
			r.Data,
			strconv.FormatInt(r.DurationNS, 10),
			r.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return cw.Error()
}
