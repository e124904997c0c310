// Package commands implements the reglog CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/devreg/devreg-go/pkg/log"
)

// timestampLayout is used by view and export.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sess:id] DIRECTION CATEGORY register @addr
	ts := event.Timestamp.UTC().Format(timestampLayout)
	fmt.Fprintf(w, "%s [sess:%s] %-3s %-5s %s @%s\n",
		ts, shortenID(event.SessionID), event.Direction, event.Category, event.Register, event.Address)

	if event.Device != "" {
		fmt.Fprintf(w, "  Device: %s\n", event.Device)
	}
	if event.Access != "" {
		fmt.Fprintf(w, "  Access: %s\n", event.Access)
	}
	if len(event.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s\n", hex.EncodeToString(event.Data))
	}
	if event.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(event.Duration))
	}
	if event.Error != "" {
		fmt.Fprintf(w, "  Error: %s\n", event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseDirectionFlag parses a direction string from a command-line flag.
func ParseDirectionFlag(s string) (log.Direction, error) {
	d, ok := log.ParseDirection(s)
	if !ok {
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
	return d, nil
}

// ParseCategoryFlag parses a category string from a command-line flag.
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be read, write or error)", s)
	}
	return c, nil
}

// RunView prints the events of a capture file matching filter.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}
