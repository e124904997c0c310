package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/devreg/devreg-go/pkg/log"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Sessions          map[string]int
	Registers         map[string]*RegisterStats
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// RegisterStats holds statistics for one register.
type RegisterStats struct {
	Address string
	Reads   int
	Writes  int
	Errors  int

	// Busy is the total time spent in raw calls.
	Busy time.Duration
}

// Mean returns the average duration of one access.
func (r *RegisterStats) Mean() time.Duration {
	n := r.Reads + r.Writes + r.Errors
	if n == 0 {
		return 0
	}
	return r.Busy / time.Duration(n)
}

// Collect reads a capture file and aggregates its events.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Sessions:          make(map[string]int),
		Registers:         make(map[string]*RegisterStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++
		stats.EventsByDirection[event.Direction]++
		stats.Sessions[event.SessionID]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		reg, ok := stats.Registers[event.Register]
		if !ok {
			reg = &RegisterStats{Address: event.Address}
			stats.Registers[event.Register] = reg
		}
		switch event.Category {
		case log.CategoryRead:
			reg.Reads++
		case log.CategoryWrite:
			reg.Writes++
		case log.CategoryError:
			reg.Errors++
		}
		reg.Busy += event.Duration
	}
	return stats, nil
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Register Capture Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Sessions:     %d\n", len(stats.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryRead, log.CategoryWrite, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}

	if len(stats.Registers) == 0 {
		return
	}
	names := make([]string, 0, len(stats.Registers))
	for name := range stats.Registers {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Registers:")
	for _, name := range names {
		r := stats.Registers[name]
		fmt.Fprintf(w, "  %s @%s: %d reads, %d writes", name, r.Address, r.Reads, r.Writes)
		if r.Errors > 0 {
			fmt.Fprintf(w, ", %d errors", r.Errors)
		}
		if mean := r.Mean(); mean > 0 {
			fmt.Fprintf(w, ", mean %s", formatDuration(mean))
		}
		fmt.Fprintln(w)
	}
}
