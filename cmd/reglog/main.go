// Command reglog views and analyzes register capture files.
//
// Capture files are written by regshell -capture, or by any program that
// wraps its transport with capture.Wrap and a log.FileLogger.
//
// Usage:
//
//	reglog <command> [flags] <file.rlog>
//
// Commands:
//
//	view     View capture file in human-readable format
//	export   Export capture file to JSON Lines or CSV
//	filter   Filter capture file and write to new file
//	stats    Show per-register statistics
//
// Examples:
//
//	# View all accesses
//	reglog view session.rlog
//
//	# View only failed accesses to one register
//	reglog view -category error -register Config session.rlog
//
//	# Export to JSONL
//	reglog export -format jsonl session.rlog
//
//	# Keep one session and save to new file
//	reglog filter -session 0b5e1f0c-7a43-4b0e-9a0d-2f1f1b7f5c11 -o one.rlog session.rlog
//
//	# Show statistics
//	reglog stats session.rlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/devreg/devreg-go/cmd/reglog/commands"
)

const usage = `reglog - Register Capture Analyzer

Usage:
  reglog <command> [flags] <file.rlog>

Commands:
  view     View capture file in human-readable format
  export   Export capture file to JSON Lines or CSV
  filter   Filter capture file and write to new file
  stats    Show per-register statistics

Use "reglog <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the selection flags shared by view and filter.
func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.Device, "device", "", "Filter by device name")
	fs.StringVar(&opts.Register, "register", "", "Filter by register name")
	fs.StringVar(&opts.Address, "addr", "", "Filter by address as printed by view")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (read, write, error)")
	return opts
}

func newFlagSet(name, summary, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "reglog %s - %s\n\nUsage:\n  reglog %s\n\nFlags:\n", name, summary, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses args and returns the capture file path.
func parse(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := newFlagSet("view", "View capture file in human-readable format", "view [flags] <file.rlog>")
	opts := filterFlags(fs)
	path := parse(fs, args)

	filter, err := opts.Build()
	if err != nil {
		fail(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export capture file to JSON Lines or CSV", "export [flags] <file.rlog>")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path := parse(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter capture file and write to new file", "filter [flags] -o <out.rlog> <file.rlog>")
	output := fs.String("o", "", "Output file (required)")
	opts := filterFlags(fs)
	path := parse(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}
	if err := commands.RunFilter(path, *output, *opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show per-register statistics", "stats <file.rlog>")
	path := parse(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
