// Package log captures raw register accesses.
//
// Capture is separate from operational logging (slog): every raw read and
// write that reaches a transport becomes one Event, giving a complete,
// machine-readable trace of what was exchanged with a device.
//
// Capture is enabled by wrapping a transport (see package capture) with a
// Logger:
//
//	// Development: trace accesses on the console
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// Bench rigs: keep a binary capture file
//	logger, _ := log.NewFileLogger("/var/log/devreg/sensor.rlog")
//
//	// Both
//	logger := log.NewMultiLogger(console, file)
//
// # File Format
//
// Capture files are a stream of CBOR-encoded events with integer keys and
// use the .rlog extension. The reglog tool views, filters and exports them.
package log
