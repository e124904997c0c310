// Package persistence saves the contents of a simulated register file so
// that a device keeps its register values across restarts.
//
// State is stored as JSON keyed by register name, with register bytes in
// hex, so files stay readable and survive address changes in the map.
package persistence
