package log

import (
	"strings"
	"time"
)

// Event is one raw register access as seen by a transport.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the access started (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the transport handle that performed the access.
	SessionID string `cbor:"2,keyasint"`

	// Direction of the data: IN for reads, OUT for writes.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// Device names the device behind the transport.
	Device string `cbor:"5,keyasint,omitempty"`

	// Register is the Go type of the register accessed, or the name a
	// run-time register reports for itself.
	Register string `cbor:"6,keyasint,omitempty"`

	// Address is the register address, formatted.
	Address string `cbor:"7,keyasint,omitempty"`

	// Access is the permission set the register declares ("RWE").
	Access string `cbor:"8,keyasint,omitempty"`

	// Data is the register encoding, when the register has one.
	Data []byte `cbor:"9,keyasint,omitempty"`

	// Duration of the raw call.
	Duration time.Duration `cbor:"10,keyasint,omitempty"`

	// Error is the transport error text for CategoryError events.
	Error string `cbor:"11,keyasint,omitempty"`
}

// Direction indicates which way register data moved.
type Direction uint8

const (
	// DirectionIn is data read from the device.
	DirectionIn Direction = 0
	// DirectionOut is data written to the device.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection parses "in" or "out", ignoring case.
func ParseDirection(s string) (Direction, bool) {
	switch {
	case strings.EqualFold(s, "in"):
		return DirectionIn, true
	case strings.EqualFold(s, "out"):
		return DirectionOut, true
	default:
		return 0, false
	}
}

// Category classifies an event.
type Category uint8

const (
	// CategoryRead is a successful raw read.
	CategoryRead Category = 0
	// CategoryWrite is a successful raw write.
	CategoryWrite Category = 1
	// CategoryError is a raw access the transport failed.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRead:
		return "READ"
	case CategoryWrite:
		return "WRITE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name, ignoring case.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CategoryRead, CategoryWrite, CategoryError} {
		if strings.EqualFold(s, c.String()) {
			return c, true
		}
	}
	return 0, false
}
