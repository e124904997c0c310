package examples

import (
	"errors"
	"fmt"
)

// ErrUnmappedAddress is returned for addresses the sensor does not decode.
var ErrUnmappedAddress = errors.New("address not mapped")

// BusError reports a failed transfer to or from the sensor.
type BusError struct {
	Op   string // "read" or "write"
	Addr Address
	Err  error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("sensor %s %v: %v", e.Op, e.Addr, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }
