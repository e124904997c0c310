package log

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects events. Zero-valued fields match every event.
type Filter struct {
	// SessionID matches exactly.
	SessionID string

	Direction *Direction
	Category  *Category

	// TimeStart matches events at or after this time.
	TimeStart *time.Time

	// TimeEnd matches events before this time.
	TimeEnd *time.Time

	// Device matches exactly.
	Device string

	// Register matches the register type name, ignoring case. A name
	// without a package qualifier also matches qualified names.
	Register string

	// Address matches the formatted address, ignoring case. Numeric
	// addresses match by value, so "0x10" selects events recorded as "16".
	Address string
}

// Match reports whether the event satisfies every criterion.
func (f *Filter) Match(event Event) bool {
	if f.SessionID != "" && event.SessionID != f.SessionID {
		return false
	}
	if f.Direction != nil && event.Direction != *f.Direction {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	if f.Device != "" && event.Device != f.Device {
		return false
	}
	if f.Register != "" && !registerMatches(event.Register, f.Register) {
		return false
	}
	if f.Address != "" && !addressMatches(event.Address, f.Address) {
		return false
	}
	return true
}

// registerMatches compares "*sensor.Config" with "Config" or "sensor.Config".
func registerMatches(have, want string) bool {
	have = strings.TrimPrefix(have, "*")
	if strings.EqualFold(have, want) {
		return true
	}
	if i := strings.LastIndexByte(have, '.'); i >= 0 {
		return strings.EqualFold(have[i+1:], want)
	}
	return false
}

func addressMatches(have, want string) bool {
	if strings.EqualFold(have, want) {
		return true
	}
	h, err := strconv.ParseUint(have, 0, 64)
	if err != nil {
		return false
	}
	w, err := strconv.ParseUint(want, 0, 64)
	return err == nil && h == w
}

// Reader streams events from a capture file.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader opens a capture file for reading all events.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens a capture file for reading events that match
// filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: NewDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if r.filter.Match(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// ReadAll returns every event of a capture file that matches filter.
func ReadAll(path string, filter Filter) ([]Event, error) {
	r, err := NewFilteredReader(path, filter)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var events []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
}
