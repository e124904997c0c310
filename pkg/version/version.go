// Package version handles the format version carried by register maps.
//
// A map states the format it was written in as "major.minor", or as a bare
// "major" meaning minor 0. A reader accepts maps of its own major version up
// to its own minor version; a newer minor may use fields the reader would
// silently drop, so it is refused as well.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Current is the newest register map format this module reads and writes.
const Current = "1.0"

// ErrUnsupported is returned by Check for well-formed versions this module
// cannot read.
var ErrUnsupported = errors.New("unsupported register map format")

// Format is a register map format version.
type Format struct {
	Major uint16
	Minor uint16
}

// Parse parses "major" or "major.minor".
func Parse(s string) (Format, error) {
	majorStr, minorStr, hasMinor := strings.Cut(strings.TrimSpace(s), ".")

	major, err := component(majorStr)
	if err != nil {
		return Format{}, fmt.Errorf("invalid version %q: major %w", s, err)
	}
	if !hasMinor {
		return Format{Major: major}, nil
	}
	minor, err := component(minorStr)
	if err != nil {
		return Format{}, fmt.Errorf("invalid version %q: minor %w", s, err)
	}
	return Format{Major: major, Minor: minor}, nil
}

// component parses one unsigned decimal version component.
func component(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.New("must be an unsigned number")
	}
	return uint16(n), nil
}

// String returns the version as "major.minor".
func (f Format) String() string {
	return fmt.Sprintf("%d.%d", f.Major, f.Minor)
}

// Reads reports whether a reader of format f understands maps written in
// format m.
func (f Format) Reads(m Format) bool {
	return f.Major == m.Major && m.Minor <= f.Minor
}

// Check returns an error unless s names a format readable by this module.
// An empty string means Current.
func Check(s string) error {
	if s == "" {
		return nil
	}
	m, err := Parse(s)
	if err != nil {
		return err
	}
	current, _ := Parse(Current)
	if !current.Reads(m) {
		if m.Major == current.Major {
			return fmt.Errorf("%w: %s is newer than %s", ErrUnsupported, m, current)
		}
		return fmt.Errorf("%w: %s (reader is %s)", ErrUnsupported, m, current)
	}
	return nil
}
