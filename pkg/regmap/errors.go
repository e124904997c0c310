package regmap

import "errors"

// Register file errors.
var (
	// ErrNoSuchAddress is returned when no register is defined at an address.
	ErrNoSuchAddress = errors.New("no register at address")

	// ErrUnsupportedRegister is returned for registers without a binary encoding.
	ErrUnsupportedRegister = errors.New("register has no binary encoding")

	// ErrWidthMismatch is returned when an encoded register does not match
	// the width of the stored register.
	ErrWidthMismatch = errors.New("register width mismatch")
)
