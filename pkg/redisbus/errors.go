package redisbus

import "errors"

var (
	// ErrNoSuchAddress is returned when the hash has no field for an address.
	ErrNoSuchAddress = errors.New("no register at address")

	// ErrUnsupportedRegister is returned for registers without a binary
	// encoding.
	ErrUnsupportedRegister = errors.New("register has no binary encoding")

	// ErrWidthMismatch is returned when a write's encoding differs in length
	// from the stored value.
	ErrWidthMismatch = errors.New("register width mismatch")

	// ErrConflict is returned by Exclusive when another client modified the
	// register file before fn's writes were applied.
	ErrConflict = errors.New("register file changed concurrently")
)
