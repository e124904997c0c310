// Package register implements permission-typed access to device registers.
//
// # Registers
//
// A register is a Go type bound to exactly one address in an address space:
//
//	type Config uint16
//
//	func (Config) RegisterAddress() uint8 { return 0x01 }
//
// The address type (uint8 above) is part of the register's identity. A
// transport serves a single address space, so a register declared in one
// space cannot be handed to a transport of another.
//
// # Permissions
//
// A register additionally carries zero or more permission markers:
//
//	func (Config) ReadableRegister() {}
//	func (Config) WritableRegister() {}
//	func (Config) EditableRegister() {}
//
// The markers gate the derived operations at compile time: Read needs
// Readable, Write needs Writable and Edit needs Editable. Using an operation
// a register does not declare is a type error, not a runtime failure.
//
// Editable registers are read, transformed and written back. This is how
// registers with reserved bits are modified without writing garbage into the
// reserved positions.
//
// The bindings are normally generated by cmd/regbind from a directive:
//
//	//register:rw addr=0x01
//	type Config uint16
//
// # Transports
//
// A transport implements Interface for its address space. It receives the
// register as a pointer and decodes into it or encodes from it; the wire
// encoding is entirely the transport's business. Interface methods are raw
// and ignore permissions, so application code should call Read, Write and
// Edit instead.
//
// This package performs no I/O, no retries and no caching. Transport errors
// are returned to the caller unchanged.
//
// See package async for the context-aware variant.
package register
