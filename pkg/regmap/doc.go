// Package regmap provides an in-memory register file that serves as a
// register.Interface transport.
//
// Memory stores raw bytes per address. Registers it serves must implement
// encoding.BinaryMarshaler to be written and encoding.BinaryUnmarshaler to be
// read; how the bytes map onto fields is up to the register type.
//
//	mem := regmap.New[uint8]().
//		Define(0x01, []byte{0x00, 0x00}).
//		Define(0x02, []byte{0x00, 0x00})
//
//	_ = register.Write(mem, Register1(0x0042))
//	r, _ := register.Read[Register1](mem)
//
// Memory records how often each address was read and written and can inject
// faults, which makes it the usual stand-in for a device in tests.
package regmap
