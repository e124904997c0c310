package register

// Interface is implemented by a transport serving the address space A.
//
// The register is passed as a pointer. ReadRegister performs one raw read of
// reg.RegisterAddress() and decodes the result into reg; it must not answer
// from a cache. WriteRegister encodes reg and performs one raw write that
// overwrites the whole register.
//
// Both methods ignore permissions. Use Read, Write and Edit from application
// code.
type Interface[A comparable] interface {
	ReadRegister(reg Register[A]) error
	WriteRegister(reg Register[A]) error
}

// Sequencer is implemented by transports that can hold exclusive access
// across several raw operations. Edit runs its read and write inside a single
// Exclusive call when the transport provides one.
type Sequencer[A comparable] interface {
	// Exclusive calls fn with exclusive access to the underlying transport
	// and returns its error.
	Exclusive(fn func(Interface[A]) error) error
}
