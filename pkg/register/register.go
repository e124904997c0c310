package register

// Register binds a Go type to one address of type A.
//
// RegisterAddress must return a constant and should be declared on the value
// receiver, so that the zero value of a register type already knows where it
// lives.
type Register[A comparable] interface {
	RegisterAddress() A
}

// Readable marks a register that may be read.
type Readable[A comparable] interface {
	Register[A]
	ReadableRegister()
}

// Writable marks a register that may be written wholesale.
type Writable[A comparable] interface {
	Register[A]
	WritableRegister()
}

// Editable marks a register that supports read-modify-write.
// Some registers have reserved bits; editing changes only the known fields
// and writes the rest back as read.
type Editable[A comparable] interface {
	Register[A]
	EditableRegister()
}

// ReadablePtr constrains P to *R where R is a readable register.
type ReadablePtr[R any, A comparable] interface {
	*R
	Readable[A]
}

// WritablePtr constrains P to *R where R is a writable register.
type WritablePtr[R any, A comparable] interface {
	*R
	Writable[A]
}

// EditablePtr constrains P to *R where R is an editable register.
type EditablePtr[R any, A comparable] interface {
	*R
	Editable[A]
}

// AddressOf returns the address of the register type R without a value.
//
//	addr := register.AddressOf[Config]()
func AddressOf[R Register[A], A comparable]() A {
	var zero R
	return zero.RegisterAddress()
}
