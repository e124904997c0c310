package register

import "sync"

// Bus gives callers exclusive use of a transport for the duration of each
// operation. Raw calls are serialized one at a time, and Edit holds the bus
// across its read and write.
//
// Exclusivity ends at the Bus: another handle to the same device, or another
// bus master, can still access the register between an edit's read and
// write.
type Bus[A comparable] struct {
	mu    sync.Mutex
	inner Interface[A]
}

// NewBus wraps a transport.
func NewBus[A comparable](t Interface[A]) *Bus[A] {
	return &Bus[A]{inner: t}
}

// ReadRegister performs one raw read while holding the bus.
func (b *Bus[A]) ReadRegister(reg Register[A]) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inner.ReadRegister(reg)
}

// WriteRegister performs one raw write while holding the bus.
func (b *Bus[A]) WriteRegister(reg Register[A]) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inner.WriteRegister(reg)
}

// Exclusive holds the bus while fn runs. fn receives the wrapped transport
// and must not use the Bus itself, which would deadlock.
func (b *Bus[A]) Exclusive(fn func(Interface[A]) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(b.inner)
}

// Free returns the wrapped transport. The Bus must not be used afterwards.
func (b *Bus[A]) Free() Interface[A] {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.inner
	b.inner = nil
	return t
}

// Compile-time interface satisfaction check.
var (
	_ Interface[uint8] = (*Bus[uint8])(nil)
	_ Sequencer[uint8] = (*Bus[uint8])(nil)
)
