package regmap

import (
	"bytes"
	"encoding"
	"fmt"
	"sync"

	"github.com/devreg/devreg-go/pkg/register"
)

// Counters holds the number of raw accesses to one address.
type Counters struct {
	Reads  int
	Writes int
}

// Memory is an in-memory register file for the address space A.
// It is safe for concurrent use.
type Memory[A comparable] struct {
	mu          sync.Mutex
	cells       map[A][]byte
	readFaults  map[A]error
	writeFaults map[A]error
	stats       map[A]*Counters
}

// New creates an empty register file.
func New[A comparable]() *Memory[A] {
	return &Memory[A]{
		cells:       make(map[A][]byte),
		readFaults:  make(map[A]error),
		writeFaults: make(map[A]error),
		stats:       make(map[A]*Counters),
	}
}

// Define creates or replaces the register at addr with a copy of data.
// The length of data fixes the register width. Define returns m so that
// definitions can be chained.
func (m *Memory[A]) Define(addr A, data []byte) *Memory[A] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells[addr] = bytes.Clone(data)
	return m
}

// Get returns a copy of the bytes stored at addr without counting an access.
func (m *Memory[A]) Get(addr A) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.cells[addr]
	if !ok {
		return nil, false
	}
	return bytes.Clone(data), true
}

// Len returns the number of defined registers.
func (m *Memory[A]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cells)
}

// FailReads makes every read of addr return err until ClearFaults.
func (m *Memory[A]) FailReads(addr A, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readFaults[addr] = err
}

// FailWrites makes every write of addr return err until ClearFaults.
func (m *Memory[A]) FailWrites(addr A, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeFaults[addr] = err
}

// ClearFaults removes all injected faults.
func (m *Memory[A]) ClearFaults() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.readFaults)
	clear(m.writeFaults)
}

// Stats returns the access counters for addr.
func (m *Memory[A]) Stats(addr A) Counters {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.stats[addr]; ok {
		return *c
	}
	return Counters{}
}

// ResetStats zeroes all access counters.
func (m *Memory[A]) ResetStats() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.stats)
}

func (m *Memory[A]) counters(addr A) *Counters {
	c, ok := m.stats[addr]
	if !ok {
		c = &Counters{}
		m.stats[addr] = c
	}
	return c
}

// ReadRegister decodes the bytes stored at the register's address into reg.
// Injected read faults are returned as given.
func (m *Memory[A]) ReadRegister(reg register.Register[A]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.read(reg)
}

// WriteRegister encodes reg and replaces the bytes stored at its address.
// Injected write faults are returned as given.
func (m *Memory[A]) WriteRegister(reg register.Register[A]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.write(reg)
}

// Exclusive holds the register file while fn runs, so that an Edit's read
// and write are not interleaved with other accesses. fn must not call
// methods of m itself, which would deadlock.
func (m *Memory[A]) Exclusive(fn func(register.Interface[A]) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(held[A]{m})
}

// read requires m.mu.
func (m *Memory[A]) read(reg register.Register[A]) error {
	u, ok := reg.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedRegister, reg)
	}
	addr := reg.RegisterAddress()

	m.counters(addr).Reads++
	if err := m.readFaults[addr]; err != nil {
		return err
	}
	data, ok := m.cells[addr]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNoSuchAddress, addr)
	}
	if err := u.UnmarshalBinary(bytes.Clone(data)); err != nil {
		return fmt.Errorf("decoding %T at %v: %w", reg, addr, err)
	}
	return nil
}

// write requires m.mu.
func (m *Memory[A]) write(reg register.Register[A]) error {
	e, ok := reg.(encoding.BinaryMarshaler)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedRegister, reg)
	}
	addr := reg.RegisterAddress()
	data, err := e.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding %T at %v: %w", reg, addr, err)
	}

	m.counters(addr).Writes++
	if err := m.writeFaults[addr]; err != nil {
		return err
	}
	old, ok := m.cells[addr]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNoSuchAddress, addr)
	}
	if len(old) != len(data) {
		return fmt.Errorf("%w: %T at %v is %d bytes, register holds %d", ErrWidthMismatch, reg, addr, len(data), len(old))
	}
	m.cells[addr] = data
	return nil
}

// held is the view of a Memory handed to Exclusive callbacks.
type held[A comparable] struct{ m *Memory[A] }

func (h held[A]) ReadRegister(reg register.Register[A]) error  { return h.m.read(reg) }
func (h held[A]) WriteRegister(reg register.Register[A]) error { return h.m.write(reg) }

// Compile-time interface satisfaction check.
var (
	_ register.Interface[uint8] = (*Memory[uint8])(nil)
	_ register.Sequencer[uint8] = (*Memory[uint8])(nil)
)
