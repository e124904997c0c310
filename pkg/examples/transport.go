package examples

import (
	"context"
	"encoding"
	"fmt"
	"sync"

	"github.com/devreg/devreg-go/pkg/register"
	"github.com/devreg/devreg-go/pkg/register/async"
)

// DefaultDeviceAddress is the sensor's 7-bit bus address.
const DefaultDeviceAddress = 0x48

// I2C is a byte-level bus. Tx writes w to the device, then reads len(r)
// bytes into r, as one combined transaction.
type I2C interface {
	Tx(ctx context.Context, dev uint16, w, r []byte) error
}

// Transport serves the sensor's registers over an I2C bus: a register
// pointer byte is written first, followed by the register contents on a
// write, or a repeated-start read of the register width on a read.
//
// Bus failures are returned as *BusError.
type Transport struct {
	bus I2C
	dev uint16

	// mu holds the bus across the read and write of an edit.
	mu sync.Mutex
}

// NewTransport returns a transport for the device at dev.
func NewTransport(bus I2C, dev uint16) *Transport {
	return &Transport{bus: bus, dev: dev}
}

// ReadRegister reads one register while holding the bus.
func (t *Transport) ReadRegister(ctx context.Context, reg register.Register[Address]) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read(ctx, reg)
}

// WriteRegister writes one register while holding the bus.
func (t *Transport) WriteRegister(ctx context.Context, reg register.Register[Address]) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.write(ctx, reg)
}

// Exclusive holds the bus for the duration of fn.
func (t *Transport) Exclusive(ctx context.Context, fn func(async.Interface[Address]) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(locked{t})
}

func (t *Transport) read(ctx context.Context, reg register.Register[Address]) error {
	addr := reg.RegisterAddress()
	u, ok := reg.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("%T: no binary decoding", reg)
	}
	n := addr.width()
	if n == 0 {
		return &BusError{Op: "read", Addr: addr, Err: ErrUnmappedAddress}
	}

	buf := make([]byte, n)
	if err := t.bus.Tx(ctx, t.dev, []byte{byte(addr)}, buf); err != nil {
		return &BusError{Op: "read", Addr: addr, Err: err}
	}
	return u.UnmarshalBinary(buf)
}

func (t *Transport) write(ctx context.Context, reg register.Register[Address]) error {
	addr := reg.RegisterAddress()
	m, ok := reg.(encoding.BinaryMarshaler)
	if !ok {
		return fmt.Errorf("%T: no binary encoding", reg)
	}
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	if n := addr.width(); n != len(data) {
		if n == 0 {
			return &BusError{Op: "write", Addr: addr, Err: ErrUnmappedAddress}
		}
		return fmt.Errorf("%T: encodes %d bytes, %v holds %d", reg, len(data), addr, n)
	}

	w := append([]byte{byte(addr)}, data...)
	if err := t.bus.Tx(ctx, t.dev, w, nil); err != nil {
		return &BusError{Op: "write", Addr: addr, Err: err}
	}
	return nil
}

// locked is the view of a Transport handed to Exclusive callbacks.
type locked struct{ t *Transport }

func (l locked) ReadRegister(ctx context.Context, reg register.Register[Address]) error {
	return l.t.read(ctx, reg)
}

func (l locked) WriteRegister(ctx context.Context, reg register.Register[Address]) error {
	return l.t.write(ctx, reg)
}

var (
	_ async.Interface[Address] = (*Transport)(nil)
	_ async.Sequencer[Address] = (*Transport)(nil)
)
