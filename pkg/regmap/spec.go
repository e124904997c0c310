package regmap

import (
	"encoding/binary"
	"fmt"

	"github.com/devreg/devreg-go/pkg/regspec"
)

// FromSpec creates a register file holding every register of m at its reset
// value, encoded big-endian in the register's width.
func FromSpec(m *regspec.Map) (*Memory[uint64], error) {
	mem := New[uint64]()
	for i := range m.Registers {
		r := &m.Registers[i]
		if r.Bytes() == 0 {
			return nil, fmt.Errorf("register %q: zero width", r.Name)
		}
		mem.Define(r.Addr, EncodeUint(r.Reset, r.Bytes()))
	}
	return mem, nil
}

// EncodeUint encodes v big-endian into n bytes (1, 2, 4 or 8).
func EncodeUint(v uint64, n int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf[8-n:]
}

// DecodeUint decodes a big-endian unsigned integer of up to 8 bytes.
func DecodeUint(data []byte) (uint64, error) {
	if len(data) == 0 || len(data) > 8 {
		return 0, fmt.Errorf("%w: %d bytes", ErrWidthMismatch, len(data))
	}
	buf := make([]byte, 8)
	copy(buf[8-len(data):], data)
	return binary.BigEndian.Uint64(buf), nil
}
