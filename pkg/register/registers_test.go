package register_test

import (
	"encoding/binary"
	"fmt"
)

// Register1 is a read/write/edit register at 0x01.
type Register1 uint16

func (Register1) RegisterAddress() uint8 { return 0x01 }
func (Register1) ReadableRegister()      {}
func (Register1) WritableRegister()      {}
func (Register1) EditableRegister()      {}

func (r Register1) MarshalBinary() ([]byte, error) { return encode16(uint16(r)), nil }

func (r *Register1) UnmarshalBinary(b []byte) error {
	v, err := decode16(b)
	*r = Register1(v)
	return err
}

// WithLowByte replaces the low byte, leaving the high byte untouched.
func (r Register1) WithLowByte(b uint8) Register1 { return r&0xFF00 | Register1(b) }

// Register2 is a read/write/edit register at 0x02.
type Register2 uint16

func (Register2) RegisterAddress() uint8 { return 0x02 }
func (Register2) ReadableRegister()      {}
func (Register2) WritableRegister()      {}
func (Register2) EditableRegister()      {}

func (r Register2) MarshalBinary() ([]byte, error) { return encode16(uint16(r)), nil }

func (r *Register2) UnmarshalBinary(b []byte) error {
	v, err := decode16(b)
	*r = Register2(v)
	return err
}

// Status is read-only.
type Status uint8

func (Status) RegisterAddress() uint8 { return 0x03 }
func (Status) ReadableRegister()      {}

func (s Status) MarshalBinary() ([]byte, error) { return []byte{byte(s)}, nil }

func (s *Status) UnmarshalBinary(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("status: got %d bytes", len(b))
	}
	*s = Status(b[0])
	return nil
}

// Command is write-only.
type Command uint8

func (Command) RegisterAddress() uint8 { return 0x04 }
func (Command) WritableRegister()      {}

func (c Command) MarshalBinary() ([]byte, error) { return []byte{byte(c)}, nil }

// Control is edit-only; its high nibble is reserved.
type Control uint8

func (Control) RegisterAddress() uint8 { return 0x05 }
func (Control) EditableRegister()      {}

func (c Control) MarshalBinary() ([]byte, error) { return []byte{byte(c)}, nil }

func (c *Control) UnmarshalBinary(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("control: got %d bytes", len(b))
	}
	*c = Control(b[0])
	return nil
}

// Untagged has an address but no permissions.
type Untagged uint8

func (Untagged) RegisterAddress() uint8 { return 0x06 }

// Wide lives in a 16-bit address space.
type Wide uint16

func (Wide) RegisterAddress() uint16 { return 0x0100 }
func (Wide) ReadableRegister()       {}
func (Wide) WritableRegister()       {}

func encode16(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }

func decode16(b []byte) (uint16, error) {
	if len(b) != 2 {
		return 0, fmt.Errorf("want 2 bytes, got %d", len(b))
	}
	return binary.BigEndian.Uint16(b), nil
}
