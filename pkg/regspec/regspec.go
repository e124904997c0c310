package regspec

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/devreg/devreg-go/pkg/register"
	"github.com/devreg/devreg-go/pkg/version"
	"gopkg.in/yaml.v3"
)

// ErrInvalidMap is returned (wrapped) when a register map fails validation.
var ErrInvalidMap = errors.New("invalid register map")

// DefaultAddressType is used when a map does not name one.
const DefaultAddressType = "uint8"

// DefaultWidth is the register width in bits used when a register does not
// name one.
const DefaultWidth = 8

// Map is a device register map loaded from YAML.
type Map struct {
	Version     string     `yaml:"version"`
	Device      string     `yaml:"device"`
	Package     string     `yaml:"package"`
	AddressType string     `yaml:"addressType"`
	Error       string     `yaml:"error"`
	Description string     `yaml:"description"`
	Registers   []Register `yaml:"registers"`
}

// Register describes one register of a map.
type Register struct {
	Name        string  `yaml:"name"`
	Addr        uint64  `yaml:"addr"`
	Kind        string  `yaml:"access"` // ro, wo, eo, re, rw
	Width       int     `yaml:"width"`  // bits: 8, 16, 32, 64
	Reset       uint64  `yaml:"reset"`
	Description string  `yaml:"description"`
	Fields      []Field `yaml:"fields"`
}

// Field is a named bit range inside a register.
type Field struct {
	Name        string `yaml:"name"`
	Offset      int    `yaml:"offset"`
	Bits        int    `yaml:"bits"`
	Reserved    bool   `yaml:"reserved"`
	Description string `yaml:"description"`
}

// ParseMap parses a register map from YAML bytes, applies defaults and
// validates it.
func ParseMap(data []byte) (*Map, error) {
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing register map: %w", err)
	}
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadMap loads and parses a register map from a file.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseMap(data)
}

func (m *Map) applyDefaults() {
	if m.AddressType == "" {
		m.AddressType = DefaultAddressType
	}
	for i := range m.Registers {
		if m.Registers[i].Width == 0 {
			m.Registers[i].Width = DefaultWidth
		}
	}
}

// Validate checks names, addresses, access kinds, widths, reset values and
// fields.
func (m *Map) Validate() error {
	if err := version.Check(m.Version); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	if len(m.Registers) == 0 {
		return fmt.Errorf("%w: no registers", ErrInvalidMap)
	}
	maxAddr, bounded := addressLimit(m.AddressType)

	names := make(map[string]bool, len(m.Registers))
	addrs := make(map[uint64]string, len(m.Registers))
	for i := range m.Registers {
		r := &m.Registers[i]
		if r.Name == "" {
			return fmt.Errorf("%w: register %d has no name", ErrInvalidMap, i)
		}
		key := strings.ToLower(r.Name)
		if names[key] {
			return fmt.Errorf("%w: duplicate register name %q", ErrInvalidMap, r.Name)
		}
		names[key] = true

		if other, ok := addrs[r.Addr]; ok {
			return fmt.Errorf("%w: registers %q and %q share address 0x%02X", ErrInvalidMap, other, r.Name, r.Addr)
		}
		addrs[r.Addr] = r.Name
		if bounded && r.Addr > maxAddr {
			return fmt.Errorf("%w: register %q: address 0x%X does not fit %s", ErrInvalidMap, r.Name, r.Addr, m.AddressType)
		}

		if _, err := r.Access(); err != nil {
			return fmt.Errorf("%w: register %q: %v", ErrInvalidMap, r.Name, err)
		}
		switch r.Width {
		case 8, 16, 32, 64:
		default:
			return fmt.Errorf("%w: register %q: width %d (want 8, 16, 32 or 64)", ErrInvalidMap, r.Name, r.Width)
		}
		if r.Reset&^r.Mask() != 0 {
			return fmt.Errorf("%w: register %q: reset value 0x%X exceeds %d bits", ErrInvalidMap, r.Name, r.Reset, r.Width)
		}
		if err := r.validateFields(); err != nil {
			return fmt.Errorf("%w: register %q: %v", ErrInvalidMap, r.Name, err)
		}
	}
	return nil
}

func (r *Register) validateFields() error {
	var used uint64
	seen := make(map[string]bool, len(r.Fields))
	for _, f := range r.Fields {
		if f.Name == "" {
			return errors.New("field without name")
		}
		if seen[strings.ToLower(f.Name)] {
			return fmt.Errorf("duplicate field %q", f.Name)
		}
		seen[strings.ToLower(f.Name)] = true
		if f.Bits <= 0 || f.Offset < 0 || f.Offset+f.Bits > r.Width {
			return fmt.Errorf("field %q: bits %d at offset %d outside %d-bit register", f.Name, f.Bits, f.Offset, r.Width)
		}
		if used&f.Mask() != 0 {
			return fmt.Errorf("field %q overlaps another field", f.Name)
		}
		used |= f.Mask()
	}
	return nil
}

// Lookup finds a register by name, ignoring case.
func (m *Map) Lookup(name string) (*Register, bool) {
	for i := range m.Registers {
		if strings.EqualFold(m.Registers[i].Name, name) {
			return &m.Registers[i], true
		}
	}
	return nil, false
}

// Access returns the permission set of the register's access kind.
func (r *Register) Access() (register.Access, error) {
	return register.ParseAccess(r.Kind)
}

// Bytes returns the register width in bytes.
func (r *Register) Bytes() int { return r.Width / 8 }

// Mask returns a mask covering all bits of the register.
func (r *Register) Mask() uint64 {
	if r.Width >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(r.Width) - 1
}

// GoType returns the unsigned Go type matching the register width.
func (r *Register) GoType() string {
	return fmt.Sprintf("uint%d", r.Width)
}

// Field finds a field by name, ignoring case.
func (r *Register) Field(name string) (*Field, bool) {
	for i := range r.Fields {
		if strings.EqualFold(r.Fields[i].Name, name) {
			return &r.Fields[i], true
		}
	}
	return nil, false
}

// ReservedMask returns the bits covered by reserved fields.
func (r *Register) ReservedMask() uint64 {
	var m uint64
	for _, f := range r.Fields {
		if f.Reserved {
			m |= f.Mask()
		}
	}
	return m
}

// Mask returns the field's bits in register position.
func (f Field) Mask() uint64 {
	if f.Bits >= 64 {
		return ^uint64(0) << uint(f.Offset)
	}
	return (1<<uint(f.Bits) - 1) << uint(f.Offset)
}

// Extract returns the field value from a register value.
func (f Field) Extract(v uint64) uint64 {
	return (v & f.Mask()) >> uint(f.Offset)
}

// Insert returns v with the field set to x. Bits of x beyond the field width
// are discarded.
func (f Field) Insert(v, x uint64) uint64 {
	return v&^f.Mask() | (x<<uint(f.Offset))&f.Mask()
}

// addressLimit returns the largest address representable by a builtin
// unsigned address type. Named types are not checked.
func addressLimit(typ string) (uint64, bool) {
	switch typ {
	case "uint8", "byte":
		return 1<<8 - 1, true
	case "uint16":
		return 1<<16 - 1, true
	case "uint32":
		return 1<<32 - 1, true
	case "uint64", "uint", "uintptr":
		return ^uint64(0), true
	default:
		return 0, false
	}
}
