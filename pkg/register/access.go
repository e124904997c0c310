package register

import (
	"fmt"
	"strings"
)

// Access is the set of permissions a register declares.
type Access uint8

const (
	// AccessRead allows Read.
	AccessRead Access = 1 << iota

	// AccessWrite allows Write.
	AccessWrite

	// AccessEdit allows Edit.
	AccessEdit

	// Declaration kinds, named after the directive that produces them.

	// AccessRO is a read-only register.
	AccessRO = AccessRead

	// AccessWO is a write-only register.
	AccessWO = AccessWrite

	// AccessEO is an edit-only register.
	AccessEO = AccessEdit

	// AccessRE is a readable and editable register.
	AccessRE = AccessRead | AccessEdit

	// AccessRW is a readable, writable and editable register.
	AccessRW = AccessRead | AccessWrite | AccessEdit
)

// CanRead returns true if reading is allowed.
func (a Access) CanRead() bool { return a&AccessRead != 0 }

// CanWrite returns true if writing is allowed.
func (a Access) CanWrite() bool { return a&AccessWrite != 0 }

// CanEdit returns true if read-modify-write is allowed.
func (a Access) CanEdit() bool { return a&AccessEdit != 0 }

// String returns the access flags as a string, e.g. "RWE".
func (a Access) String() string {
	var s string
	if a.CanRead() {
		s += "R"
	}
	if a.CanWrite() {
		s += "W"
	}
	if a.CanEdit() {
		s += "E"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Kind returns the declaration kind ("ro", "wo", "eo", "re", "rw") or ""
// when the set does not correspond to one.
func (a Access) Kind() string {
	switch a {
	case AccessRO:
		return "ro"
	case AccessWO:
		return "wo"
	case AccessEO:
		return "eo"
	case AccessRE:
		return "re"
	case AccessRW:
		return "rw"
	default:
		return ""
	}
}

// ParseAccess parses a declaration kind. Matching is case-insensitive and
// accepts the derive names ("RORegister") as well as the short form ("ro").
func ParseAccess(s string) (Access, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.TrimSuffix(k, "register")
	switch k {
	case "ro":
		return AccessRO, nil
	case "wo":
		return AccessWO, nil
	case "eo":
		return AccessEO, nil
	case "re":
		return AccessRE, nil
	case "rw":
		return AccessRW, nil
	default:
		return 0, fmt.Errorf("unknown register access %q (want ro, wo, eo, re or rw)", s)
	}
}

// AccessOf reports the permission markers carried by reg.
// It is meant for tooling; Read, Write and Edit are gated by the type system.
func AccessOf(reg any) Access {
	var a Access
	if _, ok := reg.(interface{ ReadableRegister() }); ok {
		a |= AccessRead
	}
	if _, ok := reg.(interface{ WritableRegister() }); ok {
		a |= AccessWrite
	}
	if _, ok := reg.(interface{ EditableRegister() }); ok {
		a |= AccessEdit
	}
	return a
}
