package examples

import "fmt"

// Address is the register address space of the sensor.
type Address uint8

const (
	AddrConfig      Address = 0x01
	AddrStatus      Address = 0x02
	AddrData        Address = 0x03
	AddrCalibration Address = 0x10
	AddrReset       Address = 0x7E
)

func (a Address) String() string {
	switch a {
	case AddrConfig:
		return "CONFIG"
	case AddrStatus:
		return "STATUS"
	case AddrData:
		return "DATA"
	case AddrCalibration:
		return "CALIBRATION"
	case AddrReset:
		return "RESET"
	default:
		return fmt.Sprintf("Address(0x%02X)", uint8(a))
	}
}

// width returns the register width in bytes, or 0 for unmapped addresses.
func (a Address) width() int {
	switch a {
	case AddrStatus, AddrReset:
		return 1
	case AddrConfig, AddrData, AddrCalibration:
		return 2
	default:
		return 0
	}
}
