package examples

import (
	"encoding/binary"
	"fmt"
)

// Rate selects the conversion rate.
type Rate uint8

const (
	Rate1Hz Rate = iota
	Rate4Hz
	Rate16Hz
	Rate64Hz
)

// Config holds the measurement settings. Bits 7 to 14 are reserved and
// must be written back as read.
//
//register:rw addr=AddrConfig ty=Address err=*BusError
type Config uint16

const (
	configEnable    = 1 << 15
	configGainShift = 4
	configGainMask  = 0x7 << configGainShift
	configRateMask  = 0xF
)

// Enabled reports whether conversions are running.
func (c Config) Enabled() bool { return c&configEnable != 0 }

func (c Config) WithEnabled(on bool) Config {
	if on {
		return c | configEnable
	}
	return c &^ configEnable
}

func (c Config) Rate() Rate { return Rate(c & configRateMask) }

func (c Config) WithRate(r Rate) Config { return c&^configRateMask | Config(r)&configRateMask }

// Gain returns the programmable gain as a power of two.
func (c Config) Gain() uint8 { return uint8(c&configGainMask) >> configGainShift }

func (c Config) WithGain(g uint8) Config {
	return c&^configGainMask | Config(g)<<configGainShift&configGainMask
}

func (c Config) MarshalBinary() ([]byte, error) { return put16(uint16(c)), nil }

func (c *Config) UnmarshalBinary(b []byte) error {
	v, err := get16("config", b)
	*c = Config(v)
	return err
}

// Status reports the conversion state.
//
//register:ro addr=AddrStatus ty=Address err=*BusError
type Status uint8

// Ready reports whether Data holds a fresh conversion.
func (s Status) Ready() bool { return s&0x01 != 0 }

// Overrun reports whether a conversion was lost since the last read.
func (s Status) Overrun() bool { return s&0x02 != 0 }

func (s Status) MarshalBinary() ([]byte, error) { return []byte{byte(s)}, nil }

func (s *Status) UnmarshalBinary(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("status: want 1 byte, got %d", len(b))
	}
	*s = Status(b[0])
	return nil
}

// Data is the last conversion in hundredths of a degree Celsius.
//
//register:ro addr=AddrData ty=Address err=*BusError
type Data int16

func (d Data) Celsius() float64 { return float64(d) / 100 }

func (d Data) MarshalBinary() ([]byte, error) { return put16(uint16(d)), nil }

func (d *Data) UnmarshalBinary(b []byte) error {
	v, err := get16("data", b)
	*d = Data(int16(v))
	return err
}

// Calibration holds the user offset in its low byte. The high byte is
// factory trim and is preserved by editing, which is why the register is
// edit-only.
//
//register:eo addr=AddrCalibration ty=Address err=*BusError
type Calibration uint16

// Offset returns the user offset in hundredths of a degree.
func (c Calibration) Offset() int8 { return int8(c & 0xFF) }

func (c Calibration) WithOffset(o int8) Calibration { return c&0xFF00 | Calibration(uint8(o)) }

func (c Calibration) MarshalBinary() ([]byte, error) { return put16(uint16(c)), nil }

func (c *Calibration) UnmarshalBinary(b []byte) error {
	v, err := get16("calibration", b)
	*c = Calibration(v)
	return err
}

// Reset restarts the sensor when ResetMagic is written to it.
//
//register:wo addr=AddrReset ty=Address err=*BusError
type Reset uint8

const ResetMagic Reset = 0xA5

func (r Reset) MarshalBinary() ([]byte, error) { return []byte{byte(r)}, nil }

func put16(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }

func get16(name string, b []byte) (uint16, error) {
	if len(b) != 2 {
		return 0, fmt.Errorf("%s: want 2 bytes, got %d", name, len(b))
	}
	return binary.BigEndian.Uint16(b), nil
}
