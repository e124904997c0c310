package main

import (
	"errors"
	"go/format"
	"strings"
	"testing"

	"github.com/devreg/devreg-go/pkg/register"
	"github.com/devreg/devreg-go/pkg/regspec"
)

func sensorSource() *Source {
	return &Source{
		Package: "sensor",
		Bindings: []Binding{
			{Type: "Config", Access: register.AccessRW, Addr: "AddressConfig", AddrType: "Address", Err: "BusError"},
			{Type: "Status", Access: register.AccessRO, Addr: "0x02", AddrType: "uint8"},
			{Type: "Cal", Access: register.AccessEO, Addr: "hw.Cal", AddrType: "hw.Addr", Imports: []string{`hw "example.com/hw"`}},
			{Type: "Win", TypeParams: []string{"T"}, Access: register.AccessRE, Addr: "0x04", AddrType: "uint8"},
		},
	}
}

func TestGenerateBindings(t *testing.T) {
	output, err := Generate(sensorSource())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	mustContain(t, output, "func (Config) RegisterAddress() Address { return AddressConfig }")
	mustContain(t, output, "func (Config) ReadableRegister() {}")
	mustContain(t, output, "func (Config) WritableRegister() {}")
	mustContain(t, output, "func (Config) EditableRegister() {}")

	mustContain(t, output, "func (Status) RegisterAddress() uint8 { return 0x02 }")
	mustContain(t, output, "func (Status) ReadableRegister() {}")
	mustNotContain(t, output, "func (Status) WritableRegister()")
	mustNotContain(t, output, "func (Status) EditableRegister()")

	mustContain(t, output, "func (Cal) RegisterAddress() hw.Addr { return hw.Cal }")
	mustContain(t, output, "func (Cal) EditableRegister() {}")
	mustNotContain(t, output, "func (Cal) ReadableRegister()")

	mustContain(t, output, "func (Win[T]) RegisterAddress() uint8 { return 0x04 }")
	mustContain(t, output, "func (Win[T]) ReadableRegister() {}")
	mustContain(t, output, "func (Win[T]) EditableRegister() {}")
}

func TestGenerateErrorBinding(t *testing.T) {
	output, err := Generate(sensorSource())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	mustContain(t, output, "func (Config) AsRegisterError(err error) (BusError, bool) {")
	mustContain(t, output, "ok := errors.As(err, &target)")
	mustContain(t, output, "_ error = *new(BusError)")
	mustNotContain(t, output, "func (Status) AsRegisterError")
}

func TestGenerateAssertions(t *testing.T) {
	output, err := Generate(sensorSource())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	mustContain(t, output, "_ register.Readable[Address] = (*Config)(nil)")
	mustContain(t, output, "_ register.Writable[Address] = (*Config)(nil)")
	mustContain(t, output, "_ register.Readable[uint8] = (*Status)(nil)")
	mustContain(t, output, "_ register.Editable[hw.Addr] = (*Cal)(nil)")
	mustNotContain(t, output, "(*Win)(nil)")
}

func TestGenerateHeader(t *testing.T) {
	output, err := Generate(sensorSource())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.HasPrefix(output, "// Code generated by regbind. DO NOT EDIT.\n") {
		t.Errorf("output does not start with the generated header:\n%s", truncate(output, 200))
	}
	mustContain(t, output, "package sensor")
	mustContain(t, output, `"errors"`)
	mustContain(t, output, `"github.com/devreg/devreg-go/pkg/register"`)
	mustContain(t, output, `hw "example.com/hw"`)
}

func TestGenerateIsValidGo(t *testing.T) {
	output, err := Generate(sensorSource())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := format.Source([]byte(output)); err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, output)
	}
}

func TestGenerateNoBindings(t *testing.T) {
	_, err := Generate(&Source{Package: "empty"})
	if !errors.Is(err, errNoBindings) {
		t.Errorf("Generate error = %v, want errNoBindings", err)
	}
}

const sensorMapYAML = `
device: demo-sensor
package: sensor
error: BusError
registers:
  - name: Config
    addr: 0x01
    access: rw
    width: 16
    reset: 0x0010
    description: Sensor configuration
    fields:
      - {name: enable, offset: 0, bits: 1}
      - {name: rate, offset: 4, bits: 4, description: Sample rate selector}
      - {name: reserved, offset: 8, bits: 8, reserved: true}
  - name: Status
    addr: 0x02
    access: ro
  - name: Calibration
    addr: 0x10
    access: eo
    width: 32
`

func sensorMap(t *testing.T) *regspec.Map {
	t.Helper()
	m, err := regspec.ParseMap([]byte(sensorMapYAML))
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	return m
}

func TestGenerateMapTypes(t *testing.T) {
	output, err := GenerateMap(sensorMap(t), "", "sensor.yaml")
	if err != nil {
		t.Fatalf("GenerateMap failed: %v", err)
	}

	mustContain(t, output, "// Source: sensor.yaml")
	mustContain(t, output, "package sensor")
	mustContain(t, output, "// Config represents sensor configuration.")
	mustContain(t, output, "type Config uint16")
	mustContain(t, output, "const ConfigReset Config = 0x0010")
	mustContain(t, output, "type Status uint8")
	mustContain(t, output, "const StatusReset Status = 0x00")
	mustContain(t, output, "type Calibration uint32")
}

func TestGenerateMapFields(t *testing.T) {
	output, err := GenerateMap(sensorMap(t), "", "")
	if err != nil {
		t.Fatalf("GenerateMap failed: %v", err)
	}

	mustContain(t, output, "func (r Config) Enable() uint16 { return uint16(r>>0) & 0x01 }")
	mustContain(t, output, "// Rate returns the rate field: sample rate selector.")
	mustContain(t, output, "func (r Config) WithRate(v uint16) Config {")
	mustContain(t, output, "return r&^0x00F0 | Config(v&0x0F)<<4")
	mustNotContain(t, output, "Reserved()")
}

func TestGenerateMapCodec(t *testing.T) {
	output, err := GenerateMap(sensorMap(t), "", "")
	if err != nil {
		t.Fatalf("GenerateMap failed: %v", err)
	}

	mustContain(t, output, "return binary.BigEndian.AppendUint16(nil, uint16(r)), nil")
	mustContain(t, output, "*r = Config(binary.BigEndian.Uint16(data))")
	mustContain(t, output, "return binary.BigEndian.AppendUint32(nil, uint32(r)), nil")
	mustContain(t, output, "return []byte{byte(r)}, nil")
	mustContain(t, output, "*r = Status(data[0])")
	mustContain(t, output, `return fmt.Errorf("Config: want 2 bytes, got %d", len(data))`)
}

func TestGenerateMapBindings(t *testing.T) {
	output, err := GenerateMap(sensorMap(t), "", "")
	if err != nil {
		t.Fatalf("GenerateMap failed: %v", err)
	}

	mustContain(t, output, "func (Config) RegisterAddress() uint8 { return 0x01 }")
	mustContain(t, output, "func (Calibration) RegisterAddress() uint8 { return 0x10 }")
	mustContain(t, output, "func (Status) ReadableRegister() {}")
	mustNotContain(t, output, "func (Status) WritableRegister()")
	mustContain(t, output, "func (Calibration) EditableRegister() {}")
	mustNotContain(t, output, "func (Calibration) ReadableRegister()")
	mustContain(t, output, "func (Status) AsRegisterError(err error) (BusError, bool) {")

	if _, err := format.Source([]byte(output)); err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, output)
	}
}

func TestGenerateMapPackageOverride(t *testing.T) {
	output, err := GenerateMap(sensorMap(t), "device", "")
	if err != nil {
		t.Fatalf("GenerateMap failed: %v", err)
	}
	mustContain(t, output, "package device")

	if _, err := GenerateMap(sensorMap(t), "not-a-name", ""); err == nil {
		t.Error("GenerateMap should reject an invalid package name")
	}
}

func TestGenerateMapRejectsBadNames(t *testing.T) {
	m := sensorMap(t)
	m.Registers[0].Name = "config"
	if _, err := GenerateMap(m, "", ""); err == nil {
		t.Error("GenerateMap should reject an unexported register name")
	}
}

func TestGoTitleCase(t *testing.T) {
	tests := map[string]string{
		"enable":     "Enable",
		"rate_limit": "RateLimit",
		"low-power":  "LowPower",
		"ODR":        "ODR",
	}
	for in, want := range tests {
		if got := goTitleCase(in); got != want {
			t.Errorf("goTitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func mustContain(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Errorf("output does not contain %q\nOutput (first 3000 chars):\n%s", substr, truncate(output, 3000))
	}
}

func mustNotContain(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Errorf("output should not contain %q", substr)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
