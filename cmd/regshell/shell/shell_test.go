package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/devreg/devreg-go/pkg/register/async"
	"github.com/devreg/devreg-go/pkg/regmap"
	"github.com/devreg/devreg-go/pkg/regspec"
)

const testMap = `
version: "1.0"
device: demo-sensor
registers:
  - name: Config
    addr: 0x01
    access: rw
    width: 16
    reset: 0xAB10
    description: Measurement settings
    fields:
      - {name: enable, offset: 0, bits: 1}
      - {name: rate, offset: 4, bits: 4}
      - {name: trim, offset: 8, bits: 8, reserved: true}
  - name: Status
    addr: 0x02
    access: ro
    reset: 0x01
  - name: Reset
    addr: 0x7E
    access: wo
  - name: Calibration
    addr: 0x10
    access: eo
    width: 16
    reset: 0x5A00
`

func newTestShell(t *testing.T) (*Shell, *regmap.Memory[uint64]) {
	t.Helper()
	m, err := regspec.ParseMap([]byte(testMap))
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	mem, err := regmap.FromSpec(m)
	if err != nil {
		t.Fatalf("FromSpec failed: %v", err)
	}
	s, err := New(Config{Map: m, Transport: async.FromSync[uint64](mem), Stats: mem.Stats})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s, mem
}

func run(t *testing.T, s *Shell, line string) string {
	t.Helper()
	var buf bytes.Buffer
	s.Exec(context.Background(), &buf, line)
	return buf.String()
}

func TestShellRead(t *testing.T) {
	s, _ := newTestShell(t)

	out := run(t, s, "read config")
	if !strings.Contains(out, "Config (0x01) = 0xAB10") {
		t.Errorf("read output = %q", out)
	}
	if !strings.Contains(out, "rate") || strings.Contains(out, "trim") {
		t.Errorf("read should list rate but not the reserved trim field:\n%s", out)
	}
}

func TestShellWrite(t *testing.T) {
	s, mem := newTestShell(t)

	out := run(t, s, "write Config 0x1234")
	if !strings.Contains(out, "Config <- 0x1234") {
		t.Errorf("write output = %q", out)
	}
	data, _ := mem.Get(0x01)
	if !bytes.Equal(data, []byte{0x12, 0x34}) {
		t.Errorf("register = % X, want 12 34", data)
	}
}

func TestShellEditField(t *testing.T) {
	s, mem := newTestShell(t)

	out := run(t, s, "edit config rate 7")
	if !strings.Contains(out, "Config: 0xAB10 -> 0xAB70") {
		t.Errorf("edit output = %q", out)
	}
	data, _ := mem.Get(0x01)
	if !bytes.Equal(data, []byte{0xAB, 0x70}) {
		t.Errorf("register = % X, want AB 70", data)
	}
	if c := mem.Stats(0x01); c.Reads != 1 || c.Writes != 1 {
		t.Errorf("stats = %+v, want one read and one write", c)
	}
}

func TestShellEditMask(t *testing.T) {
	s, mem := newTestShell(t)

	run(t, s, "edit calibration 0x00FF 0xFE")
	data, _ := mem.Get(0x10)
	if !bytes.Equal(data, []byte{0x5A, 0xFE}) {
		t.Errorf("register = % X, want 5A FE", data)
	}
}

func TestShellEditRejectsReservedField(t *testing.T) {
	s, mem := newTestShell(t)

	out := run(t, s, "edit config trim 1")
	if !strings.Contains(out, "reserved") {
		t.Errorf("edit output = %q, want reserved error", out)
	}
	if c := mem.Stats(0x01); c.Reads != 0 || c.Writes != 0 {
		t.Errorf("stats = %+v, want no access", c)
	}
}

func TestShellPermissions(t *testing.T) {
	tests := []struct {
		line string
		addr uint64
	}{
		{"write status 1", 0x02},
		{"edit status 0x01 0", 0x02},
		{"read reset", 0x7E},
		{"edit reset 0xFF 1", 0x7E},
		{"read calibration", 0x10},
		{"write calibration 1", 0x10},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, mem := newTestShell(t)
			out := run(t, s, tt.line)
			if !strings.Contains(out, ErrNotPermitted.Error()) {
				t.Errorf("output = %q, want permission error", out)
			}
			if c := mem.Stats(tt.addr); c.Reads != 0 || c.Writes != 0 {
				t.Errorf("stats = %+v, want no access", c)
			}
		})
	}
}

func TestShellValueChecks(t *testing.T) {
	s, _ := newTestShell(t)

	if out := run(t, s, "write config 0x10000"); !strings.Contains(out, "does not fit") {
		t.Errorf("output = %q", out)
	}
	if out := run(t, s, "edit config rate 16"); !strings.Contains(out, "does not fit") {
		t.Errorf("output = %q", out)
	}
	if out := run(t, s, "write config banana"); !strings.Contains(out, "invalid value") {
		t.Errorf("output = %q", out)
	}
	if out := run(t, s, "read nope"); !strings.Contains(out, "unknown register") {
		t.Errorf("output = %q", out)
	}
}

func TestShellTransportError(t *testing.T) {
	s, mem := newTestShell(t)
	mem.FailReads(0x01, errors.New("bus stuck"))

	out := run(t, s, "edit config enable 1")
	if !strings.Contains(out, "Error: bus stuck") {
		t.Errorf("output = %q", out)
	}
	if c := mem.Stats(0x01); c.Writes != 0 {
		t.Errorf("stats = %+v, want no write after failed read", c)
	}
}

func TestShellListAndStats(t *testing.T) {
	s, _ := newTestShell(t)
	run(t, s, "read status")

	out := run(t, s, "list")
	for _, want := range []string{"Config", "0x7E", "Measurement settings", "eo"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	out = run(t, s, "stats")
	if !strings.Contains(out, "Status") || !strings.Contains(out, "1") {
		t.Errorf("stats output = %q", out)
	}
}

func TestShellQuit(t *testing.T) {
	s, _ := newTestShell(t)
	var buf bytes.Buffer
	if s.Exec(context.Background(), &buf, "quit") {
		t.Error("quit should end the shell")
	}
	if !s.Exec(context.Background(), &buf, "bogus") {
		t.Error("unknown commands should not end the shell")
	}
	if !strings.Contains(buf.String(), "Unknown command: bogus") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNewRequiresMapAndTransport(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New without map should fail")
	}
}
