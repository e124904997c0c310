package version

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"1", Format{1, 0}},
		{"1.0", Format{1, 0}},
		{"1.3", Format{1, 3}},
		{" 2.1 ", Format{2, 1}},
		{"10.23", Format{10, 23}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, input := range []string{"", "abc", "1.", ".1", "1.0.0", "1.x", "-1.0", "+1", "70000"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	v, err := Parse("3")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "3.0" {
		t.Errorf("String() = %q, want %q", v.String(), "3.0")
	}
}

func TestReads(t *testing.T) {
	reader := Format{Major: 1, Minor: 2}

	tests := []struct {
		m    Format
		want bool
	}{
		{Format{1, 0}, true},
		{Format{1, 2}, true},
		{Format{1, 3}, false},
		{Format{0, 9}, false},
		{Format{2, 0}, false},
	}
	for _, tt := range tests {
		if got := reader.Reads(tt.m); got != tt.want {
			t.Errorf("%v.Reads(%v) = %v, want %v", reader, tt.m, got, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		input       string
		unsupported bool
		malformed   bool
	}{
		{input: ""},
		{input: "1"},
		{input: "1.0"},
		{input: "1.7", unsupported: true},
		{input: "2", unsupported: true},
		{input: "2.0", unsupported: true},
		{input: "0.9", unsupported: true},
		{input: "one", malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := Check(tt.input)
			switch {
			case tt.unsupported:
				if !errors.Is(err, ErrUnsupported) {
					t.Errorf("Check(%q) = %v, want ErrUnsupported", tt.input, err)
				}
			case tt.malformed:
				if err == nil || errors.Is(err, ErrUnsupported) {
					t.Errorf("Check(%q) = %v, want a parse error", tt.input, err)
				}
			default:
				if err != nil {
					t.Errorf("Check(%q) returned error: %v", tt.input, err)
				}
			}
		})
	}
}

func TestCurrentParses(t *testing.T) {
	v, err := Parse(Current)
	if err != nil {
		t.Fatalf("Parse(Current) returned error: %v", err)
	}
	if !v.Reads(v) {
		t.Errorf("Current %s does not read itself", v)
	}
}
