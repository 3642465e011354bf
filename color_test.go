package tiled

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FFCC00", Color{0xFF, 0xCC, 0x00, 0xFF}},
		{"#ffcc00", Color{0xFF, 0xCC, 0x00, 0xFF}},
		{"#80FFCC00", Color{0xFF, 0xCC, 0x00, 0x80}},
		{"#00000000", Color{}},
		{"#ffffff", White},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{
		"", "FFCC00", "80FFCC00",
		"#FFF", "#FFFF", "#FFCC0", "#FFCC00112", "#FFCC001122",
		"#GGCC00", "#+FCC00", "#80FFCCZZ",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseColor(in)
			if !errors.Is(err, errInvalidColor) {
				t.Errorf("ParseColor(%q) = %v, want invalid color error", in, err)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	c := ARGB(0x80, 0x12, 0x34, 0x56)
	if got, want := c.String(), "#80123456"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	back, err := ParseColor(c.String())
	if err != nil {
		t.Fatal(err)
	}
	if back != c {
		t.Errorf("got %+v, want %+v", back, c)
	}
}

func TestColorMultiply(t *testing.T) {
	c := Color{0x80, 0x40, 0xFF, 0xFF}
	if got := c.Multiply(White); got != c {
		t.Errorf("c * white = %+v, want %+v", got, c)
	}
	if got := c.Multiply(Color{}); got != (Color{}) {
		t.Errorf("c * transparent black = %+v, want zero", got)
	}
}
