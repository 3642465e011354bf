package tiled

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
)

var errInvalidColor = errors.New("invalid color")

// Color is a packed 8-bit-per-channel color, stored unpremultiplied as Tiled
// writes it.
type Color struct {
	R, G, B, A uint8
}

// White is the default tint: multiplying by it changes nothing.
var White = Color{0xFF, 0xFF, 0xFF, 0xFF}

// ARGB builds a Color from its channels in the order Tiled serialises them.
func ARGB(a, r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ParseColor parses "#AARRGGBB" or "#RRGGBB". The six digit form is opaque.
func ParseColor(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, fmt.Errorf("%w %q: missing '#' prefix", errInvalidColor, s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w %q: want 6 or 8 hex digits, got %d", errInvalidColor, s, len(hex))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %w", errInvalidColor, s, err)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return ARGB(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// String renders c as "#AARRGGBB".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Multiply combines two tints channel-wise, the way nested group tints
// accumulate.
func (c Color) Multiply(o Color) Color {
	mul := func(a, b uint8) uint8 { return uint8((uint16(a)*uint16(b) + 127) / 255) }
	return Color{mul(c.R, o.R), mul(c.G, o.G), mul(c.B, o.B), mul(c.A, o.A)}
}
