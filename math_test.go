package tiled

import (
	"image/color"
	"testing"
)

func TestVec2(t *testing.T) {
	a, b := Vec2{3, 4}, Vec2{1, 2}
	tests := []struct {
		name string
		got  Vec2
		want Vec2
	}{
		{"Add", a.Add(b), Vec2{4, 6}},
		{"Sub", a.Sub(b), Vec2{2, 2}},
		{"Mul", a.Mul(b), Vec2{3, 8}},
		{"Scale", a.Scale(3), Vec2{9, 12}},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if got := (FVec2{0.5, 1}).Add(FVec2{1, -2}); got != (FVec2{1.5, -1}) {
		t.Errorf("FVec2.Add: got %v", got)
	}
}

func TestColorImplementsColor(t *testing.T) {
	var c color.Color = Color{0xFF, 0, 0, 0x80}
	r, g, b, a := c.RGBA()
	// premultiplied: 0xFF at half alpha
	if a != 0x8080 || r != 0x8080 || g != 0 || b != 0 {
		t.Errorf("got %#x %#x %#x %#x", r, g, b, a)
	}
}
