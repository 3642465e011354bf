package tiled

import "image"

// Vec2 is an integer 2-D vector, used for tile counts and pixel sizes.
type Vec2 struct {
	X, Y int
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul multiplies v and o component-wise.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Scale multiplies both components of v by f.
func (v Vec2) Scale(f int) Vec2 { return Vec2{v.X * f, v.Y * f} }

// FVec2 is a float 2-D vector in pixel units, used for object geometry and
// layer offsets.
type FVec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v FVec2) Add(o FVec2) FVec2 { return FVec2{v.X + o.X, v.Y + o.Y} }

// Rect is an axis-aligned rectangle given by its upper left corner and its
// extent.
type Rect struct {
	UpperLeft Vec2
	Size      Vec2
}

// Image converts r to an image.Rectangle, suitable for SubImage calls.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.UpperLeft.X, r.UpperLeft.Y, r.UpperLeft.X+r.Size.X, r.UpperLeft.Y+r.Size.Y)
}
