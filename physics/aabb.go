package physics

import "github.com/lixenwraith/boxphys/vmath"

// AABB is an axis-aligned box: top-left corner plus positive extents
type AABB struct {
	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Box is shorthand for AABB{X: x, Y: y, Width: w, Height: h}
func Box(x, y, w, h float64) AABB {
	return AABB{X: x, Y: y, Width: w, Height: h}
}

// Right returns the maximum X edge
func (a AABB) Right() float64 { return a.X + a.Width }

// Bottom returns the maximum Y edge
func (a AABB) Bottom() float64 { return a.Y + a.Height }

// Center returns the box midpoint
func (a AABB) Center() vmath.Vec2 {
	return vmath.Vec2{X: a.X + a.Width*0.5, Y: a.Y + a.Height*0.5}
}

// Translate returns the box moved by d
func (a AABB) Translate(d vmath.Vec2) AABB {
	a.X += d.X
	a.Y += d.Y
	return a
}

// Valid reports finite coordinates and strictly positive extents
func (a AABB) Valid() bool {
	return a.Validate() == nil
}

// Validate returns ErrNonFinite or ErrInvalidExtent for a malformed box
func (a AABB) Validate() error {
	if !vmath.IsFinite(a.X) || !vmath.IsFinite(a.Y) || !vmath.IsFinite(a.Width) || !vmath.IsFinite(a.Height) {
		return ErrNonFinite
	}
	if a.Width <= 0 || a.Height <= 0 {
		return ErrInvalidExtent
	}
	// Extents overflowing to Inf when added to the corner
	if !vmath.IsFinite(a.Right()) || !vmath.IsFinite(a.Bottom()) {
		return ErrNonFinite
	}
	return nil
}

// Intersects is the strict overlap test; boxes sharing only an edge do not intersect
func (a AABB) Intersects(b AABB) bool {
	return a.X < b.Right() && b.X < a.Right() &&
		a.Y < b.Bottom() && b.Y < a.Bottom()
}
