package vmath

import "math"

// Vec2 is a 2D float64 vector used for velocities, normals and offsets
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{X: x, Y: y}
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by factor
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

// Neg returns the vector pointing the opposite way
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns v.X*o.X + v.Y*o.Y
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LengthSq returns squared magnitude without sqrt
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns Euclidean magnitude
func (v Vec2) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// IsFinite reports whether neither component is NaN or ±Inf
func (v Vec2) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// ClampComponents bounds each component to [-limit, limit], NaN becomes 0
// Returns the clamped vector and whether anything changed
func (v Vec2) ClampComponents(limit float64) (Vec2, bool) {
	x, cx := ClampFinite(v.X, limit)
	y, cy := ClampFinite(v.Y, limit)
	return Vec2{X: x, Y: y}, cx || cy
}

// ReflectAxisX returns velocity reflected off a vertical wall
func (v Vec2) ReflectAxisX() Vec2 {
	return Vec2{X: -v.X, Y: v.Y}
}

// ReflectAxisY returns velocity reflected off a horizontal wall
func (v Vec2) ReflectAxisY() Vec2 {
	return Vec2{X: v.X, Y: -v.Y}
}
