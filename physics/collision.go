package physics

import "github.com/lixenwraith/boxphys/vmath"

// CollisionPair holds two body indices in canonical order (A < B)
type CollisionPair struct {
	A, B int
}

// MakePair returns the canonical pair for i and j; callers must not pass i == j
func MakePair(i, j int) CollisionPair {
	if i > j {
		i, j = j, i
	}
	return CollisionPair{A: i, B: j}
}

// Less orders pairs by A then B
func (p CollisionPair) Less(o CollisionPair) bool {
	if p.A != o.A {
		return p.A < o.A
	}
	return p.B < o.B
}

// CollisionResult is a confirmed contact
// Normal is a unit axis vector pointing from A to B, Depth the overlap along it
type CollisionResult struct {
	Pair   CollisionPair
	Normal vmath.Vec2
	Depth  float64
}

// Collide is the exact narrow-phase test for two boxes
// Returns the minimum translation contact with Pair left zero; ok is false for separated or touching boxes
func Collide(a, b AABB) (c CollisionResult, ok bool) {
	if !a.Intersects(b) {
		return c, false
	}

	overlapX := min(a.Right(), b.Right()) - max(a.X, b.X)
	overlapY := min(a.Bottom(), b.Bottom()) - max(a.Y, b.Y)

	ca, cb := a.Center(), b.Center()

	// Ties prefer the X axis
	if overlapX <= overlapY {
		c.Normal = vmath.Vec2{X: vmath.Sign(cb.X - ca.X)}
		c.Depth = overlapX
	} else {
		c.Normal = vmath.Vec2{Y: vmath.Sign(cb.Y - ca.Y)}
		c.Depth = overlapY
	}
	return c, true
}

// CollidePair runs Collide and stamps the canonical pair for indices i and j
// The normal is flipped when i > j so it keeps pointing from Pair.A to Pair.B
func CollidePair(i, j int, a, b AABB) (CollisionResult, bool) {
	if i > j {
		i, j = j, i
		a, b = b, a
	}
	c, ok := Collide(a, b)
	if !ok {
		return c, false
	}
	c.Pair = CollisionPair{A: i, B: j}
	return c, true
}
