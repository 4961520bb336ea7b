package physics

import (
	"math"

	"github.com/lixenwraith/boxphys/vmath"
)

// ApplyGravity adds g·dt to vertical velocity of a dynamic body
func ApplyGravity(b *RigidBody, gravity, dt float64) {
	if b.Static {
		return
	}
	b.Vel.Y += gravity * dt
}

// Integrate performs explicit Euler position update: p = p + v*dt
func Integrate(b *RigidBody, dt float64) {
	if b.Static {
		return
	}
	b.Box = b.Box.Translate(b.Vel.Scale(dt))
}

// ApplyDamping multiplies velocity by the per-tick damping factor
func ApplyDamping(b *RigidBody, damping float64) {
	if b.Static {
		return
	}
	b.Vel = b.Vel.Scale(damping)
}

// ApplyImpulse adds velocity delta scaled by inverse mass
func ApplyImpulse(b *RigidBody, impulse vmath.Vec2) {
	if b.Static {
		return
	}
	b.Vel = b.Vel.Add(impulse.Scale(b.InvMass()))
}

// BounceOptions tunes wall reflection
type BounceOptions struct {
	// Restitution scales the reflected velocity component
	Restitution float64
	// RestThreshold is the wall-normal speed below which the component is zeroed, 0 disables
	RestThreshold float64
}

// reflect returns the bounced component for an outward speed v
func (o BounceOptions) reflect(v float64) float64 {
	if o.RestThreshold > 0 && math.Abs(v) < o.RestThreshold {
		return 0
	}
	return -v * o.Restitution
}

// ReflectBoundsX clamps the box horizontally into domain and bounces velocity
// Velocity is forced to point back inside, scaled by restitution; returns true if a wall was hit
func ReflectBoundsX(b *RigidBody, domain AABB, opts BounceOptions) bool {
	if b.Box.X < domain.X {
		b.Box.X = domain.X
		if b.Vel.X < 0 {
			b.Vel.X = opts.reflect(b.Vel.X)
		}
		return true
	}
	if b.Box.Right() > domain.Right() {
		b.Box.X = max(domain.Right()-b.Box.Width, domain.X)
		if b.Vel.X > 0 {
			b.Vel.X = opts.reflect(b.Vel.X)
		}
		return true
	}
	return false
}

// ReflectBoundsY clamps the box vertically into domain and bounces velocity
func ReflectBoundsY(b *RigidBody, domain AABB, opts BounceOptions) bool {
	if b.Box.Y < domain.Y {
		b.Box.Y = domain.Y
		if b.Vel.Y < 0 {
			b.Vel.Y = opts.reflect(b.Vel.Y)
		}
		return true
	}
	if b.Box.Bottom() > domain.Bottom() {
		b.Box.Y = max(domain.Bottom()-b.Box.Height, domain.Y)
		if b.Vel.Y > 0 {
			b.Vel.Y = opts.reflect(b.Vel.Y)
		}
		return true
	}
	return false
}

// ReflectBounds handles both axes, returns true if any wall was hit
func ReflectBounds(b *RigidBody, domain AABB, opts BounceOptions) bool {
	if b.Static {
		return false
	}
	rx := ReflectBoundsX(b, domain, opts)
	ry := ReflectBoundsY(b, domain, opts)
	return rx || ry
}

// Sanitize clamps non-finite or runaway velocity and position components
// Returns true if the body was modified
func Sanitize(b *RigidBody, maxVelocity, maxCoordinate float64) bool {
	if b.Static {
		return false
	}
	vel, cv := b.Vel.ClampComponents(maxVelocity)
	x, cx := vmath.ClampFinite(b.Box.X, maxCoordinate)
	y, cy := vmath.ClampFinite(b.Box.Y, maxCoordinate)
	b.Vel, b.Box.X, b.Box.Y = vel, x, y
	return cv || cx || cy
}
