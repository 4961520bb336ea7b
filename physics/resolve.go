package physics

import "math"

// ResolveOptions tunes contact resolution
type ResolveOptions struct {
	// Restitution is the bounciness coefficient in [0, 1]
	Restitution float64
	// RestThreshold is the closing speed below which restitution is treated as 0, 0 disables
	RestThreshold float64
}

// Resolve separates a and b along the contact normal and applies the restitution impulse
func Resolve(a, b *RigidBody, c CollisionResult, restitution float64) {
	ResolveWith(a, b, c, ResolveOptions{Restitution: restitution})
}

// ResolveWith is Resolve with explicit options
// Mutates only dynamic bodies; a pair of static bodies is a no-op
func ResolveWith(a, b *RigidBody, c CollisionResult, opts ResolveOptions) {
	invA, invB := a.InvMass(), b.InvMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	// Positional correction, each body moves by the other's share of inverse mass
	if c.Depth > 0 {
		a.Box = a.Box.Translate(c.Normal.Scale(-c.Depth * invA / invSum))
		b.Box = b.Box.Translate(c.Normal.Scale(c.Depth * invB / invSum))
	}

	// Separating bodies receive no impulse
	vRel := b.Vel.Sub(a.Vel).Dot(c.Normal)
	if vRel > 0 {
		return
	}

	e := opts.Restitution
	if opts.RestThreshold > 0 && math.Abs(vRel) < opts.RestThreshold {
		e = 0
	}

	j := -(1 + e) * vRel / invSum
	impulse := c.Normal.Scale(j)

	if invA > 0 {
		a.Vel = a.Vel.Sub(impulse.Scale(invA))
	}
	if invB > 0 {
		b.Vel = b.Vel.Add(impulse.Scale(invB))
	}
}
