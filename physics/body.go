package physics

import (
	"fmt"
	"math"

	"github.com/lixenwraith/boxphys/vmath"
)

// RigidBody is a box with velocity and mass
// Static bodies have infinite mass, never move and never receive impulse
type RigidBody struct {
	ID     int        `yaml:"id"`
	Box    AABB       `yaml:"box"`
	Vel    vmath.Vec2 `yaml:"vel"`
	Mass   float64    `yaml:"mass"`
	Static bool       `yaml:"static"`
}

// NewBody returns a dynamic body at rest
func NewBody(id int, box AABB, mass float64) RigidBody {
	return RigidBody{ID: id, Box: box, Mass: mass}
}

// NewStaticBody returns an immovable body with infinite mass
func NewStaticBody(id int, box AABB) RigidBody {
	return RigidBody{ID: id, Box: box, Mass: math.Inf(1), Static: true}
}

// InvMass returns 1/mass, 0 for static bodies
func (b *RigidBody) InvMass() float64 {
	if b.Static {
		return 0
	}
	return 1 / b.Mass
}

// Validate checks body invariants; the error wraps one of the package sentinels
func (b *RigidBody) Validate() error {
	if err := b.Box.Validate(); err != nil {
		return fmt.Errorf("body %d box: %w", b.ID, err)
	}
	if !b.Vel.IsFinite() {
		return fmt.Errorf("body %d velocity: %w", b.ID, ErrNonFinite)
	}
	if !b.Static && (!vmath.IsFinite(b.Mass) || b.Mass <= 0) {
		return fmt.Errorf("body %d mass %v: %w", b.ID, b.Mass, ErrInvalidMass)
	}
	return nil
}

// KineticEnergy returns ½·m·|v|², zero for static bodies
func (b *RigidBody) KineticEnergy() float64 {
	if b.Static {
		return 0
	}
	return 0.5 * b.Mass * b.Vel.LengthSq()
}
