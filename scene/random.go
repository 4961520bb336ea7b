package scene

import (
	"math/rand"

	"github.com/lixenwraith/boxphys/physics"
)

// Random body generation ranges
const (
	minExtent   = 4.0
	maxExtent   = 24.0
	maxSpeed    = 120.0
	massPerArea = 0.01
)

// Random returns n dynamic bodies inside domain, deterministic for a given seed
// IDs run 1..n and mass scales with area
func Random(n int, domain physics.AABB, seed int64) []physics.RigidBody {
	rng := rand.New(rand.NewSource(seed))
	bodies := make([]physics.RigidBody, n)

	for i := range bodies {
		w := minExtent + rng.Float64()*(maxExtent-minExtent)
		h := minExtent + rng.Float64()*(maxExtent-minExtent)
		// Keep boxes inside the domain even when it is smaller than the extent range
		w = min(w, domain.Width)
		h = min(h, domain.Height)

		x := domain.X + rng.Float64()*(domain.Width-w)
		y := domain.Y + rng.Float64()*(domain.Height-h)

		b := physics.NewBody(i+1, physics.Box(x, y, w, h), w*h*massPerArea)
		b.Vel.X = (rng.Float64()*2 - 1) * maxSpeed
		b.Vel.Y = (rng.Float64()*2 - 1) * maxSpeed
		bodies[i] = b
	}
	return bodies
}

// Boxes extracts the bounding boxes of bodies
func Boxes(bodies []physics.RigidBody) []physics.AABB {
	boxes := make([]physics.AABB, len(bodies))
	for i := range bodies {
		boxes[i] = bodies[i].Box
	}
	return boxes
}
