package audio

import (
	"github.com/lixenwraith/boxphys/engine"
	"github.com/lixenwraith/boxphys/physics"
	"github.com/lixenwraith/boxphys/vmath"
)

// Impact is a contact that began in the latest tick
type Impact struct {
	A, B  int     // body IDs
	Speed float64 // relative speed along the contact normal after resolution
}

// ContactTracker diffs collision sets between ticks so resting contacts stay silent
type ContactTracker struct {
	active map[[2]int]struct{}
	next   map[[2]int]struct{}
}

// NewContactTracker creates an empty tracker
func NewContactTracker() *ContactTracker {
	return &ContactTracker{
		active: make(map[[2]int]struct{}),
		next:   make(map[[2]int]struct{}),
	}
}

// Update records res and returns contacts absent from the previous tick
// Pairs are keyed by body ID since indices shift when bodies are added
func (t *ContactTracker) Update(res engine.TickResult, dst []Impact) []Impact {
	clear(t.next)
	for _, c := range res.Collisions {
		a, b := &res.Bodies[c.Pair.A], &res.Bodies[c.Pair.B]
		key := [2]int{a.ID, b.ID}
		t.next[key] = struct{}{}
		if _, ok := t.active[key]; ok {
			continue
		}
		dst = append(dst, Impact{A: a.ID, B: b.ID, Speed: closingSpeed(a, b, c)})
	}
	t.active, t.next = t.next, t.active
	return dst
}

// Reset forgets all active contacts
func (t *ContactTracker) Reset() {
	clear(t.active)
}

func closingSpeed(a, b *physics.RigidBody, c physics.CollisionResult) float64 {
	v := b.Vel.Sub(a.Vel).Dot(c.Normal)
	if v < 0 {
		return -v
	}
	return v
}

// WallTracker reports bodies that bounced off the domain boundary since the previous tick
type WallTracker struct {
	prev map[int]vmath.Vec2
	next map[int]vmath.Vec2
}

// NewWallTracker creates an empty tracker
func NewWallTracker() *WallTracker {
	return &WallTracker{
		prev: make(map[int]vmath.Vec2),
		next: make(map[int]vmath.Vec2),
	}
}

// Update returns how many bodies touch an edge of domain with a velocity component flipped inward
func (t *WallTracker) Update(res engine.TickResult, domain physics.AABB) int {
	clear(t.next)
	hits := 0
	for i := range res.Bodies {
		b := &res.Bodies[i]
		if b.Static {
			continue
		}
		t.next[b.ID] = b.Vel
		pv, ok := t.prev[b.ID]
		if !ok {
			continue
		}
		switch {
		case b.Box.X <= domain.X && pv.X < 0 && b.Vel.X >= 0,
			b.Box.Right() >= domain.Right() && pv.X > 0 && b.Vel.X <= 0,
			b.Box.Y <= domain.Y && pv.Y < 0 && b.Vel.Y >= 0,
			b.Box.Bottom() >= domain.Bottom() && pv.Y > 0 && b.Vel.Y <= 0:
			hits++
		}
	}
	t.prev, t.next = t.next, t.prev
	return hits
}
