package engine

import (
	"math"

	"github.com/lixenwraith/boxphys/parameter"
	"github.com/lixenwraith/boxphys/physics"
)

// BodyWarning flags a body that was excluded or corrected during a tick
type BodyWarning struct {
	Index    int // position in the tick's body slice
	ID       int
	Err      error
	Excluded bool // true when the body skipped the tick entirely
}

// TickResult is the immutable outcome of one tick
// Slices are freshly allocated and never touched by the engine afterwards
type TickResult struct {
	Tick       uint64
	Dt         float64 // clamped delta actually integrated
	Bodies     []physics.RigidBody
	Collisions []physics.CollisionResult // pairs index into Bodies
	Warnings   []BodyWarning
	Stats      DetectStats
}

// Context is the caller-owned scratch state threaded through ticks
// It keeps the detector and buffers alive between ticks; the engine holds no global state
type Context struct {
	detector *Detector
	ticks    uint64

	// Compacted view of valid bodies for the broad phase
	boxes []physics.AABB
	index []int
}

// NewContext creates an empty tick context
func NewContext() *Context {
	return &Context{
		detector: NewDetector(),
	}
}

// Ticks returns the number of completed ticks
func (c *Context) Ticks() uint64 {
	return c.ticks
}

// RunTick advances bodies by one step using a throwaway context
func RunTick(bodies []physics.RigidBody, cfg Config, dt float64) (TickResult, error) {
	return NewContext().Tick(bodies, cfg, dt)
}

// Tick runs the full pipeline on a copy of bodies:
// gravity, integrate, damping, boundary clamp, broad phase, narrow phase, resolve, numeric guard
// Malformed bodies are passed through unchanged and reported; a malformed config fails the call
func (c *Context) Tick(bodies []physics.RigidBody, cfg Config, dt float64) (TickResult, error) {
	if err := cfg.Validate(); err != nil {
		return TickResult{}, err
	}
	dt = cfg.ClampDelta(dt)

	res := TickResult{
		Dt:     dt,
		Bodies: make([]physics.RigidBody, len(bodies)),
	}
	copy(res.Bodies, bodies)

	c.boxes = c.boxes[:0]
	c.index = c.index[:0]

	rest := cfg.RestThresholdFor(dt)
	bounce := physics.BounceOptions{
		Restitution:   cfg.BoundaryRestitution,
		RestThreshold: rest,
	}

	for i := range res.Bodies {
		b := &res.Bodies[i]
		if b.Static {
			b.Mass = math.Inf(1)
		}
		if err := b.Validate(); err != nil {
			res.Warnings = append(res.Warnings, BodyWarning{Index: i, ID: b.ID, Err: err, Excluded: true})
			continue
		}

		physics.ApplyGravity(b, cfg.Gravity, dt)
		physics.Integrate(b, dt)
		physics.ApplyDamping(b, cfg.Damping)
		physics.ReflectBounds(b, cfg.Domain, bounce)

		c.boxes = append(c.boxes, b.Box)
		c.index = append(c.index, i)
	}

	contacts := c.detector.Detect(c.boxes, &DetectOptions{SpatialHash: &cfg.SpatialHash})
	res.Stats = c.detector.Stats()

	opts := physics.ResolveOptions{
		Restitution:   cfg.Restitution,
		RestThreshold: rest,
	}
	res.Collisions = make([]physics.CollisionResult, 0, len(contacts))
	for _, contact := range contacts {
		// index is ascending so the remapped pair stays canonical
		contact.Pair = physics.CollisionPair{A: c.index[contact.Pair.A], B: c.index[contact.Pair.B]}
		physics.ResolveWith(&res.Bodies[contact.Pair.A], &res.Bodies[contact.Pair.B], contact, opts)
		res.Collisions = append(res.Collisions, contact)
	}

	for _, i := range c.index {
		b := &res.Bodies[i]
		if physics.Sanitize(b, parameter.MaxVelocity, parameter.MaxCoordinate) {
			res.Warnings = append(res.Warnings, BodyWarning{Index: i, ID: b.ID, Err: ErrNumericClamp})
		}
	}

	c.ticks++
	res.Tick = c.ticks
	return res, nil
}
