package parameter

// Physics defaults, units are pixels and seconds with +Y pointing down
const (
	// DefaultGravity is vertical acceleration applied to dynamic bodies (px/s²)
	DefaultGravity = 980.0

	// DefaultDamping is the per-tick velocity multiplier, must be in (0, 1]
	DefaultDamping = 0.999

	// DefaultRestitution is the body-body bounciness (0 inelastic, 1 elastic)
	DefaultRestitution = 0.8

	// DefaultBoundaryRestitution scales the reflected velocity on domain walls
	DefaultBoundaryRestitution = 0.5

	// DefaultRestThreshold is the closing speed (px/s) below which contacts resolve inelastically
	// Slightly above one tick of gravity at 60Hz (980/60 ≈ 16.3)
	DefaultRestThreshold = 20.0

	// RestGravityTicks floors the rest threshold at this many ticks of gravity for the current dt
	RestGravityTicks = 1.5

	// MaxVelocity bounds each velocity component after resolution (px/s)
	MaxVelocity = 1e5

	// MaxCoordinate bounds each position component after resolution (px)
	MaxCoordinate = 1e9
)
