package engine

import (
	"fmt"
	"math"

	"github.com/lixenwraith/boxphys/parameter"
	"github.com/lixenwraith/boxphys/physics"
	"github.com/lixenwraith/boxphys/vmath"
)

// Config holds the physics knobs of one tick
type Config struct {
	Gravity             float64 // vertical acceleration, px/s², +Y is down
	Damping             float64 // per-tick velocity multiplier in (0, 1]
	Restitution         float64 // body-body bounciness in [0, 1]
	BoundaryRestitution float64 // wall bounciness in [0, 1]
	RestThreshold       float64 // closing speed below which contacts are inelastic, 0 disables
	MaxDeltaTime        float64 // dt clamp in seconds, must be positive

	Domain      physics.AABB
	SpatialHash SpatialHashOptions
}

// DefaultConfig returns parameter defaults with the accelerated broad phase on
func DefaultConfig(domain physics.AABB) Config {
	return Config{
		Gravity:             parameter.DefaultGravity,
		Damping:             parameter.DefaultDamping,
		Restitution:         parameter.DefaultRestitution,
		BoundaryRestitution: parameter.DefaultBoundaryRestitution,
		RestThreshold:       parameter.DefaultRestThreshold,
		MaxDeltaTime:        parameter.MaxDeltaTime,
		Domain:              domain,
		SpatialHash: SpatialHashOptions{
			EnableOptimization: true,
			CellSize:           0, // derived from the batch
		},
	}
}

// Validate reports contract violations; a zero Config is rejected
// A non-positive cell size is not an error, the detector substitutes one
func (c Config) Validate() error {
	if !vmath.IsFinite(c.Gravity) {
		return fmt.Errorf("%w: gravity %v", ErrInvalidConfig, c.Gravity)
	}
	if !(c.Damping > 0 && c.Damping <= 1) {
		return fmt.Errorf("%w: damping %v outside (0, 1]", ErrInvalidConfig, c.Damping)
	}
	if !(c.Restitution >= 0 && c.Restitution <= 1) {
		return fmt.Errorf("%w: restitution %v outside [0, 1]", ErrInvalidConfig, c.Restitution)
	}
	if !(c.BoundaryRestitution >= 0 && c.BoundaryRestitution <= 1) {
		return fmt.Errorf("%w: boundary restitution %v outside [0, 1]", ErrInvalidConfig, c.BoundaryRestitution)
	}
	if !vmath.IsFinite(c.RestThreshold) || c.RestThreshold < 0 {
		return fmt.Errorf("%w: rest threshold %v", ErrInvalidConfig, c.RestThreshold)
	}
	if !vmath.IsFinite(c.MaxDeltaTime) || c.MaxDeltaTime <= 0 {
		return fmt.Errorf("%w: max delta time %v", ErrInvalidConfig, c.MaxDeltaTime)
	}
	if err := c.Domain.Validate(); err != nil {
		return fmt.Errorf("%w: domain: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ClampDelta bounds dt to [0, MaxDeltaTime], NaN becomes 0
func (c Config) ClampDelta(dt float64) float64 {
	if !(dt > 0) {
		return 0
	}
	return min(dt, c.MaxDeltaTime)
}

// RestThresholdFor returns the rest threshold for a tick of dt
// It is at least RestGravityTicks of gravity over dt; 0 stays disabled
func (c Config) RestThresholdFor(dt float64) float64 {
	if c.RestThreshold == 0 {
		return 0
	}
	return max(c.RestThreshold, parameter.RestGravityTicks*math.Abs(c.Gravity)*dt)
}
