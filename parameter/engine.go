package parameter

import "time"

// Tick timing
const (
	// MaxDeltaTime caps the elapsed time fed into one tick (seconds)
	// Larger steps after stalls or paused terminals would tunnel and explode velocities
	MaxDeltaTime = 1.0 / 15.0

	// TickInterval is the scheduler's fixed tick period (~60 Hz)
	TickInterval = 16 * time.Millisecond

	// FrameUpdateInterval is the demo renderer frame period
	FrameUpdateInterval = 16 * time.Millisecond
)

// Spatial hash limits
const (
	// DefaultCellSize is used when a non-positive cell size is requested and the batch has no valid extents
	DefaultCellSize = 64.0

	// MaxCellsPerBody bounds the cells a single box may cover; the cell size grows to respect it
	MaxCellsPerBody = 4096

	// MaxCellCoord saturates cell coordinates so huge finite positions stay representable
	MaxCellCoord = 1 << 30
)
