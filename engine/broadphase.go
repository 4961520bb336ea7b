package engine

import (
	"slices"

	"github.com/lixenwraith/boxphys/physics"
)

// DetectMode identifies the broad-phase strategy used for a pass
type DetectMode uint8

const (
	DetectNaive DetectMode = iota
	DetectSpatialHash
)

func (m DetectMode) String() string {
	switch m {
	case DetectNaive:
		return "naive"
	case DetectSpatialHash:
		return "spatial-hash"
	default:
		return "unknown"
	}
}

// SpatialHashOptions toggles and sizes the accelerated broad phase
type SpatialHashOptions struct {
	EnableOptimization bool    `toml:"enable_optimization" yaml:"enable_optimization"`
	CellSize           float64 `toml:"cell_size" yaml:"cell_size"`
}

// DetectOptions configures Detect; nil selects naive mode
type DetectOptions struct {
	SpatialHash *SpatialHashOptions
}

// DetectStats describes the last detect pass
type DetectStats struct {
	Mode       DetectMode
	Bodies     int     // boxes in the batch
	Skipped    int     // malformed boxes ignored by both modes
	Candidates int     // pairs handed to the narrow phase, at most n(n-1)/2
	Collisions int     // confirmed pairs
	CellSize   float64 // effective cell size, 0 in naive mode
	Cells      int     // non-empty cells, 0 in naive mode
}

// Detector runs broad and narrow phase, reusing its grid and buffers between calls
// Not safe for concurrent use
type Detector struct {
	grid       *SpatialHashGrid
	valid      []bool
	candidates []int
	results    []physics.CollisionResult
	stats      DetectStats
}

// NewDetector creates a detector with an empty grid
func NewDetector() *Detector {
	return &Detector{
		grid: NewSpatialHashGrid(0),
	}
}

// Detect is the pure entry point: confirmed collisions for boxes, in canonical pair order
func Detect(boxes []physics.AABB, opts *DetectOptions) []physics.CollisionResult {
	return slices.Clone(NewDetector().Detect(boxes, opts))
}

// Stats returns counters of the most recent Detect call
func (d *Detector) Stats() DetectStats {
	return d.stats
}

// Detect returns confirmed collisions sorted by pair
// The returned slice is owned by the detector and overwritten by the next call
func (d *Detector) Detect(boxes []physics.AABB, opts *DetectOptions) []physics.CollisionResult {
	d.results = d.results[:0]
	d.stats = DetectStats{Bodies: len(boxes)}

	d.valid = slices.Grow(d.valid[:0], len(boxes))[:len(boxes)]
	for i, b := range boxes {
		d.valid[i] = b.Valid()
		if !d.valid[i] {
			d.stats.Skipped++
		}
	}

	if opts != nil && opts.SpatialHash != nil && opts.SpatialHash.EnableOptimization {
		d.detectSpatial(boxes, opts.SpatialHash.CellSize)
	} else {
		d.detectNaive(boxes)
	}

	slices.SortFunc(d.results, func(a, b physics.CollisionResult) int {
		if a.Pair == b.Pair {
			return 0
		}
		if a.Pair.Less(b.Pair) {
			return -1
		}
		return 1
	})
	d.stats.Collisions = len(d.results)
	return d.results
}

// detectNaive tests every unordered pair i < j
func (d *Detector) detectNaive(boxes []physics.AABB) {
	d.stats.Mode = DetectNaive
	for i := 0; i < len(boxes); i++ {
		if !d.valid[i] {
			continue
		}
		for j := i + 1; j < len(boxes); j++ {
			if !d.valid[j] {
				continue
			}
			d.narrow(i, j, boxes)
		}
	}
}

// detectSpatial prunes with a fresh grid, canonical ordering j > i prevents duplicate emission
func (d *Detector) detectSpatial(boxes []physics.AABB, cellSize float64) {
	d.stats.Mode = DetectSpatialHash

	d.grid.Reset(ResolveCellSize(cellSize, boxes))
	for i, b := range boxes {
		if d.valid[i] {
			d.grid.Insert(i, b)
		}
	}
	d.stats.CellSize = d.grid.CellSize()
	d.stats.Cells = d.grid.CellCount()

	for i, b := range boxes {
		if !d.valid[i] {
			continue
		}
		d.candidates = d.grid.CandidatesFor(i, b, d.candidates[:0])
		for _, j := range d.candidates {
			if j <= i {
				continue
			}
			d.narrow(i, j, boxes)
		}
	}
}

func (d *Detector) narrow(i, j int, boxes []physics.AABB) {
	d.stats.Candidates++
	if c, ok := physics.CollidePair(i, j, boxes[i], boxes[j]); ok {
		d.results = append(d.results, c)
	}
}
