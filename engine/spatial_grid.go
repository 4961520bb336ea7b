package engine

import (
	"math"

	"github.com/lixenwraith/boxphys/parameter"
	"github.com/lixenwraith/boxphys/physics"
	"github.com/lixenwraith/boxphys/vmath"
)

// cellKey addresses one grid cell: (floor(x/cellSize), floor(y/cellSize))
type cellKey struct {
	X, Y int
}

// cellRange is the inclusive block of cells covered by one box
type cellRange struct {
	MinX, MinY int
	MaxX, MaxY int
}

// SpatialHashGrid buckets body indices into a sparse uniform grid
// Rebuilt per detect pass; it prunes candidates and never confirms a collision
type SpatialHashGrid struct {
	cellSize float64
	cells    map[cellKey][]int

	// Per-index cell coverage, valid only where inserted[i] is set
	ranges   []cellRange
	inserted []bool
	used     int // non-empty cells since last Clear
}

// NewSpatialHashGrid creates an empty grid, non-positive sizes fall back to DefaultCellSize
func NewSpatialHashGrid(cellSize float64) *SpatialHashGrid {
	g := &SpatialHashGrid{
		cells: make(map[cellKey][]int),
	}
	g.Reset(cellSize)
	return g
}

// Reset clears the grid and changes the cell size
func (g *SpatialHashGrid) Reset(cellSize float64) {
	if !vmath.IsFinite(cellSize) || cellSize <= 0 {
		cellSize = parameter.DefaultCellSize
	}
	g.cellSize = cellSize
	g.Clear()
}

// Clear removes all indices, keeping bucket capacity for the next pass
func (g *SpatialHashGrid) Clear() {
	// Drop stale keys once the map is mostly empty buckets
	if len(g.cells) > 2*g.used+64 {
		clear(g.cells)
	} else {
		for k, v := range g.cells {
			g.cells[k] = v[:0]
		}
	}
	clear(g.inserted)
	g.used = 0
}

// CellSize returns the active bucket size
func (g *SpatialHashGrid) CellSize() float64 {
	return g.cellSize
}

// CellCount returns the number of non-empty cells
func (g *SpatialHashGrid) CellCount() int {
	return g.used
}

func (g *SpatialHashGrid) rangeOf(box physics.AABB) cellRange {
	cs := g.cellSize
	return cellRange{
		MinX: vmath.FloorDiv(box.X, cs, parameter.MaxCellCoord),
		MinY: vmath.FloorDiv(box.Y, cs, parameter.MaxCellCoord),
		MaxX: vmath.FloorDiv(box.Right(), cs, parameter.MaxCellCoord),
		MaxY: vmath.FloorDiv(box.Bottom(), cs, parameter.MaxCellCoord),
	}
}

// Insert adds index to every cell the box's bounding rectangle overlaps
// Each index must be inserted at most once between clears
func (g *SpatialHashGrid) Insert(index int, box physics.AABB) {
	if index >= len(g.ranges) {
		g.ranges = append(g.ranges, make([]cellRange, index+1-len(g.ranges))...)
		g.inserted = append(g.inserted, make([]bool, index+1-len(g.inserted))...)
	}

	r := g.rangeOf(box)
	g.ranges[index] = r
	g.inserted[index] = true

	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			key := cellKey{X: x, Y: y}
			bucket := g.cells[key]
			if len(bucket) == 0 {
				g.used++
			}
			g.cells[key] = append(bucket, index)
		}
	}
}

// CandidatesFor appends to dst every index sharing a cell with index, excluding index itself
// A neighbor is emitted only from the lowest cell both ranges share, so multi-cell overlaps never repeat
func (g *SpatialHashGrid) CandidatesFor(index int, box physics.AABB, dst []int) []int {
	r := g.rangeOf(box)

	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			for _, other := range g.cells[cellKey{X: x, Y: y}] {
				if other == index {
					continue
				}
				o := g.ranges[other]
				// First shared cell: top-left corner of the range intersection
				if x != max(r.MinX, o.MinX) || y != max(r.MinY, o.MinY) {
					continue
				}
				dst = append(dst, other)
			}
		}
	}
	return dst
}

// ResolveCellSize substitutes an unusable requested size and bounds per-body cell coverage
// Invalid or non-positive requests become the mean box extent of the batch, or DefaultCellSize
// Changing the size only coarsens pruning, detection results are unaffected
func ResolveCellSize(requested float64, boxes []physics.AABB) float64 {
	var sum, largest float64
	var n int
	for _, b := range boxes {
		if !b.Valid() {
			continue
		}
		sum += (b.Width + b.Height) * 0.5
		largest = max(largest, b.Width, b.Height)
		n++
	}

	cs := requested
	if !vmath.IsFinite(cs) || cs <= 0 {
		if n > 0 && vmath.IsFinite(sum) && sum > 0 {
			cs = sum / float64(n)
		} else {
			cs = parameter.DefaultCellSize
		}
	}

	// Largest box must span at most side cells per axis: floor(w/cs)+1 <= side
	side := math.Floor(math.Sqrt(parameter.MaxCellsPerBody))
	if minCell := largest / (side - 1); cs < minCell {
		cs = minCell
	}
	return cs
}
