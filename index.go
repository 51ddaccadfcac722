package orbit

import "math"

// cellKey addresses one grid cell. Coordinates are floor(pos/cellSize),
// so negative screen positions hash to negative cells rather than
// aliasing cell zero.
type cellKey struct {
	X, Y int32
}

// SpatialIndex is a uniform grid hash over 2D screen positions. It
// bounds neighbor-search cost: a query touches only the cells within
// ceil(radius/cellSize) of the query cell instead of every point.
// Returned candidates are a superset of the true in-radius set; the
// caller filters by exact distance. Cell slices are retained across
// Clear so a steady-state rebuild allocates nothing.
type SpatialIndex struct {
	cellSize float64
	cells    map[cellKey][]int32
}

// NewSpatialIndex creates an index with the given cell size in pixels.
// Non-positive sizes use DefaultCellSize.
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int32),
	}
}

// CellSize returns the grid cell size in pixels.
func (s *SpatialIndex) CellSize() float64 {
	return s.cellSize
}

func (s *SpatialIndex) keyFor(x, y float64) cellKey {
	return cellKey{
		X: int32(math.Floor(x / s.cellSize)),
		Y: int32(math.Floor(y / s.cellSize)),
	}
}

// Insert places a point index in the cell containing (x, y).
func (s *SpatialIndex) Insert(index int, x, y float64) {
	k := s.keyFor(x, y)
	s.cells[k] = append(s.cells[k], int32(index))
}

// Clear empties all cells, keeping their backing storage.
func (s *SpatialIndex) Clear() {
	for k, bucket := range s.cells {
		s.cells[k] = bucket[:0]
	}
}

// QueryNear appends to dst every index inserted into the cell
// containing (x, y) or any cell within ceil(radius/cellSize) cells in
// each direction, and returns dst. The result over-fetches by up to one
// cell ring; callers must still filter by exact distance.
func (s *SpatialIndex) QueryNear(dst []int, x, y, radius float64) []int {
	if radius < 0 {
		return dst
	}
	span := int32(math.Ceil(radius / s.cellSize))
	center := s.keyFor(x, y)
	for cy := center.Y - span; cy <= center.Y+span; cy++ {
		for cx := center.X - span; cx <= center.X+span; cx++ {
			for _, idx := range s.cells[cellKey{X: cx, Y: cy}] {
				dst = append(dst, int(idx))
			}
		}
	}
	return dst
}
