package orbit

import (
	"fmt"
	"math/rand/v2"
)

// Point is one member of the orbiting population. Pace is the point's
// angular velocity in degrees per second, drawn once at creation and
// constant for the point's life.
type Point struct {
	Pos   Vec3
	Color Color
	Pace  float64
}

// StoreConfig controls point generation. Zero fields use defaults.
type StoreConfig struct {
	// Radius is the bounding sphere radius. Positions always satisfy
	// |pos| <= Radius.
	Radius float64
	// BasePace is the base angular velocity in degrees per second.
	// Each point's pace is uniform in [0.5, 3.0] * BasePace.
	BasePace float64
}

// PointStore owns the point set and its physical state, and applies
// orbital motion. Indices are compacted on deletion; an index is only
// stable while no lower-indexed point is removed.
type PointStore struct {
	points   []Point
	radius   float64
	basePace float64
	rng      *rand.Rand
}

// NewPointStore creates an empty store.
func NewPointStore(cfg StoreConfig) *PointStore {
	if cfg.Radius <= 0 {
		cfg.Radius = DefaultRadius
	}
	if cfg.BasePace <= 0 {
		cfg.BasePace = DefaultBasePace
	}
	return &PointStore{
		radius:   cfg.Radius,
		basePace: cfg.BasePace,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Radius returns the bounding sphere radius.
func (s *PointStore) Radius() float64 {
	return s.radius
}

// Count returns the number of points.
func (s *PointStore) Count() int {
	return len(s.points)
}

// At returns the point at index i.
func (s *PointStore) At(i int) (Point, error) {
	if i < 0 || i >= len(s.points) {
		return Point{}, fmt.Errorf("%w: point %d of %d", ErrIndexOutOfRange, i, len(s.points))
	}
	return s.points[i], nil
}

// Points returns the live point slice. The returned slice MUST NOT be
// mutated; it is invalidated by any store mutation.
func (s *PointStore) Points() []Point {
	return s.points
}

// Generate replaces the point set with n freshly sampled points.
// Positions are drawn uniformly inside the bounding sphere by
// rejection sampling, which gives a uniform volumetric distribution.
func (s *PointStore) Generate(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: generate count %d", ErrInvalidArgument, n)
	}
	s.points = s.points[:0]
	for i := 0; i < n; i++ {
		s.points = append(s.points, s.randomPoint())
	}
	return nil
}

// GenerateSeeded is Generate with a deterministic RNG seed. The same
// seed and count always produce an identical point set. The store's
// RNG stays reseeded afterwards, so subsequent AddRandom calls are
// reproducible too.
func (s *PointStore) GenerateSeeded(n int, seed uint64) error {
	if n < 0 {
		return fmt.Errorf("%w: generate count %d", ErrInvalidArgument, n)
	}
	s.rng = rand.New(rand.NewPCG(seed, seed))
	return s.Generate(n)
}

// AddRandom appends one freshly sampled point and returns its index.
func (s *PointStore) AddRandom() int {
	s.points = append(s.points, s.randomPoint())
	return len(s.points) - 1
}

// RemoveAt deletes the point at index i, compacting the sequence so
// every higher index shifts down by one.
func (s *PointStore) RemoveAt(i int) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("%w: remove %d of %d", ErrIndexOutOfRange, i, len(s.points))
	}
	s.points = append(s.points[:i], s.points[i+1:]...)
	return nil
}

// RemoveLast deletes the highest-indexed point.
func (s *PointStore) RemoveLast() error {
	if len(s.points) == 0 {
		return fmt.Errorf("%w: remove from empty store", ErrIndexOutOfRange)
	}
	s.points = s.points[:len(s.points)-1]
	return nil
}

// Clear removes all points.
func (s *PointStore) Clear() {
	s.points = s.points[:0]
}

// Advance applies orbital motion for deltaSeconds. No-op when
// deltaSeconds <= 0. Each point's azimuth advances by pace * dt
// (normalized to [0, 360)); the position is rebuilt from the advanced
// azimuth with the full radius laid out in the XY plane (see
// FromSpherical). The 3D radius is preserved exactly; z collapses to 0
// on the first advance and is invariant afterwards.
func (s *PointStore) Advance(deltaSeconds float64) {
	if deltaSeconds <= 0 {
		return
	}
	for i := range s.points {
		p := &s.points[i]
		sp := ToSpherical(p.Pos)
		sp.Azimuth = normalizeAzimuth(sp.Azimuth + p.Pace*deltaSeconds)
		p.Pos = FromSpherical(sp)
	}
}

// randomPoint samples a position uniformly inside the bounding sphere,
// a saturated random color, and a pace in [0.5, 3.0] * basePace.
func (s *PointStore) randomPoint() Point {
	r := s.radius
	var pos Vec3
	for {
		pos = Vec3{
			X: (s.rng.Float64()*2 - 1) * r,
			Y: (s.rng.Float64()*2 - 1) * r,
			Z: (s.rng.Float64()*2 - 1) * r,
		}
		if pos.Length() <= r {
			break
		}
	}
	return Point{
		Pos: pos,
		Color: Color{
			R: 0.25 + 0.75*s.rng.Float64(),
			G: 0.25 + 0.75*s.rng.Float64(),
			B: 0.25 + 0.75*s.rng.Float64(),
			A: 1,
		},
		Pace: (0.5 + 2.5*s.rng.Float64()) * s.basePace,
	}
}
