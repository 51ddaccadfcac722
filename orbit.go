package orbit

import (
	"errors"
	"math"
)

// Error sentinels for the engine's public entry points. All returned
// errors wrap one of these; test with errors.Is.
var (
	// ErrInvalidArgument reports a malformed argument such as a negative
	// generation count.
	ErrInvalidArgument = errors.New("orbit: invalid argument")
	// ErrIndexOutOfRange reports an index outside [0, Count()).
	// Index-based operations never silently clamp.
	ErrIndexOutOfRange = errors.New("orbit: index out of range")
	// ErrDegenerateCamera reports NaN/infinite rotation or distance
	// values, or a non-positive view distance or viewport. The engine
	// skips the affected pass instead of propagating NaNs.
	ErrDegenerateCamera = errors.New("orbit: degenerate camera state")
)

// Defaults used when a Config or StoreConfig field is zero.
const (
	// DefaultRadius is the bounding sphere radius in world units.
	DefaultRadius = 100.0
	// DefaultBasePace is the base angular velocity in degrees per
	// second; each point draws a pace in [0.5, 3.0] times this.
	DefaultBasePace = 12.0
	// DefaultCellSize is the spatial hash cell size in pixels.
	DefaultCellSize = 50.0
	// DefaultProximity is the hover/click threshold in pixels.
	DefaultProximity = 64.0
	// DefaultViewDistance is the camera view distance in world units.
	DefaultViewDistance = 250.0
)

// Color is an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default annotation tint.
var ColorWhite = Color{1, 1, 1, 1}

// Vec3 is a position in the bounded world domain.
type Vec3 struct {
	X, Y, Z float64
}

// Length returns the Euclidean distance from the origin.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ScreenPos is a projected screen-space coordinate. Depth is the
// rotated view-space z, usable for draw ordering; it does not affect
// hit testing.
type ScreenPos struct {
	X, Y  float64
	Depth float64
}

// Spherical is the derived angular form of a position. Azimuth is the
// angle in the XY plane from the positive X axis in [0, 360) degrees;
// Elevation is the angle above the XY plane in [-90, 90] degrees.
type Spherical struct {
	Azimuth   float64
	Elevation float64
	Radius    float64
}

// ToSpherical converts a Cartesian position to spherical form.
// The degenerate origin maps to azimuth = elevation = 0.
func ToSpherical(v Vec3) Spherical {
	r := v.Length()
	if r == 0 {
		return Spherical{}
	}
	az := normalizeAzimuth(math.Atan2(v.Y, v.X) * 180 / math.Pi)
	el := math.Asin(v.Z/r) * 180 / math.Pi
	return Spherical{Azimuth: az, Elevation: el, Radius: r}
}

// FromSpherical reconstructs a Cartesian position in the XY plane:
// the full radius is laid out along the azimuth direction and z is
// flattened to 0. Elevation is accepted but not reapplied. This is the
// locked orbital-motion contract: radius and azimuth round-trip
// exactly, elevation does not.
func FromSpherical(s Spherical) Vec3 {
	az := s.Azimuth * math.Pi / 180
	sin, cos := math.Sincos(az)
	return Vec3{X: s.Radius * cos, Y: s.Radius * sin, Z: 0}
}

// normalizeAzimuth wraps an angle in degrees into [0, 360).
func normalizeAzimuth(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// CameraState is the read-only camera orientation and viewport the
// engine consumes each frame. Rotations are in degrees.
type CameraState struct {
	RotationX float64 // pitch, about the X axis
	RotationY float64 // yaw, about the Y axis
	RotationZ float64 // roll, about the view axis (Perspective with UseRoll, or Polar plot rotation)
	// ViewDistance scales the projection: screen scale is
	// min(viewport) / ViewDistance, so smaller distances zoom in.
	ViewDistance   float64
	ViewportWidth  float64
	ViewportHeight float64
}

// check validates the camera for a projection pass.
func (c CameraState) check() error {
	for _, f := range [...]float64{c.RotationX, c.RotationY, c.RotationZ, c.ViewDistance, c.ViewportWidth, c.ViewportHeight} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrDegenerateCamera
		}
	}
	if c.ViewDistance <= 0 || c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return ErrDegenerateCamera
	}
	return nil
}

// VisualState is the mutually exclusive visual priority of a point.
// Selected takes precedence over hovered when they coincide.
type VisualState uint8

const (
	VisualIdle     VisualState = iota // neither hovered nor selected
	VisualHovered                     // transient pointer proximity
	VisualSelected                    // sticky click selection
)
