package orbit

import "math"

// angleEpsilon is the threshold beyond which a camera field change
// invalidates cached frame constants.
const angleEpsilon = 1e-9

// Projector converts points plus a camera orientation into screen
// coordinates. Implementations cache per-frame trigonometric terms and
// must recompute them whenever the camera changes by more than a
// negligible epsilon. MarkDirty forces recomputation on the next call,
// for camera changes made outside the normal tick (e.g. a drag).
type Projector interface {
	Project(dst []ScreenPos, points []Point, cam CameraState) ([]ScreenPos, error)
	MarkDirty()
}

// cameraChanged reports whether any camera field moved by more than
// angleEpsilon since the cached state.
func cameraChanged(a, b CameraState) bool {
	return math.Abs(a.RotationX-b.RotationX) > angleEpsilon ||
		math.Abs(a.RotationY-b.RotationY) > angleEpsilon ||
		math.Abs(a.RotationZ-b.RotationZ) > angleEpsilon ||
		math.Abs(a.ViewDistance-b.ViewDistance) > angleEpsilon ||
		math.Abs(a.ViewportWidth-b.ViewportWidth) > angleEpsilon ||
		math.Abs(a.ViewportHeight-b.ViewportHeight) > angleEpsilon
}

// viewScale is the view-distance-dependent screen scale factor.
func viewScale(cam CameraState) float64 {
	return math.Min(cam.ViewportWidth, cam.ViewportHeight) / cam.ViewDistance
}

// --- Perspective ---

// perspTrig holds the frame constants for a Perspective pass, computed
// once per camera change rather than once per point.
type perspTrig struct {
	sinYaw, cosYaw     float64
	sinPitch, cosPitch float64
	sinRoll, cosRoll   float64
	scale, cx, cy      float64
}

// Perspective projects points by rotating about Y (yaw) then X (pitch),
// optionally then the view axis (roll), scaling by the view distance
// factor, and translating to the viewport center. Screen Y grows
// downward, so world +Y maps above center.
type Perspective struct {
	// UseRoll enables the RotationZ roll stage.
	UseRoll bool

	trig    perspTrig
	lastCam CameraState
	valid   bool
}

// NewPerspective creates a Perspective projector without roll.
func NewPerspective() *Perspective {
	return &Perspective{}
}

// MarkDirty forces frame-constant recomputation on the next Project.
func (p *Perspective) MarkDirty() {
	p.valid = false
}

// Project appends one screen position per point to dst and returns it.
// Depth is the rotated view-space z (positive toward the viewer's far
// side).
func (p *Perspective) Project(dst []ScreenPos, points []Point, cam CameraState) ([]ScreenPos, error) {
	if err := cam.check(); err != nil {
		return dst, err
	}
	if !p.valid || cameraChanged(p.lastCam, cam) {
		p.computeTrig(cam)
	}
	t := &p.trig
	for i := range points {
		v := points[i].Pos

		// Yaw about Y.
		x := v.X*t.cosYaw + v.Z*t.sinYaw
		z := -v.X*t.sinYaw + v.Z*t.cosYaw

		// Pitch about X.
		y := v.Y*t.cosPitch - z*t.sinPitch
		z = v.Y*t.sinPitch + z*t.cosPitch

		if p.UseRoll {
			x, y = x*t.cosRoll-y*t.sinRoll, x*t.sinRoll+y*t.cosRoll
		}

		dst = append(dst, ScreenPos{
			X:     t.cx + x*t.scale,
			Y:     t.cy - y*t.scale,
			Depth: z,
		})
	}
	return dst, nil
}

func (p *Perspective) computeTrig(cam CameraState) {
	const degToRad = math.Pi / 180
	p.trig.sinYaw, p.trig.cosYaw = math.Sincos(cam.RotationY * degToRad)
	p.trig.sinPitch, p.trig.cosPitch = math.Sincos(cam.RotationX * degToRad)
	p.trig.sinRoll, p.trig.cosRoll = math.Sincos(cam.RotationZ * degToRad)
	p.trig.scale = viewScale(cam)
	p.trig.cx = cam.ViewportWidth / 2
	p.trig.cy = cam.ViewportHeight / 2
	p.lastCam = cam
	p.valid = true
}

// --- Polar ---

// Polar projects points onto a top-down azimuth/radius plot: the XY
// distance from the origin becomes the distance from the viewport
// center, rotated by RotationZ. Elevation and view distance do not
// affect the plot; the domain radius maps to the rim of the shorter
// viewport axis.
type Polar struct {
	// DomainRadius is the world radius drawn at the plot rim.
	// Zero uses DefaultRadius.
	DomainRadius float64

	sinRot, cosRot float64
	scale, cx, cy  float64
	lastCam        CameraState
	valid          bool
}

// NewPolar creates a Polar projector for the given world radius.
func NewPolar(domainRadius float64) *Polar {
	return &Polar{DomainRadius: domainRadius}
}

// MarkDirty forces frame-constant recomputation on the next Project.
func (p *Polar) MarkDirty() {
	p.valid = false
}

// Project appends one screen position per point to dst and returns it.
// Depth is the point's world z so hosts can still depth-order.
func (p *Polar) Project(dst []ScreenPos, points []Point, cam CameraState) ([]ScreenPos, error) {
	if err := cam.check(); err != nil {
		return dst, err
	}
	if !p.valid || cameraChanged(p.lastCam, cam) {
		p.computeTrig(cam)
	}
	for i := range points {
		v := points[i].Pos

		// Rotate the plot plane by RotationZ.
		x := v.X*p.cosRot - v.Y*p.sinRot
		y := v.X*p.sinRot + v.Y*p.cosRot

		dst = append(dst, ScreenPos{
			X:     p.cx + x*p.scale,
			Y:     p.cy - y*p.scale,
			Depth: v.Z,
		})
	}
	return dst, nil
}

func (p *Polar) computeTrig(cam CameraState) {
	r := p.DomainRadius
	if r <= 0 {
		r = DefaultRadius
	}
	const degToRad = math.Pi / 180
	p.sinRot, p.cosRot = math.Sincos(cam.RotationZ * degToRad)
	p.scale = math.Min(cam.ViewportWidth, cam.ViewportHeight) / (2 * r)
	p.cx = cam.ViewportWidth / 2
	p.cy = cam.ViewportHeight / 2
	p.lastCam = cam
	p.valid = true
}
