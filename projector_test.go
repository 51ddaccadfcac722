package orbit

import (
	"errors"
	"math"
	"testing"
)

// testCam is an 800x600 viewport at view distance 200, giving a screen
// scale of exactly 3.
func testCam() CameraState {
	return CameraState{ViewDistance: 200, ViewportWidth: 800, ViewportHeight: 600}
}

func projectOne(t *testing.T, p Projector, pos Vec3, cam CameraState) ScreenPos {
	t.Helper()
	out, err := p.Project(nil, []Point{{Pos: pos}}, cam)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d positions, want 1", len(out))
	}
	return out[0]
}

func TestPerspectiveOriginMapsToCenter(t *testing.T) {
	sp := projectOne(t, NewPerspective(), Vec3{}, testCam())
	if !approxEqual(sp.X, 400, 1e-9) || !approxEqual(sp.Y, 300, 1e-9) {
		t.Errorf("origin = (%f,%f), want (400,300)", sp.X, sp.Y)
	}
}

func TestPerspectiveScale(t *testing.T) {
	// Scale is min(800,600)/200 = 3; world +Y maps above center.
	sp := projectOne(t, NewPerspective(), Vec3{X: 10, Y: 20}, testCam())
	if !approxEqual(sp.X, 430, 1e-9) || !approxEqual(sp.Y, 240, 1e-9) {
		t.Errorf("(10,20,0) = (%f,%f), want (430,240)", sp.X, sp.Y)
	}
}

func TestPerspectiveYaw90(t *testing.T) {
	cam := testCam()
	cam.RotationY = 90
	// Yaw about Y sends +X into depth.
	sp := projectOne(t, NewPerspective(), Vec3{X: 10}, cam)
	if !approxEqual(sp.X, 400, 1e-6) || !approxEqual(sp.Y, 300, 1e-6) {
		t.Errorf("yawed +X = (%f,%f), want (400,300)", sp.X, sp.Y)
	}
	if !approxEqual(sp.Depth, -10, 1e-6) {
		t.Errorf("depth = %f, want -10", sp.Depth)
	}
}

func TestPerspectivePitch90(t *testing.T) {
	cam := testCam()
	cam.RotationX = 90
	// Pitch about X sends +Y into depth.
	sp := projectOne(t, NewPerspective(), Vec3{Y: 10}, cam)
	if !approxEqual(sp.X, 400, 1e-6) || !approxEqual(sp.Y, 300, 1e-6) {
		t.Errorf("pitched +Y = (%f,%f), want (400,300)", sp.X, sp.Y)
	}
	if !approxEqual(sp.Depth, 10, 1e-6) {
		t.Errorf("depth = %f, want 10", sp.Depth)
	}
}

func TestPerspectiveRoll90(t *testing.T) {
	cam := testCam()
	cam.RotationZ = 90
	p := NewPerspective()
	p.UseRoll = true
	// Roll maps +X to +Y: screen above center.
	sp := projectOne(t, p, Vec3{X: 10}, cam)
	if !approxEqual(sp.X, 400, 1e-6) || !approxEqual(sp.Y, 270, 1e-6) {
		t.Errorf("rolled +X = (%f,%f), want (400,270)", sp.X, sp.Y)
	}

	// Without UseRoll the same camera ignores RotationZ.
	sp = projectOne(t, NewPerspective(), Vec3{X: 10}, cam)
	if !approxEqual(sp.X, 430, 1e-6) || !approxEqual(sp.Y, 300, 1e-6) {
		t.Errorf("roll-less +X = (%f,%f), want (430,300)", sp.X, sp.Y)
	}
}

func TestPerspectiveViewDistanceZooms(t *testing.T) {
	cam := testCam()
	near := projectOne(t, NewPerspective(), Vec3{X: 10}, cam)
	cam.ViewDistance = 400
	far := projectOne(t, NewPerspective(), Vec3{X: 10}, cam)
	if far.X-400 >= near.X-400 {
		t.Errorf("larger view distance should shrink: near dx %f, far dx %f", near.X-400, far.X-400)
	}
}

func TestPerspectiveDegenerateCamera(t *testing.T) {
	cases := []CameraState{
		{ViewDistance: math.NaN(), ViewportWidth: 800, ViewportHeight: 600},
		{RotationX: math.Inf(1), ViewDistance: 200, ViewportWidth: 800, ViewportHeight: 600},
		{ViewDistance: 0, ViewportWidth: 800, ViewportHeight: 600},
		{ViewDistance: 200, ViewportWidth: 0, ViewportHeight: 600},
		{ViewDistance: 200, ViewportWidth: 800, ViewportHeight: -1},
	}
	p := NewPerspective()
	for i, cam := range cases {
		if _, err := p.Project(nil, nil, cam); !errors.Is(err, ErrDegenerateCamera) {
			t.Errorf("case %d: err = %v, want ErrDegenerateCamera", i, err)
		}
	}
}

func TestCameraChangedEpsilon(t *testing.T) {
	a := testCam()
	b := a
	b.RotationY += 1e-12
	if cameraChanged(a, b) {
		t.Error("sub-epsilon rotation change reported as changed")
	}
	b.RotationY += 0.01
	if !cameraChanged(a, b) {
		t.Error("rotation change not reported")
	}
	c := a
	c.ViewportWidth += 1
	if !cameraChanged(a, c) {
		t.Error("viewport change not reported")
	}
}

func TestPerspectiveMarkDirtyRecomputes(t *testing.T) {
	p := NewPerspective()
	cam := testCam()
	first := projectOne(t, p, Vec3{X: 10}, cam)
	p.MarkDirty()
	second := projectOne(t, p, Vec3{X: 10}, cam)
	if first != second {
		t.Errorf("recompute changed result: %+v vs %+v", first, second)
	}

	cam.RotationY = 90
	third := projectOne(t, p, Vec3{X: 10}, cam)
	if approxEqual(third.X, first.X, 1e-9) && approxEqual(third.Depth, first.Depth, 1e-9) {
		t.Error("camera change did not recompute projection")
	}
}

func TestPolarProjection(t *testing.T) {
	// Domain radius 100 in a 700x700 viewport: scale 3.5.
	cam := CameraState{ViewDistance: 200, ViewportWidth: 700, ViewportHeight: 700}
	p := NewPolar(100)

	sp := projectOne(t, p, Vec3{X: 50}, cam)
	if !approxEqual(sp.X, 525, 1e-9) || !approxEqual(sp.Y, 350, 1e-9) {
		t.Errorf("+X = (%f,%f), want (525,350)", sp.X, sp.Y)
	}

	cam.RotationZ = 90
	sp = projectOne(t, p, Vec3{X: 50}, cam)
	if !approxEqual(sp.X, 350, 1e-6) || !approxEqual(sp.Y, 175, 1e-6) {
		t.Errorf("rotated +X = (%f,%f), want (350,175)", sp.X, sp.Y)
	}
}

func TestPolarIgnoresElevationKeepsDepth(t *testing.T) {
	cam := CameraState{ViewDistance: 200, ViewportWidth: 700, ViewportHeight: 700}
	p := NewPolar(100)
	sp := projectOne(t, p, Vec3{X: 30, Y: 40, Z: 25}, cam)
	flat := projectOne(t, p, Vec3{X: 30, Y: 40}, cam)
	if sp.X != flat.X || sp.Y != flat.Y {
		t.Errorf("z affected plot position: %+v vs %+v", sp, flat)
	}
	if sp.Depth != 25 {
		t.Errorf("depth = %f, want 25", sp.Depth)
	}
}

func TestPolarDefaultDomainRadius(t *testing.T) {
	cam := CameraState{ViewDistance: 200, ViewportWidth: 200, ViewportHeight: 200}
	p := NewPolar(0)
	// Default domain radius: a point at DefaultRadius lands on the rim.
	sp := projectOne(t, p, Vec3{X: DefaultRadius}, cam)
	if !approxEqual(sp.X, 200, 1e-9) {
		t.Errorf("rim point X = %f, want 200", sp.X)
	}
}

func TestProjectAppendsToDst(t *testing.T) {
	p := NewPerspective()
	dst := make([]ScreenPos, 0, 8)
	pts := []Point{{Pos: Vec3{X: 1}}, {Pos: Vec3{X: 2}}}
	out, err := p.Project(dst, pts, testCam())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
}
