package orbit

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// spinAnim holds active orientation tweens for camera yaw and pitch.
type spinAnim struct {
	tweenYaw   *gween.Tween
	tweenPitch *gween.Tween
	doneYaw    bool
	donePitch  bool
}

// CameraRig produces the CameraState the engine consumes each frame:
// animated spin-to orientation, continuous auto-spin, and pointer-drag
// rotation with pitch clamping. The rig never touches the engine; feed
// its Update result into Engine.Tick.
type CameraRig struct {
	// Cam is the rig's current camera. Fields may be set directly;
	// call Engine.SetCamera afterwards if no tick will run first.
	Cam CameraState

	// AutoSpin is a continuous yaw rate in degrees per second,
	// suspended while a SpinTo animation runs.
	AutoSpin float64

	// MinPitch and MaxPitch bound RotationX in degrees.
	MinPitch, MaxPitch float64

	// DragSensitivity is degrees of rotation per dragged pixel.
	DragSensitivity float64

	spin *spinAnim
}

// NewCameraRig creates a rig for the given viewport with default
// distance and pitch limits.
func NewCameraRig(viewportW, viewportH float64) *CameraRig {
	return &CameraRig{
		Cam: CameraState{
			ViewDistance:   DefaultViewDistance,
			ViewportWidth:  viewportW,
			ViewportHeight: viewportH,
		},
		MinPitch:        -89,
		MaxPitch:        89,
		DragSensitivity: 0.4,
	}
}

// SpinTo animates yaw and pitch to the given angles over duration
// seconds. Replaces any running spin animation.
func (r *CameraRig) SpinTo(yaw, pitch float64, duration float32, easeFn ease.TweenFunc) {
	r.spin = &spinAnim{
		tweenYaw:   gween.New(float32(r.Cam.RotationY), float32(yaw), duration, easeFn),
		tweenPitch: gween.New(float32(r.Cam.RotationX), float32(pitch), duration, easeFn),
	}
}

// Drag rotates the camera by a pointer delta in pixels, cancelling any
// running spin animation. Pitch is clamped to [MinPitch, MaxPitch].
func (r *CameraRig) Drag(dx, dy float64) {
	r.spin = nil
	r.Cam.RotationY = normalizeAzimuth(r.Cam.RotationY + dx*r.DragSensitivity)
	r.Cam.RotationX = r.clampPitch(r.Cam.RotationX + dy*r.DragSensitivity)
}

// Resize updates the viewport dimensions.
func (r *CameraRig) Resize(viewportW, viewportH float64) {
	r.Cam.ViewportWidth = viewportW
	r.Cam.ViewportHeight = viewportH
}

// Update advances spin animation or auto-spin and returns the camera
// for this frame.
func (r *CameraRig) Update(dt float32) CameraState {
	if r.spin != nil {
		if !r.spin.doneYaw {
			val, done := r.spin.tweenYaw.Update(dt)
			r.Cam.RotationY = float64(val)
			r.spin.doneYaw = done
		}
		if !r.spin.donePitch {
			val, done := r.spin.tweenPitch.Update(dt)
			r.Cam.RotationX = float64(val)
			r.spin.donePitch = done
		}
		if r.spin.doneYaw && r.spin.donePitch {
			r.spin = nil
		}
	} else if r.AutoSpin != 0 {
		r.Cam.RotationY = normalizeAzimuth(r.Cam.RotationY + r.AutoSpin*float64(dt))
	}
	r.Cam.RotationX = r.clampPitch(r.Cam.RotationX)
	return r.Cam
}

func (r *CameraRig) clampPitch(pitch float64) float64 {
	if pitch < r.MinPitch {
		return r.MinPitch
	}
	if pitch > r.MaxPitch {
		return r.MaxPitch
	}
	return pitch
}
