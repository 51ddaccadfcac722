// Package orbit is a real-time spatial annotation engine for clouds of
// points orbiting on or inside a sphere.
//
// The engine advances a population of points along individually paced
// orbital paths, projects them into screen space under a changing camera
// orientation, maintains a uniform spatial hash so hover and click hit
// testing stay near-constant time at high point counts, and tracks
// per-point hover/selection visual state with minimal redundant work
// per frame. Rendering itself is delegated to a [RenderSurface]
// implementation supplied by the host.
//
// # Quick start
//
// The [github.com/phanxgames/orbit/viz] package hosts an engine in an
// Ebitengine window:
//
//	viz.Run(viz.RunConfig{
//		Title: "Point Cloud", Width: 800, Height: 600, PointCount: 500,
//	})
//
// For full control, drive the engine from your own loop:
//
//	engine := orbit.NewEngine(surface, orbit.Config{})
//	engine.Generate(500)
//	rig := orbit.NewCameraRig(800, 600)
//	// each frame:
//	cam := rig.Update(dt)
//	engine.Tick(float64(dt), cam)
//	// on input:
//	engine.HandlePointerMove(x, y)
//	engine.HandlePointerDown(x, y)
//
// # Projection strategies
//
// Two [Projector] implementations are provided: [Perspective] (yaw,
// pitch, optional roll about the viewer axis) and [Polar] (top-down
// azimuth/radius plot). Both hoist trigonometric terms out of the
// per-point loop and cache them across frames until the camera moves.
//
// # Threading
//
// The engine is single-threaded and cooperative: it is driven entirely
// by Tick and pointer-event calls on one goroutine. No engine method
// may be called re-entrantly from a RenderSurface or EntityStore
// callback.
package orbit
