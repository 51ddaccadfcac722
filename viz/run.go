// Package viz hosts an orbit.Engine in an Ebitengine window: a game
// loop that ticks the engine at the display rate, a mouse-driven
// camera rig, and a Surface that renders annotations as quads and
// labels.
package viz

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/orbit"
)

// RunConfig configures a Run window. Zero fields use defaults.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// PointCount is the initial population.
	PointCount int
	// Polar uses the top-down polar projector instead of perspective.
	Polar bool
	// AutoSpin is continuous camera yaw in degrees per second.
	AutoSpin float64
	ShowFPS  bool
	// Debug enables engine phase-timing logs on stderr.
	Debug bool
}

// Run opens a window and drives an engine until the window closes.
//
// Controls: hover to inspect, left-click to select, right-drag to
// rotate the camera, Space to add a point, Delete/Backspace to remove
// the selection, L to toggle all labels.
func Run(cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.PointCount <= 0 {
		cfg.PointCount = 500
	}
	if cfg.Title == "" {
		cfg.Title = "orbit"
	}

	surface := NewSurface()
	var proj orbit.Projector
	if cfg.Polar {
		proj = orbit.NewPolar(orbit.DefaultRadius)
	}
	engine := orbit.NewEngine(surface, orbit.Config{Projector: proj})
	engine.SetDebugMode(cfg.Debug)
	if err := engine.Generate(cfg.PointCount); err != nil {
		return fmt.Errorf("viz: generate %d points: %w", cfg.PointCount, err)
	}

	rig := orbit.NewCameraRig(float64(cfg.Width), float64(cfg.Height))
	var autoSpinZ float64
	if cfg.Polar {
		// The polar plot only responds to roll; spin that instead of yaw.
		autoSpinZ = cfg.AutoSpin
	} else {
		rig.AutoSpin = cfg.AutoSpin
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(&game{
		engine:    engine,
		rig:       rig,
		surface:   surface,
		showFPS:   cfg.ShowFPS,
		polar:     cfg.Polar,
		autoSpinZ: autoSpinZ,
	})
}

// game adapts the engine to ebiten.Game.
type game struct {
	engine    *orbit.Engine
	rig       *orbit.CameraRig
	surface   *Surface
	showFPS   bool
	polar     bool
	autoSpinZ float64

	lastX, lastY int
	haveCursor   bool
	prevLeft     bool
	prevKeyL     bool
	prevKeySpace bool
	prevKeyDel   bool
	labelsOn     bool
}

func (g *game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	mx, my := ebiten.CursorPosition()
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	if right && g.haveCursor {
		if g.polar {
			g.rig.Cam.RotationZ += float64(mx-g.lastX) * g.rig.DragSensitivity
		} else {
			g.rig.Drag(float64(mx-g.lastX), float64(my-g.lastY))
		}
	}
	if g.autoSpinZ != 0 {
		g.rig.Cam.RotationZ += g.autoSpinZ * float64(dt)
	}
	if !g.haveCursor || mx != g.lastX || my != g.lastY {
		g.engine.HandlePointerMove(float64(mx), float64(my))
	}
	if left && !g.prevLeft {
		g.engine.HandlePointerDown(float64(mx), float64(my))
	}

	keyL := ebiten.IsKeyPressed(ebiten.KeyL)
	if keyL && !g.prevKeyL {
		g.labelsOn = !g.labelsOn
		g.engine.SetShowAllLabels(g.labelsOn)
	}
	keySpace := ebiten.IsKeyPressed(ebiten.KeySpace)
	if keySpace && !g.prevKeySpace {
		g.engine.AddRandom()
	}
	keyDel := ebiten.IsKeyPressed(ebiten.KeyDelete) || ebiten.IsKeyPressed(ebiten.KeyBackspace)
	if keyDel && !g.prevKeyDel {
		// No selection is fine; nothing to remove.
		_ = g.engine.RemoveSelected()
	}

	g.lastX, g.lastY = mx, my
	g.haveCursor = true
	g.prevLeft = left
	g.prevKeyL = keyL
	g.prevKeySpace = keySpace
	g.prevKeyDel = keyDel

	cam := g.rig.Update(dt)
	// A degenerate camera skips the frame; keep the loop alive.
	_ = g.engine.Tick(float64(dt), cam)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.surface.Draw(screen)
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  points: %d", ebiten.ActualFPS(), g.engine.Count()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.rig.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
