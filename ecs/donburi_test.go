package ecs

import (
	"testing"

	"github.com/phanxgames/orbit"

	"github.com/yohamta/donburi"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []orbit.PointEvent
	PointEvents.Subscribe(world, func(w donburi.World, e orbit.PointEvent) {
		received = append(received, e)
	})

	store.EmitEvent(orbit.PointEvent{
		Type:    orbit.EventHoverEnter,
		Index:   42,
		ScreenX: 100,
		ScreenY: 200,
	})
	store.EmitEvent(orbit.PointEvent{
		Type:  orbit.EventSelect,
		Index: 7,
	})

	// Events are queued — process them.
	PointEvents.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != orbit.EventHoverEnter || e0.Index != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.ScreenX != 100 || e0.ScreenY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.ScreenX, e0.ScreenY)
	}

	e1 := received[1]
	if e1.Type != orbit.EventSelect || e1.Index != 7 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store orbit.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_EngineIntegration(t *testing.T) {
	world := donburi.NewWorld()

	engine := orbit.NewEngine(nopSurface{}, orbit.Config{})
	engine.SetEntityStore(NewDonburiStore(world))

	var added int
	PointEvents.Subscribe(world, func(w donburi.World, e orbit.PointEvent) {
		if e.Type == orbit.EventPointAdded {
			added++
		}
	})

	engine.AddRandom()
	engine.AddRandom()
	PointEvents.ProcessEvents(world)

	if added != 2 {
		t.Errorf("added events = %d, want 2", added)
	}
}

// nopSurface discards all annotation updates.
type nopSurface struct{}

func (nopSurface) AddAnnotation() orbit.AnnotationHandle                   { return 0 }
func (nopSurface) RemoveAnnotation(orbit.AnnotationHandle)                 {}
func (nopSurface) SetPosition(orbit.AnnotationHandle, float64, float64, float64) {}
func (nopSurface) SetText(orbit.AnnotationHandle, string)                  {}
func (nopSurface) SetStyle(orbit.AnnotationHandle, orbit.AnnotationStyle)  {}
func (nopSurface) BeginUpdate()                                            {}
func (nopSurface) EndUpdate()                                              {}
