package ecs

import (
	"github.com/phanxgames/orbit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PointEvents is the Donburi event type for orbit engine events.
// Subscribe to this in your ECS systems to receive hover, selection,
// and point lifecycle events.
var PointEvents = events.NewEventType[orbit.PointEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Engine events are published to PointEvents and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) orbit.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event orbit.PointEvent) {
	PointEvents.Publish(s.world, event)
}
