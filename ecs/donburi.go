package ecs

import (
	"github.com/phanxgames/skyisle"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SkyEventType is the Donburi event type for day/night transitions.
var SkyEventType = events.NewEventType[skyisle.SkyEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Sky events are published to SkyEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) skyisle.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitSkyEvent(event skyisle.SkyEvent) {
	SkyEventType.Publish(s.world, event)
}
