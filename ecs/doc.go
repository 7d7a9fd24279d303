// Package ecs provides ECS adapters for skyisle's day/night events.
//
// The primary adapter is [NewDonburiStore], which forwards every sky
// transition into a [Donburi] world as a typed event. Subscribe to
// [SkyEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
