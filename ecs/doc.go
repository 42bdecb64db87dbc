// Package ecs forwards pencil events into a [Donburi] world.
//
// A [Bridge] binds shapes to entities. Events fired on a bound shape are
// published to [InteractionEventType] with the entity attached, so ECS
// systems can react to clicks and drags without holding component
// pointers.
//
// Usage:
//
//	bridge := ecs.NewBridge(world)
//	bridge.Bind(button, entity)
//	ecs.InteractionEventType.Subscribe(world, onInteraction)
//	// each tick, after the scene has dispatched input:
//	ecs.InteractionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
