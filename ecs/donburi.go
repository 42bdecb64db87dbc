package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/shamseena-dev/pencil"
)

// InteractionEvent is a pencil event as seen by ECS systems.
type InteractionEvent struct {
	Kind      pencil.EventKind
	Entity    donburi.Entity
	Position  pencil.Position // scene coordinates
	Local     pencil.Position // in the bound shape's frame
	Delta     pencil.Position
	Button    pencil.MouseButton
	PointerID int
	Key       string
	Modifiers pencil.KeyModifiers
}

// InteractionEventType is the Donburi event type bound shapes publish to.
var InteractionEventType = events.NewEventType[InteractionEvent]()

// DefaultKinds are the events forwarded when Bind is given none.
var DefaultKinds = []pencil.EventKind{
	pencil.EventClick,
	pencil.EventDown,
	pencil.EventUp,
	pencil.EventGrab,
	pencil.EventDrag,
	pencil.EventDrop,
	pencil.EventHover,
	pencil.EventLeave,
	pencil.EventKeyDown,
	pencil.EventChange,
}

type binding struct {
	entity  donburi.Entity
	handles []pencil.Handle
}

// Bridge publishes events of bound shapes into a world. Bind and Unbind
// must be called on the scene's loop goroutine.
type Bridge struct {
	world    donburi.World
	bindings map[*pencil.Component]*binding
}

// NewBridge creates a bridge publishing into world.
func NewBridge(world donburi.World) *Bridge {
	return &Bridge{world: world, bindings: make(map[*pencil.Component]*binding)}
}

// Bind forwards events of kinds fired on shape itself, tagged with
// entity. Events bubbling up from descendants are not forwarded. Binding
// a shape again replaces the previous binding.
func (b *Bridge) Bind(shape pencil.Shape, entity donburi.Entity, kinds ...pencil.EventKind) {
	c := shape.Base()
	b.Unbind(c)
	if len(kinds) == 0 {
		kinds = DefaultKinds
	}
	bind := &binding{entity: entity}
	for _, k := range kinds {
		bind.handles = append(bind.handles, c.On(k, func(ev *pencil.Event) {
			if ev.Target != c {
				return
			}
			InteractionEventType.Publish(b.world, InteractionEvent{
				Kind:      ev.Kind,
				Entity:    bind.entity,
				Position:  ev.Position,
				Local:     ev.Local,
				Delta:     ev.Delta,
				Button:    ev.Button,
				PointerID: ev.PointerID,
				Key:       ev.Key.Key,
				Modifiers: ev.Modifiers,
			})
		}))
	}
	b.bindings[c] = bind
}

// Unbind stops forwarding events of shape.
func (b *Bridge) Unbind(shape pencil.Shape) {
	c := shape.Base()
	bind, ok := b.bindings[c]
	if !ok {
		return
	}
	for _, h := range bind.handles {
		h.Remove()
	}
	delete(b.bindings, c)
}

// Entity returns the entity bound to shape.
func (b *Bridge) Entity(shape pencil.Shape) (donburi.Entity, bool) {
	bind, ok := b.bindings[shape.Base()]
	if !ok {
		return donburi.Null, false
	}
	return bind.entity, true
}

// Len returns the number of bound shapes.
func (b *Bridge) Len() int {
	return len(b.bindings)
}
