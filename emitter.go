package pencil

import "slices"

// Listener handles an Event.
type Listener func(*Event)

type listenerEntry struct {
	id   uint64
	fn   Listener
	once bool
}

// EventEmitter keeps listeners per event kind and fires them in registration
// order. Listener lists are copy-on-write: registering or removing a listener
// from inside a listener takes effect on the next fire, never the current one.
type EventEmitter struct {
	listeners map[EventKind][]listenerEntry
	nextID    uint64
}

// Handle allows removing a registered listener.
type Handle struct {
	emitter *EventEmitter
	kind    EventKind
	id      uint64
}

// Remove unregisters the listener. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.emitter == nil {
		return
	}
	h.emitter.remove(h.kind, h.id)
}

// On registers fn for events of kind.
func (e *EventEmitter) On(kind EventKind, fn Listener) Handle {
	return e.add(kind, fn, false)
}

// Once registers fn to run for the next event of kind only.
func (e *EventEmitter) Once(kind EventKind, fn Listener) Handle {
	return e.add(kind, fn, true)
}

// Off removes every listener for kind.
func (e *EventEmitter) Off(kind EventKind) {
	delete(e.listeners, kind)
}

// ListenerCount returns the number of listeners registered for kind.
func (e *EventEmitter) ListenerCount(kind EventKind) int {
	return len(e.listeners[kind])
}

func (e *EventEmitter) add(kind EventKind, fn Listener, once bool) Handle {
	if e.listeners == nil {
		e.listeners = make(map[EventKind][]listenerEntry)
	}
	e.nextID++
	id := e.nextID
	// Clip forces append to reallocate so a fire in progress keeps its view.
	e.listeners[kind] = append(slices.Clip(e.listeners[kind]), listenerEntry{id: id, fn: fn, once: once})
	return Handle{emitter: e, kind: kind, id: id}
}

func (e *EventEmitter) remove(kind EventKind, id uint64) {
	list := e.listeners[kind]
	i := slices.IndexFunc(list, func(l listenerEntry) bool { return l.id == id })
	if i < 0 {
		return
	}
	next := slices.Delete(slices.Clone(list), i, i+1)
	if len(next) == 0 {
		delete(e.listeners, kind)
		return
	}
	e.listeners[kind] = next
}

// emit calls every listener registered for ev.Kind when the fire started.
func (e *EventEmitter) emit(ev *Event) {
	list := e.listeners[ev.Kind]
	for _, l := range list {
		if l.once {
			e.remove(ev.Kind, l.id)
		}
		l.fn(ev)
	}
}
