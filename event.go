package pencil

// KeyInfo describes a keyboard key for EventKeyDown and EventKeyUp.
type KeyInfo struct {
	Key    string // logical key name ("a", "Enter", "ArrowLeft")
	Code   string // physical key code when known
	Repeat bool
}

// Event is delivered synchronously to listeners. It first reaches the
// listeners of Target, then bubbles to each ancestor until StopPropagation
// is called.
type Event struct {
	Kind   EventKind
	Target *Component

	// Pointer events.
	Position  Position // pointer position in scene coordinates
	Local     Position // pointer position in Target's local frame
	Delta     Position // movement since the previous event (drag, grab, wheel)
	Button    MouseButton
	PointerID int

	// Keyboard events.
	Key KeyInfo

	Modifiers KeyModifiers

	// Err is set for EventLoadFailed.
	Err error

	// Frame is the scene frame counter at dispatch time.
	Frame uint64

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
// Listeners already registered on the current component still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}
