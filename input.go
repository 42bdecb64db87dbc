package pencil

import "math"

// maxPointers bounds the tracked pointers: 0 is the mouse, 1-9 are touches.
const maxPointers = 10

// PointerKind classifies raw pointer input.
type PointerKind uint8

const (
	PointerMove   PointerKind = iota // pointer moved
	PointerDown                      // button pressed or touch started
	PointerUp                        // button released or touch ended
	PointerWheel                     // wheel or trackpad scroll
	PointerCancel                    // pointer left the surface or the touch was cancelled
)

// PointerInput is a device pointer event. X and Y are surface pixels; the
// scene divides them by Config.PixelRatio.
type PointerInput struct {
	ID             int
	Kind           PointerKind
	X, Y           float64
	Button         MouseButton
	DeltaX, DeltaY float64
	Modifiers      KeyModifiers
}

// KeyKind classifies raw keyboard input.
type KeyKind uint8

const (
	KeyDown KeyKind = iota
	KeyUp
)

// KeyInput is a device keyboard event.
type KeyInput struct {
	Kind      KeyKind
	Key       string
	Code      string
	Repeat    bool
	Modifiers KeyModifiers
}

type pointerState struct {
	down     bool
	button   MouseButton // captured at press time
	start    Position
	last     Position
	pressed  *Component // target of the press
	hover    *Component
	dragging bool
	dragFrom Position // pressed component's position when the drag started
}

// CapturePointer routes every event of pointerID to c until the next
// release.
func (s *Scene) CapturePointer(pointerID int, c *Component) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = c
	}
}

// ReleasePointer undoes CapturePointer.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// Hovered returns the component under pointerID, or nil.
func (s *Scene) Hovered(pointerID int) *Component {
	if pointerID < 0 || pointerID >= maxPointers {
		return nil
	}
	return s.pointers[pointerID].hover
}

// DispatchPointer feeds one pointer event through the interaction state
// machine. Events for pointer IDs outside [0, 10) are dropped.
func (s *Scene) DispatchPointer(in PointerInput) {
	if in.ID < 0 || in.ID >= maxPointers {
		return
	}
	p := Position{in.X / s.cfg.PixelRatio, in.Y / s.cfg.PixelRatio}
	switch in.Kind {
	case PointerMove:
		s.pointerMove(in.ID, p, in.Modifiers)
	case PointerDown:
		s.pointerDown(in.ID, p, in.Button, in.Modifiers)
	case PointerUp:
		s.pointerUp(in.ID, p, in.Modifiers)
	case PointerWheel:
		s.wheel(in.ID, p, Position{in.DeltaX, in.DeltaY}, in.Modifiers)
	case PointerCancel:
		s.pointerCancel(in.ID, p, in.Modifiers)
	}
}

// DispatchKey delivers a key event to the focused component, or to the
// scene when nothing has focus.
func (s *Scene) DispatchKey(in KeyInput) {
	target := s.focused
	if target == nil {
		target = s.Component
	}
	kind := EventKeyDown
	if in.Kind == KeyUp {
		kind = EventKeyUp
	}
	target.Fire(&Event{
		Kind:      kind,
		Target:    target,
		Key:       KeyInfo{Key: in.Key, Code: in.Code, Repeat: in.Repeat},
		Modifiers: in.Modifiers,
	})
}

// --- Hit testing ---

type hitEntry struct {
	c     *Component
	world Matrix
}

// collectHittable appends shown descendants of c in paint order with their
// world matrices. c itself is not included.
func collectHittable(c *Component, world Matrix, buf []hitEntry) []hitEntry {
	for _, child := range c.children {
		if !child.shown {
			continue
		}
		m := world.Multiply(child.LocalTransform())
		buf = append(buf, hitEntry{child, m})
		buf = collectHittable(child, m, buf)
	}
	return buf
}

// hitTest returns the topmost component painted at p, or nil. The scene
// root itself is never returned.
func (s *Scene) hitTest(p Position) *Component {
	if !s.shown {
		return nil
	}
	entries := collectHittable(s.Component, s.LocalTransform(), nil)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.c.HitTest(e.world.Invert().Apply(p)) {
			return e.c
		}
	}
	return nil
}

// --- State machine ---

// updateHover re-targets pointerID and fires leave on the previous target
// strictly before hover on the new one.
func (s *Scene) updateHover(id int, p Position, mods KeyModifiers) *Component {
	ps := &s.pointers[id]
	target := s.captured[id]
	if target == nil {
		target = s.hitTest(p)
	}
	if target != ps.hover {
		prev := ps.hover
		ps.hover = target
		if prev != nil {
			s.firePointer(EventLeave, prev, id, p, Position{}, ps.button, mods)
		}
		if target != nil {
			s.firePointer(EventHover, target, id, p, Position{}, ps.button, mods)
		}
		if id == 0 {
			s.refreshCursor()
		}
	}
	return target
}

func (s *Scene) pointerMove(id int, p Position, mods KeyModifiers) {
	ps := &s.pointers[id]
	s.updateHover(id, p, mods)
	if !ps.down || ps.pressed == nil {
		ps.last = p
		return
	}
	if !ps.dragging {
		if p.Distance(ps.start) > s.cfg.DragThreshold {
			ps.dragging = true
			ps.dragFrom = ps.pressed.position
			s.moveDragged(ps, p)
			s.firePointer(EventGrab, ps.pressed, id, p, p.Subtract(ps.start), ps.button, mods)
			if id == 0 {
				s.refreshCursor()
			}
		}
	} else if p != ps.last {
		s.moveDragged(ps, p)
		s.firePointer(EventDrag, ps.pressed, id, p, p.Subtract(ps.last), ps.button, mods)
	}
	ps.last = p
}

func (s *Scene) pointerDown(id int, p Position, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[id]
	target := s.updateHover(id, p, mods)
	ps.down = true
	ps.button = button
	ps.start = p
	ps.last = p
	ps.pressed = target
	ps.dragging = false
	if target != nil {
		s.firePointer(EventDown, target, id, p, Position{}, button, mods)
	}
}

func (s *Scene) pointerUp(id int, p Position, mods KeyModifiers) {
	ps := &s.pointers[id]
	target := s.updateHover(id, p, mods)
	if !ps.down {
		return
	}
	pressed, dragging, button := ps.pressed, ps.dragging, ps.button
	ps.down = false
	ps.pressed = nil
	ps.dragging = false
	ps.last = p
	s.captured[id] = nil

	if pressed != nil {
		s.firePointer(EventUp, pressed, id, p, Position{}, button, mods)
	}
	if dragging {
		if pressed != nil {
			s.firePointer(EventDrop, pressed, id, p, p.Subtract(ps.start), button, mods)
		}
	} else if target == pressed {
		s.focusFromClick(target)
		if target != nil {
			s.firePointer(EventClick, target, id, p, Position{}, button, mods)
		}
	}
	if id == 0 {
		s.refreshCursor()
	}
}

func (s *Scene) pointerCancel(id int, p Position, mods KeyModifiers) {
	ps := &s.pointers[id]
	if ps.down && ps.dragging && ps.pressed != nil {
		s.firePointer(EventDrop, ps.pressed, id, p, p.Subtract(ps.start), ps.button, mods)
	}
	ps.down = false
	ps.pressed = nil
	ps.dragging = false
	s.captured[id] = nil
	if prev := ps.hover; prev != nil {
		ps.hover = nil
		s.firePointer(EventLeave, prev, id, p, Position{}, ps.button, mods)
	}
	if id == 0 {
		s.refreshCursor()
	}
}

// wheel dispatches scroll and zoom events to the hovered component. Both
// classifications come from the sign of the vertical delta: negative is
// up and in.
func (s *Scene) wheel(id int, p Position, delta Position, mods KeyModifiers) {
	target := s.updateHover(id, p, mods)
	if target == nil || delta.Y == 0 || math.IsNaN(delta.Y) {
		return
	}
	scroll, zoom := EventScrollDown, EventZoomOut
	if delta.Y < 0 {
		scroll, zoom = EventScrollUp, EventZoomIn
	}
	s.firePointer(scroll, target, id, p, delta, s.pointers[id].button, mods)
	s.firePointer(zoom, target, id, p, delta, s.pointers[id].button, mods)
}

// moveDragged follows the pointer with a draggable pressed component. The
// pointer displacement since the press is converted into the parent's
// frame, locked to the configured axis and constrained.
func (s *Scene) moveDragged(ps *pointerState, p Position) {
	c := ps.pressed
	if c.drag == nil {
		return
	}
	d := p.Subtract(ps.start)
	if c.parent != nil {
		d = c.parent.AbsoluteTransform().Invert().ApplyVector(d)
	}
	switch c.drag.Axis {
	case "x":
		d.Y = 0
	case "y":
		d.X = 0
	}
	next := ps.dragFrom.Add(d)
	if r := c.drag.Constrain; r != nil {
		next = next.Constrain(r.Min(), r.Max())
	}
	c.SetPosition(next)
}

func (s *Scene) firePointer(kind EventKind, target *Component, id int, p, delta Position, button MouseButton, mods KeyModifiers) {
	target.Fire(&Event{
		Kind:      kind,
		Target:    target,
		Position:  p,
		Local:     target.ToLocal(p),
		Delta:     delta,
		Button:    button,
		PointerID: id,
		Modifiers: mods,
	})
}

// refreshCursor pushes the cursor of the mouse's hovered component to the
// surface. Draggable components show grab and grabbing cursors unless
// they set their own.
func (s *Scene) refreshCursor() {
	ps := &s.pointers[0]
	cursor := CursorDefault
	target := ps.hover
	if ps.dragging && ps.pressed != nil {
		target = ps.pressed
	}
	if target != nil {
		cursor = Cursor(target.options.String(OptCursor))
		if cursor == CursorDefault && target.drag != nil {
			cursor = CursorGrab
			if ps.dragging {
				cursor = CursorGrabbing
			}
		}
	}
	if cursor != s.cursor {
		s.cursor = cursor
		s.surface.SetCursor(cursor)
	}
}

// forget clears every reference the scene holds into the subtree rooted at
// c before it is detached. A focused component in the subtree is blurred.
func (s *Scene) forget(c *Component) {
	within := func(n *Component) bool {
		return n != nil && (n == c || c.IsAncestorOf(n))
	}
	for i := range s.pointers {
		ps := &s.pointers[i]
		if within(ps.hover) {
			ps.hover = nil
		}
		if within(ps.pressed) {
			ps.pressed = nil
			ps.dragging = false
		}
		if within(s.captured[i]) {
			s.captured[i] = nil
		}
	}
	if within(s.focused) {
		s.Blur()
	}
	s.refreshCursor()
}
