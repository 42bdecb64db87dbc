package pencil

// EventKind tags an Event. Values are the lowercase names used by listeners
// and by serialized documents.
type EventKind string

const (
	EventHover      EventKind = "hover"       // pointer entered a component
	EventLeave      EventKind = "leave"       // pointer left a component
	EventDown       EventKind = "down"        // button pressed over a component
	EventUp         EventKind = "up"          // button released after a press
	EventClick      EventKind = "click"       // press and release over the same component without dragging
	EventGrab       EventKind = "grab"        // movement while pressed exceeded the drag threshold
	EventDrag       EventKind = "drag"        // each move while dragging
	EventDrop       EventKind = "drop"        // release after dragging
	EventScrollUp   EventKind = "scroll-up"   // wheel moved up over a component
	EventScrollDown EventKind = "scroll-down" // wheel moved down over a component
	EventZoomIn     EventKind = "zoom-in"     // wheel zoom in over a component
	EventZoomOut    EventKind = "zoom-out"    // wheel zoom out over a component
	EventFocus      EventKind = "focus"       // component took keyboard focus
	EventBlur       EventKind = "blur"        // component lost keyboard focus
	EventKeyDown    EventKind = "keydown"     // key pressed while focused
	EventKeyUp      EventKind = "keyup"       // key released while focused
	EventAttach     EventKind = "attach"      // component attached to a parent
	EventDetach     EventKind = "detach"      // component detached from its parent
	EventDraw       EventKind = "draw"        // scene is about to paint a frame
	EventReady      EventKind = "ready"       // asynchronous resource finished loading
	EventLoadFailed EventKind = "load-failed" // asynchronous resource failed to load
	EventChange     EventKind = "change"      // input value changed
	EventEnd        EventKind = "end"         // non-looping animation reached its last frame
	EventLoop       EventKind = "loop"        // looping animation wrapped around
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether all modifiers in m are held.
func (k KeyModifiers) Has(m KeyModifiers) bool {
	return k&m == m
}

// Cursor names the pointer shape shown while hovering a component.
type Cursor string

const (
	CursorDefault    Cursor = "default"
	CursorPointer    Cursor = "pointer"
	CursorText       Cursor = "text"
	CursorMove       Cursor = "move"
	CursorGrab       Cursor = "grab"
	CursorGrabbing   Cursor = "grabbing"
	CursorCrosshair  Cursor = "crosshair"
	CursorNotAllowed Cursor = "not-allowed"
	CursorEWResize   Cursor = "ew-resize"
	CursorNSResize   Cursor = "ns-resize"
	CursorNone       Cursor = "none"
)

var knownCursors = map[Cursor]bool{
	CursorDefault: true, CursorPointer: true, CursorText: true, CursorMove: true,
	CursorGrab: true, CursorGrabbing: true, CursorCrosshair: true,
	CursorNotAllowed: true, CursorEWResize: true, CursorNSResize: true, CursorNone: true,
}

// TextAlign controls horizontal alignment of text lines within their box.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Min returns the top-left corner.
func (r Rect) Min() Position { return Position{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Position { return Position{r.X + r.Width, r.Y + r.Height} }
