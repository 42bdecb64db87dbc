package pencil

import "github.com/gogpu/gg"

// Shape is anything built on a Component. Every concrete shape embeds
// *Component, so Base is promoted automatically.
type Shape interface {
	Base() *Component
}

// Drawable is the contract every concrete shape fulfils.
type Drawable interface {
	Shape

	// Type returns the registry tag used when serializing.
	Type() string

	// Trace appends the shape's geometry in its own local frame, before the
	// origin offset is applied. It must be idempotent for equal attributes.
	Trace(p *gg.Path)
}

// Boxed shapes have a width and height, which makes the origin option
// meaningful for them.
type Boxed interface {
	Size() (width, height float64)
}

// ContentPainter replaces the default fill-then-stroke of the cached path.
// The surface transform is already set to the component's world matrix.
type ContentPainter interface {
	PaintContent(s Surface, path *gg.Path, style PaintStyle)
}

// HitTester replaces the default path-based hit test.
type HitTester interface {
	ContainsPoint(local Position) bool
}

// Animatable components are stepped once per frame, after painting, while
// attached and shown.
type Animatable interface {
	Step(frame uint64)
}

// Focusable components can take keyboard focus. FocusChanged is called
// before the focus or blur event fires.
type Focusable interface {
	FocusChanged(focused bool)
}

// FieldMarshaler contributes type-specific fields to a Definition.
type FieldMarshaler interface {
	MarshalFields() Options
}

// resourcePoller components start asynchronous loads once they are part of
// a scene and apply completed ones from the loop goroutine.
type resourcePoller interface {
	pollResources(s *Scene)
}
