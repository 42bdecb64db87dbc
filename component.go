package pencil

import (
	"fmt"
	"slices"

	"github.com/gogpu/gg"
)

// Component is a node in the scene graph. It owns a position relative to
// its parent, a rotation in turns, a scale, resolved options, an ordered
// list of children and the cached local path used for both painting and
// hit-testing. Concrete shapes embed *Component and implement Drawable.
//
// Components are not safe for concurrent use; every mutation happens on the
// goroutine driving the scene.
type Component struct {
	variant  Drawable
	defaults Options
	options  Options

	position Position
	rotation float64
	scale    Position
	shown    bool

	parent   *Component
	children []*Component // copy-on-write: never mutated in place

	path      *gg.Path
	pathDirty bool

	events EventEmitter
	drag   *DragOptions
	tweens []*Tween
	inbox  chan func()
}

// DragOptions configures a draggable component.
type DragOptions struct {
	// Axis locks movement to "x" or "y". Empty allows both.
	Axis string
	// Constrain, when non-nil, keeps the position inside this rectangle of
	// the parent's frame.
	Constrain *Rect
}

// newComponent builds the base of a concrete shape. opts are merged over
// defaults. Invalid keys are reported and dropped; the remaining instance
// options still apply.
func newComponent(variant Drawable, pos Position, defaults, opts Options) (*Component, error) {
	c := &Component{
		variant:   variant,
		defaults:  defaults,
		position:  pos,
		scale:     Position{1, 1},
		pathDirty: true,
	}
	valid, err := opts.valid()
	c.options = MergeOptions(defaults, valid)
	c.syncFlags()
	return c, err
}

// mustComponent is newComponent for constructors that cannot return an
// error. Invalid keys fall back to defaults and are logged.
func mustComponent(variant Drawable, pos Position, defaults, opts Options) *Component {
	c, err := newComponent(variant, pos, defaults, opts)
	if err != nil {
		Logger().Warn("pencil: invalid options ignored", "type", variant.Type(), "err", err)
	}
	return c
}

// syncFlags mirrors option keys that have a dedicated field.
func (c *Component) syncFlags() {
	c.shown = c.options.Bool(OptShown)
	if c.options.Bool(OptDraggable) {
		if c.drag == nil {
			c.drag = &DragOptions{}
		}
	} else {
		c.drag = nil
	}
}

// Base returns c. It lets every shape satisfy Shape through embedding.
func (c *Component) Base() *Component {
	return c
}

// Variant returns the concrete shape c belongs to.
func (c *Component) Variant() Drawable {
	return c.variant
}

// TypeName returns the registry tag of the concrete shape.
func (c *Component) TypeName() string {
	if c.variant == nil {
		return ""
	}
	return c.variant.Type()
}

func (c *Component) String() string {
	return fmt.Sprintf("%s%v", c.TypeName(), c.position)
}

// --- Options ---

// Options returns a copy of the resolved options.
func (c *Component) Options() Options {
	return c.options.Clone()
}

// Option returns a single resolved option value.
func (c *Component) Option(key string) any {
	return cloneValue(c.options[key])
}

// Defaults returns a copy of the variant defaults c was built from.
func (c *Component) Defaults() Options {
	return c.defaults.Clone()
}

// SetOptions merges o over the resolved options and marks the geometry
// dirty. Nothing changes if o fails validation.
func (c *Component) SetOptions(o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	c.options = MergeOptions(c.options, o)
	c.syncFlags()
	c.MarkDirty()
	return nil
}

// SetOption sets a single option.
func (c *Component) SetOption(key string, value any) error {
	return c.SetOptions(Options{key: value})
}

// --- Attributes ---

// Position returns the position relative to the parent.
func (c *Component) Position() Position {
	return c.position
}

// SetPosition moves c to p in its parent's frame.
func (c *Component) SetPosition(p Position) {
	c.position = p
	c.MarkDirty()
}

// Move translates c by (dx, dy).
func (c *Component) Move(dx, dy float64) {
	c.SetPosition(c.position.Add(Position{dx, dy}))
}

// Rotation returns the rotation in turns.
func (c *Component) Rotation() float64 {
	return c.rotation
}

// SetRotation sets the rotation in turns (1 is a full turn).
func (c *Component) SetRotation(turns float64) error {
	if !isFinite(turns) {
		return &InvalidOptionError{Key: "rotation", Value: turns, Reason: "not finite"}
	}
	c.rotation = turns
	c.MarkDirty()
	return nil
}

// Rotate adds delta turns to the rotation.
func (c *Component) Rotate(delta float64) error {
	return c.SetRotation(c.rotation + delta)
}

// Scale returns the scale factors.
func (c *Component) Scale() Position {
	return c.scale
}

// SetScale sets the scale factors.
func (c *Component) SetScale(s Position) {
	c.scale = s
	c.MarkDirty()
}

// Shown reports c's own visibility flag, ignoring ancestors.
func (c *Component) Shown() bool {
	return c.shown
}

// IsShown reports whether c and all its ancestors are shown.
func (c *Component) IsShown() bool {
	for n := c; n != nil; n = n.parent {
		if !n.shown {
			return false
		}
	}
	return true
}

// Show makes c visible.
func (c *Component) Show() { c.setShown(true) }

// Hide hides c and its subtree from painting and hit-testing.
func (c *Component) Hide() { c.setShown(false) }

// Toggle flips the visibility flag.
func (c *Component) Toggle() { c.setShown(!c.shown) }

func (c *Component) setShown(v bool) {
	c.shown = v
	c.options[OptShown] = v
}

// --- Tree ---

// Attach appends children to c, detaching each from its current parent
// first. It fails without modifying anything if any child is c or one of
// its ancestors.
func (c *Component) Attach(children ...Shape) error {
	for _, s := range children {
		child := s.Base()
		if child == c || child.IsAncestorOf(c) {
			return &CyclicAttachError{Parent: c.TypeName(), Child: child.TypeName()}
		}
	}
	for _, s := range children {
		c.attachAt(s.Base(), -1)
	}
	return nil
}

// AttachAt inserts child at index, clamped to the valid range.
func (c *Component) AttachAt(child Shape, index int) error {
	cc := child.Base()
	if cc == c || cc.IsAncestorOf(c) {
		return &CyclicAttachError{Parent: c.TypeName(), Child: cc.TypeName()}
	}
	c.attachAt(cc, index)
	return nil
}

func (c *Component) attachAt(child *Component, index int) {
	if child.parent != nil {
		child.parent.Detach(child)
	}
	child.parent = c
	next := slices.Clip(c.children)
	if index < 0 || index >= len(next) {
		next = append(next, child)
	} else {
		next = slices.Insert(next, index, child)
	}
	c.children = next
	markSubtreeDirty(child)
	if s := c.Scene(); s != nil && s.cfg.Debug {
		debugCheckTree(child)
	}
	child.Fire(&Event{Kind: EventAttach, Target: child})
}

// Detach removes child from c. It is a no-op if child is not a child of c.
func (c *Component) Detach(child Shape) {
	cc := child.Base()
	i := slices.Index(c.children, cc)
	if i < 0 {
		return
	}
	if s := c.Scene(); s != nil {
		s.forget(cc)
	}
	c.children = slices.Delete(slices.Clone(c.children), i, i+1)
	cc.parent = nil
	markSubtreeDirty(cc)
	cc.Fire(&Event{Kind: EventDetach, Target: cc})
}

// Remove detaches c from its parent.
func (c *Component) Remove() {
	if c.parent != nil {
		c.parent.Detach(c)
	}
}

// Empty detaches every child.
func (c *Component) Empty() {
	for _, child := range c.children {
		c.Detach(child)
	}
}

// Children returns the children in paint order. The slice is a snapshot:
// later attach or detach calls never modify it. Callers must not write
// to it.
func (c *Component) Children() []*Component {
	return c.children
}

// Parent returns the parent, or nil when detached.
func (c *Component) Parent() *Component {
	return c.parent
}

// Root returns the top of c's tree.
func (c *Component) Root() *Component {
	n := c
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Scene returns the scene c is attached to, or nil.
func (c *Component) Scene() *Scene {
	s, _ := c.Root().variant.(*Scene)
	return s
}

// IsAncestorOf reports whether c is a strict ancestor of other.
func (c *Component) IsAncestorOf(other *Component) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == c {
			return true
		}
	}
	return false
}

// Depth returns the number of ancestors.
func (c *Component) Depth() int {
	d := 0
	for p := c.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Walk visits c and its descendants depth-first in paint order. Returning
// false from fn skips that node's children.
func (c *Component) Walk(fn func(*Component) bool) {
	if !fn(c) {
		return
	}
	for _, child := range c.children {
		child.Walk(fn)
	}
}

// Find returns the first component in paint order, c included, for which
// match returns true.
func (c *Component) Find(match func(*Component) bool) *Component {
	var found *Component
	c.Walk(func(n *Component) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// markSubtreeDirty flags every path in the subtree for recomputation.
func markSubtreeDirty(c *Component) {
	c.pathDirty = true
	for _, child := range c.children {
		markSubtreeDirty(child)
	}
}

// --- Geometry ---

// MarkDirty forces ComputePath to rebuild the path on its next call.
func (c *Component) MarkDirty() {
	c.pathDirty = true
}

// IsPathDirty reports whether the cached path is stale.
func (c *Component) IsPathDirty() bool {
	return c.pathDirty || c.path == nil
}

// Path returns the cached path without recomputing it. It may be nil or
// stale; see ComputePath.
func (c *Component) Path() *gg.Path {
	return c.path
}

// ComputePath returns the local path, rebuilding it only when dirty or
// never computed. The origin offset is baked into the result.
func (c *Component) ComputePath() *gg.Path {
	if !c.IsPathDirty() {
		return c.path
	}
	p := gg.NewPath()
	c.variant.Trace(p)
	if off := c.OriginOffset(); off != (Position{}) {
		p = p.Transform(gg.Translate(off.X, off.Y))
	}
	c.path = p
	c.pathDirty = false
	return p
}

// Bounds returns the local bounding box of the path.
func (c *Component) Bounds() Rect {
	bb := c.ComputePath().BoundingBox()
	return Rect{X: bb.Min.X, Y: bb.Min.Y, Width: bb.Max.X - bb.Min.X, Height: bb.Max.Y - bb.Min.Y}
}

// --- Events ---

// On registers fn for events of kind fired on c or bubbling up from its
// descendants.
func (c *Component) On(kind EventKind, fn Listener) Handle {
	return c.events.On(kind, fn)
}

// Once registers fn for the next event of kind only.
func (c *Component) Once(kind EventKind, fn Listener) Handle {
	return c.events.Once(kind, fn)
}

// Off removes every listener for kind.
func (c *Component) Off(kind EventKind) {
	c.events.Off(kind)
}

// Fire delivers ev to c's listeners and then to each ancestor until a
// listener stops propagation. A nil Target is set to c.
func (c *Component) Fire(ev *Event) {
	if ev.Target == nil {
		ev.Target = c
	}
	if s := c.Scene(); s != nil && ev.Frame == 0 {
		ev.Frame = s.frame
	}
	for n := c; n != nil; n = n.parent {
		n.events.emit(ev)
		if ev.stopped {
			return
		}
	}
}

// --- Dragging ---

// Draggable lets the scene move c with the pointer.
func (c *Component) Draggable(opts DragOptions) {
	c.drag = &opts
	c.options[OptDraggable] = true
}

// NotDraggable reverts Draggable.
func (c *Component) NotDraggable() {
	c.drag = nil
	c.options[OptDraggable] = false
}

// IsDraggable reports whether the scene moves c on drag.
func (c *Component) IsDraggable() bool {
	return c.drag != nil
}

// --- Asynchronous completions ---

// deferred returns the channel through which background work hands
// closures back to the loop goroutine. It must be called on the loop
// goroutine before the background work starts.
func (c *Component) deferred() chan<- func() {
	if c.inbox == nil {
		c.inbox = make(chan func(), 4)
	}
	return c.inbox
}

// settle runs completed background work. Only called for attached
// components.
func (c *Component) settle() {
	if c.inbox == nil {
		return
	}
	for {
		select {
		case fn := <-c.inbox:
			fn()
		default:
			return
		}
	}
}
