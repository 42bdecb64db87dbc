package pencil

import "github.com/gogpu/gg"

// OptRounded is the corner radius of a Rectangle. 0 draws square corners.
const OptRounded = "rounded"

// Rectangle is an axis-aligned box in its own frame.
type Rectangle struct {
	*Component

	width, height float64
}

// RectangleDefaults returns the options a Rectangle starts from.
func RectangleDefaults() Options {
	return MergeOptions(ComponentDefaults(), Options{OptRounded: 0.0})
}

// NewRectangle creates a width by height rectangle at pos.
func NewRectangle(pos Position, width, height float64, opts ...Options) *Rectangle {
	r := &Rectangle{width: width, height: height}
	r.Component = mustComponent(r, pos, RectangleDefaults(), MergeOptions(opts...))
	return r
}

// Type returns "Rectangle".
func (r *Rectangle) Type() string { return "Rectangle" }

// Size returns the box size.
func (r *Rectangle) Size() (float64, float64) { return r.width, r.height }

// SetSize resizes the rectangle.
func (r *Rectangle) SetSize(width, height float64) {
	r.width, r.height = width, height
	r.MarkDirty()
}

// Trace adds the box, with rounded corners when the rounded option is set.
// Negative sizes are clamped to zero and the radius to half the shorter
// side.
func (r *Rectangle) Trace(p *gg.Path) {
	w, h := max(r.width, 0), max(r.height, 0)
	if w == 0 || h == 0 {
		return
	}
	rad := Clamp(r.options.Float(OptRounded), 0, min(w, h)/2)
	if rad > 0 {
		p.RoundedRectangle(0, 0, w, h, rad)
		return
	}
	p.Rectangle(0, 0, w, h)
}

// MarshalFields records width and height.
func (r *Rectangle) MarshalFields() Options {
	return Options{"width": r.width, "height": r.height}
}

func rectangleFromDefinition(def Definition) (Shape, error) {
	r := &Rectangle{
		width:  fieldFloat(def.Fields, "width", 0),
		height: fieldFloat(def.Fields, "height", 0),
	}
	base, err := newComponent(r, def.Position, RectangleDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	r.Component = base
	return r, nil
}
