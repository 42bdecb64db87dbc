package pencil

import (
	"math"

	"github.com/gogpu/gg"
)

// Circle is a disc centered on its position.
type Circle struct {
	*Component

	radius float64
}

// NewCircle creates a circle of the given radius centered on pos.
func NewCircle(pos Position, radius float64, opts ...Options) *Circle {
	c := &Circle{radius: radius}
	c.Component = mustComponent(c, pos, ComponentDefaults(), MergeOptions(opts...))
	return c
}

// Type returns "Circle".
func (c *Circle) Type() string { return "Circle" }

// Radius returns the radius.
func (c *Circle) Radius() float64 { return c.radius }

// SetRadius changes the radius. Negative values draw nothing.
func (c *Circle) SetRadius(r float64) {
	c.radius = r
	c.MarkDirty()
}

// Trace adds the circle outline.
func (c *Circle) Trace(p *gg.Path) {
	if c.radius <= 0 {
		return
	}
	p.Circle(0, 0, c.radius)
}

// MarshalFields records the radius.
func (c *Circle) MarshalFields() Options {
	return Options{"radius": c.radius}
}

func circleFromDefinition(def Definition) (Shape, error) {
	c := &Circle{radius: fieldFloat(def.Fields, "radius", 0)}
	base, err := newComponent(c, def.Position, ComponentDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	c.Component = base
	return c, nil
}

// Arc is a portion of a circle outline. Angles are in turns, clockwise,
// with 0 pointing up.
type Arc struct {
	*Component

	radius     float64
	startAngle float64
	endAngle   float64
}

// ArcDefaults returns the options an Arc starts from: stroked, not filled.
func ArcDefaults() Options {
	return MergeOptions(ComponentDefaults(), Options{
		OptFill:   "",
		OptStroke: "#000000",
	})
}

// NewArc creates an arc centered on pos going from startAngle to endAngle.
func NewArc(pos Position, radius, startAngle, endAngle float64, opts ...Options) *Arc {
	a := &Arc{radius: radius, startAngle: startAngle, endAngle: endAngle}
	a.Component = mustComponent(a, pos, ArcDefaults(), MergeOptions(opts...))
	return a
}

// Type returns "Arc".
func (a *Arc) Type() string { return "Arc" }

// Angles returns the start and end angles in turns.
func (a *Arc) Angles() (start, end float64) { return a.startAngle, a.endAngle }

// SetAngles changes the covered portion.
func (a *Arc) SetAngles(start, end float64) {
	a.startAngle, a.endAngle = start, end
	a.MarkDirty()
}

// Trace adds the arc. A sweep of a full turn or more draws the whole
// circle; an empty sweep draws nothing.
func (a *Arc) Trace(p *gg.Path) {
	sweep := a.endAngle - a.startAngle
	if a.radius <= 0 || sweep == 0 || !isFinite(sweep) {
		return
	}
	if math.Abs(sweep) >= 1 {
		p.Circle(0, 0, a.radius)
		return
	}
	from, to := a.startAngle, a.endAngle
	if sweep < 0 {
		from, to = to, from
	}
	r1 := turnsToRadians(from - 0.25)
	r2 := turnsToRadians(to - 0.25)
	p.MoveTo(a.radius*math.Cos(r1), a.radius*math.Sin(r1))
	p.Arc(0, 0, a.radius, r1, r2)
}

// MarshalFields records radius and angles.
func (a *Arc) MarshalFields() Options {
	return Options{"radius": a.radius, "startAngle": a.startAngle, "endAngle": a.endAngle}
}

func arcFromDefinition(def Definition) (Shape, error) {
	a := &Arc{
		radius:     fieldFloat(def.Fields, "radius", 0),
		startAngle: fieldFloat(def.Fields, "startAngle", 0),
		endAngle:   fieldFloat(def.Fields, "endAngle", 0.5),
	}
	base, err := newComponent(a, def.Position, ArcDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	a.Component = base
	return a, nil
}
