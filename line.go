package pencil

import (
	"slices"

	"github.com/gogpu/gg"
)

// Line is an open polyline. It starts at its position and passes through
// points, each relative to that start.
type Line struct {
	*Component

	points []Position
}

// LineDefaults returns the options a Line starts from: a round-capped
// black stroke and no fill.
func LineDefaults() Options {
	return MergeOptions(ComponentDefaults(), Options{
		OptFill:   "",
		OptStroke: "#000000",
		OptJoin:   "round",
		OptCap:    "round",
	})
}

// NewLine creates a polyline from pos through points.
func NewLine(pos Position, points []Position, opts ...Options) *Line {
	l := &Line{points: slices.Clone(points)}
	l.Component = mustComponent(l, pos, LineDefaults(), MergeOptions(opts...))
	return l
}

// Type returns "Line".
func (l *Line) Type() string { return "Line" }

// Points returns a copy of the points.
func (l *Line) Points() []Position { return slices.Clone(l.points) }

// SetPoints replaces the points.
func (l *Line) SetPoints(points []Position) {
	l.points = slices.Clone(points)
	l.MarkDirty()
}

// Trace adds the open polyline.
func (l *Line) Trace(p *gg.Path) {
	if len(l.points) == 0 {
		return
	}
	p.MoveTo(0, 0)
	for _, pt := range l.points {
		p.LineTo(pt.X, pt.Y)
	}
}

// MarshalFields records the points.
func (l *Line) MarshalFields() Options {
	return Options{"points": slices.Clone(l.points)}
}

func lineFromDefinition(def Definition) (Shape, error) {
	l := &Line{points: fieldPositions(def.Fields, "points")}
	base, err := newComponent(l, def.Position, LineDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	l.Component = base
	return l, nil
}
