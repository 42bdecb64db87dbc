package pencil

import (
	"math"
	"slices"

	"github.com/gogpu/gg"
)

// tracePolygon adds a closed outline through pts.
func tracePolygon(p *gg.Path, pts []Position) {
	if len(pts) < 2 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
}

// ringPoints returns n points on a circle of radius r, the first one
// straight up, going clockwise.
func ringPoints(n int, r, phase float64) []Position {
	pts := make([]Position, n)
	for i := range n {
		a := turnsToRadians(float64(i)/float64(n)+phase) - math.Pi/2
		pts[i] = Position{r * math.Cos(a), r * math.Sin(a)}
	}
	return pts
}

// Polygon is a closed shape through points relative to its position.
type Polygon struct {
	*Component

	points []Position
}

// NewPolygon creates a polygon through points.
func NewPolygon(pos Position, points []Position, opts ...Options) *Polygon {
	p := &Polygon{points: slices.Clone(points)}
	p.Component = mustComponent(p, pos, ComponentDefaults(), MergeOptions(opts...))
	return p
}

// Type returns "Polygon".
func (p *Polygon) Type() string { return "Polygon" }

// Points returns a copy of the vertices.
func (p *Polygon) Points() []Position { return slices.Clone(p.points) }

// SetPoints replaces the vertices.
func (p *Polygon) SetPoints(points []Position) {
	p.points = slices.Clone(points)
	p.MarkDirty()
}

// Trace adds the closed outline.
func (p *Polygon) Trace(path *gg.Path) {
	tracePolygon(path, p.points)
}

// MarshalFields records the vertices.
func (p *Polygon) MarshalFields() Options {
	return Options{"points": slices.Clone(p.points)}
}

func polygonFromDefinition(def Definition) (Shape, error) {
	p := &Polygon{points: fieldPositions(def.Fields, "points")}
	base, err := newComponent(p, def.Position, ComponentDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	p.Component = base
	return p, nil
}

// RegularPolygon has equal sides and is centered on its position, with a
// vertex pointing up.
type RegularPolygon struct {
	*Component

	sides  int
	radius float64
}

// NewRegularPolygon creates a polygon with sides vertices on a circle of
// the given radius. Fewer than 3 sides draws nothing.
func NewRegularPolygon(pos Position, sides int, radius float64, opts ...Options) *RegularPolygon {
	rp := &RegularPolygon{sides: sides, radius: radius}
	rp.Component = mustComponent(rp, pos, ComponentDefaults(), MergeOptions(opts...))
	return rp
}

// Type returns "RegularPolygon".
func (rp *RegularPolygon) Type() string { return "RegularPolygon" }

// Sides returns the number of vertices.
func (rp *RegularPolygon) Sides() int { return rp.sides }

// Radius returns the circumradius.
func (rp *RegularPolygon) Radius() float64 { return rp.radius }

// Trace adds the outline.
func (rp *RegularPolygon) Trace(p *gg.Path) {
	if rp.sides < 3 || rp.radius <= 0 {
		return
	}
	tracePolygon(p, ringPoints(rp.sides, rp.radius, 0))
}

// MarshalFields records sides and radius.
func (rp *RegularPolygon) MarshalFields() Options {
	return Options{"sides": rp.sides, "radius": rp.radius}
}

func regularPolygonFromDefinition(def Definition) (Shape, error) {
	rp := &RegularPolygon{
		sides:  int(fieldFloat(def.Fields, "sides", 3)),
		radius: fieldFloat(def.Fields, "radius", 0),
	}
	base, err := newComponent(rp, def.Position, ComponentDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	rp.Component = base
	return rp, nil
}

// Star alternates branches outer points and as many inner points on a
// circle of radius times bevelRatio.
type Star struct {
	*Component

	branches   int
	radius     float64
	bevelRatio float64
}

// DefaultBevelRatio is the inner to outer radius ratio of a Star.
const DefaultBevelRatio = 0.5

// NewStar creates a star centered on pos.
func NewStar(pos Position, branches int, radius, bevelRatio float64, opts ...Options) *Star {
	s := &Star{branches: branches, radius: radius, bevelRatio: bevelRatio}
	s.Component = mustComponent(s, pos, ComponentDefaults(), MergeOptions(opts...))
	return s
}

// Type returns "Star".
func (s *Star) Type() string { return "Star" }

// Trace adds the outline. Fewer than 2 branches draws nothing.
func (s *Star) Trace(p *gg.Path) {
	if s.branches < 2 || s.radius <= 0 {
		return
	}
	outer := ringPoints(s.branches, s.radius, 0)
	inner := ringPoints(s.branches, s.radius*Clamp(s.bevelRatio, 0, 1), 0.5/float64(s.branches))
	pts := make([]Position, 0, 2*s.branches)
	for i := range outer {
		pts = append(pts, outer[i], inner[i])
	}
	tracePolygon(p, pts)
}

// MarshalFields records branches, radius and bevel ratio.
func (s *Star) MarshalFields() Options {
	return Options{"branches": s.branches, "radius": s.radius, "bevelRatio": s.bevelRatio}
}

func starFromDefinition(def Definition) (Shape, error) {
	s := &Star{
		branches:   int(fieldFloat(def.Fields, "branches", 5)),
		radius:     fieldFloat(def.Fields, "radius", 0),
		bevelRatio: fieldFloat(def.Fields, "bevelRatio", DefaultBevelRatio),
	}
	base, err := newComponent(s, def.Position, ComponentDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	s.Component = base
	return s, nil
}
