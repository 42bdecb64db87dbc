package pencil

import (
	"math"

	"github.com/gogpu/gg"
)

// flattenTolerance bounds the error of curve flattening for stroke hits.
const flattenTolerance = 0.25

// HitTest reports whether local, expressed in c's own frame, falls on
// something c visibly paints: inside the fill (non-zero winding) when the
// fill is visible, or within half the stroke width of the outline when the
// stroke is visible. Shapes with neither, or whose effective opacity is
// zero, are never hit.
func (c *Component) HitTest(local Position) bool {
	if c.effectiveOpacity() == 0 {
		return false
	}
	if ht, ok := c.variant.(HitTester); ok {
		return ht.ContainsPoint(local)
	}
	return c.hitPath(local)
}

func (c *Component) hitPath(local Position) bool {
	style := c.paintStyle(c.effectiveOpacity())
	if !style.HasFill() && !style.HasStroke() {
		return false
	}
	path := c.ComputePath()
	if style.HasFill() && path.Contains(gg.Pt(local.X, local.Y)) {
		return true
	}
	if style.HasStroke() {
		return distanceToOutline(path, local) <= style.Line.Width/2
	}
	return false
}

// distanceToOutline returns the shortest distance from p to any segment of
// the flattened path, closing segments included.
func distanceToOutline(path *gg.Path, p Position) float64 {
	best := math.Inf(1)
	var start, prev Position
	var started bool
	closeSub := func() {
		if started && prev != start {
			best = min(best, segmentDistance(p, prev, start))
		}
	}
	flatten(path, func(pt Position, move bool) {
		if move {
			started = true
			start, prev = pt, pt
			return
		}
		best = min(best, segmentDistance(p, prev, pt))
		prev = pt
	}, func() {
		closeSub()
		prev = start
	})
	return best
}

// flatten walks path, calling point for every vertex of its polyline
// approximation and closed when a subpath is closed.
func flatten(path *gg.Path, point func(pt Position, move bool), closed func()) {
	var cur Position
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			cur = Position{e.Point.X, e.Point.Y}
			point(cur, true)
		case gg.LineTo:
			cur = Position{e.Point.X, e.Point.Y}
			point(cur, false)
		case gg.QuadTo:
			p0, p1, p2 := cur, Position{e.Control.X, e.Control.Y}, Position{e.Point.X, e.Point.Y}
			n := curveSteps(p0.Distance(p1) + p1.Distance(p2))
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				point(Position{
					u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
					u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
				}, false)
			}
			cur = p2
		case gg.CubicTo:
			p0 := cur
			p1 := Position{e.Control1.X, e.Control1.Y}
			p2 := Position{e.Control2.X, e.Control2.Y}
			p3 := Position{e.Point.X, e.Point.Y}
			n := curveSteps(p0.Distance(p1) + p1.Distance(p2) + p2.Distance(p3))
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				point(Position{
					u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
					u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
				}, false)
			}
			cur = p3
		case gg.Close:
			closed()
		}
	}
}

// curveSteps picks a segment count from the control polygon length.
func curveSteps(length float64) int {
	n := int(math.Ceil(math.Sqrt(length / flattenTolerance)))
	return int(Clamp(float64(n), 4, 64))
}

// segmentDistance returns the distance from p to segment ab.
func segmentDistance(p, a, b Position) float64 {
	ab := b.Subtract(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Distance(a)
	}
	t := Clamp(p.Subtract(a).Dot(ab)/l2, 0, 1)
	return p.Distance(a.Add(ab.Scale(t)))
}
