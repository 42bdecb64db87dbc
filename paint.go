package pencil

import "github.com/gogpu/gg"

// Paint draws c and its subtree onto s. parent is the accumulated transform
// of c's parent (the identity for a root).
func (c *Component) Paint(s Surface, parent Matrix) {
	c.paint(s, parent, 1, nil)
}

// paint walks the subtree in paint order. visit, when non-nil, is called
// for every component actually painted this frame.
func (c *Component) paint(s Surface, parent Matrix, alpha float64, visit func(*Component)) {
	if !c.shown {
		return
	}
	world := parent.Multiply(c.LocalTransform())
	path := c.ComputePath()
	alpha *= Clamp(c.options.Float(OptOpacity), 0, 1)
	style := c.paintStyle(alpha)

	s.SetTransform(world)
	if cp, ok := c.variant.(ContentPainter); ok {
		cp.PaintContent(s, path, style)
	} else {
		paintPath(s, path, style)
	}
	if visit != nil {
		visit(c)
	}

	// The range expression is evaluated once; attach and detach replace
	// c.children rather than mutating it.
	for _, child := range c.children {
		child.paint(s, world, alpha, visit)
	}
}

// paintPath fills then strokes p.
func paintPath(s Surface, p *gg.Path, style PaintStyle) {
	if style.HasFill() {
		s.FillPath(p, style.Fill)
	}
	if style.HasStroke() {
		s.StrokePath(p, style.Stroke, style.Line)
	}
}

// paintStyle resolves fill, stroke and line options with alpha applied.
func (c *Component) paintStyle(alpha float64) PaintStyle {
	return PaintStyle{
		Fill:   c.options.Color(OptFill).WithAlpha(alpha),
		Stroke: c.options.Color(OptStroke).WithAlpha(alpha),
		Line: StrokeStyle{
			Width: max(c.options.Float(OptStrokeWidth), 0),
			Join:  c.options.String(OptJoin),
			Cap:   c.options.String(OptCap),
		},
		Opacity: alpha,
	}
}

// effectiveOpacity multiplies the opacity of c and its ancestors.
func (c *Component) effectiveOpacity() float64 {
	alpha := 1.0
	for n := c; n != nil; n = n.parent {
		alpha *= Clamp(n.options.Float(OptOpacity), 0, 1)
	}
	return alpha
}
